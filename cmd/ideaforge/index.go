package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ideaforge/internal/config"
	"ideaforge/internal/embedding"
	"ideaforge/internal/index"
)

var searchK int

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the document index used for retrieval-augmented brainstorming",
}

var indexBuildCmd = &cobra.Command{
	Use:   "build [paths...]",
	Short: "Chunk, embed and index past project documents",
	Long: `Reads .txt and .md files from the given files or directories, splits
them into overlapping word chunks, embeds each chunk, and stores the
vectors in the sqlite-vec database configured under index.path.

This is a one-time offline batch job; 'ideaforge run' only reads the
index.`,
	Args: cobra.MinimumNArgs(1),
	RunE: buildIndex,
}

var indexSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the document index",
	Args:  cobra.ExactArgs(1),
	RunE:  searchIndex,
}

func init() {
	indexSearchCmd.Flags().IntVarP(&searchK, "top", "k", 5, "Number of results")

	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexSearchCmd)
}

func buildIndex(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	files, err := collectDocumentFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .txt or .md files found under %s", strings.Join(args, ", "))
	}

	var docs []index.Document
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		chunks := embedding.ChunkText(string(data), cfg.Index.ChunkSize, cfg.Index.ChunkOverlap)
		for i, chunk := range chunks {
			docs = append(docs, index.Document{
				Content:  chunk,
				Citation: fmt.Sprintf("%s#%d", filepath.Base(file), i+1),
			})
		}
	}

	logger.Info("building document index",
		zap.Int("files", len(files)),
		zap.Int("chunks", len(docs)),
		zap.String("path", cfg.Index.Path))

	vecIdx, err := openIndex(ctx, cfg, embedding.TaskRetrievalDocument)
	if err != nil {
		return err
	}
	defer vecIdx.Close()

	if err := vecIdx.Build(ctx, docs); err != nil {
		return err
	}

	fmt.Printf("Indexed %d chunks from %d files into %s\n", len(docs), len(files), cfg.Index.Path)
	return nil
}

func searchIndex(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	vecIdx, err := openIndex(ctx, cfg, embedding.TaskRetrievalQuery)
	if err != nil {
		return err
	}
	defer vecIdx.Close()

	snippets, err := vecIdx.Search(ctx, args[0], searchK)
	if err != nil {
		return err
	}

	for i, s := range snippets {
		citation := s.Citation
		if citation == "" {
			citation = "unknown"
		}
		fmt.Printf("%d. (%s) %s\n", i+1, citation, s.Content)
	}
	return nil
}

func collectDocumentFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if isDocumentFile(path) {
				files = append(files, path)
			}
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isDocumentFile(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func isDocumentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return true
	}
	return false
}
