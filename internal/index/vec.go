package index

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"ideaforge/internal/embedding"
)

// Document is one unit of indexable content.
type Document struct {
	Content  string
	Citation string
}

// VecIndex is a sqlite-vec backed DocumentIndex. Embeddings are stored in a
// vec0 virtual table; similarity is cosine distance.
type VecIndex struct {
	db     *sql.DB
	engine embedding.Engine
	path   string
	logger *zap.Logger
	mu     sync.RWMutex
}

// OpenVecIndex opens (or creates) the index database at path.
func OpenVecIndex(path string, engine embedding.Engine, logger *zap.Logger) (*VecIndex, error) {
	if engine == nil {
		return nil, fmt.Errorf("embedding engine required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index database: %w", err)
	}

	return &VecIndex{
		db:     db,
		engine: engine,
		path:   path,
		logger: logger,
	}, nil
}

// Close closes the backing database.
func (x *VecIndex) Close() error {
	return x.db.Close()
}

// Ready reports whether the vec table exists and holds at least one document.
func (x *VecIndex) Ready(ctx context.Context) error {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if !x.tableExists(ctx, "vec_documents") {
		return &IndexUnavailableError{Path: x.path, Reason: "index not built (run 'ideaforge index build')"}
	}

	var count int
	if err := x.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vec_documents").Scan(&count); err != nil {
		return &IndexUnavailableError{Path: x.path, Reason: err.Error()}
	}
	if count == 0 {
		return &IndexUnavailableError{Path: x.path, Reason: "index is empty"}
	}
	return nil
}

// Build creates the schema and indexes the given documents. It is the
// offline batch path and must not run concurrently with Search.
func (x *VecIndex) Build(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return fmt.Errorf("no documents to index")
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	schema := fmt.Sprintf(`
	CREATE VIRTUAL TABLE IF NOT EXISTS vec_documents USING vec0(
		embedding float[%d],
		content TEXT,
		citation TEXT
	);
	`, x.engine.Dimensions())

	if _, err := x.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create vec_documents table (sqlite-vec may not be available): %w", err)
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Content
	}

	vectors, err := x.engine.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed documents: %w", err)
	}
	if len(vectors) != len(docs) {
		return fmt.Errorf("embedding count mismatch: %d texts, %d vectors", len(docs), len(vectors))
	}

	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i, d := range docs {
		blob := encodeFloat32SliceToBlob(vectors[i])
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO vec_documents (embedding, content, citation) VALUES (?, ?, ?)",
			blob, d.Content, d.Citation,
		); err != nil {
			return fmt.Errorf("failed to insert document %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit index build: %w", err)
	}

	x.logger.Info("document index built",
		zap.String("path", x.path),
		zap.Int("documents", len(docs)),
		zap.String("engine", x.engine.Name()))
	return nil
}

// Search embeds the query and returns the k nearest documents.
func (x *VecIndex) Search(ctx context.Context, query string, k int) ([]Snippet, error) {
	if k <= 0 {
		k = 5
	}

	if err := x.Ready(ctx); err != nil {
		return nil, err
	}

	queryVec, err := x.engine.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	queryBlob := encodeFloat32SliceToBlob(queryVec)

	x.mu.RLock()
	defer x.mu.RUnlock()

	rows, err := x.db.QueryContext(ctx, `
		SELECT content, citation, vec_distance_cosine(embedding, ?) AS distance
		FROM vec_documents
		ORDER BY distance ASC
		LIMIT ?
	`, queryBlob, k)
	if err != nil {
		return nil, fmt.Errorf("vec search failed: %w", err)
	}
	defer rows.Close()

	var snippets []Snippet
	for rows.Next() {
		var s Snippet
		var distance float64
		if err := rows.Scan(&s.Content, &s.Citation, &distance); err != nil {
			x.logger.Warn("failed to scan search result", zap.Error(err))
			continue
		}
		snippets = append(snippets, s)
	}

	x.logger.Debug("index search",
		zap.String("query", query),
		zap.Int("k", k),
		zap.Int("results", len(snippets)))
	return snippets, rows.Err()
}

func (x *VecIndex) tableExists(ctx context.Context, table string) bool {
	var name string
	err := x.db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type IN ('table','view') AND name = ?", table,
	).Scan(&name)
	return err == nil
}

func encodeFloat32SliceToBlob(vec []float32) []byte {
	buf := &bytes.Buffer{}
	if err := binary.Write(buf, binary.LittleEndian, vec); err != nil {
		// Should never happen with bytes.Buffer
		return nil
	}
	return buf.Bytes()
}
