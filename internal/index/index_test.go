package index

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEngine struct {
	dims int
}

func (e *stubEngine) Embed(_ context.Context, text string) ([]float32, error) {
	v := make([]float32, e.dims)
	for i, r := range text {
		v[i%e.dims] += float32(r)
	}
	return v, nil
}

func (e *stubEngine) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (e *stubEngine) Dimensions() int { return e.dims }
func (e *stubEngine) Name() string    { return "stub" }

func TestVecIndex_ReadyBeforeBuild(t *testing.T) {
	dir := t.TempDir()
	idx, err := OpenVecIndex(filepath.Join(dir, "index.db"), &stubEngine{dims: 4}, nil)
	require.NoError(t, err)
	defer idx.Close()

	err = idx.Ready(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIndexUnavailable))

	var unavailable *IndexUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Contains(t, unavailable.Reason, "not built")
}

func TestVecIndex_SearchUnavailable(t *testing.T) {
	dir := t.TempDir()
	idx, err := OpenVecIndex(filepath.Join(dir, "index.db"), &stubEngine{dims: 4}, nil)
	require.NoError(t, err)
	defer idx.Close()

	_, err = idx.Search(context.Background(), "healthcare", 3)
	assert.True(t, errors.Is(err, ErrIndexUnavailable))
}

func TestOpenVecIndex_RequiresEngine(t *testing.T) {
	_, err := OpenVecIndex(":memory:", nil, nil)
	assert.Error(t, err)
}

func TestEncodeFloat32SliceToBlob(t *testing.T) {
	blob := encodeFloat32SliceToBlob([]float32{1, 2, 3})
	assert.Len(t, blob, 12)
	assert.Empty(t, encodeFloat32SliceToBlob(nil))
}
