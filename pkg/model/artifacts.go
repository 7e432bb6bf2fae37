package model

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ArtifactSource fetches the raw tokenizer and model blobs for a named model.
// Implementations may hit disk, object storage or a model registry; callers
// treat it as slow and fallible.
type ArtifactSource interface {
	FetchArtifact(ctx context.Context, modelName string) (tokenizer []byte, model []byte, err error)
}

// Tokenizer converts raw content bytes into the token sequence a model
// consumes. Implementations are stateless per call.
type Tokenizer interface {
	Tokenize(input []byte) ([]int64, error)
}

// InferenceModel computes a raw AI-generated probability from a token
// sequence. Implementations must be deterministic at inference time and safe
// for concurrent calls.
type InferenceModel interface {
	Infer(ctx context.Context, tokens []int64) (float64, error)
}

// ArtifactDecoder turns fetched blobs into usable tokenizer and model
// instances. The concrete decoding (weights format, runtime binding) is
// opaque to this package.
type ArtifactDecoder interface {
	DecodeTokenizer(blob []byte) (Tokenizer, error)
	DecodeModel(blob []byte) (InferenceModel, error)
}

const (
	tokenizerFileName = "tokenizer.json"
	modelFileName     = "model.bin"
)

// DirArtifactSource serves artifacts from a local directory laid out as
// <dir>/<model-name>/{tokenizer.json,model.bin}.
type DirArtifactSource struct {
	dir string
}

// NewDirArtifactSource creates a source rooted at dir.
func NewDirArtifactSource(dir string) *DirArtifactSource {
	return &DirArtifactSource{dir: dir}
}

func (s *DirArtifactSource) FetchArtifact(ctx context.Context, modelName string) ([]byte, []byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	base := filepath.Join(s.dir, modelName)
	tokenizer, err := os.ReadFile(filepath.Join(base, tokenizerFileName))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read tokenizer artifact for %q: %w", modelName, err)
	}
	model, err := os.ReadFile(filepath.Join(base, modelFileName))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read model artifact for %q: %w", modelName, err)
	}
	return tokenizer, model, nil
}
