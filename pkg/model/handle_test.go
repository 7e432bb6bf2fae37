package model

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test doubles for the opaque artifact pipeline.

type fakeSource struct {
	fetches atomic.Int32
	err     error
}

func (s *fakeSource) FetchArtifact(ctx context.Context, modelName string) ([]byte, []byte, error) {
	s.fetches.Add(1)
	if s.err != nil {
		return nil, nil, s.err
	}
	return []byte("tokenizer"), []byte("weights"), nil
}

type fakeTokenizer struct{}

func (fakeTokenizer) Tokenize(input []byte) ([]int64, error) {
	tokens := make([]int64, 0, len(input))
	for _, b := range input {
		tokens = append(tokens, int64(b))
	}
	return tokens, nil
}

type fakeModel struct {
	probability float64
	infers      *atomic.Int32
}

func (m fakeModel) Infer(ctx context.Context, tokens []int64) (float64, error) {
	if m.infers != nil {
		m.infers.Add(1)
	}
	return m.probability, nil
}

type fakeDecoder struct {
	probability  float64
	infers       *atomic.Int32
	tokenizerErr error
	modelErr     error
}

func (d fakeDecoder) DecodeTokenizer(blob []byte) (Tokenizer, error) {
	if d.tokenizerErr != nil {
		return nil, d.tokenizerErr
	}
	return fakeTokenizer{}, nil
}

func (d fakeDecoder) DecodeModel(blob []byte) (InferenceModel, error) {
	if d.modelErr != nil {
		return nil, d.modelErr
	}
	return fakeModel{probability: d.probability, infers: d.infers}, nil
}

func testIdentity() Identity {
	return Identity{Name: "detective-base", DeviceHint: "cpu"}
}

func TestHandleLoadAndPredict(t *testing.T) {
	h := NewHandle(testIdentity(), &fakeSource{}, fakeDecoder{probability: 0.8}, 0.5)

	require.False(t, h.IsLoaded())
	require.NoError(t, h.Load(context.Background()))
	require.True(t, h.IsLoaded())

	score, err := h.Predict(context.Background(), []byte("some text"))
	require.NoError(t, err)
	assert.Equal(t, 0.8, score.Probability)
	assert.True(t, score.IsPositive)
	assert.Equal(t, 0.8, score.Confidence)
}

func TestHandleLoadIdempotent(t *testing.T) {
	source := &fakeSource{}
	h := NewHandle(testIdentity(), source, fakeDecoder{probability: 0.8}, 0.5)

	require.NoError(t, h.Load(context.Background()))
	require.NoError(t, h.Load(context.Background()))
	assert.Equal(t, int32(1), source.fetches.Load(), "second Load must not re-fetch artifacts")
}

func TestHandleLoadFailureLeavesUnloaded(t *testing.T) {
	source := &fakeSource{err: errors.New("artifact store unreachable")}
	h := NewHandle(testIdentity(), source, fakeDecoder{}, 0.5)

	err := h.Load(context.Background())
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "detective-base", loadErr.Model)
	assert.False(t, h.IsLoaded(), "failed Load must not leave partial state")
}

func TestHandleDecodeFailureLeavesUnloaded(t *testing.T) {
	h := NewHandle(testIdentity(), &fakeSource{}, fakeDecoder{modelErr: errors.New("bad weights")}, 0.5)

	err := h.Load(context.Background())
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.False(t, h.IsLoaded(), "tokenizer must not be published without the model")
}

func TestHandlePredictWhenUnloaded(t *testing.T) {
	h := NewHandle(testIdentity(), &fakeSource{}, fakeDecoder{}, 0.5)

	_, err := h.Predict(context.Background(), []byte("text"))
	var notLoaded *NotLoadedError
	require.ErrorAs(t, err, &notLoaded)
	assert.Equal(t, "detective-base", notLoaded.Model)
}

func TestHandleUnload(t *testing.T) {
	h := NewHandle(testIdentity(), &fakeSource{}, fakeDecoder{probability: 0.8}, 0.5)
	require.NoError(t, h.Load(context.Background()))

	h.Unload()
	assert.False(t, h.IsLoaded())
	h.Unload() // idempotent

	_, err := h.Predict(context.Background(), []byte("text"))
	var notLoaded *NotLoadedError
	assert.ErrorAs(t, err, &notLoaded)
}

func TestHandlePredictDeterministic(t *testing.T) {
	h := NewHandle(testIdentity(), &fakeSource{}, fakeDecoder{probability: 0.42}, 0.5)
	require.NoError(t, h.Load(context.Background()))

	first, err := h.Predict(context.Background(), []byte("same input"))
	require.NoError(t, err)
	second, err := h.Predict(context.Background(), []byte("same input"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNewScore(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		threshold   float64
		positive    bool
		confidence  float64
	}{
		{"clearly positive", 0.8, 0.5, true, 0.8},
		{"clearly negative", 0.2, 0.5, false, 0.8},
		{"exactly at threshold is positive", 0.5, 0.5, true, 0.5},
		{"just below threshold", 0.49, 0.5, false, 0.51},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScore(tt.probability, tt.threshold)
			assert.Equal(t, tt.positive, s.IsPositive)
			assert.InDelta(t, tt.confidence, s.Confidence, 1e-9)
		})
	}
}
