package embcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seedfolio/seedfolio/internal/db"
	"github.com/seedfolio/seedfolio/internal/domain"
)

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	calls  int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	return m.result, m.err
}

type mockStore struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string][]byte)}
}

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	data, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return data, nil
}

func (m *mockStore) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func TestCachedEmbedder_Miss(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{
		Embedding:   []float32{0.1, 0.2, 0.3},
		TotalTokens: 7,
	}}
	s := newMockStore()
	c := New(inner, s, time.Hour, nil, zap.NewNop())

	result, err := c.Embed(context.Background(), "startup search")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
	if result.TotalTokens != 7 {
		t.Errorf("TotalTokens = %d, want 7", result.TotalTokens)
	}
	if len(s.data) != 1 {
		t.Errorf("cache entries = %d, want 1", len(s.data))
	}
}

func TestCachedEmbedder_Hit(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{
		Embedding: []float32{0.1, 0.2, 0.3},
	}}
	s := newMockStore()
	c := New(inner, s, time.Hour, nil, zap.NewNop())

	if _, err := c.Embed(context.Background(), "ai tooling"); err != nil {
		t.Fatalf("first Embed() error = %v", err)
	}

	result, err := c.Embed(context.Background(), "ai tooling")
	if err != nil {
		t.Fatalf("second Embed() error = %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1 (second call should hit cache)", inner.calls)
	}
	if result.TotalTokens != 0 {
		t.Errorf("cached TotalTokens = %d, want 0", result.TotalTokens)
	}
	want := []float32{0.1, 0.2, 0.3}
	if len(result.Embedding) != len(want) {
		t.Fatalf("embedding len = %d, want %d", len(result.Embedding), len(want))
	}
	for i := range want {
		if result.Embedding[i] != want[i] {
			t.Errorf("embedding[%d] = %v, want %v", i, result.Embedding[i], want[i])
		}
	}
}

func TestCachedEmbedder_NormalizedKey(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{
		Embedding: []float32{1},
	}}
	s := newMockStore()
	c := New(inner, s, time.Hour, nil, zap.NewNop())

	if _, err := c.Embed(context.Background(), "Podcast Tools"); err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if _, err := c.Embed(context.Background(), "  podcast tools  "); err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1 (case and whitespace variants share a key)", inner.calls)
	}
}

func TestCachedEmbedder_StoreErrorsNotFatal(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{
		Embedding: []float32{1, 2},
	}}
	s := newMockStore()
	s.getErr = errors.New("connection refused")
	s.setErr = errors.New("connection refused")
	c := New(inner, s, time.Hour, nil, zap.NewNop())

	result, err := c.Embed(context.Background(), "fintech")
	if err != nil {
		t.Fatalf("Embed() error = %v, want nil (cache errors must not fail the request)", err)
	}
	if len(result.Embedding) != 2 {
		t.Errorf("embedding len = %d, want 2", len(result.Embedding))
	}
}

func TestCachedEmbedder_InnerError(t *testing.T) {
	inner := &mockEmbedder{err: domain.ErrEmbeddingUnavailable}
	c := New(inner, newMockStore(), time.Hour, nil, zap.NewNop())

	_, err := c.Embed(context.Background(), "query")
	if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Errorf("error = %v, want ErrEmbeddingUnavailable", err)
	}
}

func TestVectorRoundTrip(t *testing.T) {
	want := []float32{0.5, -1.25, 3.0, 0}
	got, err := bytesToVector(vectorToCacheBytes(want))
	if err != nil {
		t.Fatalf("bytesToVector() error = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("vec[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBytesToVector_Invalid(t *testing.T) {
	if _, err := bytesToVector([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for truncated data")
	}
}
