package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carcrafter/internal/builder"
	"carcrafter/internal/openai"
)

type stubService struct{}

func (stubService) Generate(context.Context, string, openai.Size, openai.Quality) (openai.Result, error) {
	return openai.Result{Data: []byte("stock")}, nil
}

func (stubService) Edit(context.Context, string, []byte, openai.Size, openai.Quality) (openai.Result, error) {
	return openai.Result{Data: []byte("edited")}, nil
}

func newTestStore() *Store {
	return NewStore(Options{
		NewBuilder: func() *builder.Builder {
			return builder.New(builder.Options{Service: stubService{}})
		},
	})
}

func TestGetCreatesOnce(t *testing.T) {
	s := newTestStore()

	first := s.Get("abc")
	second := s.Get("abc")
	require.Same(t, first, second)
	assert.Equal(t, 1, s.Len())

	other := s.Get("xyz")
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, s.Len())
}

func TestInFlightGuard(t *testing.T) {
	s := newTestStore()
	sess := s.Get("abc")

	require.True(t, sess.InFlight.TryAcquire(1))
	assert.False(t, sess.InFlight.TryAcquire(1), "second concurrent call is refused")
	sess.InFlight.Release(1)
	assert.True(t, sess.InFlight.TryAcquire(1))
	sess.InFlight.Release(1)
}

func TestResetKeepsSessionAndDropsBase(t *testing.T) {
	s := newTestStore()
	first := s.Get("abc")

	_, err := first.Builder.GenerateStock(context.Background(), builder.Request{})
	require.NoError(t, err)
	require.Equal(t, builder.PhaseStockReady, first.Builder.Phase())

	s.Reset("abc")
	assert.Same(t, first, s.Get("abc"))
	assert.Equal(t, builder.PhaseNoBase, first.Builder.Phase())

	// Resetting an unknown session is a no-op.
	s.Reset("never-seen")
	assert.Equal(t, 1, s.Len())
}
