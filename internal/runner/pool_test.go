package runner

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPoolCompletionOrder(t *testing.T) {
	gates := []chan struct{}{make(chan struct{}), make(chan struct{}), make(chan struct{})}
	results := streamPool(context.Background(), len(gates), len(gates), func(_ context.Context, index int) int {
		<-gates[index]
		return index
	})

	var got []int
	for _, index := range []int{1, 2, 0} {
		close(gates[index])
		got = append(got, <-results)
	}
	_, open := <-results
	assert.False(t, open, "stream should close after the last job")
	assert.Equal(t, []int{1, 2, 0}, got)
}

func TestRunPoolDefaultsAndEmpty(t *testing.T) {
	got := runPool(context.Background(), 0, 0, func(context.Context, int) int { return 1 })
	assert.Empty(t, got)

	got = runPool(context.Background(), -1, 40, func(_ context.Context, index int) int { return index })
	sort.Ints(got)
	require.Len(t, got, 40)
	for i, value := range got {
		assert.Equal(t, i, value)
	}
}

func TestRunPoolPassesCallerContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got := runPool(ctx, 2, 4, func(ctx context.Context, _ int) error { return ctx.Err() })
	require.Len(t, got, 4)
	for _, err := range got {
		assert.ErrorIs(t, err, context.Canceled)
	}
}
