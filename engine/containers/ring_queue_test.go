package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingQueueFIFO(t *testing.T) {
	q := NewRingQueue[int](2)
	q.Enqueue(1)
	q.Enqueue(2)
	assert.True(t, q.IsFull())

	v, err := q.Peek()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, q.Len())
}

func TestRingQueueGrowsAcrossWrap(t *testing.T) {
	q := NewRingQueue[int](3)
	q.Enqueue(1)
	q.Enqueue(2)
	_, _ = q.Dequeue()
	q.Enqueue(3)
	q.Enqueue(4) // wraps
	q.Enqueue(5) // grows
	q.Enqueue(6)

	assert.Equal(t, []int{2, 3, 4, 5, 6}, q.Drain())
	assert.True(t, q.IsEmpty())
}

func TestRingQueueEmpty(t *testing.T) {
	q := NewRingQueue[string](0)
	_, err := q.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)
	_, err = q.Peek()
	assert.ErrorIs(t, err, ErrQueueEmpty)
	assert.Empty(t, q.Drain())

	q.Enqueue("a")
	assert.Equal(t, []string{"a"}, q.Drain())
	assert.Empty(t, q.Drain())
}
