package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferPushPop(t *testing.T) {
	b := NewBuffer[int](3)

	_, ok := b.TryPop()
	assert.False(t, ok, "empty buffer must not pop")

	b.Push(1)
	b.Push(2)
	require.Equal(t, 2, b.Len())

	v, ok := b.TryPop()
	require.True(t, ok)
	assert.Equal(t, 1, v, "FIFO order")
}

func TestBufferDropsOldestWhenFull(t *testing.T) {
	b := NewBuffer[int](3)

	for i := 1; i <= 5; i++ {
		b.Push(i)
	}

	require.Equal(t, 3, b.Len())

	// The two oldest were evicted; the three newest remain in order.
	var got []int
	for {
		v, ok := b.TryPop()
		if !ok {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{3, 4, 5}, got)
}

func TestBufferMinimumCapacity(t *testing.T) {
	b := NewBuffer[string](0)
	assert.Equal(t, 1, b.Cap())

	b.Push("a")
	b.Push("b")

	v, ok := b.TryPop()
	require.True(t, ok)
	assert.Equal(t, "b", v)
}

func TestBufferWrapAround(t *testing.T) {
	b := NewBuffer[int](2)

	b.Push(1)
	b.Push(2)
	_, _ = b.TryPop()
	b.Push(3)
	b.Push(4) // evicts 2

	v, ok := b.TryPop()
	require.True(t, ok)
	assert.Equal(t, 3, v)

	v, ok = b.TryPop()
	require.True(t, ok)
	assert.Equal(t, 4, v)
}
