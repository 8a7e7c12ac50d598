package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDupStringCopies(t *testing.T) {
	a := New(0)
	s := "hello, lux"
	dup := a.DupString(s)
	require.Equal(t, s, dup)

	b := []byte(s)
	b[0] = 'H'
	require.Equal(t, "hello, lux", dup, "DupString must not alias the caller's bytes")
}

func TestAllocBytesGrowsChain(t *testing.T) {
	a := New(minBufferSize)
	first := a.AllocBytes(minBufferSize-8, 8)
	require.Len(t, first, minBufferSize-8)

	// Forces overflow into a fresh buffer.
	second := a.AllocBytes(1024, 8)
	require.Len(t, second, 1024)
	require.Greater(t, a.Stats().NextBufferSize, 0)
}

func TestLargeAllocationGetsDedicatedBuffer(t *testing.T) {
	a := New(0)
	big := a.AllocBytes(maxBufferSize/largeAllocFraction, 8)
	require.Len(t, big, maxBufferSize/largeAllocFraction)
	require.Equal(t, big, a.head.data)
}

func TestResetReusesBuffers(t *testing.T) {
	a := New(0)
	_ = a.AllocBytes(1024, 8)
	before := a.head
	a.Reset()
	require.Same(t, before, a.head)
	require.Equal(t, 0, a.Stats().TotalBytes)
}

func TestArrayPushGrows(t *testing.T) {
	a := New(0)
	arr := NewArray[int](a, 1)
	for i := 0; i < 100; i++ {
		idx := arr.Push(i)
		require.Equal(t, i, idx)
	}
	require.Equal(t, 100, arr.Len())
	for i := 0; i < 100; i++ {
		require.Equal(t, i, arr.At(i))
	}
}
