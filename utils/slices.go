package utils

import "fmt"

// Flatten2D concatenates the rows of s.
func Flatten2D[V any](s [][]V) (out []V) {
	var size int
	for i := range s {
		size += len(s[i])
	}
	out = make([]V, 0, size)
	for i := range s {
		out = append(out, s[i]...)
	}
	return
}

// Chunk splits s into consecutive sub-slices of length size.
// The sub-slices share the backing array of s.
func Chunk[V any](s []V, size int) (out [][]V) {
	if size <= 0 || len(s)%size != 0 {
		panic(fmt.Errorf("cannot Chunk: len(s)=%d is not a multiple of size=%d", len(s), size))
	}
	out = make([][]V, len(s)/size)
	for i := range out {
		out[i] = s[i*size : (i+1)*size : (i+1)*size]
	}
	return
}

// Fill returns a new slice of length n whose entries are v.
func Fill[V any](n int, v V) (out []V) {
	out = make([]V, n)
	for i := range out {
		out[i] = v
	}
	return
}

// Map returns a new slice whose entries are f applied to the entries of s.
func Map[V, W any](s []V, f func(V) W) (out []W) {
	out = make([]W, len(s))
	for i := range s {
		out[i] = f(s[i])
	}
	return
}
