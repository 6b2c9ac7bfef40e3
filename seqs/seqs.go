// Package seqs provides slice combinators: transformation, grouping, sorted
// merging, and joining.
package seqs

// Map applies fn to every element and returns the results in order.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// Filter returns the elements for which pred is true, preserving order.
func Filter[T any](s []T, pred func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if pred(v) {
			out = append(out, v)
		}
	}
	return out
}

// Reduce folds s left to right starting from init.
func Reduce[T, A any](s []T, init A, fn func(A, T) A) A {
	acc := init
	for _, v := range s {
		acc = fn(acc, v)
	}
	return acc
}

// GroupBy buckets elements by key, preserving encounter order within each
// bucket.
func GroupBy[T any, K comparable](s []T, key func(T) K) map[K][]T {
	out := make(map[K][]T)
	for _, v := range s {
		k := key(v)
		out[k] = append(out[k], v)
	}
	return out
}

// ReduceBy combines GroupBy and Reduce without materializing the groups: each
// element folds into its key's accumulator, which starts from init().
func ReduceBy[T any, K comparable, A any](s []T, key func(T) K, init func() A, fn func(A, T) A) map[K]A {
	out := make(map[K]A)
	for _, v := range s {
		k := key(v)
		acc, ok := out[k]
		if !ok {
			acc = init()
		}
		out[k] = fn(acc, v)
	}
	return out
}

// MergeSorted merges already-sorted slices into a single sorted slice using
// less. Merging is stable across inputs: on ties, elements from earlier
// slices come first.
func MergeSorted[T any](less func(a, b T) bool, seqs ...[]T) []T {
	total := 0
	for _, s := range seqs {
		total += len(s)
	}
	out := make([]T, 0, total)
	heads := make([]int, len(seqs))
	for len(out) < total {
		best := -1
		for i, s := range seqs {
			if heads[i] >= len(s) {
				continue
			}
			if best == -1 || less(s[heads[i]], seqs[best][heads[best]]) {
				best = i
			}
		}
		out = append(out, seqs[best][heads[best]])
		heads[best]++
	}
	return out
}

// Pair couples joined rows.
type Pair[L, R any] struct {
	Left  L
	Right R
}

// Join performs an inner hash join: for every right element, it emits a pair
// with each left element sharing the same key, in left encounter order.
func Join[L, R any, K comparable](leftKey func(L) K, left []L, rightKey func(R) K, right []R) []Pair[L, R] {
	index := make(map[K][]L)
	for _, l := range left {
		k := leftKey(l)
		index[k] = append(index[k], l)
	}
	var out []Pair[L, R]
	for _, r := range right {
		for _, l := range index[rightKey(r)] {
			out = append(out, Pair[L, R]{Left: l, Right: r})
		}
	}
	return out
}

// Unique returns the elements with duplicates removed, keeping first
// occurrences in order.
func Unique[T comparable](s []T) []T {
	seen := make(map[T]struct{}, len(s))
	out := make([]T, 0, len(s))
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Frequencies counts occurrences of each element.
func Frequencies[T comparable](s []T) map[T]int {
	out := make(map[T]int)
	for _, v := range s {
		out[v]++
	}
	return out
}

// Take returns the first n elements, or all of them when n exceeds the
// length.
func Take[T any](s []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if n > len(s) {
		n = len(s)
	}
	out := make([]T, n)
	copy(out, s[:n])
	return out
}

// Drop returns the elements after the first n.
func Drop[T any](s []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if n > len(s) {
		n = len(s)
	}
	out := make([]T, len(s)-n)
	copy(out, s[n:])
	return out
}
