package funcz

import "sync"

// Identity returns v unchanged.
func Identity[T any](v T) T { return v }

// Constant returns a function that always returns v.
func Constant[T any](v T) func() T {
	return func() T { return v }
}

// Compose composes fns right to left: Compose(f, g)(x) == f(g(x)).
func Compose[T any](fns ...func(T) T) func(T) T {
	return func(v T) T {
		for i := len(fns) - 1; i >= 0; i-- {
			v = fns[i](v)
		}
		return v
	}
}

// Pipe threads v through fns left to right.
func Pipe[T any](v T, fns ...func(T) T) T {
	for _, fn := range fns {
		v = fn(v)
	}
	return v
}

// Complement returns a predicate with the opposite boolean result.
func Complement[T any](pred func(T) bool) func(T) bool {
	return func(v T) bool { return !pred(v) }
}

// Juxt applies every fn to the same argument and collects the results in
// declaration order.
func Juxt[T, R any](fns ...func(T) R) func(T) []R {
	return func(v T) []R {
		out := make([]R, len(fns))
		for i, fn := range fns {
			out[i] = fn(v)
		}
		return out
	}
}

// Memoize caches fn's results by argument. Only use on pure functions:
// concurrent callers may race to compute the same key, and the last write
// wins, which is correct exactly because recomputation is deterministic.
func Memoize[K comparable, V any](fn func(K) V) func(K) V {
	var cache sync.Map
	return func(k K) V {
		if v, ok := cache.Load(k); ok {
			return v.(V)
		}
		v := fn(k)
		cache.Store(k, v)
		return v
	}
}

type memoKey2[A, B comparable] struct {
	a A
	b B
}

// Memoize2 is Memoize for binary functions.
func Memoize2[A, B comparable, V any](fn func(A, B) V) func(A, B) V {
	var cache sync.Map
	return func(a A, b B) V {
		k := memoKey2[A, B]{a: a, b: b}
		if v, ok := cache.Load(k); ok {
			return v.(V)
		}
		v := fn(a, b)
		cache.Store(k, v)
		return v
	}
}
