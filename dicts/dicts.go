// Package dicts provides non-destructive map combinators; every operation
// returns a new map and leaves its inputs untouched.
package dicts

// Merge combines maps left to right; later maps win on key collision.
func Merge[K comparable, V any](ms ...map[K]V) map[K]V {
	out := make(map[K]V)
	for _, m := range ms {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// MergeWith combines maps left to right, resolving key collisions with
// combine(accumulated, incoming).
func MergeWith[K comparable, V any](combine func(V, V) V, ms ...map[K]V) map[K]V {
	out := make(map[K]V)
	for _, m := range ms {
		for k, v := range m {
			if old, ok := out[k]; ok {
				out[k] = combine(old, v)
				continue
			}
			out[k] = v
		}
	}
	return out
}

// Assoc returns a copy of m with k set to v.
func Assoc[K comparable, V any](m map[K]V, k K, v V) map[K]V {
	out := make(map[K]V, len(m)+1)
	for mk, mv := range m {
		out[mk] = mv
	}
	out[k] = v
	return out
}

// Dissoc returns a copy of m without the given keys.
func Dissoc[K comparable, V any](m map[K]V, ks ...K) map[K]V {
	drop := make(map[K]struct{}, len(ks))
	for _, k := range ks {
		drop[k] = struct{}{}
	}
	out := make(map[K]V, len(m))
	for mk, mv := range m {
		if _, ok := drop[mk]; ok {
			continue
		}
		out[mk] = mv
	}
	return out
}

// KeyMap transforms keys; colliding transformed keys keep an arbitrary value.
func KeyMap[K1, K2 comparable, V any](fn func(K1) K2, m map[K1]V) map[K2]V {
	out := make(map[K2]V, len(m))
	for k, v := range m {
		out[fn(k)] = v
	}
	return out
}

// ValMap transforms values, keeping keys.
func ValMap[K comparable, V1, V2 any](fn func(V1) V2, m map[K]V1) map[K]V2 {
	out := make(map[K]V2, len(m))
	for k, v := range m {
		out[k] = fn(v)
	}
	return out
}

// KeyFilter keeps entries whose key satisfies pred.
func KeyFilter[K comparable, V any](pred func(K) bool, m map[K]V) map[K]V {
	out := make(map[K]V)
	for k, v := range m {
		if pred(k) {
			out[k] = v
		}
	}
	return out
}

// ValFilter keeps entries whose value satisfies pred.
func ValFilter[K comparable, V any](pred func(V) bool, m map[K]V) map[K]V {
	out := make(map[K]V)
	for k, v := range m {
		if pred(v) {
			out[k] = v
		}
	}
	return out
}

// GetIn walks path through nested string-keyed maps and returns the value, or
// def when any step is missing or not a map.
func GetIn(m map[string]any, path []string, def any) any {
	var cur any = m
	for _, key := range path {
		mm, ok := cur.(map[string]any)
		if !ok {
			return def
		}
		cur, ok = mm[key]
		if !ok {
			return def
		}
	}
	return cur
}

// UpdateIn returns a copy of m with the value at path replaced by
// fn(current). Missing intermediate maps are created; a missing leaf passes
// def to fn. Maps along the path are copied, everything else is shared.
func UpdateIn(m map[string]any, path []string, fn func(any) any, def any) map[string]any {
	if len(path) == 0 {
		return m
	}
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	key := path[0]
	if len(path) == 1 {
		cur, ok := out[key]
		if !ok {
			cur = def
		}
		out[key] = fn(cur)
		return out
	}
	inner, _ := out[key].(map[string]any)
	out[key] = UpdateIn(inner, path[1:], fn, def)
	return out
}

// AssocIn returns a copy of m with v set at path, creating intermediate maps
// as needed.
func AssocIn(m map[string]any, path []string, v any) map[string]any {
	return UpdateIn(m, path, func(any) any { return v }, nil)
}
