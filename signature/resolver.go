package signature

import (
	"reflect"
	"strconv"
	"sync"
)

// Provider exposes a declared signature for a callable value. Declared
// signatures take precedence over both introspection and registry entries.
type Provider interface {
	Signature() Signature
}

// Resolver produces a normalized Signature for any callable and memoizes the
// result per callable identity for the process lifetime. A callable's
// structural signature cannot change, so the cache is monotonic and has no
// invalidation path; concurrent recomputation of the same key is benign.
type Resolver struct {
	registry *Registry
	cache    sync.Map // identity key -> Signature
}

// NewResolver returns a resolver backed by the given fallback registry.
// A nil registry means the process-wide default.
func NewResolver(registry *Registry) *Resolver {
	if registry == nil {
		registry = DefaultRegistry
	}
	return &Resolver{registry: registry}
}

// Resolve returns the normalized signature for target.
//
// Resolution order:
//  1. a declared signature (Provider);
//  2. structural introspection of function types — except fully opaque
//     `func(...any)` shapes, which consult the registry first and fall back
//     to their (vacuous) structural form;
//  3. the fallback registry for non-function callables;
//  4. the unknown signature.
func (r *Resolver) Resolve(target any) Signature {
	key, keyed := Identity(target)
	if keyed {
		if v, ok := r.cache.Load(key); ok {
			return v.(Signature)
		}
	}
	sig := r.resolve(target)
	if keyed {
		r.cache.Store(key, sig)
	}
	return sig
}

func (r *Resolver) resolve(target any) Signature {
	if p, ok := target.(Provider); ok {
		return p.Signature()
	}
	if target == nil {
		return Unknown()
	}
	v := reflect.ValueOf(target)
	if v.Kind() == reflect.Func && !v.IsNil() {
		t := v.Type()
		if isOpaqueFuncType(t) {
			if e, ok := r.registry.Lookup(target); ok {
				return e.Signature()
			}
		}
		return Introspect(t)
	}
	if e, ok := r.registry.Lookup(target); ok {
		return e.Signature()
	}
	return Unknown()
}

// isOpaqueFuncType reports whether t is the `func(...any)` wrapper shape whose
// structural signature says nothing about logical arity. Only these consult
// the registry: a true structural signature is never overridden.
func isOpaqueFuncType(t reflect.Type) bool {
	if !t.IsVariadic() || t.NumIn() != 1 {
		return false
	}
	elem := t.In(0).Elem()
	return elem.Kind() == reflect.Interface && elem.NumMethod() == 0
}

// Introspect derives a signature from a function type. Go exposes no
// parameter names or defaults, so parameters are positional-only with
// synthesized names, and a variadic tail becomes a var-positional parameter.
func Introspect(t reflect.Type) Signature {
	params := make([]Parameter, 0, t.NumIn())
	for i := 0; i < t.NumIn(); i++ {
		if t.IsVariadic() && i == t.NumIn()-1 {
			params = append(params, Parameter{Name: "args", Kind: VarPositional})
			continue
		}
		params = append(params, Parameter{Name: "arg" + strconv.Itoa(i), Kind: PositionalOnly})
	}
	return Signature{Params: params, Source: SourceIntrospected}
}

var defaultResolver = NewResolver(nil)

// Resolve resolves target using the process-wide default resolver.
func Resolve(target any) Signature {
	return defaultResolver.Resolve(target)
}
