// Package bind implements the binding simulation that matches a candidate
// argument shape against a signature without invoking the callable, and the
// reflect-based invocation engine that materializes arguments into a call.
package bind

import (
	"github.com/ygrebnov/funcz/signature"
)

// Valid reports whether the argument shape binds completely: every parameter
// without a default and not variadic ends up filled.
func Valid(sig signature.Signature, nargs int, kwargs map[string]any) bool {
	return simulate(sig, nargs, kwargs, false)
}

// Partial reports whether supplying more arguments later could make the call
// valid: unfilled parameters are treated as if each had an implicit default.
// Valid implies Partial for every signature and argument shape.
func Partial(sig signature.Signature, nargs int, kwargs map[string]any) bool {
	return simulate(sig, nargs, kwargs, true)
}

func simulate(sig signature.Signature, nargs int, kwargs map[string]any, partial bool) bool {
	filled := make([]bool, len(sig.Params))
	varPos := false
	varKw := false
	consumed := 0
	for i, p := range sig.Params {
		switch p.Kind {
		case signature.PositionalOnly, signature.PositionalOrKeyword:
			if consumed < nargs {
				filled[i] = true
				consumed++
			}
		case signature.VarPositional:
			varPos = true
			consumed = nargs
		case signature.VarKeyword:
			varKw = true
		}
	}
	if consumed < nargs && !varPos {
		// Surplus positional arguments with nothing to absorb them.
		return false
	}

	for name := range kwargs {
		idx, ok := sig.IndexByName(name)
		if !ok {
			if !varKw {
				return false
			}
			continue
		}
		if filled[idx] {
			// Parameter received both a positional and a keyword value.
			return false
		}
		filled[idx] = true
	}

	if partial {
		return true
	}
	for i, p := range sig.Params {
		if p.Kind == signature.VarPositional || p.Kind == signature.VarKeyword {
			continue
		}
		if !filled[i] && !p.HasDefault {
			return false
		}
	}
	return true
}
