// Package signature models the parameter structure of callables: a closed
// parameter-kind enum, an identity-keyed fallback registry for opaque
// callables, and a memoizing resolver.
package signature

import (
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/funcz/errors"
)

// Kind classifies how a parameter accepts arguments.
type Kind uint8

const (
	// PositionalOnly parameters are filled strictly by position. Introspected
	// Go functions expose no parameter names, so all their parameters are of
	// this kind.
	PositionalOnly Kind = iota
	// PositionalOrKeyword parameters are filled by position or by name.
	PositionalOrKeyword
	// KeywordOnly parameters are filled by name only.
	KeywordOnly
	// VarPositional absorbs surplus positional arguments.
	VarPositional
	// VarKeyword absorbs keyword arguments that match no declared name.
	VarKeyword
)

func (k Kind) String() string {
	switch k {
	case PositionalOnly:
		return "positional-only"
	case PositionalOrKeyword:
		return "positional-or-keyword"
	case KeywordOnly:
		return "keyword-only"
	case VarPositional:
		return "var-positional"
	case VarKeyword:
		return "var-keyword"
	default:
		return "unknown"
	}
}

// Source records where a Signature came from.
type Source uint8

const (
	// SourceUnknown marks callables with no structural metadata and no
	// registry coverage. Every classification question about them answers
	// Unknown.
	SourceUnknown Source = iota
	// SourceIntrospected marks signatures derived from a function type or
	// declared by the author; structural truth, never overridden.
	SourceIntrospected
	// SourceRegistry marks signatures synthesized from a fallback registry
	// entry.
	SourceRegistry
)

func (s Source) String() string {
	switch s {
	case SourceIntrospected:
		return "introspected"
	case SourceRegistry:
		return "registry"
	default:
		return "unknown"
	}
}

// Parameter describes a single parameter of a callable.
type Parameter struct {
	Name       string
	Kind       Kind
	HasDefault bool
	Default    any
}

// Param returns a positional-or-keyword parameter without a default.
func Param(name string) Parameter {
	return Parameter{Name: name, Kind: PositionalOrKeyword}
}

// ParamDefault returns a positional-or-keyword parameter with a default value.
func ParamDefault(name string, def any) Parameter {
	return Parameter{Name: name, Kind: PositionalOrKeyword, HasDefault: true, Default: def}
}

// PosOnly returns a positional-only parameter without a default.
func PosOnly(name string) Parameter {
	return Parameter{Name: name, Kind: PositionalOnly}
}

// KwOnly returns a keyword-only parameter without a default.
func KwOnly(name string) Parameter {
	return Parameter{Name: name, Kind: KeywordOnly}
}

// KwOnlyDefault returns a keyword-only parameter with a default value.
func KwOnlyDefault(name string, def any) Parameter {
	return Parameter{Name: name, Kind: KeywordOnly, HasDefault: true, Default: def}
}

// VarPos returns a var-positional parameter.
func VarPos(name string) Parameter {
	return Parameter{Name: name, Kind: VarPositional}
}

// VarKw returns a var-keyword parameter.
func VarKw(name string) Parameter {
	return Parameter{Name: name, Kind: VarKeyword}
}

// Signature is an ordered parameter list plus its provenance.
type Signature struct {
	Params []Parameter
	Source Source
}

// Unknown returns the degenerate signature for opaque callables.
func Unknown() Signature {
	return Signature{Source: SourceUnknown}
}

// kindRank orders kinds as they may legally appear in a declaration.
func kindRank(k Kind) int {
	switch k {
	case PositionalOnly:
		return 0
	case PositionalOrKeyword:
		return 1
	case VarPositional:
		return 2
	case KeywordOnly:
		return 3
	default: // VarKeyword
		return 4
	}
}

// New validates ordering, uniqueness, and default placement, and returns a
// declared signature. Declared signatures are structural truth and carry
// SourceIntrospected.
//
// Validation rules:
//  1. Kinds appear in order: positional-only, positional-or-keyword,
//     var-positional, keyword-only, var-keyword.
//  2. At most one var-positional and one var-keyword parameter.
//  3. Names are non-empty and unique.
//  4. A positional parameter without a default may not follow one with a
//     default.
func New(params ...Parameter) (Signature, error) {
	seen := make(map[string]struct{}, len(params))
	rank := -1
	varPos, varKw := false, false
	defaulted := false
	for _, p := range params {
		if p.Name == "" {
			return Signature{}, errorc.With(
				errors.ErrInvalidSignature,
				errorc.String(errors.ErrorFieldDetail, "parameter name must not be empty"),
			)
		}
		if _, dup := seen[p.Name]; dup {
			return Signature{}, errorc.With(
				errors.ErrInvalidSignature,
				errorc.String(errors.ErrorFieldParamName, p.Name),
				errorc.String(errors.ErrorFieldDetail, "duplicate parameter name"),
			)
		}
		seen[p.Name] = struct{}{}

		r := kindRank(p.Kind)
		if r < rank {
			return Signature{}, errorc.With(
				errors.ErrInvalidSignature,
				errorc.String(errors.ErrorFieldParamName, p.Name),
				errorc.String(errors.ErrorFieldParamKind, p.Kind.String()),
				errorc.String(errors.ErrorFieldDetail, "parameter kind out of order"),
			)
		}
		rank = r

		switch p.Kind {
		case VarPositional:
			if varPos {
				return Signature{}, errorc.With(
					errors.ErrInvalidSignature,
					errorc.String(errors.ErrorFieldParamName, p.Name),
					errorc.String(errors.ErrorFieldDetail, "multiple var-positional parameters"),
				)
			}
			varPos = true
			if p.HasDefault {
				return Signature{}, errorc.With(
					errors.ErrInvalidSignature,
					errorc.String(errors.ErrorFieldParamName, p.Name),
					errorc.String(errors.ErrorFieldDetail, "variadic parameter cannot have a default"),
				)
			}
		case VarKeyword:
			if varKw {
				return Signature{}, errorc.With(
					errors.ErrInvalidSignature,
					errorc.String(errors.ErrorFieldParamName, p.Name),
					errorc.String(errors.ErrorFieldDetail, "multiple var-keyword parameters"),
				)
			}
			varKw = true
			if p.HasDefault {
				return Signature{}, errorc.With(
					errors.ErrInvalidSignature,
					errorc.String(errors.ErrorFieldParamName, p.Name),
					errorc.String(errors.ErrorFieldDetail, "variadic parameter cannot have a default"),
				)
			}
		case PositionalOnly, PositionalOrKeyword:
			if p.HasDefault {
				defaulted = true
			} else if defaulted {
				return Signature{}, errorc.With(
					errors.ErrInvalidSignature,
					errorc.String(errors.ErrorFieldParamName, p.Name),
					errorc.String(errors.ErrorFieldDetail, "non-default parameter follows default parameter"),
				)
			}
		}
	}
	return Signature{Params: params, Source: SourceIntrospected}, nil
}

// MustNew is New that panics on declaration errors. Intended for package-level
// signature variables where a malformed declaration is a programming error.
func MustNew(params ...Parameter) Signature {
	s, err := New(params...)
	if err != nil {
		panic(err)
	}
	return s
}

// Known reports whether the signature carries usable structural information.
func (s Signature) Known() bool { return s.Source != SourceUnknown }

// RequiredArgs counts parameters that must be filled for a call to be valid:
// positional kinds without defaults.
func (s Signature) RequiredArgs() int {
	n := 0
	for _, p := range s.Params {
		if p.HasDefault {
			continue
		}
		if p.Kind == PositionalOnly || p.Kind == PositionalOrKeyword {
			n++
		}
	}
	return n
}

// HasVarPositional reports whether any parameter absorbs surplus positional
// arguments.
func (s Signature) HasVarPositional() bool {
	for _, p := range s.Params {
		if p.Kind == VarPositional {
			return true
		}
	}
	return false
}

// HasVarKeyword reports whether any parameter absorbs unmatched keywords.
func (s Signature) HasVarKeyword() bool {
	for _, p := range s.Params {
		if p.Kind == VarKeyword {
			return true
		}
	}
	return false
}

// AcceptsKeywords reports whether the callable can meaningfully receive
// keyword arguments: any default, keyword-only, or var-keyword parameter.
func (s Signature) AcceptsKeywords() bool {
	for _, p := range s.Params {
		if p.HasDefault || p.Kind == KeywordOnly || p.Kind == VarKeyword {
			return true
		}
	}
	return false
}

// IndexByName returns the index of the parameter addressable by the given
// keyword. Positional-only and variadic parameters are not addressable.
func (s Signature) IndexByName(name string) (int, bool) {
	for i, p := range s.Params {
		if p.Name != name {
			continue
		}
		if p.Kind == PositionalOrKeyword || p.Kind == KeywordOnly {
			return i, true
		}
	}
	return 0, false
}
