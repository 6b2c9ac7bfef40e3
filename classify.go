package funcz

import (
	"github.com/ygrebnov/funcz/internal/bind"
	"github.com/ygrebnov/funcz/signature"
)

// TriState answers a classification question that may be undecidable without
// actually calling the function.
type TriState uint8

const (
	TriFalse TriState = iota
	TriTrue
	TriUnknown
)

func (t TriState) String() string {
	switch t {
	case TriFalse:
		return "false"
	case TriTrue:
		return "true"
	default:
		return "unknown"
	}
}

func triOf(b bool) TriState {
	if b {
		return TriTrue
	}
	return TriFalse
}

// Kw carries keyword arguments for call and bind operations.
type Kw map[string]any

// RequiredArgCount returns the number of positional parameters without
// defaults. ok is false when the signature source is unknown.
func RequiredArgCount(sig signature.Signature) (int, bool) {
	if !sig.Known() {
		return 0, false
	}
	return sig.RequiredArgs(), true
}

// HasVarPositional reports whether the callable absorbs surplus positional
// arguments.
func HasVarPositional(sig signature.Signature) TriState {
	if !sig.Known() {
		return TriUnknown
	}
	return triOf(sig.HasVarPositional())
}

// HasKeywords reports whether the callable can meaningfully receive keyword
// arguments.
func HasKeywords(sig signature.Signature) TriState {
	if !sig.Known() {
		return TriUnknown
	}
	return triOf(sig.AcceptsKeywords())
}

// IsValidCall simulates strict parameter binding for the candidate call shape
// without invoking anything.
func IsValidCall(sig signature.Signature, args []any, kwargs Kw) TriState {
	if !sig.Known() {
		return TriUnknown
	}
	return triOf(bind.Valid(sig, len(args), kwargs))
}

// IsPartialCall reports whether supplying more arguments later could make the
// call valid. IsValidCall true implies IsPartialCall true.
func IsPartialCall(sig signature.Signature, args []any, kwargs Kw) TriState {
	if !sig.Known() {
		return TriUnknown
	}
	return triOf(bind.Partial(sig, len(args), kwargs))
}

// ShouldCurry reports whether wrapping target in a Curry is useful: more than
// one required argument, or exactly one alongside keyword acceptance. An
// unresolvable signature answers false — do not curry what cannot be
// classified.
func ShouldCurry(target any) bool {
	sig := signature.Resolve(target)
	n, ok := RequiredArgCount(sig)
	if !ok {
		return false
	}
	return n > 1 || (n == 1 && HasKeywords(sig) == TriTrue)
}
