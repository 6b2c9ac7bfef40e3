package funcz

import (
	"reflect"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/funcz/errors"
	"github.com/ygrebnov/funcz/internal/bind"
	"github.com/ygrebnov/funcz/signature"
)

// Fn couples a Go function with a declared signature, giving it named
// parameters, default values, and keyword-only semantics that the function
// type alone cannot express. Fn implements Callable and signature.Provider.
type Fn struct {
	fn  reflect.Value
	sig signature.Signature
}

// Define attaches sig to fn after validating that the declaration corresponds
// 1:1 with the function's inputs:
//   - a var-positional parameter maps to the variadic tail or to a slice
//     input;
//   - a var-keyword parameter maps to a string-keyed map input;
//   - every other parameter maps to an ordinary input, and its default value
//     (if any) must be assignable to it;
//   - a variadic function input must be declared var-positional.
func Define(fn any, sig signature.Signature) (*Fn, error) {
	v := reflect.ValueOf(fn)
	if fn == nil || v.Kind() != reflect.Func || v.IsNil() {
		return nil, errorc.With(
			errors.ErrNotFunction,
			errorc.String(errors.ErrorFieldTargetType, typeName(fn)),
		)
	}
	t := v.Type()
	if len(sig.Params) != t.NumIn() {
		return nil, errorc.With(
			errors.ErrInvalidSignature,
			errorc.String(errors.ErrorFieldTargetType, t.String()),
			errorc.String(errors.ErrorFieldDetail, "parameter count does not match function inputs"),
		)
	}
	for i, p := range sig.Params {
		in := t.In(i)
		variadicTail := t.IsVariadic() && i == t.NumIn()-1
		switch p.Kind {
		case signature.VarPositional:
			if !variadicTail && in.Kind() != reflect.Slice {
				return nil, errorc.With(
					errors.ErrInvalidSignature,
					errorc.String(errors.ErrorFieldParamName, p.Name),
					errorc.String(errors.ErrorFieldDetail, "var-positional parameter requires a variadic or slice input"),
				)
			}
		case signature.VarKeyword:
			if in.Kind() != reflect.Map || in.Key().Kind() != reflect.String {
				return nil, errorc.With(
					errors.ErrInvalidSignature,
					errorc.String(errors.ErrorFieldParamName, p.Name),
					errorc.String(errors.ErrorFieldDetail, "var-keyword parameter requires a string-keyed map input"),
				)
			}
		default:
			if variadicTail {
				return nil, errorc.With(
					errors.ErrInvalidSignature,
					errorc.String(errors.ErrorFieldParamName, p.Name),
					errorc.String(errors.ErrorFieldDetail, "variadic input must be declared var-positional"),
				)
			}
			if p.HasDefault && p.Default != nil {
				dt := reflect.TypeOf(p.Default)
				if !dt.AssignableTo(in) && !dt.ConvertibleTo(in) {
					return nil, errorc.With(
						errors.ErrInvalidSignature,
						errorc.String(errors.ErrorFieldParamName, p.Name),
						errorc.String(errors.ErrorFieldExpectedType, in.String()),
						errorc.String(errors.ErrorFieldReceivedType, dt.String()),
						errorc.String(errors.ErrorFieldDetail, "default value not assignable to input"),
					)
				}
			}
		}
	}
	return &Fn{fn: v, sig: sig}, nil
}

// MustDefine is Define that panics on declaration errors.
func MustDefine(fn any, sig signature.Signature) *Fn {
	f, err := Define(fn, sig)
	if err != nil {
		panic(err)
	}
	return f
}

// Signature implements signature.Provider.
func (f *Fn) Signature() signature.Signature { return f.sig }

// Call implements Callable: keyword arguments resolve onto declared names,
// defaults fill unfilled parameters, and variadic parts materialize per the
// declaration.
func (f *Fn) Call(args []any, kwargs map[string]any) (any, error) {
	return bind.CallDeclared(f.fn, f.sig, args, kwargs)
}
