package bind

import (
	"reflect"
	"strconv"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/funcz/errors"
	"github.com/ygrebnov/funcz/signature"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// CallFunc invokes fn using only its structural signature. Go function types
// carry no parameter names, so keyword arguments are a shape mismatch here;
// they require a declared signature (CallDeclared).
func CallFunc(fn reflect.Value, args []any, kwargs map[string]any) (any, error) {
	t := fn.Type()
	if len(kwargs) > 0 {
		return nil, errorc.With(
			errors.ErrMismatch,
			errorc.String(errors.ErrorFieldDetail, "keyword arguments require a declared signature"),
		)
	}
	fixed := t.NumIn()
	if t.IsVariadic() {
		fixed--
	}
	if len(args) < fixed {
		return nil, errorc.With(
			errors.ErrMismatch,
			errorc.String(errors.ErrorFieldRequired, strconv.Itoa(fixed)),
			errorc.String(errors.ErrorFieldReceived, strconv.Itoa(len(args))),
			errorc.String(errors.ErrorFieldDetail, "missing required positional arguments"),
		)
	}
	if len(args) > fixed && !t.IsVariadic() {
		return nil, errorc.With(
			errors.ErrMismatch,
			errorc.String(errors.ErrorFieldRequired, strconv.Itoa(fixed)),
			errorc.String(errors.ErrorFieldReceived, strconv.Itoa(len(args))),
			errorc.String(errors.ErrorFieldDetail, "too many positional arguments"),
		)
	}

	in := make([]reflect.Value, 0, len(args))
	for i, a := range args {
		var pt reflect.Type
		if i < fixed {
			pt = t.In(i)
		} else {
			pt = t.In(t.NumIn() - 1).Elem()
		}
		v, err := materialize(a, pt, "arg"+strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		in = append(in, v)
	}
	return unpack(t, fn.Call(in))
}

// CallDeclared invokes fn using a declared signature: keyword arguments are
// resolved onto named parameters, defaults fill the gaps, var-positional
// surplus materializes into the variadic tail or slice input, and absorbed
// keywords into the var-keyword map input. The signature is assumed to
// correspond 1:1 with fn's inputs (validated at declaration time).
func CallDeclared(fn reflect.Value, sig signature.Signature, args []any, kwargs map[string]any) (any, error) {
	t := fn.Type()
	slots := make([]any, len(sig.Params))
	set := make([]bool, len(sig.Params))
	var surplus []any
	absorbed := make(map[string]any)

	consumed := 0
	for i, p := range sig.Params {
		switch p.Kind {
		case signature.PositionalOnly, signature.PositionalOrKeyword:
			if consumed < len(args) {
				slots[i] = args[consumed]
				set[i] = true
				consumed++
			}
		case signature.VarPositional:
			surplus = args[consumed:]
			consumed = len(args)
		}
	}
	if consumed < len(args) {
		return nil, errorc.With(
			errors.ErrMismatch,
			errorc.String(errors.ErrorFieldReceived, strconv.Itoa(len(args))),
			errorc.String(errors.ErrorFieldDetail, "too many positional arguments"),
		)
	}

	for name, val := range kwargs {
		idx, ok := sig.IndexByName(name)
		if !ok {
			if !sig.HasVarKeyword() {
				return nil, errorc.With(
					errors.ErrMismatch,
					errorc.String(errors.ErrorFieldKeyword, name),
					errorc.String(errors.ErrorFieldDetail, "unknown keyword argument"),
				)
			}
			absorbed[name] = val
			continue
		}
		if set[idx] {
			return nil, errorc.With(
				errors.ErrMismatch,
				errorc.String(errors.ErrorFieldKeyword, name),
				errorc.String(errors.ErrorFieldDetail, "parameter received multiple values"),
			)
		}
		slots[idx] = val
		set[idx] = true
	}

	for i, p := range sig.Params {
		if p.Kind == signature.VarPositional || p.Kind == signature.VarKeyword {
			continue
		}
		if set[i] {
			continue
		}
		if !p.HasDefault {
			return nil, errorc.With(
				errors.ErrMismatch,
				errorc.String(errors.ErrorFieldParamName, p.Name),
				errorc.String(errors.ErrorFieldDetail, "missing required argument"),
			)
		}
		slots[i] = p.Default
		set[i] = true
	}

	in := make([]reflect.Value, 0, t.NumIn()+len(surplus))
	for i, p := range sig.Params {
		pt := t.In(i)
		switch p.Kind {
		case signature.VarPositional:
			et := pt.Elem()
			if t.IsVariadic() && i == t.NumIn()-1 {
				for _, a := range surplus {
					v, err := materialize(a, et, p.Name)
					if err != nil {
						return nil, err
					}
					in = append(in, v)
				}
				continue
			}
			sl := reflect.MakeSlice(pt, 0, len(surplus))
			for _, a := range surplus {
				v, err := materialize(a, et, p.Name)
				if err != nil {
					return nil, err
				}
				sl = reflect.Append(sl, v)
			}
			in = append(in, sl)
		case signature.VarKeyword:
			m := reflect.MakeMapWithSize(pt, len(absorbed))
			for k, a := range absorbed {
				v, err := materialize(a, pt.Elem(), p.Name)
				if err != nil {
					return nil, err
				}
				m.SetMapIndex(reflect.ValueOf(k), v)
			}
			in = append(in, m)
		default:
			v, err := materialize(slots[i], pt, p.Name)
			if err != nil {
				return nil, err
			}
			in = append(in, v)
		}
	}
	return unpack(t, fn.Call(in))
}

// materialize converts a bound argument into a value of the parameter type.
// Shape is already satisfied when this runs, so a failure here is a genuine
// argument-type error, not an accumulation signal.
func materialize(a any, pt reflect.Type, pname string) (reflect.Value, error) {
	if a == nil {
		switch pt.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
			return reflect.Zero(pt), nil
		}
		return reflect.Value{}, errorc.With(
			errors.ErrArgumentType,
			errorc.String(errors.ErrorFieldParamName, pname),
			errorc.String(errors.ErrorFieldExpectedType, pt.String()),
			errorc.String(errors.ErrorFieldReceivedType, "nil"),
		)
	}
	v := reflect.ValueOf(a)
	if v.Type().AssignableTo(pt) {
		return v, nil
	}
	// Numeric widening only. Arbitrary conversions (int to string, etc.)
	// would silently change the value's meaning.
	if isNumericKind(v.Kind()) && isNumericKind(pt.Kind()) && v.Type().ConvertibleTo(pt) {
		return v.Convert(pt), nil
	}
	return reflect.Value{}, errorc.With(
		errors.ErrArgumentType,
		errorc.String(errors.ErrorFieldParamName, pname),
		errorc.String(errors.ErrorFieldExpectedType, pt.String()),
		errorc.String(errors.ErrorFieldReceivedType, v.Type().String()),
	)
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

// unpack maps the function's results to a single value: a trailing error
// result is the genuine-error channel, one remaining result is returned as
// is, several as []any.
func unpack(t reflect.Type, out []reflect.Value) (any, error) {
	n := t.NumOut()
	if n > 0 && t.Out(n-1) == errorType {
		if ev := out[n-1]; !ev.IsNil() {
			return nil, ev.Interface().(error)
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	}
	res := make([]any, len(out))
	for i, v := range out {
		res[i] = v.Interface()
	}
	return res, nil
}
