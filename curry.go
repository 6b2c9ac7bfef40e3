// Package funcz is a functional-programming utility belt. Its core is an
// adaptive partial-application engine: a Curry value accumulates arguments
// until its target's signature says the call is complete, distinguishing
// "supply more arguments" from genuine call errors via tri-state
// classification of the target's resolved signature.
package funcz

import (
	stderrors "errors"
	"fmt"
	"hash/fnv"
	"io"
	"reflect"
	"sort"
	"strconv"
	"sync"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/funcz/errors"
	"github.com/ygrebnov/funcz/internal/bind"
	"github.com/ygrebnov/funcz/signature"
)

// Callable is a callable value that is not a plain Go function. Shape
// failures (wrong arity, unknown keyword) must wrap errors.ErrMismatch so the
// adaptive call path can tell them apart from errors raised by the body.
type Callable interface {
	Call(args []any, kwargs map[string]any) (any, error)
}

// Curry wraps a callable together with accumulated positional and keyword
// arguments. It is a value object: bound arguments never mutate, and every
// operation that adds arguments returns a new instance.
type Curry struct {
	target any
	fn     reflect.Value // valid only when target is a plain function
	args   []any
	kwargs map[string]any

	sigOnce sync.Once
	sig     signature.Signature
}

// New wraps target with optionally pre-bound positional arguments. Wrapping
// a Curry flattens one level: the new instance references the original
// callable, with the outer arguments appended after the inner ones.
func New(target any, args ...any) (*Curry, error) {
	return NewKw(target, nil, args...)
}

// NewKw is New with pre-bound keyword arguments. On flattening, outer
// keywords win on key collision.
func NewKw(target any, kwargs Kw, args ...any) (*Curry, error) {
	boundArgs := make([]any, len(args))
	copy(boundArgs, args)
	boundKw := cloneKw(kwargs)

	if inner, ok := target.(*Curry); ok {
		target = inner.target
		merged := make([]any, 0, len(inner.args)+len(boundArgs))
		merged = append(merged, inner.args...)
		merged = append(merged, boundArgs...)
		boundArgs = merged
		if len(inner.kwargs) > 0 {
			mergedKw := make(map[string]any, len(inner.kwargs)+len(boundKw))
			for k, v := range inner.kwargs {
				mergedKw[k] = v
			}
			for k, v := range boundKw {
				mergedKw[k] = v
			}
			boundKw = mergedKw
		}
	}

	c := &Curry{target: target, args: boundArgs, kwargs: boundKw}
	if _, ok := target.(Callable); !ok {
		v := reflect.ValueOf(target)
		if target == nil || v.Kind() != reflect.Func || v.IsNil() {
			return nil, errorc.With(
				errors.ErrInvalidTarget,
				errorc.String(errors.ErrorFieldTargetType, typeName(target)),
			)
		}
		c.fn = v
	}
	return c, nil
}

// MustNew is New that panics on construction errors. Intended for
// package-level curried variables where a non-callable target is a
// programming error.
func MustNew(target any, args ...any) *Curry {
	c, err := New(target, args...)
	if err != nil {
		panic(err)
	}
	return c
}

// Target returns the underlying callable. It is never another Curry.
func (c *Curry) Target() any { return c.target }

// Args returns a copy of the bound positional arguments.
func (c *Curry) Args() []any {
	out := make([]any, len(c.args))
	copy(out, c.args)
	return out
}

// Keywords returns a copy of the bound keyword arguments.
func (c *Curry) Keywords() Kw {
	if len(c.kwargs) == 0 {
		return nil
	}
	out := make(Kw, len(c.kwargs))
	for k, v := range c.kwargs {
		out[k] = v
	}
	return out
}

// Signature resolves the target's signature, computing it at most once per
// instance; resolution itself is additionally memoized per callable identity.
func (c *Curry) Signature() signature.Signature {
	c.sigOnce.Do(func() {
		c.sig = signature.Resolve(c.target)
	})
	return c.sig
}

// Call applies further positional arguments adaptively: it either invokes the
// target, returns a new *Curry holding the accumulated arguments, or
// propagates a genuine error.
func (c *Curry) Call(args ...any) (any, error) {
	return c.CallKw(nil, args...)
}

// CallKw is Call with keyword arguments; new keywords win on collision with
// bound ones.
//
// Decision order for a known signature:
//  1. no amount of additional arguments can complete the call — fail with
//     ErrArityExhausted;
//  2. the target has (or may have) a var-positional parameter — accumulate:
//     any argument count binds, so completion cannot be observed structurally
//     and eager invocation would be a guess;
//  3. the binding is under-filled — accumulate;
//  4. the binding is complete — invoke; whatever fails now comes from the
//     callable itself and propagates unchanged.
//
// Unknown-signature targets are invoked directly; a mismatch error from the
// invocation machinery conservatively accumulates instead of failing.
func (c *Curry) CallKw(kwargs Kw, args ...any) (any, error) {
	cargs, ckw := c.merge(args, kwargs)
	sig := c.Signature()

	if !sig.Known() {
		res, err := c.invoke(cargs, ckw)
		if err == nil {
			return res, nil
		}
		if stderrors.Is(err, errors.ErrMismatch) {
			return c.derive(cargs, ckw), nil
		}
		return nil, err
	}

	if !bind.Partial(sig, len(cargs), ckw) {
		return nil, errorc.With(
			errors.ErrArityExhausted,
			errorc.String(errors.ErrorFieldRequired, strconv.Itoa(sig.RequiredArgs())),
			errorc.String(errors.ErrorFieldReceived, strconv.Itoa(len(cargs))),
		)
	}
	if sig.HasVarPositional() {
		return c.derive(cargs, ckw), nil
	}
	if !bind.Valid(sig, len(cargs), ckw) {
		return c.derive(cargs, ckw), nil
	}
	return c.invoke(cargs, ckw)
}

// Bind returns a new Curry holding the combined arguments without attempting
// invocation.
func (c *Curry) Bind(args ...any) *Curry {
	return c.BindKw(nil, args...)
}

// BindKw is Bind with keyword arguments; new keywords win on collision.
func (c *Curry) BindKw(kwargs Kw, args ...any) *Curry {
	cargs, ckw := c.merge(args, kwargs)
	return c.derive(cargs, ckw)
}

// Invoke calls the underlying callable exactly once with the combined
// arguments, bypassing the adaptive accumulation logic. This is the explicit
// finalization path for var-positional targets.
func (c *Curry) Invoke(args ...any) (any, error) {
	return c.InvokeKw(nil, args...)
}

// InvokeKw is Invoke with keyword arguments.
func (c *Curry) InvokeKw(kwargs Kw, args ...any) (any, error) {
	cargs, ckw := c.merge(args, kwargs)
	return c.invoke(cargs, ckw)
}

// WithReceiver returns a binding with recv prepended as the first positional
// argument, mirroring bound-method semantics. The underlying target is
// unaffected; the owning object's call site invokes this deliberately.
func (c *Curry) WithReceiver(recv any) *Curry {
	args := make([]any, 0, len(c.args)+1)
	args = append(args, recv)
	args = append(args, c.args...)
	return &Curry{target: c.target, fn: c.fn, args: args, kwargs: cloneKw(Kw(c.kwargs))}
}

// Equal reports structural equality: same underlying callable identity, same
// positional argument sequence, same keyword set.
func (c *Curry) Equal(o *Curry) bool {
	if c == nil || o == nil {
		return c == o
	}
	if !sameIdentity(c.target, o.target) {
		return false
	}
	if len(c.args) != len(o.args) || len(c.kwargs) != len(o.kwargs) {
		return false
	}
	for i := range c.args {
		if !reflect.DeepEqual(c.args[i], o.args[i]) {
			return false
		}
	}
	for k, v := range c.kwargs {
		ov, ok := o.kwargs[k]
		if !ok || !reflect.DeepEqual(v, ov) {
			return false
		}
	}
	return true
}

// Hash returns a structural hash consistent with Equal. Hashing a binding
// with an unhashable bound argument fails with ErrUnhashableBinding; the
// failure always propagates.
func (c *Curry) Hash() (uint64, error) {
	h := fnv.New64a()
	key, ok := signature.Identity(c.target)
	if !ok {
		return 0, errorc.With(
			errors.ErrUnhashableBinding,
			errorc.String(errors.ErrorFieldTargetType, typeName(c.target)),
			errorc.String(errors.ErrorFieldDetail, "target cannot be identity-keyed"),
		)
	}
	fmt.Fprintf(h, "target:%v;", key)
	for i, a := range c.args {
		fmt.Fprintf(h, "arg%d:", i)
		if err := hashValue(h, a); err != nil {
			return 0, err
		}
	}
	if len(c.kwargs) > 0 {
		names := make([]string, 0, len(c.kwargs))
		for k := range c.kwargs {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			fmt.Fprintf(h, "kw:%s:", k)
			if err := hashValue(h, c.kwargs[k]); err != nil {
				return 0, err
			}
		}
	}
	return h.Sum64(), nil
}

func (c *Curry) String() string {
	return fmt.Sprintf("curry(%s, %d args, %d kwargs)", typeName(c.target), len(c.args), len(c.kwargs))
}

func (c *Curry) derive(args []any, kwargs map[string]any) *Curry {
	return &Curry{target: c.target, fn: c.fn, args: args, kwargs: kwargs}
}

// merge builds fresh combined argument containers; bound state is never
// mutated.
func (c *Curry) merge(args []any, kwargs Kw) ([]any, map[string]any) {
	cargs := make([]any, 0, len(c.args)+len(args))
	cargs = append(cargs, c.args...)
	cargs = append(cargs, args...)
	var ckw map[string]any
	if len(c.kwargs)+len(kwargs) > 0 {
		ckw = make(map[string]any, len(c.kwargs)+len(kwargs))
		for k, v := range c.kwargs {
			ckw[k] = v
		}
		for k, v := range kwargs {
			ckw[k] = v
		}
	}
	return cargs, ckw
}

func (c *Curry) invoke(args []any, kwargs map[string]any) (any, error) {
	if cb, ok := c.target.(Callable); ok {
		return cb.Call(args, kwargs)
	}
	return bind.CallFunc(c.fn, args, kwargs)
}

func cloneKw(kwargs Kw) map[string]any {
	if len(kwargs) == 0 {
		return nil
	}
	out := make(map[string]any, len(kwargs))
	for k, v := range kwargs {
		out[k] = v
	}
	return out
}

func typeName(target any) string {
	if target == nil {
		return "nil"
	}
	return reflect.TypeOf(target).String()
}

func sameIdentity(a, b any) bool {
	ka, oka := signature.Identity(a)
	kb, okb := signature.Identity(b)
	if !oka || !okb {
		return false
	}
	return ka == kb
}

// hashValue writes a deterministic representation of a hashable bound
// argument. Pointers hash by pointee to stay consistent with Equal's
// DeepEqual semantics; functions hash by code pointer.
func hashValue(h io.Writer, v any) error {
	if v == nil {
		fmt.Fprint(h, "nil;")
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func:
		fmt.Fprintf(h, "func:%x;", rv.Pointer())
		return nil
	case reflect.Pointer:
		if rv.IsNil() {
			fmt.Fprint(h, "nilptr;")
			return nil
		}
		fmt.Fprintf(h, "ptr:%s:", rv.Type().Elem().String())
		return hashValue(h, rv.Elem().Interface())
	}
	if !rv.Comparable() {
		return errorc.With(
			errors.ErrUnhashableBinding,
			errorc.String(errors.ErrorFieldReceivedType, rv.Type().String()),
		)
	}
	fmt.Fprintf(h, "%T:%v;", v, v)
	return nil
}
