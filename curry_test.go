package funcz

import (
	stderrors "errors"
	"fmt"
	"testing"

	ferrors "github.com/ygrebnov/funcz/errors"
	"github.com/ygrebnov/funcz/signature"
)

// ---- Helpers ----

func addInts(a, b int) int { return a + b }

func mulOpaque(args ...any) any {
	return args[0].(int) * args[1].(int)
}

// sumCaller is a callable with no introspectable signature. It reports shape
// failures by wrapping the mismatch sentinel.
type sumCaller struct {
	calls *int
}

func (s sumCaller) Call(args []any, _ map[string]any) (any, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%w: want 2 arguments, got %d", ferrors.ErrMismatch, len(args))
	}
	*s.calls++
	a, ok := args[0].(int)
	if !ok {
		return nil, stderrors.New("unsupported operand")
	}
	return a + args[1].(int), nil
}

func asCurry(t *testing.T, res any) *Curry {
	t.Helper()
	c, ok := res.(*Curry)
	if !ok {
		t.Fatalf("expected accumulated *Curry, got %T (%v)", res, res)
	}
	return c
}

func callOK(t *testing.T, c *Curry, args ...any) any {
	t.Helper()
	res, err := c.Call(args...)
	if err != nil {
		t.Fatalf("Call(%v): unexpected error: %v", args, err)
	}
	return res
}

// scenarioSig declares f(a, b, c=10).
func scenarioFn(t *testing.T) *Fn {
	t.Helper()
	sig, err := signature.New(
		signature.Param("a"),
		signature.Param("b"),
		signature.ParamDefault("c", 10),
	)
	if err != nil {
		t.Fatalf("signature.New: %v", err)
	}
	f, err := Define(func(a, b, c int) int { return (a + b) * c }, sig)
	if err != nil {
		t.Fatalf("Define: %v", err)
	}
	return f
}

// ---- Tests ----

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("error: nil target", func(t *testing.T) {
		if _, err := New(nil); !stderrors.Is(err, ferrors.ErrInvalidTarget) {
			t.Fatalf("want ErrInvalidTarget, got %v", err)
		}
	})

	t.Run("error: not callable", func(t *testing.T) {
		if _, err := New(42); !stderrors.Is(err, ferrors.ErrInvalidTarget) {
			t.Fatalf("want ErrInvalidTarget, got %v", err)
		}
	})

	t.Run("flattens nested curry", func(t *testing.T) {
		inner := MustNew(addInts, 1)
		outer := MustNew(inner, 2)
		flat := MustNew(addInts, 1, 2)
		if !outer.Equal(flat) {
			t.Fatalf("curry(curry(f, 1), 2) != curry(f, 1, 2): %v vs %v", outer, flat)
		}
		if _, isCurry := outer.Target().(*Curry); isCurry {
			t.Fatal("flattened binding still wraps a Curry")
		}
		if got := outer.Args(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
			t.Fatalf("unexpected bound args: %v", got)
		}
	})

	t.Run("flattening: outer keywords win", func(t *testing.T) {
		inner := MustNew(scenarioFn(t)).BindKw(Kw{"c": 1})
		outer, err := NewKw(inner, Kw{"c": 2})
		if err != nil {
			t.Fatalf("NewKw: %v", err)
		}
		if got := outer.Keywords()["c"]; got != 2 {
			t.Fatalf("outer keyword should win, got c=%v", got)
		}
	})

	t.Run("bound arguments are copied", func(t *testing.T) {
		args := []any{1, 2}
		c := MustNew(addInts, args...)
		args[0] = 99
		if got := c.Args(); got[0] != 1 {
			t.Fatalf("binding observed caller mutation: %v", got)
		}
	})
}

func TestCurryCall(t *testing.T) {
	t.Parallel()

	t.Run("accumulates below required arity without invoking", func(t *testing.T) {
		calls := 0
		f := func(a, b int) int { calls++; return a + b }
		next := asCurry(t, callOK(t, MustNew(f), 1))
		if calls != 0 {
			t.Fatalf("under-applied call invoked the target %d times", calls)
		}
		if got := callOK(t, next, 2); got != 3 {
			t.Fatalf("want 3, got %v", got)
		}
		if calls != 1 {
			t.Fatalf("target invoked %d times, want exactly once", calls)
		}
	})

	t.Run("invokes at exact arity", func(t *testing.T) {
		if got := callOK(t, MustNew(addInts), 1, 2); got != 3 {
			t.Fatalf("want 3, got %v", got)
		}
	})

	t.Run("error: surplus arguments can never bind", func(t *testing.T) {
		_, err := MustNew(addInts).Call(1, 2, 3)
		if !stderrors.Is(err, ferrors.ErrArityExhausted) {
			t.Fatalf("want ErrArityExhausted, got %v", err)
		}
	})

	t.Run("defaults and keyword arguments", func(t *testing.T) {
		c := MustNew(scenarioFn(t))

		if got := callOK(t, c, 1, 2, 3); got != 9 {
			t.Fatalf("f(1,2,3): want 9, got %v", got)
		}

		step := asCurry(t, callOK(t, c, 1))
		if got := callOK(t, step, 2, 3); got != 9 {
			t.Fatalf("f(1)(2,3): want 9, got %v", got)
		}

		res, err := c.CallKw(Kw{"c": 3}, 1)
		if err != nil {
			t.Fatalf("CallKw: %v", err)
		}
		if got := callOK(t, asCurry(t, res), 2); got != 9 {
			t.Fatalf("f(1, c=3)(2): want 9, got %v", got)
		}

		// Defaults apply when binding completes without the keyword.
		if got := callOK(t, c, 1, 2); got != 30 {
			t.Fatalf("f(1,2): want 30 (c=10), got %v", got)
		}
	})

	t.Run("genuine error propagates at complete binding", func(t *testing.T) {
		// Binding of ("x", 2) looks complete for a two-argument function, so
		// the value error must surface instead of accumulating.
		_, err := MustNew(addInts).Call("x", 2)
		if !stderrors.Is(err, ferrors.ErrArgumentType) {
			t.Fatalf("want ErrArgumentType, got %v", err)
		}
		if stderrors.Is(err, ferrors.ErrMismatch) {
			t.Fatalf("value error misreported as shape mismatch: %v", err)
		}
	})

	t.Run("body error propagates unchanged", func(t *testing.T) {
		bodyErr := stderrors.New("division by zero")
		f := func(a, b int) (int, error) {
			if b == 0 {
				return 0, bodyErr
			}
			return a / b, nil
		}
		_, err := MustNew(f).Call(1, 0)
		if !stderrors.Is(err, bodyErr) {
			t.Fatalf("want the body's own error, got %v", err)
		}
	})

	t.Run("registry-covered opaque callable", func(t *testing.T) {
		if err := signature.Register(mulOpaque, signature.Entry{RequiredArgs: 2}); err != nil {
			t.Fatalf("Register: %v", err)
		}
		step := asCurry(t, callOK(t, MustNew(mulOpaque), 2))
		if got := callOK(t, step, 10); got != 20 {
			t.Fatalf("mul(2)(10): want 20, got %v", got)
		}
	})

	t.Run("var-positional target keeps accumulating", func(t *testing.T) {
		calls := 0
		sig := signature.MustNew(
			signature.Param("a"),
			signature.VarPos("rest"),
			signature.KwOnlyDefault("c", 3),
		)
		f := MustDefine(func(a int, rest []int, c int) int {
			calls++
			total := a * c
			for _, v := range rest {
				total += v
			}
			return total
		}, sig)

		step := asCurry(t, callOK(t, MustNew(f), 3))
		step = asCurry(t, callOK(t, step, 4, 5))
		if calls != 0 {
			t.Fatalf("adaptive call eagerly invoked a var-positional target %d times", calls)
		}
		got, err := step.Invoke()
		if err != nil {
			t.Fatalf("Invoke: %v", err)
		}
		if got != 18 { // 3*3 + 4 + 5
			t.Fatalf("want 18, got %v", got)
		}
		got, err = step.InvokeKw(Kw{"c": 2})
		if err != nil {
			t.Fatalf("InvokeKw: %v", err)
		}
		if got != 15 { // 3*2 + 4 + 5
			t.Fatalf("want 15, got %v", got)
		}
	})

	t.Run("unknown signature accumulates on mismatch", func(t *testing.T) {
		calls := 0
		c := MustNew(sumCaller{calls: &calls})
		if got := c.Signature().Source; got != signature.SourceUnknown {
			t.Fatalf("want unknown source, got %v", got)
		}
		step := asCurry(t, callOK(t, c, 2))
		if calls != 0 {
			t.Fatalf("mismatched call counted as invocation: %d", calls)
		}
		if got := callOK(t, step, 3); got != 5 {
			t.Fatalf("want 5, got %v", got)
		}
	})

	t.Run("unknown signature propagates genuine errors", func(t *testing.T) {
		calls := 0
		_, err := MustNew(sumCaller{calls: &calls}).Call("x", 2)
		if err == nil || stderrors.Is(err, ferrors.ErrMismatch) {
			t.Fatalf("want the callable's own error, got %v", err)
		}
	})
}

func TestCurryBind(t *testing.T) {
	t.Parallel()

	t.Run("bind never invokes", func(t *testing.T) {
		calls := 0
		f := func(a, b int) int { calls++; return a + b }
		bound := MustNew(f).Bind(1, 2)
		if calls != 0 {
			t.Fatalf("Bind invoked the target %d times", calls)
		}
		if got := callOK(t, bound); got != 3 {
			t.Fatalf("want 3, got %v", got)
		}
	})

	t.Run("bind accumulates keywords", func(t *testing.T) {
		c := MustNew(scenarioFn(t)).BindKw(Kw{"c": 2}, 1)
		if got := callOK(t, c, 4); got != 10 {
			t.Fatalf("want 10, got %v", got)
		}
	})
}

func TestWithReceiver(t *testing.T) {
	t.Parallel()

	type counter struct{ base int }
	f := func(c *counter, delta int) int { return c.base + delta }

	method := MustNew(f).WithReceiver(&counter{base: 10})
	if got := callOK(t, method, 5); got != 15 {
		t.Fatalf("want 15, got %v", got)
	}
}

func TestCurryEqualHash(t *testing.T) {
	t.Parallel()

	t.Run("equal bindings hash equal", func(t *testing.T) {
		a := MustNew(addInts, 1, 2)
		b := MustNew(addInts, 1, 2)
		if !a.Equal(b) {
			t.Fatal("structurally identical bindings compare unequal")
		}
		ha, err := a.Hash()
		if err != nil {
			t.Fatalf("Hash: %v", err)
		}
		hb, err := b.Hash()
		if err != nil {
			t.Fatalf("Hash: %v", err)
		}
		if ha != hb {
			t.Fatalf("equal bindings hash differently: %d vs %d", ha, hb)
		}
	})

	t.Run("different arguments compare unequal", func(t *testing.T) {
		if MustNew(addInts, 1).Equal(MustNew(addInts, 2)) {
			t.Fatal("bindings with different args compare equal")
		}
		if MustNew(addInts, 1).Equal(MustNew(addInts, 1, 2)) {
			t.Fatal("bindings with different arity compare equal")
		}
	})

	t.Run("different targets compare unequal", func(t *testing.T) {
		other := func(a, b int) int { return a + b }
		if MustNew(addInts, 1).Equal(MustNew(other, 1)) {
			t.Fatal("bindings over different functions compare equal")
		}
	})

	t.Run("keyword sets participate in equality", func(t *testing.T) {
		f := scenarioFn(t)
		a := MustNew(f).BindKw(Kw{"c": 1})
		b := MustNew(f).BindKw(Kw{"c": 2})
		if a.Equal(b) {
			t.Fatal("bindings with different keywords compare equal")
		}
		if !a.Equal(MustNew(f).BindKw(Kw{"c": 1})) {
			t.Fatal("bindings with identical keywords compare unequal")
		}
	})

	t.Run("error: unhashable bound argument", func(t *testing.T) {
		f := func(s []int, n int) int { return len(s) + n }
		_, err := MustNew(f, []int{1, 2}).Hash()
		if !stderrors.Is(err, ferrors.ErrUnhashableBinding) {
			t.Fatalf("want ErrUnhashableBinding, got %v", err)
		}
	})
}

func TestDefine(t *testing.T) {
	t.Parallel()

	t.Run("error: not a function", func(t *testing.T) {
		_, err := Define(42, signature.MustNew(signature.Param("a")))
		if !stderrors.Is(err, ferrors.ErrNotFunction) {
			t.Fatalf("want ErrNotFunction, got %v", err)
		}
	})

	t.Run("error: parameter count mismatch", func(t *testing.T) {
		_, err := Define(addInts, signature.MustNew(signature.Param("a")))
		if !stderrors.Is(err, ferrors.ErrInvalidSignature) {
			t.Fatalf("want ErrInvalidSignature, got %v", err)
		}
	})

	t.Run("error: variadic input must be var-positional", func(t *testing.T) {
		f := func(vals ...int) int { return len(vals) }
		_, err := Define(f, signature.MustNew(signature.Param("vals")))
		if !stderrors.Is(err, ferrors.ErrInvalidSignature) {
			t.Fatalf("want ErrInvalidSignature, got %v", err)
		}
	})

	t.Run("error: default not assignable", func(t *testing.T) {
		_, err := Define(
			func(a int) int { return a },
			signature.MustNew(signature.ParamDefault("a", "nope")),
		)
		if !stderrors.Is(err, ferrors.ErrInvalidSignature) {
			t.Fatalf("want ErrInvalidSignature, got %v", err)
		}
	})

	t.Run("variadic tail declared var-positional", func(t *testing.T) {
		f := MustDefine(
			func(prefix string, vals ...int) string {
				for _, v := range vals {
					prefix += fmt.Sprintf(":%d", v)
				}
				return prefix
			},
			signature.MustNew(signature.Param("prefix"), signature.VarPos("vals")),
		)
		got, err := f.Call([]any{"x", 1, 2}, nil)
		if err != nil {
			t.Fatalf("Call: %v", err)
		}
		if got != "x:1:2" {
			t.Fatalf("want x:1:2, got %v", got)
		}
	})

	t.Run("var-keyword absorbs into map input", func(t *testing.T) {
		f := MustDefine(
			func(a int, extra map[string]any) int { return a + len(extra) },
			signature.MustNew(signature.Param("a"), signature.VarKw("extra")),
		)
		got, err := f.Call([]any{1}, map[string]any{"x": 1, "y": 2})
		if err != nil {
			t.Fatalf("Call: %v", err)
		}
		if got != 3 {
			t.Fatalf("want 3, got %v", got)
		}
	})
}
