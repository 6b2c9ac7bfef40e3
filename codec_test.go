package funcz

import (
	stderrors "errors"
	"testing"

	ferrors "github.com/ygrebnov/funcz/errors"
)

func concatRepeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}

func TestCodecRoundTrip(t *testing.T) {
	codec := NewCodec()
	if err := codec.RegisterTarget("funcz_test.concatRepeat", concatRepeat); err != nil {
		t.Fatalf("RegisterTarget: %v", err)
	}

	t.Run("decode(encode(curry(f, a)))(b) == f(a, b)", func(t *testing.T) {
		data, err := codec.Encode(MustNew(concatRepeat, "ab"))
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		decoded, err := codec.Decode(data)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !decoded.Equal(MustNew(concatRepeat, "ab")) {
			t.Fatalf("round trip changed the binding: %v", decoded)
		}
		got, err := decoded.Call(3)
		if err != nil {
			t.Fatalf("Call: %v", err)
		}
		if got != "ababab" {
			t.Fatalf("want ababab, got %v", got)
		}
	})

	t.Run("error: encoding an unregistered target", func(t *testing.T) {
		_, err := codec.Encode(MustNew(addInts))
		if !stderrors.Is(err, ferrors.ErrUnregisteredTarget) {
			t.Fatalf("want ErrUnregisteredTarget, got %v", err)
		}
	})

	t.Run("error: unresolvable path is fatal", func(t *testing.T) {
		data, err := codec.Encode(MustNew(concatRepeat, "x"))
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		empty := NewCodec()
		if _, err := empty.Decode(data); !stderrors.Is(err, ferrors.ErrDeserializationFailure) {
			t.Fatalf("want ErrDeserializationFailure, got %v", err)
		}
	})

	t.Run("error: garbage payload", func(t *testing.T) {
		if _, err := codec.Decode([]byte{0x01, 0x02}); !stderrors.Is(err, ferrors.ErrDeserializationFailure) {
			t.Fatalf("want ErrDeserializationFailure, got %v", err)
		}
	})
}

func TestCodecDecoratedTarget(t *testing.T) {
	codec := NewCodec()
	decorated := MustNew(concatRepeat)
	if err := codec.RegisterTarget("funcz_test.repeat", decorated); err != nil {
		t.Fatalf("RegisterTarget: %v", err)
	}

	t.Run("the decorated binding itself decodes to the registered object", func(t *testing.T) {
		data, err := codec.Encode(decorated)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		got, err := codec.Decode(data)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if got != decorated {
			t.Fatal("decorated binding should decode to the registered object itself")
		}
	})

	t.Run("derivations rewrap the underlying target", func(t *testing.T) {
		derived := decorated.Bind("xy")
		data, err := codec.Encode(derived)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		got, err := codec.Decode(data)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if got == decorated {
			t.Fatal("derived binding decoded to the bare decorated object")
		}
		if !got.Equal(derived) {
			t.Fatalf("derived binding did not survive the round trip: %v", got)
		}
		res, err := got.Call(2)
		if err != nil {
			t.Fatalf("Call: %v", err)
		}
		if res != "xyxy" {
			t.Fatalf("want xyxy, got %v", res)
		}
	})
}

func TestDefaultCodec(t *testing.T) {
	if err := RegisterTarget("funcz_test.addInts", addInts); err != nil {
		t.Fatalf("RegisterTarget: %v", err)
	}
	data, err := Encode(MustNew(addInts, 40))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got, err := decoded.Call(2)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got != 42 {
		t.Fatalf("want 42, got %v", got)
	}
}
