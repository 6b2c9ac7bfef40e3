package funcz

import (
	"bytes"
	"encoding/gob"
	"sync"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/funcz/errors"
	"github.com/ygrebnov/funcz/signature"
)

// State is the persisted form of a Curry: a registered target reference path,
// the accumulated arguments, and whether the encoded binding is the
// registered decorated object itself rather than a derivation of it.
type State struct {
	Path      string
	Args      []any
	Kwargs    map[string]any
	Decorated bool
}

// Codec round-trips Curry values through registered reference paths. Go
// functions cannot be serialized inline, so encoding requires the target (or
// a curried binding of it) to have been registered under a stable path on
// both sides, mirroring gob.RegisterName.
type Codec struct {
	mu      sync.RWMutex
	byPath  map[string]any
	byIdent map[any]string // underlying callable identity -> path
}

func NewCodec() *Codec {
	return &Codec{
		byPath:  make(map[string]any),
		byIdent: make(map[any]string),
	}
}

// RegisterTarget associates path with target. The target may be a plain
// callable or a curried binding produced by decorating one; in the latter
// case lookups index the binding's underlying callable, so derivations of the
// decorated function encode against the same path.
func (cd *Codec) RegisterTarget(path string, target any) error {
	if path == "" {
		return errorc.With(
			errors.ErrInvalidTarget,
			errorc.String(errors.ErrorFieldDetail, "empty reference path"),
		)
	}
	underlying := target
	if c, ok := target.(*Curry); ok {
		underlying = c.Target()
	}
	key, ok := signature.Identity(underlying)
	if !ok {
		return errorc.With(
			errors.ErrInvalidTarget,
			errorc.String(errors.ErrorFieldTargetType, typeName(underlying)),
			errorc.String(errors.ErrorFieldDetail, "target cannot be identity-keyed"),
		)
	}
	cd.mu.Lock()
	defer cd.mu.Unlock()
	cd.byPath[path] = target
	cd.byIdent[key] = path
	return nil
}

// Encode serializes c as (path, args, kwargs, decorated). Argument values
// travel through gob; custom argument types must be gob-registered by the
// caller.
func (cd *Codec) Encode(c *Curry) ([]byte, error) {
	if c == nil {
		return nil, errorc.With(
			errors.ErrInvalidTarget,
			errorc.String(errors.ErrorFieldDetail, "nil binding"),
		)
	}
	key, ok := signature.Identity(c.Target())
	if !ok {
		return nil, errorc.With(
			errors.ErrUnregisteredTarget,
			errorc.String(errors.ErrorFieldTargetType, typeName(c.Target())),
		)
	}
	cd.mu.RLock()
	path, found := cd.byIdent[key]
	var registered any
	if found {
		registered = cd.byPath[path]
	}
	cd.mu.RUnlock()
	if !found {
		return nil, errorc.With(
			errors.ErrUnregisteredTarget,
			errorc.String(errors.ErrorFieldTargetType, typeName(c.Target())),
		)
	}

	// The registered object may itself be the decorated binding. If the value
	// being encoded is structurally that object, decoding must return it
	// directly rather than re-wrap.
	decorated := false
	if rc, isCurry := registered.(*Curry); isCurry && rc.Equal(c) {
		decorated = true
	}

	st := State{Path: path, Args: c.Args(), Kwargs: c.kwargs, Decorated: decorated}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(st); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reconstructs a Curry from data. An unresolvable reference path is a
// fatal deserialization error; there is no retry path.
func (cd *Codec) Decode(data []byte) (*Curry, error) {
	var st State
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&st); err != nil {
		return nil, errorc.With(
			errors.ErrDeserializationFailure,
			errorc.String(errors.ErrorFieldDetail, err.Error()),
		)
	}
	cd.mu.RLock()
	registered, ok := cd.byPath[st.Path]
	cd.mu.RUnlock()
	if !ok {
		return nil, errorc.With(
			errors.ErrDeserializationFailure,
			errorc.String(errors.ErrorFieldPath, st.Path),
		)
	}
	if st.Decorated {
		rc, isCurry := registered.(*Curry)
		if !isCurry {
			return nil, errorc.With(
				errors.ErrDeserializationFailure,
				errorc.String(errors.ErrorFieldPath, st.Path),
				errorc.String(errors.ErrorFieldDetail, "registered object is not a curried binding"),
			)
		}
		return rc, nil
	}
	target := registered
	if rc, isCurry := registered.(*Curry); isCurry {
		target = rc.Target()
	}
	return NewKw(target, st.Kwargs, st.Args...)
}

var defaultCodec = NewCodec()

// RegisterTarget registers target under path in the default codec.
func RegisterTarget(path string, target any) error {
	return defaultCodec.RegisterTarget(path, target)
}

// Encode serializes c using the default codec.
func Encode(c *Curry) ([]byte, error) { return defaultCodec.Encode(c) }

// Decode reconstructs a Curry using the default codec.
func Decode(data []byte) (*Curry, error) { return defaultCodec.Decode(data) }

func init() {
	// Argument containers travel as interface graphs.
	gob.Register([]any(nil))
	gob.Register(map[string]any(nil))
}
