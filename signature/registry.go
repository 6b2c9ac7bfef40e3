package signature

import (
	"reflect"
	"strconv"
	"sync"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/funcz/errors"
)

// Entry is fallback arity metadata for a callable whose Go type
// under-specifies its logical signature (a `...any` wrapper, a non-function
// callable value).
type Entry struct {
	RequiredArgs     int
	HasVarPositional bool
	HasKeywords      bool
}

// Signature synthesizes the parameter list implied by the entry. Names are
// unknown, so required parameters are positional-only and keyword acceptance
// is modeled as a var-keyword absorber.
func (e Entry) Signature() Signature {
	params := make([]Parameter, 0, e.RequiredArgs+2)
	for i := 0; i < e.RequiredArgs; i++ {
		params = append(params, Parameter{Name: "arg" + strconv.Itoa(i), Kind: PositionalOnly})
	}
	if e.HasVarPositional {
		params = append(params, Parameter{Name: "args", Kind: VarPositional})
	}
	if e.HasKeywords {
		params = append(params, Parameter{Name: "kwargs", Kind: VarKeyword})
	}
	return Signature{Params: params, Source: SourceRegistry}
}

// funcKey distinguishes function code pointers from registered comparable
// values in identity maps.
type funcKey uintptr

// Identity returns a comparable identity key for a callable: the code pointer
// for functions, the value itself for comparable non-function values. ok is
// false for values that cannot be identity-keyed.
func Identity(target any) (any, bool) {
	if target == nil {
		return nil, false
	}
	v := reflect.ValueOf(target)
	if v.Kind() == reflect.Func {
		if v.IsNil() {
			return nil, false
		}
		return funcKey(v.Pointer()), true
	}
	if v.Comparable() {
		return target, true
	}
	return nil, false
}

// Registry maps callable identity to fallback entries. Intended to be
// populated during initialization and read thereafter; lookup is by identity,
// never by name, and a miss means "absent", leaving the caller to degrade to
// an unknown signature.
type Registry struct {
	mu      sync.RWMutex
	entries map[any]Entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[any]Entry)}
}

// Register records fallback metadata for target. Registering a target that
// cannot be identity-keyed is an error; re-registering replaces the entry.
func (r *Registry) Register(target any, e Entry) error {
	key, ok := Identity(target)
	if !ok {
		return errorc.With(
			errors.ErrInvalidTarget,
			errorc.String(errors.ErrorFieldTargetType, typeName(target)),
			errorc.String(errors.ErrorFieldDetail, "target cannot be identity-keyed"),
		)
	}
	if e.RequiredArgs < 0 {
		return errorc.With(
			errors.ErrInvalidSignature,
			errorc.String(errors.ErrorFieldDetail, "negative required argument count"),
		)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = e
	return nil
}

// Lookup returns the entry registered for target, if any.
func (r *Registry) Lookup(target any) (Entry, bool) {
	key, ok := Identity(target)
	if !ok {
		return Entry{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[key]
	return e, ok
}

func typeName(target any) string {
	if target == nil {
		return "nil"
	}
	return reflect.TypeOf(target).String()
}

// DefaultRegistry is the process-wide fallback registry consulted by the
// default resolver.
var DefaultRegistry = NewRegistry()

// Register adds an entry to the default registry.
func Register(target any, e Entry) error {
	return DefaultRegistry.Register(target, e)
}
