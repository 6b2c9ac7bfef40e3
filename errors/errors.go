package errors

import (
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/funcz/constants"
)

var namespace = errorc.Namespace(constants.Namespace)

// Sentinel errors. Use errors.Is to match.
var (
	// ErrInvalidTarget is returned when a value that is not callable is
	// wrapped, registered, or encoded.
	ErrInvalidTarget = namespace.NewError("target is not callable")

	// ErrNotFunction is returned when a declared signature is attached to a
	// value that is not a plain function.
	ErrNotFunction = namespace.NewError("target is not a function")

	// ErrInvalidSignature is returned for malformed signature declarations:
	// bad parameter ordering, duplicate names, or a declaration that does not
	// match the function's input list.
	ErrInvalidSignature = namespace.NewError("invalid signature declaration")

	// ErrMismatch marks argument-shape failures surfaced by the invocation
	// machinery: wrong positional count, unknown keyword, or a keyword that
	// collides with a positionally filled parameter. The adaptive call path
	// distinguishes these from errors raised by the callable's body.
	ErrMismatch = namespace.NewError("arguments do not match callable signature")

	// ErrArityExhausted is returned when classification proves that no amount
	// of additional arguments can make the call valid.
	ErrArityExhausted = namespace.NewError("call cannot be completed by supplying more arguments")

	// ErrArgumentType is returned when a bound argument value cannot be
	// assigned to its parameter. Binding shape is already satisfied at that
	// point, so this is a genuine error, never an accumulation signal.
	ErrArgumentType = namespace.NewError("argument not assignable to parameter")

	// ErrUnhashableBinding is returned by Hash when a bound argument is not
	// hashable (slices, maps, non-comparable structs).
	ErrUnhashableBinding = namespace.NewError("binding holds an unhashable argument")

	// ErrUnregisteredTarget is returned when encoding a binding whose target
	// has no registered reference path.
	ErrUnregisteredTarget = namespace.NewError("target has no registered reference path")

	// ErrDeserializationFailure is returned when a persisted target reference
	// cannot be resolved. Fatal; never retried.
	ErrDeserializationFailure = namespace.NewError("cannot resolve serialized target reference")
)

var newKey = errorc.KeyFactory(constants.ErrorFieldNamespace)

// Internal hierarchical segments used to build dotted keys.
const (
	keySegmentParam  = "param"
	keySegmentTarget = "target"
	keySegmentCodec  = "codec"
)

// Exported structured error field keys
var (
	ErrorFieldParamName = newKey("name", keySegmentParam)     // funcz.param.name
	ErrorFieldParamKind = newKey("kind", keySegmentParam)     // funcz.param.kind
	ErrorFieldKeyword   = newKey("keyword", keySegmentParam)  // funcz.param.keyword
	ErrorFieldRequired  = newKey("required", keySegmentParam) // funcz.param.required
	ErrorFieldReceived  = newKey("received", keySegmentParam) // funcz.param.received
)

var (
	ErrorFieldTargetType = newKey("type", keySegmentTarget) // funcz.target.type
)

var (
	ErrorFieldPath = newKey("path", keySegmentCodec) // funcz.codec.path
)

var (
	ErrorFieldExpectedType = newKey("expected_type")
	ErrorFieldReceivedType = newKey("received_type")
	ErrorFieldDetail       = newKey("detail")
)
