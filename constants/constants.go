package constants

const Namespace = "funcz"

// ErrorFieldNamespace for all exported error field keys.
const ErrorFieldNamespace = Namespace
