package maxout

import "errors"

// Common errors.
//
// Configuration errors are not transient: a failed validation is terminal
// for that invocation and the caller decides whether to abort the wider
// graph execution.
var (
	ErrInvalidArgument = errors.New("maxout: invalid argument")
	ErrMissingInput    = errors.New("maxout: missing input tensor")
	ErrMissingOutput   = errors.New("maxout: missing output gradient tensor")
)
