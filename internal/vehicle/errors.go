package vehicle

import "errors"

// ErrInvalidSpec indicates a non-physical parameter was supplied to a
// spec constructor. All constructors wrap it with detail.
var ErrInvalidSpec = errors.New("vehicle: invalid spec")
