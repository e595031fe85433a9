package api

import "errors"

// ErrorUnderflow operation cannot succeed because it needs at least one
// entry and the index is empty. Returned by Min, Max, DeleteMin and
// DeleteMax.
var ErrorUnderflow = errors.New("underflow")

// ErrorOutOfRange operation cannot succeed because the requested rank
// falls outside [0, Len).
var ErrorOutOfRange = errors.New("outOfRange")

// ErrorKeyMissing operation cannot succeed because no key in the index
// qualifies, like Floor below the smallest key or Ceiling above the
// largest key.
var ErrorKeyMissing = errors.New("keyMissing")
