package allocation

import "errors"

// ErrInvariantViolated is returned when a finished allocation fails its
// post-conditions. It indicates a defect in the engine, not bad input.
var ErrInvariantViolated = errors.New("allocation invariant violated")
