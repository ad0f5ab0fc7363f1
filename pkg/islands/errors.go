package islands

import "errors"

// ErrColorSpaceExhausted is returned when the exclusion set already holds every
// colour the allocator could produce.
var ErrColorSpaceExhausted = errors.New("islands: color space exhausted")
