package terrain

import "errors"

// Terrain errors
var (
	ErrOutOfBounds  = errors.New("coordinate out of bounds")
	ErrInvalidSize  = errors.New("grid size must be positive")
	ErrInvalidRatio = errors.New("land ratio must be between 0 and 100")
	ErrInvalidState = errors.New("invalid cell state")
	ErrBadPicture   = errors.New("malformed grid picture")
)
