package craft

import "errors"

var (
	errNoResult = errors.New("station produced no result")

	// ErrUnknownResult is returned when a recipe names an item the registry lacks.
	ErrUnknownResult = errors.New("recipe result is not a known item")
)
