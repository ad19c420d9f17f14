package recommendation

import "errors"

var (
	ErrNotContended = errors.New("recommendations are only requested for medium or high demand")
	ErrTimeout      = errors.New("recommendation request timed out")
	ErrEmptyResult  = errors.New("generator returned no result")
)
