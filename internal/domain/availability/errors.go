package availability

import "errors"

var ErrScreenNotFound = errors.New("screen not found")
