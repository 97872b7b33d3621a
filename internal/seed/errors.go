package seed

import "errors"

// ErrInvalidDataset is returned when a dataset file cannot be decoded.
var ErrInvalidDataset = errors.New("invalid seed dataset")
