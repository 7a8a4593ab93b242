package gamedb

import "errors"

// ErrNotFound indicates the requested game does not exist.
var ErrNotFound = errors.New("game not found")
