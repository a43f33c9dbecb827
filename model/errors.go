package model

import "github.com/pkg/errors"

// ErrNotFound is returned when a referenced post or user does not exist.
// Callers translate it to a 404.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput is returned on a malformed caller supplied value, such
// as a non-positive limit. Callers translate it to a 400.
var ErrInvalidInput = errors.New("invalid input")
