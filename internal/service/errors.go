package service

import "errors"

// ErrNotFound marks a business-rule violation: the request referenced a
// todo or task id that does not exist in the user's collection.
var ErrNotFound = errors.New("not found")
