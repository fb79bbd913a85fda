// Package errorspkg provides errors shared across all app layers.
package errorspkg

import "errors"

// ErrInternal indicates an internal error that must not leak details to clients.
var ErrInternal = errors.New("internal")
