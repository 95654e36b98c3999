package core

import "errors"

// ErrNegativePid is wrapped into the panic raised when a caller passes a
// negative pid. Pids are assigned externally by the (out-of-scope)
// compiler pass and are documented as non-negative in practice; a
// negative pid reaching the registry is a programmer error.
var ErrNegativePid = errors.New("privreg: negative pid")

// ErrNotInitialized is wrapped into the panic raised when an operation
// is called on a Registry before Init has run.
var ErrNotInitialized = errors.New("privreg: registry used before Init")
