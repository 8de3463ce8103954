package repository

import (
	"errors"
	"time"
)

// Storage-level sentinel errors. Services translate these into their own
// error taxonomy so handlers never see driver details.
var (
	// ErrDuplicateKey signals a unique index violation (duplicate response,
	// already-registered email).
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNotFound signals a write that matched no document.
	ErrNotFound = errors.New("document not found")
)

// opTimeout bounds every store call so a slow Mongo node surfaces an
// error instead of hanging the request.
const opTimeout = 5 * time.Second
