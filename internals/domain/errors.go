// Package domain holds the error kinds shared by the trackers and the sync worker.
package domain

import "errors"

// Error kinds. Callers wrap these with context and match them with errors.Is.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrResolution    = errors.New("cannot resolve issue reference")
	ErrTransport     = errors.New("tracker request failed")
	ErrNotFound      = errors.New("not found")
)
