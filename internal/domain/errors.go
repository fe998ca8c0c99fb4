package domain

import "errors"

var (
	ErrMetadataMissing = errors.New("dictionary metadata missing")
	ErrCsrfNotFound    = errors.New("csrf token not found")
	ErrCookieLoad      = errors.New("cookie jar load failed")
	ErrRemoteRejected  = errors.New("remote rejected dictionary")
)
