package domain

import "errors"

var (
	// ErrRowSource wraps every failure to obtain table rows
	// (network, non-2xx status, malformed document).
	ErrRowSource = errors.New("row source failed")

	// ErrTableNotFound indicates the page has no <table>.
	ErrTableNotFound = errors.New("tax table not found in document")
)
