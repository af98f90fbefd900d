package redactor

import "errors"

// ErrMissingFilename reports a 2xx response whose body carried no produced
// filename. The service may or may not have processed the document, but
// without a filename no download URL can be derived.
var ErrMissingFilename = errors.New("redactor: response missing produced filename")
