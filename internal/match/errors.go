package match

import "errors"

// ErrEmptyQuery indicates a blank or whitespace-only search query.
var ErrEmptyQuery = errors.New("query is empty")
