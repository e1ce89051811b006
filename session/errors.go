package session

import "errors"

// ErrInvalidState indicates a state document that is not well-formed JSON.
var ErrInvalidState = errors.New("state is not valid JSON")
