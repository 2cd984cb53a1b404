package domain

import "errors"

var ErrSessionNotFound = errors.New("session not found")

// Session is the server-held record of an authenticated identity. The ID is
// an opaque value handed to the client in a cookie; the snapshot is what the
// authorization gate resolves it back into.
type Session struct {
	ID       string   `json:"id"`
	Identity Identity `json:"identity"`
}
