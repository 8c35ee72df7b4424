package session

import (
	"errors"
	"net/http"
)

// ErrCorrupted signals stored session state that is present but fails to
// parse. The route guard treats this the same as no session at all: clear
// everything and send the user back to login.
var ErrCorrupted = errors.New("session state corrupted")

// Store is the durable holder of session state, scoped per browser.
//
// Read never errors on absence: missing token or profile come back as nil
// fields in State. ErrCorrupted is returned when a value is present but
// unparseable. Write replaces both values atomically from the caller's point
// of view; a subsequent Read observes the new values. Clear removes both.
type Store interface {
	Read(r *http.Request) (State, error)
	Write(w http.ResponseWriter, r *http.Request, state State) error
	Clear(w http.ResponseWriter, r *http.Request) error
}
