package apiclient

import (
	"context"
	"net/http"

	"ofertare-gateway/internal/pkg/xerrors"
	"ofertare-gateway/internal/session"
)

// SessionTokenSource adapts the session store to the TokenSource contract for
// one request/response pair. Refreshed tokens land back in the store so the
// browser observes them on the very response that triggered the refresh.
type SessionTokenSource struct {
	store session.Store
	w     http.ResponseWriter
	r     *http.Request
}

func NewSessionTokenSource(store session.Store, w http.ResponseWriter, r *http.Request) *SessionTokenSource {
	return &SessionTokenSource{store: store, w: w, r: r}
}

func (s *SessionTokenSource) Token(_ context.Context) (session.Token, error) {
	state, err := s.store.Read(s.r)
	if err != nil || state.Token == nil {
		return session.Token{}, xerrors.ErrNoToken
	}
	return *state.Token, nil
}

func (s *SessionTokenSource) SetToken(_ context.Context, tok session.Token) error {
	state, err := s.store.Read(s.r)
	if err != nil {
		state = session.State{}
	}
	state.Token = &tok
	return s.store.Write(s.w, s.r, state)
}

func (s *SessionTokenSource) Invalidate(_ context.Context) error {
	return s.store.Clear(s.w, s.r)
}
