package session

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
)

// CookieSessionID names the opaque session-id cookie used by the redis backend.
const CookieSessionID = "bitSession"

// RedisStore keeps tokens server-side: the browser only holds an opaque ULID
// session id, the credential bundle and profile live in redis under it with a
// TTL equal to the cookie max-age.
type RedisStore struct {
	client *redis.Client
	maxAge time.Duration
	domain string
	secure bool
}

type redisRecord struct {
	Token   *Token   `json:"token,omitempty"`
	Profile *Profile `json:"profile,omitempty"`
}

func NewRedisStore(client *redis.Client, maxAge int, domain string, secure bool) *RedisStore {
	return &RedisStore{
		client: client,
		maxAge: time.Duration(maxAge) * time.Second,
		domain: domain,
		secure: secure,
	}
}

func (s *RedisStore) Read(r *http.Request) (State, error) {
	sid, ok := cookieValue(r, CookieSessionID)
	if !ok {
		return State{}, nil
	}

	data, err := s.client.Get(r.Context(), s.key(sid)).Bytes()
	if err == redis.Nil {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("read session from redis: %w", err)
	}

	var rec redisRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return State{}, fmt.Errorf("session record: %w", ErrCorrupted)
	}

	return State{Token: rec.Token, Profile: rec.Profile}, nil
}

func (s *RedisStore) Write(w http.ResponseWriter, r *http.Request, state State) error {
	sid, ok := cookieValue(r, CookieSessionID)
	if !ok {
		sid = ulid.Make().String()
	}

	data, err := json.Marshal(redisRecord{Token: state.Token, Profile: state.Profile})
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}

	if err := s.client.Set(r.Context(), s.key(sid), data, s.maxAge).Err(); err != nil {
		return fmt.Errorf("store session in redis: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieSessionID,
		Value:    sid,
		Path:     "/",
		Domain:   s.domain,
		MaxAge:   int(s.maxAge / time.Second),
		Secure:   s.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *RedisStore) Clear(w http.ResponseWriter, r *http.Request) error {
	if sid, ok := cookieValue(r, CookieSessionID); ok {
		if err := s.client.Del(r.Context(), s.key(sid)).Err(); err != nil {
			return fmt.Errorf("delete session from redis: %w", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieSessionID,
		Value:    "",
		Path:     "/",
		Domain:   s.domain,
		MaxAge:   -1,
		Secure:   s.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *RedisStore) key(sid string) string {
	return "session:" + sid
}
