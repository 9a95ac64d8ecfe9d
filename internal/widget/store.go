package widget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"portfolio-web/internal/calendar"
)

// Store keeps one calendar widget state per visitor session. State is a
// small JSON blob (week anchor + selection) with a sliding TTL.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(redisAddr string, ttl time.Duration) (*Store, error) {
	const op = "widget.NewStore"

	client := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Store{client: client, ttl: ttl}, nil
}

func sessionKey(id string) string {
	return fmt.Sprintf("widget:%s", id)
}

// Get returns the stored widget for the session, or nil when the
// session has no widget yet.
func (s *Store) Get(ctx context.Context, sessionID string) (*calendar.Widget, error) {
	const op = "widget.Store.Get"

	data, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var w calendar.Widget
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &w, nil
}

func (s *Store) Save(ctx context.Context, sessionID string, w *calendar.Widget) error {
	const op = "widget.Store.Save"

	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.client.Set(ctx, sessionKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

const sessionCookie = "widget_session"

// SessionID returns the visitor's widget session ID, minting one and
// setting the cookie on the first visit.
func SessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}
