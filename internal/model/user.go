package model

import "time"

type User struct {
	ID        int64
	Username  string
	CreatedAt time.Time
}

type Session struct {
	Token     string
	Username  string
	ExpiresAt time.Time
}

// WatchlistItem is one row of a user's watchlist. The same ticker may appear
// more than once for an owner.
type WatchlistItem struct {
	ID        int64
	Owner     string
	Ticker    string
	CreatedAt time.Time
}
