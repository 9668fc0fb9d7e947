package repository

import (
	"context"
	"database/sql"

	"github.com/Falmousl/Finance-Project/internal/model"
)

type WatchlistRepository struct {
	db *sql.DB
}

func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

func (r *WatchlistRepository) List(ctx context.Context, username string) ([]model.WatchlistItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, login_name, item_text, created_at
		FROM user_items
		WHERE login_name = $1
		ORDER BY id ASC
	`, username)
	if err != nil {
		return nil, storeErr("list watchlist", err)
	}
	defer rows.Close()

	var items []model.WatchlistItem
	for rows.Next() {
		var item model.WatchlistItem
		if err := rows.Scan(&item.ID, &item.Owner, &item.Ticker, &item.CreatedAt); err != nil {
			return nil, storeErr("scan watchlist item", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("list watchlist", err)
	}

	return items, nil
}

func (r *WatchlistRepository) Add(ctx context.Context, username, ticker string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_items(login_name, item_text)
		VALUES($1, $2)
	`, username, ticker)
	return storeErr("add watchlist item", err)
}

// Remove deletes every row for ticker, including duplicates.
func (r *WatchlistRepository) Remove(ctx context.Context, username, ticker string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM user_items WHERE item_text = $1 AND login_name = $2
	`, ticker, username)
	return storeErr("remove watchlist item", err)
}

func (r *WatchlistRepository) Ping(ctx context.Context) error {
	return storeErr("ping", r.db.PingContext(ctx))
}
