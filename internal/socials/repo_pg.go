package socials

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectConnection = `
SELECT id, user_id, provider, COALESCE(provider_id, ''), COALESCE(access_token, ''),
       COALESCE(refresh_token, ''), scraped_data, connected_at, created_at, updated_at
FROM social_connections`

func (r *PGRepo) Upsert(ctx context.Context, conn Connection) (Connection, error) {
	return r.write(ctx, conn, `
INSERT INTO social_connections (
    id, user_id, provider, provider_id, access_token, refresh_token, scraped_data, connected_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (user_id, provider) DO UPDATE SET
    provider_id = EXCLUDED.provider_id,
    access_token = EXCLUDED.access_token,
    refresh_token = EXCLUDED.refresh_token,
    scraped_data = EXCLUDED.scraped_data,
    connected_at = EXCLUDED.connected_at,
    updated_at = EXCLUDED.updated_at
RETURNING id, created_at`)
}

// MergeScrapedData merges with the jsonb || operator so concurrent scrapes of
// different keys do not overwrite each other.
func (r *PGRepo) MergeScrapedData(ctx context.Context, conn Connection) (Connection, error) {
	return r.write(ctx, conn, `
INSERT INTO social_connections (
    id, user_id, provider, provider_id, access_token, refresh_token, scraped_data, connected_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (user_id, provider) DO UPDATE SET
    provider_id = EXCLUDED.provider_id,
    scraped_data = COALESCE(social_connections.scraped_data, '{}'::jsonb) || EXCLUDED.scraped_data,
    updated_at = EXCLUDED.updated_at
RETURNING id, created_at`)
}

func (r *PGRepo) write(ctx context.Context, conn Connection, query string) (Connection, error) {
	data := conn.ScrapedData
	if data == nil {
		data = map[string]any{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return Connection{}, fmt.Errorf("encode scraped data: %w", err)
	}

	err = r.DB.QueryRowContext(ctx, query,
		conn.ID,
		conn.UserID,
		conn.Provider,
		conn.ProviderID,
		conn.AccessToken,
		conn.RefreshToken,
		raw,
		conn.ConnectedAt,
		conn.CreatedAt,
		conn.UpdatedAt,
	).Scan(&conn.ID, &conn.CreatedAt)
	if err != nil {
		return Connection{}, err
	}
	return conn, nil
}

func (r *PGRepo) Get(ctx context.Context, userID, provider string) (Connection, error) {
	row := r.DB.QueryRowContext(ctx, selectConnection+"\nWHERE user_id = $1 AND provider = $2\nLIMIT 1", userID, provider)
	conn, err := scanConnection(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Connection{}, ErrNotFound
		}
		return Connection{}, err
	}
	return conn, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Connection, error) {
	rows, err := r.DB.QueryContext(ctx, selectConnection+"\nWHERE user_id = $1\nORDER BY provider ASC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Connection{}
	for rows.Next() {
		conn, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, conn)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConnection(row rowScanner) (Connection, error) {
	var (
		conn Connection
		raw  []byte
	)
	if err := row.Scan(
		&conn.ID,
		&conn.UserID,
		&conn.Provider,
		&conn.ProviderID,
		&conn.AccessToken,
		&conn.RefreshToken,
		&raw,
		&conn.ConnectedAt,
		&conn.CreatedAt,
		&conn.UpdatedAt,
	); err != nil {
		return Connection{}, err
	}
	conn.ScrapedData = map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &conn.ScrapedData); err != nil {
			return Connection{}, fmt.Errorf("decode scraped data: %w", err)
		}
	}
	return conn, nil
}

var _ Repo = (*PGRepo)(nil)
