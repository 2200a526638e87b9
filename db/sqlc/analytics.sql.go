package sqlc

import (
	"context"

	"github.com/sqlc-dev/pqtype"
)

const getGamesCreatedCount = `-- name: GetGamesCreatedCount :one
SELECT games_created_count FROM analytics
WHERE server_ip = $1
`

func (q *Queries) GetGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	row := q.db.QueryRowContext(ctx, getGamesCreatedCount, serverIp)
	var games_created_count int64
	err := row.Scan(&games_created_count)
	return games_created_count, err
}

const getGamesFinishedCount = `-- name: GetGamesFinishedCount :one
SELECT games_finished_count FROM analytics
WHERE server_ip = $1
`

func (q *Queries) GetGamesFinishedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	row := q.db.QueryRowContext(ctx, getGamesFinishedCount, serverIp)
	var games_finished_count int64
	err := row.Scan(&games_finished_count)
	return games_finished_count, err
}

const incrementGamesCreatedCount = `-- name: IncrementGamesCreatedCount :exec
INSERT INTO analytics (server_ip, games_created_count)
VALUES ($1, 1)
ON CONFLICT (server_ip)
DO UPDATE SET games_created_count = analytics.games_created_count + 1
`

func (q *Queries) IncrementGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, incrementGamesCreatedCount, serverIp)
	return err
}

const incrementGamesFinishedCount = `-- name: IncrementGamesFinishedCount :exec
INSERT INTO analytics (server_ip, games_finished_count)
VALUES ($1, 1)
ON CONFLICT (server_ip)
DO UPDATE SET games_finished_count = analytics.games_finished_count + 1
`

func (q *Queries) IncrementGamesFinishedCount(ctx context.Context, serverIp pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, incrementGamesFinishedCount, serverIp)
	return err
}
