package sqlc

import (
	"context"

	"github.com/sqlc-dev/pqtype"
)

const getMatchResult = `-- name: GetMatchResult :one
SELECT id, game_uuid, server_ip, winner_uuid,
       host_shots, host_hits, host_score,
       join_shots, join_hits, join_score, finished_at
FROM match_results
WHERE game_uuid = $1
`

func (q *Queries) GetMatchResult(ctx context.Context, gameUuid string) (MatchResult, error) {
	row := q.db.QueryRowContext(ctx, getMatchResult, gameUuid)
	var i MatchResult
	err := row.Scan(
		&i.ID,
		&i.GameUuid,
		&i.ServerIp,
		&i.WinnerUuid,
		&i.HostShots,
		&i.HostHits,
		&i.HostScore,
		&i.JoinShots,
		&i.JoinHits,
		&i.JoinScore,
		&i.FinishedAt,
	)
	return i, err
}

const insertMatchResult = `-- name: InsertMatchResult :exec
INSERT INTO match_results (
    game_uuid, server_ip, winner_uuid,
    host_shots, host_hits, host_score,
    join_shots, join_hits, join_score
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

type InsertMatchResultParams struct {
	GameUuid   string
	ServerIp   pqtype.Inet
	WinnerUuid string
	HostShots  int32
	HostHits   int32
	HostScore  int32
	JoinShots  int32
	JoinHits   int32
	JoinScore  int32
}

func (q *Queries) InsertMatchResult(ctx context.Context, arg InsertMatchResultParams) error {
	_, err := q.db.ExecContext(ctx, insertMatchResult,
		arg.GameUuid,
		arg.ServerIp,
		arg.WinnerUuid,
		arg.HostShots,
		arg.HostHits,
		arg.HostScore,
		arg.JoinShots,
		arg.JoinHits,
		arg.JoinScore,
	)
	return err
}
