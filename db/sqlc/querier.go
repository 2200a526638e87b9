package sqlc

import (
	"context"

	"github.com/sqlc-dev/pqtype"
)

type Querier interface {
	GetGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error)
	GetGamesFinishedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error)
	GetMatchResult(ctx context.Context, gameUuid string) (MatchResult, error)
	IncrementGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) error
	IncrementGamesFinishedCount(ctx context.Context, serverIp pqtype.Inet) error
	InsertMatchResult(ctx context.Context, arg InsertMatchResultParams) error
}

var _ Querier = (*Queries)(nil)
