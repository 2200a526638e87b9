package sqlc

import (
	"context"

	"github.com/sqlc-dev/pqtype"
)

type AnalyticsManager struct {
	queries Querier
}

func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{queries: queries}
}

func (a *AnalyticsManager) IncrementGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.IncrementGamesCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	return a.queries.GetGamesCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetGamesFinishedCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	return a.queries.GetGamesFinishedCount(ctx, serverIpNet)
}

// RecordMatchResult stores the final numbers of a game and counts it as
// finished for the server.
func (a *AnalyticsManager) RecordMatchResult(ctx context.Context, arg InsertMatchResultParams) error {
	if err := a.queries.InsertMatchResult(ctx, arg); err != nil {
		return err
	}
	return a.queries.IncrementGamesFinishedCount(ctx, arg.ServerIp)
}

func (a *AnalyticsManager) GetMatchResult(ctx context.Context, gameUuid string) (MatchResult, error) {
	return a.queries.GetMatchResult(ctx, gameUuid)
}
