package sqlc

import (
	"time"

	"github.com/sqlc-dev/pqtype"
)

type Analytic struct {
	ServerIp           pqtype.Inet
	GamesCreatedCount  int64
	GamesFinishedCount int64
}

type MatchResult struct {
	ID         int64
	GameUuid   string
	ServerIp   pqtype.Inet
	WinnerUuid string
	HostShots  int32
	HostHits   int32
	HostScore  int32
	JoinShots  int32
	JoinHits   int32
	JoinScore  int32
	FinishedAt time.Time
}
