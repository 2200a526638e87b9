package sqlc

import (
	"context"
	"errors"
	"net"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sqlc-dev/pqtype"
)

var testInet = pqtype.Inet{
	IPNet: net.IPNet{IP: net.ParseIP("10.0.0.7"), Mask: net.CIDRMask(32, 32)},
	Valid: true,
}

func newTestDbManager(t *testing.T) (*DbManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	return NewDbManager(New(db)), mock
}

func TestIncrementGamesCreatedCount(t *testing.T) {
	dbm, mock := newTestDbManager(t)
	ctx, cancel := context.WithTimeout(context.Background(), QuerierCtxTimeout)
	defer cancel()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO analytics (server_ip, games_created_count)")).
		WithArgs(testInet).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT games_created_count FROM analytics")).
		WithArgs(testInet).
		WillReturnRows(sqlmock.NewRows([]string{"games_created_count"}).AddRow(int64(1)))

	if err := dbm.Analytics.IncrementGamesCreatedCount(ctx, testInet); err != nil {
		t.Fatal(err)
	}
	gamesCreated, err := dbm.Analytics.GetGamesCreatedCount(ctx, testInet)
	if err != nil {
		t.Fatal(err)
	}
	if gamesCreated != 1 {
		t.Fatalf("expected games created: 1\tgot: %d", gamesCreated)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRecordMatchResult(t *testing.T) {
	arg := InsertMatchResultParams{
		GameUuid:   "a1b2c3",
		ServerIp:   testInet,
		WinnerUuid: "host-uuid1",
		HostShots:  40,
		HostHits:   17,
		HostScore:  164,
		JoinShots:  38,
		JoinHits:   12,
		JoinScore:  0,
	}

	tests := []struct {
		name        string
		insertErr   error
		expectedErr error
	}{
		{name: "stores result and counts finished game"},
		{name: "insert failure skips the counter", insertErr: errors.New("duplicate key"), expectedErr: errors.New("duplicate key")},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dbm, mock := newTestDbManager(t)
			ctx, cancel := context.WithTimeout(context.Background(), QuerierCtxTimeout)
			defer cancel()

			insert := mock.ExpectExec(regexp.QuoteMeta("INSERT INTO match_results")).
				WithArgs(arg.GameUuid, arg.ServerIp, arg.WinnerUuid, arg.HostShots, arg.HostHits, arg.HostScore, arg.JoinShots, arg.JoinHits, arg.JoinScore)
			if test.insertErr != nil {
				insert.WillReturnError(test.insertErr)
			} else {
				insert.WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO analytics (server_ip, games_finished_count)")).
					WithArgs(testInet).
					WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := dbm.Analytics.RecordMatchResult(ctx, arg)
			if test.expectedErr == nil && err != nil {
				t.Fatal(err)
			}
			if test.expectedErr != nil && (err == nil || err.Error() != test.expectedErr.Error()) {
				t.Fatalf("expected err: %v\tgot: %v", test.expectedErr, err)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestGetMatchResult(t *testing.T) {
	dbm, mock := newTestDbManager(t)
	ctx := context.Background()
	finishedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	columns := []string{"id", "game_uuid", "server_ip", "winner_uuid", "host_shots", "host_hits", "host_score", "join_shots", "join_hits", "join_score", "finished_at"}
	mock.ExpectQuery(regexp.QuoteMeta("FROM match_results")).
		WithArgs("a1b2c3").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(3), "a1b2c3", "10.0.0.7/32", "host-uuid1", int32(40), int32(17), int32(164), int32(38), int32(12), int32(0), finishedAt))

	result, err := dbm.Analytics.GetMatchResult(ctx, "a1b2c3")
	if err != nil {
		t.Fatal(err)
	}
	if result.ID != 3 || result.WinnerUuid != "host-uuid1" || result.HostScore != 164 {
		t.Fatalf("unexpected match result: %+v", result)
	}
	if !result.ServerIp.Valid || !result.ServerIp.IPNet.IP.Equal(testInet.IPNet.IP) {
		t.Fatalf("expected server ip %s\tgot: %s", testInet.IPNet.String(), result.ServerIp.IPNet.String())
	}
	if !result.FinishedAt.Equal(finishedAt) {
		t.Fatalf("expected finished at %v\tgot: %v", finishedAt, result.FinishedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
