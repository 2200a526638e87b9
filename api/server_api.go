package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/saeidalz13/battleship-core/db/sqlc"
	mb "github.com/saeidalz13/battleship-core/models/battleship"
	mc "github.com/saeidalz13/battleship-core/models/connection"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

const (
	defaultPort     = 8000
	shutdownTimeout = time.Second * 5

	RouteWatch     = "GET /battleship"
	RouteAnalytics = "GET /battleship/analytics"
)

type Server struct {
	port    int
	stage   string
	querier sqlc.Querier

	SessionManager   *mc.BattleshipSessionManager
	GameManager      *mb.BattleshipGameManager
	RequestProcessor *RequestProcessor
}

type Option func(*Server) error

func NewServer(optFuncs ...Option) *Server {
	server := Server{port: defaultPort, stage: StageDev}
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			panic(err)
		}
	}

	server.SessionManager = mc.NewBattleshipSessionManager()
	server.GameManager = mb.NewBattleshipGameManager()
	server.RequestProcessor = NewRequestProcessor(server.SessionManager, server.GameManager, server.querier)

	return &server
}

func WithPort(port int) Option {
	return func(s *Server) error {
		if port < 0 || port > 65535 {
			return fmt.Errorf("invalid port: %d", port)
		}
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != StageProd && stage != StageDev {
			return fmt.Errorf("invalid type of development stage: %s", stage)
		}
		s.stage = stage
		return nil
	}
}

func WithQuerier(q sqlc.Querier) Option {
	return func(s *Server) error {
		s.querier = q
		return nil
	}
}

func (s *Server) Port() int     { return s.port }
func (s *Server) Stage() string { return s.stage }

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(RouteWatch, s.RequestProcessor)
	mux.HandleFunc(RouteAnalytics, s.RequestProcessor.HandleAnalytics)
	return mux
}

// Run serves the watch feed and the background workers until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	go s.RequestProcessor.ManageBroadcast(ctx)
	go s.SessionManager.CleanupPeriodically(ctx)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", s.port),
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Listening to port %d (%s)\n", s.port, s.stage)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
