package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/saeidalz13/battleship-core/api"
	"github.com/saeidalz13/battleship-core/db"
	"github.com/saeidalz13/battleship-core/db/sqlc"
	mb "github.com/saeidalz13/battleship-core/models/battleship"
)

const logFile = "battleship.log"

func main() {
	if os.Getenv("STAGE") != api.StageProd {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("no .env file loaded:", err)
		}
	}

	// the terminal board owns stdout
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	log.SetOutput(f)

	stage := os.Getenv("STAGE")
	if stage == "" {
		stage = api.StageDev
	}

	port := 8000
	if portEnv := os.Getenv("PORT"); portEnv != "" {
		if port, err = strconv.Atoi(portEnv); err != nil {
			panic(err)
		}
	}

	seed := time.Now().UnixNano()
	if seedEnv := os.Getenv("SEED"); seedEnv != "" {
		if seed, err = strconv.ParseInt(seedEnv, 10, 64); err != nil {
			panic(err)
		}
	}

	opts := []api.Option{api.WithPort(port), api.WithStage(stage)}
	if psqlUrl := os.Getenv("PSQL_URL"); psqlUrl != "" {
		conn := db.MustConnectToDb(psqlUrl, db.DefaultMigrationDir)
		defer conn.Close()
		opts = append(opts, api.WithQuerier(sqlc.New(conn)))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.NewServer(opts...)
	go func() {
		if err := server.Run(ctx); err != nil {
			log.Println(err)
		}
	}()

	game := server.RequestProcessor.CreateGame(ctx, mb.WithSeed(seed))
	human, computer := game.HostPlayer(), game.JoinPlayer()
	log.Printf("game %s: spectate with ws://localhost:%d/battleship?gameUuid=%s\n", game.Uuid(), port, game.Uuid())
	log.Printf("game %s: watch your own board by adding &watchToken=%s\n", game.Uuid(), human.WatchToken())

	tb := newTerminalBoard(game.Uuid(), human.Uuid())
	human.SetTargeter(tb.humanTargeter(ctx))
	computer.SetTargeter(randomTargeter(rand.New(rand.NewSource(seed + 1))))

	go func() {
		if !tb.play(ctx, game, human) {
			return
		}
		log.Printf("game %s finished, winner: %s\n", game.Uuid(), game.Winner().Uuid())

		if err := server.RequestProcessor.RecordMatch(ctx, game); err != nil {
			log.Println(err)
		}
	}()

	tb.ui.Start(ctx, nil)
	server.RequestProcessor.TerminateGame(game.Uuid())
}
