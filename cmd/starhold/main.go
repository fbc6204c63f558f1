package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/voidhaven/starhold/internal/bot"
	"github.com/voidhaven/starhold/internal/config"
	"github.com/voidhaven/starhold/internal/galaxy"
	"github.com/voidhaven/starhold/internal/logger"
	"github.com/voidhaven/starhold/internal/repository/postgres"
	redisrepo "github.com/voidhaven/starhold/internal/repository/redis"
	"github.com/voidhaven/starhold/internal/service"
	"github.com/voidhaven/starhold/internal/tuning"
	"github.com/voidhaven/starhold/pkg/engine"
)

// starhold plays a single bot-vs-bot game through the full service stack:
// Postgres turn history, Redis order cache, and the turn lock. For bulk
// statistics use cmd/botmatch, which drives the engine directly.
func main() {
	seats := flag.String("seats", "easy,medium", "Comma-separated difficulty per seat")
	seed := flag.Int64("seed", 1, "Game seed")
	maxTurns := flag.Int("max-turns", 200, "Max turns before giving up")
	flag.Parse()

	logger.Init()
	cfg := config.Load()

	diffs := strings.SplitN(*seats, ",", 2)
	if len(diffs) != 2 || diffs[0] == "" || diffs[1] == "" {
		log.Fatal().Str("seats", *seats).Msg("Expected two comma-separated difficulties")
	}

	engCfg := engine.DefaultConfig()
	if cfg.TuningPath != "" {
		var err error
		engCfg, err = tuning.Load(cfg.TuningPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.TuningPath).Msg("Tuning load failed")
		}
	}

	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Database connection failed")
	}
	defer db.Close()

	redisClient, err := redisrepo.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Redis connection failed")
	}
	defer redisClient.Close()

	gameRepo := postgres.NewGameRepo(db)
	turnRepo := postgres.NewTurnRepo(db)

	gameSvc := service.NewGameService(gameRepo, turnRepo, redisClient, galaxy.DefaultParams())
	turnSvc := service.NewTurnService(gameRepo, turnRepo, redisClient, engine.NewEngine(engCfg, nil))

	bot.SeedBotRng(*seed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("Received shutdown signal")
		cancel()
	}()

	game, err := gameSvc.CreateGame(ctx, *seed, [2]service.Seat{
		{PlayerID: "bot-1-" + diffs[0], IsBot: true, Difficulty: diffs[0]},
		{PlayerID: "bot-2-" + diffs[1], IsBot: true, Difficulty: diffs[1]},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Create game failed")
	}
	if _, err := gameSvc.StartGame(ctx, game.ID); err != nil {
		log.Fatal().Err(err).Msg("Start game failed")
	}
	gameLog := logger.ForGame(game.ID)
	gameLog.Info().Int64("seed", *seed).Msg("Game started")

	winner := ""
	turn := 0
	for turn < *maxTurns {
		if ctx.Err() != nil {
			log.Fatal().Msg("Interrupted")
		}

		report, err := turnSvc.OpenTurn(ctx, game.ID)
		if err != nil {
			gameLog.Fatal().Err(err).Int("turn", turn).Msg("Open turn failed")
		}
		turn++
		gameLog.Debug().Int("turn", turn).
			Int("losses", len(report.Losses)).
			Int("combats", len(report.Combats)).Msg("Turn opened")
		if report.Winner != "" {
			winner = report.Winner
			break
		}

		// Both seats are bots, so the second submission auto-resolves.
		if err := turnSvc.SubmitBotOrders(ctx, game.ID); err != nil {
			gameLog.Fatal().Err(err).Int("turn", turn).Msg("Bot orders failed")
		}
	}

	if winner != "" {
		fmt.Printf("Winner: %s after %d turns\n", winner, turn)
	} else {
		fmt.Printf("Draw after %d turns\n", turn)
	}
	fmt.Printf("Turn history: game %s\n", game.ID)
}
