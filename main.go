package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"auction-engine/internal/arbiter"
	"auction-engine/internal/hub"
	"auction-engine/internal/lifecycle"
	model "auction-engine/internal/models"
	"auction-engine/internal/repository"
	"auction-engine/internal/server"
	"auction-engine/internal/settlement"
	"auction-engine/utils"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		utils.Info("no .env file found, reading environment variables directly", nil)
	}

	store, err := openStore()
	if err != nil {
		utils.Fatal("failed to open store", map[string]any{"error": err.Error()})
	}

	bidArbiter := arbiter.NewArbiter(store, store, store)
	settler := settlement.NewSettler(store, store)
	fanout := hub.NewHub(bidArbiter)

	scheduler := lifecycle.NewScheduler(store, store, settler, sweepInterval())
	if err := scheduler.Start(context.Background()); err != nil {
		utils.Fatal("failed to start lifecycle scheduler", map[string]any{"error": err.Error()})
	}
	defer scheduler.Stop()

	router := server.SetupRouter(fanout, store, settler)

	port := getPort()
	fmt.Printf("Starting auction engine on %s...\n", port)
	if err := router.Run(port); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// openStore picks the backend: Postgres when DATABASE_URL is set, otherwise
// the in-memory store seeded with a demo auction.
func openStore() (repository.Store, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		utils.Info("DATABASE_URL not set, using in-memory store", nil)
		mem := repository.NewMemoryStore()
		seedDemoAuction(mem)
		return mem, nil
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return repository.NewGormStore(db)
}

// seedDemoAuction populates the in-memory store with a small live auction so
// the engine is exercisable out of the box.
func seedDemoAuction(store repository.Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	_ = store.CreateAuction(ctx, model.Auction{
		AuctionID:   "auction1",
		OrganiserID: "organiser1",
		Title:       "Demo Premier League Auction",
		StartTime:   now,
		EndTime:     now.Add(4 * time.Hour),
		Timezone:    "UTC",
		Status:      model.StatusLive,
		Settings: model.AuctionSettings{
			MinBidIncrement: decimal.NewFromInt(100),
			TeamBudget:      decimal.NewFromInt(50000),
		},
	})

	players := []model.Player{
		{PlayerID: "player1", AuctionID: "auction1", Name: "A. Striker", BasePrice: decimal.NewFromInt(1000)},
		{PlayerID: "player2", AuctionID: "auction1", Name: "B. Keeper", BasePrice: decimal.NewFromInt(800)},
		{PlayerID: "player3", AuctionID: "auction1", Name: "C. Winger", BasePrice: decimal.NewFromInt(1200)},
	}
	for _, p := range players {
		_ = store.AddPlayer(ctx, p)
	}

	teams := []model.Team{
		{TeamID: "team1", AuctionID: "auction1", Name: "Red Lions", Budget: decimal.NewFromInt(50000)},
		{TeamID: "team2", AuctionID: "auction1", Name: "Blue Sharks", Budget: decimal.NewFromInt(50000)},
	}
	for _, t := range teams {
		_ = store.AddTeam(ctx, t)
	}
}

// sweepInterval reads the lifecycle sweep interval from env, in seconds.
func sweepInterval() time.Duration {
	raw := os.Getenv("LIFECYCLE_SWEEP_SECONDS")
	if raw == "" {
		return lifecycle.DefaultSweepInterval
	}
	var secs int
	if _, err := fmt.Sscanf(raw, "%d", &secs); err != nil || secs <= 0 {
		return lifecycle.DefaultSweepInterval
	}
	return time.Duration(secs) * time.Second
}

// getPort returns the server port from env or defaults to ":8080"
func getPort() string {
	if p := os.Getenv("PORT"); p != "" {
		return fmt.Sprintf(":%s", p)
	}
	return ":8080"
}
