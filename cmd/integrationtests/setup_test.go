package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"auction-engine/internal/arbiter"
	"auction-engine/internal/hub"
	model "auction-engine/internal/models"
	"auction-engine/internal/repository"
	"auction-engine/internal/server"
	"auction-engine/internal/settlement"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testCallerID = "gateway-user-1"

// SetupTestRouter wires the full engine against an in-memory store and seeds
// one live auction with two players and two teams.
func SetupTestRouter(t *testing.T) (*gin.Engine, *repository.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	seedLiveAuction(t, store)

	engine := arbiter.NewArbiter(store, store, store)
	fanout := hub.NewHub(engine)
	settler := settlement.NewSettler(store, store)
	router := server.SetupRouter(fanout, store, settler)
	return router, store
}

func seedLiveAuction(t *testing.T, store *repository.MemoryStore) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.CreateAuction(ctx, model.Auction{
		AuctionID: "auction1",
		Title:     "Season Opener",
		StartTime: now.Add(-time.Hour),
		EndTime:   now.Add(time.Hour),
		Status:    model.StatusLive,
		Settings: model.AuctionSettings{
			MinBidIncrement: decimal.NewFromInt(100),
		},
	}))
	require.NoError(t, store.AddPlayer(ctx, model.Player{
		PlayerID:  "player1",
		AuctionID: "auction1",
		Name:      "First Player",
		BasePrice: decimal.NewFromInt(1000),
	}))
	require.NoError(t, store.AddPlayer(ctx, model.Player{
		PlayerID:  "player2",
		AuctionID: "auction1",
		Name:      "Second Player",
		BasePrice: decimal.NewFromInt(500),
	}))
	require.NoError(t, store.AddTeam(ctx, model.Team{
		TeamID:    "team1",
		AuctionID: "auction1",
		Name:      "First Team",
		Budget:    decimal.NewFromInt(100000),
	}))
	require.NoError(t, store.AddTeam(ctx, model.Team{
		TeamID:    "team2",
		AuctionID: "auction1",
		Name:      "Second Team",
		Budget:    decimal.NewFromInt(2000),
	}))
}

// ExecuteRequestAndParse executes an HTTP request on the given router and
// parses the JSON envelope. Every request carries the gateway identity header.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(server.CallerIDHeader, testCallerID)
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return resp, w
}

func placeBidBody(playerID, teamID string, amount int64) map[string]any {
	return map[string]any{
		"auctionId": "auction1",
		"playerId":  playerID,
		"teamId":    teamID,
		"amount":    decimal.NewFromInt(amount),
	}
}
