package server

import (
	"errors"
	"net/http"

	"auction-engine/internal/arbiter"
	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/hub"
	model "auction-engine/internal/models"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
)

// Inbound message types of the realtime protocol.
const (
	msgJoinAuction  = "joinAuction"
	msgLeaveAuction = "leaveAuction"
	msgPlaceBid     = "placeBid"
)

type wsInbound struct {
	Type      string          `json:"type"`
	AuctionID string          `json:"auctionId"`
	PlayerID  string          `json:"playerId"`
	TeamID    string          `json:"teamId"`
	Amount    decimal.Decimal `json:"amount"`
	Channel   string          `json:"channel"`
}

type wsAck struct {
	Type    string              `json:"type"`
	Success bool                `json:"success"`
	Error   string              `json:"error,omitempty"`
	Outcome *arbiter.BidOutcome `json:"outcome,omitempty"`
}

type wsEvent struct {
	Type  string    `json:"type"`
	Event string    `json:"event"`
	Data  model.Bid `json:"data"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin enforcement happens at the gateway in front of this service.
	CheckOrigin: func(*http.Request) bool { return true },
}

// ServeWS upgrades the connection and runs the realtime protocol: the client
// joins and leaves auction rooms and places bids; the server pushes every
// accepted bid of the joined rooms. All writes go through a single goroutine
// so room events and acks never interleave mid-frame.
func ServeWS(fanout *hub.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			utils.Warn("websocket upgrade failed", map[string]any{"error": err.Error()})
			return
		}

		sub := hub.NewSubscriber()
		callerID := c.GetHeader(CallerIDHeader)

		session := &wsSession{
			conn:     conn,
			fanout:   fanout,
			sub:      sub,
			callerID: callerID,
			out:      make(chan any, 16),
		}
		go session.writeLoop()
		session.readLoop(c)
	}
}

type wsSession struct {
	conn     *websocket.Conn
	fanout   *hub.Hub
	sub      *hub.Subscriber
	callerID string
	out      chan any
}

// writeLoop is the only writer on the connection. It drains both the room
// event queue and the ack queue until the subscriber shuts down.
func (s *wsSession) writeLoop() {
	defer s.conn.Close()
	for {
		select {
		case evt := <-s.sub.Events():
			frame := wsEvent{Type: "event", Event: evt.Name, Data: evt.Bid}
			if err := s.conn.WriteJSON(frame); err != nil {
				s.fanout.Unsubscribe(s.sub)
				return
			}
		case msg := <-s.out:
			if err := s.conn.WriteJSON(msg); err != nil {
				s.fanout.Unsubscribe(s.sub)
				return
			}
		case <-s.sub.Done():
			return
		}
	}
}

func (s *wsSession) readLoop(c *gin.Context) {
	defer s.fanout.Unsubscribe(s.sub)

	for {
		var msg wsInbound
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				utils.Warn("websocket read failed", map[string]any{
					"subscriber_id": s.sub.ID(),
					"error":         err.Error(),
				})
			}
			return
		}

		switch msg.Type {
		case msgJoinAuction:
			if msg.AuctionID == "" {
				s.ack(wsAck{Type: "ack", Success: false, Error: "MALFORMED_REQUEST"})
				continue
			}
			s.fanout.Join(msg.AuctionID, s.sub)
			s.ack(wsAck{Type: "ack", Success: true})

		case msgLeaveAuction:
			s.fanout.Leave(msg.AuctionID, s.sub)
			s.ack(wsAck{Type: "ack", Success: true})

		case msgPlaceBid:
			outcome, err := s.fanout.SubmitBid(c.Request.Context(), arbiter.BidRequest{
				AuctionID: msg.AuctionID,
				PlayerID:  msg.PlayerID,
				TeamID:    msg.TeamID,
				Amount:    msg.Amount,
				Channel:   bidChannel(msg.Channel),
				CallerID:  s.callerID,
			})
			if err != nil {
				s.ack(wsAck{Type: "ack", Success: false, Error: errorCode(err)})
				continue
			}
			s.ack(wsAck{Type: "ack", Success: outcome.Accepted, Outcome: &outcome})

		default:
			s.ack(wsAck{Type: "ack", Success: false, Error: "MALFORMED_REQUEST"})
		}
	}
}

// ack enqueues a reply for the writer. A subscriber that is shutting down
// simply drops it.
func (s *wsSession) ack(msg wsAck) {
	select {
	case s.out <- msg:
	case <-s.sub.Done():
	}
}

func bidChannel(raw string) model.BidChannel {
	if raw == string(model.ChannelMobile) {
		return model.ChannelMobile
	}
	return model.ChannelWeb
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, auctionerrors.ErrMalformedRequest):
		return "MALFORMED_REQUEST"
	case errors.Is(err, auctionerrors.ErrSubmitTimeout):
		return "TIMEOUT"
	case errors.Is(err, auctionerrors.ErrArbiterUnavailable):
		return "ARBITER_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}
