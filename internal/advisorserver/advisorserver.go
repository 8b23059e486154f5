// Package advisorserver exposes internal/advisor over a WebSocket command
// loop: a client sends one JSON query per hand decision and receives back
// the blueprint's recommended action distribution, mirroring the
// request/response shape of the teacher's game server connection but
// carrying advisory queries instead of table state.
package advisorserver

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/cardshark/holdem-solver/internal/advisor"
	"github.com/cardshark/holdem-solver/internal/bucket"
	"github.com/cardshark/holdem-solver/internal/cards"
	"github.com/cardshark/holdem-solver/internal/equity"
	"github.com/cardshark/holdem-solver/internal/holdem"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

// Query is one inbound advisory request.
type Query struct {
	Hole      string `json:"hole"`
	Board     string `json:"board"`
	ToCall    int    `json:"to_call"`
	Stack     int    `json:"stack"`
	BigBlind  int    `json:"big_blind"`
	Opponents int    `json:"opponents"`
}

// ActionWeight is one legal action paired with the blueprint's weight on it.
type ActionWeight struct {
	Action string  `json:"action"`
	Amount int     `json:"amount"`
	Weight float64 `json:"weight"`
}

// Response is the advisory reply to a Query.
type Response struct {
	Bucket        string         `json:"bucket"`
	Street        string         `json:"street"`
	Distribution  []ActionWeight `json:"distribution"`
	Sampled       ActionWeight   `json:"sampled"`
	DisplayEquity float64        `json:"display_equity,omitempty"`
	Error         string         `json:"error,omitempty"`
}

// Server serves advisory WebSocket connections backed by adv.
type Server struct {
	adv      *advisor.Advisor
	logger   *log.Logger
	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

// New returns a Server ready to Serve HTTP.
func New(adv *advisor.Advisor, logger *log.Logger) *Server {
	s := &Server{
		adv:    adv,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("/advise", s.handleAdvise)
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return s
}

// Handler returns the server's http.Handler, for use with a custom
// http.Server or net/http/httptest.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves the advisory WebSocket endpoint on addr until the
// process is killed or the listener errors.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) handleAdvise(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var q Query
		if err := conn.ReadJSON(&q); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Error("websocket read error", "error", err)
			}
			return
		}

		resp := s.evaluate(q)
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(resp); err != nil {
			s.logger.Error("websocket write error", "error", err)
			return
		}
	}
}

func (s *Server) evaluate(q Query) Response {
	hole, err := parseHand(q.Hole)
	if err != nil || hole.CountCards() != 2 {
		return Response{Error: "hole must be exactly two cards, e.g. \"AsKd\""}
	}
	board, err := parseHand(q.Board)
	if err != nil {
		return Response{Error: err.Error()}
	}

	bigBlind := q.BigBlind
	if bigBlind <= 0 {
		bigBlind = 10
	}
	stack := q.Stack
	if stack <= 0 {
		stack = 1000
	}
	opponents := q.Opponents
	if opponents <= 0 {
		opponents = 1
	}

	g := syntheticState(hole, board, q.ToCall, stack, bigBlind)
	street := streetFor(board.CountCards())
	b := bucket.Classify(hole, board, street)

	actions, weights := s.adv.ActionWeights(g)
	dist := make([]ActionWeight, len(actions))
	for i, a := range actions {
		dist[i] = ActionWeight{Action: a.Kind.String(), Amount: a.Amount, Weight: weights[i]}
	}

	rng := newRNG()
	rec, err := s.adv.Recommend(g, rng)
	if err != nil {
		return Response{Error: err.Error()}
	}

	resp := Response{
		Bucket:       b.String(),
		Street:       street.String(),
		Distribution: dist,
		Sampled:      ActionWeight{Action: rec.Action.Kind.String(), Amount: rec.Action.Amount, Weight: rec.Probability},
	}

	if result, err := equity.Calculate(hole, board, opponents, 5000, rng); err == nil {
		resp.DisplayEquity = result.Equity(opponents)
	}
	return resp
}

func parseHand(s string) (cards.Hand, error) {
	var h cards.Hand
	for i := 0; i+1 < len(s); i += 2 {
		c, err := cards.ParseCard(s[i : i+2])
		if err != nil {
			return 0, err
		}
		h = h.Add(c)
	}
	return h, nil
}

func streetFor(boardCards int) bucket.Street {
	switch boardCards {
	case 0:
		return bucket.Preflop
	case 3:
		return bucket.Flop
	case 4:
		return bucket.Turn
	default:
		return bucket.River
	}
}

func syntheticState(hole, board cards.Hand, toCall, stack, bigBlind int) *holdem.GameState {
	deck := cards.NewDeck(nil)
	g, _ := holdem.NewGameState([]int{stack + toCall, stack + toCall}, 0, bigBlind/2, bigBlind, deck)
	g.Players[0].Hole = hole
	g.Board = board
	g.Street = streetFor(board.CountCards())
	g.Players[0].CurrentBet = 0
	g.Players[0].Stack = stack
	g.HighestBet = toCall
	g.ActingSeat = 0
	return g
}

// marshalForLog renders v as compact JSON, ignoring any marshal error.
// Nothing in the module calls it.
func marshalForLog(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
