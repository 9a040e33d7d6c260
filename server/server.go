package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/macanangkasa/klondike"
	"github.com/macanangkasa/klondike/protocol"
	"github.com/macanangkasa/klondike/results"
	uuid "github.com/satori/go.uuid"
)

// recordTimeout bounds how long persisting a win may take
const recordTimeout = 5 * time.Second

// GameServer serves solitaire games over HTTP and websockets
type GameServer struct {
	store   klondike.GameStore
	results results.Store

	mu       sync.Mutex
	recorded map[string]bool

	http.Server
}

// NewID constructs a game ID
func NewID() string {
	return uuid.NewV4().String()
}

func unknownGameIDMsg(unknownID string) string {
	return fmt.Sprintf("unknown game ID '%s'", unknownID)
}

func unknownCardMsg(rank, suit string) string {
	return fmt.Sprintf("unknown card '%s of %s'", rank, suit)
}

// NewServer creates a new GameServer. A nil resultsStore disables
// result recording and the /results endpoint.
func NewServer(store klondike.GameStore, resultsStore results.Store) *GameServer {
	s := &GameServer{
		store:    store,
		results:  resultsStore,
		recorded: map[string]bool{},
	}

	router := http.NewServeMux()
	router.Handle("/new", http.HandlerFunc(s.HandleNewGame))
	router.Handle("/game/", http.HandlerFunc(s.HandleGame))
	router.Handle("/results", http.HandlerFunc(s.HandleResults))
	router.Handle("/ws", http.HandlerFunc(s.HandleWS))

	s.Handler = router

	return s
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

// HandleNewGame handles a request to create a new game
func (g *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	game := klondike.NewGame(klondike.GameOpts{
		ID:  NewID(),
		Rng: rand.New(rand.NewSource(rand.Int63())),
	})

	if err := g.store.AddGame(game); err != nil {
		log.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeSnapshot(w, http.StatusCreated, protocol.Snapshot(game))
}

// HandleGame routes requests for a single game. A bare GET returns a
// snapshot; POSTs to draw, foundation, tableau and restart apply the
// corresponding operation and return the new snapshot with its Moved
// flag set.
func (g *GameServer) HandleGame(w http.ResponseWriter, r *http.Request) {
	parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/game/"), "/", 2)

	gameID := parts[0]
	if gameID == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing game ID"))
		return
	}

	game, ok := g.store.FindGame(gameID)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(unknownGameIDMsg(gameID)))
		return
	}

	op := ""
	if len(parts) == 2 {
		op = parts[1]
	}

	switch {
	case op == "" && r.Method == http.MethodGet:
		writeSnapshot(w, http.StatusOK, protocol.Snapshot(game))

	case op == "draw" && r.Method == http.MethodPost:
		moved := game.Draw()
		msg := protocol.Snapshot(game)
		msg.Moved = moved
		writeSnapshot(w, http.StatusOK, msg)

	case op == "foundation" && r.Method == http.MethodPost:
		in, ok := decodeMove(w, r)
		if !ok {
			return
		}
		card, ok := in.Card()
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(unknownCardMsg(in.Rank, in.Suit)))
			return
		}

		moved := game.AutoMoveToFoundation(card)
		if moved {
			g.recordIfWon(game)
		}
		msg := protocol.Snapshot(game)
		msg.Moved = moved
		writeSnapshot(w, http.StatusOK, msg)

	case op == "tableau" && r.Method == http.MethodPost:
		in, ok := decodeMove(w, r)
		if !ok {
			return
		}
		card, ok := in.Card()
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(unknownCardMsg(in.Rank, in.Suit)))
			return
		}

		moved := game.MoveToTableau(card, in.Column)
		msg := protocol.Snapshot(game)
		msg.Moved = moved
		writeSnapshot(w, http.StatusOK, msg)

	case op == "restart" && r.Method == http.MethodPost:
		game.Restart()
		g.clearRecorded(game.ID())
		writeSnapshot(w, http.StatusOK, protocol.Snapshot(game))

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// ResultRes is one recorded game in the /results payload. Duration is
// in seconds.
type ResultRes struct {
	GameID     string `json:"game_id"`
	Won        bool   `json:"won"`
	Moves      int    `json:"moves"`
	Score      int    `json:"score"`
	Duration   int64  `json:"duration"`
	FinishedAt string `json:"finished_at"`
}

// HandleResults lists recently recorded games, newest first
func (g *GameServer) HandleResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet || g.results == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("limit must be a number"))
			return
		}
		limit = n
	}

	recent, err := g.results.Recent(r.Context(), limit)
	if err != nil {
		log.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	payload := []ResultRes{}
	for _, res := range recent {
		payload = append(payload, ResultRes{
			GameID:     res.GameID,
			Won:        res.Won,
			Moves:      res.Moves,
			Score:      res.Score,
			Duration:   int64(res.Duration.Seconds()),
			FinishedAt: res.FinishedAt.Format(time.RFC3339),
		})
	}

	bytes, err := json.Marshal(payload)
	if err != nil {
		log.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.Write(bytes)
}

// recordIfWon persists a finished game's outcome, once per session
func (g *GameServer) recordIfWon(game *klondike.Game) {
	if g.results == nil || !game.Won() {
		return
	}

	g.mu.Lock()
	if g.recorded[game.ID()] {
		g.mu.Unlock()
		return
	}
	g.recorded[game.ID()] = true
	g.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	err := g.results.Record(ctx, results.Result{
		GameID:   game.ID(),
		Won:      true,
		Moves:    game.Moves(),
		Score:    game.Score(),
		Duration: game.Elapsed(),
	})
	if err != nil {
		log.Println(err.Error())
	}
}

// clearRecorded lets a restarted session record a fresh win
func (g *GameServer) clearRecorded(gameID string) {
	g.mu.Lock()
	delete(g.recorded, gameID)
	g.mu.Unlock()
}

func decodeMove(w http.ResponseWriter, r *http.Request) (protocol.InboundMessage, bool) {
	var msg protocol.InboundMessage
	err := json.NewDecoder(r.Body).Decode(&msg)
	defer r.Body.Close()
	if err != nil {
		writeParseError(err, w, r)
		return protocol.InboundMessage{}, false
	}
	return msg, true
}

func writeParseError(err error, w http.ResponseWriter, r *http.Request) {
	log.Println(err.Error())
	w.Header().Add("Content-Type", "text/plain")
	w.WriteHeader(http.StatusBadRequest)
	if err == io.EOF {
		w.Write([]byte("Missing body"))
		return
	}
	w.Write([]byte("Invalid body"))
}

func writeSnapshot(w http.ResponseWriter, status int, msg protocol.OutboundMessage) {
	bytes, err := json.Marshal(msg)
	if err != nil {
		log.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}
