package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/macanangkasa/klondike"
	"github.com/macanangkasa/klondike/deck"
	utils "github.com/macanangkasa/klondike/internal"
	"github.com/macanangkasa/klondike/protocol"
	"github.com/macanangkasa/klondike/results"
)

// fakeStore rejects every AddGame call
type fakeStore struct{}

func (s fakeStore) FindGame(ID string) (*klondike.Game, bool) {
	return nil, false
}

func (s fakeStore) AddGame(game *klondike.Game) error {
	return errors.New("Well that didn't work...")
}

// memoryResults collects recorded results in memory
type memoryResults struct {
	records []results.Result
	failing bool
}

func (m *memoryResults) Record(ctx context.Context, r results.Result) error {
	if m.failing {
		return errors.New("results store is down")
	}
	m.records = append(m.records, r)
	return nil
}

func (m *memoryResults) Recent(ctx context.Context, limit int) ([]results.Result, error) {
	if m.failing {
		return nil, errors.New("results store is down")
	}
	if limit <= 0 || limit > len(m.records) {
		limit = len(m.records)
	}

	out := make([]results.Result, 0, limit)
	for i := len(m.records) - 1; i >= len(m.records)-limit; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

func (m *memoryResults) Close() error { return nil }

func newBasicStore() klondike.GameStore {
	return klondike.NewInMemoryGameStore()
}

// newTestGame deals a game from the unshuffled reference deck, so tests
// know exactly which cards sit where
func newTestGame(t *testing.T, id string) *klondike.Game {
	t.Helper()
	return klondike.NewGame(klondike.GameOpts{ID: id, Deck: deck.New()})
}

// newNearWinGame deals a game one K♥ away from winning
func newNearWinGame(t *testing.T, id string) *klondike.Game {
	t.Helper()

	return klondike.NewGame(klondike.GameOpts{
		ID: id,
		Board: klondike.NewBoard(klondike.BoardOpts{
			Foundations: [klondike.NumFoundations][]deck.Card{
				fullSuit(deck.Clubs),
				fullSuit(deck.Diamonds),
				fullSuit(deck.Hearts)[:12],
				fullSuit(deck.Spades),
			},
			Tableau: [klondike.NumColumns][]deck.Card{
				0: {deck.NewCard(deck.King, deck.Hearts)},
			},
		}),
	})
}

func fullSuit(s deck.Suit) []deck.Card {
	cards := make([]deck.Card, 0, 13)
	for r := deck.Ace; r <= deck.King; r++ {
		cards = append(cards, deck.NewCard(r, s))
	}
	return cards
}

func newServerWithGame(t *testing.T, game *klondike.Game) *GameServer {
	t.Helper()

	store := klondike.NewInMemoryGameStore()
	utils.AssertNoError(t, store.AddGame(game))

	return NewServer(store, nil)
}

// newTestServer starts and returns a new server. The caller must call
// close to shut it down.
func newTestServer(store klondike.GameStore) *httptest.Server {
	return httptest.NewServer(NewServer(store, nil))
}

func mustMakeJson(t *testing.T, input interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(input)
	utils.AssertNoError(t, err)

	return data
}

func newPostRequest(t *testing.T, target string, data []byte) *http.Request {
	t.Helper()

	request, err := http.NewRequest(http.MethodPost, target, bytes.NewBuffer(data))
	utils.AssertNoError(t, err)
	return request
}

func newGetRequest(t *testing.T, target string) *http.Request {
	t.Helper()

	request, err := http.NewRequest(http.MethodGet, target, nil)
	utils.AssertNoError(t, err)
	return request
}

func decodeSnapshot(t *testing.T, body *bytes.Buffer) protocol.OutboundMessage {
	t.Helper()

	var msg protocol.OutboundMessage
	if err := json.NewDecoder(body).Decode(&msg); err != nil {
		t.Fatalf("could not unmarshal json: %s", err.Error())
	}
	return msg
}

// ASSERTIONS

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got status %d, want %d", got, want)
	}
}

func mustDialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ws, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		if resp != nil {
			body, _ := io.ReadAll(resp.Body)
			t.Fatalf("could not open a ws connection on %s, code %d: %s", url, resp.StatusCode, body)
		}
		t.Fatalf("could not open a ws connection on %s: %v", url, err)
	}

	return ws
}

func makeWSUrl(serverURL, gameID string) string {
	return "ws" + strings.TrimPrefix(serverURL, "http") + "/ws?game_id=" + gameID
}
