package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/macanangkasa/klondike"
	"github.com/macanangkasa/klondike/protocol"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsSession is one client's live connection to a game
type wsSession struct {
	server *GameServer
	game   *klondike.Game
	conn   *websocket.Conn
	send   chan protocol.OutboundMessage
}

// HandleWS connects a client to an existing game over a websocket. The
// client names the game with the game_id query parameter and receives
// a snapshot immediately.
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game_id")
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

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		log.Println(err)
		return
	}

	session := &wsSession{
		server: g,
		game:   game,
		conn:   conn,
		send:   make(chan protocol.OutboundMessage, 8),
	}

	go session.writePump()
	session.reply(protocol.Snapshot(game))
	go session.readPump()
}

// reply queues a message, dropping it if the client cannot keep up
func (s *wsSession) reply(msg protocol.OutboundMessage) {
	select {
	case s.send <- msg:
	default:
		log.Printf("game %s: send buffer full, dropping message", s.game.ID())
	}
}

func (s *wsSession) replyError(text string) {
	s.reply(protocol.OutboundMessage{
		GameID:  s.game.ID(),
		Command: protocol.Error,
		Error:   text,
	})
}

// readPump relays client commands into the game until the connection
// closes. It owns the session lifecycle: when it returns, the send
// channel closes and the write pump shuts down.
func (s *wsSession) readPump() {
	defer func() {
		s.conn.Close()
		close(s.send)
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg protocol.InboundMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println(err)
			}
			return
		}
		s.handleCommand(msg)
	}
}

func (s *wsSession) handleCommand(msg protocol.InboundMessage) {
	game := s.game

	switch msg.Command {
	case protocol.Draw:
		moved := game.Draw()
		out := protocol.Snapshot(game)
		out.Moved = moved
		s.reply(out)

	case protocol.Foundation:
		card, ok := msg.Card()
		if !ok {
			s.replyError(unknownCardMsg(msg.Rank, msg.Suit))
			return
		}
		moved := game.AutoMoveToFoundation(card)
		if moved {
			s.server.recordIfWon(game)
		}
		out := protocol.Snapshot(game)
		out.Moved = moved
		s.reply(out)

	case protocol.Tableau:
		card, ok := msg.Card()
		if !ok {
			s.replyError(unknownCardMsg(msg.Rank, msg.Suit))
			return
		}
		moved := game.MoveToTableau(card, msg.Column)
		out := protocol.Snapshot(game)
		out.Moved = moved
		s.reply(out)

	case protocol.Restart:
		game.Restart()
		s.server.clearRecorded(game.ID())
		s.reply(protocol.Snapshot(game))

	case protocol.State:
		s.reply(protocol.Snapshot(game))

	default:
		s.replyError(fmt.Sprintf("unsupported command %d", msg.Command))
	}
}

// writePump delivers queued messages and keeps the connection alive
// with pings
func (s *wsSession) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
