package klondike

import (
	"errors"
	"sync"
)

var (
	// ErrGameExists means the store already holds a game with this ID
	ErrGameExists = errors.New("a game with this ID already exists")
	// ErrNoGameID means the game has no ID to store it under
	ErrNoGameID = errors.New("cannot store a game without an ID")
)

// GameStore holds live game sessions by ID
type GameStore interface {
	FindGame(ID string) (*Game, bool)
	AddGame(game *Game) error
}

// InMemoryGameStore maps game IDs to live sessions
type InMemoryGameStore struct {
	mu    sync.RWMutex
	games map[string]*Game
}

// NewInMemoryGameStore constructs an empty InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{games: map[string]*Game{}}
}

// FindGame returns the game stored under this ID, if there is one
func (s *InMemoryGameStore) FindGame(ID string) (*Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.games[ID]
	return game, ok
}

// AddGame adds a game to the store. IDs must be unique.
func (s *InMemoryGameStore) AddGame(game *Game) error {
	if game == nil || game.ID() == "" {
		return ErrNoGameID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[game.ID()]; exists {
		return ErrGameExists
	}
	s.games[game.ID()] = game

	return nil
}
