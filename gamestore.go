package sjaus

import (
	"encoding/json"
	"fmt"
	"sync"
)

// GameStore is the persistence collaborator: atomic read-modify-write of
// one game record keyed by ID, plus the append-only chat log. SaveGame must
// fail with ErrConflict when the stored version no longer matches the
// loaded one.
type GameStore interface {
	CreateGame(g *Game) error
	FindGame(id string) (*Game, error)
	SaveGame(g *Game) error
	WaitingGames() ([]*Game, error)
	AppendMessage(m Message) error
	Messages(gameID string) ([]Message, error)
}

// Clone deep-copies a game via its persisted form, so stored state can
// never be mutated through a handed-out pointer.
func (g *Game) Clone() *Game {
	raw, err := json.Marshal(g)
	if err != nil {
		panic(fmt.Sprintf("game %s is not serializable: %s", g.ID, err))
	}
	var out Game
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("game %s does not round-trip: %s", g.ID, err))
	}
	return &out
}

// InMemoryGameStore keeps games and chat in process memory. It applies the
// same versioning contract as the SQL store so the engine behaves the same
// against either.
type InMemoryGameStore struct {
	mu       sync.RWMutex
	games    map[string]*Game
	messages map[string][]Message
}

// NewInMemoryGameStore constructs an empty InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		games:    map[string]*Game{},
		messages: map[string][]Message{},
	}
}

func (s *InMemoryGameStore) CreateGame(g *Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.games[g.ID]; exists {
		return fmt.Errorf("game with id %s already exists", g.ID)
	}
	s.games[g.ID] = g.Clone()
	return nil
}

func (s *InMemoryGameStore) FindGame(id string) (*Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g.Clone(), nil
}

func (s *InMemoryGameStore) SaveGame(g *Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.games[g.ID]
	if !ok {
		return ErrGameNotFound
	}
	if stored.Version != g.Version {
		return ErrConflict
	}
	saved := g.Clone()
	saved.Version++
	s.games[g.ID] = saved
	g.Version = saved.Version
	return nil
}

func (s *InMemoryGameStore) WaitingGames() ([]*Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*Game{}
	for _, g := range s.games {
		if g.State == Waiting {
			out = append(out, g.Clone())
		}
	}
	return out, nil
}

func (s *InMemoryGameStore) AppendMessage(m Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[m.GameID]; !ok {
		return ErrGameNotFound
	}
	s.messages[m.GameID] = append(s.messages[m.GameID], m)
	return nil
}

func (s *InMemoryGameStore) Messages(gameID string) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.games[gameID]; !ok {
		return nil, ErrGameNotFound
	}
	return append([]Message(nil), s.messages[gameID]...), nil
}
