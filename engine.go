package sjaus

import (
	"log"
	"sync"
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/skansin/sjaus/deck"
	"github.com/skansin/sjaus/protocol"
)

// Command is one player action against one game. Payload fields are used
// per command and ignored otherwise.
type Command struct {
	Cmd      protocol.Cmd `json:"cmd"`
	PlayerID string       `json:"playerId"`
	Name     string       `json:"name,omitempty"`
	Suit     deck.Suit    `json:"suit,omitempty"`
	Length   int          `json:"length,omitempty"`
	Card     *deck.Card   `json:"card,omitempty"`
	Give     []deck.Card  `json:"give,omitempty"`
	Text     string       `json:"text,omitempty"`
}

// Subscriber receives pushes for one game. Notify must not block the
// caller for long; slow consumers should buffer or drop.
type Subscriber interface {
	PlayerID() string
	Notify(GameView)
	NotifyChat(Message)
}

type envelope struct {
	cmd   Command
	reply chan result
}

type result struct {
	game *Game
	err  error
}

// Engine is the single writer for one game: every mutating command funnels
// through its goroutine, so load-validate-mutate-persist runs as an atomic
// unit and turn-order races resolve to a clean rejection for the loser.
// Distinct games have distinct engines and proceed in parallel.
type Engine struct {
	gameID   string
	store    GameStore
	commands chan envelope
	subCh    chan Subscriber
	unsubCh  chan Subscriber
	quit     chan struct{}

	// onStop runs once when the loop exits, before quit closes
	onStop func()
}

// NewEngine constructs an engine for the given game and starts its loop
func NewEngine(gameID string, store GameStore) *Engine {
	e := &Engine{
		gameID:   gameID,
		store:    store,
		commands: make(chan envelope),
		subCh:    make(chan Subscriber),
		unsubCh:  make(chan Subscriber),
		quit:     make(chan struct{}),
	}
	go e.run()
	return e
}

// Do applies one command and returns the resulting state or a typed
// failure. Rejected commands leave the stored game untouched. A stopped
// engine rejects everything: its game is over.
func (e *Engine) Do(cmd Command) (*Game, error) {
	reply := make(chan result, 1)
	select {
	case e.commands <- envelope{cmd: cmd, reply: reply}:
		res := <-reply
		return res.game, res.err
	case <-e.quit:
		return nil, ErrWrongPhase
	}
}

// Subscribe registers a subscriber and immediately sends it the current
// state so late joiners and reconnects catch up. Subscribing to a stopped
// engine still delivers the final snapshot.
func (e *Engine) Subscribe(s Subscriber) {
	select {
	case e.subCh <- s:
	case <-e.quit:
		if g, err := e.store.FindGame(e.gameID); err == nil {
			s.Notify(g.View(s.PlayerID()))
		}
	}
}

// Unsubscribe removes a subscriber
func (e *Engine) Unsubscribe(s Subscriber) {
	select {
	case e.unsubCh <- s:
	case <-e.quit:
	}
}

func (e *Engine) run() {
	subs := map[Subscriber]bool{}

	for {
		select {
		case s := <-e.subCh:
			subs[s] = true
			if g, err := e.store.FindGame(e.gameID); err == nil {
				s.Notify(g.View(s.PlayerID()))
			}

		case s := <-e.unsubCh:
			delete(subs, s)

		case env := <-e.commands:
			g, err := e.handle(env.cmd, subs)
			env.reply <- result{game: g, err: err}
			if err == nil && g != nil && g.State == Complete {
				// the rubber is decided; everyone has the final
				// state, so the loop can wind down
				if e.onStop != nil {
					e.onStop()
				}
				close(e.quit)
				return
			}
		}
	}
}

func (e *Engine) handle(cmd Command, subs map[Subscriber]bool) (*Game, error) {
	g, err := e.store.FindGame(e.gameID)
	if err != nil {
		return nil, err
	}

	if cmd.Cmd == protocol.SendMessage {
		return g, e.sendChat(g, cmd, subs)
	}

	if err := apply(g, cmd); err != nil {
		return nil, err
	}
	if err := e.store.SaveGame(g); err != nil {
		return nil, err
	}

	for s := range subs {
		s.Notify(g.View(s.PlayerID()))
	}
	return g, nil
}

// apply dispatches a mutating command to the rules engine
func apply(g *Game, cmd Command) error {
	switch cmd.Cmd {
	case protocol.JoinGame:
		return g.Join(cmd.PlayerID, cmd.Name)
	case protocol.LeaveGame:
		return g.Leave(cmd.PlayerID)
	case protocol.StartGame:
		return g.Start(cmd.PlayerID)
	case protocol.DeclareTrump:
		return g.DeclareTrump(cmd.PlayerID, cmd.Suit, cmd.Length)
	case protocol.PassTrump:
		return g.PassTrump(cmd.PlayerID)
	case protocol.ExchangeTable:
		return g.ExchangeTable(cmd.PlayerID, cmd.Give)
	case protocol.PlayCard:
		if cmd.Card == nil {
			return ErrIllegalCard
		}
		return g.PlayCard(cmd.PlayerID, *cmd.Card)
	default:
		return ErrWrongPhase
	}
}

// sendChat appends to the chat log and fans the message out. Chat never
// touches game state.
func (e *Engine) sendChat(g *Game, cmd Command, subs map[Subscriber]bool) error {
	p, ok := g.FindPlayer(cmd.PlayerID)
	if !ok {
		return ErrPlayerNotFound
	}
	m := Message{
		ID:         uuid.NewV4().String(),
		GameID:     g.ID,
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Body:       cmd.Text,
		SentAt:     time.Now().UTC(),
	}
	if err := e.store.AppendMessage(m); err != nil {
		return err
	}
	for s := range subs {
		s.NotifyChat(m)
	}
	return nil
}

// Registry hands out the single engine per game ID
type Registry struct {
	mu      sync.Mutex
	store   GameStore
	engines map[string]*Engine
}

// NewRegistry constructs a Registry over the given store
func NewRegistry(store GameStore) *Registry {
	return &Registry{store: store, engines: map[string]*Engine{}}
}

// CreateGame persists a fresh game and returns it alongside its engine
func (r *Registry) CreateGame(id string, variant Variant, creatorID, creatorName string) (*Game, error) {
	g := NewGame(id, variant, creatorID, creatorName)
	if err := r.store.CreateGame(g); err != nil {
		return nil, err
	}
	log.Printf("created %s game %s", variant, id)
	return g, nil
}

// Engine returns the engine for a game, starting one if needed. Engines
// evict themselves when their game completes.
func (r *Registry) Engine(gameID string) *Engine {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.engines[gameID]
	if !ok {
		e = NewEngine(gameID, r.store)
		e.onStop = func() { r.remove(gameID) }
		r.engines[gameID] = e
	}
	return e
}

func (r *Registry) remove(gameID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.engines, gameID)
}

// Store exposes the registry's backing store for read-only queries
func (r *Registry) Store() GameStore {
	return r.store
}
