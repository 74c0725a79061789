package server

import (
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	uuid "github.com/satori/go.uuid"

	"github.com/skansin/sjaus"
	"github.com/skansin/sjaus/protocol"
)

// GameServer is the HTTP and websocket surface over the game engines
type GameServer struct {
	store    sjaus.GameStore
	registry *sjaus.Registry
	handler  http.Handler
}

// NewID returns a fresh player ID
func NewID() string {
	return uuid.NewV4().String()
}

// NewGameID returns a 6-letter game code, easier to share than a UUID
func NewGameID() string {
	rand.Seed(time.Now().UnixNano())
	letters := []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	code := make([]byte, 6)
	for i := range code {
		code[i] = letters[rand.Intn(len(letters))]
	}
	return string(code)
}

// NewServer creates a GameServer over the given store
func NewServer(cfg Config, store sjaus.GameStore) *GameServer {
	s := &GameServer{
		store:    store,
		registry: sjaus.NewRegistry(store),
	}

	r := mux.NewRouter()
	r.HandleFunc("/games", s.handleNewGame).Methods(http.MethodPost)
	r.HandleFunc("/games", s.handleListGames).Methods(http.MethodGet)
	r.HandleFunc("/games/{id}", s.handleGetGame).Methods(http.MethodGet)
	r.HandleFunc("/games/{id}/join", s.handleJoinGame).Methods(http.MethodPost)
	r.HandleFunc("/ws", s.handleWS)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{cfg.AllowedOrigins}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	s.handler = handlers.LoggingHandler(os.Stdout, cors(r))
	return s
}

// ServeHTTP serves http
func (s *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

type newGameReq struct {
	Name    string        `json:"name"`
	Variant sjaus.Variant `json:"variant"`
}

type joinGameReq struct {
	Name string `json:"name"`
}

type pendingGameRes struct {
	GameID   string         `json:"game_id"`
	PlayerID string         `json:"player_id"`
	Name     string         `json:"name"`
	Admin    bool           `json:"is_admin"`
	State    sjaus.GameView `json:"state"`
}

type gameSummary struct {
	GameID  string        `json:"game_id"`
	Variant sjaus.Variant `json:"variant"`
	Seated  int           `json:"seated"`
	Seats   int           `json:"seats"`
}

func (s *GameServer) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var data newGameReq
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "missing or malformed body")
		return
	}
	defer r.Body.Close()

	if data.Name == "" {
		writeError(w, http.StatusBadRequest, "missing player name")
		return
	}
	if !data.Variant.Valid() {
		writeError(w, http.StatusBadRequest, "variant must be 2, 3 or 4")
		return
	}

	gameID := NewGameID()
	playerID := NewID()

	game, err := s.registry.CreateGame(gameID, data.Variant, playerID, data.Name)
	if err != nil {
		log.Println(err.Error())
		writeError(w, http.StatusInternalServerError, "could not create game")
		return
	}

	writeJSON(w, http.StatusCreated, pendingGameRes{
		GameID:   gameID,
		PlayerID: playerID,
		Name:     data.Name,
		Admin:    true,
		State:    game.View(playerID),
	})
}

func (s *GameServer) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.store.WaitingGames()
	if err != nil {
		log.Println(err.Error())
		writeError(w, http.StatusInternalServerError, "could not list games")
		return
	}

	out := []gameSummary{}
	for _, g := range games {
		out = append(out, gameSummary{
			GameID:  g.ID,
			Variant: g.Variant,
			Seated:  len(g.Players),
			Seats:   g.Variant.NumPlayers(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *GameServer) handleGetGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]
	playerID := r.URL.Query().Get("player_id")

	game, err := s.store.FindGame(gameID)
	if err != nil {
		writeError(w, http.StatusNotFound, unknownGameIDMsg(gameID))
		return
	}
	writeJSON(w, http.StatusOK, game.View(playerID))
}

func (s *GameServer) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	var data joinGameReq
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "missing or malformed body")
		return
	}
	defer r.Body.Close()

	if data.Name == "" {
		writeError(w, http.StatusBadRequest, "missing player name")
		return
	}
	if _, err := s.store.FindGame(gameID); err != nil {
		writeError(w, http.StatusNotFound, unknownGameIDMsg(gameID))
		return
	}

	playerID := NewID()
	game, err := s.registry.Engine(gameID).Do(sjaus.Command{
		Cmd:      protocol.JoinGame,
		PlayerID: playerID,
		Name:     data.Name,
	})
	if err != nil {
		writeCommandError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pendingGameRes{
		GameID:   gameID,
		PlayerID: playerID,
		Name:     data.Name,
		State:    game.View(playerID),
	})
}

func unknownGameIDMsg(unknownID string) string {
	return "unknown game ID '" + unknownID + "'"
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		log.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeCommandError maps the engine's error taxonomy onto HTTP statuses
func writeCommandError(w http.ResponseWriter, err error) {
	switch {
	case sjaus.IsValidationError(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, sjaus.ErrGameNotFound), errors.Is(err, sjaus.ErrPlayerNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, sjaus.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Println(err.Error())
		writeError(w, http.StatusInternalServerError, "something went wrong")
	}
}
