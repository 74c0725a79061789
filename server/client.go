package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/skansin/sjaus"
	"github.com/skansin/sjaus/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// serverMessage is one websocket push: a state snapshot, a chat message, or
// a rejection of the client's last command.
type serverMessage struct {
	Event protocol.Event  `json:"event"`
	State *sjaus.GameView `json:"state,omitempty"`
	Chat  *sjaus.Message  `json:"chat,omitempty"`
	Error string          `json:"error,omitempty"`
}

// wsClient is one player's websocket subscription to one game
type wsClient struct {
	playerID string
	engine   *sjaus.Engine
	conn     *websocket.Conn
	send     chan []byte
}

func (c *wsClient) PlayerID() string {
	return c.playerID
}

func (c *wsClient) Notify(v sjaus.GameView) {
	c.push(serverMessage{Event: protocol.StateChanged, State: &v})
}

func (c *wsClient) NotifyChat(m sjaus.Message) {
	c.push(serverMessage{Event: protocol.ChatMessage, Chat: &m})
}

func (c *wsClient) push(msg serverMessage) {
	bytes, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshalling push for %s: %s", c.playerID, err)
		return
	}
	select {
	case c.send <- bytes:
	default:
		// slow consumer; drop rather than stall the engine. The next
		// snapshot supersedes this one anyway.
	}
}

// handleWS upgrades the connection and subscribes the player to their game
func (s *GameServer) handleWS(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	gameID := query.Get("game_id")
	playerID := query.Get("player_id")
	if gameID == "" || playerID == "" {
		writeError(w, http.StatusBadRequest, "missing game ID or player ID")
		return
	}

	game, err := s.store.FindGame(gameID)
	if err != nil {
		writeError(w, http.StatusNotFound, unknownGameIDMsg(gameID))
		return
	}
	if _, ok := game.FindPlayer(playerID); !ok {
		writeError(w, http.StatusNotFound, "unknown player ID")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("could not upgrade to websocket: %s", err)
		return
	}

	client := &wsClient{
		playerID: playerID,
		engine:   s.registry.Engine(gameID),
		conn:     conn,
		send:     make(chan []byte, 16),
	}
	client.engine.Subscribe(client)

	go client.writePump()
	go client.readPump()
}

// readPump turns incoming frames into engine commands. Rejections go back
// to the sender only; accepted commands reach everyone via the engine's
// broadcast.
func (c *wsClient) readPump() {
	defer func() {
		c.engine.Unsubscribe(c)
		close(c.send)
		c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error for %s: %s", c.playerID, err)
			}
			return
		}

		var cmd sjaus.Command
		if err := json.Unmarshal(raw, &cmd); err != nil {
			c.push(serverMessage{Event: protocol.CommandError, Error: "malformed command"})
			continue
		}
		if !cmd.Cmd.Known() {
			c.push(serverMessage{Event: protocol.CommandError, Error: "unknown command"})
			continue
		}
		cmd.PlayerID = c.playerID

		if _, err := c.engine.Do(cmd); err != nil {
			c.push(serverMessage{Event: protocol.CommandError, Error: err.Error()})
		}
	}
}

func (c *wsClient) writePump() {
	defer c.conn.Close()

	for bytes := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, bytes); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
