package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skansin/sjaus"
	"github.com/skansin/sjaus/protocol"
)

func newTestServer() *GameServer {
	return NewServer(Config{AllowedOrigins: "*"}, sjaus.NewInMemoryGameStore())
}

func createGame(t *testing.T, s *GameServer, variant sjaus.Variant) pendingGameRes {
	t.Helper()
	body := fmt.Sprintf(`{"name":"Rúni","variant":%d}`, variant)
	req := httptest.NewRequest(http.MethodPost, "/games", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var res pendingGameRes
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	return res
}

func joinGame(t *testing.T, s *GameServer, gameID, name string) pendingGameRes {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q}`, name)
	req := httptest.NewRequest(http.MethodPost, "/games/"+gameID+"/join", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res pendingGameRes
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	return res
}

func TestHandleNewGame(t *testing.T) {
	t.Run("creates a game", func(t *testing.T) {
		s := newTestServer()
		res := createGame(t, s, sjaus.FourPlayer)

		assert.Len(t, res.GameID, 6)
		assert.NotEmpty(t, res.PlayerID)
		assert.True(t, res.Admin)
		assert.Equal(t, sjaus.Waiting, res.State.State)
	})

	t.Run("rejects a missing name", func(t *testing.T) {
		s := newTestServer()
		req := httptest.NewRequest(http.MethodPost, "/games", strings.NewReader(`{"variant":4}`))
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a bad variant", func(t *testing.T) {
		s := newTestServer()
		req := httptest.NewRequest(http.MethodPost, "/games", strings.NewReader(`{"name":"x","variant":7}`))
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a missing body", func(t *testing.T) {
		s := newTestServer()
		req := httptest.NewRequest(http.MethodPost, "/games", bytes.NewReader(nil))
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleJoinGame(t *testing.T) {
	t.Run("joins an open game", func(t *testing.T) {
		s := newTestServer()
		created := createGame(t, s, sjaus.ThreePlayer)

		res := joinGame(t, s, created.GameID, "Annika")

		assert.Equal(t, created.GameID, res.GameID)
		assert.NotEqual(t, created.PlayerID, res.PlayerID)
		assert.False(t, res.Admin)
		assert.Len(t, res.State.Players, 2)
	})

	t.Run("unknown game", func(t *testing.T) {
		s := newTestServer()
		req := httptest.NewRequest(http.MethodPost, "/games/NOSUCH/join", strings.NewReader(`{"name":"x"}`))
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("full game rejects with a validation status", func(t *testing.T) {
		s := newTestServer()
		created := createGame(t, s, sjaus.TwoPlayer)
		joinGame(t, s, created.GameID, "Annika")

		req := httptest.NewRequest(http.MethodPost, "/games/"+created.GameID+"/join", strings.NewReader(`{"name":"Tóra"}`))
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestHandleListGames(t *testing.T) {
	s := newTestServer()
	createGame(t, s, sjaus.FourPlayer)
	createGame(t, s, sjaus.TwoPlayer)

	req := httptest.NewRequest(http.MethodGet, "/games", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []gameSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Len(t, list, 2)
}

func TestHandleGetGame(t *testing.T) {
	s := newTestServer()
	created := createGame(t, s, sjaus.FourPlayer)

	req := httptest.NewRequest(http.MethodGet, "/games/"+created.GameID+"?player_id="+created.PlayerID, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var view sjaus.GameView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.Equal(t, created.GameID, view.ID)

	t.Run("unknown game", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/games/NOSUCH", nil)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func dialWS(t *testing.T, ts *httptest.Server, gameID, playerID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?game_id=" + gameID + "&player_id=" + playerID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn, want protocol.Event) serverMessage {
	t.Helper()
	for {
		var msg serverMessage
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Event == want {
			return msg
		}
	}
}

func TestWebsocketFlow(t *testing.T) {
	s := newTestServer()
	ts := httptest.NewServer(s)
	defer ts.Close()

	created := createGame(t, s, sjaus.TwoPlayer)
	joined := joinGame(t, s, created.GameID, "Annika")

	creator := dialWS(t, ts, created.GameID, created.PlayerID)
	defer creator.Close()
	joiner := dialWS(t, ts, created.GameID, joined.PlayerID)
	defer joiner.Close()

	// both get a catch-up snapshot on subscribe
	readEvent(t, creator, protocol.StateChanged)
	readEvent(t, joiner, protocol.StateChanged)

	require.NoError(t, creator.WriteJSON(sjaus.Command{Cmd: protocol.StartGame}))

	msg := readEvent(t, joiner, protocol.StateChanged)
	require.NotNil(t, msg.State)
	assert.Equal(t, sjaus.Bidding, msg.State.State)

	t.Run("rejection goes back to the sender", func(t *testing.T) {
		// not the joiner's game to start, and it is running already
		require.NoError(t, joiner.WriteJSON(sjaus.Command{Cmd: protocol.StartGame}))
		errMsg := readEvent(t, joiner, protocol.CommandError)
		assert.NotEmpty(t, errMsg.Error)
	})

	t.Run("chat reaches everyone", func(t *testing.T) {
		require.NoError(t, joiner.WriteJSON(sjaus.Command{Cmd: protocol.SendMessage, Text: "góðan dag"}))
		chat := readEvent(t, creator, protocol.ChatMessage)
		require.NotNil(t, chat.Chat)
		assert.Equal(t, "góðan dag", chat.Chat.Body)
	})
}
