// A terminal client for playing over the websocket API. Create a game with
// -variant, or join one with -game, then type commands at the prompt:
//
//	start
//	bid H 5
//	pass
//	exchange QD 8S
//	play JC
//	say hello there
//	leave
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/skansin/sjaus"
	"github.com/skansin/sjaus/deck"
	"github.com/skansin/sjaus/protocol"
)

func main() {
	addr := flag.String("addr", "http://localhost:8000", "server address")
	name := flag.String("name", "", "your player name")
	gameID := flag.String("game", "", "game code to join; omit to create a game")
	variant := flag.Int("variant", 4, "seats in a new game: 2, 3 or 4")
	flag.Parse()

	if *name == "" {
		log.Fatal("-name is required")
	}

	var id, playerID string
	var err error
	if *gameID == "" {
		id, playerID, err = createGame(*addr, *name, *variant)
	} else {
		id, playerID, err = joinGame(*addr, *gameID, *name)
	}
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("game code: %s\n", id)

	wsURL := strings.Replace(*addr, "http", "ws", 1) +
		"/ws?game_id=" + id + "&player_id=" + playerID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("connecting: %s", err)
	}
	defer conn.Close()

	go readLoop(conn, playerID)

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		cmd, err := parseCommand(scanner.Text())
		if err != nil {
			fmt.Println(err)
		} else if cmd != nil {
			if err := conn.WriteJSON(cmd); err != nil {
				log.Fatalf("sending: %s", err)
			}
		}
		fmt.Print("> ")
	}
}

type pendingGameRes struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
}

func createGame(addr, name string, variant int) (gameID, playerID string, err error) {
	body := fmt.Sprintf(`{"name":%q,"variant":%d}`, name, variant)
	return postGame(addr+"/games", body)
}

func joinGame(addr, gameID, name string) (string, string, error) {
	body := fmt.Sprintf(`{"name":%q}`, name)
	return postGame(addr+"/games/"+gameID+"/join", body)
}

func postGame(url, body string) (string, string, error) {
	res, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		return "", "", err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		json.NewDecoder(res.Body).Decode(&e)
		return "", "", fmt.Errorf("server said: %s", e.Error)
	}

	var pending pendingGameRes
	if err := json.NewDecoder(res.Body).Decode(&pending); err != nil {
		return "", "", err
	}
	return pending.GameID, pending.PlayerID, nil
}

func parseCommand(line string) (*sjaus.Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}

	switch fields[0] {
	case "start":
		return &sjaus.Command{Cmd: protocol.StartGame}, nil
	case "leave":
		return &sjaus.Command{Cmd: protocol.LeaveGame}, nil
	case "pass":
		return &sjaus.Command{Cmd: protocol.PassTrump}, nil
	case "bid":
		if len(fields) != 3 {
			return nil, fmt.Errorf("usage: bid <suit> <length>, e.g. bid H 5")
		}
		suit, err := parseSuit(fields[1])
		if err != nil {
			return nil, err
		}
		length, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("bad length %q", fields[2])
		}
		return &sjaus.Command{Cmd: protocol.DeclareTrump, Suit: suit, Length: length}, nil
	case "play":
		if len(fields) != 2 {
			return nil, fmt.Errorf("usage: play <card>, e.g. play JC")
		}
		card, err := parseCard(fields[1])
		if err != nil {
			return nil, err
		}
		return &sjaus.Command{Cmd: protocol.PlayCard, Card: &card}, nil
	case "exchange":
		give := []deck.Card{}
		for _, f := range fields[1:] {
			card, err := parseCard(f)
			if err != nil {
				return nil, err
			}
			give = append(give, card)
		}
		return &sjaus.Command{Cmd: protocol.ExchangeTable, Give: give}, nil
	case "say":
		return &sjaus.Command{Cmd: protocol.SendMessage, Text: strings.TrimSpace(line[len("say"):])}, nil
	}
	return nil, fmt.Errorf("unknown command %q", fields[0])
}

func parseSuit(s string) (deck.Suit, error) {
	switch strings.ToUpper(s) {
	case "C", "CLUBS":
		return deck.Clubs, nil
	case "S", "SPADES":
		return deck.Spades, nil
	case "H", "HEARTS":
		return deck.Hearts, nil
	case "D", "DIAMONDS":
		return deck.Diamonds, nil
	}
	return 0, fmt.Errorf("unknown suit %q", s)
}

func parseCard(s string) (deck.Card, error) {
	s = strings.ToUpper(s)
	if len(s) < 2 {
		return deck.Card{}, fmt.Errorf("bad card %q", s)
	}
	suit, err := parseSuit(s[len(s)-1:])
	if err != nil {
		return deck.Card{}, err
	}

	var rank deck.Rank
	switch s[:len(s)-1] {
	case "7":
		rank = deck.Seven
	case "8":
		rank = deck.Eight
	case "9":
		rank = deck.Nine
	case "10", "T":
		rank = deck.Ten
	case "J":
		rank = deck.Jack
	case "Q":
		rank = deck.Queen
	case "K":
		rank = deck.King
	case "A":
		rank = deck.Ace
	default:
		return deck.Card{}, fmt.Errorf("bad rank in %q", s)
	}
	return deck.NewCard(rank, suit), nil
}

type serverMessage struct {
	Event protocol.Event  `json:"event"`
	State *sjaus.GameView `json:"state,omitempty"`
	Chat  *sjaus.Message  `json:"chat,omitempty"`
	Error string          `json:"error,omitempty"`
}

func readLoop(conn *websocket.Conn, playerID string) {
	for {
		var msg serverMessage
		if err := conn.ReadJSON(&msg); err != nil {
			log.Fatalf("connection lost: %s", err)
		}
		switch msg.Event {
		case protocol.StateChanged:
			printState(msg.State, playerID)
		case protocol.ChatMessage:
			fmt.Printf("\n[%s] %s\n> ", msg.Chat.PlayerName, msg.Chat.Body)
		case protocol.CommandError:
			fmt.Printf("\nrejected: %s\n> ", msg.Error)
		}
	}
}

func printState(v *sjaus.GameView, playerID string) {
	fmt.Printf("\n-- %s game %s, %s --\n", v.Variant, v.ID, stateName(v.State))
	for _, p := range v.Players {
		marker := " "
		if p.Seat == v.Turn && v.State != sjaus.Waiting && v.State != sjaus.Complete {
			marker = "*"
		}
		fmt.Printf("%s seat %d %-12s tricks %d  score %d\n",
			marker, p.Seat, p.Name, trickCount(v, p.Seat), scoreOf(v, p.Seat))
		if p.ID == playerID {
			fmt.Printf("    hand: %s\n", cardList(p.Hand))
		}
	}
	if v.Declaration != nil {
		fmt.Printf("trump: %s (seat %d)\n", suitName(v.Declaration.Suit), v.Declaration.Seat)
	}
	if v.CurrentTrick != nil {
		fmt.Printf("on the table: %s\n", playedList(v.CurrentTrick.Cards))
	}
	fmt.Print("> ")
}

func stateName(s sjaus.State) string {
	switch s {
	case sjaus.Waiting:
		return "waiting for players"
	case sjaus.Bidding:
		return "bidding"
	case sjaus.Playing:
		return "playing"
	case sjaus.Complete:
		return "finished"
	}
	return "unknown"
}

func teamOf(v *sjaus.GameView, seat int) int {
	if v.Variant == sjaus.FourPlayer {
		return seat % 2
	}
	return seat
}

func trickCount(v *sjaus.GameView, seat int) int {
	if team := teamOf(v, seat); team < len(v.TricksTaken) {
		return v.TricksTaken[team]
	}
	return 0
}

func scoreOf(v *sjaus.GameView, seat int) int {
	if team := teamOf(v, seat); team < len(v.Scores) {
		return v.Scores[team]
	}
	return 0
}

func cardList(cards []deck.Card) string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = cardName(c)
	}
	return strings.Join(out, " ")
}

func playedList(plays []sjaus.PlayedCard) string {
	out := make([]string, len(plays))
	for i, p := range plays {
		out[i] = fmt.Sprintf("%s(seat %d)", cardName(p.Card), p.Seat)
	}
	return strings.Join(out, " ")
}

func cardName(c deck.Card) string {
	ranks := map[deck.Rank]string{
		deck.Seven: "7", deck.Eight: "8", deck.Nine: "9", deck.Ten: "10",
		deck.Jack: "J", deck.Queen: "Q", deck.King: "K", deck.Ace: "A",
	}
	return ranks[c.Rank] + suitName(c.Suit)
}

func suitName(s deck.Suit) string {
	switch s {
	case deck.Clubs:
		return "♣"
	case deck.Spades:
		return "♠"
	case deck.Hearts:
		return "♥"
	case deck.Diamonds:
		return "♦"
	}
	return "?"
}
