// Package protocol names the commands a client may send and the events the
// server pushes back. The strings are the wire values.
package protocol

// Cmd represents a player command
type Cmd string

const (
	JoinGame      Cmd = "joinGame"
	LeaveGame     Cmd = "leaveGame"
	StartGame     Cmd = "startGame"
	DeclareTrump  Cmd = "declareTrump"
	PassTrump     Cmd = "passTrump"
	ExchangeTable Cmd = "exchangeTable"
	PlayCard      Cmd = "playCard"
	SendMessage   Cmd = "sendMessage"
)

// Event represents a server push
type Event string

const (
	StateChanged Event = "state"
	ChatMessage  Event = "chat"
	CommandError Event = "error"
)

// Known reports whether the command is one the server dispatches
func (c Cmd) Known() bool {
	switch c {
	case JoinGame, LeaveGame, StartGame, DeclareTrump, PassTrump,
		ExchangeTable, PlayCard, SendMessage:
		return true
	}
	return false
}
