package sjaus

import "errors"

// Validation errors: the command was understood but not allowed. State is
// left untouched and the caller may retry with corrected input.
var (
	ErrNotYourTurn    = errors.New("not your turn")
	ErrInvalidBid     = errors.New("invalid bid")
	ErrIllegalCard    = errors.New("illegal card")
	ErrGameFull       = errors.New("game is full")
	ErrGameNotWaiting = errors.New("game has already started")
	ErrAlreadyInGame  = errors.New("player already in game")
	ErrWrongPhase     = errors.New("invalid action for current phase")
	ErrNotCreator     = errors.New("only the game creator can do that")
	ErrTooFewPlayers  = errors.New("minimum of 2 players required")
)

// Lookup and persistence errors.
var (
	ErrGameNotFound   = errors.New("game not found")
	ErrPlayerNotFound = errors.New("player not found")

	// ErrConflict means the game record changed underneath a save. It is
	// transient: reload and retry the command once.
	ErrConflict = errors.New("game was modified concurrently")
)

// IsValidationError reports whether err is a user-correctable rejection, as
// opposed to a missing record or an infrastructure failure.
func IsValidationError(err error) bool {
	for _, v := range []error{
		ErrNotYourTurn, ErrInvalidBid, ErrIllegalCard, ErrGameFull,
		ErrGameNotWaiting, ErrAlreadyInGame, ErrWrongPhase, ErrNotCreator,
		ErrTooFewPlayers,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
