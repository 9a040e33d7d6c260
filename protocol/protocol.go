package protocol

// Cmd identifies the kind of message travelling between a client and a
// game session
type Cmd int

const (
	Null Cmd = iota
	NewGame
	Restart
	Draw
	Foundation
	Tableau
	State
	Won
	Error
)

var CmdNames = map[Cmd]string{
	Null:       "Null",
	NewGame:    "NewGame",
	Restart:    "Restart",
	Draw:       "Draw",
	Foundation: "Foundation",
	Tableau:    "Tableau",
	State:      "State",
	Won:        "Won",
	Error:      "Error",
}

var NameToCmd = map[string]Cmd{
	"Null":       Null,
	"NewGame":    NewGame,
	"Restart":    Restart,
	"Draw":       Draw,
	"Foundation": Foundation,
	"Tableau":    Tableau,
	"State":      State,
	"Won":        Won,
	"Error":      Error,
}

func (c Cmd) String() string {
	return CmdNames[c]
}
