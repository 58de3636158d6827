package game

// Result tells the caller what a move changed.
type Result uint8

const (
	NoChange Result = iota
	CellRevealed
	FlagPlaced
	FlagRemoved
	MineBlown
	GameWon
)

var resultNames = [...]string{
	NoChange:     "no_change",
	CellRevealed: "cell_revealed",
	FlagPlaced:   "flag_placed",
	FlagRemoved:  "flag_removed",
	MineBlown:    "mine_blown",
	GameWon:      "game_won",
}

func (r Result) String() string {
	if int(r) < len(resultNames) {
		return resultNames[r]
	}
	return "unknown"
}

type Status uint8

const (
	Playing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

func (s Status) Over() bool {
	return s != Playing
}

// [Status] implements [encoding.TextMarshaler]
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
