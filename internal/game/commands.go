package game

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"
)

type Command string

const (
	CmdNoop    Command = "g"
	CmdOpen    Command = "o"
	CmdFlag    Command = "f"
	CmdChord   Command = "c"
	CmdForfeit Command = "r"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArguments   = errors.New("invalid arguments")
)

// Maps known commands to number of arguments
var commandNargs = map[Command]int{
	CmdNoop:    0,
	CmdOpen:    2,
	CmdFlag:    2,
	CmdChord:   2,
	CmdForfeit: 0,
}

func parseXY(args []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(args[0]); err != nil {
		return 0, 0, fmt.Errorf("%w: first argument must be an int", ErrBadArguments)
	}
	if y, err = strconv.Atoi(args[1]); err != nil {
		return 0, 0, fmt.Errorf("%w: second argument must be an int", ErrBadArguments)
	}
	return
}

// Execute runs a single command line such as "o 3 4" against g.
func Execute(g *Game, line string) (Result, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return NoChange, fmt.Errorf("%w: empty command", ErrUnknownCommand)
	}
	cmd := Command(parts[0])
	nargs, ok := commandNargs[cmd]
	if !ok {
		return NoChange, fmt.Errorf("%w: %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return NoChange, fmt.Errorf(
			"%w: %q takes %d, got %d", ErrBadArguments, cmd, nargs, len(parts)-1,
		)
	}

	switch cmd {
	case CmdNoop:
		return NoChange, nil
	case CmdForfeit:
		g.Forfeit()
		return NoChange, nil
	}

	x, y, err := parseXY(parts[1:])
	if err != nil {
		return NoChange, err
	}
	switch cmd {
	case CmdOpen:
		return g.Open(x, y)
	case CmdFlag:
		return g.ToggleFlag(x, y)
	default:
		return g.Chord(x, y)
	}
}

// ExecuteBatch runs newline-separated commands until one fails or the game
// ends. Blank lines are skipped.
func ExecuteBatch(g *Game, text string) (last Result, err error) {
	for _, line := range byPiece(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if last, err = Execute(g, line); err != nil {
			return last, err
		}
		if g.Status().Over() {
			break
		}
	}
	return last, nil
}

func byPiece(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}
