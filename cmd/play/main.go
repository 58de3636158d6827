// Command play is a terminal minesweeper client.
//
// Commands are read from stdin, one per line:
//
//	o x y   open a cell
//	f x y   toggle a flag
//	c x y   chord around a number
//	r       give up
//	n       new game
//	q       quit
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/game"
	"github.com/vancomm/minefield/internal/logging"
	"github.com/vancomm/minefield/internal/minefield"
)

var (
	configPath string
	presetName string
	seed       uint64
)

func init() {
	flag.StringVar(&configPath, "config", "", "config file path")
	flag.StringVar(&presetName, "preset", "", "beginner, intermediate, expert or single (overrides config)")
	flag.Uint64Var(&seed, "seed", 0, "mine placement seed, 0 for random (overrides config)")
}

type client struct {
	log    logrus.FieldLogger
	out    io.Writer
	preset minefield.Preset
	rnd    minefield.Rand
	game   *game.Game
}

func (c *client) newGame() error {
	g, err := game.New(c.preset, c.rnd)
	if err != nil {
		return err
	}
	c.game = g
	params := g.Params()
	fmt.Fprintf(c.out, "new %s game: %dx%d, %d mines\n", c.preset, params.Width, params.Height, params.MineCount)
	return nil
}

func (c *client) render() {
	g := c.game
	fmt.Fprint(c.out, g.Grid().ToString(g.Params().Width))
	fmt.Fprintf(c.out, "mines left: %d   time: %s\n", g.MinesLeft(), game.FormatElapsed(g.Elapsed()))
	switch g.Status() {
	case game.Won:
		fmt.Fprintln(c.out, "You cleared the area of mines! Congratulations! (n: new game, q: quit)")
	case game.Lost:
		fmt.Fprintln(c.out, "You stepped on a mine and exploded! Try again? (n: new game, q: quit)")
	}
}

// run reads commands until q or EOF.
func (c *client) run(in io.Reader) error {
	if err := c.newGame(); err != nil {
		return err
	}
	c.render()

	scanner := bufio.NewScanner(in)
	for fmt.Fprint(c.out, "> "); scanner.Scan(); fmt.Fprint(c.out, "> ") {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "q":
			return nil
		case "n":
			if err := c.newGame(); err != nil {
				return err
			}
			c.render()
			continue
		}

		result, err := game.Execute(c.game, line)
		if err != nil {
			fmt.Fprintln(c.out, "error:", err)
			continue
		}
		c.log.WithFields(logrus.Fields{
			"command": line,
			"result":  result.String(),
		}).Debug("executed")
		c.render()
	}
	return scanner.Err()
}

func main() {
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		logrus.Fatal("unable to load config: ", err)
	}
	if presetName != "" {
		cfg.Game.Preset = presetName
	}
	if seed != 0 {
		cfg.Game.Seed = seed
	}
	preset, err := cfg.Game.ParsePreset()
	if err != nil {
		logrus.Fatal(err)
	}

	log, err := logging.New(cfg.Log, cfg.Development, os.Stderr)
	if err != nil {
		logrus.Fatal("unable to set up logging: ", err)
	}
	logging.Adopt(minefield.Log, log)
	logging.Adopt(game.Log, log)

	c := &client{
		log:    log,
		out:    os.Stdout,
		preset: preset,
		rnd:    minefield.NewRand(cfg.Game.Seed),
	}
	if err := c.run(os.Stdin); err != nil {
		log.Fatal(err)
	}
}
