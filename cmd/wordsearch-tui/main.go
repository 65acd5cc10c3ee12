// Command wordsearch-tui plays a word search round in the terminal.
//
// Drag with the left mouse button across a word to select it; release to
// confirm. Words may run in either direction. r draws a new board, q quits.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/game"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/words"
)

func main() {
	seed := flag.Uint64("seed", 0, "board seed (0 picks a random one)")
	list := flag.String("words", "", "comma separated words to hide instead of the built-in list")
	logPath := flag.String("log", "", "write debug logs to this file")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.Disabled)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	u, err := newUI(screen, source(*seed, *list))
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	u.run()
}

// source returns the round generator for the flags. A fixed seed only
// applies to the first board; restarts draw fresh seeds.
func source(seed uint64, list string) roundSource {
	first := true
	return func() ([]string, uint64, error) {
		s := game.NewSeed()
		if first && seed != 0 {
			s = seed
		}
		first = false
		if list != "" {
			ws, err := words.Take(strings.Split(list, ","), words.PerRound)
			return ws, s, err
		}
		ws, err := words.Pick(game.RNG(^s), words.PerRound)
		return ws, s, err
	}
}
