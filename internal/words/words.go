// internal/words/words.go
//
// Word supply for new rounds.
//
// Responsibilities:
//   - Load the candidate list from WORDS_FILE or the embedded default.
//   - Normalize words for the board: strip accents (Ñ is kept), upper-case.
//   - Pick a round's worth of distinct, board-sized words at random.
//
// Constraints:
//   • Playable words are MinLen..MaxLen runes from the board alphabet.
//   • A round needs at least MinWords words; Pick returns ErrNotEnough otherwise.
//   • Initialization is run once (sync.Once).

package words

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/robalobadob/wordsearch/apps/go-server/assets"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/grid"
)

const (
	MinLen   = 3
	MaxLen   = 12
	MinWords = 5
	PerRound = 12
)

// ErrNotEnough is returned when a list yields fewer than MinWords playable words.
var ErrNotEnough = errors.New("words: not enough valid words")

var (
	initOnce   sync.Once
	candidates []string // normalized, valid, de-duplicated
	initialErr error
)

// Init loads the candidate list exactly once.
func Init() error {
	initOnce.Do(func() {
		var raw []string
		if path := os.Getenv("WORDS_FILE"); path != "" {
			raw, initialErr = readWordFile(path)
		} else {
			raw, initialErr = assets.WordList()
		}
		if initialErr != nil {
			return
		}
		candidates = Clean(raw)
		if len(candidates) < MinWords {
			initialErr = fmt.Errorf("%w: list has %d", ErrNotEnough, len(candidates))
		}
	})
	return initialErr
}

// readWordFile loads one word per line, skipping blanks and # comments.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

// Normalize upper-cases s and removes accents and other combining marks,
// except the tilde of Ñ, which is a letter of its own.
func Normalize(s string) string {
	s = strings.ToUpper(norm.NFC.String(strings.TrimSpace(s)))
	parts := strings.Split(s, "Ñ")
	for i, p := range parts {
		t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
		if out, _, err := transform.String(t, p); err == nil {
			parts[i] = out
		}
	}
	return strings.Join(parts, "Ñ")
}

// Valid reports whether a normalized word can go on the board.
func Valid(w string) bool {
	n := utf8.RuneCountInString(w)
	if n < MinLen || n > MaxLen {
		return false
	}
	for _, r := range w {
		if !grid.InAlphabet(r) {
			return false
		}
	}
	return true
}

// Clean normalizes list, drops invalid words and duplicates, keeping order.
func Clean(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = Normalize(w)
		if !Valid(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// Take returns the first n cleaned words of list, or ErrNotEnough.
func Take(list []string, n int) ([]string, error) {
	out := Clean(list)
	if len(out) > n {
		out = out[:n]
	}
	if len(out) < MinWords {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrNotEnough, len(out), MinWords)
	}
	return out, nil
}

// Pick draws up to n distinct words from the loaded list using rng.
func Pick(rng *rand.Rand, n int) ([]string, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	pool := slices.Clone(candidates)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return Take(pool, n)
}

// Count returns how many playable words are loaded.
func Count() int {
	if Init() != nil {
		return 0
	}
	return len(candidates)
}
