// assets/embed.go
//
// Embedded runtime assets:
//   - words/es.txt: default word list used when WORDS_FILE is unset.
//   - sql/*.sql:    database migrations, applied in lexical order.

package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed words/*.txt sql/*.sql
var FS embed.FS

// readLines returns the non-empty, non-comment lines of an embedded file.
func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// WordList returns the default word list, as written (not normalized).
func WordList() ([]string, error) {
	return readLines("words/es.txt")
}

// Migrations exposes the sql directory as its own filesystem.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		// only fails for an invalid path, which "sql" is not
		panic(err)
	}
	return sub
}
