// Package results appends finished-session score lines to a plain text file.
package results

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

// DefaultPath is the results file used when none is configured.
const DefaultPath = "results.txt"

// Record is one saved session.
type Record struct {
	Name             string
	Score            int
	Total            int
	LevelID          int
	LevelDescription string
}

// String renders the record as it is stored, without a line ending.
func (r Record) String() string {
	return fmt.Sprintf("%s: %d/%d in level %d (%s)", r.Name, r.Score, r.Total, r.LevelID, r.LevelDescription)
}

// Sink persists records.
type Sink interface {
	Append(ctx context.Context, rec Record) error
}

// FileSink appends one line per record to a file.
type FileSink struct {
	Path string
}

// NewFileSink returns a FileSink writing to path, or DefaultPath if empty.
func NewFileSink(path string) *FileSink {
	if path == "" {
		path = DefaultPath
	}
	return &FileSink{Path: path}
}

// Append writes rec as a single line. The file is created if missing and is
// never truncated.
func (s *FileSink) Append(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create results dir: %w", err)
		}
	}

	f, err := os.OpenFile(s.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open results file: %w", err)
	}
	_, werr := fmt.Fprintln(f, rec.String())
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("write results file: %w", werr)
	}
	if cerr != nil {
		return fmt.Errorf("close results file: %w", cerr)
	}
	return nil
}

// lineRE matches "<name>: <score>/<total> in level <id> (<description>)".
// The name is matched greedily up to the last ": <n>/<n> in level" so that
// names containing colons still parse.
var lineRE = regexp.MustCompile(`^(.+): (-?\d+)/(\d+) in level (\d+) \((.*)\)$`)

// ParseLine parses one stored line.
func ParseLine(line string) (Record, bool) {
	m := lineRE.FindStringSubmatch(line)
	if m == nil {
		return Record{}, false
	}
	score, _ := strconv.Atoi(m[2])
	total, _ := strconv.Atoi(m[3])
	id, _ := strconv.Atoi(m[4])
	return Record{
		Name:             m[1],
		Score:            score,
		Total:            total,
		LevelID:          id,
		LevelDescription: m[5],
	}, true
}

// ReadFile returns the records stored at path, skipping lines that do not
// parse. A missing file yields no records.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open results file: %w", err)
	}
	defer f.Close()

	var recs []Record
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if rec, ok := ParseLine(sc.Text()); ok {
			recs = append(recs, rec)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	return recs, nil
}
