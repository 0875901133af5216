// Package loggertest provides a capturing logger for tests that assert on
// diagnostic events emitted through iostreams.Logger.
package loggertest

import (
	"bufio"
	"bytes"
	"encoding/json"

	"github.com/rs/zerolog"
)

// TestLogger records JSON log lines in memory.
type TestLogger struct {
	logger zerolog.Logger
	buf    *bytes.Buffer
}

// New returns a logger that records every event at debug level and above.
func New() *TestLogger {
	buf := &bytes.Buffer{}
	return &TestLogger{
		logger: zerolog.New(buf).Level(zerolog.DebugLevel),
		buf:    buf,
	}
}

// NewNop returns a logger that records nothing.
func NewNop() *TestLogger {
	return &TestLogger{
		logger: zerolog.Nop(),
		buf:    &bytes.Buffer{},
	}
}

func (tl *TestLogger) Debug() *zerolog.Event { return tl.logger.Debug() }
func (tl *TestLogger) Info() *zerolog.Event  { return tl.logger.Info() }
func (tl *TestLogger) Warn() *zerolog.Event  { return tl.logger.Warn() }
func (tl *TestLogger) Error() *zerolog.Event { return tl.logger.Error() }

// Output returns the raw captured lines.
func (tl *TestLogger) Output() string { return tl.buf.String() }

// Reset clears captured output.
func (tl *TestLogger) Reset() { tl.buf.Reset() }

// Entries decodes each captured line into a field map. Lines that are not
// valid JSON are skipped.
func (tl *TestLogger) Entries() []map[string]any {
	var entries []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(tl.buf.Bytes()))
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			continue
		}
		entries = append(entries, m)
	}
	return entries
}

// EntriesAt returns captured entries whose level equals lvl.
func (tl *TestLogger) EntriesAt(lvl zerolog.Level) []map[string]any {
	var out []map[string]any
	for _, e := range tl.Entries() {
		if e[zerolog.LevelFieldName] == lvl.String() {
			out = append(out, e)
		}
	}
	return out
}
