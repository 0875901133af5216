package prompter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/schmitthub/imageclean/internal/iostreams"
)

// ErrNoAnswer is returned when input ends before a valid answer was given.
var ErrNoAnswer = errors.New("no answer: input closed")

// Prompter provides interactive prompting functionality.
// It uses IOStreams for testable I/O.
type Prompter struct {
	ios    *iostreams.IOStreams
	reader *bufio.Reader
}

// NewPrompter creates a new Prompter with the given IOStreams.
func NewPrompter(ios *iostreams.IOStreams) *Prompter {
	return &Prompter{ios: ios}
}

// in returns a buffered reader over ios.In that survives across prompts, so
// input read ahead for one question is not lost for the next.
func (p *Prompter) in() *bufio.Reader {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.ios.In)
	}
	return p.reader
}

// YesNo writes message to stderr and reads a line until the answer is
// exactly "y" or "n". Anything else repeats the question. Input is read even
// when stdin is not a terminal.
func (p *Prompter) YesNo(message string) (bool, error) {
	r := p.in()
	for {
		fmt.Fprint(p.ios.ErrOut, message)

		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("failed to read input: %w", err)
		}

		switch strings.TrimRight(line, "\r\n") {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}

		if err != nil {
			fmt.Fprintln(p.ios.ErrOut)
			return false, ErrNoAnswer
		}
		p.ios.Logger.Debug().Str("answer", line).Msg("unrecognised answer, asking again")
	}
}
