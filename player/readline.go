package player

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
)

var ErrAborted = errors.New("input aborted")

// Terminal reads integers from an interactive readline session.
type Terminal struct {
	rl *readline.Instance
}

func NewTerminal(historyFile string) (*Terminal, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, err
	}
	return &Terminal{rl: rl}, nil
}

// ReadInt prompts until the line parses as an integer.
func (t *Terminal) ReadInt(prompt string) (int, error) {
	t.rl.SetPrompt(prompt)
	for {
		line, err := t.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return 0, ErrAborted
		}
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintf(t.rl.Stderr(), "%q is not a number, please re-enter.\n", strings.TrimSpace(line))
			continue
		}
		return n, nil
	}
}

func (t *Terminal) Stdout() io.Writer { return t.rl.Stdout() }

func (t *Terminal) Close() error {
	return t.rl.Close()
}
