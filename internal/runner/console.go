package runner

import (
	"errors"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// historyFile is kept in the home directory
const historyFile = ".claro_history"

// console is the interactive line source of the REPL. Statements, block
// bodies and INPUT all read through it, so they share one history.
type console struct {
	state *liner.State
}

func newConsole() *console {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	return &console{state: ln}
}

// ReadLine prompts for one line. Ctrl-C abandons the line being typed and
// yields an empty one; Ctrl-D ends the input with io.EOF.
func (c *console) ReadLine(prompt string) (string, error) {
	line, err := c.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(line) != "" {
		c.state.AppendHistory(line)
	}
	return line, nil
}

func (c *console) Interactive() bool {
	return true
}

func (c *console) loadHistory(path string) {
	if f, err := os.Open(path); err == nil {
		_, _ = c.state.ReadHistory(f)
		_ = f.Close()
	}
}

func (c *console) saveHistory(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = c.state.WriteHistory(f)
	return err
}

func (c *console) Close() error {
	return c.state.Close()
}
