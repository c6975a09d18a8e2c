package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"claro/internal/config"
	"claro/pkg/color"
	"claro/pkg/interpreter"
	"claro/pkg/speech"

	"github.com/charmbracelet/log"
)

var ErrOpenScript = errors.New("could not open file")

const (
	banner = "Welcome to Extended Claro Interpreter!"
	prompt = "Claro> "
)

type Runner struct {
	Help         bool   // Show help message
	Verbose      bool   // Enable debug tracing
	NoColor      bool   // Disable colored output
	HighContrast bool   // Start with the high contrast theme
	Audio        bool   // Start with audio mode on
	ConfigFile   string // Path to the YAML configuration file
	SourceFile   string // Script to run; empty starts the REPL

	Out io.Writer // program output, defaults to stdout
	Err io.Writer // error reports, defaults to stderr
	In  io.Reader // data read by INPUT in script mode, defaults to stdin

	// Console replaces the line-editing terminal of the REPL
	Console interpreter.LineReader
	Logger  *log.Logger
	Speaker speech.Speaker
}

// Run executes the script, or the REPL when no script is given. EXIT and
// end of input are both a normal end.
func (r *Runner) Run() error {
	r.defaults()

	cfg, err := r.loadConfig()
	if err != nil {
		return err
	}

	if r.SourceFile != "" {
		return r.runScript(cfg)
	}
	return r.runREPL(cfg)
}

func (r *Runner) defaults() {
	if r.Out == nil {
		r.Out = os.Stdout
	}
	if r.Err == nil {
		r.Err = os.Stderr
	}
	if r.In == nil {
		r.In = os.Stdin
	}
	if r.Logger == nil {
		r.Logger = log.Default()
	}
}

// loadConfig reads the configuration and applies the command line on top
func (r *Runner) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if r.ConfigFile != "" {
		cfg, err = config.Load(r.ConfigFile)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		r.Logger.Debug("loaded configuration", "file", cfg.Path)
	}

	if r.Verbose {
		cfg.Debug = true
	}
	if r.NoColor {
		cfg.Color = false
	}
	if r.HighContrast {
		cfg.Theme = config.ThemeHigh
	}
	if r.Audio {
		cfg.Audio = true
	}
	return cfg, nil
}

func (r *Runner) theme(w io.Writer, cfg *config.Config) *color.Theme {
	t := color.NewTheme(w)
	if !cfg.Color {
		t.EnableColor(false)
	}
	t.SetHighContrast(cfg.Theme == config.ThemeHigh)
	return t
}

func (r *Runner) newInterpreter(cfg *config.Config, input interpreter.LineReader, opts ...interpreter.Option) *interpreter.Interpreter {
	var speaker speech.Speaker = cfg.Speaker()
	if r.Speaker != nil {
		speaker = r.Speaker
	}

	base := []interpreter.Option{
		interpreter.WithWriter(r.Out),
		interpreter.WithErrWriter(r.Err),
		interpreter.WithInput(input),
		interpreter.WithLogger(r.Logger),
		interpreter.WithTheme(r.theme(r.Err, cfg)),
		interpreter.WithSpeaker(speaker),
		interpreter.WithLimits(cfg.InterpreterLimits()),
		interpreter.WithDebug(cfg.Debug),
		interpreter.WithAudio(cfg.Audio),
	}
	return interpreter.NewInterpreter(append(base, opts...)...)
}

func (r *Runner) runScript(cfg *config.Config) error {
	f, err := os.Open(r.SourceFile)
	if err != nil {
		fmt.Fprintln(r.Err, r.theme(r.Err, cfg).Error("Oops! Error: Could not open file."))
		return fmt.Errorf("%w %s: %w", ErrOpenScript, r.SourceFile, err)
	}
	defer f.Close()

	r.Logger.Debug("processing file", "file", r.SourceFile)

	it := r.newInterpreter(cfg, interpreter.NewScanner(r.In))
	if err := it.Run(interpreter.NewScanner(f)); err != nil && !errors.Is(err, interpreter.ErrExit) {
		return fmt.Errorf("reading %s: %w", r.SourceFile, err)
	}
	return nil
}

func (r *Runner) runREPL(cfg *config.Config) error {
	src := r.Console
	if src == nil {
		c := newConsole()
		defer c.Close()

		if cfg.History {
			if home, err := os.UserHomeDir(); err == nil {
				path := filepath.Join(home, historyFile)
				c.loadHistory(path)
				defer func() {
					if err := c.saveHistory(path); err != nil {
						r.Logger.Warn("could not save history", "file", path, "error", err)
					}
				}()
			}
		}
		src = c
	}

	out := r.theme(r.Out, cfg)
	title := banner
	if cfg.Theme == config.ThemeHigh {
		title += " (High Contrast Mode)"
	}
	fmt.Fprintln(r.Out, out.Bold(title))
	fmt.Fprintln(r.Out, out.Info("Type HELP or GUIDED for commands."))

	it := r.newInterpreter(cfg, src, interpreter.WithPrompt(prompt))
	err := it.Run(src)
	if err == nil {
		// end of input leaves the cursor after the prompt
		fmt.Fprintln(r.Out)
	}
	if err != nil && !errors.Is(err, interpreter.ErrExit) {
		return err
	}
	return nil
}
