package interpreter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"claro/pkg/lexer"

	"github.com/charmbracelet/log"
)

func (i *Interpreter) cmdSet(st *statement) error {
	if !st.tokens[2].IsWord("=") {
		return usageError("VARIABLE/SET <name> = <expression>")
	}
	name := st.tokens[1].Text

	if len(st.tokens) == 4 && st.tokens[3].Type == lexer.LITERAL {
		text := st.tokens[3].Text
		if err := i.vars.Set(newString(name, text)); err != nil {
			return err
		}
		i.printf("Variable '%s' set to '%s'\n", name, text)
		return nil
	}

	v, err := i.eval(st.from(3))
	if err != nil {
		return err
	}

	nv := newNumber(name, v)
	if err := i.vars.Set(nv); err != nil {
		return err
	}
	i.printf("Variable '%s' set to '%s'\n", name, nv.Value)
	return nil
}

func (i *Interpreter) cmdPrint(st *statement) error {
	parts := make([]string, 0, len(st.tokens)-1)

	for _, tok := range st.tokens[1:] {
		switch {
		case tok.Type == lexer.LITERAL:
			parts = append(parts, tok.Text)
		case strings.HasPrefix(tok.Text, "$"):
			if v, ok := i.vars.Get(tok.Text[1:]); ok {
				parts = append(parts, v.Value)
			} else {
				parts = append(parts, "[undefined]")
			}
		default:
			if v, ok := i.vars.Get(tok.Text); ok {
				parts = append(parts, v.Value)
			} else {
				parts = append(parts, tok.Text)
			}
		}
	}

	fmt.Fprintln(i.out, strings.Join(parts, " "))
	return nil
}

func (i *Interpreter) cmdGet(st *statement) error {
	name := st.tokens[1].Text
	if v, ok := i.vars.Get(name); ok {
		i.printf("Variable '%s' = '%s'\n", name, v.Value)
	} else {
		i.printf("Variable '%s' is not defined.\n", name)
	}
	return nil
}

func (i *Interpreter) cmdInput(st *statement) error {
	name := st.tokens[1].Text
	prompt := st.operand(2) + " "

	var (
		line string
		err  error
	)
	if isInteractive(i.input) {
		line, err = i.input.ReadLine(prompt)
	} else {
		fmt.Fprint(i.out, prompt)
		line, err = i.input.ReadLine("")
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ErrInputFailed
		}
		return fmt.Errorf("%w: %w", ErrInputFailed, err)
	}

	value := strings.TrimSpace(line)
	if err := i.vars.Set(newString(name, value)); err != nil {
		return err
	}
	i.printf("Variable '%s' set to '%s'\n", name, value)
	return nil
}

func (i *Interpreter) cmdConcat(st *statement) error {
	dest := st.tokens[1].Text

	var b strings.Builder
	for _, tok := range st.tokens[2:4] {
		if v, ok := i.vars.Get(tok.Text); ok {
			b.WriteString(v.Value)
		}
	}

	if err := i.vars.Set(newString(dest, b.String())); err != nil {
		return err
	}
	i.printf("Concatenated value stored in '%s'.\n", dest)
	return nil
}

// cmdImport runs a file line by line through the dispatcher. The file is
// also the source of its own block bodies.
func (i *Interpreter) cmdImport(st *statement) error {
	path := st.operand(1)

	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}
	if i.imports.Any(func(p string) bool { return p == key }) {
		return fmt.Errorf("%w: %s", ErrImportCycle, path)
	}

	f, err := os.Open(path)
	if err != nil {
		i.logger.Debug("import failed", "file", path, "error", err)
		return fmt.Errorf("%w: %s", ErrImportOpen, path)
	}
	defer f.Close()

	_ = i.imports.Push(key)
	defer i.imports.Pop()

	i.logger.Debug("importing file", "file", path)
	return i.Run(NewScanner(f))
}

func (i *Interpreter) cmdStack(*statement) error {
	frames := i.calls.Array()
	i.printf("Call Stack (depth %d):\n", len(frames))
	for _, f := range frames {
		i.printf("  %s\n", f.FuncName)
	}
	if n := i.tries.Size(); n > 0 {
		i.printf("Active TRY blocks: %d\n", n)
	}
	return nil
}

func (i *Interpreter) cmdTrace(*statement) error {
	i.printf("---- TRACE ----\n")

	i.printf("Variables (%d):\n", i.vars.Len())
	for _, v := range i.vars.All() {
		i.printf("  %s = %s (%s)\n", v.Name, v.Value, v.Kind)
	}

	i.printf("Functions (%d):\n", i.funcs.Len())
	for _, fn := range i.funcs.All() {
		i.printf("  %s(%s) with %d lines\n", fn.Name, strings.Join(fn.Params, ", "), len(fn.Body))
	}

	i.printf("---- END TRACE ----\n")
	return nil
}

// onOff parses the ON/OFF operand of a mode toggle
func onOff(st *statement) (bool, bool) {
	switch {
	case st.tokens[1].IsWord("ON"):
		return true, true
	case st.tokens[1].IsWord("OFF"):
		return false, true
	}
	return false, false
}

func (i *Interpreter) cmdDebug(st *statement) error {
	on, ok := onOff(st)
	if !ok {
		return usageError("DEBUG ON|OFF")
	}

	i.debug = on
	if on {
		i.logger.SetLevel(log.DebugLevel)
		i.printf("Debug mode enabled.\n")
	} else {
		i.logger.SetLevel(i.baseLevel)
		i.printf("Debug mode disabled.\n")
	}
	return nil
}

func (i *Interpreter) cmdAudio(st *statement) error {
	on, ok := onOff(st)
	if !ok {
		return usageError("AUDIO ON|OFF")
	}

	i.audio = on
	if on {
		i.printf("Audio mode enabled. Errors and important messages will be read aloud.\n")
	} else {
		i.printf("Audio mode disabled.\n")
	}
	return nil
}

func (i *Interpreter) cmdTheme(st *statement) error {
	switch {
	case st.tokens[1].IsWord("HIGH"):
		i.theme.SetHighContrast(true)
		i.printf("High contrast mode enabled.\n")
	case st.tokens[1].IsWord("NORMAL"):
		i.theme.SetHighContrast(false)
		i.printf("Normal theme enabled.\n")
	default:
		return usageError("THEME HIGH|NORMAL")
	}
	return nil
}

func (i *Interpreter) cmdSay(st *statement) error {
	i.speak(st.operand(1))
	return nil
}

func (i *Interpreter) cmdCustom(*statement) error {
	i.printf("Custom display mode activated. Extra spacing will be added to outputs to aid readability.\n")
	return nil
}

func (i *Interpreter) cmdExit(*statement) error {
	i.printf("Exiting interpreter.\n")
	return ErrExit
}
