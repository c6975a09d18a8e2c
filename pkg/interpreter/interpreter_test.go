package interpreter_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"claro/pkg/interpreter"
	"claro/pkg/speech"

	"github.com/charmbracelet/log"
)

type session struct {
	it     *interpreter.Interpreter
	out    *bytes.Buffer
	errOut *bytes.Buffer
	voice  *speech.Recorder
}

func newSession(opts ...interpreter.Option) *session {
	s := &session{
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
		voice:  &speech.Recorder{},
	}

	base := []interpreter.Option{
		interpreter.WithWriter(s.out),
		interpreter.WithErrWriter(s.errOut),
		interpreter.WithLogger(log.New(io.Discard)),
		interpreter.WithSpeaker(s.voice),
		interpreter.WithInput(interpreter.NewLines(nil)),
	}
	s.it = interpreter.NewInterpreter(append(base, opts...)...)
	return s
}

// run feeds a whole program to the session, one line per source line
func (s *session) run(t *testing.T, program string) error {
	t.Helper()
	err := s.it.Run(interpreter.NewLines(strings.Split(program, "\n")))
	if err != nil && !errors.Is(err, interpreter.ErrExit) {
		t.Fatalf("Run: unexpected error %v", err)
	}
	return err
}

func (s *session) value(t *testing.T, name string) string {
	t.Helper()
	v, ok := s.it.Variable(name)
	if !ok {
		t.Fatalf("variable %s is not defined", name)
	}
	return v.Value
}

func TestSetAndPrint(t *testing.T) {
	s := newSession()
	s.run(t, `SET x = 10
PRINT $x
VARIABLE s = "hi there"
PRINT $s
PRINT "literal" x s unknown $missing`)

	expected := "Variable 'x' set to '10'\n" +
		"10\n" +
		"Variable 's' set to 'hi there'\n" +
		"hi there\n" +
		"literal 10 hi there unknown [undefined]\n"
	if got := s.out.String(); got != expected {
		t.Errorf("expected output %q, got %q", expected, got)
	}
	if s.errOut.Len() != 0 {
		t.Errorf("unexpected error output %q", s.errOut.String())
	}
}

func TestSetNumberFormatting(t *testing.T) {
	tests := []struct {
		expr     string
		expected string
		kind     interpreter.ValueKind
	}{
		{"10 / 3", "3.33333", interpreter.KindFloat},
		{"2 * 3", "6", interpreter.KindInt},
		{"1000000", "1e+06", interpreter.KindInt},
		{"0.5 + 0.25", "0.75", interpreter.KindFloat},
		{"-4", "-4", interpreter.KindInt},
		{"3 > 2", "1", interpreter.KindInt},
	}

	for _, test := range tests {
		s := newSession()
		s.run(t, "SET v = "+test.expr)

		v, ok := s.it.Variable("v")
		if !ok {
			t.Fatalf("Input %q: variable not set", test.expr)
		}
		if v.Value != test.expected {
			t.Errorf("Input %q: expected %q, got %q", test.expr, test.expected, v.Value)
		}
		if v.Kind != test.kind {
			t.Errorf("Input %q: expected kind %s, got %s", test.expr, test.kind, v.Kind)
		}
	}
}

func TestInfinityReadsBack(t *testing.T) {
	s := newSession()
	s.run(t, `SET x = 1e308 * 10
SET y = x
SET z = 0 - y
PRINT $x $y $z`)

	out := s.out.String()
	if !strings.Contains(out, "Variable 'y' set to 'inf'") {
		t.Errorf("copy lost the value: %q", out)
	}
	if !strings.HasSuffix(out, "inf inf -inf\n") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestStringValuesInExpressions(t *testing.T) {
	s := newSession()
	s.run(t, `SET a = "12abc"
SET b = "hi"
SET c = a + 1
SET d = b * 2`)

	if got := s.value(t, "c"); got != "13" {
		t.Errorf("expected c = 13, got %s", got)
	}
	if got := s.value(t, "d"); got != "0" {
		t.Errorf("expected d = 0, got %s", got)
	}
}

func TestGet(t *testing.T) {
	s := newSession()
	s.run(t, "SET x = 4\nGET x\nGET y")

	expected := "Variable 'x' set to '4'\nVariable 'x' = '4'\nVariable 'y' is not defined.\n"
	if got := s.out.String(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestConcat(t *testing.T) {
	s := newSession()
	s.run(t, `SET a = "foo"
SET b = 42
CONCAT c a b
CONCAT d a missing
PRINT $c $d`)

	if got := s.value(t, "c"); got != "foo42" {
		t.Errorf("expected foo42, got %s", got)
	}
	if got := s.value(t, "d"); got != "foo" {
		t.Errorf("expected foo, got %s", got)
	}
	if !strings.Contains(s.out.String(), "Concatenated value stored in 'c'.\n") {
		t.Errorf("missing concat message in %q", s.out.String())
	}
}

func TestInput(t *testing.T) {
	s := newSession(interpreter.WithInput(interpreter.NewLines([]string{"  Alice  "})))
	s.run(t, `INPUT name "Your name?"`)

	expected := "Your name? Variable 'name' set to 'Alice'\n"
	if got := s.out.String(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}

	v, _ := s.it.Variable("name")
	if v.Kind != interpreter.KindString {
		t.Errorf("expected string kind, got %s", v.Kind)
	}

	// input is exhausted now
	s.run(t, `INPUT again "Again?"`)
	if !strings.Contains(s.errOut.String(), interpreter.ErrInputFailed.Error()) {
		t.Errorf("expected input failure, got %q", s.errOut.String())
	}
	if _, ok := s.it.Variable("again"); ok {
		t.Error("variable should not be set after a failed read")
	}
}

func TestInputDoesNotReadScript(t *testing.T) {
	s := newSession(interpreter.WithInput(interpreter.NewLines([]string{"typed"})))
	s.run(t, "INPUT v prompt\nPRINT next")

	if got := s.value(t, "v"); got != "typed" {
		t.Errorf("expected typed, got %s", got)
	}
	if !strings.HasSuffix(s.out.String(), "next\n") {
		t.Errorf("script line after INPUT was not executed: %q", s.out.String())
	}
}

func TestVariableCapacity(t *testing.T) {
	s := newSession(interpreter.WithLimits(interpreter.Limits{Variables: 2}))
	s.run(t, `SET a = 1
SET b = 2
SET c = 3
SET a = 9
SET d = 4`)

	if n := len(s.it.Variables()); n != 2 {
		t.Fatalf("expected 2 variables, got %d", n)
	}
	if got := s.value(t, "a"); got != "9" {
		t.Errorf("existing variable should still be writable, got %s", got)
	}
	if got := s.value(t, "b"); got != "2" {
		t.Errorf("expected b = 2, got %s", got)
	}
	if n := strings.Count(s.errOut.String(), interpreter.ErrVariableLimit.Error()); n != 2 {
		t.Errorf("expected 2 limit errors, got %d in %q", n, s.errOut.String())
	}
}

func TestErrorReportFormat(t *testing.T) {
	s := newSession()
	s.run(t, "PRINT a\nSET x = 1 / 0\nSET y = (1 + 2")

	lines := strings.Split(strings.TrimSpace(s.errOut.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 reports, got %q", s.errOut.String())
	}
	if !strings.HasPrefix(lines[0], "Oops! Error (line 2): division by zero is not allowed") {
		t.Errorf("unexpected report %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Oops! Error (line 3): it looks like you forgot a closing parenthesis") {
		t.Errorf("unexpected report %q", lines[1])
	}
	if _, ok := s.it.Variable("x"); ok {
		t.Error("failed assignment should not create the variable")
	}
}

func TestExecuteWithoutLine(t *testing.T) {
	s := newSession()
	if err := s.it.Execute("SET x = 1 / 0"); err != nil {
		t.Fatalf("Execute should swallow evaluation errors, got %v", err)
	}
	if !strings.HasPrefix(s.errOut.String(), "Oops! Error: division by zero") {
		t.Errorf("unexpected report %q", s.errOut.String())
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		line     string
		expected string
	}{
		{"FOO bar", "unknown command 'FOO'"},
		{`"PRINT" x`, "unknown command 'PRINT'"},
		{"GET", "Usage: GET <name>"},
		{"SET x 10 20", "Usage: VARIABLE/SET <name> = <expression>"},
		{"SET x", "Usage: VARIABLE/SET <name> = <expression>"},
		{"CONCAT a b", "Usage: CONCAT <dest> <var1> <var2>"},
		{"DEBUG maybe", "Usage: DEBUG ON|OFF"},
		{"AUDIO", "Usage: AUDIO ON|OFF"},
		{"THEME dark", "Usage: THEME HIGH|NORMAL"},
		{"RETURN 5", interpreter.ErrReturnOutsideFunction.Error()},
	}

	for _, test := range tests {
		s := newSession()
		if err := s.it.Execute(test.line); err != nil {
			t.Errorf("Input %q: unexpected error %v", test.line, err)
		}
		if !strings.Contains(s.errOut.String(), test.expected) {
			t.Errorf("Input %q: expected %q in %q", test.line, test.expected, s.errOut.String())
		}
	}
}

func TestCommandsAreCaseInsensitive(t *testing.T) {
	s := newSession()
	s.run(t, "set x = 2\nprint $x\nGet x")

	expected := "Variable 'x' set to '2'\n2\nVariable 'x' = '2'\n"
	if got := s.out.String(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestExit(t *testing.T) {
	s := newSession()
	err := s.run(t, "PRINT a\nEXIT\nPRINT b")

	if !errors.Is(err, interpreter.ErrExit) {
		t.Fatalf("expected ErrExit, got %v", err)
	}
	if got := s.out.String(); got != "a\nExiting interpreter.\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestDebugMode(t *testing.T) {
	var logs bytes.Buffer
	logger := log.New(&logs)
	logger.SetLevel(log.InfoLevel)

	s := newSession(interpreter.WithLogger(logger))
	s.run(t, "DEBUG ON\nPRINT traced\nDEBUG OFF\nPRINT quiet")

	if s.it.Debug() {
		t.Error("debug mode should be off")
	}
	if logger.GetLevel() != log.InfoLevel {
		t.Errorf("expected level restored to info, got %s", logger.GetLevel())
	}
	if !strings.Contains(logs.String(), "executing command") {
		t.Errorf("expected debug records, got %q", logs.String())
	}
	if n := strings.Count(logs.String(), "PRINT"); n != 1 {
		t.Errorf("expected one traced PRINT, got %d in %q", n, logs.String())
	}

	expected := "Debug mode enabled.\ntraced\nDebug mode disabled.\nquiet\n"
	if got := s.out.String(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestEvaluationContextLogged(t *testing.T) {
	var logs bytes.Buffer
	s := newSession(interpreter.WithLogger(log.New(&logs)))
	s.run(t, "DEBUG ON\nSET a = 1 / 0")

	if !strings.Contains(logs.String(), "evaluation failed") || !strings.Contains(logs.String(), "^") {
		t.Errorf("expected a caret context in the debug log, got %q", logs.String())
	}
}

func TestAudioMode(t *testing.T) {
	s := newSession()
	s.run(t, `SET a = 1 / 0
AUDIO ON
SET b = 1 / 0
SAY "hello there"
AUDIO OFF`)

	if s.it.Audio() {
		t.Error("audio mode should be off")
	}
	if len(s.voice.Spoken) != 2 {
		t.Fatalf("expected 2 spoken messages, got %q", s.voice.Spoken)
	}
	if !strings.HasPrefix(s.voice.Spoken[0], "Error: division by zero") {
		t.Errorf("unexpected spoken error %q", s.voice.Spoken[0])
	}
	if s.voice.Spoken[1] != "hello there" {
		t.Errorf("unexpected spoken text %q", s.voice.Spoken[1])
	}
	if !strings.Contains(s.out.String(), "Audio mode enabled.") {
		t.Errorf("missing audio message in %q", s.out.String())
	}
}

type failingSpeaker struct{}

func (failingSpeaker) Say(string) error {
	return errors.New("no audio device")
}

func TestSpeechFailureIsNotFatal(t *testing.T) {
	var logs bytes.Buffer
	s := newSession(interpreter.WithSpeaker(failingSpeaker{}), interpreter.WithLogger(log.New(&logs)))
	s.run(t, "SAY hi\nPRINT after")

	if s.errOut.Len() != 0 {
		t.Errorf("speech failure should not be reported, got %q", s.errOut.String())
	}
	if !strings.Contains(logs.String(), "no audio device") {
		t.Errorf("expected a warning, got %q", logs.String())
	}
	if s.out.String() != "after\n" {
		t.Errorf("unexpected output %q", s.out.String())
	}
}

func TestTheme(t *testing.T) {
	s := newSession()
	s.run(t, "THEME HIGH")
	if !s.it.Theme().HighContrast() {
		t.Error("expected high contrast theme")
	}

	s.run(t, "theme normal")
	if s.it.Theme().HighContrast() {
		t.Error("expected normal theme")
	}

	expected := "High contrast mode enabled.\nNormal theme enabled.\n"
	if got := s.out.String(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestHelpCommands(t *testing.T) {
	tests := []struct {
		line     string
		expected string
	}{
		{"HELP", "Available commands:"},
		{"CHEATSHEET", "--- Command Cheatsheet ---"},
		{"GUIDED", "Welcome to Guided Tutorial Mode!"},
		{"CUSTOM", "Custom display mode activated."},
	}

	for _, test := range tests {
		s := newSession()
		s.run(t, test.line)
		if !strings.Contains(s.out.String(), test.expected) {
			t.Errorf("%s: expected %q in output", test.line, test.expected)
		}
	}
}

func TestTrace(t *testing.T) {
	s := newSession()
	s.run(t, `SET x = 10
SET s = "hi"
SET f = 2.5
FUNCTION add a b
RETURN a + b
ENDFUNCTION
TRACE`)

	out := s.out.String()
	for _, want := range []string{
		"---- TRACE ----\n",
		"Variables (3):\n",
		"  x = 10 (int)\n",
		"  s = hi (string)\n",
		"  f = 2.5 (float)\n",
		"Functions (1):\n",
		"  add(a, b) with 1 lines\n",
		"---- END TRACE ----\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in trace output %q", want, out)
		}
	}
}

func TestReset(t *testing.T) {
	s := newSession()
	s.run(t, "SET x = 1\nFUNCTION f\nRETURN 3\nENDFUNCTION\nCALL f")

	s.it.Reset()
	if len(s.it.Variables()) != 0 || len(s.it.Functions()) != 0 {
		t.Error("expected empty tables after reset")
	}
	if s.it.ReturnValue() != 0 {
		t.Errorf("expected return value cleared, got %g", s.it.ReturnValue())
	}
}
