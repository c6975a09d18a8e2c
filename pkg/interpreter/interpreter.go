package interpreter

import (
	"errors"
	"fmt"
	"io"
	"os"

	"claro/pkg/color"
	"claro/pkg/parser"
	"claro/pkg/speech"
	"claro/pkg/stack"

	"github.com/charmbracelet/log"
)

// Limits bounds the fixed-capacity tables. Zero means unbounded.
type Limits struct {
	Variables      int // live variables
	Functions      int // function definitions
	CallDepth      int // nested calls
	BlockLines     int // lines in one collected block body
	LoopIterations int // iterations of a single WHILE or FOR statement
}

// DefaultLimits returns the standard table capacities; loops are unbounded
func DefaultLimits() Limits {
	return Limits{
		Variables:  100,
		Functions:  100,
		CallDepth:  100,
		BlockLines: 100,
	}
}

// Interpreter executes one line at a time against a shared variable table.
// It holds all interpreter state; nothing is kept in package globals.
type Interpreter struct {
	vars  *Store
	funcs *Registry

	calls   *stack.Stack[Frame]       // call frames (diagnostics and watermarks)
	tries   *stack.Stack[tryBoundary] // active TRY boundaries
	imports *stack.Stack[string]      // files being imported, for cycle detection

	returnValue float64 // pending return value, kept across calls

	src    LineReader // source of the statement being executed
	input  LineReader // interactive input for INPUT
	line   int        // line number within the current top-level source
	prompt string     // prompt for top-level statements

	out     io.Writer    // output writer for PRINT and messages
	errOut  io.Writer    // error writer for reports
	theme   *color.Theme // colours for errOut
	logger  *log.Logger
	speaker speech.Speaker

	debug     bool
	audio     bool
	baseLevel log.Level // logger level restored by DEBUG OFF

	limits   Limits
	commands map[string]command
}

type Option func(*Interpreter)

// WithWriter sets the output writer for PRINT and command messages
func WithWriter(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithErrWriter sets the writer used for error reports
func WithErrWriter(w io.Writer) Option {
	return func(i *Interpreter) { i.errOut = w }
}

// WithInput sets the line source read by INPUT
func WithInput(r LineReader) Option {
	return func(i *Interpreter) { i.input = r }
}

// WithLogger sets the logger used for debug tracing
func WithLogger(l *log.Logger) Option {
	return func(i *Interpreter) { i.logger = l }
}

// WithTheme sets the theme used to colour error reports
func WithTheme(t *color.Theme) Option {
	return func(i *Interpreter) { i.theme = t }
}

// WithSpeaker sets the speech backend for AUDIO and SAY
func WithSpeaker(s speech.Speaker) Option {
	return func(i *Interpreter) { i.speaker = s }
}

// WithLimits replaces the table capacities
func WithLimits(l Limits) Option {
	return func(i *Interpreter) { i.limits = l }
}

// WithMaxIterations bounds a single loop statement; 0 = unlimited
func WithMaxIterations(n int) Option {
	return func(i *Interpreter) { i.limits.LoopIterations = n }
}

// WithPrompt sets the prompt passed to interactive sources for top-level lines
func WithPrompt(p string) Option {
	return func(i *Interpreter) { i.prompt = p }
}

// WithAudio starts the interpreter with audio mode on
func WithAudio(on bool) Option {
	return func(i *Interpreter) { i.audio = on }
}

// WithDebug starts the interpreter with debug tracing on
func WithDebug(on bool) Option {
	return func(i *Interpreter) { i.debug = on }
}

// NewInterpreter creates a new Interpreter instance
func NewInterpreter(opts ...Option) *Interpreter {
	it := &Interpreter{
		limits: DefaultLimits(),
	}

	for _, o := range opts {
		o(it)
	}

	if it.out == nil {
		it.out = os.Stdout
	}
	if it.errOut == nil {
		it.errOut = os.Stderr
	}
	if it.input == nil {
		it.input = NewScanner(os.Stdin)
	}
	if it.theme == nil {
		it.theme = color.NewTheme(it.errOut)
	}
	if it.speaker == nil {
		it.speaker = speech.Espeak()
	}
	if it.logger == nil {
		it.logger = log.NewWithOptions(it.errOut, log.Options{Prefix: "CLARO", Level: log.WarnLevel})
	}
	it.baseLevel = it.logger.GetLevel()
	if it.debug {
		it.logger.SetLevel(log.DebugLevel)
	}

	it.vars = NewStore(it.limits.Variables)
	it.funcs = NewRegistry(it.limits.Functions)
	it.calls = stack.NewStack[Frame](it.limits.CallDepth)
	it.tries = stack.NewStack[tryBoundary](0)
	it.imports = stack.NewStack[string](0)
	it.commands = commandTable()

	return it
}

// Reset clears runtime state (variables, functions, call stack, return value)
func (i *Interpreter) Reset() {
	i.vars.Reset()
	i.funcs.Reset()
	i.calls.Reset()
	i.tries.Reset()
	i.imports.Reset()
	i.returnValue = 0
	i.line = 0
}

// Output returns the output writer used for PRINT
// Variable returns the current value of name
func (i *Interpreter) Variable(name string) (Variable, bool) {
	return i.vars.Get(name)
}

// Variables returns the variable table in insertion order
func (i *Interpreter) Variables() []Variable {
	return i.vars.All()
}

// Functions returns the function definitions in definition order
func (i *Interpreter) Functions() []*FunctionDef {
	return i.funcs.All()
}

// CallStack returns the names of the active calls, outermost first
func (i *Interpreter) CallStack() []string {
	frames := i.calls.Array()
	names := make([]string, len(frames))
	for idx, f := range frames {
		names[idx] = f.FuncName
	}
	return names
}

// ReturnValue returns the pending function return value
func (i *Interpreter) ReturnValue() float64 {
	return i.returnValue
}

func (i *Interpreter) Debug() bool {
	return i.debug
}

func (i *Interpreter) Audio() bool {
	return i.audio
}

func (i *Interpreter) Theme() *color.Theme {
	return i.theme
}

// Run executes every line of src at top level until it is exhausted or EXIT
// runs. Block bodies are read from src as well. It returns ErrExit after
// EXIT and nil at end of input.
func (i *Interpreter) Run(src LineReader) error {
	saved := i.line
	i.line = 0
	defer func() { i.line = saved }()

	return i.run(&countingReader{r: src, line: &i.line}, i.prompt)
}

// Execute runs one line under a statement error boundary. Errors are
// reported and swallowed, except control signals (EXIT, RETURN) and, while
// a TRY body runs, evaluation errors, which are returned for the caller to
// unwind.
func (i *Interpreter) Execute(line string) error {
	err := i.dispatch(line)
	if err == nil {
		return nil
	}

	if isSignal(err) {
		return err
	}

	var perr *parser.Error
	if errors.As(err, &perr) && i.tries.Size() > 0 {
		return err
	}

	i.report(err)
	return nil
}

// run executes lines from src until it is exhausted, making src the source
// for block bodies of the statements it yields.
func (i *Interpreter) run(src LineReader, prompt string) error {
	prev := i.src
	i.src = src
	defer func() { i.src = prev }()

	for {
		line, err := src.ReadLine(prompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := i.Execute(line); err != nil {
			return err
		}
	}
}

// runBlock replays collected lines as a nested source
func (i *Interpreter) runBlock(lines []string) error {
	return i.run(NewLines(lines), "")
}

// eval evaluates an expression against the variable table
func (i *Interpreter) eval(expr string) (float64, error) {
	return parser.Evaluate(expr, i.vars.Lookup)
}

// report writes an error to the error writer, and speaks it in audio mode
func (i *Interpreter) report(err error) {
	msg := err.Error()

	text := "Oops! Error: " + msg
	if i.line > 0 {
		text = fmt.Sprintf("Oops! Error (line %d): %s", i.line, msg)
	}
	fmt.Fprintln(i.errOut, i.theme.Error(text))

	var perr *parser.Error
	if errors.As(err, &perr) {
		i.logger.Debug("evaluation failed", "offset", perr.Offset, "context", perr.Context())
	}

	if i.audio {
		i.speak("Error: " + msg)
	}
}

// speak sends text to the speaker; failures never abort a statement
func (i *Interpreter) speak(text string) {
	if err := i.speaker.Say(text); err != nil {
		i.logger.Warn("speech failed", "error", err)
	}
}

// printf writes a command message to the output writer
func (i *Interpreter) printf(format string, args ...any) {
	fmt.Fprintf(i.out, format, args...)
}
