package interpreter

import (
	"strings"

	"claro/pkg/lexer"
)

// command is one statement form: the minimum token count (command name
// included), its usage line, and the behaviour.
type command struct {
	minTokens int
	usage     string
	run       func(*Interpreter, *statement) error
}

// statement is a tokenized source line. Operands are sliced from the raw
// line by token offsets, so quoting survives re-dispatch.
type statement struct {
	line   string
	tokens []lexer.Token
	name   string // upper-cased command name
}

// from returns the raw text starting at token idx, trimmed
func (s *statement) from(idx int) string {
	if idx >= len(s.tokens) {
		return ""
	}
	return strings.TrimSpace(s.line[s.tokens[idx].Pos.Offset:])
}

// between returns the raw text from token lo up to (not including) token hi
func (s *statement) between(lo, hi int) string {
	if lo >= hi || lo >= len(s.tokens) {
		return ""
	}
	end := len(s.line)
	if hi < len(s.tokens) {
		end = s.tokens[hi].Pos.Offset
	}
	return strings.TrimSpace(s.line[s.tokens[lo].Pos.Offset:end])
}

// operand returns the text from token idx on; a single quoted literal is
// returned without its quotes.
func (s *statement) operand(idx int) string {
	if idx == len(s.tokens)-1 && s.tokens[idx].Type == lexer.LITERAL {
		return s.tokens[idx].Text
	}
	return s.from(idx)
}

// find returns the index of the first unquoted keyword kw at or after start
func (s *statement) find(kw string, start int) int {
	for idx := start; idx < len(s.tokens); idx++ {
		if s.tokens[idx].IsWord(kw) {
			return idx
		}
	}
	return -1
}

// commandTable maps command names to behaviours
func commandTable() map[string]command {
	set := command{4, "VARIABLE/SET <name> = <expression>", (*Interpreter).cmdSet}

	return map[string]command{
		"SET":        set,
		"VARIABLE":   set,
		"PRINT":      {1, "PRINT <items...>", (*Interpreter).cmdPrint},
		"GET":        {2, "GET <name>", (*Interpreter).cmdGet},
		"INPUT":      {3, "INPUT <name> <prompt...>", (*Interpreter).cmdInput},
		"CONCAT":     {4, "CONCAT <dest> <var1> <var2>", (*Interpreter).cmdConcat},
		"REPEAT":     {3, "REPEAT <count> <command>", (*Interpreter).cmdRepeat},
		"IF":         {1, "IF <cond> THEN <cmd> [ELSE <cmd>] ENDIF", (*Interpreter).cmdIf},
		"WHILE":      {1, "WHILE <cond> BEGIN ... ENDWHILE", (*Interpreter).cmdWhile},
		"FOR":        {7, "FOR <var> = <start> TO <end> [STEP <step>] BEGIN", (*Interpreter).cmdFor},
		"TRY":        {1, "TRY ... CATCH ... ENDTRY", (*Interpreter).cmdTry},
		"FUNCTION":   {2, "FUNCTION <name> [params...]", (*Interpreter).cmdFunction},
		"CALL":       {2, "CALL <name> [args...]", (*Interpreter).cmdCall},
		"RETURN":     {2, "RETURN <expression>", (*Interpreter).cmdReturn},
		"IMPORT":     {2, "IMPORT <filename>", (*Interpreter).cmdImport},
		"STACK":      {1, "STACK", (*Interpreter).cmdStack},
		"TRACE":      {1, "TRACE", (*Interpreter).cmdTrace},
		"DEBUG":      {2, "DEBUG ON|OFF", (*Interpreter).cmdDebug},
		"AUDIO":      {2, "AUDIO ON|OFF", (*Interpreter).cmdAudio},
		"THEME":      {2, "THEME HIGH|NORMAL", (*Interpreter).cmdTheme},
		"SAY":        {2, "SAY <text>", (*Interpreter).cmdSay},
		"HELP":       {1, "HELP", (*Interpreter).cmdHelp},
		"CHEATSHEET": {1, "CHEATSHEET", (*Interpreter).cmdCheatsheet},
		"GUIDED":     {1, "GUIDED", (*Interpreter).cmdGuided},
		"CUSTOM":     {1, "CUSTOM", (*Interpreter).cmdCustom},
		"EXIT":       {1, "EXIT", (*Interpreter).cmdExit},
	}
}

// dispatch tokenizes line and runs the matching command
func (i *Interpreter) dispatch(line string) error {
	tokens := lexer.Tokenize(line)
	if len(tokens) == 0 {
		return nil
	}

	st := &statement{line: line, tokens: tokens, name: tokens[0].Upper()}
	if top, ok := i.calls.Peek(); ok {
		i.logger.Debug("executing command", "command", st.name, "line", i.line, "function", top.FuncName)
	} else {
		i.logger.Debug("executing command", "command", st.name, "line", i.line)
	}

	cmd, ok := i.commands[st.name]
	if !ok || tokens[0].Type != lexer.WORD {
		return syntaxErrorf("unknown command '%s'", tokens[0].Text)
	}
	if len(tokens) < cmd.minTokens {
		return usageError(cmd.usage)
	}

	return cmd.run(i, st)
}
