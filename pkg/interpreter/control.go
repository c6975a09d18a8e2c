package interpreter

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"claro/pkg/lexer"
	"claro/pkg/parser"
)

// blockEnds maps block-collecting commands to their terminators
var blockEnds = map[string]string{
	"WHILE":    "ENDWHILE",
	"FOR":      "ENDFOR",
	"FUNCTION": "ENDFUNCTION",
	"TRY":      "ENDTRY",
}

// opensBlock reports whether line starts a nested block, and its terminator.
// Only headers that dispatch would accept and then collect a body for count;
// a malformed header is an ordinary bad line inside the body. Loops written
// on one line (BEGIN ... ENDWHILE) open nothing.
func (i *Interpreter) opensBlock(line string) (string, bool) {
	tokens := lexer.Tokenize(line)
	if len(tokens) == 0 || tokens[0].Type != lexer.WORD {
		return "", false
	}

	st := &statement{line: line, tokens: tokens, name: tokens[0].Upper()}
	end, ok := blockEnds[st.name]
	if !ok || len(tokens) < i.commands[st.name].minTokens {
		return "", false
	}

	last := len(tokens) - 1
	switch st.name {
	case "WHILE":
		return end, st.find("BEGIN", 1) == last
	case "FOR":
		h, err := parseForHeader(st)
		return end, err == nil && h.begin == last
	}
	return end, true
}

// collect reads block body lines from the current source up to stop. Nested
// blocks are kept whole, so their terminators do not end the collection.
func (i *Interpreter) collect(what, hint, prompt, stop string) ([]string, error) {
	src := i.src
	if src == nil {
		src = i.input
	}
	if hint != "" && isInteractive(src) {
		i.printf("%s\n", hint)
	}

	var (
		body   []string
		nested []string
		over   bool
	)
	for {
		line, err := src.ReadLine(prompt)
		if errors.Is(err, io.EOF) {
			return nil, syntaxErrorf("unterminated %s block, expected %s", what, stop)
		}
		if err != nil {
			return nil, err
		}

		trimmed := strings.TrimSpace(line)
		n := len(nested)
		if n == 0 && strings.EqualFold(trimmed, stop) {
			break
		}
		if n > 0 && strings.EqualFold(trimmed, nested[n-1]) {
			nested = nested[:n-1]
		} else if end, ok := i.opensBlock(trimmed); ok {
			nested = append(nested, end)
		}

		if limit := i.limits.BlockLines; limit > 0 && len(body) >= limit {
			over = true
			continue
		}
		body = append(body, line)
	}

	if over {
		return nil, fmt.Errorf("%w (%d lines) in %s block", ErrBlockLimit, i.limits.BlockLines, what)
	}
	return body, nil
}

// loopBody returns the body of a WHILE or FOR whose BEGIN is token begin.
// Text after BEGIN is a one-line body closed by end on the same line.
func (i *Interpreter) loopBody(st *statement, begin int, end, hint string) ([]string, error) {
	last := len(st.tokens) - 1
	if begin == last {
		return i.collect(st.name, hint, "... ", end)
	}

	if !st.tokens[last].IsWord(end) {
		return nil, syntaxErrorf("%s body after BEGIN must end with %s on the same line", st.name, end)
	}
	if inline := st.between(begin+1, last); inline != "" {
		return []string{inline}, nil
	}
	return nil, nil
}

// iterate checks the per-statement loop guard before iteration n
func (i *Interpreter) iterate(what string, n int) error {
	if limit := i.limits.LoopIterations; limit > 0 && n >= limit {
		return fmt.Errorf("%w (%d) in %s loop", ErrMaxIterationsExceeded, limit, what)
	}
	return nil
}

func (i *Interpreter) cmdRepeat(st *statement) error {
	count, err := strconv.Atoi(st.tokens[1].Text)
	if err != nil || count <= 0 {
		return syntaxErrorf("REPEAT count must be a positive integer")
	}

	cmd := st.from(2)
	for n := 1; n <= count; n++ {
		i.logger.Debug("repeat iteration", "iteration", n, "command", cmd)
		if err := i.Execute(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) cmdIf(st *statement) error {
	then := st.find("THEN", 1)
	if then < 0 {
		return syntaxErrorf("IF syntax error. Usage: IF <cond> THEN <cmd> [ELSE <cmd>] ENDIF")
	}

	elseIdx, endif, depth := -1, -1, 0
	for idx := then + 1; idx < len(st.tokens) && endif < 0; idx++ {
		tok := st.tokens[idx]
		switch {
		case tok.IsWord("IF"):
			depth++
		case tok.IsWord("ENDIF"):
			if depth == 0 {
				endif = idx
			} else {
				depth--
			}
		case tok.IsWord("ELSE") && depth == 0 && elseIdx < 0:
			elseIdx = idx
		}
	}
	if endif < 0 {
		return syntaxErrorf("IF syntax error. Usage: IF <cond> THEN <cmd> [ELSE <cmd>] ENDIF")
	}

	cond, err := i.eval(st.between(1, then))
	if err != nil {
		return err
	}

	var clause string
	switch {
	case cond != 0 && elseIdx >= 0:
		clause = st.between(then+1, elseIdx)
	case cond != 0:
		clause = st.between(then+1, endif)
	case elseIdx >= 0:
		clause = st.between(elseIdx+1, endif)
	}
	if clause == "" {
		return nil
	}
	return i.Execute(clause)
}

func (i *Interpreter) cmdWhile(st *statement) error {
	begin := st.find("BEGIN", 1)
	if begin < 0 {
		return syntaxErrorf("WHILE syntax error. Missing BEGIN")
	}
	cond := st.between(1, begin)

	body, err := i.loopBody(st, begin, "ENDWHILE",
		"Enter WHILE loop block lines (type ENDWHILE on a line by itself):")
	if err != nil {
		return err
	}

	for n := 0; ; n++ {
		v, err := i.eval(cond)
		if err != nil {
			return err
		}
		if v == 0 {
			return nil
		}
		if err := i.iterate("WHILE", n); err != nil {
			return err
		}
		if err := i.runBlock(body); err != nil {
			return err
		}
	}
}

// forHeader holds the keyword positions of a FOR statement; step is -1
// when there is no STEP clause.
type forHeader struct {
	to, step, begin int
}

// parseForHeader checks the shape of FOR <var> = <start> TO <end>
// [STEP <step>] BEGIN and locates its keywords.
func parseForHeader(st *statement) (forHeader, error) {
	if !st.tokens[2].IsWord("=") {
		return forHeader{}, syntaxErrorf("Expected '=' in FOR loop declaration")
	}

	to := st.find("TO", 4)
	if to < 0 {
		return forHeader{}, syntaxErrorf("Expected 'TO' in FOR loop declaration")
	}
	begin := st.find("BEGIN", to+1)
	step := st.find("STEP", to+1)
	if begin >= 0 && step > begin {
		step = -1
	}

	last := len(st.tokens) - 1
	switch {
	case step >= 0 && (step == last || step+1 == begin):
		return forHeader{}, syntaxErrorf("Missing step value in FOR loop")
	case begin < 0:
		return forHeader{}, syntaxErrorf("Missing BEGIN in FOR loop declaration")
	}
	return forHeader{to: to, step: step, begin: begin}, nil
}

// cmdFor runs FOR <var> = <start> TO <end> [STEP <step>] BEGIN. The loop
// variable is re-read before every iteration and advanced from that value.
func (i *Interpreter) cmdFor(st *statement) error {
	name := st.tokens[1].Text
	h, err := parseForHeader(st)
	if err != nil {
		return err
	}
	to, step, begin := h.to, h.step, h.begin

	endHi := begin
	if step >= 0 {
		endHi = step
	}

	body, err := i.loopBody(st, begin, "ENDFOR",
		"Enter FOR loop block lines (type ENDFOR on a line by itself):")
	if err != nil {
		return err
	}

	start, err := i.eval(st.between(3, to))
	if err != nil {
		return err
	}
	end, err := i.eval(st.between(to+1, endHi))
	if err != nil {
		return err
	}
	inc := 1.0
	if step >= 0 {
		if inc, err = i.eval(st.between(step+1, begin)); err != nil {
			return err
		}
		if inc == 0 {
			return syntaxErrorf("FOR loop STEP must not be zero")
		}
	}

	if err := i.vars.Set(newNumber(name, start)); err != nil {
		return err
	}

	for n := 0; ; n++ {
		var cur float64
		if v, ok := i.vars.Get(name); ok {
			cur = v.Number()
		}
		if (inc > 0 && cur > end) || (inc < 0 && cur < end) {
			return nil
		}
		if err := i.iterate("FOR", n); err != nil {
			return err
		}

		if err := i.runBlock(body); err != nil {
			return err
		}
		if err := i.vars.Set(newNumber(name, cur+inc)); err != nil {
			return err
		}
	}
}

// cmdTry collects both bodies, then runs the TRY body under its own
// boundary. An evaluation error anywhere beneath it abandons the rest of the
// body and runs the CATCH body.
func (i *Interpreter) cmdTry(*statement) error {
	tryBody, err := i.collect("TRY", "Enter TRY block lines (type CATCH on a line by itself):", "TRY> ", "CATCH")
	if err != nil {
		return err
	}
	catchBody, err := i.collect("TRY", "", "CATCH> ", "ENDTRY")
	if err != nil {
		return err
	}

	if err := i.tries.Push(tryBoundary{CallDepth: i.calls.Size(), Line: i.line}); err != nil {
		return err
	}
	err = i.runBlock(tryBody)
	boundary, _ := i.tries.Pop()

	var perr *parser.Error
	if !errors.As(err, &perr) {
		if err != nil {
			return err
		}
		i.printf("TRY block executed successfully; skipping CATCH.\n")
		return nil
	}

	i.logger.Debug("try block failed", "line", boundary.Line, "depth", boundary.CallDepth, "error", perr.Err)
	i.report(err)
	i.printf("Error in TRY block; executing CATCH block.\n")
	return i.runBlock(catchBody)
}
