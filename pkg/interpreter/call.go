package interpreter

import (
	"errors"
	"fmt"

	"claro/pkg/stack"
)

func (i *Interpreter) cmdFunction(st *statement) error {
	name := st.tokens[1].Text
	params := make([]string, 0, len(st.tokens)-2)
	for _, tok := range st.tokens[2:] {
		params = append(params, tok.Text)
	}

	// the body is consumed even when the definition is rejected
	body, err := i.collect("FUNCTION",
		"Enter function body lines. Type ENDFUNCTION on a line by itself to finish:", "... ", "ENDFUNCTION")
	if err != nil {
		return err
	}

	fn := &FunctionDef{Name: name, Params: params, Body: body}
	if err := i.funcs.Define(fn); err != nil {
		return err
	}

	i.printf("Function '%s' defined with %d parameter(s) and %d code line(s).\n", name, len(params), len(body))
	return nil
}

// cmdCall evaluates each argument as an expression, binds it and prints the
// function's return value. An arity mismatch is a message, not an error.
func (i *Interpreter) cmdCall(st *statement) error {
	name := st.tokens[1].Text
	fn, ok := i.funcs.Lookup(name)
	if !ok {
		i.printf("Function '%s' not defined.\n", name)
		return nil
	}

	args := st.tokens[2:]
	if len(args) != len(fn.Params) {
		i.printf("Error: Function '%s' expects %d arguments, got %d.\n", name, len(fn.Params), len(args))
		i.printf("Function '%s' returned %s\n", name, FormatNumber(0))
		return nil
	}

	values := make([]float64, len(args))
	for idx, tok := range args {
		v, err := i.eval(tok.Text)
		if err != nil {
			return err
		}
		values[idx] = v
	}

	ret, err := i.callFunction(fn, values)
	if err != nil {
		return err
	}

	i.printf("Function '%s' returned %s\n", name, FormatNumber(ret))
	return nil
}

// callFunction runs fn with its parameters bound on top of the variable
// table. Everything appended past the watermark is dropped on return; a
// parameter that shadows an existing variable overwrites it for good.
// Without a RETURN the previous return value is returned again.
func (i *Interpreter) callFunction(fn *FunctionDef, args []float64) (float64, error) {
	mark := i.vars.Len()
	if err := i.calls.Push(Frame{FuncName: fn.Name, Watermark: mark}); err != nil {
		if errors.Is(err, stack.ErrFull) {
			return 0, fmt.Errorf("%w (%d), cannot call '%s'", ErrCallDepth, i.limits.CallDepth, fn.Name)
		}
		return 0, err
	}
	defer func() {
		f, _ := i.calls.Pop()
		i.vars.Truncate(f.Watermark)
	}()

	for idx, p := range fn.Params {
		if err := i.vars.Set(newNumber(p, args[idx])); err != nil {
			return 0, err
		}
	}

	err := i.runBlock(fn.Body)

	var ret *returnSignal
	if errors.As(err, &ret) {
		i.returnValue = ret.value
		return ret.value, nil
	}
	if err != nil {
		return 0, err
	}
	return i.returnValue, nil
}

func (i *Interpreter) cmdReturn(st *statement) error {
	if i.calls.Size() == 0 {
		return ErrReturnOutsideFunction
	}

	v, err := i.eval(st.from(1))
	if err != nil {
		return err
	}

	i.returnValue = v
	return &returnSignal{value: v}
}
