package interpreter

// Frame represents a function call frame. It only names the call for
// diagnostics and remembers the variable watermark to restore on return.
type Frame struct {
	FuncName  string // function name for this frame
	Watermark int    // variable table length before parameters were bound
}

// tryBoundary is pushed while a TRY body runs. Evaluation errors beneath it
// unwind to the innermost one instead of being reported per statement.
type tryBoundary struct {
	CallDepth int // call frames active when the TRY started
	Line      int // line of the TRY statement
}
