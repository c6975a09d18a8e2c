package interpreter

import "fmt"

const helpText = `
Available commands:
  PRINT <expression>                - Print text and variables (use $ before variable names).
  VARIABLE/SET <name> = <expr>      - Create/update a variable. Use quotes for strings.
  GET <name>                        - Retrieve the value of a variable.
  INPUT <variable> <prompt>         - Prompt for input and store it in a variable.
  CONCAT <dest> <var1> <var2>       - Concatenate two variables into a third.
  REPEAT <count> <command>          - Repeat a command a given number of times.
  IF <cond> THEN <cmd> [ELSE <cmd>] ENDIF - Conditional execution.
  WHILE <cond> BEGIN ... ENDWHILE   - Loop while a condition is true.
  FOR <var> = <start> TO <end> [STEP <s>] BEGIN ... ENDFOR - For-loop with optional step.
  FUNCTION <name> [params...] ... ENDFUNCTION - Define a function; use CALL to invoke.
  CALL <name> [args...]             - Call a user-defined function.
  RETURN <expr>                     - Return a value from a function (inside a function).
  TRY ... CATCH ... ENDTRY          - Run the CATCH lines if the TRY lines fail.
  IMPORT <filename>                 - Run commands from a file.
  STACK                             - Display the current function call stack.
  TRACE                             - Show variables and function definitions.
  DEBUG ON|OFF                      - Enable/disable debug logging.
  THEME HIGH|NORMAL                 - Toggle high contrast theme.
  CUSTOM                            - Activate custom display mode (extra spacing).
  AUDIO ON|OFF                      - Enable/disable audio for errors/messages.
  GUIDED                            - Launch guided tutorial mode.
  CHEATSHEET                        - Show a summary of available commands.
  SAY <text>                        - Use text-to-speech for the given text.
  HELP                              - Display this help message.
  EXIT                              - Exit the interpreter.
`

const cheatsheetText = `
--- Command Cheatsheet ---
 SET/VARIABLE <name> = <expression>      : Assign a variable (numbers or "strings")
 PRINT <expression>                      : Display text/variable (use $ for variables)
 GET <name>                              : Retrieve a variable's value
 IF <cond> THEN <cmd> [ELSE <cmd>] ENDIF : Conditional execution
 WHILE <cond> BEGIN ... ENDWHILE         : Loop while condition is true
 FOR <var> = <start> TO <end> [STEP <s>] BEGIN ... ENDFOR : Loop with initialization and step
 FUNCTION <name> [params...] ... ENDFUNCTION : Define a function; use CALL to execute it
 INPUT <variable> <prompt>               : Prompt for input
 IMPORT <filename>                       : Run commands from a file
 CONCAT <dest> <var1> <var2>             : Concatenate two variables
 DEBUG ON|OFF, THEME HIGH|NORMAL, AUDIO ON|OFF : Toggle modes
 GUIDED, CHEATSHEET, HELP, EXIT          : Additional utility commands

--- End Cheatsheet ---
`

const guidedText = `
--- Guided Tutorial ---
Welcome to Guided Tutorial Mode!
Let's review some basic commands step by step.

1. Creating a variable:
   Use SET or VARIABLE, e.g., SET x = 3.14

2. Printing output:
   Use PRINT, e.g., PRINT $x

3. Conditionals:
   Use IF...THEN...ELSE...ENDIF, e.g., IF $x > 2 THEN PRINT "High" ELSE PRINT "Low" ENDIF

4. Loops with WHILE:
   Example: WHILE $x < 10 BEGIN ... ENDWHILE

5. FOR loops:
   Example: FOR i = 1 TO 5 STEP 1 BEGIN ... ENDFOR

6. To see all commands, type HELP or CHEATSHEET.

End of guided tutorial. Enjoy exploring the interpreter!
`

func (i *Interpreter) cmdHelp(*statement) error {
	fmt.Fprint(i.out, helpText)
	return nil
}

func (i *Interpreter) cmdCheatsheet(*statement) error {
	fmt.Fprint(i.out, cheatsheetText)
	return nil
}

func (i *Interpreter) cmdGuided(*statement) error {
	fmt.Fprint(i.out, guidedText)
	return nil
}
