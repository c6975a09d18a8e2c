package main

import (
	"claro/internal/logger"
	"claro/internal/runner"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// Main entry point for the Claro interpreter.
func main() {
	options := runner.Runner{}

	flag.BoolVar(&options.Help, "h", false, "Show help")
	flag.BoolVar(&options.Verbose, "v", false, "Verbose mode (debug tracing)")
	flag.BoolVar(&options.NoColor, "n", false, "No color")
	flag.BoolVar(&options.HighContrast, "t", false, "High contrast theme")
	flag.BoolVar(&options.Audio, "a", false, "Read errors aloud")
	flag.StringVar(&options.ConfigFile, "c", "", "Configuration file (default $HOME/.claro.yaml)")

	flag.Parse()
	args := flag.Args()

	logger.Init(options.Verbose, options.NoColor)
	if options.Help {
		fmt.Printf("Usage: %s [options] [script]\n", os.Args[0])
		fmt.Println("Without a script an interactive session is started.")
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if len(args) > 1 {
		log.Fatal("Too many arguments", "help", fmt.Sprintf("%s -h", os.Args[0]))
	}
	if len(args) == 1 {
		options.SourceFile = args[0]
	}

	if err := options.Run(); err != nil {
		if errors.Is(err, runner.ErrOpenScript) {
			log.Debug("startup failed", "error", err)
			os.Exit(1)
		}
		log.Fatal("Interpreter failed", "error", err)
	}
}
