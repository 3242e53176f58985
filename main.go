package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mcncl/asserthint/internal/config"
	"github.com/mcncl/asserthint/internal/errors"
	"github.com/mcncl/asserthint/internal/parser"
	"github.com/mcncl/asserthint/internal/pipeline"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to a file holding the assertion message. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to the output file. If not specified, writes to stdout." short:"o" type:"path"`
	Code        bool   `help:"Generate builder code for a single value instead of a hint." short:"c"`
	Color       string `help:"Colorize hints: auto, always or never." placeholder:"MODE"`
	Config      string `help:"Path to a config file. Defaults to .asserthint.yml found in the current directory or a parent." type:"path"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing the message to be pasted with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Logger *zap.Logger

	// Stdin and Stdout default to the process streams when nil.
	Stdin  io.Reader
	Stdout io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("asserthint"),
		kong.Description("Explain where the two sides of a failed equality assertion differ"),
		kong.UsageOnError(),
	)

	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// kong.UsageOnError() has already printed the usage
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("asserthint version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Dev.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	err = run(&Context{Debug: cfg.Dev.Debug, Config: cfg, Logger: logger})
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: asserthint --help\n")
		os.Exit(1)
	}
}

// loadConfig resolves the config file and applies CLI overrides
func loadConfig() (*config.Config, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, CLI.Color, CLI.Debug)
	if err != nil {
		return nil, errors.NewConfigError(err.Error(), err)
	}
	return cfg, nil
}

// newLogger writes JSON logs to stderr so stdout carries only the result
func newLogger(debug bool) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zapCfg.Build()
}

// run executes the main program logic
func run(ctx *Context) error {
	cfg := ctx.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	logger := ctx.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// 1. Read the message
	text, err := readInput(ctx, cfg.Parser.MaxInputBytes)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(pipeline.WithLogger(logger), pipeline.WithConfig(cfg))

	// 2. Compute the result
	var (
		result string
		ok     bool
	)
	if CLI.Code {
		result, ok = runner.BuilderCode(strings.TrimRight(text, "\r\n"))
	} else {
		result, ok = runner.Hint(text, cfg.ColorEnabled(stdoutIsTerminal(ctx)))
	}

	if !ok {
		logger.Debug("no result", zap.Bool("code", CLI.Code))
		return nil
	}

	// 3. Output the result
	return writeOutput(ctx, result)
}

// readInput reads the message from file or stdin
func readInput(ctx *Context, limit int64) (string, error) {
	if CLI.Input != "" {
		return parser.ReadFile(CLI.Input, limit)
	}

	stdin := ctx.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}

	if file, isFile := stdin.(*os.File); isFile {
		stdinInfo, err := file.Stat()
		if err != nil {
			return "", errors.NewInputError("failed to access stdin", err)
		}

		if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
			// Terminal is interactive (not piped)
			if CLI.Interactive {
				return readInteractiveInput(file, limit)
			}
			return "", errors.NewInputError("no input provided", errors.ErrNoInput)
		}
	}

	return parser.ReadInput(stdin, limit)
}

// readInteractiveInput lets users paste a message and signal completion
// with Ctrl+D (EOF)
func readInteractiveInput(stdin io.Reader, limit int64) (string, error) {
	fmt.Fprintln(os.Stderr, "asserthint Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste the assertion message below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(stdin)
	var sb strings.Builder

	for {
		line, err := reader.ReadString('\n')
		sb.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
	}

	fmt.Fprintln(os.Stderr)
	return parser.ReadInput(strings.NewReader(sb.String()), limit)
}

// writeOutput writes the result to file or stdout
func writeOutput(ctx *Context, result string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(result+"\n"), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		return nil
	}

	stdout := ctx.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	if _, err := fmt.Fprintln(stdout, result); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// stdoutIsTerminal reports whether the result goes to an interactive
// terminal. Output files and substituted writers never are.
func stdoutIsTerminal(ctx *Context) bool {
	if CLI.Output != "" {
		return false
	}
	if ctx.Stdout != nil && ctx.Stdout != io.Writer(os.Stdout) {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
