// Package pipeline wires parser, differ and renderers into the two entry
// points of asserthint: turning a failed assertion message into a hint,
// and turning a value dump into builder code.
//
// Neither entry point reports why input was rejected. Callers get
// ok == false; the reason is only logged at debug level.
package pipeline

import (
	stderrors "errors"
	"time"

	"go.uber.org/zap"

	"github.com/mcncl/asserthint/internal/config"
	"github.com/mcncl/asserthint/internal/differ"
	"github.com/mcncl/asserthint/internal/formatter"
	"github.com/mcncl/asserthint/internal/generator"
	"github.com/mcncl/asserthint/internal/models"
	"github.com/mcncl/asserthint/internal/parser"
)

// Runner executes the pipeline. The zero configuration has no depth limit
// and renders builder code with the default settings.
type Runner struct {
	logger    *zap.Logger
	parser    *parser.Parser
	differ    *differ.Differ
	generator *generator.Generator
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithConfig applies the parser limits and builder settings of cfg.
func WithConfig(cfg *config.Config) Option {
	return func(r *Runner) {
		if cfg == nil {
			return
		}
		r.parser = parser.NewParser(parser.WithMaxDepth(cfg.Parser.MaxDepth))
		r.generator = generator.NewGeneratorWithConfig(cfg)
	}
}

// NewRunner creates a Runner with the given options applied.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		logger:    zap.NewNop(),
		parser:    parser.NewParser(),
		differ:    differ.NewDiffer(),
		generator: generator.NewGenerator(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Hint parses an "expected: <...> but was: <...>" message and describes
// where the two values differ. ok is false when text holds no parsable
// assertion.
func (r *Runner) Hint(text string, colorize bool) (string, bool) {
	start := time.Now()
	pair, err := r.parser.ParseAssertion(text)
	if err != nil {
		r.logParseFailure("assertion", err)
		return "", false
	}
	parsed := time.Now()

	diff := r.differ.Diff(pair.Expected, pair.Actual)
	diffed := time.Now()

	hint := formatter.Render(diff, colorize)

	r.logger.Debug("computed hint",
		zap.Int("input_bytes", len(text)),
		zap.String("root_difference", models.DifferenceName(diff)),
		zap.Bool("colorize", colorize),
		zap.Duration("parse", parsed.Sub(start)),
		zap.Duration("diff", diffed.Sub(parsed)),
		zap.Duration("render", time.Since(diffed)),
	)
	return hint, true
}

// BuilderCode parses text as a single value and renders it as builder
// code. ok is false when text holds no parsable value.
func (r *Runner) BuilderCode(text string) (string, bool) {
	start := time.Now()
	value, err := r.parser.ParseValue(text)
	if err != nil {
		r.logParseFailure("value", err)
		return "", false
	}

	code := r.generator.Generate(value, 0)

	r.logger.Debug("generated builder code",
		zap.Int("input_bytes", len(text)),
		zap.Stringer("root_kind", value.Kind()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return code, true
}

func (r *Runner) logParseFailure(what string, err error) {
	fields := []zap.Field{zap.String("expected_input", what), zap.Error(err)}
	var failure *parser.ParseFailure
	if stderrors.As(err, &failure) {
		fields = append(fields, zap.Int("offset", failure.Offset), zap.String("wanted", failure.Expected))
	}
	r.logger.Debug("input not recognized", fields...)
}

// ComputeHint runs Hint on a default Runner.
func ComputeHint(text string, colorize bool) (string, bool) {
	return NewRunner().Hint(text, colorize)
}

// ComputeBuilderCode runs BuilderCode on a default Runner.
func ComputeBuilderCode(text string) (string, bool) {
	return NewRunner().BuilderCode(text)
}
