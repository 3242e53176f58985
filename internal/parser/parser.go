// Package parser turns object dumps printed by failed equality assertions
// into models.Value trees.
//
// The grammar is deliberately forgiving. At every value position the
// alternatives array, map, field, dto and raw text are tried in that order
// and the first one that matches wins. Raw text never fails, so most
// malformed input still produces a tree; only a missing assertion frame or
// an exceeded depth limit is reported as a ParseFailure.
package parser

import (
	stderrors "errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mcncl/asserthint/internal/errors"
	"github.com/mcncl/asserthint/internal/models"
)

const (
	expectedMarker = "expected: "
	actualMarker   = " but was: "
	nullLiteral    = "null"
	textDelimiters = ",)]}>"
)

// ParseFailure reports where the input stopped matching the grammar.
type ParseFailure struct {
	Offset   int
	Expected string
	Err      error
}

// Error implements error interface
func (f *ParseFailure) Error() string {
	return fmt.Sprintf("offset %d: expected %s: %v", f.Offset, f.Expected, f.Err)
}

// Unwrap returns the sentinel describing the failure class
func (f *ParseFailure) Unwrap() error {
	return f.Err
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth limits how deeply values may nest. Zero means no limit.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth < 0 {
			depth = 0
		}
		p.maxDepth = depth
	}
}

// Parser parses assertion messages and single values. A Parser holds only
// configuration and is safe to reuse.
type Parser struct {
	maxDepth int
}

// NewParser creates a Parser with the given options applied.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseAssertion extracts both values from text of the form
//
//	<anything>expected: <VALUE> but was: <VALUE><anything>
func (p *Parser) ParseAssertion(text string) (models.AssertionPair, error) {
	s := &scanner{input: text, maxDepth: p.maxDepth}

	idx := strings.Index(text, expectedMarker)
	if idx < 0 {
		return models.AssertionPair{}, s.fail(0, fmt.Sprintf("%q", expectedMarker), errors.ErrNoAssertion)
	}

	expected, pos, err := s.bracketed(idx + len(expectedMarker))
	if err != nil {
		return models.AssertionPair{}, err
	}
	if !strings.HasPrefix(text[pos:], actualMarker) {
		return models.AssertionPair{}, s.fail(pos, fmt.Sprintf("%q", actualMarker), errors.ErrNoAssertion)
	}
	actual, _, err := s.bracketed(pos + len(actualMarker))
	if err != nil {
		return models.AssertionPair{}, err
	}

	return models.AssertionPair{Expected: expected, Actual: actual}, nil
}

// ParseValue parses text as a single value. Input after the value is
// ignored. Empty or whitespace-only input is a failure.
func (p *Parser) ParseValue(text string) (models.Value, error) {
	s := &scanner{input: text, maxDepth: p.maxDepth}
	if strings.TrimSpace(text) == "" {
		return nil, s.fail(0, "a value", errors.ErrEmptyInput)
	}
	v, _, err := s.value(0, 1)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ParseAssertion parses text with a default Parser.
func ParseAssertion(text string) (models.AssertionPair, error) {
	return NewParser().ParseAssertion(text)
}

// ParseValue parses text with a default Parser.
func ParseValue(text string) (models.Value, error) {
	return NewParser().ParseValue(text)
}

// scanner holds the state of one parse call. Every rule takes the byte
// offset to start at and returns the offset after what it consumed, so
// backtracking is just retrying from the same offset.
//
// Results of value are memoized per start offset. Without it an unclosed
// list re-parses its whole tail once per enclosing list.
type scanner struct {
	input    string
	maxDepth int
	memo     map[memoKey]memoEntry
}

// memoKey carries the depth only while a depth limit makes the result
// depend on it.
type memoKey struct {
	pos   int
	depth int
}

type memoEntry struct {
	value models.Value
	next  int
	err   error
}

type rule func(pos, depth int) (models.Value, int, error)

func (s *scanner) fail(pos int, expected string, err error) *ParseFailure {
	return &ParseFailure{Offset: pos, Expected: expected, Err: err}
}

// fatal failures abort the whole parse instead of falling through to the
// next alternative.
func fatal(err error) bool {
	return stderrors.Is(err, errors.ErrTooDeep)
}

func (s *scanner) peek(pos int) (byte, bool) {
	if pos >= len(s.input) {
		return 0, false
	}
	return s.input[pos], true
}

func (s *scanner) expect(pos int, c byte) error {
	if got, ok := s.peek(pos); !ok || got != c {
		return s.fail(pos, fmt.Sprintf("%q", c), errors.ErrMalformedValue)
	}
	return nil
}

func (s *scanner) bracketed(pos int) (models.Value, int, error) {
	if err := s.expect(pos, '<'); err != nil {
		return nil, pos, err
	}
	v, next, err := s.value(pos+1, 1)
	if err != nil {
		return nil, pos, err
	}
	if err := s.expect(next, '>'); err != nil {
		return nil, pos, err
	}
	return v, next + 1, nil
}

func (s *scanner) value(pos, depth int) (models.Value, int, error) {
	key := memoKey{pos: pos}
	if s.maxDepth > 0 {
		key.depth = depth
	}
	if e, ok := s.memo[key]; ok {
		return e.value, e.next, e.err
	}

	v, next, err := s.parseValue(pos, depth)
	if s.memo == nil {
		s.memo = make(map[memoKey]memoEntry)
	}
	s.memo[key] = memoEntry{value: v, next: next, err: err}
	return v, next, err
}

func (s *scanner) parseValue(pos, depth int) (models.Value, int, error) {
	if s.maxDepth > 0 && depth > s.maxDepth {
		return nil, pos, s.fail(pos, fmt.Sprintf("at most %d nesting levels", s.maxDepth), errors.ErrTooDeep)
	}

	var lastErr error
	for _, alt := range []rule{s.array, s.mapping, s.field, s.dto, s.text} {
		v, next, err := alt(pos, depth)
		if err == nil {
			return v, next, nil
		}
		if fatal(err) {
			return nil, pos, err
		}
		lastErr = err
	}
	return nil, pos, lastErr
}

func (s *scanner) array(pos, depth int) (models.Value, int, error) {
	items, next, err := s.sequence(pos, depth, '[', ']')
	if err != nil {
		return nil, pos, err
	}
	return models.Array{Items: items}, next, nil
}

func (s *scanner) mapping(pos, depth int) (models.Value, int, error) {
	items, next, err := s.sequence(pos, depth, '{', '}')
	if err != nil {
		return nil, pos, err
	}
	return models.Map{Items: items}, next, nil
}

// sequence parses open value ("," ws value)* close.
func (s *scanner) sequence(pos, depth int, open, close byte) ([]models.Value, int, error) {
	if err := s.expect(pos, open); err != nil {
		return nil, pos, err
	}
	cur := pos + 1

	items := []models.Value{}
	if c, ok := s.peek(cur); !ok || c != close {
		for {
			v, next, err := s.value(cur, depth+1)
			if err != nil {
				return nil, pos, err
			}
			items = append(items, v)
			cur = next
			if c, ok := s.peek(cur); !ok || c != ',' {
				break
			}
			cur = s.skipSpace(cur + 1)
		}
	}

	if err := s.expect(cur, close); err != nil {
		return nil, pos, err
	}
	return items, cur + 1, nil
}

func (s *scanner) field(pos, depth int) (models.Value, int, error) {
	f, next, err := s.fieldPair(pos, depth)
	if err != nil {
		return nil, pos, err
	}
	return f, next, nil
}

func (s *scanner) fieldPair(pos, depth int) (models.Field, int, error) {
	name, next := s.name(pos)
	if name == "" {
		return models.Field{}, pos, s.fail(pos, "a field name", errors.ErrMalformedValue)
	}
	if err := s.expect(next, '='); err != nil {
		return models.Field{}, pos, err
	}
	v, next, err := s.value(next+1, depth+1)
	if err != nil {
		return models.Field{}, pos, err
	}
	return models.Field{Name: name, Value: v}, next, nil
}

func (s *scanner) dto(pos, depth int) (models.Value, int, error) {
	name, cur := s.name(pos)
	if name == "" {
		return nil, pos, s.fail(pos, "a class name", errors.ErrMalformedValue)
	}
	if err := s.expect(cur, '('); err != nil {
		return nil, pos, err
	}
	cur++

	// A field that does not parse ends the list; the separator before it
	// is left unconsumed and the closing paren check below rejects it.
	fields := []models.Field{}
	f, next, err := s.fieldPair(cur, depth)
	switch {
	case err == nil:
		fields = append(fields, f)
		cur = next
		for {
			if c, ok := s.peek(cur); !ok || c != ',' {
				break
			}
			f, next, err := s.fieldPair(s.skipSpace(cur+1), depth)
			if err != nil {
				if fatal(err) {
					return nil, pos, err
				}
				break
			}
			fields = append(fields, f)
			cur = next
		}
	case fatal(err):
		return nil, pos, err
	}

	if err := s.expect(cur, ')'); err != nil {
		return nil, pos, err
	}
	return models.Dto{Name: name, Fields: fields}, s.skipSpace(cur + 1), nil
}

func (s *scanner) text(pos, _ int) (models.Value, int, error) {
	end := pos
	for end < len(s.input) && !strings.ContainsRune(textDelimiters, rune(s.input[end])) {
		end++
	}
	raw := s.input[pos:end]
	if raw == nullLiteral {
		return models.Null{}, end, nil
	}
	return models.Text{Raw: raw}, end, nil
}

// name consumes a run of letters.
func (s *scanner) name(pos int) (string, int) {
	end := pos
	for end < len(s.input) {
		r, size := utf8.DecodeRuneInString(s.input[end:])
		if !unicode.IsLetter(r) {
			break
		}
		end += size
	}
	return s.input[pos:end], end
}

func (s *scanner) skipSpace(pos int) int {
	for pos < len(s.input) {
		switch s.input[pos] {
		case ' ', '\t', '\r', '\n':
			pos++
		default:
			return pos
		}
	}
	return pos
}
