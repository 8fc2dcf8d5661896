package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/ytget/podshelf/internal/model"
)

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokNumber
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
}

var errUnexpectedEnd = errors.New("unexpected end of expression")

// keywords maps flag names and their aliases to episode tests
var keywords = map[string]func(e *model.Episode) bool{
	"new":         func(e *model.Episode) bool { return e.IsNew && e.State != model.StateDeleted },
	"old":         func(e *model.Episode) bool { return !e.IsNew },
	"downloaded":  func(e *model.Episode) bool { return e.State == model.StateDownloaded },
	"dl":          func(e *model.Episode) bool { return e.State == model.StateDownloaded },
	"deleted":     func(e *model.Episode) bool { return e.State == model.StateDeleted },
	"rm":          func(e *model.Episode) bool { return e.State == model.StateDeleted },
	"downloading": func(e *model.Episode) bool { return e.Downloading() },
	"archive":     func(e *model.Episode) bool { return e.Archive },
	"played":      func(e *model.Episode) bool { return !e.IsNew },
	"unplayed":    func(e *model.Episode) bool { return e.IsNew },
	"audio":       func(e *model.Episode) bool { return e.FileType() == "audio" },
	"video":       func(e *model.Episode) bool { return e.FileType() == "video" },
}

// fields maps comparison fields to the attribute they read
var fields = map[string]func(e *model.Episode, now time.Time) float64{
	"size":     func(e *model.Episode, _ time.Time) float64 { return float64(e.FileSize) / (1024 * 1024) },
	"filesize": func(e *model.Episode, _ time.Time) float64 { return float64(e.FileSize) / (1024 * 1024) },
	"age": func(e *model.Episode, now time.Time) float64 {
		if e.Published.IsZero() {
			return 0
		}
		return now.Sub(e.Published).Hours() / 24
	},
	"duration": func(e *model.Episode, _ time.Time) float64 { return float64(e.TotalTime) / 60 },
	"minutes":  func(e *model.Episode, _ time.Time) float64 { return float64(e.TotalTime) / 60 },
	"min":      func(e *model.Episode, _ time.Time) float64 { return float64(e.TotalTime) / 60 },
}

var operators = map[string]bool{"and": true, "or": true, "not": true}

func tokenize(s string) ([]token, error) {
	var tokens []token
	runes := []rune(strings.ToLower(s))

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			tokens = append(tokens, token{tokLParen, "("})
			i++
		case r == ')':
			tokens = append(tokens, token{tokRParen, ")"})
			i++
		case strings.ContainsRune("<>=!", r):
			j := i + 1
			if j < len(runes) && runes[j] == '=' {
				j++
			}
			tokens = append(tokens, token{tokOp, string(runes[i:j])})
			i = j
		case unicode.IsDigit(r) || r == '.':
			j := i
			for j < len(runes) && (unicode.IsDigit(runes[j]) || runes[j] == '.') {
				j++
			}
			tokens = append(tokens, token{tokNumber, string(runes[i:j])})
			i = j
		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
				j++
			}
			tokens = append(tokens, token{tokIdent, string(runes[i:j])})
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q", r)
		}
	}
	return tokens, nil
}

// isStructured reports whether every identifier is a known keyword,
// operator or comparison field
func isStructured(tokens []token) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, t := range tokens {
		if t.kind != tokIdent {
			continue
		}
		_, isKeyword := keywords[t.text]
		_, isField := fields[t.text]
		if !isKeyword && !isField && !operators[t.text] {
			return false
		}
	}
	return true
}

type node func(e *model.Episode) bool

type expr struct {
	root node
}

func (x *expr) Match(e *model.Episode) (bool, error) {
	if e == nil {
		return false, ErrNilEpisode
	}
	return x.root(e), nil
}

type parser struct {
	tokens []token
	pos    int
	now    func() time.Time
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) next() (token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func (p *parser) parse() (*expr, error) {
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if t, ok := p.peek(); ok {
		return nil, fmt.Errorf("unexpected %q", t.text)
	}
	return &expr{root: root}, nil
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokIdent || t.text != "or" {
			return left, nil
		}
		p.pos++
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		l := left
		left = func(e *model.Episode) bool { return l(e) || right(e) }
	}
}

// parseAnd treats adjacent terms as an implicit "and"
func (p *parser) parseAnd() (node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind == tokRParen || (t.kind == tokIdent && t.text == "or") {
			return left, nil
		}
		if t.kind == tokIdent && t.text == "and" {
			p.pos++
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		l := left
		left = func(e *model.Episode) bool { return l(e) && right(e) }
	}
}

func (p *parser) parseNot() (node, error) {
	t, ok := p.peek()
	if ok && t.kind == tokIdent && t.text == "not" {
		p.pos++
		inner, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return func(e *model.Episode) bool { return !inner(e) }, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	t, ok := p.next()
	if !ok {
		return nil, errUnexpectedEnd
	}

	switch t.kind {
	case tokLParen:
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		closing, ok := p.next()
		if !ok || closing.kind != tokRParen {
			return nil, errors.New("missing closing parenthesis")
		}
		return inner, nil

	case tokIdent:
		if test, ok := keywords[t.text]; ok {
			return test, nil
		}
		if field, ok := fields[t.text]; ok {
			return p.parseComparison(t.text, field)
		}
	}

	return nil, fmt.Errorf("unexpected %q", t.text)
}

func (p *parser) parseComparison(name string, field func(*model.Episode, time.Time) float64) (node, error) {
	op, ok := p.next()
	if !ok {
		return nil, errUnexpectedEnd
	}
	if op.kind != tokOp {
		return nil, fmt.Errorf("expected comparison after %q, got %q", name, op.text)
	}

	num, ok := p.next()
	if !ok {
		return nil, errUnexpectedEnd
	}
	if num.kind != tokNumber {
		return nil, fmt.Errorf("expected number after %q %s", name, op.text)
	}
	value, err := strconv.ParseFloat(num.text, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", num.text, err)
	}

	var cmp func(a, b float64) bool
	switch op.text {
	case "<":
		cmp = func(a, b float64) bool { return a < b }
	case "<=":
		cmp = func(a, b float64) bool { return a <= b }
	case ">":
		cmp = func(a, b float64) bool { return a > b }
	case ">=":
		cmp = func(a, b float64) bool { return a >= b }
	case "=", "==":
		cmp = func(a, b float64) bool { return a == b }
	case "!=":
		cmp = func(a, b float64) bool { return a != b }
	default:
		return nil, fmt.Errorf("unknown operator %q", op.text)
	}

	now := p.now
	return func(e *model.Episode) bool { return cmp(field(e, now()), value) }, nil
}
