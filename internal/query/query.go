package query

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/ytget/podshelf/internal/model"
)

// ErrNilEpisode is returned when a predicate is evaluated without an episode
var ErrNilEpisode = errors.New("query: nil episode")

// Predicate decides whether an episode matches a search term
type Predicate interface {
	Match(e *model.Episode) (bool, error)
}

// PredicateFunc adapts a function to Predicate
type PredicateFunc func(e *model.Episode) (bool, error)

// Match calls f
func (f PredicateFunc) Match(e *model.Episode) (bool, error) { return f(e) }

// Parse parses term using the current time for age comparisons
func Parse(term string) (Predicate, error) {
	return ParseAt(term, time.Now)
}

// ParseAt parses term; now supplies the reference time for "age"
func ParseAt(term string, now func() time.Time) (Predicate, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, errors.New("query: empty term")
	}

	if len(term) > 2 && strings.HasPrefix(term, "/") && strings.HasSuffix(term, "/") {
		return parseRegex(term[1 : len(term)-1])
	}

	tokens, err := tokenize(term)
	if err == nil && isStructured(tokens) {
		p := &parser{tokens: tokens, now: now}
		expr, err := p.parse()
		if err != nil {
			return nil, fmt.Errorf("query %q: %w", term, err)
		}
		return expr, nil
	}

	return newWords(term), nil
}

func parseRegex(pattern string) (Predicate, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("query: invalid regex: %w", err)
	}
	return PredicateFunc(func(e *model.Episode) (bool, error) {
		if e == nil {
			return false, ErrNilEpisode
		}
		return re.MatchString(e.Title), nil
	}), nil
}

// words matches when every word occurs in the episode title, description
// or podcast title
type words struct {
	words []string
}

func newWords(term string) *words {
	folder := cases.Fold()
	return &words{words: strings.Fields(folder.String(term))}
}

func (w *words) Match(e *model.Episode) (bool, error) {
	if e == nil {
		return false, ErrNilEpisode
	}

	folder := cases.Fold()
	haystack := []string{folder.String(e.Title), folder.String(e.Description)}
	if e.Podcast != nil {
		haystack = append(haystack, folder.String(e.Podcast.Title))
	}

	for _, word := range w.words {
		found := false
		for _, text := range haystack {
			if strings.Contains(text, word) {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}
	return true, nil
}
