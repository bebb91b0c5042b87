// Package moderation flags profanity and hostile phrasing in user text.
// Results are advisory: callers decide what a warning costs.
package moderation

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/dlclark/regexp2"
	"gopkg.in/yaml.v3"
)

// Category classifies a warning.
type Category string

const (
	Profanity      Category = "profanity"
	Harassment     Category = "harassment"
	Threats        Category = "threats"
	Discrimination Category = "discrimination"
)

// Warning is one flagged occurrence. Index is the rune offset of Word in the
// scanned text.
type Warning struct {
	Type  Category `json:"type"`
	Word  string   `json:"word"`
	Index int      `json:"index"`
}

// WordLists is the on-disk vocabulary format.
type WordLists struct {
	Profanity map[string][]string `yaml:"profanity"`
	Patterns  map[string][]string `yaml:"patterns"`
}

//go:embed wordlists.yaml
var defaultLists []byte

const matchTimeout = 250 * time.Millisecond

type categoryPattern struct {
	category Category
	re       *regexp2.Regexp
}

// Scanner holds compiled vocabularies. It is safe for concurrent use.
type Scanner struct {
	words    map[string]struct{}
	phrases  []string
	patterns []categoryPattern
}

// New compiles a Scanner from lists. Multi-word dictionary entries are
// matched as phrases rather than tokens.
func New(lists WordLists) (*Scanner, error) {
	s := &Scanner{words: make(map[string]struct{})}

	for _, entries := range lists.Profanity {
		for _, w := range entries {
			w = strings.ToLower(strings.TrimSpace(w))
			if w == "" {
				continue
			}
			if strings.ContainsFunc(w, unicode.IsSpace) {
				s.phrases = append(s.phrases, w)
				continue
			}
			s.words[w] = struct{}{}
		}
	}

	// Stable category order keeps output deterministic for equal offsets.
	categories := make([]string, 0, len(lists.Patterns))
	for c := range lists.Patterns {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, c := range categories {
		for _, expr := range lists.Patterns[c] {
			re, err := regexp2.Compile(expr, regexp2.IgnoreCase)
			if err != nil {
				return nil, fmt.Errorf("compile %s pattern %q: %w", c, expr, err)
			}
			re.MatchTimeout = matchTimeout
			s.patterns = append(s.patterns, categoryPattern{category: Category(c), re: re})
		}
	}

	for _, phrase := range s.phrases {
		re, err := regexp2.Compile(`\b`+regexp2.Escape(phrase)+`\b`, regexp2.IgnoreCase)
		if err != nil {
			return nil, fmt.Errorf("compile phrase %q: %w", phrase, err)
		}
		re.MatchTimeout = matchTimeout
		s.patterns = append(s.patterns, categoryPattern{category: Profanity, re: re})
	}

	return s, nil
}

// Load parses a YAML vocabulary and compiles it.
func Load(data []byte) (*Scanner, error) {
	var lists WordLists
	if err := yaml.Unmarshal(data, &lists); err != nil {
		return nil, fmt.Errorf("parse word lists: %w", err)
	}
	return New(lists)
}

var (
	defaultScanner *Scanner
	defaultOnce    sync.Once
)

// Default returns the Scanner built from the embedded vocabulary.
func Default() *Scanner {
	defaultOnce.Do(func() {
		s, err := Load(defaultLists)
		if err != nil {
			panic(fmt.Sprintf("moderation: embedded word lists: %v", err))
		}
		defaultScanner = s
	})
	return defaultScanner
}

// Scan runs the default Scanner over text.
func Scan(text string) []Warning {
	return Default().Scan(text)
}

// Scan returns every warning in text ordered by offset. Clean text yields an
// empty, non-nil slice.
func (s *Scanner) Scan(text string) []Warning {
	warnings := []Warning{}
	seen := make(map[Warning]struct{})
	add := func(w Warning) {
		if _, dup := seen[w]; dup {
			return
		}
		seen[w] = struct{}{}
		warnings = append(warnings, w)
	}

	for _, tok := range tokenize(text) {
		if _, ok := s.words[strings.ToLower(tok.text)]; ok {
			add(Warning{Type: Profanity, Word: tok.text, Index: tok.index})
		}
	}

	for _, p := range s.patterns {
		m, err := p.re.FindStringMatch(text)
		for m != nil && err == nil {
			add(Warning{Type: p.category, Word: m.String(), Index: m.Index})
			m, err = p.re.FindNextMatch(m)
		}
		// A timeout only truncates this pattern's results.
	}

	sort.SliceStable(warnings, func(i, j int) bool {
		return warnings[i].Index < warnings[j].Index
	})
	return warnings
}

type token struct {
	text  string
	index int
}

// tokenize splits text on whitespace and trims punctuation around each token.
// Offsets are counted in runes. Inner punctuation such as hyphens and
// apostrophes is kept.
func tokenize(text string) []token {
	var tokens []token
	runes := []rune(text)
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		lo, hi := start, end
		for lo < hi && !isWordRune(runes[lo]) {
			lo++
		}
		for hi > lo && !isWordRune(runes[hi-1]) {
			hi--
		}
		if lo < hi {
			tokens = append(tokens, token{text: string(runes[lo:hi]), index: lo})
		}
		start = -1
	}
	for i, r := range runes {
		if unicode.IsSpace(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(runes))
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
