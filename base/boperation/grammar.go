package boperation

import (
	"fmt"
	"regexp"
	"strings"
)

const amountPlaceholder = "<amount>"

// Grammar is an alternation of literal tokens ("keep") and tokens with an amount argument ("add:<amount>")
type Grammar struct {
	tokens  []string
	pattern *regexp.Regexp
}

// Grammars of the recognized operation keys
var (
	DuplicatesGrammar    = MustNewGrammar("keep", "drop")
	IntervalsGrammar     = MustNewGrammar("keep", "drop", "randomize:"+amountPlaceholder)
	ResponseTimesGrammar = MustNewGrammar("keep", "drop", "add:"+amountPlaceholder, "subtract:"+amountPlaceholder, "shuffle:"+amountPlaceholder)
)

// NewGrammar creates a Grammar from tokens in the form of "name" or "name:<amount>", where name is a known Kind
func NewGrammar(tokens ...string) (Grammar, error) {
	if len(tokens) == 0 {
		return Grammar{}, fmt.Errorf("no token")
	}
	alternatives := make([]string, len(tokens))
	for i, token := range tokens {
		name, arg, hasArg := strings.Cut(token, ":")
		if _, known := kindNames[name]; !known {
			return Grammar{}, fmt.Errorf("token[%d] '%s': unknown operation name", i, token)
		}
		switch {
		case !hasArg:
			alternatives[i] = regexp.QuoteMeta(name)
		case arg == amountPlaceholder:
			alternatives[i] = regexp.QuoteMeta(name) + `:[0-9]+[a-z]?`
		default:
			return Grammar{}, fmt.Errorf("token[%d] '%s': unsupported argument", i, token)
		}
	}
	return Grammar{
		tokens:  tokens,
		pattern: regexp.MustCompile("^(?:" + strings.Join(alternatives, "|") + ")$"),
	}, nil
}

// MustNewGrammar creates a Grammar or panics
func MustNewGrammar(tokens ...string) Grammar {
	g, err := NewGrammar(tokens...)
	if err != nil {
		panic(fmt.Sprintf("invalid grammar [%s]: %s", strings.Join(tokens, "|"), err.Error()))
	}
	return g
}

// Match checks whether the raw operation string is accepted
func (g Grammar) Match(raw string) bool {
	return g.pattern != nil && g.pattern.MatchString(raw)
}

func (g Grammar) String() string {
	return strings.Join(g.tokens, "|")
}
