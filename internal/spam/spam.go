// Package spam classifies chat messages with static keyword and link rules.
package spam

import (
	"regexp"
	"strings"
)

// Verdict reasons.
const (
	ReasonBannedPhrase = "banned_phrase"
	ReasonLink         = "link"
)

// DefaultPhrases are the banned phrases used by Classify.
var DefaultPhrases = []string{
	"airdrop",
	"double your",
	"giveaway",
	"crypto bonus",
	"win btc",
	"claim now",
}

// linkPattern only catches scheme-prefixed URLs; bare domains pass.
var linkPattern = regexp.MustCompile(`https?://`)

var defaultMatcher = NewMatcher(DefaultPhrases)

// Verdict is the outcome of checking one message.
type Verdict struct {
	Spam   bool
	Reason string
	Match  string
}

// Matcher holds an immutable lowercase phrase list and is safe for concurrent use.
type Matcher struct {
	phrases []string
}

// NewMatcher builds a matcher over phrases. Phrases are lowercased and blank
// entries dropped.
func NewMatcher(phrases []string) *Matcher {
	m := &Matcher{phrases: make([]string, 0, len(phrases))}
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			m.phrases = append(m.phrases, p)
		}
	}
	return m
}

// Check evaluates text. Banned phrases are plain substrings of the lowercased
// text with no word boundaries; links are any "http://" or "https://".
func (m *Matcher) Check(text string) Verdict {
	lower := strings.ToLower(text)
	for _, p := range m.phrases {
		if strings.Contains(lower, p) {
			return Verdict{Spam: true, Reason: ReasonBannedPhrase, Match: p}
		}
	}

	if loc := linkPattern.FindStringIndex(text); loc != nil {
		return Verdict{Spam: true, Reason: ReasonLink, Match: text[loc[0]:loc[1]]}
	}

	return Verdict{}
}

// IsSpam is Check reduced to its boolean outcome.
func (m *Matcher) IsSpam(text string) bool {
	return m.Check(text).Spam
}

// Classify reports whether text is spam under the default phrase list.
func Classify(text string) bool {
	return defaultMatcher.IsSpam(text)
}
