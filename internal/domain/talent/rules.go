package talent

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/subratasarker952/waitumusic-sub016/internal/domain/model"
)

// Rule maps free-text keywords onto an instrument family. A talent or role
// label matches a rule when a word in it starts with one of the keywords and
// does not start with one of the exceptions.
type Rule struct {
	Family   model.Family
	Keywords []string
	Except   []string
}

// DefaultRules returns the keyword table used to derive families from talent
// strings and role labels. Rules are evaluated in order and the first match
// wins, so bass precedes guitar ("bass guitar" is a bass).
func DefaultRules() []Rule {
	return []Rule{
		{Family: model.FamilyVocals, Keywords: []string{"vocal", "singer", "vox", "choir"}},
		{Family: model.FamilyBass, Keywords: []string{"bass"}, Except: []string{"bassoon"}},
		{Family: model.FamilyGuitar, Keywords: []string{"guitar"}},
		{Family: model.FamilyDrums, Keywords: []string{"drum"}},
		{Family: model.FamilyPercussion, Keywords: []string{"percussion", "conga", "cajon", "bongo"}},
		{
			Family:   model.FamilyKeyboard,
			Keywords: []string{"keyboard", "keys", "piano", "pianist", "synth", "organ"},
			Except:   []string{"organiz", "organis"},
		},
	}
}

// Match returns the family for text: an exact family name or alias first,
// then the first rule with a keyword at the start of a word.
func Match(rules []Rule, text string) (model.Family, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return "", false
	}
	if f, err := model.ParseFamily(s); err == nil {
		return f, true
	}
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if matchWord(s, strings.ToLower(kw), r.Except) {
				return r.Family, true
			}
		}
	}
	return "", false
}

// matchWord reports whether kw occurs in s at the start of a word whose
// prefix is not listed in except.
func matchWord(s, kw string, except []string) bool {
	if kw == "" {
		return false
	}
	for i := 0; i+len(kw) <= len(s); i++ {
		rest := s[i:]
		if !strings.HasPrefix(rest, kw) {
			continue
		}
		if i > 0 {
			if r, _ := utf8.DecodeLastRuneInString(s[:i]); unicode.IsLetter(r) {
				continue
			}
		}
		if hasAnyPrefix(rest, except) {
			continue
		}
		return true
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(s, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
