// Package talent turns booking assignment rows into a normalized roster.
package talent

import (
	"slices"
	"strings"

	"github.com/subratasarker952/waitumusic-sub016/internal/domain/model"
)

// Exclusion reasons.
const (
	ReasonMissingID    = "missing person id"
	ReasonNoInstrument = "no instrument derivable from talents or role"
)

// Report is the output of a normalization pass.
type Report struct {
	// Roster holds one entry per person, in first-seen order.
	Roster []model.Person
	// Excluded lists people dropped because no instrument could be derived.
	Excluded []model.Exclusion
}

// Normalizer derives instrument families from talents and role labels.
type Normalizer struct {
	rules []Rule
}

// New creates a Normalizer using the default keyword table unless overridden.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{rules: DefaultRules()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize runs a default Normalizer over raw.
func Normalize(raw []model.RawAssignment) Report {
	return New().Normalize(raw)
}

type entry struct {
	id, name    string
	primary     bool
	instruments []model.Family
	talents     []string
}

// Normalize builds the roster. Explicit primary and secondary talents take
// precedence; the role label is consulted only when neither is present.
// Explicit talents that match no rule are tagged as other. Rows sharing a
// person id are merged into the first occurrence.
func (n *Normalizer) Normalize(raw []model.RawAssignment) Report {
	var (
		rep     Report
		entries []*entry
		byID    = make(map[string]*entry, len(raw))
	)

	for _, ra := range raw {
		id := strings.TrimSpace(ra.PersonID)
		name := strings.TrimSpace(ra.DisplayName)
		if id == "" {
			rep.Excluded = append(rep.Excluded, model.Exclusion{DisplayName: name, Reason: ReasonMissingID})
			continue
		}
		if name == "" {
			name = id
		}

		e, ok := byID[id]
		if !ok {
			e = &entry{id: id, name: name}
			byID[id] = e
			entries = append(entries, e)
		}
		e.primary = e.primary || ra.IsPrimaryTalent

		instruments, talents := n.derive(ra)
		for _, f := range instruments {
			if !slices.Contains(e.instruments, f) {
				e.instruments = append(e.instruments, f)
			}
		}
		for _, t := range talents {
			if !slices.Contains(e.talents, t) {
				e.talents = append(e.talents, t)
			}
		}
	}

	for _, e := range entries {
		if len(e.instruments) == 0 {
			rep.Excluded = append(rep.Excluded, model.Exclusion{
				PersonID:    e.id,
				DisplayName: e.name,
				Reason:      ReasonNoInstrument,
			})
			continue
		}
		rep.Roster = append(rep.Roster, model.NewPerson(e.id, e.name, e.primary, e.instruments, e.talents))
	}
	return rep
}

func (n *Normalizer) derive(ra model.RawAssignment) ([]model.Family, []string) {
	var talents []string
	for _, t := range append([]string{ra.PrimaryTalent}, ra.SecondaryTalents...) {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && !slices.Contains(talents, t) {
			talents = append(talents, t)
		}
	}

	if len(talents) > 0 {
		families := make([]model.Family, 0, len(talents))
		for _, t := range talents {
			f, ok := Match(n.rules, t)
			if !ok {
				f = model.FamilyOther
			}
			families = append(families, f)
		}
		return families, talents
	}

	role := strings.ToLower(strings.TrimSpace(ra.RoleLabel))
	if f, ok := Match(n.rules, role); ok {
		return []model.Family{f}, []string{role}
	}
	return nil, nil
}
