// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
)

// Family is the instrument category a mixer channel belongs to.
type Family string

// Canonical families, declared in stage-plot order.
const (
	FamilyDrums      Family = "drums"
	FamilyPercussion Family = "percussion"
	FamilyBass       Family = "bass"
	FamilyGuitar     Family = "guitar"
	FamilyKeyboard   Family = "keyboard"
	FamilyOther      Family = "other"
	FamilyVocals     Family = "vocals"
)

// Families lists every canonical family in stage-plot order: drums first, vocals last.
func Families() []Family {
	return []Family{
		FamilyDrums,
		FamilyPercussion,
		FamilyBass,
		FamilyGuitar,
		FamilyKeyboard,
		FamilyOther,
		FamilyVocals,
	}
}

// familyAliases maps mixer section names seen in rider templates to canonical families.
var familyAliases = map[string]Family{
	"drum":      FamilyDrums,
	"guitars":   FamilyGuitar,
	"keyboards": FamilyKeyboard,
	"keys":      FamilyKeyboard,
	"vocal":     FamilyVocals,
}

// Valid reports whether f is one of the canonical families.
func (f Family) Valid() bool {
	return f.Order() >= 0
}

// Order returns the stage-plot position of f, or -1 for unknown families.
func (f Family) Order() int {
	for i, c := range Families() {
		if c == f {
			return i
		}
	}
	return -1
}

func (f Family) String() string { return string(f) }

// ParseFamily resolves a family tag, case-insensitively, accepting the
// plural section aliases used by rider templates.
func ParseFamily(s string) (Family, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	f := Family(key)
	if f.Valid() {
		return f, nil
	}
	if alias, ok := familyAliases[key]; ok {
		return alias, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFamily, s)
}
