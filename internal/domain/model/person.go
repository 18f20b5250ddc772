package model

import "slices"

// RawAssignment is one booking assignment row as supplied by the booking collaborator.
type RawAssignment struct {
	PersonID         string   `json:"personId" yaml:"personId"`
	DisplayName      string   `json:"displayName" yaml:"displayName"`
	PrimaryTalent    string   `json:"primaryTalent,omitempty" yaml:"primaryTalent,omitempty"`
	SecondaryTalents []string `json:"secondaryTalents,omitempty" yaml:"secondaryTalents,omitempty"`
	RoleLabel        string   `json:"roleLabel,omitempty" yaml:"roleLabel,omitempty"`
	IsPrimaryTalent  bool     `json:"isPrimaryTalent,omitempty" yaml:"isPrimaryTalent,omitempty"`
}

// Person is a normalized roster entry. Instruments is a set of families kept
// in stage-plot order; Talents holds the lower-cased talent strings it was
// derived from.
type Person struct {
	PersonID        string   `json:"personId"`
	DisplayName     string   `json:"displayName"`
	Instruments     []Family `json:"instruments"`
	Talents         []string `json:"talents,omitempty"`
	IsPrimaryTalent bool     `json:"isPrimaryTalent"`
}

// NewPerson builds a Person whose instrument set is de-duplicated and sorted
// into stage-plot order. Unknown families are dropped.
func NewPerson(id, name string, primary bool, instruments []Family, talents []string) Person {
	set := make([]Family, 0, len(instruments))
	for _, f := range Families() {
		if slices.Contains(instruments, f) {
			set = append(set, f)
		}
	}
	return Person{
		PersonID:        id,
		DisplayName:     name,
		Instruments:     set,
		Talents:         slices.Clone(talents),
		IsPrimaryTalent: primary,
	}
}

// Plays reports whether f is in the person's instrument set.
func (p Person) Plays(f Family) bool {
	return slices.Contains(p.Instruments, f)
}

// Ref returns the reference stored on a slot assigned to p.
func (p Person) Ref() *PersonRef {
	return &PersonRef{PersonID: p.PersonID, DisplayName: p.DisplayName}
}

// PersonRef identifies the assignee of a channel slot.
type PersonRef struct {
	PersonID    string `json:"personId"`
	DisplayName string `json:"displayName"`
}

// Exclusion records a roster member dropped during normalization.
type Exclusion struct {
	PersonID    string `json:"personId"`
	DisplayName string `json:"displayName"`
	Reason      string `json:"reason"`
}
