// Package stageplot turns an allocation result into the numbered input list
// printed on a stage plot.
package stageplot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/subratasarker952/waitumusic-sub016/internal/domain/model"
)

// DefaultCapacity is the input count of the standard mixer.
const DefaultCapacity = 32

// InputType is the connector a channel expects.
type InputType string

// Connector kinds.
const (
	InputXLR        InputType = "XLR"
	InputInstrument InputType = "Instrument"
	InputLine       InputType = "Line"
)

// WarningKind classifies a warning surfaced next to the input list.
type WarningKind string

// Warning kinds.
const (
	WarnUnfilledSlot     WarningKind = "unfilled_slot"
	WarnUnassignedPerson WarningKind = "unassigned_person"
	WarnExcludedPerson   WarningKind = "excluded_person"
	WarnOverCapacity     WarningKind = "over_capacity"
)

// Row is one line of the input list.
type Row struct {
	Channel   int          `json:"channel,omitempty"`
	SlotID    string       `json:"slotId"`
	Family    model.Family `json:"family"`
	Label     string       `json:"label"`
	PersonID  string       `json:"personId,omitempty"`
	Assignee  string       `json:"assignee,omitempty"`
	InputType InputType    `json:"inputType"`
	Phantom   bool         `json:"phantom"`
	Notes     string       `json:"notes,omitempty"`
}

// Warning is a condition the stage plot must show explicitly.
type Warning struct {
	Kind     WarningKind `json:"kind"`
	Message  string      `json:"message"`
	SlotID   string      `json:"slotId,omitempty"`
	PersonID string      `json:"personId,omitempty"`
}

// InputList is the printable channel list for one event.
type InputList struct {
	Capacity int       `json:"capacity"`
	Rows     []Row     `json:"rows"`
	Overflow []Row     `json:"overflow,omitempty"`
	Unused   []Row     `json:"unused,omitempty"`
	Warnings []Warning `json:"warnings"`
}

type builder struct {
	capacity int
	template []model.ChannelSlot
	excluded []model.Exclusion
}

// Build numbers the allocated channels in stage-plot order, drums first and
// vocals last, and collects warnings for everything left unfilled or
// unassigned. Channels beyond capacity are moved to Overflow.
func Build(res model.AllocationResult, opts ...Option) InputList {
	b := &builder{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(b)
	}

	channels := append([]model.ChannelSlot(nil), res.Channels...)
	sort.SliceStable(channels, func(i, j int) bool {
		return channels[i].Family.Order() < channels[j].Family.Order()
	})

	list := InputList{
		Capacity: b.capacity,
		Rows:     make([]Row, 0, len(channels)),
		Warnings: make([]Warning, 0),
	}
	for i, ch := range channels {
		row := newRow(ch)
		if i >= b.capacity {
			list.Overflow = append(list.Overflow, row)
			continue
		}
		row.Channel = i + 1
		list.Rows = append(list.Rows, row)
	}

	for _, s := range b.template {
		if !s.Applicable {
			list.Unused = append(list.Unused, newRow(s))
		}
	}

	if n := len(list.Overflow); n > 0 {
		list.Warnings = append(list.Warnings, Warning{
			Kind:    WarnOverCapacity,
			Message: fmt.Sprintf("%d inputs exceed the %d-channel mixer", n, b.capacity),
		})
	}
	for _, s := range res.UnfilledSlots {
		list.Warnings = append(list.Warnings, Warning{
			Kind:    WarnUnfilledSlot,
			Message: fmt.Sprintf("%s (%s) has no performer", s.Label, s.Family),
			SlotID:  s.SlotID,
		})
	}
	for _, p := range res.UnassignedPeople {
		list.Warnings = append(list.Warnings, Warning{
			Kind:     WarnUnassignedPerson,
			Message:  fmt.Sprintf("%s has no available channel for %s", p.DisplayName, describe(p.Instruments)),
			PersonID: p.PersonID,
		})
	}
	for _, ex := range b.excluded {
		list.Warnings = append(list.Warnings, Warning{
			Kind:     WarnExcludedPerson,
			Message:  fmt.Sprintf("%s was left off the roster: %s", ex.DisplayName, ex.Reason),
			PersonID: ex.PersonID,
		})
	}
	return list
}

func newRow(ch model.ChannelSlot) Row {
	row := Row{
		SlotID:    ch.SlotID,
		Family:    ch.Family,
		Label:     ch.Label,
		InputType: InputTypeFor(ch.Family, ch.Label),
		Phantom:   NeedsPhantom(ch.Family, ch.Label),
		Notes:     ch.Notes,
	}
	if ch.AssignedTo != nil {
		row.PersonID = ch.AssignedTo.PersonID
		row.Assignee = ch.AssignedTo.DisplayName
	}
	return row
}

func describe(fams []model.Family) string {
	if len(fams) == 0 {
		return "no instrument"
	}
	parts := make([]string, len(fams))
	for i, f := range fams {
		parts[i] = f.String()
	}
	return strings.Join(parts, ", ")
}

// InputTypeFor returns the connector for a channel. Keyboards are line
// level, guitars and basses are instrument level unless miked.
func InputTypeFor(f model.Family, label string) InputType {
	l := strings.ToLower(label)
	switch f {
	case model.FamilyKeyboard:
		return InputLine
	case model.FamilyGuitar, model.FamilyBass:
		if strings.Contains(l, "mic") {
			return InputXLR
		}
		return InputInstrument
	default:
		return InputXLR
	}
}

// NeedsPhantom reports whether a channel needs 48V: vocals and condenser
// positions such as overheads and acoustic instruments.
func NeedsPhantom(f model.Family, label string) bool {
	if f == model.FamilyVocals {
		return true
	}
	l := strings.ToLower(label)
	for _, kw := range []string{"overhead", "over head", "condenser", "acoustic"} {
		if strings.Contains(l, kw) {
			return true
		}
	}
	return strings.HasPrefix(l, "oh ")
}
