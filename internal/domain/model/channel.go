package model

// SlotConfig is one channel entry supplied by the mixer-configuration collaborator.
type SlotConfig struct {
	SlotID     string `json:"slotId" yaml:"slotId" koanf:"slotId"`
	Label      string `json:"label" yaml:"label" koanf:"label"`
	Applicable bool   `json:"applicable" yaml:"applicable" koanf:"applicable"`
	Notes      string `json:"notes,omitempty" yaml:"notes,omitempty" koanf:"notes"`
}

// GroupConfig lists the slots of one family.
type GroupConfig struct {
	Family string       `json:"family" yaml:"family" koanf:"family"`
	Slots  []SlotConfig `json:"slots" yaml:"slots" koanf:"slots"`
}

// MixerConfig is an event's channel template as supplied by the venue or rider.
type MixerConfig struct {
	Name   string        `json:"name,omitempty" yaml:"name,omitempty" koanf:"name"`
	Groups []GroupConfig `json:"groups" yaml:"groups" koanf:"groups"`
}

// ChannelSlot is one physical mixer input. AssignedTo is nil when the slot is
// unfilled and is only ever set by the allocation engine.
type ChannelSlot struct {
	SlotID     string     `json:"slotId"`
	Family     Family     `json:"family"`
	Label      string     `json:"label"`
	Applicable bool       `json:"applicable"`
	Notes      string     `json:"notes,omitempty"`
	AssignedTo *PersonRef `json:"assignedTo"`
}

// Assigned reports whether the slot has an assignee.
func (s ChannelSlot) Assigned() bool {
	return s.AssignedTo != nil
}

// AllocationResult is the outcome of one allocation run.
type AllocationResult struct {
	Channels         []ChannelSlot `json:"channels"`
	UnassignedPeople []Person      `json:"unassignedPeople"`
	UnfilledSlots    []ChannelSlot `json:"unfilledSlots"`
}

// AssignedTo returns the slots held by personID, in channel order.
func (r AllocationResult) AssignedTo(personID string) []ChannelSlot {
	var out []ChannelSlot
	for _, ch := range r.Channels {
		if ch.AssignedTo != nil && ch.AssignedTo.PersonID == personID {
			out = append(out, ch)
		}
	}
	return out
}
