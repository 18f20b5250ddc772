package mixer

import (
	"fmt"

	"github.com/subratasarker952/waitumusic-sub016/internal/domain/model"
)

// Default returns the standard five-piece template used when an event has
// no venue-specific mixer configuration.
func Default() model.MixerConfig {
	return model.MixerConfig{
		Name: "standard",
		Groups: []model.GroupConfig{
			{Family: "vocals", Slots: []model.SlotConfig{
				{SlotID: "vocal-1", Label: "Lead Vocal", Applicable: true},
				{SlotID: "vocal-2", Label: "Backup Vocal", Applicable: true},
			}},
			{Family: "guitar", Slots: []model.SlotConfig{
				{SlotID: "guitar-1", Label: "Guitar 1", Applicable: true},
				{SlotID: "guitar-2", Label: "Guitar 2", Applicable: false},
			}},
			{Family: "bass", Slots: []model.SlotConfig{
				{SlotID: "bass-1", Label: "Bass DI", Applicable: true},
				{SlotID: "bass-2", Label: "Bass Mic", Applicable: false},
			}},
			{Family: "keyboard", Slots: []model.SlotConfig{
				{SlotID: "keyboard-1", Label: "Keyboard Left", Applicable: true},
				{SlotID: "keyboard-2", Label: "Keyboard Right", Applicable: true},
			}},
			{Family: "drums", Slots: []model.SlotConfig{
				{SlotID: "drum-1", Label: "Kick In", Applicable: true},
				{SlotID: "drum-2", Label: "Snare Top", Applicable: true},
				{SlotID: "drum-3", Label: "Hi Hat", Applicable: true},
				{SlotID: "drum-4", Label: "Over Head Left", Applicable: true},
				{SlotID: "drum-5", Label: "Over Head Right", Applicable: true},
			}},
		},
	}
}

// basicKitApplicable is how many of the basic kit inputs are used by default.
const basicKitApplicable = 6

// DrumKit returns a drums group for a basic kit. The first six inputs are
// marked applicable; the overhead pair is available if needed.
func DrumKit(prefix string) model.GroupConfig {
	labels := []string{"Kick", "Snare", "Hi-Hat", "Tom 1", "Tom 2", "Floor Tom", "OH L", "OH R"}
	g := model.GroupConfig{Family: model.FamilyDrums.String()}
	for i, l := range labels {
		g.Slots = append(g.Slots, model.SlotConfig{
			SlotID:     fmt.Sprintf("%s-%d", prefix, i+1),
			Label:      l,
			Applicable: i < basicKitApplicable,
		})
	}
	return g
}
