// Package mixer resolves an event's mixer configuration into the ordered
// channel slots offered to the allocation engine.
package mixer

import (
	"fmt"
	"strings"

	"github.com/subratasarker952/waitumusic-sub016/internal/domain/model"
)

const opResolve = "mixer.resolve"

// Resolve validates cfg and returns its slots grouped by family in
// stage-plot order. Slot order within a family follows the configuration.
// Inapplicable slots are kept so callers can display them as unused.
func Resolve(cfg model.MixerConfig) ([]model.ChannelSlot, error) {
	byFamily := make(map[model.Family][]model.ChannelSlot, len(model.Families()))
	seen := make(map[string]struct{})

	for _, g := range cfg.Groups {
		family, err := model.ParseFamily(g.Family)
		if err != nil {
			return nil, &model.ConfigurationError{Op: opResolve, Family: g.Family, Err: model.ErrUnknownFamily}
		}
		for _, sc := range g.Slots {
			id := strings.TrimSpace(sc.SlotID)
			if id == "" {
				return nil, &model.ConfigurationError{
					Op:     opResolve,
					Family: family.String(),
					Err:    fmt.Errorf("%w: slot without id", model.ErrInvalidTemplate),
				}
			}
			if _, dup := seen[id]; dup {
				return nil, &model.ConfigurationError{
					Op:     opResolve,
					SlotID: id,
					Family: family.String(),
					Err:    fmt.Errorf("%w: duplicate slot id", model.ErrInvalidTemplate),
				}
			}
			seen[id] = struct{}{}

			label := strings.TrimSpace(sc.Label)
			if label == "" {
				label = id
			}
			byFamily[family] = append(byFamily[family], model.ChannelSlot{
				SlotID:     id,
				Family:     family,
				Label:      label,
				Applicable: sc.Applicable,
				Notes:      sc.Notes,
			})
		}
	}

	slots := make([]model.ChannelSlot, 0, len(seen))
	for _, f := range model.Families() {
		slots = append(slots, byFamily[f]...)
	}
	return slots, nil
}

// Applicable returns the slots that take part in allocation, in order.
func Applicable(slots []model.ChannelSlot) []model.ChannelSlot {
	out := make([]model.ChannelSlot, 0, len(slots))
	for _, s := range slots {
		if s.Applicable {
			out = append(out, s)
		}
	}
	return out
}

// Group is the slots of a single family.
type Group struct {
	Family model.Family
	Slots  []model.ChannelSlot
}

// Groups splits resolved slots into per-family groups in stage-plot order,
// omitting families with no slots.
func Groups(slots []model.ChannelSlot) []Group {
	var groups []Group
	for _, f := range model.Families() {
		var g Group
		for _, s := range slots {
			if s.Family == f {
				g.Slots = append(g.Slots, s)
			}
		}
		if len(g.Slots) > 0 {
			g.Family = f
			groups = append(groups, g)
		}
	}
	return groups
}
