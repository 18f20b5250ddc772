package allocation

import (
	"slices"

	"github.com/subratasarker952/waitumusic-sub016/internal/domain/model"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithSingleFamilyOrder sets the order in which one-slot-per-person families
// are visited in the first phase. Families that are not single-channel are
// ignored; single-channel families left out keep their default relative
// order after the listed ones.
func WithSingleFamilyOrder(families ...model.Family) Option {
	return func(e *Engine) {
		order := make([]model.Family, 0, len(e.singleOrder))
		for _, f := range families {
			if CardinalityOf(f) == Single && !slices.Contains(order, f) {
				order = append(order, f)
			}
		}
		for _, f := range e.singleOrder {
			if !slices.Contains(order, f) {
				order = append(order, f)
			}
		}
		e.singleOrder = order
	}
}
