package stageplot

import "github.com/subratasarker952/waitumusic-sub016/internal/domain/model"

// Option applies a configuration option to Build.
type Option func(*builder)

// WithCapacity sets the number of physical mixer inputs. Non-positive values are ignored.
func WithCapacity(n int) Option {
	return func(b *builder) {
		if n > 0 {
			b.capacity = n
		}
	}
}

// WithTemplate supplies the resolved template so inapplicable slots can be
// listed as not used this event.
func WithTemplate(slots []model.ChannelSlot) Option {
	return func(b *builder) {
		b.template = slots
	}
}

// WithExclusions adds warnings for people dropped during normalization.
func WithExclusions(ex []model.Exclusion) Option {
	return func(b *builder) {
		b.excluded = ex
	}
}
