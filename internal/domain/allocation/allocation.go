// Package allocation assigns mixer input channels to the people booked for
// an event.
//
// Allocation runs in three phases. Single-channel families (vocals, guitar,
// bass, percussion, other) pair people with slots one to one. Keyboards are
// allocated as stereo Left/Right pairs. Drums go to one drummer as a block.
// A person allocated in any family is not considered again, and ties are
// broken by roster order only.
//
// The engine is a pure function of its inputs: it keeps no state between
// calls and is safe for concurrent use.
package allocation

import (
	"fmt"

	"github.com/subratasarker952/waitumusic-sub016/internal/domain/model"
)

const opAllocate = "allocation.allocate"

// Cardinality describes how many slots of a family one person receives.
type Cardinality int

const (
	// Single families give each person exactly one slot.
	Single Cardinality = iota
	// Paired families give each person a Left/Right pair of slots.
	Paired
	// Block families give every slot to one person.
	Block
)

func (c Cardinality) String() string {
	switch c {
	case Single:
		return "single"
	case Paired:
		return "paired"
	case Block:
		return "block"
	default:
		return fmt.Sprintf("cardinality(%d)", int(c))
	}
}

// CardinalityOf returns the allocation rule for f.
func CardinalityOf(f model.Family) Cardinality {
	switch f {
	case model.FamilyKeyboard:
		return Paired
	case model.FamilyDrums:
		return Block
	default:
		return Single
	}
}

// Engine allocates channels. The zero value is not usable; call New.
type Engine struct {
	singleOrder []model.Family
}

// New creates an Engine visiting single-channel families in the order
// vocals, guitar, bass, percussion, other.
func New(opts ...Option) *Engine {
	e := &Engine{
		singleOrder: []model.Family{
			model.FamilyVocals,
			model.FamilyGuitar,
			model.FamilyBass,
			model.FamilyPercussion,
			model.FamilyOther,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SingleFamilyOrder returns the first-phase family order.
func (e *Engine) SingleFamilyOrder() []model.Family {
	return append([]model.Family(nil), e.singleOrder...)
}

// Allocate runs a default Engine.
func Allocate(roster []model.Person, slots []model.ChannelSlot) (model.AllocationResult, error) {
	return New().Allocate(roster, slots)
}

// Allocate assigns the applicable slots to people on the roster. Shortfalls
// in either direction are reported in the result; only a malformed template
// is an error, and it is detected before any assignment is made. Later roster
// entries repeating a person id are ignored. Inputs are not modified.
func (e *Engine) Allocate(roster []model.Person, slots []model.ChannelSlot) (model.AllocationResult, error) {
	if err := validate(slots); err != nil {
		return model.AllocationResult{}, err
	}

	r := newRun(roster, slots)
	for _, f := range e.singleOrder {
		r.single(f)
	}
	r.paired(model.FamilyKeyboard)
	r.block(model.FamilyDrums)

	res := r.result()
	if err := check(r.roster, res); err != nil {
		return model.AllocationResult{}, err
	}
	return res, nil
}

func validate(slots []model.ChannelSlot) error {
	seen := make(map[string]struct{}, len(slots))
	for _, s := range slots {
		if !s.Family.Valid() {
			return &model.ConfigurationError{
				Op:     opAllocate,
				SlotID: s.SlotID,
				Family: s.Family.String(),
				Err:    model.ErrUnknownFamily,
			}
		}
		if _, dup := seen[s.SlotID]; dup {
			return &model.ConfigurationError{
				Op:     opAllocate,
				SlotID: s.SlotID,
				Family: s.Family.String(),
				Err:    fmt.Errorf("%w: duplicate slot id", model.ErrInvalidTemplate),
			}
		}
		seen[s.SlotID] = struct{}{}
	}
	return nil
}
