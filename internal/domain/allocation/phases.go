package allocation

import "github.com/subratasarker952/waitumusic-sub016/internal/domain/model"

// run holds the working state of one Allocate call.
type run struct {
	roster    []model.Person
	channels  []model.ChannelSlot
	allocated map[string]bool
}

func newRun(roster []model.Person, slots []model.ChannelSlot) *run {
	channels := make([]model.ChannelSlot, 0, len(slots))
	for _, s := range slots {
		if !s.Applicable {
			continue
		}
		s.AssignedTo = nil
		channels = append(channels, s)
	}
	people := make([]model.Person, 0, len(roster))
	seen := make(map[string]bool, len(roster))
	for _, p := range roster {
		if seen[p.PersonID] {
			continue
		}
		seen[p.PersonID] = true
		people = append(people, p)
	}
	return &run{
		roster:    people,
		channels:  channels,
		allocated: make(map[string]bool, len(roster)),
	}
}

// open returns the indexes of unassigned channels of family f, in order.
func (r *run) open(f model.Family) []int {
	var idx []int
	for i, ch := range r.channels {
		if ch.Family == f && ch.AssignedTo == nil {
			idx = append(idx, i)
		}
	}
	return idx
}

// eligible returns roster members playing f who hold no channel yet.
func (r *run) eligible(f model.Family) []model.Person {
	var out []model.Person
	for _, p := range r.roster {
		if p.Plays(f) && !r.allocated[p.PersonID] {
			out = append(out, p)
		}
	}
	return out
}

func (r *run) assign(p model.Person, idx ...int) {
	for _, i := range idx {
		if r.channels[i].AssignedTo != nil {
			continue
		}
		r.channels[i].AssignedTo = p.Ref()
	}
	r.allocated[p.PersonID] = true
}

// single pairs the first eligible person with the first open slot until
// either runs out.
func (r *run) single(f model.Family) {
	slots := r.open(f)
	people := r.eligible(f)
	for i := 0; i < len(slots) && i < len(people); i++ {
		r.assign(people[i], slots[i])
	}
}

// paired hands out consecutive open slots as Left/Right pairs. A trailing
// unpaired slot is never given to anyone.
func (r *run) paired(f model.Family) {
	slots := r.open(f)
	people := r.eligible(f)
	for i := 0; i+1 < len(slots) && i/2 < len(people); i += 2 {
		r.assign(people[i/2], slots[i], slots[i+1])
	}
}

// block gives every open slot of f to the first eligible person.
func (r *run) block(f model.Family) {
	slots := r.open(f)
	if len(slots) == 0 {
		return
	}
	people := r.eligible(f)
	if len(people) == 0 {
		return
	}
	r.assign(people[0], slots...)
}

func (r *run) result() model.AllocationResult {
	res := model.AllocationResult{
		Channels:         r.channels,
		UnassignedPeople: make([]model.Person, 0),
		UnfilledSlots:    make([]model.ChannelSlot, 0),
	}
	for _, ch := range r.channels {
		if ch.AssignedTo == nil {
			res.UnfilledSlots = append(res.UnfilledSlots, ch)
		}
	}
	for _, p := range r.roster {
		if r.allocated[p.PersonID] {
			continue
		}
		res.UnassignedPeople = append(res.UnassignedPeople, p)
	}
	return res
}
