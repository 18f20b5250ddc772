package allocation

import (
	"errors"
	"fmt"

	"github.com/subratasarker952/waitumusic-sub016/internal/domain/model"
)

// check verifies the post-conditions of a finished allocation:
// every assignee plays the family of the slot they hold, no one holds every
// slot when several people and families are in play, and only applicable
// slots appear in the output.
func check(roster []model.Person, res model.AllocationResult) error {
	byID := make(map[string]model.Person, len(roster))
	for _, p := range roster {
		if _, ok := byID[p.PersonID]; !ok {
			byID[p.PersonID] = p
		}
	}

	var errs []error
	holdings := make(map[string]int)
	families := make(map[model.Family]struct{})
	for _, ch := range res.Channels {
		families[ch.Family] = struct{}{}
		if !ch.Applicable {
			errs = append(errs, fmt.Errorf("slot %q is not applicable but was offered", ch.SlotID))
		}
		if ch.AssignedTo == nil {
			continue
		}
		p, ok := byID[ch.AssignedTo.PersonID]
		if !ok {
			errs = append(errs, fmt.Errorf("slot %q assigned to %q who is not on the roster", ch.SlotID, ch.AssignedTo.PersonID))
			continue
		}
		if !p.Plays(ch.Family) {
			errs = append(errs, fmt.Errorf("slot %q (%s) assigned to %q who does not play it", ch.SlotID, ch.Family, p.PersonID))
		}
		holdings[p.PersonID]++
	}

	if len(byID) > 1 && len(families) > 1 {
		for id, n := range holdings {
			if n == len(res.Channels) {
				errs = append(errs, fmt.Errorf("%q holds all %d applicable slots", id, n))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s: %w: %w", opAllocate, ErrInvariantViolated, errors.Join(errs...))
	}
	return nil
}
