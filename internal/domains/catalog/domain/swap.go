package domain

import "fmt"

// SwapPlan captures the three writes that exchange two adjacent sort keys.
type SwapPlan struct {
	Target    Item
	Neighbor  Item
	TempOrder int64
}

// SwapStep is a single order write.
type SwapStep struct {
	ItemID   string
	ItemName string
	Order    int64
}

// Steps lists the writes in the order they must be applied: park the target, move the
// neighbour into the target's slot, then drop the target into the neighbour's slot.
func (p SwapPlan) Steps() []SwapStep {
	return []SwapStep{
		{ItemID: p.Target.ID, ItemName: p.Target.Name, Order: p.TempOrder},
		{ItemID: p.Neighbor.ID, ItemName: p.Neighbor.Name, Order: p.Target.Order},
		{ItemID: p.Target.ID, ItemName: p.Target.Name, Order: p.Neighbor.Order},
	}
}

// PlanSwap computes the swap for moving name one slot in dir within the ordered list.
// ok is false when the item sits at the boundary for that direction.
func PlanSwap(ordered []Item, name string, dir Direction) (plan SwapPlan, ok bool, err error) {
	idx := -1
	for i, item := range ordered {
		if item.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return SwapPlan{}, false, ErrItemNotFound
	}
	neighborIdx := idx - 1
	if dir == Down {
		neighborIdx = idx + 1
	}
	if neighborIdx < 0 || neighborIdx >= len(ordered) {
		return SwapPlan{}, false, nil
	}
	target, neighbor := ordered[idx], ordered[neighborIdx]
	return SwapPlan{
		Target:    target,
		Neighbor:  neighbor,
		TempOrder: max(target.Order, neighbor.Order) + TempOrderGap,
	}, true, nil
}

// SwapStepError reports a failed write inside a swap. Writes before Step stay applied.
type SwapStepError struct {
	Step    int
	Applied int
	Err     error
}

func (e *SwapStepError) Error() string {
	return fmt.Sprintf("swap write %d of 3 failed after %d applied: %v", e.Step, e.Applied, e.Err)
}

func (e *SwapStepError) Unwrap() error { return e.Err }
