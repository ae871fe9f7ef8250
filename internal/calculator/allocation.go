package calculator

import (
	"errors"
	"fmt"
)

// ErrOverAllocated is returned when manual allocations would exceed the
// quantity required for an item.
var ErrOverAllocated = errors.New("allocated quantity exceeds item quantity")

// CheckAllocation verifies that the quantities already allocated to other
// stores plus the requested quantity fit within itemQuantity.
func CheckAllocation(itemQuantity int, allocated []int, requested int) error {
	total := requested
	for _, q := range allocated {
		total += q
	}
	if total > itemQuantity {
		return fmt.Errorf("%w: total allocated quantity (%d) exceeds item quantity (%d)",
			ErrOverAllocated, total, itemQuantity)
	}
	return nil
}
