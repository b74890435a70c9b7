package collection

import "itemsync/internal/service"

// Partition splits items into incomplete and complete, preserving input order
// within each group. Every item lands in exactly one group.
func Partition(items []service.Item) (incomplete, complete []service.Item) {
	for _, item := range items {
		if item.IsCompleted {
			complete = append(complete, item)
		} else {
			incomplete = append(incomplete, item)
		}
	}
	return incomplete, complete
}
