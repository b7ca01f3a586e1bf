// Package ordering computes card order values. Orders are whole-number
// multiples of a fixed spacing so that appends never renumber existing rows;
// a confirmed drag-and-drop reorder densely renumbers the whole list instead
// of doing fractional insertion.
package ordering

// Spacing is the gap left between consecutive order values. Any sufficiently
// large constant works; only relative order is meaningful.
const Spacing = 1000

// Append returns the order for a card added to the end of a list whose
// current maximum order is maxOrder. An empty list (or a lookup that yielded
// no rows) must be passed as 0 and produces Spacing, never a value derived
// from a stale or negative maximum.
func Append(maxOrder int) int {
	if maxOrder < 0 {
		maxOrder = 0
	}
	return maxOrder + Spacing
}

// Slot returns the order assigned to position index (0-based) during a dense
// renumbering of a list.
func Slot(index int) int {
	return (index + 1) * Spacing
}

// Renumber returns the dense order sequence for a list of n cards:
// Spacing, 2*Spacing, ..., n*Spacing.
func Renumber(n int) []int {
	orders := make([]int, n)
	for i := range orders {
		orders[i] = Slot(i)
	}
	return orders
}
