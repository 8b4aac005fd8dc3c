package format

import (
	"fmt"

	"finboard/internal/core"
)

// YAxis computes the tick labels for the revenue chart's vertical axis.
//
// topLabel is the highest revenue value rounded up to the nearest 1000
// (0 for an empty or all-zero series). Labels step from topLabel down to 0
// in 1000-dollar decrements, each rendered as "$<N/1000>K", so an all-zero
// series yields exactly ["$0K"]. Revenue values are whole dollars already;
// no cent conversion happens here.
func YAxis(points []core.RevenuePoint) (labels []string, topLabel int64) {
	var highest int64
	for _, p := range points {
		if p.Revenue > highest {
			highest = p.Revenue
		}
	}
	topLabel = (highest + 999) / 1000 * 1000

	for v := topLabel; v >= 0; v -= 1000 {
		labels = append(labels, fmt.Sprintf("$%dK", v/1000))
	}
	return labels, topLabel
}
