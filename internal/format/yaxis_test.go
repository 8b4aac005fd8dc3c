package format

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"finboard/internal/core"
)

func month(name string) *string { return &name }

func revenueSeries(values ...int64) []core.RevenuePoint {
	points := make([]core.RevenuePoint, len(values))
	for i, v := range values {
		points[i] = core.RevenuePoint{Month: month("M"), Revenue: v}
	}
	return points
}

func TestYAxisEmptyAndZero(t *testing.T) {
	for _, points := range [][]core.RevenuePoint{nil, {}, revenueSeries(0, 0, 0, 0)} {
		labels, top := YAxis(points)
		assert.Equal(t, []string{"$0K"}, labels)
		assert.Equal(t, int64(0), top)
	}
}

func TestYAxisSteps(t *testing.T) {
	labels, top := YAxis(revenueSeries(5000, 8000, 12000, 10000))

	assert.Equal(t, int64(12000), top)
	assert.Len(t, labels, 13)
	assert.Equal(t, "$12K", labels[0])
	assert.Equal(t, "$0K", labels[len(labels)-1])

	// Strictly decreasing by one step per label.
	for i, label := range labels {
		assert.Equal(t, fmt.Sprintf("$%dK", 12-i), label)
	}
}

func TestYAxisRoundsUpToThousand(t *testing.T) {
	labels, top := YAxis(revenueSeries(10500))

	assert.Equal(t, int64(11000), top)
	assert.Len(t, labels, 12)
	assert.Equal(t, "$11K", labels[0])
	assert.Equal(t, "$0K", labels[11])
}

func TestYAxisDuplicatesAndSingle(t *testing.T) {
	labels, top := YAxis(revenueSeries(8000, 8000, 5000))
	assert.Equal(t, int64(8000), top)
	assert.Len(t, labels, 9)

	labels, top = YAxis(revenueSeries(5000))
	assert.Equal(t, int64(5000), top)
	assert.Equal(t, []string{"$5K", "$4K", "$3K", "$2K", "$1K", "$0K"}, labels)
}

func TestYAxisNullMonthIgnored(t *testing.T) {
	labels, top := YAxis([]core.RevenuePoint{{Month: nil, Revenue: 2000}})
	assert.Equal(t, int64(2000), top)
	assert.Equal(t, []string{"$2K", "$1K", "$0K"}, labels)
}
