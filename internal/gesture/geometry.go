package gesture

import (
	"math"

	"github.com/ayusman/handcount/internal/detector"
)

// Distance returns the Euclidean distance between two points.
func Distance(a, b detector.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
