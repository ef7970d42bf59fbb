package trajectory

import (
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/Faultbox/ar-road/pkg/math"
)

// ArcLengthIndex maps distance travelled along a path to fractional frames.
// Sampling by distance instead of by frame count keeps downstream estimates
// independent of the capture frame rate and walking speed.
type ArcLengthIndex struct {
	distances []float64
}

// NewArcLengthIndex accumulates the distance between consecutive positions.
// The first entry is always zero.
func NewArcLengthIndex(path []math.Vec3) *ArcLengthIndex {
	steps := make([]float64, len(path))
	for i := 1; i < len(path); i++ {
		steps[i] = float64(path[i-1].Distance(path[i]))
	}
	return &ArcLengthIndex{distances: floats.CumSum(make([]float64, len(steps)), steps)}
}

// Len returns the number of frames indexed.
func (a *ArcLengthIndex) Len() int {
	return len(a.distances)
}

// DistanceAt returns the cumulative distance at a frame, clamped to the path.
func (a *ArcLengthIndex) DistanceAt(frame int) float64 {
	if len(a.distances) == 0 {
		return 0
	}
	return a.distances[clampIndex(frame, len(a.distances))]
}

// TotalLength returns the length of the whole path.
func (a *ArcLengthIndex) TotalLength() float64 {
	return a.DistanceAt(len(a.distances) - 1)
}

// Distances returns a copy of the cumulative distance table.
func (a *ArcLengthIndex) Distances() []float64 {
	return slices.Clone(a.distances)
}

// FrameAtDistance returns the fractional frame at which the path has covered
// distance. Distances before the start map to frame 0 and distances past the
// end map to the last frame.
func (a *ArcLengthIndex) FrameAtDistance(distance float64) float64 {
	n := len(a.distances)
	if n == 0 {
		return 0
	}
	k, found := slices.BinarySearch(a.distances, distance)
	if found {
		return float64(k)
	}
	if k == 0 {
		return 0
	}
	if k == n {
		return float64(n - 1)
	}
	return float64(k-1) + inverseLerp(a.distances[k-1], a.distances[k], distance)
}

func inverseLerp(a, b, value float64) float64 {
	if a == b {
		return 0
	}
	return (value - a) / (b - a)
}

func clampIndex(i, n int) int {
	if i <= 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
