// Package visibility decides whether a sunset azimuth is seen over open water.
package visibility

import (
	"math"

	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/pkg/geospatial"
)

const (
	directAlignment   = 1.0
	adjacentAlignment = 1.5
)

// Input is the view geometry a sunset azimuth is tested against.
type Input struct {
	Window       domain.ViewWindow
	Obstructions []domain.ObstructionInterval
	Scenic       []domain.ScenicFeature
}

// InRange reports whether az lies in the clockwise arc [start, end],
// inclusive at both ends and aware of wraparound through 0°.
func InRange(az, start, end float64) bool {
	return geospatial.InRange(az, start, end)
}

// Resolve returns the verdict for a sunset at sunsetAz. The window is tested
// first, then known obstructions; scenic alignment is only graded for a
// visible sunset and never changes the outcome.
func Resolve(sunsetAz float64, in Input) domain.VisibilityVerdict {
	az := geospatial.Normalize360(sunsetAz)

	if !InRange(az, in.Window.Start, in.Window.End) {
		return domain.VisibilityVerdict{
			BlockingReason: domain.ReasonOutsideView,
			Side:           sideOf(az, in.Window),
		}
	}

	for _, o := range in.Obstructions {
		if InRange(az, o.StartAz, o.EndAz) {
			return domain.VisibilityVerdict{BlockingReason: o.Label}
		}
	}

	v := domain.VisibilityVerdict{OverWater: true}
	for i := range in.Scenic {
		s := in.Scenic[i]
		diff := math.Abs(geospatial.AngleDiff(az, s.CenterAz))
		if diff > s.HalfWidth {
			continue
		}
		switch {
		case diff < directAlignment:
			v.ScenicAlignment = domain.AlignmentDirect
		case diff < adjacentAlignment:
			v.ScenicAlignment = domain.AlignmentAdjacent
		default:
			v.ScenicAlignment = domain.AlignmentNearby
		}
		v.Scenic = &s
		break
	}
	return v
}

// sideOf names the window edge nearer to an azimuth outside it. Start is the
// counter-clockwise edge, which for a west-facing beach is the southern one.
func sideOf(az float64, w domain.ViewWindow) domain.WindowSide {
	toStart := math.Abs(geospatial.AngleDiff(az, w.Start))
	toEnd := math.Abs(geospatial.AngleDiff(az, w.End))
	if toStart <= toEnd {
		return domain.SideTooFarSouth
	}
	return domain.SideTooFarNorth
}
