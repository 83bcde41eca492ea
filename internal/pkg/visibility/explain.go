package visibility

import (
	"fmt"
	"strings"

	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/pkg/geospatial"
)

// Explain describes a verdict in a sentence or two. facing is the compass
// name of the direction the shore faces.
func Explain(v domain.VisibilityVerdict, sunsetAz float64, facing string, w domain.ViewWindow, water domain.ShorelineSource) string {
	sunDir := geospatial.DirectionName(sunsetAz)

	if v.OverWater {
		msg := fmt.Sprintf("Sunset at %.1f° (%s) is over the %s.", sunsetAz, sunDir, water)
		if v.Scenic != nil {
			msg += fmt.Sprintf(" The sun sets %s %s.", alignmentPhrase(v.ScenicAlignment), v.Scenic.Label)
		}
		return msg
	}

	if v.BlockingReason != "" && v.BlockingReason != domain.ReasonOutsideView {
		return fmt.Sprintf("Sun at %.1f° is blocked by %s.", sunsetAz, v.BlockingReason)
	}

	switch {
	case strings.Contains(facing, "east"):
		return fmt.Sprintf("This beach faces %s - it's a sunrise beach. The sunset (%s) is behind you.", facing, sunDir)
	case strings.Contains(facing, "north"), strings.Contains(facing, "south"):
		return fmt.Sprintf("This beach faces %s. The sunset is at %.1f° (%s), outside your view.", facing, sunsetAz, sunDir)
	default:
		return fmt.Sprintf("Sun at %.1f° is outside %s view (%.0f°-%.0f°).", sunsetAz, water, w.Start, w.End)
	}
}

func alignmentPhrase(a domain.ScenicAlignment) string {
	switch a {
	case domain.AlignmentDirect:
		return "directly behind"
	case domain.AlignmentAdjacent:
		return "just beside"
	default:
		return "near"
	}
}

// ConfidenceNote qualifies a view window's confidence for readers.
func ConfidenceNote(c domain.Confidence) string {
	switch c {
	case domain.ConfidenceLow:
		return "Limited coastline data; verify with local knowledge"
	case domain.ConfidenceMedium:
		return "Based on OSM coastline geometry; may vary by position on beach"
	}
	return ""
}
