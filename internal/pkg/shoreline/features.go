package shoreline

import (
	"fmt"

	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/pkg/geospatial"
)

// ScenicIslandDistance is the furthest an island may be to be reported.
const ScenicIslandDistance = 10000.0

// ClassifyFeatures reports the features that lie inside the view window.
// Capes, peninsulas and cliffs are possible obstructions; islands closer
// than ScenicIslandDistance are scenic points. Advisories never alter the
// window itself.
func ClassifyFeatures(w domain.ViewWindow, features []domain.PointFeature) []domain.Advisory {
	var out []domain.Advisory
	for _, f := range features {
		if !geospatial.InRange(f.Bearing, w.Start, w.End) {
			continue
		}
		switch f.Kind {
		case domain.FeatureCape, domain.FeaturePeninsula, domain.FeatureCliff:
			out = append(out, domain.Advisory{
				Feature: f,
				Kind:    domain.AdvisoryObstruction,
				Message: fmt.Sprintf("%s at %.0f° (%.1fkm) may obstruct view", f.Name, f.Bearing, f.Distance/1000),
			})
		case domain.FeatureIsland:
			if f.Distance >= ScenicIslandDistance {
				continue
			}
			out = append(out, domain.Advisory{
				Feature: f,
				Kind:    domain.AdvisoryScenic,
				Message: fmt.Sprintf("Island '%s' at %.0f° (%.1fkm) - potential scenic feature", f.Name, f.Bearing, f.Distance/1000),
			})
		}
	}
	return out
}
