package visibility_test

import (
	"strings"
	"testing"

	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/pkg/visibility"
)

func TestExplain(t *testing.T) {
	west := domain.ViewWindow{FacingAzimuth: 250, HalfWidth: 50, Start: 200, End: 300}
	koh := &domain.ScenicFeature{CenterAz: 247, HalfWidth: 3, Label: "Koh Man"}

	tests := []struct {
		name    string
		verdict domain.VisibilityVerdict
		az      float64
		facing  string
		want    string
	}{
		{"visible", domain.VisibilityVerdict{OverWater: true}, 246.7, "west-southwest", "over the ocean"},
		{"scenic", domain.VisibilityVerdict{OverWater: true, ScenicAlignment: domain.AlignmentDirect, Scenic: koh}, 246.7, "west-southwest", "directly behind Koh Man"},
		{"obstructed", domain.VisibilityVerdict{BlockingReason: "Promthep Cape"}, 246.7, "west", "blocked by Promthep Cape"},
		{"sunrise beach", domain.VisibilityVerdict{BlockingReason: domain.ReasonOutsideView}, 246.7, "east", "sunrise beach"},
		{"north facing", domain.VisibilityVerdict{BlockingReason: domain.ReasonOutsideView}, 300.5, "north", "outside your view"},
		{"outside range", domain.VisibilityVerdict{BlockingReason: domain.ReasonOutsideView}, 310, "west", "outside ocean view (200°-300°)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := visibility.Explain(tt.verdict, tt.az, tt.facing, west, domain.SourceOcean)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Explain = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestConfidenceNote(t *testing.T) {
	if visibility.ConfidenceNote(domain.ConfidenceHigh) != "" {
		t.Error("high confidence should carry no note")
	}
	if !strings.Contains(visibility.ConfidenceNote(domain.ConfidenceLow), "verify") {
		t.Error("low confidence note should ask to verify")
	}
}
