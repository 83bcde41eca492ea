package natsadapter_test

import (
	"encoding/json"
	"testing"
	"time"

	natsadapter "github.com/samirrijal/sundowner/internal/adapters/nats"
	"github.com/samirrijal/sundowner/internal/core/domain"
)

func sampleReport() *domain.SunsetReport {
	return &domain.SunsetReport{
		ID:        "6f1c1a3e-6a0b-4b0c-9a57-2f0b8fb4c001",
		Name:      "Nai Harn Beach",
		BeachSlug: "nai_harn",
		Location:  domain.GeoPoint{Lat: 7.7677, Lon: 98.3036},
		Date:      "2025-12-29",
		Sunset: domain.SolarPosition{
			Azimuth:  246.7,
			Altitude: -0.833,
			Time:     time.Date(2025, 12, 29, 11, 19, 11, 0, time.UTC),
		},
		LocalTime: "18:19",
		Timezone:  domain.TimezoneInfo{OffsetHours: 7, ID: "Asia/Bangkok", Source: "curated"},
		Direction: "west-southwest",
		Window:    domain.ViewWindow{FacingAzimuth: 245, HalfWidth: 35, Start: 210, End: 280, Confidence: domain.ConfidenceHigh},
		Verdict:   domain.VisibilityVerdict{OverWater: true, ScenicAlignment: domain.AlignmentDirect},
		Source:    domain.ReportCurated,
		CreatedAt: time.Date(2025, 12, 28, 9, 0, 0, 0, time.UTC),
	}
}

func TestEncodeDecodeReport(t *testing.T) {
	in := sampleReport()
	data, err := natsadapter.EncodeReport(in)
	if err != nil {
		t.Fatalf("EncodeReport: %v", err)
	}

	out, err := natsadapter.DecodeReport(data)
	if err != nil {
		t.Fatalf("DecodeReport: %v", err)
	}
	if out.ID != in.ID || out.BeachSlug != in.BeachSlug || !out.Sunset.Time.Equal(in.Sunset.Time) {
		t.Errorf("decoded = %+v", out)
	}
	if out.Sunset.Azimuth != in.Sunset.Azimuth || out.Window != in.Window || out.Verdict.OverWater != true {
		t.Errorf("decoded geometry = %+v / %+v", out.Sunset, out.Window)
	}
}

func TestDecodeReportJSON(t *testing.T) {
	data, err := natsadapter.EncodeReport(sampleReport())
	if err != nil {
		t.Fatalf("EncodeReport: %v", err)
	}
	raw, err := natsadapter.DecodeReportJSON(data)
	if err != nil {
		t.Fatalf("DecodeReportJSON: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if m["beach_slug"] != "nai_harn" {
		t.Errorf("beach_slug = %v", m["beach_slug"])
	}
}

func TestDecodeReport_Garbage(t *testing.T) {
	if _, err := natsadapter.DecodeReport([]byte{0xff, 0x01, 0x02}); err == nil {
		t.Error("expected error for garbage payload")
	}
}

func TestReportSubject(t *testing.T) {
	r := sampleReport()
	if got := natsadapter.ReportSubject(r); got != "sunset.report.nai_harn" {
		t.Errorf("subject = %q", got)
	}
	r.BeachSlug = ""
	if got := natsadapter.ReportSubject(r); got != "sunset.report.location" {
		t.Errorf("subject = %q", got)
	}
}
