package staticdata_test

import (
	"context"
	"errors"
	"testing"

	"github.com/samirrijal/sundowner/internal/adapters/staticdata"
	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/core/ports"
)

func mustLoad(t *testing.T) *staticdata.Catalog {
	t.Helper()
	c, err := staticdata.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return c
}

func TestLoad_EmbeddedDataset(t *testing.T) {
	c := mustLoad(t)
	all := c.All()
	if len(all) < 40 {
		t.Fatalf("expected the full curated dataset, got %d beaches", len(all))
	}
	for _, b := range all {
		if b.Name == "" || b.Country == "" || b.FacingDirection == "" {
			t.Errorf("incomplete record %+v", b)
		}
	}
}

func TestGetBySlug_NaiHarn(t *testing.T) {
	c := mustLoad(t)
	for _, id := range []string{"nai_harn", "Nai Harn", "nai-harn", "  NAI_HARN "} {
		b, err := c.GetBySlug(context.Background(), id)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", id, err)
		}
		if b.Name != "Nai Harn Beach" {
			t.Errorf("%q: expected Nai Harn Beach, got %s", id, b.Name)
		}
	}

	b, _ := c.GetBySlug(context.Background(), "nai_harn")
	if b.UTCOffset != 7 || b.OceanViewStart != 230 || b.OceanViewEnd != 295 {
		t.Errorf("unexpected geometry %+v", b)
	}
	if len(b.Obstructions) != 2 || b.Obstructions[0].Label != "Promthep Cape (southern headland)" {
		t.Errorf("unexpected obstructions %+v", b.Obstructions)
	}
	if len(b.ScenicFeatures) != 1 || b.ScenicFeatures[0].CenterAz != 247 || b.ScenicFeatures[0].HalfWidth != 2.5 {
		t.Errorf("unexpected scenic features %+v", b.ScenicFeatures)
	}
}

func TestGetBySlug_NotFound(t *testing.T) {
	c := mustLoad(t)
	if _, err := c.GetBySlug(context.Background(), "atlantis"); !errors.Is(err, domain.ErrBeachNotFound) {
		t.Errorf("expected ErrBeachNotFound, got %v", err)
	}
}

func TestList_Filters(t *testing.T) {
	c := mustLoad(t)
	ctx := context.Background()

	thai, total, err := c.List(ctx, ports.BeachFilter{Country: "thailand"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total == 0 || len(thai) != total {
		t.Fatalf("expected Thai beaches, got %d of %d", len(thai), total)
	}
	for _, b := range thai {
		if b.Country != "Thailand" {
			t.Errorf("unexpected country %s", b.Country)
		}
	}

	phuket, _, _ := c.List(ctx, ports.BeachFilter{Query: "phuket"})
	if len(phuket) < 2 {
		t.Errorf("expected region search to find several Phuket beaches, got %d", len(phuket))
	}

	sunset, _, _ := c.List(ctx, ports.BeachFilter{SunsetOnly: true})
	for _, b := range sunset {
		if !staticdata.IsSunsetBeach(&b) {
			t.Errorf("%s is not a sunset beach", b.Slug)
		}
	}
	for _, b := range sunset {
		if b.Slug == "grace_bay" {
			t.Error("grace_bay faces north and must not be listed as a sunset beach")
		}
	}
	if len(sunset) == 0 {
		t.Error("expected some sunset beaches")
	}
}

func TestList_Paging(t *testing.T) {
	c := mustLoad(t)
	ctx := context.Background()

	page, total, err := c.List(ctx, ports.BeachFilter{Offset: 2, Limit: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != 3 {
		t.Fatalf("expected 3 beaches, got %d", len(page))
	}
	if total != len(c.All()) {
		t.Errorf("expected total %d, got %d", len(c.All()), total)
	}
	if page[0].Slug != c.All()[2].Slug {
		t.Errorf("expected page to start at the third beach")
	}

	empty, _, _ := c.List(ctx, ports.BeachFilter{Offset: 1000})
	if len(empty) != 0 {
		t.Errorf("expected empty page past the end, got %d", len(empty))
	}
}

func TestFindNearby(t *testing.T) {
	c := mustLoad(t)
	near, err := c.FindNearby(context.Background(), domain.GeoPoint{Lat: 7.79, Lon: 98.30}, 10000, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(near) < 2 {
		t.Fatalf("expected Nai Harn and Kata nearby, got %d", len(near))
	}
	for i := 1; i < len(near); i++ {
		if *near[i].Distance < *near[i-1].Distance {
			t.Error("expected results sorted by distance")
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing slug", "- name: Nowhere\n  location: {lat: 1, lon: 1}\n"},
		{"duplicate slug", "- slug: a\n  location: {lat: 1, lon: 1}\n- slug: A\n  location: {lat: 1, lon: 1}\n"},
		{"bad latitude", "- slug: a\n  location: {lat: 91, lon: 1}\n"},
		{"not a list", "slug: a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := staticdata.Parse([]byte(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestUpsert(t *testing.T) {
	c, err := staticdata.Parse([]byte("- slug: a\n  name: A\n  location: {lat: 1, lon: 1}\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ctx := context.Background()
	if err := c.Upsert(ctx, &domain.Beach{Slug: "b-beach", Name: "B"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	b, err := c.GetBySlug(ctx, "b beach")
	if err != nil || b.Name != "B" {
		t.Fatalf("expected upserted beach, got %+v, %v", b, err)
	}
	if len(c.All()) != 2 {
		t.Errorf("expected 2 beaches, got %d", len(c.All()))
	}
}
