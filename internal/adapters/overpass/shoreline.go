package overpass

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samirrijal/sundowner/internal/core/domain"
)

func around(p domain.GeoPoint, radius float64) string {
	return fmt.Sprintf("(around:%.0f,%.6f,%.6f)", radius, p.Lat, p.Lon)
}

func coastlineQuery(p domain.GeoPoint, radius float64) string {
	a := around(p, radius)
	return `[out:json][timeout:30];
(
  way["natural"="coastline"]` + a + `;
);
out body;
>;
out skel qt;`
}

func waterBodyQuery(p domain.GeoPoint, radius float64) string {
	a := around(p, radius)
	return `[out:json][timeout:30];
(
  way["natural"="water"]` + a + `;
  way["water"="lake"]` + a + `;
  relation["natural"="water"]` + a + `;
);
out body;
>;
out skel qt;`
}

func waterCentreQuery(p domain.GeoPoint, radius float64) string {
	a := around(p, radius)
	return `[out:json][timeout:30];
(
  way["natural"="water"]` + a + `;
  relation["natural"="water"]` + a + `;
);
out center;`
}

// FetchShoreline returns ocean coastline within radius of p. When there is
// none it falls back to water-body outlines and looks up the water body's
// centre within twice the radius. A failed ocean query still tries the
// fallback; the error is only returned when both fail.
func (c *Client) FetchShoreline(ctx context.Context, p domain.GeoPoint, radius float64) (domain.ShorelineGeometry, error) {
	ocean, oceanErr := c.query(ctx, "coastline", coastlineQuery(p, radius))
	if oceanErr == nil {
		if ways := parseWays(ocean); len(ways) > 0 {
			return domain.ShorelineGeometry{Polylines: ways, Source: domain.SourceOcean}, nil
		}
	} else {
		slog.WarnContext(ctx, "coastline query failed, trying water bodies", "error", oceanErr)
	}

	water, err := c.query(ctx, "water_body", waterBodyQuery(p, radius))
	if err != nil {
		if oceanErr != nil {
			return domain.ShorelineGeometry{}, oceanErr
		}
		return domain.ShorelineGeometry{}, err
	}
	ways := parseWays(water)
	if len(ways) == 0 {
		return domain.ShorelineGeometry{}, nil
	}

	geom := domain.ShorelineGeometry{Polylines: ways, Source: domain.SourceWaterBody}
	centre, err := c.waterCentre(ctx, p, 2*radius)
	if err != nil {
		slog.WarnContext(ctx, "water body centre lookup failed", "error", err)
	}
	geom.Centroid = centre
	return geom, nil
}

func (c *Client) waterCentre(ctx context.Context, p domain.GeoPoint, radius float64) (*domain.GeoPoint, error) {
	resp, err := c.query(ctx, "water_centre", waterCentreQuery(p, radius))
	if err != nil {
		return nil, err
	}
	for _, el := range resp.Elements {
		if el.Center != nil {
			return &domain.GeoPoint{Lat: el.Center.Lat, Lon: el.Center.Lon}, nil
		}
		if el.Type == "node" {
			return &domain.GeoPoint{Lat: el.Lat, Lon: el.Lon}, nil
		}
	}
	return nil, nil
}

// parseWays resolves way node references into polylines. Nodes missing from
// the response are skipped, and ways left with fewer than two points dropped.
func parseWays(resp *response) []domain.Polyline {
	nodes := make(map[int64]domain.GeoPoint)
	var ways [][]int64
	for _, el := range resp.Elements {
		switch el.Type {
		case "node":
			nodes[el.ID] = domain.GeoPoint{Lat: el.Lat, Lon: el.Lon}
		case "way":
			ways = append(ways, el.Nodes)
		}
	}

	var out []domain.Polyline
	for _, refs := range ways {
		pl := make(domain.Polyline, 0, len(refs))
		for _, id := range refs {
			if pt, ok := nodes[id]; ok {
				pl = append(pl, pt)
			}
		}
		if len(pl) >= 2 {
			out = append(out, pl)
		}
	}
	return out
}
