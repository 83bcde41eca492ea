package overpass

import (
	"context"
	"sort"

	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/pkg/geospatial"
)

func featuresQuery(p domain.GeoPoint, radius float64) string {
	a := around(p, radius)
	return `[out:json][timeout:30];
(
  node["natural"="cape"]` + a + `;
  node["natural"="cliff"]` + a + `;
  way["natural"="cape"]` + a + `;
  way["natural"="cliff"]` + a + `;
  way["natural"="peninsula"]` + a + `;
  node["place"="island"]` + a + `;
  way["place"="island"]` + a + `;
  relation["place"="island"]` + a + `;
);
out center;`
}

func beachesQuery(p domain.GeoPoint, radius float64) string {
	a := around(p, radius)
	return `[out:json][timeout:30];
(
  way["natural"="beach"]` + a + `;
  node["natural"="beach"]` + a + `;
);
out center;`
}

// position returns a node's coordinates or a way/relation's centre.
func (el element) position() (domain.GeoPoint, bool) {
	if el.Type == "node" {
		return domain.GeoPoint{Lat: el.Lat, Lon: el.Lon}, true
	}
	if el.Center != nil {
		return domain.GeoPoint{Lat: el.Center.Lat, Lon: el.Center.Lon}, true
	}
	return domain.GeoPoint{}, false
}

func featureKind(tags map[string]string) (domain.FeatureKind, bool) {
	switch tags["natural"] {
	case "cape":
		return domain.FeatureCape, true
	case "cliff":
		return domain.FeatureCliff, true
	case "peninsula":
		return domain.FeaturePeninsula, true
	}
	if tags["place"] == "island" {
		return domain.FeatureIsland, true
	}
	return "", false
}

func nameOr(tags map[string]string, def string) string {
	if n := tags["name"]; n != "" {
		return n
	}
	return def
}

// FetchFeatures returns capes, cliffs, peninsulas and islands within radius
// of p, with bearing and distance measured from p.
func (c *Client) FetchFeatures(ctx context.Context, p domain.GeoPoint, radius float64) ([]domain.PointFeature, error) {
	resp, err := c.query(ctx, "features", featuresQuery(p, radius))
	if err != nil {
		return nil, err
	}

	var out []domain.PointFeature
	for _, el := range resp.Elements {
		loc, ok := el.position()
		if !ok {
			continue
		}
		kind, ok := featureKind(el.Tags)
		if !ok {
			continue
		}
		out = append(out, domain.PointFeature{
			Name:     nameOr(el.Tags, "Unnamed"),
			Location: loc,
			Kind:     kind,
			Bearing:  geospatial.Bearing(p, loc),
			Distance: geospatial.Haversine(p, loc),
		})
	}
	return out, nil
}

// FindBeachesNear returns mapped beaches within radius of p, nearest first.
func (c *Client) FindBeachesNear(ctx context.Context, p domain.GeoPoint, radius float64) ([]domain.BeachHit, error) {
	resp, err := c.query(ctx, "beaches", beachesQuery(p, radius))
	if err != nil {
		return nil, err
	}

	var out []domain.BeachHit
	for _, el := range resp.Elements {
		loc, ok := el.position()
		if !ok {
			continue
		}
		name := nameOr(el.Tags, "Unnamed Beach")
		out = append(out, domain.BeachHit{
			Name:        name,
			DisplayName: name,
			Location:    loc,
			Distance:    geospatial.Haversine(p, loc),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out, nil
}
