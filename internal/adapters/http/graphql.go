package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/core/ports"
	"github.com/samirrijal/sundowner/internal/core/usecases"
)

// buildSchema creates the GraphQL schema wired to our services. Object
// fields resolve through the json tags of the domain types.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	solarPositionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "SolarPosition",
		Fields: graphql.Fields{
			"azimuth":  &graphql.Field{Type: graphql.Float},
			"altitude": &graphql.Field{Type: graphql.Float},
			"time":     &graphql.Field{Type: graphql.DateTime},
		},
	})

	viewWindowType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ViewWindow",
		Fields: graphql.Fields{
			"facing_azimuth": &graphql.Field{Type: graphql.Float},
			"half_width":     &graphql.Field{Type: graphql.Float},
			"confidence":     &graphql.Field{Type: graphql.String},
			"start":          &graphql.Field{Type: graphql.Float},
			"end":            &graphql.Field{Type: graphql.Float},
		},
	})

	obstructionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Obstruction",
		Fields: graphql.Fields{
			"start_az": &graphql.Field{Type: graphql.Float},
			"end_az":   &graphql.Field{Type: graphql.Float},
			"label":    &graphql.Field{Type: graphql.String},
		},
	})

	scenicType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ScenicFeature",
		Fields: graphql.Fields{
			"center_az":   &graphql.Field{Type: graphql.Float},
			"half_width":  &graphql.Field{Type: graphql.Float},
			"label":       &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
		},
	})

	verdictType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Verdict",
		Fields: graphql.Fields{
			"over_water":       &graphql.Field{Type: graphql.Boolean},
			"blocking_reason":  &graphql.Field{Type: graphql.String},
			"side":             &graphql.Field{Type: graphql.String},
			"scenic_alignment": &graphql.Field{Type: graphql.String},
			"scenic":           &graphql.Field{Type: scenicType},
		},
	})

	featureType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PointFeature",
		Fields: graphql.Fields{
			"name":     &graphql.Field{Type: graphql.String},
			"kind":     &graphql.Field{Type: graphql.String},
			"location": &graphql.Field{Type: geoPointType},
			"bearing":  &graphql.Field{Type: graphql.Float},
			"distance": &graphql.Field{Type: graphql.Float},
		},
	})

	advisoryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Advisory",
		Fields: graphql.Fields{
			"kind":    &graphql.Field{Type: graphql.String},
			"message": &graphql.Field{Type: graphql.String},
			"feature": &graphql.Field{Type: featureType},
		},
	})

	timezoneType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Timezone",
		Fields: graphql.Fields{
			"offset_hours": &graphql.Field{Type: graphql.Float},
			"id":           &graphql.Field{Type: graphql.String},
			"source":       &graphql.Field{Type: graphql.String},
		},
	})

	beachType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Beach",
		Fields: graphql.Fields{
			"slug":             &graphql.Field{Type: graphql.String},
			"name":             &graphql.Field{Type: graphql.String},
			"country":          &graphql.Field{Type: graphql.String},
			"region":           &graphql.Field{Type: graphql.String},
			"location":         &graphql.Field{Type: geoPointType},
			"utc_offset":       &graphql.Field{Type: graphql.Float},
			"ocean_view_start": &graphql.Field{Type: graphql.Float},
			"ocean_view_end":   &graphql.Field{Type: graphql.Float},
			"obstructions":     &graphql.Field{Type: graphql.NewList(obstructionType)},
			"scenic_features":  &graphql.Field{Type: graphql.NewList(scenicType)},
			"facing_direction": &graphql.Field{Type: graphql.String},
			"notes":            &graphql.Field{Type: graphql.String},
		},
	})

	reportType := graphql.NewObject(graphql.ObjectConfig{
		Name: "SunsetReport",
		Fields: graphql.Fields{
			"id":               &graphql.Field{Type: graphql.String},
			"name":             &graphql.Field{Type: graphql.String},
			"beach_slug":       &graphql.Field{Type: graphql.String},
			"location":         &graphql.Field{Type: geoPointType},
			"date":             &graphql.Field{Type: graphql.String},
			"sunset":           &graphql.Field{Type: solarPositionType},
			"local_time":       &graphql.Field{Type: graphql.String},
			"day_length_hours": &graphql.Field{Type: graphql.Float},
			"timezone":         &graphql.Field{Type: timezoneType},
			"direction":        &graphql.Field{Type: graphql.String},
			"facing":           &graphql.Field{Type: graphql.String},
			"water_type":       &graphql.Field{Type: graphql.String},
			"window":           &graphql.Field{Type: viewWindowType},
			"verdict":          &graphql.Field{Type: verdictType},
			"explanation":      &graphql.Field{Type: graphql.String},
			"advisories":       &graphql.Field{Type: graphql.NewList(advisoryType)},
			"source":           &graphql.Field{Type: graphql.String},
		},
	})

	shorelineType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ShorelineAnalysis",
		Fields: graphql.Fields{
			"location":          &graphql.Field{Type: geoPointType},
			"window":            &graphql.Field{Type: viewWindowType},
			"facing_direction":  &graphql.Field{Type: graphql.String},
			"coastline_bearing": &graphql.Field{Type: graphql.Float},
			"segments_analyzed": &graphql.Field{Type: graphql.Int},
			"points_found":      &graphql.Field{Type: graphql.Int},
			"source":            &graphql.Field{Type: graphql.String},
			"radius_m":          &graphql.Field{Type: graphql.Float},
			"advisories":        &graphql.Field{Type: graphql.NewList(advisoryType)},
		},
	})

	pointArgs := graphql.FieldConfigArgument{
		"lat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
		"lon": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
	}
	withArgs := func(extra graphql.FieldConfigArgument) graphql.FieldConfigArgument {
		args := graphql.FieldConfigArgument{}
		for k, v := range pointArgs {
			args[k] = v
		}
		for k, v := range extra {
			args[k] = v
		}
		return args
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"sunset": &graphql.Field{
				Type:        reportType,
				Description: "Check whether sunset at a shore point is seen over water",
				Args: withArgs(graphql.FieldConfigArgument{
					"date": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"name": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				}),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					date, err := usecases.ParseDate(p.Args["date"].(string))
					if err != nil {
						return nil, err
					}
					pt := argPoint(p)
					return deps.Sunset.CheckLocation(p.Context, pt, date, p.Args["name"].(string))
				},
			},
			"beachSunset": &graphql.Field{
				Type:        reportType,
				Description: "Check a curated beach",
				Args: graphql.FieldConfigArgument{
					"slug": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"date": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					date, err := usecases.ParseDate(p.Args["date"].(string))
					if err != nil {
						return nil, err
					}
					return deps.Sunset.CheckBeach(p.Context, domain.NormalizeSlug(p.Args["slug"].(string)), date)
				},
			},
			"solarPosition": &graphql.Field{
				Type:        solarPositionType,
				Description: "Sun azimuth and altitude at an RFC 3339 instant",
				Args: withArgs(graphql.FieldConfigArgument{
					"time": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				}),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					t, err := time.Parse(time.RFC3339, p.Args["time"].(string))
					if err != nil {
						return nil, err
					}
					return deps.Solar.Position(argPoint(p), t)
				},
			},
			"shoreline": &graphql.Field{
				Type:        shorelineType,
				Description: "View window inferred from map geometry",
				Args:        pointArgs,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return deps.Sunset.AnalyzeShoreline(p.Context, argPoint(p))
				},
			},
			"beaches": &graphql.Field{
				Type:        graphql.NewList(beachType),
				Description: "List or search curated beaches",
				Args: graphql.FieldConfigArgument{
					"q":          &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"country":    &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"sunsetOnly": &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
					"limit":      &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 50},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					beaches, _, err := deps.Beaches.List(p.Context, ports.BeachFilter{
						Query:      p.Args["q"].(string),
						Country:    p.Args["country"].(string),
						SunsetOnly: p.Args["sunsetOnly"].(bool),
						Limit:      p.Args["limit"].(int),
					})
					return beaches, err
				},
			},
			"beach": &graphql.Field{
				Type:        beachType,
				Description: "A curated beach by slug",
				Args: graphql.FieldConfigArgument{
					"slug": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					b, err := deps.Beaches.Get(p.Context, p.Args["slug"].(string))
					if errors.Is(err, domain.ErrBeachNotFound) {
						return nil, nil
					}
					return b, err
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

func argPoint(p graphql.ResolveParams) domain.GeoPoint {
	return domain.GeoPoint{Lat: p.Args["lat"].(float64), Lon: p.Args["lon"].(float64)}
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string         `json:"query"`
		OperationName string         `json:"operationName"`
		Variables     map[string]any `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Query == "" {
			return errBadRequest(c, "query is required")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
