// Command sunsetcheck reports whether the sunset at a beach is seen over
// water.
//
//	sunsetcheck "Nai Harn Beach"
//	sunsetcheck "Santa Monica" --date 2025-06-21
//	sunsetcheck --lat 7.7677 --lon 98.3036 --json
//	sunsetcheck --beach nai_harn
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/samirrijal/sundowner/internal/bootstrap"
	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/core/usecases"
	"github.com/samirrijal/sundowner/internal/pkg/config"
	"github.com/samirrijal/sundowner/internal/pkg/logging"
	"github.com/samirrijal/sundowner/internal/pkg/render"
)

type options struct {
	date    string
	lat     string
	lon     string
	beach   string
	query   string
	json    bool
	verbose bool
}

// parseArgs accepts flags before and after the free-text beach name.
func parseArgs(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("sunsetcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.date, "date", "", "date (YYYY-MM-DD), default: tomorrow")
	fs.StringVar(&o.lat, "lat", "", "latitude")
	fs.StringVar(&o.lon, "lon", "", "longitude")
	fs.StringVar(&o.beach, "beach", "", "curated beach slug")
	fs.BoolVar(&o.json, "json", false, "JSON output")
	fs.BoolVar(&o.verbose, "v", false, "log provider calls")
	fs.Usage = func() {
		fmt.Fprintln(stderr, `usage: sunsetcheck [flags] ["beach name"]`)
		fs.PrintDefaults()
	}

	var words []string
	for {
		if err := fs.Parse(args); err != nil {
			return o, err
		}
		if fs.NArg() == 0 {
			break
		}
		words = append(words, fs.Arg(0))
		args = fs.Args()[1:]
	}
	o.query = strings.TrimSpace(strings.Join(words, " "))

	if (o.lat == "") != (o.lon == "") {
		return o, errors.New("--lat and --lon must be given together")
	}
	if o.lat == "" && o.beach == "" && o.query == "" {
		fs.Usage()
		return o, flag.ErrHelp
	}
	return o, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	o, err := parseArgs(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 2
	}

	cfg, err := config.Load("sundowner-cli")
	if err != nil {
		fmt.Fprintf(stderr, "Error: config: %v\n", err)
		return 1
	}
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	logging.Setup(logging.Options{Level: level, Format: "text"})

	date, err := resolveDate(o.date)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stack, err := bootstrap.Build(ctx, cfg, bootstrap.Options{})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer stack.Close()

	report, err := check(ctx, stack, o, date)
	var ns *domain.NoSunsetError
	switch {
	case errors.As(err, &ns):
		if o.json {
			writeJSON(stdout, map[string]any{"no_sunset": true, "condition": ns.Condition, "date": ns.Date.Format(time.DateOnly), "message": ns.Error()})
		} else {
			render.NoSunset(stdout, ns)
		}
		return 0
	case errors.Is(err, domain.ErrNoShorelineFound):
		fmt.Fprintf(stderr, "\n%v\n", err)
		fmt.Fprintln(stderr, "  Try searching for a specific beach name, or use --lat/--lon for a coastal location.")
		return 1
	case err != nil:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if o.json {
		writeJSON(stdout, report)
	} else {
		render.Report(stdout, report)
	}
	return 0
}

func resolveDate(s string) (time.Time, error) {
	if s == "" {
		y, m, d := time.Now().AddDate(0, 0, 1).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return usecases.ParseDate(s)
}

// check picks the report source: coordinates, an explicit slug, a query
// naming a curated beach, or a mapped beach found by name.
func check(ctx context.Context, stack *bootstrap.Stack, o options, date time.Time) (*domain.SunsetReport, error) {
	if o.lat != "" {
		lat, err := usecases.ParseCoordinate(o.lat)
		if err != nil {
			return nil, err
		}
		lon, err := usecases.ParseCoordinate(o.lon)
		if err != nil {
			return nil, err
		}
		return stack.Sunset.CheckLocation(ctx, domain.GeoPoint{Lat: lat, Lon: lon}, date, o.query)
	}
	if o.beach != "" {
		return stack.Sunset.CheckBeach(ctx, domain.NormalizeSlug(o.beach), date)
	}

	if _, err := stack.Catalog.GetBySlug(ctx, domain.NormalizeSlug(o.query)); err == nil {
		return stack.Sunset.CheckBeach(ctx, domain.NormalizeSlug(o.query), date)
	}
	slog.Debug("no curated beach, searching map data", "query", o.query)

	hit, err := stack.Beaches.Locate(ctx, o.query)
	if err != nil {
		return nil, err
	}
	return stack.Sunset.CheckLocation(ctx, hit.Location, date, hit.Name)
}

func writeJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
