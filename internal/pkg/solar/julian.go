// Package solar computes the Sun's apparent position and the instant of
// sunset for an observer, using the NOAA low-precision algorithm.
package solar

import (
	"math"
	"time"
)

// j2000 is the Julian day of the J2000.0 epoch.
const j2000 = 2451545.0

// JulianDay returns the Julian day number of t (interpreted in UTC),
// including the fractional day.
func JulianDay(t time.Time) float64 {
	u := t.UTC()
	year, month, day := u.Date()

	frac := float64(day) +
		float64(u.Hour())/24.0 +
		float64(u.Minute())/1440.0 +
		(float64(u.Second())+float64(u.Nanosecond())/1e9)/86400.0

	y := year
	m := int(month)
	if m <= 2 {
		y--
		m += 12
	}

	a := y / 100
	b := 2 - a + a/4

	return math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		frac + float64(b) - 1524.5
}

// JulianCentury returns Julian centuries since J2000.0.
func JulianCentury(t time.Time) float64 {
	return (JulianDay(t) - j2000) / 36525.0
}

func deg2rad(d float64) float64 { return d * math.Pi / 180.0 }
func rad2deg(r float64) float64 { return r * 180.0 / math.Pi }

func sinD(d float64) float64 { return math.Sin(deg2rad(d)) }
func cosD(d float64) float64 { return math.Cos(deg2rad(d)) }
func tanD(d float64) float64 { return math.Tan(deg2rad(d)) }

func clamp1(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}

// mod returns x modulo m with the sign of m, like a floored modulo.
func mod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}
