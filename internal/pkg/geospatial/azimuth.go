package geospatial

import "math"

// Normalize360 maps any angle in degrees into [0,360).
func Normalize360(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

// AngleDiff returns the signed minimal difference a-b in degrees, in [-180,180).
func AngleDiff(a, b float64) float64 {
	return Normalize360(a-b+180) - 180
}

// InRange reports whether az lies in the clockwise interval [start, end],
// inclusive at both ends. When start > end the interval wraps through 0°.
func InRange(az, start, end float64) bool {
	az = Normalize360(az)
	start = Normalize360(start)
	end = Normalize360(end)
	if start <= end {
		return az >= start && az <= end
	}
	return az >= start || az <= end
}

// ClockwiseSpan returns the clockwise angular distance from start to end in [0,360).
func ClockwiseSpan(start, end float64) float64 {
	return Normalize360(end - start)
}

// CircularMean returns the mean direction of the given azimuths in [0,360).
// An empty slice yields 0.
func CircularMean(azimuths []float64) float64 {
	var sumSin, sumCos float64
	for _, a := range azimuths {
		sumSin += math.Sin(toRad(a))
		sumCos += math.Cos(toRad(a))
	}
	return Normalize360(toDeg(math.Atan2(sumSin, sumCos)))
}

// CircularDispersion returns the largest absolute minimal deviation of any
// azimuth from mean.
func CircularDispersion(azimuths []float64, mean float64) float64 {
	var maxDev float64
	for _, a := range azimuths {
		if d := math.Abs(AngleDiff(a, mean)); d > maxDev {
			maxDev = d
		}
	}
	return maxDev
}

var compassPoints = [16]string{
	"north", "north-northeast", "northeast", "east-northeast",
	"east", "east-southeast", "southeast", "south-southeast",
	"south", "south-southwest", "southwest", "west-southwest",
	"west", "west-northwest", "northwest", "north-northwest",
}

// DirectionName returns the nearest 16-point compass name for an azimuth.
func DirectionName(az float64) string {
	idx := int(math.Round(Normalize360(az)/22.5)) % 16
	return compassPoints[idx]
}
