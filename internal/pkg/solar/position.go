package solar

import (
	"math"
	"time"

	"github.com/samirrijal/sundowner/internal/core/domain"
)

// Position returns the Sun's azimuth and altitude for an observer at lat/lon
// (degrees, east positive) at instant t. Refraction is not applied.
func Position(t time.Time, lat, lon float64) domain.SolarPosition {
	u := t.UTC()
	jc := JulianCentury(u)

	// mean longitude, mean anomaly, orbital eccentricity
	l0 := mod(280.46646+jc*(36000.76983+0.0003032*jc), 360)
	m := 357.52911 + jc*(35999.05029-0.0001537*jc)
	e := 0.016708634 - jc*(0.000042037+0.0000001267*jc)

	// equation of centre
	c := sinD(m)*(1.914602-jc*(0.004817+0.000014*jc)) +
		sinD(2*m)*(0.019993-0.000101*jc) +
		sinD(3*m)*0.000289

	omega := 125.04 - 1934.136*jc
	apparentLon := l0 + c - 0.00569 - 0.00478*sinD(omega)

	obliqMean := 23 + (26+(21.448-jc*(46.8150+jc*(0.00059-jc*0.001813)))/60)/60
	obliqCorr := obliqMean + 0.00256*cosD(omega)

	decl := rad2deg(math.Asin(clamp1(sinD(obliqCorr) * sinD(apparentLon))))

	// equation of time, minutes
	y := tanD(obliqCorr / 2)
	y *= y
	eqTime := 4 * rad2deg(
		y*sinD(2*l0)-
			2*e*sinD(m)+
			4*e*y*sinD(m)*cosD(2*l0)-
			0.5*y*y*sinD(4*l0)-
			1.25*e*e*sinD(2*m))

	clockMinutes := float64(u.Hour())*60 +
		float64(u.Minute()) +
		(float64(u.Second())+float64(u.Nanosecond())/1e9)/60
	tst := mod(clockMinutes+eqTime+4*lon, 1440)

	ha := tst/4 - 180
	if tst/4 < 0 {
		ha = tst/4 + 180
	}

	cosZenith := clamp1(sinD(lat)*sinD(decl) + cosD(lat)*cosD(decl)*cosD(ha))
	zenith := rad2deg(math.Acos(cosZenith))
	altitude := 90 - zenith

	var azimuth float64
	if sinZ := sinD(zenith); math.Abs(sinZ) < 0.0001 {
		// sun at zenith or nadir; azimuth is undefined
		azimuth = 180
	} else {
		arg := clamp1((sinD(lat)*cosD(zenith) - sinD(decl)) / (cosD(lat) * sinZ))
		acosArg := rad2deg(math.Acos(arg))
		if ha > 0 {
			azimuth = mod(acosArg+180, 360)
		} else {
			azimuth = mod(540-acosArg, 360)
		}
	}

	return domain.SolarPosition{
		Azimuth:  azimuth,
		Altitude: altitude,
		Time:     u,
	}
}
