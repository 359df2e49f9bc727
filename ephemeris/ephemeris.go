// Package ephemeris computes low-precision geocentric Sun and Moon
// positions in Earth-Centered Earth-Fixed coordinates, sufficient for
// solid-Earth-tide forcing. Both series are truncated closed forms valid
// for the supported date range; neither consults a planetary ephemeris
// file.
package ephemeris

import (
	"math"

	"github.com/corvin-k/gosolid/frame"
	"github.com/corvin-k/gosolid/timescale"
)

const deg2rad = math.Pi / 180.0

// obliquityJ2000 is the obliquity of the J2000 ecliptic, in radians.
const obliquityJ2000 = 23.43929111 * deg2rad

// SunECEF returns the geocentric position of the Sun in ECEF meters for
// the UTC epoch j, using the mean-elements series of Montenbruck & Pfleger,
// "Astronomy on the Personal Computer", 4th ed., eq. 3.43/3.46.
func SunECEF(j timescale.MJD) frame.XYZ {
	sobe, cobe := math.Sincos(obliquityJ2000)

	const raanArgPeri = 282.9400

	t := j.JulianCenturiesTT()

	emDeg := 357.5256 + 35999.049*t
	em := emDeg * deg2rad
	em2 := em + em

	r := (149.619 - 2.499*math.Cos(em) - 0.021*math.Cos(em2)) * 1.0e9
	slond := raanArgPeri + emDeg + (6892.0*math.Sin(em)+72.0*math.Sin(em2))/3600.0
	slond += 1.3972 * t

	slon := slond * deg2rad
	sslon, cslon := math.Sin(slon), math.Cos(slon)

	rs := frame.XYZ{
		X: r * cslon,
		Y: r * sslon * cobe,
		Z: r * sslon * sobe,
	}

	return rs.Rot3(j.GreenwichHourAngle())
}

// MoonECEF returns the geocentric position of the Moon in ECEF meters for
// the UTC epoch j, using the MiniMoon series of Montenbruck & Pfleger,
// "Astronomy on the Personal Computer", 4th ed., §3.2 (eq. 3.47-3.51).
func MoonECEF(j timescale.MJD) frame.XYZ {
	t := j.JulianCenturiesTT()

	el0 := 218.31617 + 481267.88088*t - 1.3972*t
	el := 134.96292 + 477198.86753*t
	elp := 357.52543 + 35999.04944*t
	f := 93.27283 + 483202.01873*t
	d := 297.85027 + 445267.11135*t

	sinDeg := func(x float64) float64 { return math.Sin(x * deg2rad) }

	selond := el0 +
		22640.0/3600.0*sinDeg(el) +
		769.0/3600.0*sinDeg(el+el) -
		4586.0/3600.0*sinDeg(el-d-d) +
		2370.0/3600.0*sinDeg(d+d) -
		668.0/3600.0*sinDeg(elp) -
		412.0/3600.0*sinDeg(f+f) -
		212.0/3600.0*sinDeg(el+el-d-d) -
		206.0/3600.0*sinDeg(el+elp-d-d) +
		192.0/3600.0*sinDeg(el+d+d) -
		165.0/3600.0*sinDeg(elp-d-d) +
		148.0/3600.0*sinDeg(el-elp) -
		125.0/3600.0*sinDeg(d) -
		110.0/3600.0*sinDeg(el+elp) -
		55.0/3600.0*sinDeg(f+f-d-d)

	q := 412.0/3600.0*sinDeg(f+f) + 541.0/3600.0*sinDeg(elp)

	selatd := 18520.0/3600.0*sinDeg(f+selond-el0+q) -
		526.0/3600.0*sinDeg(f-d-d) +
		44.0/3600.0*sinDeg(el+f-d-d) -
		31.0/3600.0*sinDeg(-el+f-d-d) -
		25.0/3600.0*sinDeg(-el-el+f) -
		23.0/3600.0*sinDeg(elp+f-d-d) +
		21.0/3600.0*sinDeg(-el+f) +
		11.0/3600.0*sinDeg(-elp+f-d-d)

	cosDeg := func(x float64) float64 { return math.Cos(x * deg2rad) }

	rse := 385000.0*1000.0 -
		20905.0*1000.0*cosDeg(el) -
		3699.0*1000.0*cosDeg(d+d-el) -
		2956.0*1000.0*cosDeg(d+d) -
		570.0*1000.0*cosDeg(el+el) +
		246.0*1000.0*cosDeg(el+el-d-d) -
		205.0*1000.0*cosDeg(elp-d-d) -
		171.0*1000.0*cosDeg(el+d+d) -
		152.0*1000.0*cosDeg(el+elp-d-d)

	selond += 1.3972 * t

	sselat, cselat := math.Sincos(selatd * deg2rad)
	sselon, cselon := math.Sincos(selond * deg2rad)

	eclip := frame.XYZ{
		X: rse * cselon * cselat,
		Y: rse * sselon * cselat,
		Z: rse * sselat,
	}

	rm := eclip.Rot1(-obliquityJ2000)
	return rm.Rot3(j.GreenwichHourAngle())
}
