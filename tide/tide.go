// Package tide implements the IERS Conventions Chapter 7 solid-Earth-tide
// displacement model: degree-2/3 body tide, out-of-phase diurnal and
// semidiurnal corrections, the latitude-dependence-of-Love-number
// correction, and the frequency-dependent step-2 diurnal and long-period
// harmonic corrections.
package tide

import (
	"math"

	"github.com/corvin-k/gosolid/frame"
	"github.com/corvin-k/gosolid/timescale"
)

const deg2rad = math.Pi / 180.0

// step2lonTable holds the 5 long-period Doodson-argument harmonics:
// columns are s, h, p, N', ps, dR(ip), dT(ip), dR(op), dT(op). Transcribed
// from the IERS Conventions; summation follows row order to keep results
// bit-identical across runs.
var step2lonTable = [5][9]float64{
	{0, 0, 0, 1, 0, 0.47, 0.23, 0.16, 0.07},
	{0, 2, 0, 0, 0, -0.20, -0.12, -0.11, -0.05},
	{1, 0, -1, 0, 0, -0.11, -0.08, -0.09, -0.04},
	{2, 0, 0, 0, 0, -0.13, -0.11, -0.15, -0.07},
	{2, 0, 0, 1, 0, -0.05, -0.05, -0.06, -0.03},
}

// step2diuTable holds the 31 diurnal-band Doodson-argument harmonics:
// columns are s, h, p, N', ps, dR(ip), dT(ip), dR(op), dT(op). Transcribed
// from the IERS Conventions; summation follows row order to keep results
// bit-identical across runs.
var step2diuTable = [31][9]float64{
	{-3, 0, 2, 0, 0, -0.01, -0.01, 0.0, 0.0},
	{-3, 2, 0, 0, 0, -0.01, -0.01, 0.0, 0.0},
	{-2, 0, 1, -1, 0, -0.02, -0.01, 0.0, 0.0},
	{-2, 0, 1, 0, 0, -0.08, 0.00, 0.01, 0.01},
	{-2, 2, -1, 0, 0, -0.02, -0.01, 0.0, 0.0},
	{-1, 0, 0, -1, 0, -0.10, 0.00, 0.00, 0.00},
	{-1, 0, 0, 0, 0, -0.51, 0.00, -0.02, 0.03},
	{-1, 2, 0, 0, 0, 0.01, 0.0, 0.0, 0.0},
	{0, -2, 1, 0, 0, 0.01, 0.0, 0.0, 0.0},
	{0, 0, -1, 0, 0, 0.02, 0.01, 0.0, 0.0},
	{0, 0, 1, 0, 0, 0.06, 0.00, 0.00, 0.00},
	{0, 0, 1, 1, 0, 0.01, 0.0, 0.0, 0.0},
	{0, 2, -1, 0, 0, 0.01, 0.0, 0.0, 0.0},
	{1, -3, 0, 0, 1, -0.06, 0.00, 0.00, 0.00},
	{1, -2, 0, 1, 0, 0.01, 0.0, 0.0, 0.0},
	{1, -2, 0, 0, 0, -1.23, -0.07, 0.06, 0.01},
	{1, -1, 0, 0, -1, 0.02, 0.0, 0.0, 0.0},
	{1, -1, 0, 0, 1, 0.04, 0.0, 0.0, 0.0},
	{1, 0, 0, -1, 0, -0.22, 0.01, 0.01, 0.00},
	{1, 0, 0, 0, 0, 12.00, -0.78, -0.67, -0.03},
	{1, 0, 0, 1, 0, 1.73, -0.12, -0.10, 0.00},
	{1, 0, 0, 2, 0, -0.04, 0.0, 0.0, 0.0},
	{1, 1, 0, 0, -1, -0.50, -0.01, 0.03, 0.00},
	{1, 1, 0, 0, 1, 0.01, 0.0, 0.0, 0.0},
	{1, 1, 0, 1, -1, -0.01, 0.0, 0.0, 0.0},
	{1, 2, -2, 0, 0, -0.01, 0.0, 0.0, 0.0},
	{1, 2, 0, 0, 0, -0.11, 0.01, 0.01, 0.00},
	{2, -2, 1, 0, 0, -0.01, 0.0, 0.0, 0.0},
	{2, 0, -1, 0, 0, -0.02, 0.02, 0.0, 0.01},
	{3, 0, 0, 0, 0, 0.0, 0.01, 0.0, 0.01},
	{3, 0, 0, 1, 0, 0.0, 0.01, 0.0, 0.0},
}

// stationAngles carries the trigonometric quantities derived once per
// detide call from the station's ECEF position.
type stationAngles struct {
	rsta           float64
	sinphi, cosphi float64
	sinla, cosla   float64
}

func angles(xsta frame.XYZ) stationAngles {
	rsta := xsta.Norm()
	cosphi := math.Sqrt(xsta.X*xsta.X+xsta.Y*xsta.Y) / rsta
	return stationAngles{
		rsta:   rsta,
		sinphi: xsta.Z / rsta,
		cosphi: cosphi,
		sinla:  xsta.Y / cosphi / rsta,
		cosla:  xsta.X / cosphi / rsta,
	}
}

// st1isem computes the out-of-phase correction induced by mantle
// inelasticity in the semidiurnal band.
func st1isem(xsta, xsun, xmon frame.XYZ, fac2sun, fac2mon float64) frame.XYZ {
	const dhi = -0.0022
	const dli = -0.0007

	a := angles(xsta)
	costwola := a.cosla*a.cosla - a.sinla*a.sinla
	sintwola := 2.0 * a.cosla * a.sinla
	rmon := xmon.Norm()
	rsun := xsun.Norm()

	drsun := -3.0 / 4.0 * dhi * a.cosphi * a.cosphi * fac2sun *
		((xsun.X*xsun.X-xsun.Y*xsun.Y)*sintwola-2.0*xsun.X*xsun.Y*costwola) / (rsun * rsun)
	drmon := -3.0 / 4.0 * dhi * a.cosphi * a.cosphi * fac2mon *
		((xmon.X*xmon.X-xmon.Y*xmon.Y)*sintwola-2.0*xmon.X*xmon.Y*costwola) / (rmon * rmon)
	dnsun := 1.50 * dli * a.sinphi * a.cosphi * fac2sun *
		((xsun.X*xsun.X-xsun.Y*xsun.Y)*sintwola-2.0*xsun.X*xsun.Y*costwola) / (rsun * rsun)
	dnmon := 1.50 * dli * a.sinphi * a.cosphi * fac2mon *
		((xmon.X*xmon.X-xmon.Y*xmon.Y)*sintwola-2.0*xmon.X*xmon.Y*costwola) / (rmon * rmon)
	desun := -3.0 / 2.0 * dli * a.cosphi * fac2sun *
		((xsun.X*xsun.X-xsun.Y*xsun.Y)*costwola+2.0*xsun.X*xsun.Y*sintwola) / (rsun * rsun)
	demon := -3.0 / 2.0 * dli * a.cosphi * fac2mon *
		((xmon.X*xmon.X-xmon.Y*xmon.Y)*costwola+2.0*xmon.X*xmon.Y*sintwola) / (rmon * rmon)

	dr := drsun + drmon
	dn := dnsun + dnmon
	de := desun + demon

	return frame.XYZ{
		X: dr*a.cosla*a.cosphi - de*a.sinla - dn*a.sinphi*a.cosla,
		Y: dr*a.sinla*a.cosphi + de*a.cosla - dn*a.sinphi*a.sinla,
		Z: dr*a.sinphi + dn*a.cosphi,
	}
}

// st1idiu computes the out-of-phase correction induced by mantle
// inelasticity in the diurnal band.
func st1idiu(xsta, xsun, xmon frame.XYZ, fac2sun, fac2mon float64) frame.XYZ {
	const dhi = -0.0025
	const dli = -0.0007

	a := angles(xsta)
	cos2phi := a.cosphi*a.cosphi - a.sinphi*a.sinphi
	rmon := xmon.Norm()
	rsun := xsun.Norm()

	drsun := -3.0 * dhi * a.sinphi * a.cosphi * fac2sun * xsun.Z *
		(xsun.X*a.sinla-xsun.Y*a.cosla) / (rsun * rsun)
	drmon := -3.0 * dhi * a.sinphi * a.cosphi * fac2mon * xmon.Z *
		(xmon.X*a.sinla-xmon.Y*a.cosla) / (rmon * rmon)
	dnsun := -3.0 * dli * cos2phi * fac2sun * xsun.Z *
		(xsun.X*a.sinla-xsun.Y*a.cosla) / (rsun * rsun)
	dnmon := -3.0 * dli * cos2phi * fac2mon * xmon.Z *
		(xmon.X*a.sinla-xmon.Y*a.cosla) / (rmon * rmon)
	desun := -3.0 * dli * a.sinphi * fac2sun * xsun.Z *
		(xsun.X*a.cosla+xsun.Y*a.sinla) / (rsun * rsun)
	demon := -3.0 * dli * a.sinphi * fac2mon * xmon.Z *
		(xmon.X*a.cosla+xmon.Y*a.sinla) / (rmon * rmon)

	dr := drsun + drmon
	dn := dnsun + dnmon
	de := desun + demon

	return frame.XYZ{
		X: dr*a.cosla*a.cosphi - de*a.sinla - dn*a.sinphi*a.cosla,
		Y: dr*a.sinla*a.cosphi + de*a.cosla - dn*a.sinphi*a.sinla,
		Z: dr*a.sinphi + dn*a.cosphi,
	}
}

// st1l1 computes the correction induced by the latitude dependence of l(1),
// per Mathews et al. (1991), for both the diurnal and semidiurnal bands.
func st1l1(xsta, xsun, xmon frame.XYZ, fac2sun, fac2mon float64) frame.XYZ {
	const l1d = 0.0012
	const l1sd = 0.0024

	a := angles(xsta)
	rmon := xmon.Norm()
	rsun := xsun.Norm()
	cos2phi := a.cosphi*a.cosphi - a.sinphi*a.sinphi

	l1 := l1d
	dnsun := -l1 * a.sinphi * a.sinphi * fac2sun * xsun.Z *
		(xsun.X*a.cosla+xsun.Y*a.sinla) / (rsun * rsun)
	dnmon := -l1 * a.sinphi * a.sinphi * fac2mon * xmon.Z *
		(xmon.X*a.cosla+xmon.Y*a.sinla) / (rmon * rmon)
	desun := l1 * a.sinphi * cos2phi * fac2sun * xsun.Z *
		(xsun.X*a.sinla-xsun.Y*a.cosla) / (rsun * rsun)
	demon := l1 * a.sinphi * cos2phi * fac2mon * xmon.Z *
		(xmon.X*a.sinla-xmon.Y*a.cosla) / (rmon * rmon)
	de := 3.0 * (desun + demon)
	dn := 3.0 * (dnsun + dnmon)

	out := frame.XYZ{
		X: -de*a.sinla - dn*a.sinphi*a.cosla,
		Y: de*a.cosla - dn*a.sinphi*a.sinla,
		Z: dn * a.cosphi,
	}

	l1 = l1sd
	costwola := a.cosla*a.cosla - a.sinla*a.sinla
	sintwola := 2.0 * a.cosla * a.sinla
	dnsun = -l1 / 2.0 * a.sinphi * a.cosphi * fac2sun *
		((xsun.X*xsun.X-xsun.Y*xsun.Y)*costwola+2.0*xsun.X*xsun.Y*sintwola) / (rsun * rsun)
	dnmon = -l1 / 2.0 * a.sinphi * a.cosphi * fac2mon *
		((xmon.X*xmon.X-xmon.Y*xmon.Y)*costwola+2.0*xmon.X*xmon.Y*sintwola) / (rmon * rmon)
	desun = -l1 / 2.0 * a.sinphi * a.sinphi * a.cosphi * fac2sun *
		((xsun.X*xsun.X-xsun.Y*xsun.Y)*sintwola-2.0*xsun.X*xsun.Y*costwola) / (rsun * rsun)
	demon = -l1 / 2.0 * a.sinphi * a.sinphi * a.cosphi * fac2mon *
		((xmon.X*xmon.X-xmon.Y*xmon.Y)*sintwola-2.0*xmon.X*xmon.Y*costwola) / (rmon * rmon)
	de = 3.0 * (desun + demon)
	dn = 3.0 * (dnsun + dnmon)

	out.X -= de*a.sinla + dn*a.sinphi*a.cosla
	out.Y += de*a.cosla - dn*a.sinphi*a.sinla
	out.Z += dn * a.cosphi
	return out
}

// step2lon computes the frequency-dependent long-period correction, summing
// the 5 tabulated harmonics in program order.
func step2lon(xsta frame.XYZ, t float64) frame.XYZ {
	s := 218.31664563 + 481267.88194*t - 0.0014663889*t*t + 0.00000185139*t*t*t
	pr := 1.396971278*t + 0.000308889*t*t + 0.000000021*t*t*t + 0.000000007*t*t*t*t
	s += pr
	h := 280.46645 + 36000.7697489*t + 0.00030322222*t*t + 0.000000020*t*t*t - 0.00000000654*t*t*t*t
	p := 83.35324312 + 4069.01363525*t - 0.01032172222*t*t - 0.0000124991*t*t*t + 0.00000005263*t*t*t*t
	zns := 234.95544499 + 1934.13626197*t - 0.00207561111*t*t - 0.00000213944*t*t*t + 0.00000001650*t*t*t*t
	ps := 282.93734098 + 1.71945766667*t + 0.00045688889*t*t - 0.00000001778*t*t*t - 0.00000000334*t*t*t*t

	a := angles(xsta)

	s = math.Mod(s, 360.0)
	h = math.Mod(h, 360.0)
	p = math.Mod(p, 360.0)
	zns = math.Mod(zns, 360.0)
	ps = math.Mod(ps, 360.0)

	var drTot, dnTot float64
	var out frame.XYZ

	for _, row := range step2lonTable {
		thetaf := (row[0]*s + row[1]*h + row[2]*p + row[3]*zns + row[4]*ps) * deg2rad
		sinThetaf, cosThetaf := math.Sincos(thetaf)
		dr := row[5]*(3.0*a.sinphi*a.sinphi-1.0)/2.0*cosThetaf +
			row[7]*(3.0*a.sinphi*a.sinphi-1.0)/2.0*sinThetaf
		dn := row[6]*(a.cosphi*a.sinphi*2.0)*cosThetaf +
			row[8]*(a.cosphi*a.sinphi*2.0)*sinThetaf
		de := 0.0

		drTot += dr
		dnTot += dn
		out.X += dr*a.cosla*a.cosphi - de*a.sinla - dn*a.sinphi*a.cosla
		out.Y += dr*a.sinla*a.cosphi + de*a.cosla - dn*a.sinphi*a.sinla
		out.Z += dr*a.sinphi + dn*a.cosphi
	}

	out.X /= 1000.0
	out.Y /= 1000.0
	out.Z /= 1000.0
	return out
}

// step2diu computes the frequency-dependent diurnal correction, summing the
// 31 tabulated harmonics in program order.
func step2diu(xsta frame.XYZ, fhr, t float64) frame.XYZ {
	s := 218.31664563 + 481267.88194*t - 0.0014663889*t*t + 0.00000185139*t*t*t
	tau := fhr*15.0 + 280.4606184 + 36000.7700536*t + 0.00038793*t*t - 0.0000000258*t*t*t - s
	pr := 1.396971278*t + 0.000308889*t*t + 0.000000021*t*t*t + 0.000000007*t*t*t*t
	s += pr
	h := 280.46645 + 36000.7697489*t + 0.00030322222*t*t + 0.000000020*t*t*t - 0.00000000654*t*t*t*t
	p := 83.35324312 + 4069.01363525*t - 0.01032172222*t*t - 0.0000124991*t*t*t + 0.00000005263*t*t*t*t
	zns := 234.95544499 + 1934.13626197*t - 0.00207561111*t*t - 0.00000213944*t*t*t + 0.00000001650*t*t*t*t
	ps := 282.93734098 + 1.71945766667*t + 0.00045688889*t*t - 0.00000001778*t*t*t - 0.00000000334*t*t*t*t

	s = math.Mod(s, 360.0)
	tau = math.Mod(tau, 360.0)
	h = math.Mod(h, 360.0)
	p = math.Mod(p, 360.0)
	zns = math.Mod(zns, 360.0)
	ps = math.Mod(ps, 360.0)

	rsta := xsta.Norm()
	sinphi := xsta.Z / rsta
	cosphi := math.Sqrt(xsta.X*xsta.X+xsta.Y*xsta.Y) / rsta
	cos2phi := cosphi*cosphi - sinphi*sinphi
	cosla := xsta.X / cosphi / rsta
	sinla := xsta.Y / cosphi / rsta
	zla := math.Atan2(xsta.Y, xsta.X)

	var out frame.XYZ

	for _, row := range step2diuTable {
		thetaf := (tau + row[0]*s + row[1]*h + row[2]*p + row[3]*zns + row[4]*ps) * deg2rad
		sinArg, cosArg := math.Sincos(thetaf + zla)
		dr := row[5]*2.0*sinphi*cosphi*sinArg + row[6]*2.0*sinphi*cosphi*cosArg
		dn := row[7]*cos2phi*sinArg + row[8]*cos2phi*cosArg
		de := row[7]*sinphi*cosArg - row[8]*sinphi*sinArg

		out.X += dr*cosla*cosphi - de*sinla - dn*sinphi*cosla
		out.Y += dr*sinla*cosphi + de*cosla - dn*sinphi*sinla
		out.Z += dr*sinphi + dn*cosphi
	}

	out.X /= 1000.0
	out.Y /= 1000.0
	out.Z /= 1000.0
	return out
}

const (
	h20 = 0.6078
	l20 = 0.0847
	h3  = 0.292
	l3  = 0.015

	massRatioSun  = 332945.943062
	massRatioMoon = 0.012300034
	earthRadius   = 6378136.55
)

// Detide computes the solid-Earth-tide station displacement in ECEF meters
// at UTC epoch j, given the station's ECEF position and the Sun and Moon
// ECEF positions at the same epoch. It sums the degree-2/3 body tide, the
// out-of-phase diurnal and semidiurnal corrections, the latitude-dependence
// correction, and the step-2 frequency-dependent corrections, in that
// order. No permanent-tide subtraction is applied; the result is
// conventional tide-free, as delivered by the reference model.
func Detide(xsta frame.XYZ, j timescale.MJD, xsun, xmon frame.XYZ) frame.XYZ {
	tt := j.ToTT()
	dmjdtt := float64(tt.Day) + tt.Frac
	t := (dmjdtt - 51544.0) / 36525.0
	fhr := (dmjdtt - math.Floor(dmjdtt)) * 24.0

	rsta := xsta.Norm()
	rsun := xsun.Norm()
	rmon := xmon.Norm()
	scsun := xsta.Dot(xsun) / rsta / rsun
	scmon := xsta.Dot(xmon) / rsta / rmon

	cosphi := math.Sqrt(xsta.X*xsta.X+xsta.Y*xsta.Y) / rsta
	h2 := h20 - 0.0006*(1.0-3.0/2.0*cosphi*cosphi)
	l2 := l20 + 0.0002*(1.0-3.0/2.0*cosphi*cosphi)

	p2sun := 3.0*(h2/2.0-l2)*scsun*scsun - h2/2.0
	p2mon := 3.0*(h2/2.0-l2)*scmon*scmon - h2/2.0

	p3sun := 5.0/2.0*(h3-3.0*l3)*scsun*scsun*scsun + 3.0/2.0*(l3-h3)*scsun
	p3mon := 5.0/2.0*(h3-3.0*l3)*scmon*scmon*scmon + 3.0/2.0*(l3-h3)*scmon

	x2sun := 3.0 * l2 * scsun
	x2mon := 3.0 * l2 * scmon
	x3sun := 3.0 * l3 / 2.0 * (5.0*scsun*scsun - 1.0)
	x3mon := 3.0 * l3 / 2.0 * (5.0*scmon*scmon - 1.0)

	fac2sun := massRatioSun * earthRadius * math.Pow(earthRadius/rsun, 3)
	fac2mon := massRatioMoon * earthRadius * math.Pow(earthRadius/rmon, 3)
	fac3sun := fac2sun * (earthRadius / rsun)
	fac3mon := fac2mon * (earthRadius / rmon)

	dxtide := frame.XYZ{
		X: fac2sun*(x2sun*xsun.X/rsun+p2sun*xsta.X/rsta) +
			fac2mon*(x2mon*xmon.X/rmon+p2mon*xsta.X/rsta) +
			fac3sun*(x3sun*xsun.X/rsun+p3sun*xsta.X/rsta) +
			fac3mon*(x3mon*xmon.X/rmon+p3mon*xsta.X/rsta),
		Y: fac2sun*(x2sun*xsun.Y/rsun+p2sun*xsta.Y/rsta) +
			fac2mon*(x2mon*xmon.Y/rmon+p2mon*xsta.Y/rsta) +
			fac3sun*(x3sun*xsun.Y/rsun+p3sun*xsta.Y/rsta) +
			fac3mon*(x3mon*xmon.Y/rmon+p3mon*xsta.Y/rsta),
		Z: fac2sun*(x2sun*xsun.Z/rsun+p2sun*xsta.Z/rsta) +
			fac2mon*(x2mon*xmon.Z/rmon+p2mon*xsta.Z/rsta) +
			fac3sun*(x3sun*xsun.Z/rsun+p3sun*xsta.Z/rsta) +
			fac3mon*(x3mon*xmon.Z/rmon+p3mon*xsta.Z/rsta),
	}

	dxtide = dxtide.Add(st1idiu(xsta, xsun, xmon, fac2sun, fac2mon))
	dxtide = dxtide.Add(st1isem(xsta, xsun, xmon, fac2sun, fac2mon))
	dxtide = dxtide.Add(st1l1(xsta, xsun, xmon, fac2sun, fac2mon))
	dxtide = dxtide.Add(step2diu(xsta, fhr, t))
	dxtide = dxtide.Add(step2lon(xsta, t))

	return dxtide
}
