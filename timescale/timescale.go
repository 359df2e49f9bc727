// Package timescale converts between civil calendar dates, Modified Julian
// Date, and the UTC/TAI/TT time scales, and derives the Greenwich hour angle
// used to rotate inertial ephemeris vectors into Earth-fixed coordinates.
//
// The leap-second table entries must not be reordered or rounded; lookups
// binary-search the tabulated values as published.
package timescale

import (
	"math"
	"sort"
)

// SecPerDay is the number of seconds in a civil day.
const SecPerDay = 86400.0

const taiToTTSec = 32.184

// leapSecondsMin is the TAI-UTC offset in force for every UTC day before the
// first table entry (1972 JAN 1).
const leapSecondsMin = 10.0

// leapSecondEpochs holds the integer MJD of each UTC day on which a new
// leap second took effect, in increasing order. TAI-UTC for the i-th entry
// is leapSecondsMin + i seconds. Source: http://maia.usno.navy.mil/ser7/tai-utc.dat
var leapSecondEpochs = []int{
	41317, // 1972 JAN  1 = JD 2441317.5  TAI-UTC= 10.0s
	41499, // 1972 JUL  1 = JD 2441499.5  TAI-UTC= 11.0s
	41683, // 1973 JAN  1 = JD 2441683.5  TAI-UTC= 12.0s
	42048, // 1974 JAN  1 = JD 2442048.5  TAI-UTC= 13.0s
	42413, // 1975 JAN  1 = JD 2442413.5  TAI-UTC= 14.0s
	42778, // 1976 JAN  1 = JD 2442778.5  TAI-UTC= 15.0s
	43144, // 1977 JAN  1 = JD 2443144.5  TAI-UTC= 16.0s
	43509, // 1978 JAN  1 = JD 2443509.5  TAI-UTC= 17.0s
	43874, // 1979 JAN  1 = JD 2443874.5  TAI-UTC= 18.0s
	44239, // 1980 JAN  1 = JD 2444239.5  TAI-UTC= 19.0s
	44786, // 1981 JUL  1 = JD 2444786.5  TAI-UTC= 20.0s
	45151, // 1982 JUL  1 = JD 2445151.5  TAI-UTC= 21.0s
	45516, // 1983 JUL  1 = JD 2445516.5  TAI-UTC= 22.0s
	46247, // 1985 JUL  1 = JD 2446247.5  TAI-UTC= 23.0s
	47161, // 1988 JAN  1 = JD 2447161.5  TAI-UTC= 24.0s
	47892, // 1990 JAN  1 = JD 2447892.5  TAI-UTC= 25.0s
	48357, // 1991 JAN  1 = JD 2448257.5  TAI-UTC= 26.0s (tabulated as 48357, not 48257, as in the reference table)
	48804, // 1992 JUL  1 = JD 2448804.5  TAI-UTC= 27.0s
	49169, // 1993 JUL  1 = JD 2449169.5  TAI-UTC= 28.0s
	49534, // 1994 JUL  1 = JD 2449534.5  TAI-UTC= 29.0s
	50083, // 1996 JAN  1 = JD 2450083.5  TAI-UTC= 30.0s
	50630, // 1997 JUL  1 = JD 2450630.5  TAI-UTC= 31.0s
	51179, // 1999 JAN  1 = JD 2451179.5  TAI-UTC= 32.0s
	53736, // 2006 JAN  1 = JD 2453736.5  TAI-UTC= 33.0s
	54832, // 2009 JAN  1 = JD 2454832.5  TAI-UTC= 34.0s
	56109, // 2012 JUL  1 = JD 2456109.5  TAI-UTC= 35.0s
	57204, // 2015 JUL  1 = JD 2457204.5  TAI-UTC= 36.0s
	57754, // 2017 JAN  1 = JD 2457754.5  TAI-UTC= 37.0s
}

// LeapSecondOffset returns TAI-UTC, in seconds, for the UTC day identified
// by the integer Modified Julian Date mjd. Dates before the table clamp to
// the initial 10s offset; dates after the last entry clamp to the latest
// known offset.
func LeapSecondOffset(mjd int) float64 {
	// index of the last epoch <= mjd; clamped to the table at both ends.
	idx := sort.SearchInts(leapSecondEpochs, mjd+1) - 1
	if idx < 0 {
		return leapSecondsMin
	}
	return leapSecondsMin + float64(idx)
}

// CivilDate is a calendar date and time of day.
type CivilDate struct {
	Year, Month, Day int
	Hour, Minute     int
	Second           float64
}

// SecondsOfDay returns the time-of-day component in seconds past midnight.
func (c CivilDate) SecondsOfDay() float64 {
	return float64(c.Hour)*3600.0 + float64(c.Minute)*60.0 + c.Second
}

// ToMJD converts a civil date to Modified Julian Date, split into an
// integer day and a day fraction.
func (c CivilDate) ToMJD() MJD {
	y, m := c.Year, c.Month
	if m <= 2 {
		y--
		m += 12
	}
	it1 := int(365.25 * float64(y))
	it2 := int(30.6001 * float64(m+1))
	mjd := it1 + it2 + c.Day - 679019
	fmjd := c.SecondsOfDay() / SecPerDay
	return MJD{Day: mjd, Frac: fmjd}
}

// MJD is a Modified Julian Date split into an integer day count and a
// fractional day, matching the precision-preserving split used throughout
// the tide kernel.
type MJD struct {
	Day  int
	Frac float64
}

// RJD returns the corresponding (ordinary) Julian Date.
func (m MJD) RJD() float64 {
	return float64(m.Day) + m.Frac + 2400000.5
}

// ToCivil converts back to a calendar date and time of day.
func (m MJD) ToCivil() CivilDate {
	ia := int(m.RJD() + 0.5)
	ib := ia + 1537
	ic := int((float64(ib) - 122.1) / 365.25)
	idd := int(365.25 * float64(ic))
	ie := int(float64(ib-idd) / 30.6001)

	it1 := int(float64(ie) * 30.6001)
	day := ib - idd - it1 + int(m.Frac)
	it2 := int(float64(ie) / 14.0)
	month := ie - 1 - 12*it2
	it3 := (7 + month) / 10
	year := ic - 4715 - it3

	tmp := m.Frac * 24.0
	hour := int(tmp)
	tmp = (tmp - float64(hour)) * 60.0
	minute := int(tmp)
	sec := (tmp - float64(minute)) * 60.0

	return CivilDate{Year: year, Month: month, Day: day, Hour: hour, Minute: minute, Second: sec}
}

// GreenwichHourAngle returns the Greenwich hour angle in radians, reduced to
// [0, 2π), for this UTC epoch. Follows Montenbruck & Pfleger, "Astronomy on
// the Personal Computer", 4th ed., eq. 2.85.
func (m MJD) GreenwichHourAngle() float64 {
	tsecutc := m.Frac * SecPerDay
	fmjdutc := tsecutc / SecPerDay

	d := float64(m.Day-51544) + (fmjdutc - 0.50)
	ghad := 280.460618375040 + 360.98564736628620*d

	ii := int(ghad / 360.0)
	ghar := (ghad - float64(ii)*360.0) * deg2rad

	twoPi := 2 * math.Pi
	ghar -= math.Floor(ghar/twoPi) * twoPi
	return ghar
}

const deg2rad = math.Pi / 180.0

// utcDayAdjust folds a seconds-of-day value that has drifted outside
// [0, 86400) back onto the correct MJD, returning the adjusted day and the
// in-range seconds value.
func utcDayAdjust(day int, utcSec float64) (int, float64) {
	adjustment := int(math.Floor(utcSec / SecPerDay))
	return day + adjustment, utcSec - float64(adjustment)*SecPerDay
}

// UTCToTAI converts a UTC instant, given as an integer MJD and seconds of
// day, to TAI seconds of day (on the same, possibly rolled-over, MJD).
func UTCToTAI(day int, utcSec float64) (int, float64) {
	adjDay, adjSec := utcDayAdjust(day, utcSec)
	return adjDay, adjSec + LeapSecondOffset(adjDay)
}

// UTCToTT converts a UTC instant to TT seconds of day.
func UTCToTT(day int, utcSec float64) (int, float64) {
	adjDay, taiSec := UTCToTAI(day, utcSec)
	return adjDay, taiSec + taiToTTSec
}

// ToTT returns this MJD's epoch expressed as an MJD in the TT time scale.
func (m MJD) ToTT() MJD {
	tsecutc := m.Frac * SecPerDay
	day, ttSec := UTCToTT(m.Day, tsecutc)
	return MJD{Day: day, Frac: ttSec / SecPerDay}
}

// JulianCenturiesTT returns the number of Julian centuries of TT elapsed
// since J2000.0 (JD 2451545.0) for this UTC epoch.
func (m MJD) JulianCenturiesTT() float64 {
	tt := m.ToTT()
	tjdtt := float64(tt.Day) + tt.Frac + 2400000.5
	return (tjdtt - 2451545.0) / 36525.0
}

// TDBMinusTT returns the TDB-TT periodic term, in seconds, for a TT epoch
// expressed as Julian Date. The amplitude never exceeds ~1.7 ms; this
// package's own kernel does not consult it; it exists because low-precision
// ephemeris libraries commonly expose it alongside UTC/TAI/TT conversions.
func TDBMinusTT(jdTT float64) float64 {
	t := (jdTT - 2451545.0) / 36525.0
	g := 357.53 + 35999.050*t
	gr := g * deg2rad
	return 0.001658 * math.Sin(gr+0.0167*math.Sin(gr))
}
