// Package solidtide exposes the two bulk drivers over the tide kernel: a
// point time series at a fixed geodetic location, and an instantaneous
// snapshot over a regular latitude/longitude raster. Input validation and
// diagnostic logging live here; the kernel packages themselves are total.
package solidtide

import (
	"math"

	"github.com/pkg/errors"

	"github.com/corvin-k/gosolid/ephemeris"
	"github.com/corvin-k/gosolid/frame"
	"github.com/corvin-k/gosolid/tide"
	"github.com/corvin-k/gosolid/timescale"
	"github.com/corvin-k/gosolid/units"
)

// Sentinel errors for driver-level input validation. The kernel packages
// never return an error; every failure surfaces here.
var (
	ErrInvalidLatitude  = errors.New("solidtide: latitude out of range (-90, 90)")
	ErrInvalidLongitude = errors.New("solidtide: longitude out of range (-360, 360)")
	ErrInvalidYear      = errors.New("solidtide: year out of range (1901, 2099)")
	ErrInvalidGrid      = errors.New("solidtide: invalid grid attributes")
	ErrInvalidStep      = errors.New("solidtide: step_sec must be positive and divide 86400")
)

// Logger is the diagnostic side channel accepted by the drivers. *logrus.Logger
// satisfies it directly.
type Logger interface {
	Debugf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}

// Config carries the optional driver settings. There is no file- or
// env-based configuration layer: this is a plain value passed by the caller.
type Config struct {
	// Verbose routes one diagnostic line per day (point driver) or per
	// call (grid driver) through Logger at Debug level. It never runs on
	// the per-sample hot path.
	Verbose bool
	Logger  Logger
}

func (c Config) logger() Logger {
	if c.Logger == nil {
		return nopLogger{}
	}
	return c.Logger
}

func (c Config) debugf(format string, args ...interface{}) {
	if c.Verbose {
		c.logger().Debugf(format, args...)
	}
}

// TideSample is one output row of the single-day point driver.
type TideSample struct {
	SecondsOfDay float64
	E, N, U      float64
}

// SeriesSample is one output row of the multi-day time-series driver. Time
// is the sample's UTC instant.
type SeriesSample struct {
	Time    timescale.CivilDate
	E, N, U float64
}

// GridAttrs describes an output raster: northwest-corner origin (Y0, X0),
// per-axis step (Dy, Dx; Dy is typically negative), and sample counts
// (Length rows, Width columns), all in degrees.
type GridAttrs struct {
	Length, Width int
	Y0, X0        float64
	Dy, Dx        float64
}

func validateLatLon(latDeg, lonDeg float64) error {
	if !(latDeg > -90 && latDeg < 90) {
		return errors.Wrapf(ErrInvalidLatitude, "lat=%v", latDeg)
	}
	if !(lonDeg > -360 && lonDeg < 360) {
		return errors.Wrapf(ErrInvalidLongitude, "lon=%v", lonDeg)
	}
	return nil
}

func validateYear(year int) error {
	if !(year > 1901 && year < 2099) {
		return errors.Wrapf(ErrInvalidYear, "year=%d", year)
	}
	return nil
}

// stationDisplacement runs the full per-point pipeline for one UTC epoch:
// station ECEF position, tide displacement, topocentric decomposition.
// Returns east/north/up meters.
func stationDisplacement(llh frame.LLH, j timescale.MJD, xsun, xmon frame.XYZ) (e, n, u float64) {
	xsta := llh.ToECEF()
	d := tide.Detide(xsta, j, xsun, xmon)
	enu := d.ToENU(llh)
	return enu.Y, enu.X, enu.Z
}

// llhFromDegrees is the degree/radian boundary: callers work in degrees,
// the kernel packages work in radians throughout.
func llhFromDegrees(latDeg, lonDeg float64) frame.LLH {
	return frame.LLH{
		Lat: units.AngleFromDegrees(latDeg).Radians(),
		Lon: units.AngleFromDegrees(lonDeg).Radians(),
	}
}

// PointDay computes one day of tide samples at step-second resolution for
// the given geodetic location and calendar day (UTC).
func PointDay(latDeg, lonDeg float64, year, month, day, stepSec int, cfg Config) ([]TideSample, error) {
	if err := validateLatLon(latDeg, lonDeg); err != nil {
		return nil, err
	}
	if err := validateYear(year); err != nil {
		return nil, err
	}
	if stepSec <= 0 || 86400%stepSec != 0 {
		return nil, errors.Wrapf(ErrInvalidStep, "step_sec=%d", stepSec)
	}

	lonDeg = frame.NormalizeLongitudeDeg(lonDeg)
	llh := llhFromDegrees(latDeg, lonDeg)

	civ := timescale.CivilDate{Year: year, Month: month, Day: day}
	j := civ.ToMJD()
	// re-normalize through a round trip, matching the reference driver.
	j = j.ToCivil().ToMJD()

	n := 86400 / stepSec
	samples := make([]TideSample, n)
	tdel := 1.0 / float64(n)

	cfg.debugf("point day %04d-%02d-%02d: %d samples at %ds", year, month, day, n, stepSec)

	for i := 0; i < n; i++ {
		xsun := ephemeris.SunECEF(j)
		xmon := ephemeris.MoonECEF(j)
		e, north, u := stationDisplacement(llh, j, xsun, xmon)

		civNow := j.ToCivil()
		samples[i] = TideSample{SecondsOfDay: civNow.SecondsOfDay(), E: e, N: north, U: u}

		j.Frac += tdel
		// snap to one-second granularity to avoid drift.
		j.Frac = math.Round(j.Frac*timescale.SecPerDay) / timescale.SecPerDay
	}

	return samples, nil
}

// civilKey is a calendar day, used to drive the multi-day point series.
type civilKey struct{ Year, Month, Day int }

func (k civilKey) nextDay() civilKey {
	c := timescale.CivilDate{Year: k.Year, Month: k.Month, Day: k.Day, Hour: 12}
	mjd := c.ToMJD()
	mjd.Day++
	next := mjd.ToCivil()
	return civilKey{Year: next.Year, Month: next.Month, Day: next.Day}
}

func (k civilKey) at(secOfDay float64) timescale.CivilDate {
	hour := int(secOfDay / 3600.0)
	rem := secOfDay - float64(hour)*3600.0
	minute := int(rem / 60.0)
	return timescale.CivilDate{
		Year: k.Year, Month: k.Month, Day: k.Day,
		Hour: hour, Minute: minute, Second: rem - float64(minute)*60.0,
	}
}

// PointTimeSeries computes tide samples at a fixed geodetic location across
// a UTC interval [start, end], inclusive, iterating whole calendar days and
// filtering the first and last day to the requested bounds.
func PointTimeSeries(latDeg, lonDeg float64, start, end timescale.CivilDate, stepSec int, cfg Config) ([]SeriesSample, error) {
	if err := validateLatLon(latDeg, lonDeg); err != nil {
		return nil, err
	}
	startSec := start.SecondsOfDay()
	endKey := civilKey{Year: end.Year, Month: end.Month, Day: end.Day}
	endDaySec := end.SecondsOfDay()

	var out []SeriesSample
	day := civilKey{Year: start.Year, Month: start.Month, Day: start.Day}
	startDay := day

	for {
		samples, err := PointDay(latDeg, lonDeg, day.Year, day.Month, day.Day, stepSec, cfg)
		if err != nil {
			return nil, err
		}

		for _, s := range samples {
			// clamp the sub-nanosecond float error of the civil round trip
			// to microsecond granularity before comparing or splitting.
			sec := math.Round(s.SecondsOfDay*1e6) / 1e6
			if day == startDay && sec < startSec {
				continue
			}
			if day == endKey && sec > endDaySec {
				continue
			}
			out = append(out, SeriesSample{Time: day.at(sec), E: s.E, N: s.N, U: s.U})
		}

		if day == endKey {
			break
		}
		day = day.nextDay()
	}

	return out, nil
}

// GridSnapshot evaluates the tide displacement at one UTC instant over the
// raster described by attrs, returning three H×W planes (east, north, up).
// The Sun and Moon positions are computed once for the whole call; only the
// station position and the ECEF→ENU rotation vary per cell.
func GridSnapshot(at timescale.CivilDate, attrs GridAttrs, cfg Config) (e, n, u [][]float64, err error) {
	if err := validateYear(at.Year); err != nil {
		return nil, nil, nil, err
	}
	if attrs.Length <= 0 || attrs.Width <= 0 || !isFinite(attrs.Dy) || !isFinite(attrs.Dx) {
		return nil, nil, nil, errors.Wrapf(ErrInvalidGrid, "length=%d width=%d dy=%v dx=%v",
			attrs.Length, attrs.Width, attrs.Dy, attrs.Dx)
	}

	civ := at
	j := civ.ToMJD()
	j = j.ToCivil().ToMJD()

	xsun := ephemeris.SunECEF(j)
	xmon := ephemeris.MoonECEF(j)

	cfg.debugf("grid snapshot %04d-%02d-%02d %02d:%02d:%02.0f: %dx%d",
		at.Year, at.Month, at.Day, at.Hour, at.Minute, at.Second, attrs.Length, attrs.Width)

	e = make([][]float64, attrs.Length)
	n = make([][]float64, attrs.Length)
	u = make([][]float64, attrs.Length)

	for i := 0; i < attrs.Length; i++ {
		e[i] = make([]float64, attrs.Width)
		n[i] = make([]float64, attrs.Width)
		u[i] = make([]float64, attrs.Width)

		latDeg := attrs.Y0 + float64(i)*attrs.Dy
		if err := validateLatLonGrid(latDeg); err != nil {
			return nil, nil, nil, err
		}

		for k := 0; k < attrs.Width; k++ {
			lonDeg := attrs.X0 + float64(k)*attrs.Dx
			if err := validateLonGrid(lonDeg); err != nil {
				return nil, nil, nil, err
			}
			lonDeg = frame.NormalizeLongitudeDeg(lonDeg)

			llh := llhFromDegrees(latDeg, lonDeg)
			ee, nn, uu := stationDisplacement(llh, j, xsun, xmon)
			e[i][k] = ee
			n[i][k] = nn
			u[i][k] = uu
		}
	}

	return e, n, u, nil
}

func validateLatLonGrid(latDeg float64) error {
	if latDeg < -90.0 || latDeg > 90.0 {
		return errors.Wrapf(ErrInvalidGrid, "lat=%v outside [-90,90]", latDeg)
	}
	return nil
}

func validateLonGrid(lonDeg float64) error {
	if lonDeg < -360.0 || lonDeg > 360.0 {
		return errors.Wrapf(ErrInvalidGrid, "lon=%v outside [-360,360]", lonDeg)
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
