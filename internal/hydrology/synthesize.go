package hydrology

import (
	"math"
	"math/rand"
	"time"

	"github.com/earthlens/nasa-data-proxy/internal/common"
)

// DateFormat is the day-resolution date layout used across the proxy.
const DateFormat = "2006-01-02"

// RandSource yields uniform draws in [0, 1). Injected so tests can substitute
// a seeded generator; production uses the locked global math/rand source.
type RandSource interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// Synthesizer produces deterministic-shaped pseudo-random daily series used
// when the real upstream is unavailable. The per-variable formulas mirror the
// Data Rods fallback generator so real and synthetic responses are
// interchangeable for the dashboard.
type Synthesizer struct {
	rng RandSource
}

// NewSynthesizer creates a Synthesizer. A nil rng selects the global source,
// which is safe for concurrent use.
func NewSynthesizer(rng RandSource) *Synthesizer {
	if rng == nil {
		rng = globalRand{}
	}
	return &Synthesizer{rng: rng}
}

// Synthesize generates one point per calendar day from start to end inclusive,
// shaped by a seasonal sinusoid and clamped to physically sane bounds per
// variable. An end before start yields an empty series, not an error.
func (s *Synthesizer) Synthesize(v Variable, start, end time.Time) []SeriesPoint {
	series := []SeriesPoint{}
	last := truncateDay(end)
	for d := truncateDay(start); !d.After(last); d = d.AddDate(0, 0, 1) {
		value := s.value(v, seasonFactor(d))
		series = append(series, SeriesPoint{
			Date:  d.Format(DateFormat),
			Value: common.Round2(value),
		})
	}
	return series
}

func (s *Synthesizer) value(v Variable, season float64) float64 {
	switch v {
	case Precipitation:
		return math.Max(0, s.rng.Float64()*8+season*3)
	case SoilMoisture:
		return math.Max(0.05, s.rng.Float64()*0.25+0.15+season*0.1)
	case Temperature:
		return 20 + s.rng.Float64()*15 + season*10
	case Humidity:
		return math.Max(20, math.Min(90, 50+s.rng.Float64()*30+season*15))
	case Evapotranspiration:
		return math.Max(0, s.rng.Float64()*4+2+season*2)
	case Runoff:
		return math.Max(0, s.rng.Float64()*3+season*2)
	default:
		return s.rng.Float64() * 10
	}
}

// SynthesizeLocal is the latitude-aware variant served in mock mode. On top of
// the seasonal shape it applies a distance-from-equator bias to temperature
// and evapotranspiration and a small day-to-day sinusoidal variation, matching
// the dashboard's local generator.
func (s *Synthesizer) SynthesizeLocal(v Variable, start, end time.Time, lat float64) []SeriesPoint {
	series := []SeriesPoint{}
	latFactor := math.Abs(lat) / 90
	last := truncateDay(end)
	i := 0
	for d := truncateDay(start); !d.After(last); d = d.AddDate(0, 0, 1) {
		season := seasonFactor(d)
		daily := math.Sin(float64(i)*0.7) * 0.3
		var value float64
		switch v {
		case Precipitation:
			value = math.Max(0, s.rng.Float64()*8+season*3+daily)
		case SoilMoisture:
			value = math.Max(0.05, s.rng.Float64()*0.25+0.15+season*0.1)
		case Temperature:
			base := 20 - latFactor*15 + season*10
			value = base + s.rng.Float64()*10 - 5 + daily*3
		case Humidity:
			value = math.Max(20, math.Min(90, 50+s.rng.Float64()*30+season*15))
		case Evapotranspiration:
			value = math.Max(0, s.rng.Float64()*4+2+season*2+latFactor)
		case Runoff:
			value = math.Max(0, s.rng.Float64()*3+season*2)
		default:
			value = s.rng.Float64() * 10
		}
		series = append(series, SeriesPoint{
			Date:  d.Format(DateFormat),
			Value: common.Round2(value),
		})
		i++
	}
	return series
}

// seasonFactor maps a date onto a yearly sinusoid in [-1, 1] using the 1-based
// ordinal day of the year.
func seasonFactor(d time.Time) float64 {
	return math.Sin(float64(d.YearDay()) / 365 * 2 * math.Pi)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
