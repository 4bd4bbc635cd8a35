package hydrology

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/earthlens/nasa-data-proxy/internal/observability"
)

// Source labels attached to results so the dashboard can surface provenance
// without changing how it renders.
const (
	SourceUpstream    = "NASA GES DISC"
	SourceFallback    = "Mock Data (NASA API failed)"
	SourceUnreachable = "Mock Data (NASA API unreachable)"
	SourceMockMode    = "Mock Data (real data mode disabled)"
	SourceEnvelope    = "NASA Data Proxy Server"
)

// Fetcher retrieves the raw upstream payload for one dataset. Implemented by
// the GES DISC client; stubbed in tests.
type Fetcher interface {
	FetchSeries(ctx context.Context, dataset string, lat, lng float64, startDate, endDate string) (string, error)
}

// HealthGate reports cached upstream reachability. Advisory: a false reading
// short-circuits to fallback, but resolution survives the same failures when
// the gate is absent or wrong.
type HealthGate interface {
	Reachable() bool
}

// Service reconciles real upstream data with synthetic fallback series,
// guaranteeing one result per requested variable.
type Service struct {
	fetcher     Fetcher
	gate        HealthGate
	synth       *Synthesizer
	clock       clockwork.Clock
	metrics     *observability.Metrics
	useRealData bool
}

// ServiceConfig bundles the Service dependencies.
type ServiceConfig struct {
	Fetcher Fetcher
	Gate    HealthGate // optional
	Synth   *Synthesizer
	Clock   clockwork.Clock
	Metrics *observability.Metrics // optional

	// UseRealData false switches the service into mock mode: upstream is
	// never contacted and latitude-aware synthetic data is served directly.
	UseRealData bool
}

// NewService creates a Service. Synth and Clock default when nil.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Synth == nil {
		cfg.Synth = NewSynthesizer(nil)
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	return &Service{
		fetcher:     cfg.Fetcher,
		gate:        cfg.Gate,
		synth:       cfg.Synth,
		clock:       cfg.Clock,
		metrics:     cfg.Metrics,
		useRealData: cfg.UseRealData,
	}
}

// Resolve fetches and normalizes one variable's series, substituting a
// synthetic series on any failure. It never returns an error: the outcome is
// reported through the result's Status and Source fields.
func (s *Service) Resolve(ctx context.Context, v Variable, lat, lng float64, start, end time.Time) VariableSeriesResult {
	if s.metrics != nil {
		timer := time.Now()
		defer func() { s.metrics.ResolveDuration.Observe(time.Since(timer).Seconds()) }()
	}

	meta := v.Meta()
	result := VariableSeriesResult{
		Variable:    meta.DatasetID,
		Unit:        meta.Unit,
		Description: meta.Description,
	}

	if !s.useRealData {
		result.Series = s.synth.SynthesizeLocal(v, start, end, lat)
		result.Source = SourceMockMode
		result.Status = StatusFallback
		return result
	}

	if s.gate != nil && !s.gate.Reachable() {
		return s.fallback(result, v, start, end, SourceUnreachable, "upstream known unreachable, skipping fetch")
	}

	raw, err := s.fetcher.FetchSeries(ctx, meta.DatasetID, lat, lng, start.Format(DateFormat), end.Format(DateFormat))
	if err != nil {
		log.Printf("upstream fetch failed for %s: %v", v, err)
		return s.fallback(result, v, start, end, SourceFallback, err.Error())
	}

	series := Normalize([]byte(raw))
	if len(series) == 0 {
		// Parsed but yielded nothing usable; an empty "success" would be a lie.
		return s.fallback(result, v, start, end, SourceFallback, "no usable data points in upstream response")
	}

	result.Series = series
	result.Source = SourceUpstream
	result.Status = StatusSuccess
	if s.metrics != nil {
		s.metrics.UpstreamRequests.WithLabelValues(string(StatusSuccess)).Inc()
	}
	return result
}

func (s *Service) fallback(result VariableSeriesResult, v Variable, start, end time.Time, source, errMsg string) VariableSeriesResult {
	result.Series = s.synth.Synthesize(v, start, end)
	result.Source = source
	result.Status = StatusFallback
	result.Error = errMsg
	if s.metrics != nil {
		s.metrics.UpstreamRequests.WithLabelValues(string(StatusFallback)).Inc()
		s.metrics.Fallbacks.WithLabelValues(string(v)).Inc()
	}
	return result
}

// ResolveAll resolves every requested variable concurrently and assembles the
// bulk envelope. One variable's upstream failure never blocks or fails the
// others; fetches do not share a cancellation scope beyond the caller's ctx.
func (s *Service) ResolveAll(ctx context.Context, variables []Variable, lat, lng float64, start, end time.Time) BulkEnvelope {
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	results := make(map[Variable]VariableSeriesResult, len(variables))

	for _, v := range variables {
		v := v
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := s.Resolve(ctx, v, lat, lng, start, end)
			mu.Lock()
			results[v] = r
			mu.Unlock()
		}()
	}
	wg.Wait()

	if s.metrics != nil {
		s.metrics.BulkRequests.Inc()
	}
	return BulkEnvelope{
		Hydrological: results,
		Coordinates:  Coordinates{Lat: lat, Lng: lng},
		Timestamp:    s.clock.Now().UTC(),
		Source:       SourceEnvelope,
	}
}
