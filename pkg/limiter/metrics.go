package limiter

// Metric names emitted by both limiters.
const (
	metricCall    = "ratelimit.call"
	metricDenied  = "ratelimit.denied"
	metricLatency = "ratelimit.latency"
)

// MetricsRecorder receives counters and timing observations from the
// limiters. Implement it to plug in statsd, Prometheus, or anything else;
// the package itself depends on no metrics backend.
type MetricsRecorder interface {
	Add(name string, value float64, tags map[string]string)
	Observe(name string, value float64, tags map[string]string)
}

// NoOpMetricsRecorder is a placeholder that does nothing.
// It ensures we never have to check 'if r.recorder != nil' in our hot path.
type NoOpMetricsRecorder struct{}

func (n *NoOpMetricsRecorder) Add(name string, value float64, tags map[string]string)     {}
func (n *NoOpMetricsRecorder) Observe(name string, value float64, tags map[string]string) {}
