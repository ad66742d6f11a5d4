// Package metrics reports benchmark instrumentation to a pluggable
// backend.
//
// Usage:
//
//	metrics.Reporter, _ = metrics.NewDataDogMetricsReporter("statsd:8125")
//	defer metrics.Close()
//	...
//	t := metrics.Time("bench.write", map[string]string{"strategy": "envelope"}, 1.0)
//	defer t.Done()
package metrics

import "time"

// Reporter is the active backend. The default is a no-op so the benchmark
// runs without a statsd agent.
var Reporter MetricsReporter = &NoopMetricsReporter{}

var defaultTags = map[string]string{}

type MetricsReporter interface {
	Count(name string, value int64, tags map[string]string, rate float64) error
	Gauge(name string, value float64, tags map[string]string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags map[string]string, rate float64) error
	Close() error
}

// SetRunTag adds a tag to every metric emitted for the rest of the run.
func SetRunTag(key, value string) {
	defaultTags[key] = value
}

func Count(name string, value int64, tags map[string]string, rate float64) error {
	return Reporter.Count(name, value, withDefaultTags(tags), rate)
}

func Gauge(name string, value float64, tags map[string]string, rate float64) error {
	return Reporter.Gauge(name, value, withDefaultTags(tags), rate)
}

func TimeInMilliseconds(name string, value float64, tags map[string]string, rate float64) error {
	return Reporter.TimeInMilliseconds(name, value, withDefaultTags(tags), rate)
}

// Close flushes and closes the backend.
func Close() error {
	return Reporter.Close()
}

// Time starts a block timer that reports on Done.
//
//	t := metrics.Time("bench.read", tags, 1.0)
//	defer t.Done()
func Time(name string, tags map[string]string, rate float64) *Timer {
	t := &Timer{name: name, tags: tags, rate: rate, start: time.Now()}
	return t
}

type Timer struct {
	name  string
	tags  map[string]string
	rate  float64
	start time.Time
}

func (t *Timer) Done() error {
	elapsed := time.Since(t.start)
	return TimeInMilliseconds(t.name, float64(elapsed)/float64(time.Millisecond), t.tags, t.rate)
}

func withDefaultTags(tags map[string]string) map[string]string {
	if len(defaultTags) == 0 {
		return tags
	}
	result := make(map[string]string, len(tags)+len(defaultTags))
	for k, v := range defaultTags {
		result[k] = v
	}
	for k, v := range tags {
		result[k] = v
	}
	return result
}

// NoopMetricsReporter drops everything.
type NoopMetricsReporter struct{}

func (*NoopMetricsReporter) Count(string, int64, map[string]string, float64) error { return nil }
func (*NoopMetricsReporter) Gauge(string, float64, map[string]string, float64) error {
	return nil
}
func (*NoopMetricsReporter) TimeInMilliseconds(string, float64, map[string]string, float64) error {
	return nil
}
func (*NoopMetricsReporter) Close() error { return nil }
