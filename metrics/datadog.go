package metrics

import (
	"fmt"

	"github.com/DataDog/datadog-go/statsd"
)

// DataDogMetricsReporter ships metrics to a dogstatsd agent.
type DataDogMetricsReporter struct {
	client *statsd.Client
}

func NewDataDogMetricsReporter(addr string) (*DataDogMetricsReporter, error) {
	c, err := statsd.New(addr)
	if err != nil {
		return nil, fmt.Errorf("could not create statsd client: %v", err)
	}
	return &DataDogMetricsReporter{c}, nil
}

func (r *DataDogMetricsReporter) Count(name string, value int64, tags map[string]string, rate float64) error {
	return r.client.Count(name, value, convertTags(tags), rate)
}

func (r *DataDogMetricsReporter) Gauge(name string, value float64, tags map[string]string, rate float64) error {
	return r.client.Gauge(name, value, convertTags(tags), rate)
}

func (r *DataDogMetricsReporter) TimeInMilliseconds(name string, value float64, tags map[string]string, rate float64) error {
	return r.client.TimeInMilliseconds(name, value, convertTags(tags), rate)
}

func (r *DataDogMetricsReporter) Close() error {
	return r.client.Close()
}

func convertTags(tags map[string]string) []string {
	out := make([]string, 0, len(tags))
	for k, v := range tags {
		out = append(out, fmt.Sprintf("%s:%s", k, v))
	}
	return out
}
