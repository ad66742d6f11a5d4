package metrics

// fakeMetricsReporter records the last metric of each kind, for tests.
type fakeMetricsReporter struct {
	LastCount *countMetric
	LastGauge *valueMetric
	LastTime  *valueMetric
}

type countMetric struct {
	Name  string
	Value int64
	Tags  map[string]string
	Rate  float64
}

type valueMetric struct {
	Name  string
	Value float64
	Tags  map[string]string
	Rate  float64
}

func (r *fakeMetricsReporter) Count(name string, value int64, tags map[string]string, rate float64) error {
	r.LastCount = &countMetric{name, value, tags, rate}
	return nil
}

func (r *fakeMetricsReporter) Gauge(name string, value float64, tags map[string]string, rate float64) error {
	r.LastGauge = &valueMetric{name, value, tags, rate}
	return nil
}

func (r *fakeMetricsReporter) TimeInMilliseconds(name string, value float64, tags map[string]string, rate float64) error {
	r.LastTime = &valueMetric{name, value, tags, rate}
	return nil
}

func (r *fakeMetricsReporter) Close() error { return nil }
