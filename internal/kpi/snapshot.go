// Package kpi holds aggregate ESG metric snapshots and compares them across
// reporting periods.
package kpi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// Canonical metric names. They double as display labels.
const (
	MetricTotalEnergy  = "Total Energy (kWh)"
	MetricRenewablePct = "Renewable Energy (%)"
	MetricScope1       = "Scope 1 CO₂ (kg)"
	MetricScope2       = "Scope 2 CO₂ (kg)"
	MetricTotalCO2     = "Total CO₂ (kg)"
	MetricScope3       = "Scope 3 CO₂ (kg)"
)

// Metric is one named value in a snapshot.
type Metric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Snapshot is an ordered set of named aggregate metrics. The zero value is
// an empty snapshot. Snapshots are values: With returns a modified copy.
type Snapshot struct {
	names  []string
	values map[string]float64

	// Degenerate is set when the energy total was zero and the renewable
	// share could not be computed.
	Degenerate bool
}

// New builds a snapshot from metrics in the given order. A repeated name
// keeps its first position and takes the last value.
func New(metrics ...Metric) Snapshot {
	s := Snapshot{values: make(map[string]float64, len(metrics))}
	for _, m := range metrics {
		if _, ok := s.values[m.Name]; !ok {
			s.names = append(s.names, m.Name)
		}
		s.values[m.Name] = m.Value
	}
	return s
}

// With returns a copy of s with name set to value.
func (s Snapshot) With(name string, value float64) Snapshot {
	out := New(s.Metrics()...)
	out.Degenerate = s.Degenerate
	if _, ok := out.values[name]; !ok {
		out.names = append(out.names, name)
	}
	out.values[name] = value
	return out
}

// Get returns the metric value and whether it is present.
func (s Snapshot) Get(name string) (float64, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Value returns the metric value, or 0 when absent.
func (s Snapshot) Value(name string) float64 {
	return s.values[name]
}

// Has reports whether the metric is present.
func (s Snapshot) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Names returns metric names in snapshot order.
func (s Snapshot) Names() []string {
	return append([]string(nil), s.names...)
}

// Len returns the number of metrics.
func (s Snapshot) Len() int { return len(s.names) }

// Metrics returns the metrics in snapshot order.
func (s Snapshot) Metrics() []Metric {
	out := make([]Metric, 0, len(s.names))
	for _, n := range s.names {
		out = append(out, Metric{Name: n, Value: s.values[n]})
	}
	return out
}

// MarshalJSON encodes the snapshot as a JSON object in snapshot order.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.values[n])
		if err != nil {
			return nil, fmt.Errorf("metric %q: %w", n, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of numbers, keeping key order.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("kpi snapshot must be a JSON object")
	}

	var metrics []Metric
	for dec.More() {
		keyTok, keyErr := dec.Token()
		if keyErr != nil {
			return keyErr
		}
		key, _ := keyTok.(string)
		var v float64
		if decErr := dec.Decode(&v); decErr != nil {
			return fmt.Errorf("metric %q: %w", key, decErr)
		}
		metrics = append(metrics, Metric{Name: key, Value: v})
	}
	if _, err = dec.Token(); err != nil {
		return err
	}

	*s = New(metrics...)
	return nil
}

// Round rounds v to the given number of decimal places, resolving exact
// halves to the even neighbour.
func Round(v float64, places int) float64 {
	const base = 10
	p := math.Pow(base, float64(places))
	return math.RoundToEven(v*p) / p
}
