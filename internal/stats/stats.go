// Package stats computes summary statistics over the aggregated dataset.
//
// Summaries are computed per measured property, both across the whole
// campaign and per pit. Percentiles use DDSketch; moments use gonum.
// The same accumulator runs over parsed records and over rows read back
// from the output file, which is how the round-trip check compares the
// two.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/DataDog/sketches-go/ddsketch"
	"gonum.org/v1/gonum/stat"

	"github.com/tmeis/snowgrid/internal/parquet"
	"github.com/tmeis/snowgrid/internal/pit"
)

// relativeAccuracy is the DDSketch quantile accuracy.
const relativeAccuracy = 0.01

// Summary holds the statistics for one property within one scope.
type Summary struct {
	Property string
	PitID    string // empty for the campaign-wide summary
	Count    int64
	Min      float64
	Max      float64
	Mean     float64
	StdDev   float64
	P50      float64
	P90      float64
	P95      float64
	P99      float64
}

// Accumulator maintains running statistics for one property.
type Accumulator struct {
	property string
	pitID    string
	values   []float64
	min      float64
	max      float64
	sketch   *ddsketch.DDSketch
}

// NewAccumulator creates an accumulator for the named property. pitID is
// empty for campaign-wide accumulation.
func NewAccumulator(property, pitID string) *Accumulator {
	a := &Accumulator{
		property: property,
		pitID:    pitID,
		min:      math.MaxFloat64,
		max:      -math.MaxFloat64,
	}

	sketch, err := ddsketch.NewDefaultDDSketch(relativeAccuracy)
	if err == nil {
		a.sketch = sketch
	}

	return a
}

// Add adds a value. NaN values (no-data cells) are ignored.
func (a *Accumulator) Add(v float64) {
	if math.IsNaN(v) {
		return
	}

	a.values = append(a.values, v)
	if v < a.min {
		a.min = v
	}
	if v > a.max {
		a.max = v
	}
	if a.sketch != nil {
		// Add only fails for values the mapping cannot represent.
		_ = a.sketch.Add(v)
	}
}

// Count returns the number of values accumulated.
func (a *Accumulator) Count() int64 {
	return int64(len(a.values))
}

// Summary finalizes the accumulator.
func (a *Accumulator) Summary() Summary {
	s := Summary{
		Property: a.property,
		PitID:    a.pitID,
		Count:    int64(len(a.values)),
	}
	if len(a.values) == 0 {
		s.Min = math.NaN()
		s.Max = math.NaN()
		s.Mean = math.NaN()
		s.StdDev = math.NaN()
		s.P50 = math.NaN()
		s.P90 = math.NaN()
		s.P95 = math.NaN()
		s.P99 = math.NaN()
		return s
	}

	s.Min = a.min
	s.Max = a.max
	s.Mean = stat.Mean(a.values, nil)
	if len(a.values) > 1 {
		s.StdDev = stat.StdDev(a.values, nil)
	}

	if a.sketch != nil {
		s.P50 = quantile(a.sketch, 0.50)
		s.P90 = quantile(a.sketch, 0.90)
		s.P95 = quantile(a.sketch, 0.95)
		s.P99 = quantile(a.sketch, 0.99)
	}

	return s
}

func quantile(sketch *ddsketch.DDSketch, q float64) float64 {
	v, err := sketch.GetValueAtQuantile(q)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Report holds campaign-wide and per-pit summaries.
type Report struct {
	Overall []Summary
	PerPit  []Summary
}

// key identifies one accumulator scope.
type key struct {
	property string
	pitID    string
}

type collector struct {
	accs map[key]*Accumulator
}

func newCollector() *collector {
	return &collector{accs: make(map[key]*Accumulator)}
}

func (c *collector) add(property, pitID string, v float64) {
	k := key{property: property, pitID: pitID}
	acc, ok := c.accs[k]
	if !ok {
		acc = NewAccumulator(property, pitID)
		c.accs[k] = acc
	}
	acc.Add(v)
}

func (c *collector) observe(property, pitID string, v float64) {
	c.add(property, "", v)
	c.add(property, pitID, v)
}

func (c *collector) report() *Report {
	r := &Report{}
	for k, acc := range c.accs {
		if k.pitID == "" {
			r.Overall = append(r.Overall, acc.Summary())
		} else {
			r.PerPit = append(r.PerPit, acc.Summary())
		}
	}
	sortSummaries(r.Overall)
	sortSummaries(r.PerPit)
	return r
}

func sortSummaries(s []Summary) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Property != s[j].Property {
			return s[i].Property < s[j].Property
		}
		return s[i].PitID < s[j].PitID
	})
}

// FromRows computes the report from dataset rows read back from the
// output file. No-data cells do not contribute.
func FromRows(rows []parquet.ProfileRow) *Report {
	c := newCollector()
	for _, row := range rows {
		if row.TemperatureValid {
			c.observe("temperature", row.PitID, row.TemperatureC)
		}
		if row.DensityValid {
			c.observe("density", row.PitID, row.DensityKgM3)
		}
	}
	return c.report()
}

// FromRecords computes the report directly from parsed records, before
// grid alignment. Alignment only inserts no-data cells, so this must
// match FromRows over the written dataset.
func FromRecords(records []*pit.Record) *Report {
	c := newCollector()
	for _, rec := range records {
		for _, s := range rec.Temperature {
			c.observe("temperature", rec.ID, s.Value)
		}
		for _, s := range rec.Density {
			c.observe("density", rec.ID, s.Value)
		}
	}
	return c.report()
}

// Render writes the report as an aligned text table.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintf(w, "%-12s %-24s %7s %9s %9s %9s %9s %9s %9s\n",
		"property", "pit", "count", "min", "max", "mean", "stddev", "p50", "p95")
	for _, s := range r.Overall {
		renderRow(w, s, "(all)")
	}
	for _, s := range r.PerPit {
		renderRow(w, s, s.PitID)
	}
}

func renderRow(w io.Writer, s Summary, pitLabel string) {
	fmt.Fprintf(w, "%-12s %-24s %7d %9.2f %9.2f %9.2f %9.2f %9.2f %9.2f\n",
		s.Property, pitLabel, s.Count, s.Min, s.Max, s.Mean, s.StdDev, s.P50, s.P95)
}
