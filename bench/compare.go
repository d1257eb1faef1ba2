package bench

import (
	"time"

	"github.com/fwojciec/tagscan"
)

// Measurement summarizes one extraction approach over one input.
type Measurement struct {
	Approach  string
	Records   int
	Malformed int
	Errors    int
	Duration  time.Duration
	Bytes     int

	// Err is set when the approach could not run at all.
	Err error
}

// Comparer runs several extraction approaches over the same input.
type Comparer struct {
	Extractors []tagscan.TagExtractor

	// Iterations is how many times each approach runs. Duration is the
	// mean over all iterations. Zero means one.
	Iterations int
}

// Compare runs every extractor on input and returns one measurement per
// extractor, in the order configured. The last iteration's extraction is
// returned alongside so callers can show the records.
func (c *Comparer) Compare(input string, tags []string) ([]Measurement, []*tagscan.Extraction) {
	iterations := c.Iterations
	if iterations <= 0 {
		iterations = 1
	}

	measurements := make([]Measurement, 0, len(c.Extractors))
	extractions := make([]*tagscan.Extraction, 0, len(c.Extractors))

	for _, ext := range c.Extractors {
		m := Measurement{Approach: ext.Name(), Bytes: len(input)}

		var last *tagscan.Extraction
		var total time.Duration
		for range iterations {
			begin := time.Now()
			result, err := ext.ExtractTags(input, tags)
			total += time.Since(begin)
			if err != nil {
				m.Err = err
				last = nil
				break
			}
			last = result
		}

		if last != nil {
			m.Records = len(last.Records)
			m.Malformed = tagscan.CountMalformed(last.Records)
			m.Errors = len(last.Errors)
			m.Duration = total / time.Duration(iterations)
		}

		measurements = append(measurements, m)
		extractions = append(extractions, last)
	}

	return measurements, extractions
}

// SpeedRatio reports how many times faster a ran than b.
// It returns 0 when either duration is unknown.
func SpeedRatio(a, b Measurement) float64 {
	if a.Duration <= 0 || b.Duration <= 0 {
		return 0
	}
	return float64(b.Duration) / float64(a.Duration)
}
