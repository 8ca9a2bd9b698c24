// Package distribution tallies categorical observations in first-seen order.
package distribution

import (
	"github.com/okian/mintboard/internal/domain/model"
	"github.com/okian/mintboard/internal/domain/types"
)

// Count is a category and how often it was observed.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Counter keeps categories in the order they were first added. Output is
// never sorted; callers that need a different order sort it themselves.
type Counter struct {
	entries []Count
	index   map[string]int
}

// NewCounter creates an empty Counter.
func NewCounter() *Counter {
	return &Counter{index: make(map[string]int)}
}

// Add records one observation of label.
func (c *Counter) Add(label string) {
	if i, ok := c.index[label]; ok {
		c.entries[i].Count++
		return
	}
	c.index[label] = len(c.entries)
	c.entries = append(c.entries, Count{Label: label, Count: 1})
}

// Get returns the count for label, 0 when unseen.
func (c *Counter) Get(label string) int {
	if i, ok := c.index[label]; ok {
		return c.entries[i].Count
	}
	return 0
}

// Entries returns a copy of the counts in insertion order.
func (c *Counter) Entries() []Count {
	return append([]Count(nil), c.entries...)
}

// Labels returns the categories in insertion order.
func (c *Counter) Labels() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Label
	}
	return out
}

// Values returns the counts in insertion order.
func (c *Counter) Values() []float64 {
	out := make([]float64, len(c.entries))
	for i, e := range c.entries {
		out[i] = float64(e.Count)
	}
	return out
}

// Total is the number of observations.
func (c *Counter) Total() int {
	n := 0
	for _, e := range c.entries {
		n += e.Count
	}
	return n
}

// Series converts the counts into the pie renderer shape.
func (c *Counter) Series() types.Series {
	return types.Series{Labels: c.Labels(), Values: c.Values()}
}

// CountPhases flattens every player's events in order and counts them by
// phase display name.
func CountPhases(labels model.PhaseLabels, players []model.PlayerEvents) *Counter {
	c := NewCounter()
	for _, p := range players {
		for _, e := range p.Events {
			c.Add(labels.Label(e.Phase))
		}
	}
	return c
}
