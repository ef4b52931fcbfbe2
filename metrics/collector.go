package metrics

import (
	"sync/atomic"
	"time"
)

// RunMetric summarizes one engine run.
type RunMetric struct {
	Goroutines int
	Duration   time.Duration
	Trials     int
	Strategies int
}

type Collector interface {
	Start(goroutines int)
	AddTrials(count int)
	AddStrategies(count int)
	Complete() RunMetric
}

type collector struct {
	goroutines int
	startTime  time.Time
	trials     atomic.Int64
	strategies atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(goroutines int) {
	c.startTime = time.Now()
	c.goroutines = goroutines
}

func (c *collector) AddTrials(count int) {
	c.trials.Add(int64(count))
}

func (c *collector) AddStrategies(count int) {
	c.strategies.Add(int64(count))
}

func (c *collector) Complete() RunMetric {
	return RunMetric{
		Goroutines: c.goroutines,
		Duration:   time.Since(c.startTime),
		Trials:     int(c.trials.Load()),
		Strategies: int(c.strategies.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Start(goroutines int)    {}
func (c *dummyCollector) AddTrials(count int)     {}
func (c *dummyCollector) AddStrategies(count int) {}
func (c *dummyCollector) Complete() RunMetric     { return RunMetric{} }
