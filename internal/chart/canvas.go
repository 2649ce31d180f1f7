package chart

import "sync"

// Canvas owns the chart of the latest run. Installing a new chart releases the old one,
// so at most one chart is alive per canvas.
type Canvas struct {
	mu      sync.Mutex
	current *Chart
}

// Replace installs c as the live chart and releases the previous one
func (cv *Canvas) Replace(c *Chart) {
	cv.mu.Lock()
	defer cv.mu.Unlock()

	if old := cv.current; old != nil && old != c {
		old.Release()
	}
	cv.current = c
}

// Clear releases the live chart, leaving the canvas empty
func (cv *Canvas) Clear() {
	cv.Replace(nil)
}

// Snapshot returns the PNG of the live chart
func (cv *Canvas) Snapshot() ([]byte, error) {
	cv.mu.Lock()
	defer cv.mu.Unlock()

	if cv.current == nil {
		return nil, ErrNoChart
	}
	return cv.current.Snapshot()
}

// Current returns the live chart, or nil
func (cv *Canvas) Current() *Chart {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	return cv.current
}
