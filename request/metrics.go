package request

import "time"

// Metrics stores basic measurements for a request.
type Metrics struct {
	// BytesIn is the total number of request body bytes read from the client.
	BytesIn int64

	// BytesOut is the total number of response body bytes sent to the client.
	BytesOut int64

	StartedAt       time.Time
	TimeToFirstByte float64
	TimeToLastByte  float64
}

// Start the timer.
func (metrics *Metrics) Start() {
	metrics.StartedAt = time.Now()
}

// FirstByteSent records the time offset to the first byte.
func (metrics *Metrics) FirstByteSent() {
	metrics.TimeToFirstByte = metrics.elapsed()
}

// IsFirstByteSent returns true if the first byte has been sent.
func (metrics *Metrics) IsFirstByteSent() bool {
	return metrics.TimeToFirstByte > 0
}

// LastByteSent records the time offset to the last byte.
func (metrics *Metrics) LastByteSent() {
	metrics.TimeToLastByte = metrics.elapsed()
}

// IsLastByteSent returns true if the last byte has been sent.
func (metrics *Metrics) IsLastByteSent() bool {
	return metrics.TimeToLastByte > 0
}

// elapsed returns the milliseconds since the timer was started. It never
// returns zero so that a recorded offset is always distinguishable from an
// unrecorded one.
func (metrics *Metrics) elapsed() float64 {
	ms := float64(time.Since(metrics.StartedAt)) / float64(time.Millisecond)
	if ms <= 0 {
		return 0.001
	}

	return ms
}
