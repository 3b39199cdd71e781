// Package progress defines the progress types shared by the sweep engine,
// the orchestration layer and the presentation layer.
package progress

// ProgressUpdate is a progress notification from one running sweep.
type ProgressUpdate struct {
	// SweepIndex identifies the sweep that sent the update.
	SweepIndex int
	// Value is the completed fraction, from 0.0 to 1.0.
	Value float64
}

// ProgressCallback receives completed fractions from a running sweep.
// Implementations must be safe for concurrent use.
type ProgressCallback func(progress float64)

// ChannelCallback returns a callback that forwards progress to ch tagged
// with index. Updates are dropped rather than blocking when ch is full.
func ChannelCallback(ch chan<- ProgressUpdate, index int) ProgressCallback {
	if ch == nil {
		return func(float64) {}
	}
	return func(v float64) {
		select {
		case ch <- ProgressUpdate{SweepIndex: index, Value: v}:
		default:
		}
	}
}
