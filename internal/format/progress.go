package format

import (
	"fmt"
	"strings"
	"time"
)

// maxETA caps the estimate shown for very slow progress.
const maxETA = 24 * time.Hour

// rateSmoothing is the weight of the newest sample in the progress rate.
const rateSmoothing = 0.3

// ProgressState tracks the completed fraction of several concurrent sweeps.
type ProgressState struct {
	progresses []float64
	numSweeps  int
}

// NewProgressState creates a state for numSweeps sweeps.
func NewProgressState(numSweeps int) *ProgressState {
	numSweeps = max(numSweeps, 0)
	return &ProgressState{progresses: make([]float64, numSweeps), numSweeps: numSweeps}
}

// Update records the fraction of sweep index. Out of range indices are
// ignored and values are clamped to [0, 1].
func (p *ProgressState) Update(index int, value float64) {
	if index < 0 || index >= len(p.progresses) {
		return
	}
	p.progresses[index] = clamp01(value)
}

// CalculateAverage returns the mean fraction over all sweeps.
func (p *ProgressState) CalculateAverage() float64 {
	if p.numSweeps == 0 {
		return 0
	}
	var sum float64
	for _, v := range p.progresses {
		sum += v
	}
	return sum / float64(p.numSweeps)
}

// ProgressWithETA adds a smoothed rate and a remaining-time estimate to
// ProgressState.
type ProgressWithETA struct {
	*ProgressState
	numSweeps    int
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
	progressRate float64 // fraction per second
}

// NewProgressWithETA creates a tracker for numSweeps sweeps.
func NewProgressWithETA(numSweeps int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numSweeps),
		numSweeps:     numSweeps,
		startTime:     now,
		lastUpdate:    now,
	}
}

// UpdateWithETA records an update and returns the new average and ETA.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	avg := p.CalculateAverage()

	now := time.Now()
	if elapsed := now.Sub(p.lastUpdate).Seconds(); elapsed > 0 && avg > p.lastProgress {
		rate := (avg - p.lastProgress) / elapsed
		if p.progressRate == 0 {
			p.progressRate = rate
		} else {
			p.progressRate = rateSmoothing*rate + (1-rateSmoothing)*p.progressRate
		}
		p.lastUpdate = now
		p.lastProgress = avg
	}
	return avg, p.GetETA()
}

// GetETA returns the estimated remaining time, or 0 when no rate is known.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	seconds := remaining / p.progressRate
	if seconds > maxETA.Seconds() {
		return maxETA
	}
	return time.Duration(seconds * float64(time.Second))
}

// FormatETA renders an ETA compactly ("45s", "2m30s", "1h15m").
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m, s := int(eta.Minutes()), int(eta.Seconds())%60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		h, m := int(eta.Hours()), int(eta.Minutes())%60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// ProgressBar renders progress as a bar of length cells.
func ProgressBar(progress float64, length int) string {
	filled := int(clamp01(progress) * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders "[bar] 42.00% ETA: 3s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %6.2f%% ETA: %s", ProgressBar(progress, width), clamp01(progress)*100, FormatETA(eta))
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
