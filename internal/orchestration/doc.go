// Package orchestration runs one sweep per multiplier concurrently and
// compares their digests. It decouples the sweep engine from presentation
// via the ProgressReporter and ResultPresenter interfaces.
package orchestration
