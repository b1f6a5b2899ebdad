package option

import (
	"github.com/bgrewell/bitlocker-find/pkg/logging"
	"github.com/bgrewell/bitlocker-find/pkg/volume"
)

// ScanProgressCallback is called before each candidate is classified.
// Parameters:
// - currentPath: The candidate about to be tested.
// - currentNumber: The 1-based position of the candidate among those classified.
// - totalCount: The number of candidates that will be classified, excluding any skipped as missing.
type ScanProgressCallback func(
	currentPath string,
	currentNumber int,
	totalCount int,
)

type ScanOptions struct {
	ExistingOnly         bool
	Classifier           *volume.Classifier
	ScanProgressCallback ScanProgressCallback
	Logger               *logging.Logger
}

type ScanOption func(*ScanOptions)

// DefaultScanOptions returns the options used when no ScanOption is given.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		Classifier: volume.NewClassifier(),
		Logger:     logging.DefaultLogger(),
	}
}

// WithScanProgress sets a callback that receives progress updates during a scan.
func WithScanProgress(callback ScanProgressCallback) ScanOption {
	return func(o *ScanOptions) {
		o.ScanProgressCallback = callback
	}
}

// WithExistingOnly skips candidates that do not exist on the filesystem before they are classified.
func WithExistingOnly(existingOnly bool) ScanOption {
	return func(o *ScanOptions) {
		o.ExistingOnly = existingOnly
	}
}

func WithClassifier(classifier *volume.Classifier) ScanOption {
	return func(o *ScanOptions) {
		o.Classifier = classifier
	}
}

func WithLogger(logger *logging.Logger) ScanOption {
	return func(o *ScanOptions) {
		o.Logger = logger
	}
}
