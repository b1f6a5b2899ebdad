// Package bitfind locates BitLocker-encrypted volumes by inspecting device headers.
package bitfind

import (
	"os"

	"github.com/bgrewell/bitlocker-find/pkg/device"
	"github.com/bgrewell/bitlocker-find/pkg/option"
	"github.com/bgrewell/bitlocker-find/pkg/volume"
)

// Result collects the outcome of one scan. Matched and Reports follow the candidate order.
type Result struct {
	// Matched lists the candidates identified as BitLocker volumes.
	Matched []string
	// Reports holds one entry per classified candidate.
	Reports []volume.Report
	// Skipped lists candidates dropped before classification because they do not exist.
	Skipped []string
}

// Count returns the number of matched volumes.
func (r Result) Count() int {
	return len(r.Matched)
}

// ExitCode returns the process exit status for r: the number of matched volumes. The value is
// not clamped, so hosts with 8-bit exit statuses report it modulo 256.
func ExitCode(r Result) int {
	return r.Count()
}

// Scan classifies each candidate in order, one at a time.
func Scan(candidates []string, opts ...option.ScanOption) Result {
	options := option.DefaultScanOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.Classifier == nil {
		options.Classifier = volume.NewClassifier()
	}
	log := options.Logger.WithName("scan")

	result := Result{}
	queue := candidates
	if options.ExistingOnly {
		queue = make([]string, 0, len(candidates))
		for _, path := range candidates {
			if !exists(path) {
				log.Debug("skipping missing candidate", "path", path)
				result.Skipped = append(result.Skipped, path)
				continue
			}
			queue = append(queue, path)
		}
	}

	for i, path := range queue {
		if options.ScanProgressCallback != nil {
			options.ScanProgressCallback(path, i+1, len(queue))
		}

		report := options.Classifier.Classify(path)
		result.Reports = append(result.Reports, report)

		log.Debug("classified candidate", "path", path, "outcome", report.Outcome)
		switch {
		case report.Outcome == volume.Matched:
			log.Trace("volume header matched", "path", path, "variant", report.Variant,
				"identifier", report.Marker.GUIDString())
			result.Matched = append(result.Matched, path)
		case report.Err != nil:
			log.Trace("candidate not identified", "path", path, "reason", report.Reason, "error", report.Err)
		default:
			log.Trace("candidate not identified", "path", path, "reason", report.Reason)
		}
	}

	log.Debug("scan complete", "candidates", len(candidates), "matched", len(result.Matched),
		"skipped", len(result.Skipped))
	return result
}

// Find lists candidates from src and scans them. When src reports an unsupported platform the
// error is returned together with an empty, valid Result. Any other source error aborts the scan.
func Find(src device.Source, opts ...option.ScanOption) (Result, error) {
	candidates, err := src.Candidates()
	if err != nil {
		return Result{}, err
	}
	return Scan(candidates, opts...), nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
