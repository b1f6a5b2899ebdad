package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bgrewell/bitlocker-find/pkg/option"
	"github.com/theckman/yacspin"
	"golang.org/x/term"
)

// truncateString truncates the input string to the specified max length.
// If truncation occurs, it prepends "..." to indicate the string has been shortened.
func truncateString(input string, maxLength int) string {
	if len(input) <= maxLength {
		return input
	}
	if maxLength <= 3 {
		return input[len(input)-maxLength:]
	}
	return "..." + input[len(input)-(maxLength-3):]
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w, or 80 when it cannot be determined.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil {
			return width
		}
	}
	return 80
}

// progressMessage formats the spinner message for one candidate so it fits in width columns.
func progressMessage(path string, current, total, width int) string {
	fixedPart := fmt.Sprintf(" [%d/%d] ", current, total)

	availableSpace := width - len(fixedPart) - 6
	if availableSpace < 10 {
		availableSpace = 10
	}
	return fixedPart + truncateString(path, availableSpace)
}

// createProgressCallback returns a callback that updates the spinner's message.
func createProgressCallback(spinner *yacspin.Spinner, w io.Writer) option.ScanProgressCallback {
	return func(currentPath string, currentNumber int, totalCount int) {
		spinner.Message(progressMessage(currentPath, currentNumber, totalCount, terminalWidth(w)))
	}
}

// initializeSpinner sets up and starts a spinner writing to w.
func initializeSpinner(w io.Writer) (*yacspin.Spinner, error) {
	settings := yacspin.Config{
		Writer:            w,
		Frequency:         100 * time.Millisecond,
		ShowCursor:        false,
		SpinnerAtEnd:      false,
		CharSet:           yacspin.CharSets[14],
		Suffix:            " scanning",
		Colors:            []string{"fgHiCyan"},
		StopColors:        []string{"fgHiGreen"},
		StopFailColors:    []string{"fgHiRed"},
		StopFailCharacter: "✗",
		StopCharacter:     "✓",
	}

	spinner, err := yacspin.New(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create spinner: %w", err)
	}

	if err := spinner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start spinner: %w", err)
	}

	return spinner, nil
}

// stopSpinner reports the number of volumes found and stops the spinner.
func stopSpinner(spinner *yacspin.Spinner, found int) {
	if found == 0 {
		spinner.StopFailMessage(" no volume found")
		_ = spinner.StopFail()
		return
	}
	spinner.StopMessage(fmt.Sprintf(" %d volume(s) found", found))
	_ = spinner.Stop()
}
