package cmd

import (
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
)

// startProgress renders a single tracker on stderr so it never mixes
// with record output on stdout.
func startProgress(message string, total int) (progress.Writer, *progress.Tracker) {
	pw := progress.NewWriter()
	pw.SetOutputWriter(os.Stderr)
	pw.SetTrackerLength(25)
	pw.SetUpdateFrequency(100 * time.Millisecond)
	pw.Style().Visibility.ETA = true

	tracker := &progress.Tracker{Message: message, Total: int64(total)}
	pw.AppendTracker(tracker)
	go pw.Render()

	return pw, tracker
}

func stopProgress(pw progress.Writer, tracker *progress.Tracker) {
	if !tracker.IsDone() {
		tracker.MarkAsDone()
	}
	for pw.IsRenderInProgress() {
		if pw.LengthActive() == 0 {
			pw.Stop()
		}
		time.Sleep(10 * time.Millisecond)
	}
}
