package app

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// progressTracker renders descriptor progress as a terminal bar.
type progressTracker struct {
	w     io.Writer
	label string
	bar   *progressbar.ProgressBar
}

func newProgressTracker(w io.Writer, label string) *progressTracker {
	return &progressTracker{w: w, label: label}
}

func (t *progressTracker) Start(total int) {
	w := t.w
	t.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(t.label),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetWriter(w),
	)
}

func (t *progressTracker) Advance(n int) {
	if t.bar != nil {
		_ = t.bar.Add(n)
	}
}

func (t *progressTracker) Finish() {
	if t.bar != nil {
		_ = t.bar.Finish()
	}
}
