package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Reporter receives lesson build progress. Update is called once per
// lesson with its 1-based position and relative path.
type Reporter interface {
	Start(total int)
	Update(current int, lesson string)
	Finish()
}

// NewReporter picks a reporter writing to stderr: plain lines under CI,
// a progress bar otherwise.
func NewReporter() Reporter {
	return newReporter(os.Stderr, os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "")
}

func newReporter(w io.Writer, ci bool) Reporter {
	if ci {
		return &CIReporter{Out: w}
	}
	return &TerminalReporter{Out: w}
}

// TerminalReporter draws a progress bar naming the lesson being built.
type TerminalReporter struct {
	Out   io.Writer
	bar   *progressbar.ProgressBar
	start time.Time
}

func (r *TerminalReporter) Start(total int) {
	r.start = time.Now()
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("lessons"),
		progressbar.OptionSetWriter(r.Out),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(current int, lesson string) {
	if r.bar == nil {
		return
	}
	r.bar.Describe(lesson)
	_ = r.bar.Set(current)
}

func (r *TerminalReporter) Finish() {
	if r.bar == nil {
		return
	}
	_ = r.bar.Finish()
	fmt.Fprintf(r.Out, "Lessons built in %s\n", time.Since(r.start).Round(time.Millisecond))
	r.bar = nil
}

// CIReporter logs one line per lesson.
type CIReporter struct {
	Out   io.Writer
	total int
}

func (r *CIReporter) Start(total int) {
	r.total = total
	fmt.Fprintf(r.Out, "Building %d lessons\n", total)
}

func (r *CIReporter) Update(current int, lesson string) {
	fmt.Fprintf(r.Out, "[%d/%d] %s\n", current, r.total, lesson)
}

func (r *CIReporter) Finish() {
	fmt.Fprintln(r.Out, "Build complete")
}

// Nop discards all progress.
type Nop struct{}

func (Nop) Start(int)          {}
func (Nop) Update(int, string) {}
func (Nop) Finish()            {}
