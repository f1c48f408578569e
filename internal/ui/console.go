package ui

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Amr-9/ZeroHunter/pkg/generator"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
	ColorPurple = "\033[35m"
	ColorBold   = "\033[1m"
	ColorDim    = "\033[2m"
)

var printer = message.NewPrinter(language.English)

// Console writes match lines to out and everything decorative (banner,
// progress, summary) to status, so out can be piped.
type Console struct {
	mu       sync.Mutex
	out      io.Writer
	status   io.Writer
	color    bool
	drawn    bool // a progress line is on screen
	spinners []string
}

// NewConsole creates a Console. Colors are used only when color is true.
func NewConsole(out, status io.Writer, color bool) *Console {
	return &Console{
		out:      out,
		status:   status,
		color:    color,
		spinners: []string{"◐", "◓", "◑", "◒"},
	}
}

// IsTerminal reports whether f is attached to a character device.
func IsTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// c returns code when colors are enabled.
func (c *Console) c(code string) string {
	if !c.color {
		return ""
	}
	return code
}

// PrintWelcomeBanner shows the welcome screen
func (c *Console) PrintWelcomeBanner(version string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	title := fmt.Sprintf("ZeroHunter • trailing-zero digest search • v%s", version)
	bar := strings.Repeat("═", len([]rune(title))+4)
	fmt.Fprintln(c.status)
	fmt.Fprintf(c.status, "  %s%s╔%s╗\n", c.c(ColorCyan), c.c(ColorBold), bar)
	fmt.Fprintf(c.status, "  ║  %s%s%s%s%s  ║\n", c.c(ColorYellow), title, c.c(ColorReset), c.c(ColorCyan), c.c(ColorBold))
	fmt.Fprintf(c.status, "  ╚%s╝%s\n", bar, c.c(ColorReset))
	fmt.Fprintln(c.status)
}

// PrintSearchInfo displays search configuration
func (c *Console) PrintSearchInfo(config *generator.Config, workers int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	suffix := strings.Repeat("0", config.ZeroCount)
	fmt.Fprintf(c.status, "    %s🚀 SEARCHING%s %s%s(...)%s%s%s%s",
		c.c(ColorGreen+ColorBold), c.c(ColorReset),
		c.c(ColorDim), config.Algorithm, c.c(ColorReset),
		c.c(ColorCyan+ColorBold), suffix, c.c(ColorReset))
	fmt.Fprintf(c.status, " %s× %d │ %d workers │ (1/%s)%s\n\n",
		c.c(ColorDim), config.TargetCount, workers,
		FormatNumber(EstimateDifficulty(config.ZeroCount)), c.c(ColorReset))
}

// PrintProgress redraws the progress line. The bar tracks the chance that
// target matches have been found after the current number of attempts.
func (c *Console) PrintProgress(stats generator.Stats, config *generator.Config, frame int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	spinner := c.spinners[frame%len(c.spinners)]

	diff := float64(EstimateDifficulty(config.ZeroCount))
	expected := diff * float64(config.TargetCount)
	progress := 1.0 - math.Pow(0.5, 2.0*float64(stats.Attempts)/expected)

	barWidth := 30
	filled := int(progress * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("▓", filled) + strings.Repeat("░", barWidth-filled)

	fmt.Fprintf(c.status, "\r    %s%s%s %s%s%s %s%s%s │ %s%s%s │ %d/%d │ %s",
		c.c(ColorCyan), spinner, c.c(ColorReset),
		c.c(ColorDim), bar, c.c(ColorReset),
		c.c(ColorGreen+ColorBold), FormatHashRate(stats.HashRate), c.c(ColorReset),
		c.c(ColorYellow), FormatNumber(stats.Attempts), c.c(ColorReset),
		stats.Found, config.TargetCount,
		FormatDuration(time.Duration(stats.ElapsedSecs*float64(time.Second))))
	c.drawn = true
}

// PrintMatch writes one match line to out as `<candidate>, "<digest>"`.
func (c *Console) PrintMatch(m generator.Match) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearLocked()
	fmt.Fprintln(c.out, m.String())
}

// PrintSummary shows the totals after a completed search.
func (c *Console) PrintSummary(matches []generator.Match, target int, elapsed time.Duration, attempts uint64, outputFile string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearLocked()
	fmt.Fprintf(c.status, "\n    %s%s✨ FOUND %d/%d%s", c.c(ColorGreen), c.c(ColorBold), len(matches), target, c.c(ColorReset))
	if extra := len(matches) - target; extra > 0 {
		fmt.Fprintf(c.status, " %s(+%d in flight)%s", c.c(ColorDim), extra, c.c(ColorReset))
	}
	fmt.Fprintf(c.status, "   %s⏱  %s%s   %s📊 %s%s",
		c.c(ColorCyan), c.c(ColorReset+ColorBold), FormatDuration(elapsed),
		c.c(ColorPurple), c.c(ColorReset+ColorBold), FormatNumber(attempts))
	if outputFile != "" {
		fmt.Fprintf(c.status, "   %s💾 %s%s", c.c(ColorYellow), c.c(ColorReset+ColorBold), outputFile)
	}
	fmt.Fprintf(c.status, "%s\n", c.c(ColorReset))
}

// PrintCancelled reports an interrupted search.
func (c *Console) PrintCancelled(found, target int, elapsed time.Duration, attempts uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearLocked()
	fmt.Fprintf(c.status, "\n    %s⚠ Cancelled%s │ %d/%d found │ %s attempts │ %s\n",
		c.c(ColorYellow+ColorBold), c.c(ColorReset),
		found, target, FormatNumber(attempts), FormatDuration(elapsed))
}

// PrintError reports a failure on the status stream.
func (c *Console) PrintError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearLocked()
	fmt.Fprintf(c.status, "\n    %s✗ %v%s\n", c.c(ColorRed), err, c.c(ColorReset))
}

// ClearLine erases the progress line if one is drawn.
func (c *Console) ClearLine() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

func (c *Console) clearLocked() {
	if !c.drawn {
		return
	}
	fmt.Fprint(c.status, "\r\033[2K")
	c.drawn = false
}

// EstimateDifficulty returns the expected attempts per match: 16^zeros.
func EstimateDifficulty(zeros int) uint64 {
	difficulty := uint64(1)
	for i := 0; i < zeros; i++ {
		difficulty *= 16
	}
	return difficulty
}

// FormatHashRate formats hash rate nicely
func FormatHashRate(rate float64) string {
	if rate >= 1000000 {
		return fmt.Sprintf("%.1fM/s", rate/1000000)
	}
	if rate >= 1000 {
		return fmt.Sprintf("%.1fK/s", rate/1000)
	}
	return fmt.Sprintf("%.0f/s", rate)
}

// FormatNumber adds thousands separators
func FormatNumber(n uint64) string {
	return printer.Sprintf("%d", n)
}

// FormatDuration formats duration in a human-readable way
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}
