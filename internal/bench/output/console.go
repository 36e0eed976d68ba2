// Package output provides console output for benchmark runs.
package output

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/wesleyorama2/figures/internal/bench/engine"
)

// ANSI escape codes for cursor control
const (
	carriageReturn = "\r"
	clearLine      = "\033[2K"
)

const (
	ruleWidth = 64

	// Box drawing characters
	boxHorizontal = "━"

	// Progress bar characters
	progressFilled = "█"
	progressEmpty  = "░"
)

// ColorScheme defines the colors used for the different parts of the output.
type ColorScheme struct {
	Header   *color.Color
	Label    *color.Color
	Duration *color.Color
	Number   *color.Color
	Success  *color.Color
	Error    *color.Color
	Dim      *color.Color
}

// DefaultColorScheme returns the default color scheme.
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Header:   color.New(color.FgCyan, color.Bold),
		Label:    color.New(color.FgMagenta),
		Duration: color.New(color.FgGreen, color.Bold),
		Number:   color.New(color.FgCyan),
		Success:  color.New(color.FgGreen),
		Error:    color.New(color.FgRed, color.Bold),
		Dim:      color.New(color.Faint),
	}
}

// each applies fn to every color of the scheme.
func (s *ColorScheme) each(fn func(*color.Color)) {
	for _, c := range []*color.Color{s.Header, s.Label, s.Duration, s.Number, s.Success, s.Error, s.Dim} {
		fn(c)
	}
}

// Console writes benchmark progress and results.
type Console struct {
	writer    io.Writer
	isTTY     bool
	useColors bool
	quiet     bool
	colors    *ColorScheme

	mu           sync.Mutex
	progressLine bool
}

// ConsoleConfig contains configuration for Console.
type ConsoleConfig struct {
	Writer io.Writer

	// Quiet prints only the header and the per-strategy timing lines.
	Quiet bool

	NoColor     bool
	ForceColors bool
	ForceTTY    bool
}

// NewConsole creates a new console output handler.
func NewConsole(config ConsoleConfig) *Console {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}

	isTTY := config.ForceTTY || isTerminal(config.Writer)
	useColors := !config.NoColor && (config.ForceColors || (isTTY && supportsColors()))

	colors := DefaultColorScheme()
	colors.each(func(c *color.Color) {
		if useColors {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	})

	return &Console{
		writer:    config.Writer,
		isTTY:     isTTY,
		useColors: useColors,
		quiet:     config.Quiet,
		colors:    colors,
	}
}

// isTerminal checks if the writer is a terminal.
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return checkIsTerminal(f)
	}
	return false
}

// supportsColors checks if the terminal supports colors.
func supportsColors() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// Windows 10 and later terminals understand ANSI sequences
	if runtime.GOOS == "windows" {
		return true
	}

	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}

// IsTTY returns whether the output is a terminal.
func (c *Console) IsTTY() bool {
	return c.isTTY
}

// PrintHeader prints the run header.
func (c *Console) PrintHeader(count int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearProgress()
	c.writeln(c.colors.Header.Sprintf("*** Calculation of %d figures of each type ***", count))
}

// PrintStrategy prints the timing line of a finished strategy.
func (c *Console) PrintStrategy(sr *engine.StrategyResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearProgress()
	c.writeln(fmt.Sprintf("Using %s finished in %s seconds",
		c.colors.Label.Sprint(sr.Label),
		c.colors.Duration.Sprintf("%.3f", sr.Duration.Seconds())))
}

// Progress redraws the progress line of the running strategy. It only
// draws on a terminal.
func (c *Console) Progress(name string, progress float64) {
	if c.quiet || !c.isTTY {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.write(carriageReturn + clearLine)
	c.write(fmt.Sprintf("%-12s %s %s",
		name,
		c.colors.Success.Sprint(renderProgressBar(progress, 30)),
		c.colors.Dim.Sprintf("%3.0f%%", progress*100)))
	c.progressLine = true
}

// clearProgress erases the progress line, if one is showing.
func (c *Console) clearProgress() {
	if c.progressLine {
		c.write(carriageReturn + clearLine)
		c.progressLine = false
	}
}

// PrintSummary prints the table of all strategy results.
func (c *Console) PrintSummary(result *engine.BenchResult) {
	if c.quiet {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearProgress()

	line := strings.Repeat(boxHorizontal, ruleWidth)
	c.writeln("")
	c.writeln(c.colors.Dim.Sprint(line))
	c.writeln(fmt.Sprintf("%s - %s shapes per kind, seed %d",
		c.colors.Header.Sprint(result.Name),
		formatNumber(int64(result.Count)),
		result.Seed))
	c.writeln(c.colors.Dim.Sprint(line))

	rows := [][]string{{"Strategy", "Time", "Tasks", "P50", "P99", "Shapes/s"}}
	for _, sr := range result.Strategies {
		perSecond := 0.0
		if sr.Duration > 0 {
			perSecond = float64(sr.Metrics.TotalItems) / sr.Duration.Seconds()
		}
		rows = append(rows, []string{
			c.colors.Label.Sprint(sr.Name),
			formatDuration(sr.Duration),
			formatNumber(sr.Metrics.TotalTasks),
			formatDurationShort(sr.Metrics.Latency.P50),
			formatDurationShort(sr.Metrics.Latency.P99),
			formatNumber(int64(perSecond)),
		})
	}
	for i, row := range formatTable(rows) {
		if i == 0 {
			row = c.colors.Dim.Sprint(row)
		}
		c.writeln(row)
	}
	c.writeln("")

	if fastest := fastest(result); fastest != nil {
		c.writeln(fmt.Sprintf("Fastest:   %s", c.colors.Label.Sprint(fastest.Name)))
	}
	if result.Verified {
		c.writeln(fmt.Sprintf("Verified:  %s", c.colors.Success.Sprint("✓ identical results across strategies")))
	} else {
		c.writeln(fmt.Sprintf("Verified:  %s", c.colors.Dim.Sprint("skipped")))
	}
}

// PrintError prints a run failure.
func (c *Console) PrintError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearProgress()
	c.writeln(c.colors.Error.Sprint("✗ ") + err.Error())
}

// write writes to the output without a newline.
func (c *Console) write(s string) {
	fmt.Fprint(c.writer, s)
}

// writeln writes to the output with a newline.
func (c *Console) writeln(s string) {
	fmt.Fprintln(c.writer, s)
}

// Helper functions

// fastest returns the strategy with the shortest duration.
func fastest(result *engine.BenchResult) *engine.StrategyResult {
	var best *engine.StrategyResult
	for _, sr := range result.Strategies {
		if best == nil || sr.Duration < best.Duration {
			best = sr
		}
	}
	return best
}

// formatTable left-aligns the first column and right-aligns the others.
// Cells may contain color codes.
func formatTable(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], visibleWidth(cell))
		}
	}

	lines := make([]string, len(rows))
	for r, row := range rows {
		var sb strings.Builder
		for i, cell := range row {
			pad := strings.Repeat(" ", widths[i]-visibleWidth(cell))
			if i == 0 {
				sb.WriteString(cell + pad)
			} else {
				sb.WriteString("  " + pad + cell)
			}
		}
		lines[r] = sb.String()
	}
	return lines
}

func visibleWidth(s string) int {
	return len([]rune(stripANSI(s)))
}

// renderProgressBar renders a progress bar.
func renderProgressBar(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	filled := int(progress * float64(width))
	empty := width - filled

	return "[" + strings.Repeat(progressFilled, filled) + strings.Repeat(progressEmpty, empty) + "]"
}

// formatDuration formats a duration as seconds with millisecond precision.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.3fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := d.Seconds() - float64(m*60)
	return fmt.Sprintf("%dm %06.3fs", m, s)
}

// formatDurationShort formats a latency in a short format.
func formatDurationShort(d time.Duration) string {
	if d < time.Microsecond {
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
	if d < time.Millisecond {
		return fmt.Sprintf("%.1fµs", float64(d.Nanoseconds())/1e3)
	}
	if d < time.Second {
		return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1e3)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// formatNumber formats a number with thousands separators.
func formatNumber(n int64) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	var result strings.Builder
	offset := len(str) % 3
	if offset > 0 {
		result.WriteString(str[:offset])
	}
	for i := offset; i < len(str); i += 3 {
		if result.Len() > 0 {
			result.WriteString(",")
		}
		result.WriteString(str[i : i+3])
	}
	return result.String()
}

// stripANSI removes ANSI escape codes from a string.
func stripANSI(s string) string {
	var result strings.Builder
	inEscape := false

	for i := 0; i < len(s); i++ {
		if s[i] == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if (s[i] >= 'a' && s[i] <= 'z') || (s[i] >= 'A' && s[i] <= 'Z') {
				inEscape = false
			}
			continue
		}
		result.WriteByte(s[i])
	}

	return result.String()
}
