package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hako/durafmt"
	"github.com/nguyentantai21042004/pump-station/internal/stats"
)

// Write renders the markdown report and, if enabled, its docx copy
func (w *implWriter) Write(ctx context.Context, name string, summary stats.Summary, destDir string) ([]string, error) {
	base, err := fileName(name)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}

	md := Markdown(name, w.clock.Now(), summary)
	mdPath := filepath.Join(destDir, base+".md")
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return nil, fmt.Errorf("write markdown report: %w", err)
	}
	w.logger.Info(ctx, "Report written: %s", mdPath)
	paths := []string{mdPath}

	if w.docx {
		docxPath := filepath.Join(destDir, base+".docx")
		if err := markdownToDocx(md, docxPath); err != nil {
			w.logger.Warn(ctx, "Failed to write docx report %s: %v", docxPath, err)
			return paths, nil
		}
		w.logger.Info(ctx, "Report written: %s", docxPath)
		paths = append(paths, docxPath)
	}

	return paths, nil
}

// Markdown renders a summary as a markdown document
func Markdown(name string, generated time.Time, s stats.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", name)
	fmt.Fprintf(&b, "_%s_\n\n", generated.Format("2006-01-02 15:04"))

	b.WriteString("## Station\n\n")
	fmt.Fprintf(&b, "- **Pumps:** %d\n", s.Pumps)
	fmt.Fprintf(&b, "- **Queue capacity:** %d\n", s.QueueCapacity)
	fmt.Fprintf(&b, "- **Status:** %s\n\n", status(s))

	b.WriteString("## Cars\n\n")
	fmt.Fprintf(&b, "- **Arrived:** %d\n", s.Arrived)
	fmt.Fprintf(&b, "- **Served:** %d\n", s.Served)
	fmt.Fprintf(&b, "- **Dropped:** %d\n", s.Dropped)
	fmt.Fprintf(&b, "- **Peak queue:** %d\n", s.PeakQueue)
	fmt.Fprintf(&b, "- **Average wait:** %s\n", humanize(s.AvgWait))
	fmt.Fprintf(&b, "- **Longest wait:** %s\n", humanize(s.MaxWait))
	fmt.Fprintf(&b, "- **Average service:** %s\n", humanize(s.AvgService))
	fmt.Fprintf(&b, "- **Run time:** %s\n\n", humanize(s.Duration))

	b.WriteString("## Pumps\n\n")
	for _, p := range s.PerPump {
		fmt.Fprintf(&b, "- **Pump %d:** %d cars, busy %s\n", p.ID, p.Served, humanize(p.Busy))
	}

	if len(s.Warnings) > 0 {
		b.WriteString("\n## Configuration warnings\n\n")
		for _, w := range s.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	if len(s.Violations) > 0 {
		b.WriteString("\n## Violations\n\n")
		for _, v := range s.Violations {
			fmt.Fprintf(&b, "- %s\n", v)
		}
	}

	return b.String()
}

// fileName keeps the last element of a run name so reports stay inside
// their directory
func fileName(name string) (string, error) {
	base := filepath.Base(filepath.Clean(name))
	switch base {
	case ".", "..", string(filepath.Separator):
		return "", fmt.Errorf("invalid report name %q", name)
	}
	return base, nil
}

func status(s stats.Summary) string {
	switch {
	case !s.Complete:
		return "incomplete"
	case len(s.Violations) > 0:
		return "complete with violations"
	default:
		return "complete"
	}
}

func humanize(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return durafmt.Parse(d.Round(time.Millisecond)).LimitFirstN(2).String()
}
