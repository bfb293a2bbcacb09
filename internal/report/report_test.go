package report

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nguyentantai21042004/pump-station/internal/logger"
	"github.com/nguyentantai21042004/pump-station/internal/stats"
	"gotest.tools/v3/assert"
)

func sampleSummary() stats.Summary {
	return stats.Summary{
		Pumps:         2,
		QueueCapacity: 3,
		Arrived:       5,
		Served:        4,
		Dropped:       1,
		PeakQueue:     3,
		AvgWait:       1500 * time.Millisecond,
		MaxWait:       4 * time.Second,
		AvgService:    3 * time.Second,
		Duration:      90 * time.Second,
		Complete:      true,
		PerPump: []stats.PumpSummary{
			{ID: 1, Served: 3, Busy: 9 * time.Second},
			{ID: 2, Served: 1, Busy: 3 * time.Second},
		},
	}
}

func TestMarkdown(t *testing.T) {
	generated := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	md := Markdown("rush-hour", generated, sampleSummary())

	for _, want := range []string{
		"# rush-hour",
		"_2026-03-01 09:30_",
		"- **Pumps:** 2",
		"- **Status:** complete",
		"- **Served:** 4",
		"- **Dropped:** 1",
		"- **Average wait:** 1 second 500 milliseconds",
		"- **Run time:** 1 minute 30 seconds",
		"- **Pump 1:** 3 cars, busy 9 seconds",
	} {
		assert.Assert(t, strings.Contains(md, want), "missing %q in:\n%s", want, md)
	}
	assert.Assert(t, !strings.Contains(md, "## Violations"))
}

func TestMarkdownViolations(t *testing.T) {
	s := sampleSummary()
	s.Violations = []string{"C3 began service 2 times"}

	md := Markdown("broken", time.Now(), s)
	assert.Assert(t, strings.Contains(md, "- **Status:** complete with violations"))
	assert.Assert(t, strings.Contains(md, "## Violations\n\n- C3 began service 2 times"))
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{-time.Second, "0s"},
		{250 * time.Millisecond, "250ms"},
		{2 * time.Second, "2 seconds"},
	}
	for _, tt := range tests {
		assert.Equal(t, humanize(tt.in), tt.want)
	}
}

func TestWriteMarkdownOnly(t *testing.T) {
	dir := t.TempDir()
	w := New(logger.NewNop(), clockwork.NewFakeClock(), false)

	paths, err := w.Write(context.Background(), "run-1", sampleSummary(), filepath.Join(dir, "reports"))
	assert.NilError(t, err)
	assert.Equal(t, len(paths), 1)

	data, err := os.ReadFile(paths[0])
	assert.NilError(t, err)
	assert.Assert(t, strings.HasPrefix(string(data), "# run-1\n"))
}

func TestWriteDocx(t *testing.T) {
	dir := t.TempDir()
	w := New(logger.NewNop(), clockwork.NewFakeClock(), true)

	paths, err := w.Write(context.Background(), "run-2", sampleSummary(), dir)
	assert.NilError(t, err)
	assert.Equal(t, len(paths), 2)

	info, err := os.Stat(filepath.Join(dir, "run-2.docx"))
	assert.NilError(t, err)
	assert.Assert(t, info.Size() > 0)
}

func TestWriteKeepsReportsInDir(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(root, "reports")
	w := New(logger.NewNop(), clockwork.NewFakeClock(), false)

	paths, err := w.Write(context.Background(), "../escape", sampleSummary(), dest)
	assert.NilError(t, err)
	assert.DeepEqual(t, paths, []string{filepath.Join(dest, "escape.md")})

	_, err = os.Stat(filepath.Join(root, "escape.md"))
	assert.Assert(t, os.IsNotExist(err), "report written outside %s", dest)
}

func TestWriteRejectsEmptyName(t *testing.T) {
	w := New(logger.NewNop(), clockwork.NewFakeClock(), false)

	for _, name := range []string{"..", "/", ""} {
		_, err := w.Write(context.Background(), name, sampleSummary(), t.TempDir())
		assert.ErrorContains(t, err, "invalid report name", "name %q", name)
	}
}

func TestMarkdownWarnings(t *testing.T) {
	s := sampleSummary()
	s.Warnings = []string{"queue capacity must be between 1 and 10, got 0; using 1"}

	md := Markdown("clamped", time.Now(), s)
	assert.Assert(t, strings.Contains(md, "## Configuration warnings\n\n- queue capacity must be between 1 and 10, got 0; using 1"))
	assert.Assert(t, strings.Contains(md, "- **Status:** complete\n"))
}
