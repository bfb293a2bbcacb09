package runner

import (
	"context"
	"strings"
)

// runPostCommand hands the report to report.post_command. A failing hook
// is logged and never fails the run.
func (r *implRunner) runPostCommand(ctx context.Context, reportPath string) {
	fields := strings.Fields(r.cfg.Report.PostCommand)
	if len(fields) == 0 {
		return
	}

	args := append(fields[1:len(fields):len(fields)], reportPath)
	r.logger.Info(ctx, "Running post command: %s %s", fields[0], strings.Join(args, " "))

	out, err := r.executor.Execute(ctx, fields[0], args...)
	if err != nil {
		r.logger.Warn(ctx, "Post command failed: %v", err)
		return
	}
	if out = strings.TrimSpace(out); out != "" {
		r.logger.Debug(ctx, "Post command output: %s", out)
	}
}
