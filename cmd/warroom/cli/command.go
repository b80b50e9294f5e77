package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/warroom/internal/period"
	"github.com/odyssey-erp/warroom/jobs"
)

// ErrUsage is returned for unknown subcommands or bad flags.
var ErrUsage = errors.New("usage: warroom [warm [-date YYYY-MM-DD] [-refresh] | queue]")

type jobRunner interface {
	Trigger(ctx context.Context, name string, payload jobs.PanelWarmupPayload) (*asynq.TaskInfo, error)
	InspectQueue(ctx context.Context) (QueueStats, error)
}

// Run executes one maintenance subcommand and writes its report to out.
func Run(ctx context.Context, runner jobRunner, args []string, out io.Writer) error {
	if len(args) == 0 {
		return ErrUsage
	}
	switch args[0] {
	case "warm":
		fs := flag.NewFlagSet("warm", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		date := fs.String("date", "", "day to warm, defaults to today")
		refresh := fs.Bool("refresh", false, "drop cached panels first")
		if err := fs.Parse(args[1:]); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		if *date != "" {
			if _, err := period.ParseDate(*date); err != nil {
				return err
			}
		}
		info, err := runner.Trigger(ctx, JobPanelWarmup, jobs.PanelWarmupPayload{Date: *date, Refresh: *refresh})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "enqueued %s id=%s queue=%s\n", info.Type, info.ID, info.Queue)
		return err
	case "queue":
		stats, err := runner.InspectQueue(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "queue=%s pending=%d active=%d scheduled=%d retry=%d\n",
			stats.Queue, stats.Pending, stats.Active, stats.Scheduled, stats.Retry)
		return err
	}
	return ErrUsage
}
