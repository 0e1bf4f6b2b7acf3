package components

import (
	"context"
	"fmt"
	"log/slog"

	"chargeshare/internal/pkg/config"
	"chargeshare/internal/usecase/commands"

	"github.com/hibiken/asynq"
	"go.uber.org/fx"
)

const TaskSweepCompletions = "booking:sweep"

var WorkerModule = fx.Module("worker",
	fx.Invoke(StartSweepWorker),
)

// StartSweepWorker runs the periodic completion sweep: active bookings whose
// end time has passed are settled and marked completed.
func StartSweepWorker(lc fx.Lifecycle, cfg config.Config, sweeper commands.CompletionSweeper, logger *slog.Logger) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{Concurrency: 1})
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskSweepCompletions, func(ctx context.Context, _ *asynq.Task) error {
		swept, err := sweeper.SweepDueCompletions(ctx)
		if err != nil {
			return err
		}
		if swept > 0 {
			logger.Info("swept overdue bookings", "count", swept)
		}
		return nil
	})

	scheduler := asynq.NewScheduler(redisOpt, nil)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			spec := fmt.Sprintf("@every %s", cfg.Sweep.Interval)
			if _, err := scheduler.Register(spec, asynq.NewTask(TaskSweepCompletions, nil)); err != nil {
				return err
			}
			if err := srv.Start(mux); err != nil {
				return err
			}
			if err := scheduler.Start(); err != nil {
				srv.Shutdown()
				return err
			}
			logger.Info("sweep worker started", "interval", cfg.Sweep.Interval.String())
			return nil
		},
		OnStop: func(_ context.Context) error {
			scheduler.Shutdown()
			srv.Shutdown()
			return nil
		},
	})
}
