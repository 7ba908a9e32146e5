package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/julianstephens/fitbot/internal/auth"
	"github.com/julianstephens/fitbot/internal/bot"
	"github.com/julianstephens/fitbot/internal/logger"
	"github.com/julianstephens/fitbot/internal/reminder"
	"github.com/julianstephens/fitbot/internal/tracker"
	"github.com/julianstephens/fitbot/internal/transport"
)

// RunCmd starts the bot: dispatcher, reminder scheduler, and the console
// transport, all wired off this process until interrupted.
type RunCmd struct{}

func (c *RunCmd) Run(appCtx *Context) error {
	if err := appCtx.Store.Load(); err != nil {
		return err
	}
	defer appCtx.Store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	service := tracker.NewService(appCtx.Store)
	gate := auth.NewAllowList(appCtx.Config.AllowedIDs)

	b := bot.New(service, gate, nil, appCtx.Config.Timezone)
	console := transport.NewConsole(b)
	b.SetMessenger(console)

	schedCfg, err := appCtx.Config.SchedulerConfig()
	if err != nil {
		return err
	}
	scheduler := reminder.New(schedCfg, b.EnqueueReminder)
	b.SetScheduler(scheduler)

	go b.Run(ctx)
	go scheduler.Run(ctx)

	logger.Info("Bot started", "timezone", appCtx.Config.Timezone)
	if err := console.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
