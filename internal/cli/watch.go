package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/castello/castello-go/internal/model"
	"github.com/castello/castello-go/internal/poll"
	"github.com/castello/castello-go/internal/view"
)

func newWatchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch [game-id]",
		Short: "Follow a game live",
		Long: `Poll the game snapshot on a fixed cadence and re-render the view whenever
it changes. One-shot events such as the game starting, history growing, or
the weather reveal are announced as they happen.

Press Ctrl+C to stop.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGameID(args)
			if err != nil {
				return err
			}
			return watchGame(id, interval)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", poll.DefaultConfig().Interval, "Poll interval")
	return cmd
}

func watchGame(gameID model.GameID, interval time.Duration) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cfg.Verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	pollCfg := poll.DefaultConfig()
	pollCfg.Interval = interval

	poller := poll.New(apiClient, gameID, identity.PlayerID(), pollCfg, logger)
	go poller.Run(ctx)

	v := &watchView{
		poller: poller,
		out:    NewOutput(cfg.Output),
		w:      os.Stdout,
		errw:   os.Stderr,
	}

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(v.w)
			return nil

		case ev, ok := <-poller.Events():
			if !ok {
				return nil
			}
			if v.handle(ev) {
				return nil
			}
		}
	}
}

// watchView holds the rendering state of one watch session
type watchView struct {
	poller *poll.Poller
	out    *Output
	w      io.Writer
	errw   io.Writer

	flags         view.Flags
	revealShowing bool
}

// handle renders one synchronizer event and reports whether the watch is done
func (v *watchView) handle(ev poll.Event) bool {
	switch ev.Type {
	case poll.EventSnapshot:
		g, found := v.poller.Snapshot()
		if !found {
			return false
		}
		v.flags = view.NextFlags(&g, v.flags)
		fmt.Fprintln(v.w)
		v.out.renderGame(g, identity, time.Now())
		switch view.ActiveModal(&g, identity, v.revealShowing) {
		case view.ModalWeather:
			fmt.Fprintln(v.w, "[ weather reveal ]")
		case view.ModalPotion:
			fmt.Fprintln(v.w, "[ a duel awaits - drink a potion? ]")
		case view.ModalCombat:
			fmt.Fprintln(v.w, "[ duel in progress ]")
		}
		if g.Status == model.GameStatusFinished {
			v.out.PrintHistory(g)
			return true
		}

	case poll.EventNavigate:
		fmt.Fprintln(v.w, ">> The raid begins - you are in!")

	case poll.EventHistoryGrew:
		if g, found := v.poller.Snapshot(); found {
			if groups := view.GroupHistory(g.History); len(groups) > 0 {
				last := groups[len(groups)-1]
				fmt.Fprintf(v.w, ">> %s: %s\n", last.Label(), last.Lines[len(last.Lines)-1])
			}
		}

	case poll.EventWeatherRevealShow:
		v.revealShowing = true
		if g, found := v.poller.Snapshot(); found && g.WeatherActive() {
			fmt.Fprintf(v.w, ">> The weather is revealed: %s!\n", g.WeatherStatus)
		}

	case poll.EventWeatherRevealHide:
		v.revealShowing = false

	case poll.EventNotice:
		// The last-good view stands, but the failure itself is always
		// surfaced, verbose or not.
		if ev.Err != nil {
			fmt.Fprintf(v.errw, "poll error: %s\n", ev.Err)
		}
	}
	return false
}
