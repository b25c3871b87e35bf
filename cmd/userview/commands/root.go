package commands

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/projector"
	"github.com/zoobzio/projector/user"
)

// errNotLoaded is returned when the screen ends in the failure state.
var errNotLoaded = errors.New("user could not be loaded")

// Execute builds the root command from the environment and runs it.
func Execute() error {
	root, err := newRootCmd()
	if err != nil {
		log.Printf("userview: %v", err)
		return err
	}
	return root.Execute()
}

func newRootCmd() (*cobra.Command, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:           "userview",
		Short:         "Fetch a user once and render the loading, card, empty or error view",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := run(cmd, cfg)
			if err != nil {
				cmd.PrintErrln("Error:", err)
			}
			return err
		},
	}

	flags := root.Flags()
	flags.DurationVar(&cfg.Delay, "delay", cfg.Delay, "stub repository delay")
	flags.StringVar(&cfg.Fail, "fail", cfg.Fail, "make the stub repository fail with this message")
	flags.StringVar(&cfg.Name, "name", cfg.Name, "name returned by the stub repository")
	flags.IntVar(&cfg.Age, "age", cfg.Age, "age returned by the stub repository (0 = unknown)")
	flags.StringVar(&cfg.File, "file", cfg.File, "read the user record from a JSON or YAML file")
	flags.BoolVar(&cfg.Wait, "wait", cfg.Wait, "with --file, wait for the file to be created")
	flags.StringVar(&cfg.Format, "format", cfg.Format, "record format: json, yaml or auto")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "log projector events")

	return root, nil
}

func run(cmd *cobra.Command, cfg Config) error {
	repo, err := buildRepository(cfg)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		hookEvents()
		defer capitan.Shutdown()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := projector.New(ctx, repo, user.Classify)

	screen := user.NewScreen(cmd.OutOrStdout())
	unbind := screen.Bind(p)
	defer unbind()

	state, err := p.Wait(ctx)
	if err != nil {
		return err
	}
	if err := screen.Err(); err != nil {
		return err
	}
	if state.Kind() == projector.KindFailure {
		if cfg.Verbose {
			log.Printf("fetch error: %v", state.Err())
		}
		return errNotLoaded
	}
	return nil
}

// hookEvents logs projector lifecycle signals.
func hookEvents() {
	capitan.Hook(projector.ProjectorStateChanged, func(_ context.Context, e *capitan.Event) {
		oldState, _ := projector.KeyOldState.From(e)
		newState, _ := projector.KeyNewState.From(e)
		log.Printf("state %s -> %s", oldState, newState)
	})
	capitan.Hook(projector.ProjectorFetchFailed, func(_ context.Context, e *capitan.Event) {
		msg, _ := projector.KeyError.From(e)
		log.Printf("fetch failed: %s", msg)
	})
	capitan.Hook(projector.ProjectorCancelled, func(_ context.Context, _ *capitan.Event) {
		log.Printf("cancelled before the user loaded")
	})
}
