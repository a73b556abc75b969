package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/larch-c/xfbank/internal/app"
	"github.com/larch-c/xfbank/internal/gateway"
	"github.com/larch-c/xfbank/internal/ui"
)

type serveRunner struct {
	app *app.App
}

func NewServeCmd(application *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bot webhook gateway",
		Long: `Run the HTTP gateway the chat platform delivers messages to, along with
the periodic persistence flush. Shuts down cleanly on SIGINT/SIGTERM,
saving state one last time.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &serveRunner{app: application}
			return runner.Run()
		},
	}

	return cmd
}

func (r *serveRunner) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go r.app.RunFlusher(ctx, r.app.Config.Persist.FlushInterval)

	srv := &http.Server{
		Addr:    r.app.Config.Server.Addr,
		Handler: gateway.NewServer(r.app.Handler).Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	ui.PrintTitle("xfbank gateway")
	pterm.Info.Printfln("Listening on %s, data file %s", r.app.Config.Server.Addr, r.app.Store.Path())

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		pterm.Info.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	return nil
}
