package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	httpapi "github.com/flowlens/flowlens/http"
	"github.com/flowlens/flowlens/store"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve extraction runs over a REST API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.setup()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Server.Port = port
			}

			st, err := store.Open(cfg.DB.Path)
			if err != nil {
				return err
			}
			app := httpapi.NewRunAPI(st)

			go func() {
				if err := app.Listen(cfg.Server.Port); err != nil {
					log.WithError(err).Fatal("could not init rest api")
				}
			}()
			log.WithField("port", cfg.Server.Port).Info("rest api listening")

			ch := make(chan os.Signal, 1)
			signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
			<-ch
			return app.Shutdown()
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen address, e.g. :8080")
	return cmd
}
