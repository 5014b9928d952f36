package cli

import (
	"github.com/spf13/cobra"

	"github.com/sherif414/floattree/internal/server"
)

// serveCommand creates the "serve" command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve hierarchies over HTTP",
		Long: `Serve stored hierarchies over a REST API.

Open/close requests run full cascade coordination server-side and persist
the result, so every client observes the same coordinated state.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			st, err := openStore(cmd.Context(), cfg, c.Logger)
			if err != nil {
				return err
			}
			defer st.Close()

			srv := server.New(server.Config{
				Addr:   cfg.Server.Addr,
				Store:  st,
				Logger: c.Logger,
			})
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
