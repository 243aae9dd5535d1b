package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lmgraph/internal/server"
	"github.com/matzehuels/lmgraph/pkg/cache"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen    string
		root      string
		cacheKind string
		redisAddr string
		maxBody   int64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve landmark graph exports over HTTP",
		Long: `Serve starts an HTTP API. POST a description to /graphs to export it;
GET /graphs/{id}, /graphs/{id}/dot and /graphs/{id}/svg return the results.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("listen") {
				listen = c.Config.Listen
			}
			if root == "" {
				dir, err := dataDir()
				if err != nil {
					return err
				}
				root = filepath.Join(dir, "graphs")
			}
			c.Config.Cache = cacheKind
			if cmd.Flags().Changed("redis-addr") {
				c.Config.RedisAddr = redisAddr
			}
			if err := c.Config.validate(); err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv, err := server.New(server.Config{
				Root:    root,
				Runner:  runner,
				Logger:  loggerFromContext(cmd.Context()),
				MaxBody: maxBody,
			})
			if err != nil {
				return err
			}

			printInfo("Serving on %s", StyleLink.Render("http://"+listen))
			printKeyValue("root", root)
			printKeyValue("cache", cacheKind)
			printNextStep("Upload a description", "curl --data-binary @landmarks.toml http://"+listen+"/graphs")
			return srv.ListenAndServe(cmd.Context(), listen)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", defaultListen, "address to listen on")
	cmd.Flags().StringVar(&root, "root", "", "directory for uploaded graphs (default $XDG_DATA_HOME/lmgraph/graphs)")
	cmd.Flags().StringVar(&cacheKind, "cache", string(cache.KindMemory), "render cache: memory, file, redis or none")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "redis address for --cache redis (default from config)")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBody, "maximum upload size in bytes")

	return cmd
}
