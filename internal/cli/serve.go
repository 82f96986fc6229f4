package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pageview/internal/api"
	"github.com/matzehuels/pageview/pkg/cache"
	"github.com/matzehuels/pageview/pkg/manifest"
	"github.com/matzehuels/pageview/pkg/render"
)

// shutdownTimeout bounds how long serve waits for in-flight requests
// after the context is canceled.
const shutdownTimeout = 5 * time.Second

// newServeCmd creates the serve command running the HTTP API.
func newServeCmd() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve [manifest]",
		Short: "Serve a document over the HTTP API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			logger := loggerFromContext(ctx)
			if addr == "" {
				addr = cfg.Server.Addr
			}

			doc, err := manifest.Load(args[0])
			if err != nil {
				return err
			}

			c, err := cfg.newCache(ctx, noCache)
			if err != nil {
				return err
			}
			defer c.Close()

			st, err := cfg.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			// Server entries are namespaced so a shared backend can
			// also hold CLI render entries without key collisions.
			keyer := cache.NewScopedKeyer(nil, "api:")
			renderer := render.NewRenderer(c, keyer, cacheTTL)
			server := &http.Server{
				Addr:    addr,
				Handler: api.NewServer(doc, renderer, st, logger).Router(),
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("serving", "addr", addr, "title", doc.Title, "pages", doc.Layout.Len())
				errCh <- server.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, then :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}
