package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/otterscale/kubeclient"
	"github.com/otterscale/kubeclient/apierrors"
	"github.com/otterscale/kubeclient/watch"

	"github.com/otterscale/kubeclient/internal/config"
)

func NewWatchCommand(conf *config.Config) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     "watch <resource> [<resource>...]",
		Short:   "Stream change events for one or more resources",
		Example: "kubeclient watch pods deployments --namespace=kube-system",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, conf, args)
		},
	}

	return cmd, nil
}

// runWatch streams each requested resource on its own goroutine until
// the context is cancelled. A stream that ends (server-side timeout,
// connection loss) is reopened from the last seen resourceVersion with
// jittered backoff.
func runWatch(cmd *cobra.Command, conf *config.Config, resourceNames []string) error {
	cs, err := newClientset(conf)
	if err != nil {
		return err
	}
	defer cs.Close()

	g, ctx := errgroup.WithContext(cmd.Context())
	for _, name := range resourceNames {
		ops, err := lookupResource(name)
		if err != nil {
			return err
		}
		if ops.watch == nil {
			return fmt.Errorf("resource %q is not watchable", name)
		}
		g.Go(func() error {
			return watchResource(ctx, cmd, conf, cs, ops)
		})
	}

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func watchResource(ctx context.Context, cmd *cobra.Command, conf *config.Config, cs *kubeclient.Clientset, ops resourceOps) error {
	opts := listOptions(conf)
	retry := newBackoff(time.Second, 30*time.Second)

	for {
		w, err := ops.watch(ctx, cs, conf.Namespace(), opts)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			// A 410 means the stored resourceVersion is too old to
			// resume from; restart from the current state.
			if apierrors.IsGone(err) {
				opts.ResourceVersion = ""
				continue
			}
			if !apierrors.IsUnauthorized(err) && !apierrors.IsNotFound(err) {
				slog.Warn("watch failed, retrying", "kind", ops.kind, "error", err)
				if !sleepCtx(ctx, retry.Next()) {
					return nil
				}
				continue
			}
			return err
		}

		if drainWatch(ctx, cmd, w, ops.kind, &opts.ResourceVersion) {
			retry.Reset()
		}
		w.Stop()

		if ctx.Err() != nil {
			return nil
		}
		if !sleepCtx(ctx, retry.Next()) {
			return nil
		}
	}
}

// drainWatch prints events until the stream ends or ctx is cancelled,
// tracking the last resourceVersion for resumption. Returns true when
// at least one event arrived.
func drainWatch(ctx context.Context, cmd *cobra.Command, w watch.Interface, kind string, resourceVersion *string) bool {
	defer w.Stop()

	received := false
	for {
		select {
		case <-ctx.Done():
			return received
		case event, ok := <-w.ResultChan():
			if !ok {
				return received
			}
			received = true
			if event.Object == nil {
				slog.Debug("undecodable watch event", "kind", kind, "type", event.Type)
				continue
			}
			name := objectName(event.Object)
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s/%s\n", event.Type, kind, name)
			if meta := event.Object.Object("metadata"); meta != nil {
				if rv := meta.String("resource_version"); rv != "" {
					*resourceVersion = rv
				}
			}
		}
	}
}
