package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/eim-dev/eim-client/pkg/client"
	"github.com/eim-dev/eim-client/pkg/protocol"
)

func pluginsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "Scan, browse and load plugins",
	}

	cmd.AddCommand(
		pluginScanCmd(a),
		pluginBrowseCmd(a),
		pluginLoadCmd(a),
		pluginManagerCmd(a),
	)
	return cmd
}

func pluginScanCmd(a *app) *cobra.Command {
	var (
		wait    bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Start a VST scan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), a, func(ctx context.Context, c *client.Client) error {
				changed := make(chan bool, 4)
				sub := c.Watch(protocol.ClientboundScanVSTs, func() {
					select {
					case changed <- c.Store().Scanning():
					default:
					}
				})
				defer sub.Close()

				if err := c.ScanVSTs(ctx); err != nil {
					return err
				}
				success("scan started")
				if !wait {
					return nil
				}

				deadline := time.NewTimer(timeout)
				defer deadline.Stop()
				for {
					select {
					case scanning := <-changed:
						if !scanning {
							success("scan finished")
							return nil
						}
						info("scanning...")
					case <-deadline.C:
						return fmt.Errorf("%w: scan still running after %s", client.ErrTimeout, timeout)
					case <-c.Done():
						return c.Err()
					case <-ctx.Done():
						return ctx.Err()
					}
				}
			})
		},
	}

	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "Wait until the scan finishes")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "Give up waiting after this long")

	return cmd
}

func pluginBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [PATH]",
		Short: "List a folder of the plugin browser",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return withClient(cmd.Context(), a, func(ctx context.Context, c *client.Client) error {
				x, err := c.GetExplorerData(ctx, protocol.ExplorerPlugins, path)
				if err != nil {
					return err
				}

				tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "TYPE\tNAME\tIDENTIFIER")
				for _, d := range x.Dirs {
					fmt.Fprintf(tw, "dir\t%s\t\n", d)
				}
				for _, f := range x.Files {
					e := protocol.ParsePluginEntry(f)
					fmt.Fprintf(tw, "plugin\t%s\t%s\n", e.Name, e.Identifier)
				}
				return tw.Flush()
			})
		},
	}
}

func pluginLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load INDEX IDENTIFIER",
		Short: "Load a plugin onto a track",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return withClient(cmd.Context(), a, func(ctx context.Context, c *client.Client) error {
				if err := c.LoadPlugin(ctx, int32(index), args[1]); err != nil {
					return err
				}
				success("loaded %s on track %d", args[1], index)
				return nil
			})
		},
	}
}

func pluginManagerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "manager",
		Short: "Open the backend's plugin manager window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), a, func(ctx context.Context, c *client.Client) error {
				return c.OpenPluginManager(ctx)
			})
		},
	}
}
