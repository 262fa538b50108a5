package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/eim-dev/eim-client/pkg/client"
)

func configCmd(a *app) *cobra.Command {
	var (
		paths  bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the backend configuration",
		Long: `Fetch the backend configuration document and print it as indented
JSON or YAML. With --paths only the VST search paths are listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output, outputJSON, outputYAML); err != nil {
				return err
			}
			return withClient(cmd.Context(), a, func(ctx context.Context, c *client.Client) error {
				cfg, err := c.GetConfig(ctx)
				if err != nil {
					return err
				}

				if paths {
					formats := make([]string, 0, len(cfg.VSTSearchPaths))
					for f := range cfg.VSTSearchPaths {
						formats = append(formats, f)
					}
					sort.Strings(formats)
					for _, f := range formats {
						fmt.Printf("%s:\n", f)
						for _, p := range cfg.VSTSearchPaths[f] {
							info("%s", p)
						}
					}
					return nil
				}

				var doc any
				if err := json.Unmarshal([]byte(cfg.Raw), &doc); err != nil {
					// Not JSON after all; print it as received.
					fmt.Println(cfg.Raw)
					return nil
				}
				return printValue(output, doc)
			})
		},
	}

	cmd.Flags().BoolVar(&paths, "paths", false, "List only the VST search paths")
	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "Output format: json or yaml")

	return cmd
}
