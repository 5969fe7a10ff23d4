// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	flags := &configFlags{}
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective run settings as YAML",
		Long: `Config resolves settings the same way run does (defaults, then --config,
then explicit flags) and prints them. The output is a valid --config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			data, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	flags.register(cmd)

	return cmd
}
