package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/1broseidon/tdawm/internal/config"
)

func newConfigCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := loadConfig(v)
			if err != nil {
				return err
			}
			for _, f := range res.Files {
				fmt.Fprintf(cmd.OutOrStdout(), "loaded: %s\n", f)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "config: ok")
			return nil
		},
	}

	var defaults bool
	printCmd := &cobra.Command{
		Use:   "print",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if !defaults {
				res, err := loadConfig(v)
				if err != nil {
					return err
				}
				cfg = res.Config
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	printCmd.Flags().BoolVar(&defaults, "defaults", false, "print the built-in defaults instead")

	cmd.AddCommand(validate, printCmd)
	return cmd
}
