package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lwch/logging"
	"github.com/lwch/morphdict"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	root := &cobra.Command{
		Use:           "morphdict",
		Short:         "Load and package morphological analyzer dictionaries",
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "yaml config file")
	load := func(args []string) (morphdict.Config, error) {
		cfg, err := morphdict.LoadConfig(cfgFile)
		if err != nil {
			return cfg, err
		}
		if len(args) > 0 {
			cfg.Location = args[0]
		}
		return cfg, nil
	}
	root.AddCommand(newInspectCmd(load), newPackCmd(load))
	return root
}

func newInspectCmd(load func([]string) (morphdict.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [location]",
		Short: "Load a dictionary and print what was loaded",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(args)
			if err != nil {
				return err
			}
			src, closeFn, err := cfg.NewSource()
			if err != nil {
				return err
			}
			defer closeFn()
			ds, err := morphdict.New(src).LoadSync(context.Background(), cfg.Location)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ds.Summary())
			return nil
		},
	}
}

func newPackCmd(load func([]string) (morphdict.Config, error)) *cobra.Command {
	var dir, prefix string
	cmd := &cobra.Command{
		Use:   "pack [location]",
		Short: "Copy a dictionary into a kv store usable with source kv",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(args)
			if err != nil {
				return err
			}
			if cfg.Source == "kv" {
				return fmt.Errorf("pack needs a fs or http source")
			}
			src, closeFn, err := cfg.NewSource()
			if err != nil {
				return err
			}
			defer closeFn()
			kv, err := morphdict.OpenKVSource(dir)
			if err != nil {
				return err
			}
			defer kv.Close()
			n, err := kv.Pack(context.Background(), src, cfg.Location, prefix)
			if err != nil {
				logging.Error("pack %s: %v", cfg.Location, err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "packed %d bytes into %s\n", n, dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "to", "dict.kv", "kv store directory")
	cmd.Flags().StringVar(&prefix, "prefix", "dict", "key prefix, used as location with source kv")
	return cmd
}
