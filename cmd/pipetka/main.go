package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pipetka/pipetka/internal/config"
	"github.com/pipetka/pipetka/internal/format"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var version = "dev" // Injected at build time via ldflags

var log = commonlog.GetLogger("pipetka.cli")

// options holds the persistent flags shared by every command.
type options struct {
	configPath string
	envFile    string
	verbose    int
	json       bool
}

// loadConfig reads the env file and the config file. Commands that do not
// need configuration never call it, so a broken pipetka.hcl can still be
// formatted.
func (o *options) loadConfig() (*config.Config, error) {
	if err := config.LoadEnv(o.envFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}
	log.Debugf("config: addr=%s colors=%d names=%d", cfg.Server.Addr, cfg.Clustering.Colors, len(cfg.Names))
	return cfg, nil
}

// emit writes v as indented JSON when --json is set, otherwise calls text.
func (o *options) emit(w io.Writer, v any, text func(io.Writer)) error {
	if !o.json {
		text(w)
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "pipetka",
		Short:         "Color tools: conversion, naming, contrast, palettes and image extraction",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(opts.verbose, nil)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", config.DefaultFile, "path to config file")
	pf.StringVar(&opts.envFile, "env", ".env", "dotenv file with PIPETKA_* overrides")
	pf.CountVarP(&opts.verbose, "verbose", "v", "log verbosity (repeat for more)")
	pf.BoolVar(&opts.json, "json", false, "print JSON instead of text")

	rootCmd.AddCommand(
		newDescribeCmd(opts),
		newContrastCmd(opts),
		newNamesCmd(opts),
		newPaletteCmd(opts),
		newGradientCmd(opts),
		newVisionCmd(opts),
		newExtractCmd(opts),
		newExportCmd(opts),
		newServeCmd(opts),
		newFmtCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

// errNeedsFormatting makes fmt --check exit non-zero without printing an error.
var errNeedsFormatting = errors.New("files need formatting")

func newFmtCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "fmt [files...]",
		Short: "Format pipetka.hcl files",
		Long:  "Format one or more config files in-place. Prints the name of each file that was modified.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hasErrors := false
			needsFormatting := false

			for _, path := range args {
				changed, err := format.File(path, !check)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
					hasErrors = true
					continue
				}
				if changed {
					fmt.Fprintln(cmd.OutOrStdout(), path)
					needsFormatting = true
				}
			}

			if hasErrors {
				return fmt.Errorf("some files could not be formatted")
			}
			if check && needsFormatting {
				return errNeedsFormatting
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&check, "check", "c", false, "check if files are formatted (do not write changes)")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errNeedsFormatting) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
