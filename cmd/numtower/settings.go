package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"numtower/internal/config"
)

// settings is the effective configuration: numtower.toml overlaid with
// explicitly set flags.
var settings = config.Default()

func loadSettings(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	path, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return err
	}

	overrides := []struct {
		flag string
		dst  *string
	}{
		{"color", &cfg.Output.Color},
		{"trace", &cfg.Trace.Output},
		{"trace-level", &cfg.Trace.Level},
		{"trace-format", &cfg.Trace.Format},
	}
	for _, o := range overrides {
		if !flags.Changed(o.flag) {
			continue
		}
		v, err := flags.GetString(o.flag)
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", o.flag, err)
		}
		*o.dst = v
	}
	// --trace alone implies a useful level.
	if flags.Changed("trace") && !flags.Changed("trace-level") && cfg.Trace.Level == "off" {
		cfg.Trace.Level = "detail"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	settings = cfg
	return nil
}
