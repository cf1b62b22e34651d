package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// profile holds per-user defaults. Command-line flags win over the profile,
// and the profile wins over environment variables.
type profile struct {
	Database profileDatabase `toml:"database"`
	Export   profileExport   `toml:"export"`
}

type profileDatabase struct {
	Driver string `toml:"driver,omitempty"`
	URL    string `toml:"url,omitempty"`
}

type profileExport struct {
	Format string `toml:"format,omitempty"`
}

// defaultProfilePath is $XDG_CONFIG_HOME/ledgerctl/config.toml.
func defaultProfilePath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ledgerctl", "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ledgerctl", "config.toml")
}

// loadProfile reads path. A missing file is an empty profile.
func loadProfile(path string) (profile, error) {
	var p profile
	if _, err := toml.DecodeFile(path, &p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return profile{}, nil
		}
		return profile{}, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return p, nil
}

func saveProfile(path string, p profile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating profile dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating profile: %w", err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(p)
}

// applyProfile fills the flags the user did not pass with profile values.
func applyProfile(flags *pflag.FlagSet, p profile) error {
	defaults := map[string]string{
		"driver": p.Database.Driver,
		"db":     p.Database.URL,
		"format": p.Export.Format,
	}
	for name, value := range defaults {
		f := flags.Lookup(name)
		if f == nil || f.Changed || value == "" {
			continue
		}
		if err := f.Value.Set(value); err != nil {
			return fmt.Errorf("profile value for %s: %w", name, err)
		}
	}
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective database settings and profile location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "profile: %s\n", flagProfile)
		fmt.Fprintf(out, "driver:  %s\n", flagDriver)
		fmt.Fprintf(out, "db:      %s\n", flagDSN)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current --driver and --db as the profile defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, err := loadProfile(flagProfile)
		if err != nil {
			return err
		}
		p.Database.Driver = flagDriver
		p.Database.URL = flagDSN
		if err := saveProfile(flagProfile, p); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", flagProfile)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
