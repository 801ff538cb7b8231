// Package config loads tool settings from the user config file and
// JBLAUNCH_* environment variables.
package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/jblaunch/jblaunch/internal/paths"
)

// Settings is the resolved configuration used by commands and the daemon.
type Settings struct {
	// ConfigRoots are extra directories scanned for IDE config trees, in
	// addition to the platform defaults.
	ConfigRoots []string
	// ToolboxScriptsDir overrides the JetBrains Toolbox scripts location.
	ToolboxScriptsDir string
	// DisabledProducts lists product codes to skip during discovery.
	DisabledProducts []string
	// ScanTTL is how long discovered installations stay cached.
	ScanTTL time.Duration
	// ShowBranches toggles git branch lookup in listings.
	ShowBranches bool
	LogLevel     string
	HistoryPath  string
	ProductsPath string
}

// Init wires viper to ~/.config/jblaunch/config.yaml (or an explicit file)
// and the JBLAUNCH_ env prefix. Missing config file is fine; defaults apply.
func Init(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(paths.DefaultConfigDir())
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("JBLAUNCH")

	viper.SetDefault("scan_ttl", "30s")
	viper.SetDefault("show_branches", true)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("toolbox_scripts_dir", paths.ToolboxScriptsDir())
	viper.SetDefault("history_path", paths.DefaultHistoryPath())
	viper.SetDefault("products_path", paths.DefaultProductsPath())

	_ = viper.ReadInConfig() // absent file is not an error
}

// Load materializes Settings from the current viper state.
func Load() Settings {
	ttl := viper.GetDuration("scan_ttl")
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return Settings{
		ConfigRoots:       viper.GetStringSlice("config_roots"),
		ToolboxScriptsDir: viper.GetString("toolbox_scripts_dir"),
		DisabledProducts:  viper.GetStringSlice("disabled_products"),
		ScanTTL:           ttl,
		ShowBranches:      viper.GetBool("show_branches"),
		LogLevel:          viper.GetString("log_level"),
		HistoryPath:       viper.GetString("history_path"),
		ProductsPath:      viper.GetString("products_path"),
	}
}
