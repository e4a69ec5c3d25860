package internal

import (
	"log"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goplus/nativelib/internal/config"
)

var (
	rootDir    string
	configPath string
	verbose    bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "nativelib",
	Short: "nativelib generates pkg-config files and loaders for bundled shared libraries",
	Long: `nativelib generates relocatable pkg-config descriptors for the native libraries
bundled in a package, and the loader modules that load them at import time.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogger,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "C", ".", "Package root directory")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file (default <root>/"+config.DefaultFile+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug output")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		log.Fatal(err)
	}
}

func setupLogger(cmd *cobra.Command, args []string) error {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		cfg.Level.SetLevel(zapcore.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// configFile returns the configuration path for the current flags.
func configFile() string {
	if configPath != "" {
		return configPath
	}
	return filepath.Join(rootDir, config.DefaultFile)
}

// loadConfig loads the package configuration and its root directory.
func loadConfig() (root string, f *config.File, err error) {
	root, err = filepath.Abs(rootDir)
	if err != nil {
		return "", nil, err
	}
	f, err = config.Load(configFile())
	if err != nil {
		return "", nil, err
	}
	return root, f, nil
}
