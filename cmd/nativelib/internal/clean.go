package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goplus/nativelib/internal/build"
	"github.com/goplus/nativelib/internal/env"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove generated descriptors and loader modules",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	root, f, err := loadConfig()
	if err != nil {
		return err
	}
	units, err := f.Units(env.Current().Markers())
	if err != nil {
		return err
	}
	removed, err := build.New(build.Options{Root: root, Logger: logger}).Clean(units)
	if err != nil {
		return fmt.Errorf("failed to clean: %w", err)
	}
	for _, rel := range removed {
		fmt.Fprintln(cmd.OutOrStdout(), rel)
	}
	return nil
}
