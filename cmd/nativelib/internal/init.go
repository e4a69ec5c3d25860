package internal

import (
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goplus/nativelib/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create a configuration file",
	Long:  `Init writes a nativelib.yaml declaring one unit named after the package.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	name := args[0]

	file := configFile()
	if _, err := os.Stat(file); err == nil {
		return fmt.Errorf("%s already exists", file)
	}

	f := &config.File{
		Name:        name,
		Description: name,
		PCFiles: []config.PCFile{{
			PCFile:          path.Join(name, name+".pc"),
			IncludeDir:      path.Join(name, "include"),
			LibDir:          path.Join(name, "lib"),
			SharedLibraries: []string{name},
		}},
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", file, err)
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", file, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s\n", file)
	return nil
}
