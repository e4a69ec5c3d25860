package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goplus/nativelib/internal/build"
	"github.com/goplus/nativelib/internal/env"
	"github.com/goplus/nativelib/internal/pkgconfig"
	"github.com/goplus/nativelib/pkgs/pcfile"
)

var pkgConfigBin string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate descriptors and loader modules",
	Long: `Generate writes a pkg-config descriptor for every active unit declared in the
configuration, and a loader module for every unit owning shared libraries.
Files whose content is unchanged are not rewritten.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&pkgConfigBin, "pkg-config", "pkg-config", "pkg-config executable used to resolve peers outside the package")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	root, f, err := loadConfig()
	if err != nil {
		return err
	}
	platform := env.Current()
	units, err := f.Units(platform.Markers())
	if err != nil {
		return err
	}

	client := pkgconfig.New(
		pkgconfig.WithPath(pkgConfigBin),
		pkgconfig.WithSearchPath(descriptorDirs(root, units)...),
	)
	g := build.New(build.Options{
		Root:       root,
		Fallbacks:  f.Fallbacks(),
		ImportPath: f.ImportPath,
		Registry:   pkgconfig.NewRegistry(),
		Lookup:     client.Lookup,
		Logger:     logger,
	})
	res, err := g.Generate(units)
	if err != nil {
		return fmt.Errorf("failed to generate: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, a := range res.Artifacts {
		fmt.Fprintln(out, a)
	}
	if len(res.SearchPaths) > 0 {
		fmt.Fprintf(out, "PKG_CONFIG_PATH=%s\n", env.SearchPath(os.Getenv("PKG_CONFIG_PATH"), res.SearchPaths...))
	}
	for _, e := range res.Entries {
		fmt.Fprintf(out, "pkg_config: %s = %s\n", e.Name, e.Package)
	}
	return nil
}

// descriptorDirs lists the directories of every declared descriptor, so
// peers generated by earlier passes of this package are found by pkg-config.
func descriptorDirs(root string, units []*pcfile.Unit) []string {
	var dirs []string
	seen := make(map[string]bool)
	for _, u := range units {
		dir := filepath.Join(root, filepath.FromSlash(u.Dir()))
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
