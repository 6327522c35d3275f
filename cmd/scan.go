package cmd

import (
	"path/filepath"
	"runtime"

	"github.com/cottand/dupe/generate"
	"github.com/cottand/dupe/internal/log"
	"github.com/cottand/dupe/scan"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var ScanCmd = &cobra.Command{
	Use:   "scan [packages]",
	Short: "Generate duplicable handles for interfaces marked " + scan.Directive,
	Long: `Generate duplicable handles for interfaces marked with a directive:

  //dupe:generate [handle=Name] [func=Name]
  type Shape interface { ... }

Each package with marked interfaces gets one generated file.`,
	RunE:         runScan,
	SilenceUsage: true,
}

var (
	scanOutName  *string
	scanDir      *string
	scanImports  *map[string]string
	scanLogLevel *int
)

func init() {
	scanOutName = ScanCmd.Flags().StringP("out", "o", "dupe_gen.go", "name of the file generated in each package")
	scanDir = ScanCmd.Flags().StringP("dir", "C", ".", "directory to resolve packages from")
	scanImports = ScanCmd.Flags().StringToStringP("import", "i", nil, "package name=import path used by constraints")
	scanLogLevel = logLevelFlag(ScanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	setLogLevel(scanLogLevel)
	logger := log.Section("scan")

	if filepath.Base(*scanOutName) != *scanOutName {
		return errors.Errorf("--out must be a file name, got %q", *scanOutName)
	}
	patterns := args
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	pkgs, err := scan.Load(cmd.Context(), *scanDir, patterns...)
	if err != nil {
		return err
	}
	if len(pkgs) == 0 {
		logger.Warn("no interfaces marked "+scan.Directive, "patterns", patterns)
		return nil
	}

	g := &errgroup.Group{}
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, pkg := range pkgs {
		g.Go(func() error {
			out := filepath.Join(pkg.Dir, *scanOutName)
			src, err := generate.Source(generate.Options{
				Package:  pkg.Name,
				Imports:  *scanImports,
				Filename: out,
			}, pkg.Targets...)
			if err != nil {
				return errors.Wrapf(err, "package %s", pkg.Path)
			}
			return writeOutput(cmd.OutOrStdout(), out, src)
		})
	}
	return g.Wait()
}
