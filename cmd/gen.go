package cmd

import (
	"os"

	"github.com/cottand/dupe/generate"
	"github.com/cottand/dupe/signature"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var GenCmd = &cobra.Command{
	Use:   "gen [flags] SIGNATURE...",
	Short: "Generate duplicable handles for interface signatures",
	Long: `Generate duplicable handles for interface signatures.

A signature is an interface reference with optional type parameters and an
optional where clause:

  Shape
  [T any] Shape[T]
  [R] Decoder[R] where R: io.Reader + io.Closer`,
	Example: `  //go:generate dupegen gen -o shape_dupe.go "[T any] Shape[T]"`,
	RunE:         runGen,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

var (
	genPackage  *string
	genOutPath  *string
	genHandle   *string
	genFunc     *string
	genImports  *map[string]string
	genLogLevel *int
)

func init() {
	genPackage = GenCmd.Flags().StringP("package", "p", os.Getenv("GOPACKAGE"), "package of the generated file (defaults to $GOPACKAGE)")
	genOutPath = GenCmd.Flags().StringP("out", "o", "", "output path (defaults to stdout)")
	genHandle = GenCmd.Flags().String("handle", "", "handle type name, only with a single signature")
	genFunc = GenCmd.Flags().String("func", "", "duplication function name, only with a single signature")
	genImports = GenCmd.Flags().StringToStringP("import", "i", nil, "package name=import path used by signatures")
	genLogLevel = logLevelFlag(GenCmd)
}

func runGen(cmd *cobra.Command, args []string) error {
	setLogLevel(genLogLevel)

	if (*genHandle != "" || *genFunc != "") && len(args) > 1 {
		return errors.New("--handle and --func can only be used with a single signature")
	}
	if *genPackage == "" {
		return errors.New("no package name: pass --package or run from go generate")
	}

	targets := make([]generate.Target, len(args))
	for i, arg := range args {
		sig, err := signature.Parse(arg)
		if err != nil {
			return err
		}
		targets[i] = generate.Target{Signature: sig, Handle: *genHandle, Func: *genFunc}
	}

	src, err := generate.Source(generate.Options{
		Package:  *genPackage,
		Imports:  *genImports,
		Filename: *genOutPath,
	}, targets...)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), *genOutPath, src)
}
