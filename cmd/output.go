package cmd

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cottand/dupe/internal/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func logLevelFlag(c *cobra.Command) *int {
	return c.Flags().IntP("log-level", "l", int(slog.LevelWarn), "log level")
}

func setLogLevel(level *int) {
	log.SetLevel(slog.Level(*level))
}

// writeOutput writes src to path, or to stdout when path is empty or "-".
func writeOutput(stdout io.Writer, path string, src []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(src)
		return errors.Wrap(err, "could not write to stdout")
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return errors.Wrap(err, "could not create output directory")
	}
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return errors.Wrapf(err, "could not write %s", path)
	}
	log.Section("dupegen").Info("wrote file", "path", path, "bytes", len(src))
	return nil
}
