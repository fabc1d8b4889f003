// Command hipack-cat reads one or more HiPack documents and writes them
// back out, normalized through the writer. With no file arguments it reads
// a single document from stdin.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hipack-lang/go-hipack"
)

var (
	compact bool
	log     = logrus.StandardLogger()
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "hipack-cat [file...]",
		Short:        "Normalize and print HiPack documents",
		SilenceUsage: true,
		RunE:         runCat,
	}
	cmd.Flags().BoolVarP(&compact, "compact", "c", false, "write compact output instead of indented")
	return cmd
}

func runCat(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"-"}
	}

	mode := hipack.Indented
	if compact {
		mode = hipack.Compact
	}

	var failures int
	for _, path := range args {
		if err := catOne(cmd, path, mode); err != nil {
			log.WithFields(logrus.Fields{"file": path, "error": err}).Error("failed to process document")
			failures++
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d documents failed", failures, len(args))
	}
	return nil
}

func catOne(cmd *cobra.Command, path string, mode hipack.Mode) error {
	r := os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	dict, err := hipack.Parse(r)
	if err != nil {
		var perr *hipack.ParseError
		if errors.As(err, &perr) {
			return fmt.Errorf("%s:%d:%d: %s", path, perr.Line, perr.Column, perr.Message)
		}
		return err
	}

	out, err := hipack.Marshal(dict, mode)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Error("hipack-cat failed")
		os.Exit(1)
	}
}
