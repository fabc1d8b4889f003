// Command hipack-roundtrip parses a HiPack document, writes it back out,
// re-parses the result, and reports whether the value tree survived the
// round trip (including annotations). Grounded on
// _examples/original_source/tools/hipack-roundtrip.c, which does the same
// write-then-reread-then-compare check through a temp file; this version
// keeps everything in memory and, unless -c restricts it to one mode,
// checks both the indented and compact writer outputs.
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
	compactOnly bool
	log         = logrus.StandardLogger()
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "hipack-roundtrip [-c] PATH",
		Short:        "Verify that a HiPack document round-trips through the writer",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runRoundtrip,
	}
	cmd.Flags().BoolVarP(&compactOnly, "compact", "c", false, "only check the compact writer mode")
	return cmd
}

func runRoundtrip(cmd *cobra.Command, args []string) error {
	path := args[0]
	r := os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	original, err := hipack.Parse(r)
	if err != nil {
		var perr *hipack.ParseError
		if errors.As(err, &perr) {
			return fmt.Errorf("[pass 1] %d:%d: %s", perr.Line, perr.Column, perr.Message)
		}
		return err
	}

	modes := []hipack.Mode{hipack.Indented, hipack.Compact}
	if compactOnly {
		modes = []hipack.Mode{hipack.Compact}
	}

	ok := true
	for _, mode := range modes {
		name := "indented"
		if mode == hipack.Compact {
			name = "compact"
		}

		out, err := hipack.Marshal(original, mode)
		if err != nil {
			log.WithFields(logrus.Fields{"mode": name, "error": err}).Error("marshal failed")
			ok = false
			continue
		}

		reparsed, err := hipack.Unmarshal(out)
		if err != nil {
			log.WithFields(logrus.Fields{"mode": name, "error": err}).Error("[pass 2] re-parse of marshaled output failed")
			ok = false
			continue
		}

		if !hipack.EqualAnnotated(hipack.DictValue(original), hipack.DictValue(reparsed)) {
			log.WithField("mode", name).Error("messages are different")
			ok = false
			continue
		}

		log.WithField("mode", name).Info("round trip OK")
	}

	if !ok {
		return errors.New("round trip verification failed")
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Error("hipack-roundtrip failed")
		os.Exit(1)
	}
}
