// Command hipack-get extracts a single value out of a HiPack document by
// walking a sequence of trailing positional arguments against it: each
// argument is used as a dict key if the current value is a dict, or parsed
// as an integer and used as a list index if the current value is a list.
// Grounded on _examples/original_source/tools/hipack-get.c, which resolves
// its "[key...]" arguments the same way rather than accepting a single
// dotted-path string.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hipack-lang/go-hipack"
)

var (
	file            string
	showAnnotations bool
	log             = logrus.StandardLogger()
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "hipack-get <-|PATH> [key...]",
		Short:        "Extract a value from a HiPack document by a sequence of keys and indices",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         runGet,
	}
	cmd.Flags().BoolVarP(&showAnnotations, "annotations", "a", false, "also print the resolved value's annotation names")
	return cmd
}

func runGet(cmd *cobra.Command, args []string) error {
	file = args[0]
	keys := args[1:]

	r := os.Stdin
	if file != "-" {
		f, err := os.Open(file)
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
			return fmt.Errorf("%d:%d: %s", perr.Line, perr.Column, perr.Message)
		}
		return err
	}

	val, err := resolve(hipack.DictValue(dict), keys)
	if err != nil {
		return err
	}

	printValue(cmd, val)
	return nil
}

// resolve walks val through each key in turn: a dict value consumes key as
// a lookup, a list value consumes key as a base-10 index, and anything else
// is an error since the path has nowhere left to descend.
func resolve(val hipack.Value, keys []string) (hipack.Value, error) {
	cur := val
	for _, key := range keys {
		switch cur.Kind() {
		case hipack.KindDict:
			d, _ := cur.AsDict()
			v, found := d.Get(key)
			if !found {
				return hipack.Value{}, fmt.Errorf("key %q not found", key)
			}
			cur = v
		case hipack.KindList:
			lst, _ := cur.AsList()
			n, err := strconv.Atoi(key)
			if err != nil {
				return hipack.Value{}, fmt.Errorf("%q is not a valid list index: %w", key, err)
			}
			if n < 0 || n >= lst.Len() {
				return hipack.Value{}, fmt.Errorf("index %d out of range (len %d)", n, lst.Len())
			}
			cur = lst.At(n)
		default:
			return hipack.Value{}, fmt.Errorf("value is neither a dict nor a list, cannot apply key %q", key)
		}
	}
	return cur, nil
}

func printValue(cmd *cobra.Command, val hipack.Value) {
	out := cmd.OutOrStdout()
	switch val.Kind() {
	case hipack.KindInteger:
		i, _ := val.AsInteger()
		fmt.Fprintln(out, i)
	case hipack.KindFloat:
		f, _ := val.AsFloat()
		fmt.Fprintln(out, f)
	case hipack.KindBool:
		b, _ := val.AsBool()
		fmt.Fprintln(out, b)
	case hipack.KindString:
		s, _ := val.AsString()
		fmt.Fprintln(out, s)
	case hipack.KindList, hipack.KindDict:
		d := hipack.NewDict()
		d.Set("_", val)
		buf, err := hipack.Marshal(d, hipack.Compact)
		if err != nil {
			log.WithError(err).Error("failed to format container value")
			return
		}
		fmt.Fprintln(out, strings.TrimSuffix(strings.TrimPrefix(string(buf), "_"), ","))
	}

	if showAnnotations {
		if a := val.Annotations(); a != nil {
			fmt.Fprintln(out, "annotations:", strings.Join(a.Names(), ", "))
		}
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Error("hipack-get failed")
		os.Exit(1)
	}
}
