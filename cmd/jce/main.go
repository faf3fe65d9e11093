// Command jce decodes a JCE-encoded hex string with no schema and prints
// the raw field_id -> value mapping.
//
// Generalizes the original's argparse + pprint.pprint(JceDecoder.decode_bytes(...))
// shim (_examples/original_source/jce/__main__.py) into a cobra command the
// way moby-moby's cli/command tree builds subcommands, and swaps pprint for
// godebug/pretty (already the teacher's own test-diffing dependency,
// creachadair-pson/wirepb/wire_test.go) since the decoded value is a
// map[int]wire.Value bag, not a JSON-shaped document - pretty.Print shows
// arbitrary nested Go values without a lossy round-trip through
// interface{}.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kylelemons/godebug/pretty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jcewire/jce"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stdin))
}

// run builds and executes the command, returning the process exit code:
// 0 on success, 2 on a parse error (bad hex, malformed wire bytes), 1 on an
// I/O error (spec §6 CLI exit codes).
func run(args []string, stdout io.Writer, stdin io.Reader) int {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	exitCode := 0
	cmd := &cobra.Command{
		Use:   "jce [encoded]",
		Short: "Decode a JCE-encoded hex string and print the raw field mapping",
		Long: `jce reads a hex-encoded JCE byte string - either as the single
positional argument, or from stdin/a file named with -f - and prints the
raw field_id -> value mapping with no schema applied.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")

			hexText, err := readHexInput(args, path, stdin)
			if err != nil {
				log.WithError(err).Error("reading input")
				exitCode = 1
				return nil
			}

			raw, err := hex.DecodeString(strings.TrimSpace(hexText))
			if err != nil {
				log.WithError(err).Error("input is not valid hex")
				exitCode = 2
				return nil
			}

			decoded, err := jce.DecodeRaw(raw)
			if err != nil {
				log.WithError(err).Error("decoding JCE bytes")
				exitCode = 2
				return nil
			}

			fmt.Fprintln(stdout, pretty.Sprint(decoded))
			return nil
		},
	}
	cmd.Flags().StringP("file", "f", "", `read hex input from a file ("-" for stdin) instead of the positional argument`)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		log.WithError(err).Error("jce")
		return 1
	}
	return exitCode
}

func readHexInput(args []string, path string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if path == "" || path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
