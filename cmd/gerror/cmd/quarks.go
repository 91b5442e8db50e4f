package cmd

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xgx-io/xgx-gerror/quark"
)

type quarkEntry struct {
	Text  string `json:"text"`
	Quark uint32 `json:"quark"`
}

func newInternCmd(opts *options, e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "intern <text>...",
		Short: "Intern strings and print their quarks",
		Long: `Intern each argument in the process quark table and print its id.
Repeated arguments are served from the cache without another registry call.

Example:
  gerror intern g-file-error-quark g_convert_error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := make([]quarkEntry, 0, len(args))
			for _, text := range args {
				q := e.quarks.Get(text)
				e.log.Debug("interned", zap.String("text", text), zap.Uint32("quark", q.Uint()))
				entries = append(entries, quarkEntry{Text: text, Quark: q.Uint()})
			}
			return printQuarks(cmd, opts, entries)
		},
	}
}

func newResolveCmd(opts *options, e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <quark>...",
		Short: "Print the strings behind quark ids",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := make([]quarkEntry, 0, len(args))
			for _, arg := range args {
				id, err := strconv.ParseUint(arg, 10, 32)
				if err != nil {
					return errors.Wrapf(err, "quark %q", arg)
				}
				q := quark.FromRaw(uint32(id))
				if q.BytesIn(e.lib) == nil {
					return errors.Errorf("quark %d is not interned", id)
				}
				text, err := q.TextIn(e.lib)
				if err != nil {
					return err
				}
				entries = append(entries, quarkEntry{Text: text, Quark: q.Uint()})
			}
			return printQuarks(cmd, opts, entries)
		},
	}
}

func printQuarks(cmd *cobra.Command, opts *options, entries []quarkEntry) error {
	out := cmd.OutOrStdout()
	if opts.json {
		b, err := json.Marshal(entries)
		if err != nil {
			return errors.Wrap(err, "encode quarks")
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}
	for _, en := range entries {
		if _, err := fmt.Fprintf(out, "%d\t%s\n", en.Quark, en.Text); err != nil {
			return err
		}
	}
	return nil
}
