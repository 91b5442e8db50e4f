package cmd

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	gerror "github.com/xgx-io/xgx-gerror"
)

// recordFlags select the domain and code of the record a command builds.
type recordFlags struct {
	domain string
	code   int32
}

func (f *recordFlags) register(cmd *cobra.Command, defaultDomain string) {
	cmd.Flags().StringVar(&f.domain, "domain", defaultDomain, "error domain name")
	cmd.Flags().Int32Var(&f.code, "code", 0, "error code within the domain")
}

// newHandle allocates a record in e's library and hands it to a handle.
func (f *recordFlags) newHandle(e *env, msg []byte) *gerror.Error {
	d := e.quarks.Get(f.domain)
	return gerror.FromRecord(e.lib, e.lib.NewError(d.Uint(), f.code, msg))
}

func newDecodeCmd(opts *options, e *env) *cobra.Command {
	var (
		rf    recordFlags
		isHex bool
	)
	cmd := &cobra.Command{
		Use:   "decode <message>",
		Short: "Decode a raw message the way an error handle does",
		Long: `Store the message bytes in a native record and print what the handle's
Message returns: the bytes as UTF-8 if valid, else the whole-buffer locale
conversion, else a lossy rendering.

Examples:
  gerror decode "plain text"
  gerror decode --charset KOI8-R --hex cfdbc9c2cbc1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := []byte(args[0])
			if isHex {
				var err error
				if raw, err = hex.DecodeString(args[0]); err != nil {
					return errors.Wrap(err, "decode hex message")
				}
			}
			// Records hold C strings; anything after a NUL would be dropped.
			if i := bytes.IndexByte(raw, 0); i >= 0 {
				return errors.Errorf("message has a NUL byte at offset %d", i)
			}
			h := rf.newHandle(e, raw)
			defer h.Free()
			return printHandle(cmd, opts, h)
		},
	}
	rf.register(cmd, "g-file-error-quark")
	cmd.Flags().BoolVar(&isHex, "hex", false, "message argument is hex-encoded bytes")
	return cmd
}

type classification struct {
	Enum  string `json:"enum"`
	Kind  string `json:"kind"`
	Value string `json:"value,omitempty"`
	Code  int    `json:"code"`
}

func classify[E gerror.Enum](name string, h *gerror.Error) classification {
	m := gerror.ToDomain[E](h)
	c := classification{Enum: name, Kind: m.Kind.String(), Code: m.Code}
	if m.Kind == gerror.Known {
		c.Value = fmt.Sprint(m.Value)
	}
	return c
}

func newClassifyCmd(opts *options, e *env) *cobra.Command {
	var rf recordFlags
	var msg string
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a domain/code pair against the shipped domains",
		Example: `  gerror classify --domain g-file-error-quark --code 4
  gerror classify --domain g_convert_error --code 1 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h := rf.newHandle(e, []byte(msg))
			defer h.Free()

			results := []classification{
				classify[gerror.FileError]("FileError", h),
				classify[gerror.ConvertError]("ConvertError", h),
			}

			out := cmd.OutOrStdout()
			if opts.json {
				b, err := json.Marshal(results)
				if err != nil {
					return errors.Wrap(err, "encode classification")
				}
				_, err = fmt.Fprintln(out, string(b))
				return err
			}
			for _, r := range results {
				line := fmt.Sprintf("%s\t%s", r.Enum, r.Kind)
				switch r.Kind {
				case gerror.Known.String():
					line += "\t" + r.Value
				case gerror.Unknown.String():
					line += fmt.Sprintf("\tcode=%d", r.Code)
				}
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
	rf.register(cmd, "g-file-error-quark")
	cmd.Flags().StringVarP(&msg, "message", "m", "", "message stored in the record")
	return cmd
}

func printHandle(cmd *cobra.Command, opts *options, h *gerror.Error) error {
	out := cmd.OutOrStdout()
	switch {
	case opts.json:
		b, err := json.Marshal(h)
		if err != nil {
			return errors.Wrap(err, "encode error")
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	case opts.verbose:
		_, err := fmt.Fprintf(out, "%+v\n", h)
		return err
	default:
		_, err := fmt.Fprintln(out, h.Message())
		return err
	}
}
