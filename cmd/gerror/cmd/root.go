package cmd

import (
	"go.uber.org/zap"

	"github.com/spf13/cobra"

	"github.com/xgx-io/xgx-gerror/native"
	"github.com/xgx-io/xgx-gerror/quark"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	charset string
	verbose bool
	json    bool
}

// env is what PersistentPreRunE builds for the subcommands.
type env struct {
	log    *zap.Logger
	lib    *native.Memory
	quarks *quark.Cache
}

// RootCmd returns a fresh command tree. Each call has its own flags and
// state, so tests can run commands independently.
func RootCmd() *cobra.Command {
	var (
		opts options
		e    env
	)

	root := &cobra.Command{
		Use:   "gerror",
		Short: "Inspect native error records and quarks",
		Long: `gerror exercises the GError/GQuark bindings from the command line:
intern strings into quarks, decode raw error messages the way a handle does,
and classify domain/code pairs against the shipped error domains.

Examples:
  gerror intern g-file-error-quark my-error-quark
  gerror decode --charset ISO-8859-1 --hex 636166e9
  gerror classify --domain g-file-error-quark --code 4`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			e.log = zap.NewNop()
			if opts.verbose {
				e.log = zap.L()
			}
			memOpts := []native.Option{native.WithLogger(e.log)}
			if opts.charset != "" {
				memOpts = append(memOpts, native.WithCharset(opts.charset))
			}
			e.lib = native.NewMemory(memOpts...)
			e.quarks = quark.NewCache(e.lib)
			native.SetLogger(e.log)

			e.log.Debug("native library ready", zap.String("charset", e.lib.Charset()))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.charset, "charset", "c", "", "locale charset for message decoding (default: from LC_ALL/LC_CTYPE/LANG)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log library diagnostics")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "print results as JSON")

	root.AddCommand(
		newInternCmd(&opts, &e),
		newResolveCmd(&opts, &e),
		newDecodeCmd(&opts, &e),
		newClassifyCmd(&opts, &e),
	)
	return root
}
