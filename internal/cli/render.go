package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/relix-lang/relix/internal/codegen"
	"github.com/relix-lang/relix/internal/ir"
	"github.com/relix-lang/relix/internal/loader"
	"github.com/relix-lang/relix/internal/store"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Output       string // output file path; empty writes to stdout
	Cache        string // render cache database path; empty disables caching
	DefinePrefix string
	DefinesFrom  string
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <module-file>",
		Short: "Render an IR module document as Elixir source",
		Long: `Render a resolved IR module document (CUE or JSON) as Elixir source.

With --cache, rendered output is stored in a content-addressed SQLite
cache and unchanged modules are served from it without re-rendering.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Errors go through our own formatter
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().StringVar(&opts.Cache, "cache", "", "render cache database path")
	cmd.Flags().StringVar(&opts.DefinePrefix, "define-prefix", "", "prefix for macro-presence flag keys")
	cmd.Flags().StringVar(&opts.DefinesFrom, "defines-from", "", "application config namespace for presence flags")

	return cmd
}

func runRender(opts *RenderOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	m, err := loader.LoadFile(path)
	if err != nil {
		formatter.Error(ErrCodeLoad, err.Error())
		return WrapExitError(ExitCommandError, "load failed", err)
	}
	formatter.VerboseLog("Loaded module %q with %d form(s)", m.Name, len(m.Forms))

	cfg := codegen.Config{
		DefinePrefix: opts.DefinePrefix,
		DefinesFrom:  opts.DefinesFrom,
	}

	source, err := renderWithCache(cmd.Context(), formatter, opts, m, cfg)
	if err != nil {
		return err
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(source), 0o644); err != nil {
			formatter.Error(ErrCodeWrite, err.Error())
			return WrapExitError(ExitCommandError, "write failed", err)
		}
		formatter.VerboseLog("Wrote %s", opts.Output)
		return nil
	}
	return formatter.Raw("source", source)
}

// renderWithCache renders the module, consulting and filling the render
// cache when one is configured.
func renderWithCache(ctx context.Context, formatter *OutputFormatter, opts *RenderOptions, m *ir.Module, cfg codegen.Config) (string, error) {
	if opts.Cache == "" {
		return render(formatter, m, cfg)
	}

	prefix := cfg.DefinePrefix
	if prefix == "" {
		prefix = codegen.DefaultDefinePrefix
	}
	key, err := ir.RenderKey(m, prefix, cfg.DefinesFrom)
	if err != nil {
		formatter.Error(ErrCodeRender, err.Error())
		return "", WrapExitError(ExitFailure, "fingerprint failed", err)
	}

	st, err := store.Open(opts.Cache)
	if err != nil {
		formatter.Error(ErrCodeCache, err.Error())
		return "", WrapExitError(ExitCommandError, "cache open failed", err)
	}
	defer st.Close()

	if rec, err := st.Get(ctx, key, codegen.Version); err != nil {
		formatter.Error(ErrCodeCache, err.Error())
		return "", WrapExitError(ExitCommandError, "cache read failed", err)
	} else if rec != nil {
		formatter.VerboseLog("Cache hit %s", key)
		return rec.Source, nil
	}

	source, err := render(formatter, m, cfg)
	if err != nil {
		return "", err
	}

	fingerprint, err := ir.ModuleFingerprint(m)
	if err != nil {
		formatter.Error(ErrCodeRender, err.Error())
		return "", WrapExitError(ExitFailure, "fingerprint failed", err)
	}
	rec := store.Record{
		Key:               key,
		ModuleFingerprint: fingerprint,
		Source:            source,
		RendererVersion:   codegen.Version,
		SessionID:         store.NewSessionID(),
	}
	if err := st.Put(ctx, rec); err != nil {
		formatter.Error(ErrCodeCache, err.Error())
		return "", WrapExitError(ExitCommandError, "cache write failed", err)
	}
	formatter.VerboseLog("Cached render %s", key)
	return source, nil
}

func render(formatter *OutputFormatter, m *ir.Module, cfg codegen.Config) (string, error) {
	source, err := codegen.RenderString(m, cfg)
	if err != nil {
		formatter.Error(ErrCodeRender, err.Error())
		return "", WrapExitError(ExitFailure, "render failed", err)
	}
	return source, nil
}
