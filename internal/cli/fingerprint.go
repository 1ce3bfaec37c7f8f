package cli

import (
	"github.com/spf13/cobra"

	"github.com/relix-lang/relix/internal/ir"
	"github.com/relix-lang/relix/internal/loader"
)

// NewFingerprintCommand creates the fingerprint command. It prints the
// content-addressed identity of a module document, which is the stable part
// of the render cache key - useful when inspecting cache state.
func NewFingerprintCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "fingerprint <module-file>",
		Short:         "Print the content-addressed fingerprint of an IR module",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
			}

			m, err := loader.LoadFile(args[0])
			if err != nil {
				formatter.Error(ErrCodeLoad, err.Error())
				return WrapExitError(ExitCommandError, "load failed", err)
			}
			fingerprint, err := ir.ModuleFingerprint(m)
			if err != nil {
				formatter.Error(ErrCodeRender, err.Error())
				return WrapExitError(ExitFailure, "fingerprint failed", err)
			}
			if formatter.Format == "json" {
				return formatter.Success(map[string]string{"fingerprint": fingerprint})
			}
			return formatter.Success(fingerprint)
		},
	}
}
