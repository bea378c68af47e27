package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"secrulelang/ruleset"
)

func newFmtCmd(a *app) *cobra.Command {
	var write, list bool

	c := &cobra.Command{
		Use:   "fmt FILE...",
		Short: "Print rule files in canonical form",
		Long: `Print rule files in canonical form. Each file is formatted on its own; Include directives are kept as they are.
Comments and blank lines are not preserved.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l := a.loader(ruleset.Options{Policy: ruleset.FailFast, KeepIncludes: true})

			for _, file := range args {
				rs, err := l.Load(cmd.Context(), file)
				if err != nil {
					return err
				}

				var buf bytes.Buffer
				if err := rs.Serialize(&buf); err != nil {
					return err
				}

				switch {
				case list:
					orig, err := os.ReadFile(file)
					if err != nil {
						return err
					}
					if !bytes.Equal(orig, buf.Bytes()) {
						fmt.Fprintln(cmd.OutOrStdout(), file)
					}
				case write:
					if err := writeFile(file, buf.Bytes()); err != nil {
						return err
					}
					a.logger.Info().Str("file", file).Int("directives", len(rs.Directives)).Msg("Formatted rule file")
				default:
					if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
						return err
					}
				}
			}

			return nil
		},
	}

	c.Flags().BoolVarP(&write, "write", "w", false, "write result to the source file instead of stdout")
	c.Flags().BoolVarP(&list, "list", "l", false, "list files whose formatting differs")
	return c
}

func writeFile(path string, b []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, info.Mode().Perm())
}
