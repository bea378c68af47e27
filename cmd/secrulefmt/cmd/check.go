package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"secrulelang/ruleset"
	"secrulelang/secrule/validate"
)

var errCheckFailed = errors.New("check failed")

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Parse and validate rule files",
		Long:  `Parse rule files, following includes, and report every directive that fails to parse and every validation finding. Exits non-zero if there are errors.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l := a.loader(ruleset.Options{Policy: ruleset.CollectAll})
			out := cmd.OutOrStdout()
			failed := false

			for _, file := range args {
				rs, err := l.Load(cmd.Context(), file)
				for _, e := range multierr.Errors(err) {
					var derr *ruleset.DirectiveError
					if !errors.As(e, &derr) {
						// Not a directive problem, e.g. an unreadable file.
						return e
					}
					a.logger.Debug().Str("file", derr.File).Int("line", derr.Line).Str("directive", derr.Text).Msg("Directive failed to parse")
					fmt.Fprintf(out, "%s:%d: error: %s\n", derr.File, derr.Line, derr.Err)
					failed = true
				}
				if rs == nil {
					continue
				}

				// Finding indexes count rules only. A rule after a failed directive starts a gap.
				var rules []ruleset.Directive
				var gaps []int
				afterFailure := false
				for _, d := range rs.Directives {
					afterFailure = afterFailure || d.AfterFailure
					if d.Rule == nil {
						continue
					}
					if afterFailure {
						gaps = append(gaps, len(rules))
						afterFailure = false
					}
					rules = append(rules, d)
				}

				findings := validate.ValidateWithGaps(rs.Rules(), gaps)
				for _, f := range findings {
					d := rules[f.RuleIndex]
					fmt.Fprintf(out, "%s:%d: %s: %s\n", d.File, d.Line, f.Severity, f.Msg)
				}
				if validate.HasErrors(findings) {
					failed = true
				}

				a.logger.Info().Str("file", file).Int("rules", len(rules)).Int("findings", len(findings)).Msg("Checked rule file")
			}

			if failed {
				return errCheckFailed
			}
			return nil
		},
	}
}
