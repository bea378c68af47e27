package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"secrulelang/ruleset"
	"secrulelang/secrule"
)

type dumpInput struct {
	Name     secrule.InputType       `yaml:"name"`
	Selector secrule.SelectorVariant `yaml:"selector,omitempty"`
	Key      string                  `yaml:"key,omitempty"`
}

type dumpOperator struct {
	Negated bool                 `yaml:"negated,omitempty"`
	Type    secrule.OperatorType `yaml:"type"`
	Arg     string               `yaml:"arg,omitempty"`
}

type dumpAction struct {
	Name secrule.ActionType `yaml:"name"`
	Arg  *string            `yaml:"arg,omitempty"`
}

type dumpRule struct {
	File     string       `yaml:"file"`
	Line     int          `yaml:"line"`
	Inputs   []dumpInput  `yaml:"inputs"`
	Operator dumpOperator `yaml:"operator"`
	Actions  []dumpAction `yaml:"actions,omitempty"`
}

func toDump(d ruleset.Directive) dumpRule {
	r := d.Rule
	out := dumpRule{
		File:     d.File,
		Line:     d.Line,
		Operator: dumpOperator{Negated: r.Operator.Negated, Type: r.Operator.Type, Arg: r.Operator.Arg},
	}

	for _, in := range r.Inputs {
		key, _ := in.Selector.Arg()
		out.Inputs = append(out.Inputs, dumpInput{Name: in.Name, Selector: in.Selector.Variant(), Key: key})
	}

	for _, a := range r.Actions {
		da := dumpAction{Name: a.Type}
		if a.HasArg {
			arg := a.Arg
			da.Arg = &arg
		}
		out.Actions = append(out.Actions, da)
	}

	return out
}

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump FILE",
		Short: "Print the typed model of a rule file as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := a.loader(ruleset.Options{Policy: a.cfg.Parse.ErrorPolicy}).Load(cmd.Context(), args[0])
			if rs == nil {
				return err
			}
			// With collect_all, dump what parsed and log the rest.
			for _, e := range multierr.Errors(err) {
				a.logger.Warn().Err(e).Msg("Skipping directive")
			}

			var rules []dumpRule
			for _, d := range rs.Directives {
				if d.Rule != nil {
					rules = append(rules, toDump(d))
				}
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(rules); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
