package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"secrulelang/secrule"
)

func newVarsCmd(a *app) *cobra.Command {
	var kind string

	c := &cobra.Command{
		Use:   "vars",
		Short: "List the recognized variables, operators or actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var names []string
			switch kind {
			case "inputs":
				for _, v := range secrule.InputTypeVariants() {
					names = append(names, v.Name())
				}
			case "operators":
				for _, v := range secrule.OperatorTypeVariants() {
					names = append(names, "@"+v.Name())
				}
			case "actions":
				for _, v := range secrule.ActionTypeVariants() {
					names = append(names, v.Name())
				}
			default:
				return fmt.Errorf("unknown kind %q, expected inputs, operators or actions", kind)
			}

			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}

	c.Flags().StringVar(&kind, "kind", "inputs", "what to list: inputs, operators or actions")
	return c
}
