// Package ruleset loads SecRule files: it follows Include directives, parses every directive and keeps them in file order.
package ruleset

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"secrulelang/secrule"
)

// ErrCyclicInclude is returned when a file includes itself, directly or through other files.
var ErrCyclicInclude = errors.New("cyclic include detected")

// DirectiveError is a directive that failed to parse.
type DirectiveError struct {
	File string
	Line int
	Text string
	Err  error
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Err)
}

func (e *DirectiveError) Unwrap() error {
	return e.Err
}

// Directive is one statement of a rule file. Rule is nil for directives other than SecRule, which are kept verbatim.
type Directive struct {
	File string
	Line int
	Text string
	Rule *secrule.SecRule

	// AfterFailure is set when directives right before this one failed to parse and were left out.
	AfterFailure bool
}

// RuleSet is the directives of a rule file and the files it includes, in file order.
type RuleSet struct {
	Directives []Directive
}

// Rules returns the parsed SecRule directives in order.
func (rs *RuleSet) Rules() (rules []secrule.SecRule) {
	for _, d := range rs.Directives {
		if d.Rule != nil {
			rules = append(rules, *d.Rule)
		}
	}
	return
}

// Serialize writes one directive per line. Rules are written in canonical form, other directives as read.
func (rs *RuleSet) Serialize(w io.Writer) error {
	for _, d := range rs.Directives {
		if d.Rule != nil {
			if err := d.Rule.Serialize(w); err != nil {
				return err
			}
		} else if _, err := io.WriteString(w, d.Text); err != nil {
			return err
		}

		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
