// Package validate runs semantic checks over parsed rules that the typed model itself does not enforce.
package validate

import (
	"fmt"

	"secrulelang/ipaddresses"
	"secrulelang/secrule"
)

// Severity of a finding.
type Severity int

// Severities.
const (
	Warning Severity = iota + 1
	Error
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Finding is one problem found in a list of rules.
type Finding struct {
	Severity  Severity
	RuleIndex int // Index into the validated slice.
	RuleID    int // ID of the chain the rule belongs to, 0 if none.
	Msg       string
}

func (f Finding) String() string {
	if f.RuleID == 0 {
		return fmt.Sprintf("%s: rule %d: %s", f.Severity, f.RuleIndex, f.Msg)
	}
	return fmt.Sprintf("%s: rule %d (id %d): %s", f.Severity, f.RuleIndex, f.RuleID, f.Msg)
}

// Variables that hold a single value, so a key selector on them is meaningless.
var scalarInputs = map[secrule.InputType]bool{
	secrule.InputArgsCombinedSize:           true,
	secrule.InputDuration:                   true,
	secrule.InputFilesCombinedSize:          true,
	secrule.InputMatchedVar:                 true,
	secrule.InputMatchedVarName:             true,
	secrule.InputQueryString:                true,
	secrule.InputRemoteAddr:                 true,
	secrule.InputReqBodyProcessor:           true,
	secrule.InputRequestBasename:            true,
	secrule.InputRequestBody:                true,
	secrule.InputRequestFilename:            true,
	secrule.InputRequestLine:                true,
	secrule.InputRequestMethod:              true,
	secrule.InputRequestProtocol:            true,
	secrule.InputRequestURI:                 true,
	secrule.InputRequestURIRaw:              true,
	secrule.InputResponseBody:               true,
	secrule.InputResponseStatus:             true,
	secrule.InputUniqueID:                   true,
	secrule.InputMultipartStrictError:       true,
	secrule.InputMultipartUnmatchedBoundary: true,
	secrule.InputReqBodyError:               true,
	secrule.InputWebserverErrorLog:          true,
}

// IsScalar reports whether an input type holds a single value rather than a collection.
func IsScalar(t secrule.InputType) bool {
	return scalarInputs[t]
}

// Validate checks rules in file order. Rules joined by the chain action are checked as one chain:
// the first rule of a chain must have an id, ids must be unique across chains, and a chain may set its phase only once.
func Validate(rules []secrule.SecRule) []Finding {
	return ValidateWithGaps(rules, nil)
}

// ValidateWithGaps is Validate for rules with gaps: gaps holds the indexes of rules that directly follow
// directives that failed to parse. A chain never continues across a gap. A chain cut short by a gap
// is not reported as dangling, and the rule after the gap may be a continuation, so its missing ID is not reported.
func ValidateWithGaps(rules []secrule.SecRule, gaps []int) (findings []Finding) {
	seen := map[int]int{}
	gap := map[int]bool{}
	for _, i := range gaps {
		gap[i] = true
	}

	for start := 0; start < len(rules); {
		end := start
		for end < len(rules)-1 && rules[end].IsChained() && !gap[end+1] {
			end++
		}

		// After a gap, a chained predecessor means this rule may belong to a chain whose head is unknown.
		maybeContinuation := gap[start] && start > 0 && rules[start-1].IsChained()

		id, hasID := rules[start].ID()
		first, dup := seen[id]
		switch {
		case !hasID && maybeContinuation:
			// The head of this chain failed to parse.
		case !hasID:
			findings = append(findings, Finding{Severity: Error, RuleIndex: start, Msg: "missing ID"})
		case dup:
			findings = append(findings, Finding{Severity: Error, RuleIndex: start, RuleID: id, Msg: fmt.Sprintf("duplicate ID, first used by rule %d", first)})
		default:
			seen[id] = start
		}

		phaseSet := false
		for i := start; i <= end; i++ {
			r := rules[i]

			for _, in := range r.Inputs {
				if key, ok := in.Selector.Arg(); ok && IsScalar(in.Name) {
					findings = append(findings, Finding{Severity: Warning, RuleIndex: i, RuleID: id, Msg: fmt.Sprintf("selector %q on scalar variable %s", key, in.Name)})
				}
			}

			if r.Operator.Type == secrule.OpIPMatch {
				if _, err := ipaddresses.ParseMatchList(r.Operator.Arg); err != nil {
					findings = append(findings, Finding{Severity: Error, RuleIndex: i, RuleID: id, Msg: fmt.Sprintf("bad @ipMatch argument: %s", err)})
				}
			}

			if len(r.Actions.Args(secrule.ActionPhase)) == 0 {
				continue
			}
			if _, ok := r.Phase(); !ok {
				findings = append(findings, Finding{Severity: Error, RuleIndex: i, RuleID: id, Msg: fmt.Sprintf("unknown phase %q", r.Actions.Args(secrule.ActionPhase)[0])})
			}
			if phaseSet {
				findings = append(findings, Finding{Severity: Error, RuleIndex: i, RuleID: id, Msg: "rule chain has conflicting phases"})
			}
			phaseSet = true
		}

		if rules[end].IsChained() && end == len(rules)-1 {
			findings = append(findings, Finding{Severity: Warning, RuleIndex: end, RuleID: id, Msg: "chain action on last rule"})
		}

		start = end + 1
	}

	return
}

// HasErrors reports whether any finding is an error.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == Error {
			return true
		}
	}
	return false
}
