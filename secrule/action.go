package secrule

import (
	"fmt"
	"io"
	"strings"

	"secrulelang/grammar"
	"secrulelang/parsetree"
	"secrulelang/secrule/vocab"
)

// ActionType is a rule action.
type ActionType int

// Action types.
const (
	_ ActionType = iota
	ActionAccuracy
	ActionAllow
	ActionAppend
	ActionAuditLog
	ActionBlock
	ActionCapture
	ActionChain
	ActionCtl
	ActionDeny
	ActionDeprecateVar
	ActionDrop
	ActionExec
	ActionExpireVar
	ActionID
	ActionInitCol
	ActionLog
	ActionLogData
	ActionMaturity
	ActionMsg
	ActionMultiMatch
	ActionNoAuditLog
	ActionNoLog
	ActionPass
	ActionPause
	ActionPhase
	ActionPrepend
	ActionProxy
	ActionRedirect
	ActionRev
	ActionSanitiseArg
	ActionSanitiseMatched
	ActionSanitiseMatchedBytes
	ActionSanitiseRequestHeader
	ActionSanitiseResponseHeader
	ActionSetEnv
	ActionSetRsc
	ActionSetSid
	ActionSetUID
	ActionSetVar
	ActionSeverity
	ActionSkip
	ActionSkipAfter
	ActionStatus
	ActionTransform
	ActionTag
	ActionVer
	ActionXmlns
)

type argPolicy int

const (
	argNone argPolicy = iota
	argRequired
	argOptional
)

var actionTypes = vocab.New(
	vocab.Entry[ActionType]{Symbol: ActionAccuracy, Name: "accuracy"},
	vocab.Entry[ActionType]{Symbol: ActionAllow, Name: "allow"},
	vocab.Entry[ActionType]{Symbol: ActionAppend, Name: "append"},
	vocab.Entry[ActionType]{Symbol: ActionAuditLog, Name: "auditlog"},
	vocab.Entry[ActionType]{Symbol: ActionBlock, Name: "block"},
	vocab.Entry[ActionType]{Symbol: ActionCapture, Name: "capture"},
	vocab.Entry[ActionType]{Symbol: ActionChain, Name: "chain"},
	vocab.Entry[ActionType]{Symbol: ActionCtl, Name: "ctl"},
	vocab.Entry[ActionType]{Symbol: ActionDeny, Name: "deny"},
	vocab.Entry[ActionType]{Symbol: ActionDeprecateVar, Name: "deprecatevar"},
	vocab.Entry[ActionType]{Symbol: ActionDrop, Name: "drop"},
	vocab.Entry[ActionType]{Symbol: ActionExec, Name: "exec"},
	vocab.Entry[ActionType]{Symbol: ActionExpireVar, Name: "expirevar"},
	vocab.Entry[ActionType]{Symbol: ActionID, Name: "id"},
	vocab.Entry[ActionType]{Symbol: ActionInitCol, Name: "initcol"},
	vocab.Entry[ActionType]{Symbol: ActionLog, Name: "log"},
	vocab.Entry[ActionType]{Symbol: ActionLogData, Name: "logdata"},
	vocab.Entry[ActionType]{Symbol: ActionMaturity, Name: "maturity"},
	vocab.Entry[ActionType]{Symbol: ActionMsg, Name: "msg"},
	vocab.Entry[ActionType]{Symbol: ActionMultiMatch, Name: "multiMatch"},
	vocab.Entry[ActionType]{Symbol: ActionNoAuditLog, Name: "noauditlog"},
	vocab.Entry[ActionType]{Symbol: ActionNoLog, Name: "nolog"},
	vocab.Entry[ActionType]{Symbol: ActionPass, Name: "pass"},
	vocab.Entry[ActionType]{Symbol: ActionPause, Name: "pause"},
	vocab.Entry[ActionType]{Symbol: ActionPhase, Name: "phase"},
	vocab.Entry[ActionType]{Symbol: ActionPrepend, Name: "prepend"},
	vocab.Entry[ActionType]{Symbol: ActionProxy, Name: "proxy"},
	vocab.Entry[ActionType]{Symbol: ActionRedirect, Name: "redirect"},
	vocab.Entry[ActionType]{Symbol: ActionRev, Name: "rev"},
	vocab.Entry[ActionType]{Symbol: ActionSanitiseArg, Name: "sanitiseArg"},
	vocab.Entry[ActionType]{Symbol: ActionSanitiseMatched, Name: "sanitiseMatched"},
	vocab.Entry[ActionType]{Symbol: ActionSanitiseMatchedBytes, Name: "sanitiseMatchedBytes"},
	vocab.Entry[ActionType]{Symbol: ActionSanitiseRequestHeader, Name: "sanitiseRequestHeader"},
	vocab.Entry[ActionType]{Symbol: ActionSanitiseResponseHeader, Name: "sanitiseResponseHeader"},
	vocab.Entry[ActionType]{Symbol: ActionSetEnv, Name: "setenv"},
	vocab.Entry[ActionType]{Symbol: ActionSetRsc, Name: "setrsc"},
	vocab.Entry[ActionType]{Symbol: ActionSetSid, Name: "setsid"},
	vocab.Entry[ActionType]{Symbol: ActionSetUID, Name: "setuid"},
	vocab.Entry[ActionType]{Symbol: ActionSetVar, Name: "setvar"},
	vocab.Entry[ActionType]{Symbol: ActionSeverity, Name: "severity"},
	vocab.Entry[ActionType]{Symbol: ActionSkip, Name: "skip"},
	vocab.Entry[ActionType]{Symbol: ActionSkipAfter, Name: "skipAfter"},
	vocab.Entry[ActionType]{Symbol: ActionStatus, Name: "status"},
	vocab.Entry[ActionType]{Symbol: ActionTransform, Name: "t"},
	vocab.Entry[ActionType]{Symbol: ActionTag, Name: "tag"},
	vocab.Entry[ActionType]{Symbol: ActionVer, Name: "ver"},
	vocab.Entry[ActionType]{Symbol: ActionXmlns, Name: "xmlns"},
)

// Actions not listed take an argument.
var actionArgPolicies = map[ActionType]argPolicy{
	ActionAllow:                argOptional,
	ActionAuditLog:             argNone,
	ActionBlock:                argNone,
	ActionCapture:              argNone,
	ActionChain:                argNone,
	ActionDeny:                 argNone,
	ActionDrop:                 argNone,
	ActionLog:                  argNone,
	ActionMultiMatch:           argNone,
	ActionNoAuditLog:           argNone,
	ActionNoLog:                argNone,
	ActionPass:                 argNone,
	ActionSanitiseMatched:      argNone,
	ActionSanitiseMatchedBytes: argOptional,
}

func (t ActionType) argPolicy() argPolicy {
	if p, ok := actionArgPolicies[t]; ok {
		return p
	}
	return argRequired
}

// Name is the canonical spelling, e.g. setvar.
func (t ActionType) Name() string {
	if n, ok := actionTypes.Name(t); ok {
		return n
	}
	return fmt.Sprintf("ActionType(%d)", int(t))
}

func (t ActionType) String() string {
	return t.Name()
}

// MarshalText implements encoding.TextMarshaler.
func (t ActionType) MarshalText() ([]byte, error) {
	return []byte(t.Name()), nil
}

// ActionTypeFromName looks up an action by its exact spelling.
func ActionTypeFromName(name string) (ActionType, bool) {
	return actionTypes.FromName(name)
}

// ActionTypeVariants returns every action in declaration order.
func ActionTypeVariants() []ActionType {
	return actionTypes.Variants()
}

// Action is one entry of a rule's action list, e.g. msg:'Bad request'.
type Action struct {
	Type   ActionType
	Arg    string
	HasArg bool
	Quoted bool // Render Arg in single quotes even when it would read back the same bare.
}

// NodeKind implements NodeDeserializer.
func (*Action) NodeKind() parsetree.Kind {
	return parsetree.Action
}

// Deserialize implements NodeDeserializer.
func (a *Action) Deserialize(n *parsetree.Node) error {
	if err := claim(n, parsetree.Action); err != nil {
		return err
	}

	c := n.Cursor()
	name := c.NextIf(parsetree.ActionName)
	if name == nil {
		return &ParseError{Err: ErrMissingNode, Kind: parsetree.ActionName, Text: n.Text, Pos: n.Pos}
	}

	t, ok := ActionTypeFromName(name.Text)
	if !ok {
		return newParseError(ErrUnknownAction, name, name.Text)
	}
	out := Action{Type: t}

	if arg := c.NextIf(parsetree.ActionArg); arg != nil {
		out.Arg, out.Quoted = grammar.UnquoteActionArg(arg.Text)
		out.HasArg = true
		if !out.Quoted && strings.HasPrefix(out.Arg, "'") {
			// Unterminated quote.
			return newParseError(ErrInvalidAction, n, n.Text)
		}
	}

	if err := expectDone(c); err != nil {
		return err
	}

	switch p := t.argPolicy(); {
	case p == argNone && out.HasArg, p == argRequired && !out.HasArg:
		return newParseError(ErrInvalidAction, n, n.Text)
	}

	*a = out
	return nil
}

// Serialize implements Serializer.
func (a Action) Serialize(w io.Writer) error {
	if !a.HasArg {
		return writeAll(w, a.Type.Name())
	}
	arg := a.Arg
	if a.Quoted || grammar.ActionArgNeedsQuoting(arg) {
		arg = grammar.Quote(arg, '\'')
	}
	return writeAll(w, a.Type.Name(), ":", arg)
}

func (a Action) String() string {
	return Render(a)
}

// Actions is the ordered action list of a rule. It may be empty.
type Actions []Action

// NodeKind implements NodeDeserializer.
func (*Actions) NodeKind() parsetree.Kind {
	return parsetree.Actions
}

// Deserialize implements NodeDeserializer.
func (as *Actions) Deserialize(n *parsetree.Node) error {
	if err := claim(n, parsetree.Actions); err != nil {
		return err
	}

	var out Actions
	for _, child := range n.Children {
		var a Action
		if err := a.Deserialize(child); err != nil {
			return err
		}
		out = append(out, a)
	}

	*as = out
	return nil
}

// Serialize implements Serializer.
func (as Actions) Serialize(w io.Writer) error {
	for i, a := range as {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		if err := a.Serialize(w); err != nil {
			return err
		}
	}
	return nil
}

func (as Actions) String() string {
	return Render(as)
}

// Args returns the arguments of every action of type t, in order.
func (as Actions) Args(t ActionType) (args []string) {
	for _, a := range as {
		if a.Type == t {
			args = append(args, a.Arg)
		}
	}
	return
}

// Has reports whether any action is of type t.
func (as Actions) Has(t ActionType) bool {
	for _, a := range as {
		if a.Type == t {
			return true
		}
	}
	return false
}
