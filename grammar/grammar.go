// Package grammar turns SecRule-lang text into kind-tagged parse trees.
// It owns all tokenization; the typed model in package secrule only ever sees parsetree nodes.
package grammar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"secrulelang/parsetree"
)

// SyntaxError is text that could not be turned into a parse tree.
type SyntaxError struct {
	Pos  parsetree.Position
	Msg  string
	Text string
}

func (e *SyntaxError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("syntax error at %s: %s in %q", e.Pos, e.Msg, e.Text)
}

// Parse parses a single SecRule directive into a parsetree.Rule node.
func Parse(src string) (*parsetree.Node, error) {
	stmts := SplitStatements(src)
	if len(stmts) != 1 {
		return nil, &SyntaxError{Pos: parsetree.Position{Line: 1, Column: 1}, Msg: fmt.Sprintf("expected exactly one directive, found %d", len(stmts))}
	}
	return ParseStatement(stmts[0])
}

// ParseStatement parses a statement obtained from SplitStatements into a parsetree.Rule node.
func ParseStatement(stmt Statement) (*parsetree.Node, error) {
	name := stmt.Directive()
	if !strings.EqualFold(name, "SecRule") {
		return nil, &SyntaxError{Pos: parsetree.Position{Line: stmt.Line, Column: 1}, Msg: fmt.Sprintf("unsupported directive %q", name)}
	}

	p := &argParser{stmt: stmt, rest: stmt.Text[len(name):]}

	inputs, err := p.arg("variables", true, buildInputs)
	if err != nil {
		return nil, err
	}

	op, err := p.arg("operator", true, buildOperator)
	if err != nil {
		return nil, err
	}

	actions, err := p.arg("actions", false, buildActions)
	if err != nil {
		return nil, err
	}

	if p.skipSpace(); p.rest != "" {
		return nil, &SyntaxError{Pos: p.pos(0), Msg: "unexpected argument", Text: p.rest}
	}

	return parsetree.New(parsetree.Rule, stmt.Text, parsetree.Position{Line: stmt.Line, Column: 1}, inputs, op, actions), nil
}

type argParser struct {
	stmt Statement
	rest string
}

type argBuilder func(arg string, base parsetree.Position) (*parsetree.Node, error)

func (p *argParser) offset() int {
	return len(p.stmt.Text) - len(p.rest)
}

// pos is the position of the byte that is delta bytes into the unconsumed text.
func (p *argParser) pos(delta int) parsetree.Position {
	off := p.offset() + delta
	return parsetree.Position{Line: p.stmt.Line, Column: off + 1, Offset: off}
}

func (p *argParser) skipSpace() {
	_, p.rest = findConsume(argSpaceRegex, p.rest)
}

func (p *argParser) arg(what string, required bool, build argBuilder) (*parsetree.Node, error) {
	p.skipSpace()
	if p.rest == "" {
		if required {
			return nil, &SyntaxError{Pos: p.pos(0), Msg: "missing " + what, Text: p.stmt.Text}
		}
		return build("", p.pos(0))
	}

	arg, quote, rest := nextArg(p.rest)
	base := p.pos(0)
	if quote != 0 {
		base = p.pos(1)
	}
	p.rest = rest

	return build(arg, base)
}

// at is the position of the byte offset bytes into an argument that starts at base.
func at(base parsetree.Position, offset int) parsetree.Position {
	return parsetree.Position{Line: base.Line, Column: base.Column + offset, Offset: base.Offset + offset}
}

func syntaxError(base parsetree.Position, what string, arg string, err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		return &SyntaxError{Pos: at(base, perr.Position().Offset), Msg: "invalid " + what + ": " + perr.Message(), Text: arg}
	}
	return &SyntaxError{Pos: base, Msg: "invalid " + what + ": " + err.Error(), Text: arg}
}

// trim strips surrounding whitespace from arg and moves base to the first remaining byte.
func trim(arg string, base parsetree.Position) (string, parsetree.Position) {
	rest := strings.TrimLeft(arg, " \t\r\n")
	return strings.TrimRight(rest, " \t\r\n"), at(base, len(arg)-len(rest))
}

func leaf(kind parsetree.Kind, base parsetree.Position, pos lexer.Position, value string) *parsetree.Node {
	return parsetree.Leaf(kind, value, at(base, pos.Offset))
}

// input := modifier? name (":" selector)?, separated by "|".
func buildInputs(arg string, base parsetree.Position) (*parsetree.Node, error) {
	inputs := parsetree.New(parsetree.Inputs, strings.TrimSpace(arg), base)

	src, start := trim(arg, base)
	syntax, err := inputsParser.ParseString("", src)
	if err != nil {
		return nil, syntaxError(start, "variables", arg, err)
	}

	for _, in := range syntax.Inputs {
		var children []*parsetree.Node
		from := in.Name.Pos.Offset
		if in.Modifier != nil {
			children = append(children, leaf(parsetree.InputModifier, start, in.Modifier.Pos, in.Modifier.Value))
			from = in.Modifier.Pos.Offset
		}

		children = append(children, leaf(parsetree.InputName, start, in.Name.Pos, in.Name.Value))
		to := in.Name.Pos.Offset + len(in.Name.Value)

		if in.Selector != nil {
			children = append(children, leaf(parsetree.InputSelector, start, in.Selector.Pos, in.Selector.Value))
			to = in.Selector.Pos.Offset + len(in.Selector.Value)
		}

		inputs.Children = append(inputs.Children, parsetree.New(parsetree.Input, src[from:to], at(start, from), children...))
	}

	return inputs, nil
}

// operator := "!"? ("@" name (" " param)? | param)?
func buildOperator(arg string, base parsetree.Position) (*parsetree.Node, error) {
	op := parsetree.New(parsetree.Operator, arg, base)
	if arg == "" {
		return op, nil
	}

	syntax, err := operatorParser.ParseString("", arg)
	if err != nil {
		return nil, syntaxError(base, "operator", arg, err)
	}

	if syntax.Negation != nil {
		op.Children = append(op.Children, leaf(parsetree.OperatorNegation, base, syntax.Negation.Pos, syntax.Negation.Value))
	}
	if syntax.Name != nil {
		// Drop the "@".
		op.Children = append(op.Children, parsetree.Leaf(parsetree.OperatorName, syntax.Name.Value[1:], at(base, syntax.Name.Pos.Offset)))
	}
	if syntax.Arg != nil {
		op.Children = append(op.Children, leaf(parsetree.OperatorArg, base, syntax.Arg.Pos, syntax.Arg.Value))
	}

	return op, nil
}

// action := name (":" param)?, separated by ",".
func buildActions(arg string, base parsetree.Position) (*parsetree.Node, error) {
	actions := parsetree.New(parsetree.Actions, strings.TrimSpace(arg), base)

	src, start := trim(arg, base)
	if src == "" {
		return actions, nil
	}

	syntax, err := actionsParser.ParseString("", src)
	if err != nil {
		return nil, syntaxError(start, "actions", arg, err)
	}

	for _, a := range syntax.Actions {
		children := []*parsetree.Node{leaf(parsetree.ActionName, start, a.Name.Pos, a.Name.Value)}
		to := a.Name.Pos.Offset + len(a.Name.Value)

		if a.Arg != nil {
			v := strings.TrimRight(a.Arg.Value, " \t\r\n")
			children = append(children, leaf(parsetree.ActionArg, start, a.Arg.Pos, v))
			to = a.Arg.Pos.Offset + len(v)
		}

		from := a.Name.Pos.Offset
		actions.Children = append(actions.Children, parsetree.New(parsetree.Action, src[from:to], at(start, from), children...))
	}

	return actions, nil
}
