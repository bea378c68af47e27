package grammar

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Grammar structs for the participle parsers of the three SecRule arguments.
// Every token the typed model needs is captured with its position so it can become a parsetree leaf.

// inputsSyntax is the variables argument: inputs separated by "|".
type inputsSyntax struct {
	Inputs []*inputSyntax `parser:"@@ ( Pipe @@ )*"`
}

// inputSyntax is one variable: an optional modifier, a name and an optional selector.
type inputSyntax struct {
	Modifier *modifierToken `parser:"@@?"`
	Name     *nameToken     `parser:"@@"`
	Selector *selectorToken `parser:"( Colon @@ )?"`
}

// operatorSyntax is the operator argument. A missing name means @rx.
type operatorSyntax struct {
	Negation *negationToken `parser:"@@?"`
	Name     *opNameToken   `parser:"@@?"`
	Arg      *paramToken    `parser:"Space? @@?"`
}

// actionsSyntax is the actions argument: actions separated by ",".
type actionsSyntax struct {
	Actions []*actionSyntax `parser:"@@ ( Comma @@ )*"`
}

// actionSyntax is one action: a name and an optional argument.
type actionSyntax struct {
	Name *nameToken      `parser:"@@"`
	Arg  *actionArgToken `parser:"( Colon @@ )?"`
}

type modifierToken struct {
	Pos   lexer.Position
	Value string `parser:"@Modifier"`
}

type nameToken struct {
	Pos   lexer.Position
	Value string `parser:"@Name"`
}

type selectorToken struct {
	Pos   lexer.Position
	Value string `parser:"@Selector"`
}

type negationToken struct {
	Pos   lexer.Position
	Value string `parser:"@Negation"`
}

type opNameToken struct {
	Pos   lexer.Position
	Value string `parser:"@OpName"`
}

type paramToken struct {
	Pos   lexer.Position
	Value string `parser:"@Param"`
}

type actionArgToken struct {
	Pos   lexer.Position
	Value string `parser:"@( Quoted | Param )"`
}

var (
	inputsParser   = participle.MustBuild[inputsSyntax](participle.Lexer(inputsLexer))
	operatorParser = participle.MustBuild[operatorSyntax](participle.Lexer(operatorLexer))
	actionsParser  = participle.MustBuild[actionsSyntax](participle.Lexer(actionsLexer))
)
