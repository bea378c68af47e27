package grammar

import (
	"regexp"

	"github.com/alecthomas/participle/v2/lexer"
)

const quotedActionArgPattern = `'(?:\\.|[^'\\])*'`

var quotedActionArgRegex = regexp.MustCompile("^" + quotedActionArgPattern)

// Lexer for the variables argument, e.g. ARGS|!REQUEST_HEADERS:User-Agent|&TX.
// Whitespace is only allowed around the pipes, so it belongs to the Pipe token.
var inputsLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Pipe", Pattern: `[ \t\r\n]*\|[ \t\r\n]*`},
		{Name: "Modifier", Pattern: `[!&]+`},
		{Name: "Name", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Colon", Pattern: `:`, Action: lexer.Push("Selector")},
	},
	"Selector": {
		// A quoted key, a regex key (optionally followed by more path, as in XML:/*/@id), or a bare key.
		{Name: "Selector", Pattern: `'(?:\\.|[^'\\])*'|/(?:\\.|[^/\\])*/[^|\s]*|[^|\s]+`, Action: lexer.Pop()},
	},
})

// Lexer for the operator argument, e.g. !@rx ^\d+$.
// One space separates the operator name from its argument; any further whitespace is part of the argument.
var operatorLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Negation", Pattern: `!`, Action: lexer.Push("Body")},
		lexer.Include("Body"),
	},
	"Body": {
		{Name: "OpName", Pattern: `@[A-Za-z0-9_]+`, Action: lexer.Push("Param")},
		{Name: "Param", Pattern: `(?s).+`},
	},
	"Param": {
		{Name: "Space", Pattern: `[ \t]`, Action: lexer.Push("Arg")},
		{Name: "Param", Pattern: `(?s).+`},
	},
	"Arg": {
		{Name: "Param", Pattern: `(?s).+`},
	},
})

// Lexer for the actions argument, e.g. id:1,phase:2,deny,msg:'Blocked'.
// Whitespace around commas and after colons belongs to those tokens.
var actionsLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comma", Pattern: `[ \t\r\n]*,[ \t\r\n]*`},
		{Name: "Name", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Colon", Pattern: `:[ \t\r\n]*`, Action: lexer.Push("Param")},
	},
	"Param": {
		{Name: "Quoted", Pattern: quotedActionArgPattern, Action: lexer.Pop()},
		{Name: "Param", Pattern: `[^,]+`, Action: lexer.Pop()},
	},
})
