package grammar

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindConsume(t *testing.T) {
	type testcase struct {
		r             *regexp.Regexp
		testVal       string
		expectedMatch string
		expectedRest  string
	}
	tests := []testcase{
		{regexp.MustCompile(`^abc`), `abcxyz`, `abc`, `xyz`},
		{regexp.MustCompile(`^abc`), `xyzabcxyz`, ``, `xyzabcxyz`},
		{regexp.MustCompile(`abc`), `xyzabcdef`, `abc`, `def`},
	}

	for _, test := range tests {
		match, rest := findConsume(test.r, test.testVal)
		assert.Equal(t, test.expectedMatch, match, "tested input: %s", test.testVal)
		assert.Equal(t, test.expectedRest, rest, "tested input: %s", test.testVal)
	}
}

func TestNextArgSimple(t *testing.T) {
	// Act
	arg, quote, rest := nextArg("hello world")

	// Assert
	assert.Equal(t, "hello", arg)
	assert.Equal(t, byte(0), quote)
	assert.Equal(t, " world", rest)
}

func TestNextArgDoubleQuoted(t *testing.T) {
	// Act
	arg, quote, rest := nextArg(`"hello '\" world" something`)

	// Assert
	assert.Equal(t, `hello '" world`, arg)
	assert.Equal(t, byte('"'), quote)
	assert.Equal(t, " something", rest)
}

func TestNextArgSingleQuoted(t *testing.T) {
	// Act
	arg, quote, rest := nextArg(`'hello "\' world' something`)

	// Assert
	assert.Equal(t, `hello "' world`, arg)
	assert.Equal(t, byte('\''), quote)
	assert.Equal(t, " something", rest)
}

func TestNextArgKeepsRegexEscapes(t *testing.T) {
	arg, _, _ := nextArg(`"@rx ^\d+\\$"`)
	assert.Equal(t, `@rx ^\d+\$`, arg)
}

func TestSplitStatements(t *testing.T) {
	// Arrange
	rules := `
		# A comment
		SecRule ARGS "1=1" "deny,msg:'SQL Injection Attack',id:'950901'"

		SecRule ARGS "<script>" \
			"deny,msg:'XSS Attack',\
			id:'950902'"
		Include other.conf
	`

	// Act
	stmts := SplitStatements(rules)

	// Assert
	assert := assert.New(t)
	assert.Len(stmts, 3)
	assert.Equal(3, stmts[0].Line)
	assert.Equal(`SecRule ARGS "1=1" "deny,msg:'SQL Injection Attack',id:'950901'"`, stmts[0].Text)
	assert.Equal(5, stmts[1].Line)
	assert.Equal(`SecRule ARGS "<script>"  "deny,msg:'XSS Attack', id:'950902'"`, stmts[1].Text)
	assert.Equal(8, stmts[2].Line)
	assert.True(stmts[2].IsInclude())
	assert.Equal("other.conf", stmts[2].IncludePath())
}

func TestSplitStatementsDanglingArgs(t *testing.T) {
	// Only the first line of a multiline statement commented out.
	rules := "#SecRule ARGS \"abc\" \\\n\"id:1,deny\"\nSecRule ARGS \"x\" \"id:2\"\n"

	stmts := SplitStatements(rules)

	assert.Len(t, stmts, 1)
	assert.Equal(t, `SecRule ARGS "x" "id:2"`, stmts[0].Text)
	assert.Equal(t, 3, stmts[0].Line)
}

func TestSplitStatementsEmpty(t *testing.T) {
	assert.Empty(t, SplitStatements(""))
	assert.Empty(t, SplitStatements("\n\n   \n# only comments\n"))
}

func TestStatementDirective(t *testing.T) {
	assert.Equal(t, "SecRule", Statement{Text: `SecRule ARGS "x"`}.Directive())
	assert.Equal(t, "include", Statement{Text: `include "/etc/rules/a b.conf"`}.Directive())
	assert.Equal(t, "/etc/rules/a b.conf", Statement{Text: `include "/etc/rules/a b.conf"`}.IncludePath())
	assert.False(t, Statement{Text: `SecRule ARGS "x"`}.IsInclude())
}
