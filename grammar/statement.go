package grammar

import (
	"regexp"
	"strings"
)

var directiveNameRegex = regexp.MustCompile(`^\w+`)
var argSpaceRegex = regexp.MustCompile(`^[ \t\r\n]+`)
var doubleQuotedStringRegex = regexp.MustCompile(`^"(\\.|[^"\\])*"`)
var singleQuotedStringRegex = regexp.MustCompile(`^'(\\.|[^'\\])*'`)
var nonQuotedStringRegex = regexp.MustCompile(`^[^ \t\r\n]+`)

// Statement is one directive of a rule file, with line continuations already joined.
type Statement struct {
	Line int // Line on which the statement starts.
	Text string
}

// Directive is the statement's directive name as written, e.g. "SecRule".
func (s Statement) Directive() string {
	return directiveNameRegex.FindString(s.Text)
}

// IsInclude reports whether the statement is an Include directive.
func (s Statement) IsInclude() bool {
	return strings.EqualFold(s.Directive(), "include")
}

// IncludePath is the file path argument of an Include directive.
func (s Statement) IncludePath() string {
	rest := strings.TrimPrefix(s.Text, s.Directive())
	_, rest = findConsume(argSpaceRegex, rest)
	arg, _, _ := nextArg(rest)
	return arg
}

// SplitStatements splits rule file contents into statements. Comments and blank lines are skipped.
// Statements can continue on multiple lines using a trailing backslash.
func SplitStatements(input string) (statements []Statement) {
	rest := input
	lineNumber := 0
	for {
		var stmt Statement
		stmt, rest = nextStatement(rest, &lineNumber)
		if stmt.Text == "" {
			if rest == "" {
				return
			}
			continue
		}

		// Sometimes only the first line in a multiline statement is commented out, leaving dangling args.
		if stmt.Text[0] == '"' {
			continue
		}

		statements = append(statements, stmt)
	}
}

// Get the next full statement from the input. Statements can continue on multiple lines using \.
func nextStatement(input string, lineNumber *int) (stmt Statement, rest string) {
	var sb strings.Builder
	rest = input
	for {
		var line string
		pos := strings.Index(rest, "\n")
		if pos == -1 {
			line = rest
			rest = ""
		} else {
			line = rest[:pos+1]
			rest = rest[pos+1:]
		}

		*lineNumber++

		lt := strings.Trim(line, " \t\r\n")

		if sb.Len() == 0 {
			if lt == "" && rest != "" {
				continue
			}

			if strings.HasPrefix(lt, "#") {
				if rest == "" {
					break
				}
				continue
			}

			stmt.Line = *lineNumber
		}

		if strings.HasSuffix(lt, "\\") && rest != "" {
			sb.WriteString(strings.TrimSuffix(lt, "\\"))
			sb.WriteString(" ")
			continue
		}

		sb.WriteString(lt)
		break
	}

	stmt.Text = strings.TrimRight(sb.String(), " ")
	return
}

// Extract and unescape a single or double quoted string, or a non-quoted string without whitespaces, from the beginning of the given string, and return the rest.
func nextArg(s string) (arg string, quote byte, rest string) {
	qs, qsRest := findConsume(doubleQuotedStringRegex, s)
	if qs != "" {
		arg = Unescape(qs[1:len(qs)-1], '"')
		quote = '"'
		rest = qsRest
		return
	}

	qs, qsRest = findConsume(singleQuotedStringRegex, s)
	if qs != "" {
		arg = Unescape(qs[1:len(qs)-1], '\'')
		quote = '\''
		rest = qsRest
		return
	}

	arg, rest = findConsume(nonQuotedStringRegex, s)
	return
}

// Find the given regexp in str and return it. Return the remaining string after the match too.
func findConsume(re *regexp.Regexp, s string) (match string, rest string) {
	loc := re.FindStringIndex(s)
	if loc == nil {
		rest = s
		return
	}

	match = s[loc[0]:loc[1]]
	rest = s[loc[1]:]
	return
}
