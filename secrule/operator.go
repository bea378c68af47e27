package secrule

import (
	"fmt"
	"io"

	"secrulelang/parsetree"
	"secrulelang/secrule/vocab"
)

// OperatorType is a match operator.
type OperatorType int

// Operator types.
const (
	_ OperatorType = iota
	OpBeginsWith
	OpContains
	OpContainsWord
	OpDetectSQLi
	OpDetectXSS
	OpEndsWith
	OpEq
	OpFuzzyHash
	OpGe
	OpGeoLookup
	OpGsbLookup
	OpGt
	OpInspectFile
	OpIPMatch
	OpIPMatchF
	OpIPMatchFromFile
	OpLe
	OpLt
	OpNoMatch
	OpPm
	OpPmf
	OpPmFromFile
	OpRbl
	OpRsub
	OpRx
	OpStreq
	OpStrmatch
	OpUnconditionalMatch
	OpValidateByteRange
	OpValidateDTD
	OpValidateHash
	OpValidateSchema
	OpValidateURLEncoding
	OpValidateUtf8Encoding
	OpVerifyCC
	OpVerifyCPF
	OpVerifySSN
	OpWithin
)

var operatorTypes = vocab.New(
	vocab.Entry[OperatorType]{Symbol: OpBeginsWith, Name: "beginsWith"},
	vocab.Entry[OperatorType]{Symbol: OpContains, Name: "contains"},
	vocab.Entry[OperatorType]{Symbol: OpContainsWord, Name: "containsWord"},
	vocab.Entry[OperatorType]{Symbol: OpDetectSQLi, Name: "detectSQLi"},
	vocab.Entry[OperatorType]{Symbol: OpDetectXSS, Name: "detectXSS"},
	vocab.Entry[OperatorType]{Symbol: OpEndsWith, Name: "endsWith"},
	vocab.Entry[OperatorType]{Symbol: OpEq, Name: "eq"},
	vocab.Entry[OperatorType]{Symbol: OpFuzzyHash, Name: "fuzzyHash"},
	vocab.Entry[OperatorType]{Symbol: OpGe, Name: "ge"},
	vocab.Entry[OperatorType]{Symbol: OpGeoLookup, Name: "geoLookup"},
	vocab.Entry[OperatorType]{Symbol: OpGsbLookup, Name: "gsbLookup"},
	vocab.Entry[OperatorType]{Symbol: OpGt, Name: "gt"},
	vocab.Entry[OperatorType]{Symbol: OpInspectFile, Name: "inspectFile"},
	vocab.Entry[OperatorType]{Symbol: OpIPMatch, Name: "ipMatch"},
	vocab.Entry[OperatorType]{Symbol: OpIPMatchF, Name: "ipMatchF"},
	vocab.Entry[OperatorType]{Symbol: OpIPMatchFromFile, Name: "ipMatchFromFile"},
	vocab.Entry[OperatorType]{Symbol: OpLe, Name: "le"},
	vocab.Entry[OperatorType]{Symbol: OpLt, Name: "lt"},
	vocab.Entry[OperatorType]{Symbol: OpNoMatch, Name: "noMatch"},
	vocab.Entry[OperatorType]{Symbol: OpPm, Name: "pm"},
	vocab.Entry[OperatorType]{Symbol: OpPmf, Name: "pmf"},
	vocab.Entry[OperatorType]{Symbol: OpPmFromFile, Name: "pmFromFile"},
	vocab.Entry[OperatorType]{Symbol: OpRbl, Name: "rbl"},
	vocab.Entry[OperatorType]{Symbol: OpRsub, Name: "rsub"},
	vocab.Entry[OperatorType]{Symbol: OpRx, Name: "rx"},
	vocab.Entry[OperatorType]{Symbol: OpStreq, Name: "streq"},
	vocab.Entry[OperatorType]{Symbol: OpStrmatch, Name: "strmatch"},
	vocab.Entry[OperatorType]{Symbol: OpUnconditionalMatch, Name: "unconditionalMatch"},
	vocab.Entry[OperatorType]{Symbol: OpValidateByteRange, Name: "validateByteRange"},
	vocab.Entry[OperatorType]{Symbol: OpValidateDTD, Name: "validateDTD"},
	vocab.Entry[OperatorType]{Symbol: OpValidateHash, Name: "validateHash"},
	vocab.Entry[OperatorType]{Symbol: OpValidateSchema, Name: "validateSchema"},
	vocab.Entry[OperatorType]{Symbol: OpValidateURLEncoding, Name: "validateUrlEncoding"},
	vocab.Entry[OperatorType]{Symbol: OpValidateUtf8Encoding, Name: "validateUtf8Encoding"},
	vocab.Entry[OperatorType]{Symbol: OpVerifyCC, Name: "verifyCC"},
	vocab.Entry[OperatorType]{Symbol: OpVerifyCPF, Name: "verifyCPF"},
	vocab.Entry[OperatorType]{Symbol: OpVerifySSN, Name: "verifySSN"},
	vocab.Entry[OperatorType]{Symbol: OpWithin, Name: "within"},
)

// Name is the canonical spelling without the leading @, e.g. rx.
func (t OperatorType) Name() string {
	if n, ok := operatorTypes.Name(t); ok {
		return n
	}
	return fmt.Sprintf("OperatorType(%d)", int(t))
}

func (t OperatorType) String() string {
	return t.Name()
}

// MarshalText implements encoding.TextMarshaler.
func (t OperatorType) MarshalText() ([]byte, error) {
	return []byte(t.Name()), nil
}

// OperatorTypeFromName looks up an operator by its exact spelling, without the leading @.
func OperatorTypeFromName(name string) (OperatorType, bool) {
	return operatorTypes.FromName(name)
}

// OperatorTypeVariants returns every operator in declaration order.
func OperatorTypeVariants() []OperatorType {
	return operatorTypes.Variants()
}

// Operator is the match condition of a rule. An operator written without a name is @rx.
type Operator struct {
	Negated bool
	Type    OperatorType
	Arg     string
}

// NodeKind implements NodeDeserializer.
func (*Operator) NodeKind() parsetree.Kind {
	return parsetree.Operator
}

// Deserialize implements NodeDeserializer.
func (op *Operator) Deserialize(n *parsetree.Node) error {
	if err := claim(n, parsetree.Operator); err != nil {
		return err
	}

	c := n.Cursor()
	out := Operator{Type: OpRx}

	if c.NextIf(parsetree.OperatorNegation) != nil {
		out.Negated = true
	}

	if name := c.NextIf(parsetree.OperatorName); name != nil {
		t, ok := OperatorTypeFromName(name.Text)
		if !ok {
			return newParseError(ErrUnknownOperator, name, "@"+name.Text)
		}
		out.Type = t
	}

	if arg := c.NextIf(parsetree.OperatorArg); arg != nil {
		out.Arg = arg.Text
	}

	if err := expectDone(c); err != nil {
		return err
	}

	*op = out
	return nil
}

// Serialize implements Serializer. The output is the unquoted operator argument, e.g. !@rx ^\d+$.
func (op Operator) Serialize(w io.Writer) error {
	neg := ""
	if op.Negated {
		neg = "!"
	}
	if op.Arg == "" {
		return writeAll(w, neg, "@", op.Type.Name())
	}
	return writeAll(w, neg, "@", op.Type.Name(), " ", op.Arg)
}

func (op Operator) String() string {
	return Render(op)
}
