// FILE: eventweaver/src/internal/dsl/ast.go
package dsl

// Node is the interface implemented by all expression tree nodes.
type Node interface {
	node() // marker method
}

// Literal is a constant: nil, bool, float64 or string.
type Literal struct {
	Value any
}

func (Literal) node() {}

// Ident is a bare identifier reference.
type Ident struct {
	Name string
}

func (Ident) node() {}

// Unary applies not, unary plus or unary minus to one operand.
type Unary struct {
	Op      UnaryOp
	Operand Node
}

func (Unary) node() {}

// Binary is an arithmetic expression over two operands.
type Binary struct {
	Op    BinOp
	Left  Node
	Right Node
}

func (Binary) node() {}

// BoolExpr is an n-ary and/or combination.
type BoolExpr struct {
	Op     BoolOp
	Values []Node
}

func (BoolExpr) node() {}

// Compare is a comparison chain: Left op[0] Rights[0] op[1] Rights[1] …
// len(Ops) == len(Rights) >= 1.
type Compare struct {
	Left   Node
	Ops    []CmpOp
	Rights []Node
}

func (Compare) node() {}

// Subscript is an index expression value[key]. The grammar accepts any
// base; validation restricts it to the metadata identifier.
type Subscript struct {
	Value Node
	Key   Node
}

func (Subscript) node() {}

// Call is a function invocation. Always rejected by validation; the
// parser keeps it so rejection can name the construct.
type Call struct {
	Fn   Node
	Args []Node
}

func (Call) node() {}

// Attribute is a dotted member access. Always rejected by validation.
type Attribute struct {
	Value Node
	Name  string
}

func (Attribute) node() {}

// UnaryOp enumerates unary operators.
type UnaryOp int

const (
	UnaryNot UnaryOp = iota
	UnaryPos
	UnaryNeg
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNot:
		return "not"
	case UnaryPos:
		return "+"
	case UnaryNeg:
		return "-"
	}
	return "?"
}

// BinOp enumerates binary arithmetic operators.
type BinOp int

const (
	BinAdd BinOp = iota
	BinSub
)

func (op BinOp) String() string {
	if op == BinAdd {
		return "+"
	}
	return "-"
}

// BoolOp enumerates boolean combinators.
type BoolOp int

const (
	BoolAnd BoolOp = iota
	BoolOr
)

// CmpOp enumerates comparison operators.
type CmpOp int

const (
	CmpEq CmpOp = iota
	CmpNeq
	CmpGt
	CmpGte
	CmpLt
	CmpLte
	CmpIn
	CmpNotIn
)

func (op CmpOp) String() string {
	switch op {
	case CmpEq:
		return "=="
	case CmpNeq:
		return "!="
	case CmpGt:
		return ">"
	case CmpGte:
		return ">="
	case CmpLt:
		return "<"
	case CmpLte:
		return "<="
	case CmpIn:
		return "in"
	case CmpNotIn:
		return "not in"
	}
	return "?"
}
