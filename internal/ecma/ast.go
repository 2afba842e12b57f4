// Package ecma models the subset of ECMAScript emitted into <script>
// blocks and serializes it without any pretty-printing.
//
// The tree is a pure value: nodes never point back at their parents. Stmt,
// Expr and Pattern are closed interfaces implemented only in this package.
package ecma

// Program is a list of statements and declarations.
type Program struct {
	Body []Stmt
}

type Stmt interface{ isStmt() }

type Expr interface{ isExpr() }

// Pattern is the left-hand side of a declarator.
type Pattern interface{ isPattern() }

// Expressions

type Identifier struct{ Name string }

type BooleanLiteral struct{ Value bool }

type StringLiteral struct{ Value string }

// IntegerLiteral and FloatLiteral are distinct kinds; the writer never
// renders one as the other.
type IntegerLiteral struct{ Value uint32 }

type FloatLiteral struct{ Value float64 }

type CallExpression struct {
	Callee    Expr
	Arguments []Expr
}

type BinaryOp uint8

const (
	BinOpStrictEq BinaryOp = iota // ===
)

func (op BinaryOp) String() string {
	switch op {
	case BinOpStrictEq:
		return "==="
	}
	return "?"
}

type BinaryExpression struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// StaticMemberExpression is "object.property".
type StaticMemberExpression struct {
	Object   Expr
	Property string
}

// ComputedMemberExpression is "object[property]".
type ComputedMemberExpression struct {
	Object   Expr
	Property Expr
}

// Property is "key:value", or the shorthand "key" when Value is nil.
type Property struct {
	Key   string
	Value Expr
}

type ObjectExpression struct{ Properties []Property }

type ArrayExpression struct{ Elements []Expr }

// ArrowFunctionExpression has no parameters.
type ArrowFunctionExpression struct{ Body *BlockStatement }

// YieldExpression is "yield argument"; Argument may be nil.
type YieldExpression struct{ Argument Expr }

func (*Identifier) isExpr()               {}
func (*BooleanLiteral) isExpr()           {}
func (*StringLiteral) isExpr()            {}
func (*IntegerLiteral) isExpr()           {}
func (*FloatLiteral) isExpr()             {}
func (*CallExpression) isExpr()           {}
func (*BinaryExpression) isExpr()         {}
func (*StaticMemberExpression) isExpr()   {}
func (*ComputedMemberExpression) isExpr() {}
func (*ObjectExpression) isExpr()         {}
func (*ArrayExpression) isExpr()          {}
func (*ArrowFunctionExpression) isExpr()  {}
func (*YieldExpression) isExpr()          {}

// Patterns

// PatternProperty is "key:value" in an object pattern, or "key" when Value is nil.
type PatternProperty struct {
	Key   string
	Value Pattern
}

type ObjectPattern struct{ Properties []PatternProperty }

type ArrayPattern struct{ Elements []Pattern }

func (*Identifier) isPattern()    {}
func (*ObjectPattern) isPattern() {}
func (*ArrayPattern) isPattern()  {}

// Statements and declarations

type BlockStatement struct{ Body []Stmt }

type WhileStatement struct {
	Test Expr
	Body *BlockStatement
}

// IfStatement has an optional Alternate.
type IfStatement struct {
	Test       Expr
	Consequent *BlockStatement
	Alternate  *BlockStatement
}

type BreakStatement struct{}

type ExpressionStatement struct{ Expr Expr }

type VariableKind uint8

const (
	VarKind VariableKind = iota
	LetKind
	ConstKind
)

func (k VariableKind) String() string {
	switch k {
	case LetKind:
		return "let"
	case ConstKind:
		return "const"
	default:
		return "var"
	}
}

type VariableDeclarator struct {
	ID   Pattern
	Init Expr // nil for "let x"
}

type VariableDeclaration struct {
	Kind         VariableKind
	Declarations []VariableDeclarator
}

// FunctionDeclaration has no parameters. Generator selects "function*".
type FunctionDeclaration struct {
	Name      string
	Generator bool
	Body      *BlockStatement
}

func (*BlockStatement) isStmt()      {}
func (*WhileStatement) isStmt()      {}
func (*IfStatement) isStmt()         {}
func (*BreakStatement) isStmt()      {}
func (*ExpressionStatement) isStmt() {}
func (*VariableDeclaration) isStmt() {}
func (*FunctionDeclaration) isStmt() {}
