package ecma

// Ident returns an identifier usable both as expression and as pattern.
func Ident(name string) *Identifier { return &Identifier{Name: name} }

func Str(s string) *StringLiteral { return &StringLiteral{Value: s} }

func Int(n uint32) *IntegerLiteral { return &IntegerLiteral{Value: n} }

func Float(f float64) *FloatLiteral { return &FloatLiteral{Value: f} }

func Bool(b bool) *BooleanLiteral { return &BooleanLiteral{Value: b} }

func (i *Identifier) Member(prop string) *StaticMemberExpression {
	return Member(i, prop)
}

func (i *Identifier) Index(prop Expr) *ComputedMemberExpression {
	return Index(i, prop)
}

func (i *Identifier) Call(args ...Expr) *CallExpression {
	return Call(i, args...)
}

func (m *StaticMemberExpression) Member(prop string) *StaticMemberExpression {
	return Member(m, prop)
}

func (m *StaticMemberExpression) Index(prop Expr) *ComputedMemberExpression {
	return Index(m, prop)
}

func (m *StaticMemberExpression) Call(args ...Expr) *CallExpression {
	return Call(m, args...)
}

func (m *StaticMemberExpression) StrictEq(right Expr) *BinaryExpression {
	return StrictEq(m, right)
}

func Member(obj Expr, prop string) *StaticMemberExpression {
	return &StaticMemberExpression{Object: obj, Property: prop}
}

func Index(obj, prop Expr) *ComputedMemberExpression {
	return &ComputedMemberExpression{Object: obj, Property: prop}
}

func Call(callee Expr, args ...Expr) *CallExpression {
	return &CallExpression{Callee: callee, Arguments: args}
}

func StrictEq(left, right Expr) *BinaryExpression {
	return &BinaryExpression{Op: BinOpStrictEq, Left: left, Right: right}
}

// Path builds a static member chain: Path("console", "log") is console.log.
func Path(head string, rest ...string) Expr {
	var e Expr = Ident(head)
	for _, p := range rest {
		e = Member(e, p)
	}
	return e
}

func Object(props ...Property) *ObjectExpression { return &ObjectExpression{Properties: props} }

func Prop(key string, value Expr) Property { return Property{Key: key, Value: value} }

func Array(elems ...Expr) *ArrayExpression { return &ArrayExpression{Elements: elems} }

func Yield(arg Expr) *YieldExpression { return &YieldExpression{Argument: arg} }

func Arrow(body ...Stmt) *ArrowFunctionExpression {
	return &ArrowFunctionExpression{Body: Block(body...)}
}

// ObjPat builds an object pattern; PatProp("k", nil) is the shorthand "k".
func ObjPat(props ...PatternProperty) *ObjectPattern { return &ObjectPattern{Properties: props} }

func PatProp(key string, value Pattern) PatternProperty {
	return PatternProperty{Key: key, Value: value}
}

func Block(body ...Stmt) *BlockStatement { return &BlockStatement{Body: body} }

func While(test Expr, body ...Stmt) *WhileStatement {
	return &WhileStatement{Test: test, Body: Block(body...)}
}

func If(test Expr, body ...Stmt) *IfStatement {
	return &IfStatement{Test: test, Consequent: Block(body...)}
}

// Else attaches an alternate branch and returns the same statement.
func (s *IfStatement) Else(body ...Stmt) *IfStatement {
	s.Alternate = Block(body...)
	return s
}

func Break() *BreakStatement { return &BreakStatement{} }

func ExprStmt(e Expr) *ExpressionStatement { return &ExpressionStatement{Expr: e} }

func Const(id Pattern, init Expr) *VariableDeclaration { return declare(ConstKind, id, init) }

func Let(id Pattern, init Expr) *VariableDeclaration { return declare(LetKind, id, init) }

func Var(id Pattern, init Expr) *VariableDeclaration { return declare(VarKind, id, init) }

func declare(kind VariableKind, id Pattern, init Expr) *VariableDeclaration {
	return &VariableDeclaration{Kind: kind, Declarations: []VariableDeclarator{{ID: id, Init: init}}}
}

// And appends another declarator to the same declaration.
func (d *VariableDeclaration) And(id Pattern, init Expr) *VariableDeclaration {
	d.Declarations = append(d.Declarations, VariableDeclarator{ID: id, Init: init})
	return d
}

func Function(name string, body ...Stmt) *FunctionDeclaration {
	return &FunctionDeclaration{Name: name, Body: Block(body...)}
}

func GeneratorFunction(name string, body ...Stmt) *FunctionDeclaration {
	return &FunctionDeclaration{Name: name, Generator: true, Body: Block(body...)}
}
