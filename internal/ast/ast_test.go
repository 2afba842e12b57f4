package ast

import "testing"

func call(name string, args, children []Expr) *FunctionCall {
	return &FunctionCall{Name: Ident{Name: name}, Args: args, Children: children}
}

func str(v string) *StringLiteral { return &StringLiteral{Value: v} }

func helloWorld() *Function {
	return &Function{
		Name:   Ident{Name: "main"},
		Output: FunctionOutput{Type: Ident{Name: "Html"}},
		Body: Block{
			Tail: call("Html", nil, []Expr{
				call("Body", nil, []Expr{
					call("Paragraph", []Expr{str("Hello, world!")}, nil),
				}),
			}),
		},
	}
}

func TestRender(t *testing.T) {
	fn := helloWorld()
	fn.Output.Effect = &Ident{Name: "Console"}
	fn.Body.Statements = []Statement{&ExprStatement{Expr: call("log", []Expr{str("Hi")}, nil)}}

	want := "fn main() -> Html eff Console {\n" +
		"    log(\"Hi\");\n" +
		"    Html {\n" +
		"        Body {\n" +
		"            Paragraph(\"Hello, world!\")\n" +
		"        }\n" +
		"    }\n" +
		"}\n"
	if got := Render(fn); got != want {
		t.Fatalf("Render mismatch:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderExprInline(t *testing.T) {
	e := call("A", []Expr{str("x"), str("y")}, []Expr{call("B", nil, nil), str("z")})
	if got := RenderExpr(e); got != `A("x", "y") { B, "z" }` {
		t.Fatalf("RenderExpr = %q", got)
	}
}

func TestEqualIgnoresSpans(t *testing.T) {
	a, b := helloWorld(), helloWorld()
	b.Span.Start, b.Span.End = 4, 40
	b.Body.Tail.(*FunctionCall).Span.End = 9
	if !Equal(NewModule(a), NewModule(b)) {
		t.Fatalf("modules differing only in spans must be equal")
	}

	c := helloWorld()
	c.Body.Tail.(*FunctionCall).Children[0].(*FunctionCall).Name.Name = "Div"
	if Equal(NewModule(a), NewModule(c)) {
		t.Fatalf("different callee names must not be equal")
	}

	d := helloWorld()
	d.Output.Effect = &Ident{Name: "Console"}
	if FunctionEqual(a, d) {
		t.Fatalf("effect annotation must matter")
	}
}

func TestNewModuleKeysMain(t *testing.T) {
	fn := helloWorld()
	fn.Name.Name = "start"
	m := NewModule(fn)
	if len(m.Items) != 1 || m.Main() != fn {
		t.Fatalf("module must wrap the function under %q: %+v", MainKey, m.Items)
	}
}

func TestInspect(t *testing.T) {
	var names []string
	Inspect(helloWorld().Body.Tail, func(e Expr) bool {
		if c, ok := e.(*FunctionCall); ok {
			names = append(names, c.Name.Name)
		}
		return true
	})
	if len(names) != 3 || names[0] != "Html" || names[1] != "Body" || names[2] != "Paragraph" {
		t.Fatalf("Inspect order = %v", names)
	}
}
