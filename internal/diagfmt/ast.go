package diagfmt

import (
	"fmt"
	"io"
	"slices"

	"effectful/internal/ast"
	"effectful/internal/source"
)

// BuildASTOutput converts a parsed module into the dump tree.
func BuildASTOutput(m *ast.Module) NodeOutput {
	root := NodeOutput{Type: "Module", Span: spanOutput(m.Span)}
	keys := make([]string, 0, len(m.Items))
	for k := range m.Items {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fn, ok := m.Items[k].(*ast.Function)
		if !ok {
			continue
		}
		root.Children = append(root.Children, astFunction(k, fn))
	}
	return root
}

func astFunction(key string, fn *ast.Function) NodeOutput {
	out := NodeOutput{Type: "Output", Children: []NodeOutput{astIdent("Type", fn.Output.Type)}}
	if fn.Output.Effect != nil {
		out.Children = append(out.Children, astIdent("Effect", *fn.Output.Effect))
	}
	node := NodeOutput{
		Type: "Function",
		Name: fn.Name.Name,
		Span: spanOutput(fn.Span),
		Children: []NodeOutput{
			{Type: "Key", Value: key},
			out,
			astBlock(&fn.Body),
		},
	}
	return node
}

func astIdent(kind string, id ast.Ident) NodeOutput {
	return NodeOutput{Type: kind, Name: id.Name, Span: spanOutput(id.Span)}
}

func astBlock(b *ast.Block) NodeOutput {
	node := NodeOutput{Type: "Block", Span: spanOutput(b.Span)}
	for _, st := range b.Statements {
		if es, ok := st.(*ast.ExprStatement); ok {
			node.Children = append(node.Children, NodeOutput{
				Type:     "Statement",
				Span:     spanOutput(es.Span),
				Children: []NodeOutput{astExpr(es.Expr)},
			})
		}
	}
	if b.Tail != nil {
		node.Children = append(node.Children, NodeOutput{Type: "Tail", Children: []NodeOutput{astExpr(b.Tail)}})
	}
	return node
}

func astExpr(e ast.Expr) NodeOutput {
	switch e := e.(type) {
	case *ast.StringLiteral:
		return NodeOutput{Type: "String", Value: e.Value, Span: spanOutput(e.Span)}
	case *ast.FunctionCall:
		node := NodeOutput{Type: "Call", Name: e.Name.Name, Span: spanOutput(e.Span)}
		if len(e.Args) > 0 {
			args := NodeOutput{Type: "Args"}
			for _, a := range e.Args {
				args.Children = append(args.Children, astExpr(a))
			}
			node.Children = append(node.Children, args)
		}
		if len(e.Children) > 0 {
			children := NodeOutput{Type: "Children"}
			for _, c := range e.Children {
				children.Children = append(children.Children, astExpr(c))
			}
			node.Children = append(node.Children, children)
		}
		return node
	}
	return NodeOutput{Type: "Invalid"}
}

// FormatAST dumps m as a tree, JSON or msgpack.
func FormatAST(w io.Writer, m *ast.Module, fs *source.FileSet, f Format) error {
	if m == nil {
		return fmt.Errorf("nil module")
	}
	out := BuildASTOutput(m)
	return writeNode(w, &out, fs, f)
}

// FormatASTSource prints main in canonical surface syntax.
func FormatASTSource(w io.Writer, m *ast.Module) error {
	fn := m.Main()
	if fn == nil {
		return fmt.Errorf("module has no main")
	}
	_, err := io.WriteString(w, ast.Render(fn))
	return err
}
