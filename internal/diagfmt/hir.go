package diagfmt

import (
	"fmt"
	"io"
	"slices"

	"effectful/internal/hir"
	"effectful/internal/symbols"
)

type IDOutput struct {
	ID   string `json:"id" msgpack:"id" yaml:"id"`
	Name string `json:"name" msgpack:"name" yaml:"name"`
}

// HIRModuleOutput is the serializable HIR dump.
type HIRModuleOutput struct {
	Main  string       `json:"main" msgpack:"main" yaml:"main"`
	IDs   []IDOutput   `json:"ids" msgpack:"ids" yaml:"ids"`
	Items []NodeOutput `json:"items" msgpack:"items" yaml:"items"`
}

// BuildHIROutput converts m into the dump shape; identities are sorted.
func BuildHIROutput(m *hir.Module) HIRModuleOutput {
	out := HIRModuleOutput{Main: m.Main.String()}

	ids := make([]symbols.ID, 0, len(m.IDMap))
	for id := range m.IDMap {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		out.IDs = append(out.IDs, IDOutput{ID: id.String(), Name: m.IDMap[id]})
	}

	items := make([]symbols.ID, 0, len(m.Items))
	for id := range m.Items {
		items = append(items, id)
	}
	slices.Sort(items)
	for _, id := range items {
		if fn, ok := m.Items[id].(*hir.Function); ok {
			out.Items = append(out.Items, hirFunction(m, fn))
		}
	}
	return out
}

func hirRef(m *hir.Module, kind string, id symbols.ID) NodeOutput {
	return NodeOutput{Type: kind, Name: m.Name(id), ID: id.String()}
}

func hirFunction(m *hir.Module, fn *hir.Function) NodeOutput {
	output := NodeOutput{Type: "Output", Children: []NodeOutput{hirRef(m, "Type", fn.Output.Type)}}
	if fn.HasEffect() {
		output.Children = append(output.Children, hirRef(m, "Effect", fn.Output.Effect))
	}
	body := NodeOutput{Type: "Block", Span: spanOutput(fn.Body.Span)}
	for _, st := range fn.Body.Statements {
		if es, ok := st.(*hir.ExprStatement); ok {
			body.Children = append(body.Children, NodeOutput{
				Type:     "Statement",
				Children: []NodeOutput{hirExpr(m, es.Expr)},
			})
		}
	}
	if fn.Body.Tail != nil {
		body.Children = append(body.Children, NodeOutput{Type: "Tail", Children: []NodeOutput{hirExpr(m, fn.Body.Tail)}})
	}
	return NodeOutput{
		Type:     "Function",
		Name:     fn.Name,
		ID:       fn.ID.String(),
		Span:     spanOutput(fn.Span),
		Children: []NodeOutput{output, body},
	}
}

func hirExpr(m *hir.Module, e hir.Expr) NodeOutput {
	switch e := e.(type) {
	case *hir.StringLiteral:
		return NodeOutput{Type: "String", Value: e.Value}
	case *hir.FunctionCall:
		node := hirRef(m, "Call", e.Callee)
		if len(e.Args) > 0 {
			args := NodeOutput{Type: "Args"}
			for _, a := range e.Args {
				args.Children = append(args.Children, hirExpr(m, a))
			}
			node.Children = append(node.Children, args)
		}
		if len(e.Children) > 0 {
			children := NodeOutput{Type: "Children"}
			for _, c := range e.Children {
				children.Children = append(children.Children, hirExpr(m, c))
			}
			node.Children = append(node.Children, children)
		}
		return node
	}
	return NodeOutput{Type: "Invalid"}
}

// FormatHIR dumps m. The pretty form is the hir text dump with identities.
func FormatHIR(w io.Writer, m *hir.Module, f Format) error {
	if m == nil {
		return fmt.Errorf("nil module")
	}
	switch f {
	case FormatJSON:
		return encodeJSON(w, BuildHIROutput(m))
	case FormatMsgpack:
		return encodeMsgpack(w, BuildHIROutput(m))
	case FormatYAML:
		return encodeYAML(w, BuildHIROutput(m))
	default:
		return hir.Dump(w, m, hir.DumpOptions{ShowIDs: true})
	}
}
