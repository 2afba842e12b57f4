package codegen

import "effectful/internal/symbols"

// Builtin is the closed set of markup constructors known to the generator.
type Builtin uint8

const (
	BuiltinUnknown Builtin = iota
	BuiltinHtml
	BuiltinBody
	BuiltinParagraph
)

var builtinNames = [...]string{
	BuiltinUnknown:   "unknown",
	BuiltinHtml:      "Html",
	BuiltinBody:      "Body",
	BuiltinParagraph: "Paragraph",
}

var builtinTags = [...]string{
	BuiltinHtml:      "html",
	BuiltinBody:      "body",
	BuiltinParagraph: "p",
}

func (b Builtin) String() string {
	if int(b) < len(builtinNames) {
		return builtinNames[b]
	}
	return "unknown"
}

// Tag is the element name a builtin lowers to.
func (b Builtin) Tag() string {
	if int(b) < len(builtinTags) {
		return builtinTags[b]
	}
	return ""
}

// LookupBuiltin maps a prelude identity to its builtin.
func LookupBuiltin(id symbols.ID) Builtin {
	switch id {
	case symbols.HTML:
		return BuiltinHtml
	case symbols.Body:
		return BuiltinBody
	case symbols.Paragraph:
		return BuiltinParagraph
	default:
		return BuiltinUnknown
	}
}
