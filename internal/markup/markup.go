// Package markup is the output document model: elements, text and
// embedded scripts. Attributes and text escaping are not supported.
package markup

import "effectful/internal/ecma"

// BodyTag is the only element that may hold Script children.
const BodyTag = "body"

type Child interface{ isChild() }

type Element struct {
	Name     string
	Children []Child
}

// Text is written verbatim.
type Text string

type Script struct {
	Program *ecma.Program
}

func (*Element) isChild() {}
func (Text) isChild()     {}
func (*Script) isChild()  {}

// NewElement is a small constructor for nested literals.
func NewElement(name string, children ...Child) *Element {
	return &Element{Name: name, Children: children}
}

// Append adds children and returns e.
func (e *Element) Append(children ...Child) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Find returns the first element named name in depth-first pre-order,
// starting with e itself.
func (e *Element) Find(name string) *Element {
	if e == nil {
		return nil
	}
	if e.Name == name {
		return e
	}
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok {
			if found := el.Find(name); found != nil {
				return found
			}
		}
	}
	return nil
}

// Scripts counts Script children anywhere under e.
func (e *Element) Scripts() int {
	n := 0
	for _, c := range e.Children {
		switch c := c.(type) {
		case *Script:
			n++
		case *Element:
			n += c.Scripts()
		}
	}
	return n
}
