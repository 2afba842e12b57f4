// Package ast holds the surface syntax tree produced by the parser.
//
// Nodes are plain pointer trees. ModuleItem, Statement and Expr are closed
// interfaces: only types in this package implement them, so a type switch
// over the listed variants is exhaustive.
package ast
