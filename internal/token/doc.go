// Package token defines lexical token kinds and trivia for the effectful
// surface language.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - String literals keep their quotes in Text; StringValue strips them.
//   - Comments (// ...) and whitespace become leading Trivia and never
//     appear in the main token stream.
//   - Prelude names (Html, Body, ...) are identifiers; they are recognized
//     by lowering, not by the lexer.
package token
