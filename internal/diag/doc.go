// Package diag defines the diagnostic model shared by every compiler phase.
//
// Producers (lexer, parser, lowering, codegen) emit findings through the
// Reporter interface; the driver collects them in a Bag, which keeps a
// deterministic order after Sort and is rendered by internal/diagfmt.
//
// Codes are grouped by phase: 1000 lexical, 2000 syntax, 3000 semantic,
// 4000 codegen, 5000 I/O. Code.ID yields a stable string such as SYN2001
// that golden files and JSON output rely on.
package diag
