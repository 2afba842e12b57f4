package token

// LookupKeyword reports whether ident is reserved and which kind it lexes as.
// The language has only two keywords, so a switch beats a map.
func LookupKeyword(ident string) (Kind, bool) {
	switch ident {
	case "fn":
		return KwFn, true
	case "eff":
		return KwEff, true
	}
	return Ident, false
}
