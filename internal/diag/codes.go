package diag

import "fmt"

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadEscape          Code = 1003

	// Синтаксические
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectIdentifier Code = 2002
	SynTrailingInput    Code = 2003

	// Семантические
	SemaInfo             Code = 3000
	SemaUnresolvedSymbol Code = 3001
	SemaIDCollision      Code = 3002

	// Кодогенерация
	GenInfo                 Code = 4000
	GenMissingMain          Code = 4001
	GenMissingTail          Code = 4002
	GenTailNotMarkup        Code = 4003
	GenUnknownBuiltin       Code = 4004
	GenBadArity             Code = 4005
	GenBadReturnType        Code = 4006
	GenUnknownEffect        Code = 4007
	GenUnsupportedStatement Code = 4008
	GenMissingBody          Code = 4009
	GenUnusedStatement      Code = 4010

	// I/O
	IOInfo           Code = 5000
	IOLoadFileError  Code = 5001
	IOWriteFileError Code = 5002

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	LexInfo:                 "Lexical information",
	LexUnknownChar:          "Unknown character",
	LexUnterminatedString:   "Unterminated string literal",
	LexBadEscape:            "Escape sequences are not supported",
	SynInfo:                 "Syntax information",
	SynUnexpectedToken:      "Unexpected token",
	SynExpectIdentifier:     "Expected identifier",
	SynTrailingInput:        "Unexpected input after the last declaration",
	SemaInfo:                "Semantic information",
	SemaUnresolvedSymbol:    "Unresolved symbol",
	SemaIDCollision:         "Identifier collision",
	GenInfo:                 "Codegen information",
	GenMissingMain:          "Missing main function",
	GenMissingTail:          "Function has no tail expression",
	GenTailNotMarkup:        "Tail expression is not markup",
	GenUnknownBuiltin:       "Not a markup builtin",
	GenBadArity:             "Wrong number of arguments",
	GenBadReturnType:        "main must return Html",
	GenUnknownEffect:        "Unknown effect",
	GenUnsupportedStatement: "Unsupported statement",
	GenMissingBody:          "Markup has no body element",
	GenUnusedStatement:      "Statement has no effect",
	IOInfo:                  "I/O information",
	IOLoadFileError:         "I/O load file error",
	IOWriteFileError:        "I/O write file error",
	ObsInfo:                 "Observability information",
	ObsTimings:              "Pipeline timings",
}

type codeRange struct {
	prefix string
	phase  string
}

// codeRanges is indexed by c/1000.
var codeRanges = [...]codeRange{
	1: {"LEX", "lex"},
	2: {"SYN", "syntax"},
	3: {"SEM", "resolve"},
	4: {"GEN", "codegen"},
	5: {"IO", "io"},
	6: {"OBS", "observe"},
}

func (c Code) rangeOf() (codeRange, bool) {
	i := int(c) / 1000
	if i <= 0 || i >= len(codeRanges) {
		return codeRange{}, false
	}
	return codeRanges[i], true
}

// ID is the stable printed form, e.g. SEM3001.
func (c Code) ID() string {
	r, ok := c.rangeOf()
	if !ok {
		return "E0000"
	}
	return fmt.Sprintf("%s%04d", r.prefix, int(c))
}

// Phase names the pipeline phase that owns c, or "" for UnknownCode.
func (c Code) Phase() string {
	r, _ := c.rangeOf()
	return r.phase
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
