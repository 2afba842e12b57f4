package fuzztests

import (
	"os"
	"path/filepath"
	"testing"
)

// maxInput bounds both corpus seeds and generated inputs.
const maxInput = 64 << 10

var handSeeds = []string{
	`fn main() -> Html { Html { Body { Paragraph("Hello, world!") } } }`,
	"fn main() -> Html eff Console {\n    log(\"Hello\");\n    log(\"World\");\n    Html { Body { Paragraph(\"Hello, world!\") } }\n}",
	`fn main() -> Html eff Console { Html { Body } }`,
	`fn main() -> Html { "text" }`,
	`fn main() -> Html {}`,
	`fn main( -> Html {`,
	"fn main() -> Html { Html { Body { Paragraph(\"a\\\"b\\n\") } } }",
	"fn main() -> Html { Paragraph(\"unterminated) }",
	"// comment only\n",
	"fn main() -> Html { Body { Paragraph(\"é\") } } ✓",
}

// seedCorpus feeds f every hand-written seed plus the .eff files under the
// repository testdata directory, if it is reachable.
func seedCorpus(f *testing.F) {
	f.Add([]byte{})
	for _, s := range handSeeds {
		f.Add([]byte(s))
	}
	files, _ := filepath.Glob(filepath.Join("..", "..", "testdata", "*", "*.eff"))
	more, _ := filepath.Glob(filepath.Join("..", "..", "testdata", "*.eff"))
	for _, path := range append(files, more...) {
		// #nosec G304 -- repository testdata
		if src, err := os.ReadFile(path); err == nil {
			f.Add(bounded(src))
		}
	}
}

// bounded returns a private copy of at most maxInput bytes of b.
func bounded(b []byte) []byte {
	return append([]byte(nil), b[:min(len(b), maxInput)]...)
}
