package symbols

// Fixed identities of the built-in names. They are stable across runs.
const (
	HTML      ID = 0xa624256d78ea27e8
	Body      ID = 0xf65ea75ed430d7aa
	Paragraph ID = 0x829569a9b2c10679
	Console   ID = 0x6f21a62dd1571f6e
)

// PreludeEntry binds a built-in name to its fixed identity.
type PreludeEntry struct {
	Name string
	ID   ID
}

// Prelude returns the built-in bindings in declaration order.
func Prelude() []PreludeEntry {
	return []PreludeEntry{
		{Name: "Html", ID: HTML},
		{Name: "Body", ID: Body},
		{Name: "Paragraph", ID: Paragraph},
		{Name: "Console", ID: Console},
	}
}
