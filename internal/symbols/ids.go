package symbols

import "fmt"

// ID is an opaque 64-bit identity assigned to every name during lowering.
type ID uint64

const (
	// NoID marks the absence of an identity; allocators never return it.
	NoID ID = 0
)

// IsValid reports whether the ID refers to an allocated identity.
func (id ID) IsValid() bool { return id != NoID }

func (id ID) String() string {
	return fmt.Sprintf("0x%016x", uint64(id))
}
