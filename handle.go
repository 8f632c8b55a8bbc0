package cadkit

import "fmt"

// Handle identifies an object within a single document. Handles are
// assigned by the document when an object is attached and are never
// reused for the lifetime of the document.
type Handle uint64

// NilHandle is the handle of every unattached object.
const NilHandle Handle = 0

// handleSeed is the first handle a document hands out. Low values are
// reserved for the document header, following the DWG convention.
const handleSeed Handle = 0x10

func (h Handle) IsNil() bool {
	return h == NilHandle
}

func (h Handle) String() string {
	return fmt.Sprintf("%X", uint64(h))
}
