package journal

import (
	"go.trai.ch/cwaimg/internal/core/domain"
	"go.trai.ch/cwaimg/internal/core/ports"
)

// Opener opens the journal kept in the state directory of a download root.
type Opener struct{}

// NewOpener creates a new Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open returns the Store for root.
func (o *Opener) Open(root string) ports.ResultStore {
	return NewStore(domain.StatePath(root))
}
