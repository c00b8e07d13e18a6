package journal

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cwaimg/internal/core/ports"
)

// NodeID is the unique identifier for the journal Graft node.
const NodeID graft.ID = "adapter.journal"

func init() {
	graft.Register(graft.Node[ports.ResultStoreOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ResultStoreOpener, error) {
			return NewOpener(), nil
		},
	})
}
