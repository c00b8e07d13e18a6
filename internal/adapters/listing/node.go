package listing

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cwaimg/internal/core/ports"
)

// NodeID is the unique identifier for the listing extractor Graft node.
const NodeID graft.ID = "adapter.listing"

func init() {
	graft.Register(graft.Node[ports.Extractor]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Extractor, error) {
			return NewExtractor(), nil
		},
	})
}
