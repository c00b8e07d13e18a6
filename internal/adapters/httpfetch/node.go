package httpfetch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cwaimg/internal/core/ports"
)

// NodeID is the unique identifier for the HTTP fetcher Graft node.
const NodeID graft.ID = "adapter.httpfetch"

func init() {
	graft.Register(graft.Node[ports.Fetcher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Fetcher, error) {
			return New(0), nil
		},
	})
}
