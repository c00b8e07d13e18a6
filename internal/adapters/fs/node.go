package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cwaimg/internal/core/ports"
)

// StorageNodeID is the unique identifier for the filesystem storage Graft node.
const StorageNodeID graft.ID = "adapter.fs.storage"

func init() {
	graft.Register(graft.Node[ports.Storage]{
		ID:        StorageNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Storage, error) {
			return NewStorage(), nil
		},
	})
}
