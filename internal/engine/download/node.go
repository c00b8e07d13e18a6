package download

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cwaimg/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cwaimg/internal/adapters/httpfetch" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cwaimg/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cwaimg/internal/core/ports"
)

// NodeID is the unique identifier for the download manager Graft node.
const NodeID graft.ID = "engine.download"

func init() {
	graft.Register(graft.Node[*Manager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			httpfetch.NodeID,
			fs.StorageNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Manager, error) {
			fetcher, err := graft.Dep[ports.Fetcher](ctx)
			if err != nil {
				return nil, err
			}

			storage, err := graft.Dep[ports.Storage](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewManager(fetcher, storage, log), nil
		},
	})
}
