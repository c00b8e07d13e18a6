package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cwaimg/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cwaimg/internal/adapters/httpfetch" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cwaimg/internal/adapters/listing"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cwaimg/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cwaimg/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cwaimg/internal/core/ports"
	"go.trai.ch/cwaimg/internal/engine/download"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			httpfetch.NodeID,
			listing.NodeID,
			fs.StorageNodeID,
			download.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			fetcher, err := graft.Dep[ports.Fetcher](ctx)
			if err != nil {
				return nil, err
			}

			extractor, err := graft.Dep[ports.Extractor](ctx)
			if err != nil {
				return nil, err
			}

			storage, err := graft.Dep[ports.Storage](ctx)
			if err != nil {
				return nil, err
			}

			downloader, err := graft.Dep[*download.Manager](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(fetcher, extractor, storage, downloader, tracer, log), nil
		},
	})
}
