package venv

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/appenv/internal/adapters/logger"
	"go.trai.ch/appenv/internal/adapters/shell"
	"go.trai.ch/appenv/internal/core/ports"
)

const NodeID graft.ID = "adapter.runtime_provisioner"

func init() {
	graft.Register(graft.Node[ports.RuntimeProvisioner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.RuntimeProvisioner, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewProvisioner(runner, log), nil
		},
	})
}
