package pip

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/appenv/internal/adapters/shell"
	"go.trai.ch/appenv/internal/core/ports"
)

const NodeID graft.ID = "adapter.installer"

func init() {
	graft.Register(graft.Node[ports.Installer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.Installer, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewInstaller(runner), nil
		},
	})
}
