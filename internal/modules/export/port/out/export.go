package out

import (
	"context"

	"dw/internal/modules/export/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

// Host runs exporter binaries and speaks the exporter RPC contract.
type Host interface {
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Render(ctx context.Context, manifest domain.Manifest, request domain.RenderRequest) (domain.RenderResult, error)
}
