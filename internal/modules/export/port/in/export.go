package in

import (
	"context"

	"dw/internal/modules/export/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.ExporterOutput, error)
	Doctor(ctx context.Context) ([]dto.DoctorOutput, error)
	Render(ctx context.Context, input dto.RenderInput) (dto.RenderOutput, error)
}
