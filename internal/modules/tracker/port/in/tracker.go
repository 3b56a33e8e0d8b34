package in

import (
	"context"

	"dw/internal/modules/tracker/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	Stop(ctx context.Context) (dto.StopOutput, error)
	Abort(ctx context.Context) (dto.ActiveOutput, error)
	Status(ctx context.Context) (dto.ActiveOutput, error)
	History(ctx context.Context) ([]dto.SessionOutput, error)
}
