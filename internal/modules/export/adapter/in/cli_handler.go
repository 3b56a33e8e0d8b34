package in

import (
	"context"

	exportdto "dw/internal/modules/export/dto"
	exportin "dw/internal/modules/export/port/in"
)

type CLIHandler struct {
	usecase exportin.Usecase
}

func NewCLIHandler(usecase exportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]exportdto.ExporterOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]exportdto.DoctorOutput, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) Render(ctx context.Context, input exportdto.RenderInput) (exportdto.RenderOutput, error) {
	return h.usecase.Render(ctx, input)
}
