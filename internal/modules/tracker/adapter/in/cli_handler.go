package in

import (
	"context"

	trackerdto "dw/internal/modules/tracker/dto"
	trackerin "dw/internal/modules/tracker/port/in"
)

type CLIHandler struct {
	usecase trackerin.Usecase
}

func NewCLIHandler(usecase trackerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, label string) (trackerdto.StartOutput, error) {
	return h.usecase.Start(ctx, trackerdto.StartInput{Label: label})
}

func (h CLIHandler) Stop(ctx context.Context) (trackerdto.StopOutput, error) {
	return h.usecase.Stop(ctx)
}

func (h CLIHandler) Abort(ctx context.Context) (trackerdto.ActiveOutput, error) {
	return h.usecase.Abort(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (trackerdto.ActiveOutput, error) {
	return h.usecase.Status(ctx)
}
