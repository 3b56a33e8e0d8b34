package in

import (
	"context"
	"time"

	reportdto "dw/internal/modules/report/dto"
	reportin "dw/internal/modules/report/port/in"
)

type CLIHandler struct {
	usecase reportin.Usecase
}

func NewCLIHandler(usecase reportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Report(ctx context.Context, from, to time.Time) (reportdto.ReportOutput, error) {
	return h.usecase.Report(ctx, from, to)
}

func (h CLIHandler) Summary(ctx context.Context) (reportdto.SummaryOutput, error) {
	return h.usecase.Summary(ctx)
}

func (h CLIHandler) Stats(ctx context.Context, bucket string, from, to time.Time) ([]reportdto.BucketOutput, error) {
	return h.usecase.Stats(ctx, bucket, from, to)
}

func (h CLIHandler) Reindex(ctx context.Context) (reportdto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}
