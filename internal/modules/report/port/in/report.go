package in

import (
	"context"
	"time"

	"dw/internal/modules/report/dto"
)

type Usecase interface {
	Report(ctx context.Context, from, to time.Time) (dto.ReportOutput, error)
	Summary(ctx context.Context) (dto.SummaryOutput, error)
	Stats(ctx context.Context, bucket string, from, to time.Time) ([]dto.BucketOutput, error)
	Reindex(ctx context.Context) (dto.ReindexOutput, error)
}
