package usecase

import (
	"context"
	"time"

	"dw/internal/modules/report/domain"
	"dw/internal/modules/report/dto"
	reportin "dw/internal/modules/report/port/in"
	"dw/internal/modules/report/service"
)

type Interactor struct {
	svc *service.ReportService
}

func NewInteractor(svc *service.ReportService) reportin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Report(ctx context.Context, from, to time.Time) (dto.ReportOutput, error) {
	r := domain.Range{From: from, To: to}
	total, sessions, err := i.svc.Report(ctx, r)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	out := dto.ReportOutput{From: from, To: to, Total: total, Sessions: make([]dto.SessionOutput, 0, len(sessions))}
	for _, s := range sessions {
		out.Sessions = append(out.Sessions, toSessionOutput(s))
	}
	return out, nil
}

func (i *Interactor) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	r, total, count, err := i.svc.Summary(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return dto.SummaryOutput{Date: r.From, Total: total, Sessions: count}, nil
}

func (i *Interactor) Stats(ctx context.Context, bucket string, from, to time.Time) ([]dto.BucketOutput, error) {
	parsed, err := i.svc.ParseBucket(bucket)
	if err != nil {
		return nil, err
	}
	totals, err := i.svc.Stats(ctx, parsed, domain.Range{From: from, To: to})
	if err != nil {
		return nil, err
	}
	out := make([]dto.BucketOutput, 0, len(totals))
	for _, t := range totals {
		out = append(out, dto.BucketOutput{Key: t.Key, Total: t.Total, Sessions: t.Sessions})
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	count, err := i.svc.Reindex(ctx)
	if err != nil {
		return dto.ReindexOutput{}, err
	}
	return dto.ReindexOutput{Sessions: count}, nil
}

func toSessionOutput(s domain.Session) dto.SessionOutput {
	return dto.SessionOutput{
		ID:        s.ID,
		StartedAt: s.StartedAt,
		EndedAt:   s.EndedAt,
		Duration:  s.Duration(),
		Label:     s.Label,
	}
}
