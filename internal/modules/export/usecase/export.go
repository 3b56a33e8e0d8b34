package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"dw/internal/modules/export/domain"
	"dw/internal/modules/export/dto"
	exportin "dw/internal/modules/export/port/in"
	"dw/internal/modules/export/service"
	reportin "dw/internal/modules/report/port/in"
)

// payload is the JSON document handed to exporter plugins.
type payload struct {
	From         string           `json:"from,omitempty"`
	To           string           `json:"to,omitempty"`
	TotalSeconds int64            `json:"total_seconds"`
	Sessions     []payloadSession `json:"sessions"`
}

type payloadSession struct {
	ID              string `json:"id"`
	StartedAt       string `json:"started_at"`
	EndedAt         string `json:"ended_at"`
	DurationSeconds int64  `json:"duration_seconds"`
	Label           string `json:"label,omitempty"`
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

type Interactor struct {
	svc    *service.ExportService
	report reportin.Usecase
}

func NewInteractor(svc *service.ExportService, report reportin.Usecase) exportin.Usecase {
	return &Interactor{svc: svc, report: report}
}

func (i *Interactor) List(ctx context.Context) ([]dto.ExporterOutput, error) {
	manifests, meta, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExporterOutput, 0, len(manifests))
	for _, manifest := range manifests {
		item := dto.ExporterOutput{Name: manifest.Name, Binary: manifest.Binary, Enabled: manifest.Enabled}
		if m, ok := meta[manifest.Name]; ok {
			item.Version = m.Version
			item.Formats = m.Formats
		}
		out = append(out, item)
	}
	return out, nil
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorOutput, error) {
	results, err := i.svc.Doctor(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DoctorOutput, 0, len(results))
	for _, r := range results {
		out = append(out, dto.DoctorOutput{
			Name:            r.Name,
			BinaryReachable: r.BinaryReachable,
			HandshakeOK:     r.HandshakeOK,
			Error:           r.Error,
		})
	}
	return out, nil
}

func (i *Interactor) Render(ctx context.Context, input dto.RenderInput) (dto.RenderOutput, error) {
	if i.report == nil {
		return dto.RenderOutput{}, fmt.Errorf("report usecase is not configured")
	}
	report, err := i.report.Report(ctx, input.From, input.To)
	if err != nil {
		return dto.RenderOutput{}, err
	}

	doc := payload{
		TotalSeconds: int64(report.Total.Seconds()),
		Sessions:     make([]payloadSession, 0, len(report.Sessions)),
	}
	if !input.From.IsZero() {
		doc.From = input.From.Format(timeLayout)
	}
	if !input.To.IsZero() {
		doc.To = input.To.Format(timeLayout)
	}
	for _, s := range report.Sessions {
		doc.Sessions = append(doc.Sessions, payloadSession{
			ID:              s.ID,
			StartedAt:       s.StartedAt.Format(timeLayout),
			EndedAt:         s.EndedAt.Format(timeLayout),
			DurationSeconds: int64(s.Duration.Seconds()),
			Label:           s.Label,
		})
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return dto.RenderOutput{}, fmt.Errorf("marshal export payload: %w", err)
	}

	result, err := i.svc.Render(ctx, input.Exporter, domain.RenderRequest{
		Format:      input.Format,
		PayloadJSON: string(raw),
		DataDir:     input.DataDir,
	})
	if err != nil {
		return dto.RenderOutput{}, err
	}
	return dto.RenderOutput{
		Exporter: input.Exporter,
		Format:   input.Format,
		Output:   result.Output,
		ExitCode: result.ExitCode,
	}, nil
}
