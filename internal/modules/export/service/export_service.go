package service

import (
	"context"
	"fmt"
	"os"

	"dw/internal/modules/export/domain"
	exportout "dw/internal/modules/export/port/out"
)

type ExportService struct {
	manifests exportout.ManifestStore
	host      exportout.Host
}

func NewExportService(manifests exportout.ManifestStore, host exportout.Host) *ExportService {
	return &ExportService{manifests: manifests, host: host}
}

func (s *ExportService) List(ctx context.Context) ([]domain.Manifest, map[string]domain.Metadata, error) {
	manifests, err := s.manifests.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	meta := make(map[string]domain.Metadata, len(manifests))
	for _, manifest := range manifests {
		if !manifest.Enabled {
			continue
		}
		m, err := s.host.GetMetadata(ctx, manifest)
		if err != nil {
			continue
		}
		meta[manifest.Name] = m
	}
	return manifests, meta, nil
}

func (s *ExportService) Doctor(ctx context.Context) ([]domain.DoctorResult, error) {
	manifests, err := s.manifests.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]domain.DoctorResult, 0, len(manifests))
	for _, manifest := range manifests {
		result := domain.DoctorResult{Name: manifest.Name}
		if _, err := os.Stat(manifest.Binary); err == nil {
			result.BinaryReachable = true
		}
		if result.BinaryReachable {
			if _, err := s.host.GetMetadata(ctx, manifest); err != nil {
				result.Error = err.Error()
			} else {
				result.HandshakeOK = true
			}
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *ExportService) Render(ctx context.Context, name string, request domain.RenderRequest) (domain.RenderResult, error) {
	manifest, err := s.find(ctx, name)
	if err != nil {
		return domain.RenderResult{}, err
	}
	meta, err := s.host.GetMetadata(ctx, manifest)
	if err != nil {
		return domain.RenderResult{}, fmt.Errorf("exporter %s handshake: %w", name, err)
	}
	if !supportsFormat(meta, request.Format) {
		return domain.RenderResult{}, fmt.Errorf("%w: %s does not render %q", domain.ErrFormatUnknown, name, request.Format)
	}
	return s.host.Render(ctx, manifest, request)
}

func (s *ExportService) find(ctx context.Context, name string) (domain.Manifest, error) {
	manifests, err := s.manifests.Load(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	for _, manifest := range manifests {
		if manifest.Name != name {
			continue
		}
		if !manifest.Enabled {
			return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrExporterDisabled, name)
		}
		return manifest, nil
	}
	return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrExporterNotFound, name)
}

func supportsFormat(meta domain.Metadata, format string) bool {
	for _, f := range meta.Formats {
		if f == format {
			return true
		}
	}
	return false
}
