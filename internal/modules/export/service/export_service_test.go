package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"dw/internal/modules/export/domain"
	"dw/internal/modules/export/service"
)

type fakeManifests struct {
	manifests []domain.Manifest
	err       error
}

func (f *fakeManifests) Load(_ context.Context) ([]domain.Manifest, error) {
	return f.manifests, f.err
}

type fakeHost struct {
	meta     map[string]domain.Metadata
	metaErr  error
	rendered []domain.RenderRequest
}

func (f *fakeHost) GetMetadata(_ context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	if f.metaErr != nil {
		return domain.Metadata{}, f.metaErr
	}
	m, ok := f.meta[manifest.Name]
	if !ok {
		return domain.Metadata{}, errors.New("no metadata")
	}
	return m, nil
}

func (f *fakeHost) Render(_ context.Context, _ domain.Manifest, request domain.RenderRequest) (domain.RenderResult, error) {
	f.rendered = append(f.rendered, request)
	return domain.RenderResult{Output: "rendered " + request.Format, ExitCode: 0}, nil
}

func touchBinary(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exporter")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	return path
}

func TestListSkipsDisabledAndUnreachable(t *testing.T) {
	t.Parallel()
	manifests := &fakeManifests{manifests: []domain.Manifest{
		{Name: "csv", Binary: "/bin/csv", Enabled: true},
		{Name: "off", Binary: "/bin/off", Enabled: false},
		{Name: "broken", Binary: "/bin/broken", Enabled: true},
	}}
	host := &fakeHost{meta: map[string]domain.Metadata{
		"csv": {Name: "csv", Version: "1.0.0", Formats: []string{"csv"}},
	}}
	svc := service.NewExportService(manifests, host)

	all, meta, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("list must return every manifest, got %d", len(all))
	}
	if len(meta) != 1 || meta["csv"].Version != "1.0.0" {
		t.Fatalf("metadata only for reachable enabled exporters: %+v", meta)
	}
}

func TestDoctorReportsBinaryAndHandshake(t *testing.T) {
	t.Parallel()
	binary := touchBinary(t)
	manifests := &fakeManifests{manifests: []domain.Manifest{
		{Name: "good", Binary: binary, Enabled: true},
		{Name: "missing", Binary: filepath.Join(t.TempDir(), "nope"), Enabled: true},
	}}
	host := &fakeHost{meta: map[string]domain.Metadata{
		"good": {Name: "good", Formats: []string{"csv"}},
	}}
	svc := service.NewExportService(manifests, host)

	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected two results, got %+v", results)
	}
	if !results[0].BinaryReachable || !results[0].HandshakeOK {
		t.Fatalf("healthy exporter misreported: %+v", results[0])
	}
	if results[1].BinaryReachable || results[1].HandshakeOK {
		t.Fatalf("missing binary misreported: %+v", results[1])
	}
}

func TestRenderChecksFormatBeforeCalling(t *testing.T) {
	t.Parallel()
	manifests := &fakeManifests{manifests: []domain.Manifest{
		{Name: "csv", Binary: "/bin/csv", Enabled: true},
	}}
	host := &fakeHost{meta: map[string]domain.Metadata{
		"csv": {Name: "csv", Formats: []string{"csv", "markdown"}},
	}}
	svc := service.NewExportService(manifests, host)

	result, err := svc.Render(context.Background(), "csv", domain.RenderRequest{Format: "markdown", PayloadJSON: "{}"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result.Output != "rendered markdown" {
		t.Fatalf("unexpected output %q", result.Output)
	}
	if len(host.rendered) != 1 || host.rendered[0].Format != "markdown" {
		t.Fatalf("request not forwarded: %+v", host.rendered)
	}

	if _, err := svc.Render(context.Background(), "csv", domain.RenderRequest{Format: "pdf"}); !errors.Is(err, domain.ErrFormatUnknown) {
		t.Fatalf("expected unknown format, got %v", err)
	}
	if len(host.rendered) != 1 {
		t.Fatalf("unknown format must not reach the exporter")
	}
}

func TestRenderUnknownExporter(t *testing.T) {
	t.Parallel()
	svc := service.NewExportService(&fakeManifests{}, &fakeHost{})
	if _, err := svc.Render(context.Background(), "ghost", domain.RenderRequest{Format: "csv"}); !errors.Is(err, domain.ErrExporterNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRenderDisabledExporter(t *testing.T) {
	t.Parallel()
	manifests := &fakeManifests{manifests: []domain.Manifest{
		{Name: "csv", Binary: "/bin/csv", Enabled: false},
	}}
	svc := service.NewExportService(manifests, &fakeHost{})
	if _, err := svc.Render(context.Background(), "csv", domain.RenderRequest{Format: "csv"}); !errors.Is(err, domain.ErrExporterDisabled) {
		t.Fatalf("expected disabled, got %v", err)
	}
}
