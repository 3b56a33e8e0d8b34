package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"dw/internal/modules/export/domain"
	exportout "dw/internal/modules/export/port/out"
)

// FileManifestStore reads the exporter registry at
// <data>/exporters/exporters.json. A missing registry means no exporters
// are installed, not an error.
type FileManifestStore struct {
	dataDir string
}

func NewFileManifestStore(dataDir string) exportout.ManifestStore {
	return &FileManifestStore{dataDir: dataDir}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	path := filepath.Join(s.dataDir, "exporters", "exporters.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read exporter registry: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	var manifests []domain.Manifest
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("decode exporter registry %s: %w", path, err)
	}
	for i := range manifests {
		manifests[i].Binary = s.resolveBinary(manifests[i].Binary)
	}
	return manifests, nil
}

// resolveBinary anchors relative binary paths at the data dir, so a
// registry can ship exporters under <data>/exporters/bin.
func (s *FileManifestStore) resolveBinary(binary string) string {
	if binary == "" || filepath.IsAbs(binary) {
		return binary
	}
	return filepath.Clean(filepath.Join(s.dataDir, binary))
}
