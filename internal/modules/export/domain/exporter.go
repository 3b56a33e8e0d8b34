package domain

import "errors"

// Manifest describes one installed exporter binary.
type Manifest struct {
	Name    string `json:"name"`
	Binary  string `json:"binary"`
	Enabled bool   `json:"enabled"`
}

// Metadata is what an exporter reports about itself over the handshake.
type Metadata struct {
	Name    string
	Version string
	Formats []string
}

// RenderRequest carries the report payload to an exporter.
type RenderRequest struct {
	Format      string
	PayloadJSON string
	DataDir     string
}

type RenderResult struct {
	Output   string
	ExitCode int
}

type DoctorResult struct {
	Name            string
	BinaryReachable bool
	HandshakeOK     bool
	Error           string
}

var (
	ErrExporterNotFound = errors.New("exporter not found")
	ErrExporterDisabled = errors.New("exporter is disabled")
	ErrFormatUnknown    = errors.New("exporter does not support format")
	ErrExporterTimeout  = errors.New("exporter timed out")
)
