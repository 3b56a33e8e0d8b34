package dto

import "time"

type ExporterOutput struct {
	Name    string
	Version string
	Binary  string
	Enabled bool
	Formats []string
}

type DoctorOutput struct {
	Name            string
	BinaryReachable bool
	HandshakeOK     bool
	Error           string
}

type RenderInput struct {
	Exporter string
	Format   string
	From     time.Time
	To       time.Time
	DataDir  string
}

type RenderOutput struct {
	Exporter string
	Format   string
	Output   string
	ExitCode int
}
