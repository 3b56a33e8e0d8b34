package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	exporterrpc "dw/internal/modules/export/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

type payload struct {
	From         string    `json:"from"`
	To           string    `json:"to"`
	TotalSeconds int64     `json:"total_seconds"`
	Sessions     []session `json:"sessions"`
}

type session struct {
	ID              string `json:"id"`
	StartedAt       string `json:"started_at"`
	EndedAt         string `json:"ended_at"`
	DurationSeconds int64  `json:"duration_seconds"`
	Label           string `json:"label"`
}

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *exporterrpc.Empty) (*exporterrpc.Metadata, error) {
	return &exporterrpc.Metadata{
		Name:    "reference",
		Version: "1.0.0",
		Formats: []string{"csv", "markdown"},
	}, nil
}

func (s *server) Render(_ context.Context, in *exporterrpc.RenderRequest) (*exporterrpc.RenderResponse, error) {
	doc := payload{}
	if err := json.Unmarshal([]byte(in.PayloadJSON), &doc); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	switch in.Format {
	case "csv":
		return &exporterrpc.RenderResponse{Output: renderCSV(doc)}, nil
	case "markdown":
		return &exporterrpc.RenderResponse{Output: renderMarkdown(doc)}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", in.Format)
	}
}

func renderCSV(doc payload) string {
	b := strings.Builder{}
	for _, s := range doc.Sessions {
		b.WriteString(fmt.Sprintf("%s,%s,%d,%s\n", s.StartedAt, s.EndedAt, s.DurationSeconds, csvField(s.Label)))
	}
	return b.String()
}

func csvField(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

func renderMarkdown(doc payload) string {
	b := strings.Builder{}
	b.WriteString("# Deep work report\n\n")
	b.WriteString(fmt.Sprintf("Total: %d second(s) across %d session(s)\n\n", doc.TotalSeconds, len(doc.Sessions)))
	b.WriteString("| Start | Stop | Seconds | Label |\n|---|---|---|---|\n")
	for _, s := range doc.Sessions {
		b.WriteString(fmt.Sprintf("| %s | %s | %d | %s |\n", s.StartedAt, s.EndedAt, s.DurationSeconds, s.Label))
	}
	return b.String()
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: exporterrpc.HandshakeConfig,
		Plugins:         exporterrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
