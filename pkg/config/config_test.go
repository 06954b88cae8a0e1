package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeSettings(t, `
model: gemini-2.5-pro
temperature: 1.2
number_of_candidates: 4
revalidate_candidates: true
batch_timeout: 30s
port: 9090
`)

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := Default()
	expected.Model = "gemini-2.5-pro"
	expected.Temperature = 1.2
	expected.NumberOfCandidates = 4
	expected.RevalidateCandidates = true
	expected.BatchTimeout = 30 * time.Second
	expected.Port = 9090

	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() succeeded on a missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*Settings) {}},
		{name: "empty model", mutate: func(s *Settings) { s.Model = "" }, wantErr: true},
		{name: "empty source dialect", mutate: func(s *Settings) { s.SourceDialect = "" }, wantErr: true},
		{name: "negative temperature", mutate: func(s *Settings) { s.Temperature = -0.1 }, wantErr: true},
		{name: "zero candidates", mutate: func(s *Settings) { s.NumberOfCandidates = 0 }, wantErr: true},
		{name: "zero batch timeout", mutate: func(s *Settings) { s.BatchTimeout = 0 }, wantErr: true},
		{name: "port out of range", mutate: func(s *Settings) { s.Port = 70000 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate() = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}
