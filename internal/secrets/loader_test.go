package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write token file: %v", err)
	}
	return path
}

func TestLoadPrecedence(t *testing.T) {
	t.Setenv("RECRUIT_TEST_TOKEN", " from-env \n")

	tests := []struct {
		name string
		src  Source
		want string
	}{
		{name: "file wins", src: Source{File: writeFile(t, "from-file\n"), Env: "RECRUIT_TEST_TOKEN", Value: "inline"}, want: "from-file"},
		{name: "env before value", src: Source{Env: "RECRUIT_TEST_TOKEN", Value: "inline"}, want: "from-env"},
		{name: "empty env falls back to value", src: Source{Env: "RECRUIT_TEST_UNSET", Value: " inline "}, want: "inline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	if _, err := Load(Source{Name: "api token"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}

	if _, err := Load(Source{File: writeFile(t, "  \n")}); err == nil || errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected empty file error, got %v", err)
	}

	if _, err := Load(Source{File: filepath.Join(t.TempDir(), "missing")}); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestOptional(t *testing.T) {
	t.Parallel()

	got, err := Optional(Source{Name: "api token"})
	if err != nil || got != "" {
		t.Fatalf("expected empty secret without error, got %q, %v", got, err)
	}

	if _, err := Optional(Source{File: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatalf("a configured but unreadable file must still fail")
	}
}
