package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment\n" +
		"DOTENV_TEST_PLAIN=hello\n" +
		"export DOTENV_TEST_EXPORTED=world\n" +
		"DOTENV_TEST_QUOTED=\"quoted value\"\n" +
		"not-a-pair\n"
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	for _, key := range []string{"DOTENV_TEST_PLAIN", "DOTENV_TEST_EXPORTED", "DOTENV_TEST_QUOTED"} {
		t.Setenv(key, "")
	}

	loadEnvFiles(envPath, filepath.Join(dir, "missing.env"))

	if got := os.Getenv("DOTENV_TEST_PLAIN"); got != "hello" {
		t.Fatalf("DOTENV_TEST_PLAIN = %q", got)
	}
	if got := os.Getenv("DOTENV_TEST_EXPORTED"); got != "world" {
		t.Fatalf("DOTENV_TEST_EXPORTED = %q", got)
	}
	if got := os.Getenv("DOTENV_TEST_QUOTED"); got != "quoted value" {
		t.Fatalf("DOTENV_TEST_QUOTED = %q", got)
	}
}
