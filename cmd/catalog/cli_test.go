package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// executeCmd runs the root command with args and returns captured stdout
// and any error.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

const sevenProducts = `
port: 8080
page_size: 5
products:
  - name: Pen
    price: 10
  - name: Book
    price: 20
  - name: Pencil
    price: 2
  - name: Paper
    price: 5
  - name: Pen case
    price: 7
  - name: Notebook
    price: 12
  - name: Pen refill
    price: 1.5
`

func TestRunValidate_ValidConfig(t *testing.T) {
	output, err := executeCmd(t, "validate", "-c", writeConfig(t, sevenProducts))
	if err != nil {
		t.Fatalf("validate command error = %v", err)
	}

	expectedPhrases := []string{
		"Config is valid!",
		"Port:      8080",
		"Page size: 5",
		"Products:  7 (2 pages)",
	}
	for _, phrase := range expectedPhrases {
		if !strings.Contains(output, phrase) {
			t.Errorf("output missing %q\nGot: %s", phrase, output)
		}
	}
}

func TestRunValidate_InvalidConfig(t *testing.T) {
	path := writeConfig(t, `
products:
  - name: ""
    price: 3
`)

	_, err := executeCmd(t, "validate", "-c", path)
	if err == nil {
		t.Fatal("validate command expected error for invalid config, got nil")
	}
	if !strings.Contains(err.Error(), "name is required") {
		t.Errorf("error should mention 'name is required', got: %v", err)
	}
}

func TestRunValidate_MissingFile(t *testing.T) {
	_, err := executeCmd(t, "validate", "-c", "/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("validate command expected error for missing file, got nil")
	}
	if !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("error should mention 'failed to read', got: %v", err)
	}
}

func TestRunList_Search(t *testing.T) {
	path := writeConfig(t, sevenProducts)

	output, err := executeCmd(t, "list", "-c", path, "-q", "PEN", "-p", "1")
	if err != nil {
		t.Fatalf("list command error = %v", err)
	}

	for _, want := range []string{"INDEX", "Pen case", "Pen refill", "Page 1 / 1 (4 matching)"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q\nGot: %s", want, output)
		}
	}
	if strings.Contains(output, "Book") {
		t.Errorf("output should not contain non-matching Book\nGot: %s", output)
	}
}

func TestRunList_ClampsPage(t *testing.T) {
	path := writeConfig(t, sevenProducts)

	output, err := executeCmd(t, "list", "-c", path, "-q", "", "-p", "9")
	if err != nil {
		t.Fatalf("list command error = %v", err)
	}

	if !strings.Contains(output, "Page 2 / 2 (7 matching)") {
		t.Errorf("page should clamp to 2\nGot: %s", output)
	}
	// global indices, not display positions
	if !strings.Contains(output, "5  ") || !strings.Contains(output, "Notebook") {
		t.Errorf("expected Notebook at global index 5\nGot: %s", output)
	}
}

func TestVersionCmd(t *testing.T) {
	output, err := executeCmd(t, "version")
	if err != nil {
		t.Fatalf("version command error = %v", err)
	}
	if !strings.Contains(output, "catalog dev") {
		t.Errorf("output = %q, want it to contain %q", output, "catalog dev")
	}
}
