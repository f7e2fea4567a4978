package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

// newCmd returns a command carrying the flags whose Changed state the
// validators inspect. The flags are bound to throwaway variables so that
// creating the command does not reset the package configuration.
func newCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("token", "", "")
	cmd.Flags().String("base-url", "", "")
	cmd.Flags().StringSlice("columns", nil, "")
	return cmd
}

func resetGlobal(t *testing.T) {
	t.Helper()
	orig, origUpload, origList := Global, Upload, List
	t.Cleanup(func() { Global, Upload, List = orig, origUpload, origList })

	Global.Token = ""
	Global.BaseURL = "https://canvas.example.edu/api/v1"
	Global.EnvFile = filepath.Join(t.TempDir(), "missing.env")
	Global.LogLevel = "ERROR"
	Global.Output = OutputTable
	Global.Timeout = 30 * time.Second
	Global.Retries = 0
}

func TestValidateGlobalFlags(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func()
		wantErr bool
	}{
		{name: "defaults", mutate: func() {}, wantErr: false},
		{name: "bad base url", mutate: func() { Global.BaseURL = "ftp://x" }, wantErr: true},
		{name: "bad output", mutate: func() { Global.Output = "yaml" }, wantErr: true},
		{name: "lowercase log level", mutate: func() { Global.LogLevel = "debug" }, wantErr: false},
		{name: "bad log level", mutate: func() { Global.LogLevel = "TRACE" }, wantErr: true},
		{name: "negative timeout", mutate: func() { Global.Timeout = -time.Second }, wantErr: true},
		{name: "too many retries", mutate: func() { Global.Retries = 11 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetGlobal(t)
			Global.EnvFile = ""
			t.Chdir(t.TempDir())
			t.Setenv("UPPRAISAL_TOKEN", "")
			t.Setenv("UPPRAISAL_BASE_URL", "")
			tt.mutate()

			err := ValidateGlobalFlags(newCmd(), nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGlobalFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateGlobalFlagsMissingEnvFile(t *testing.T) {
	resetGlobal(t)

	if err := ValidateGlobalFlags(newCmd(), nil); err == nil {
		t.Error("expected error for explicit missing env file")
	}
}

func TestLoadEnvironment(t *testing.T) {
	resetGlobal(t)
	t.Setenv("UPPRAISAL_TOKEN", "")
	t.Setenv("UPPRAISAL_BASE_URL", "")

	envFile := filepath.Join(t.TempDir(), "test.env")
	content := "UPPRAISAL_TOKEN=from-file\nUPPRAISAL_BASE_URL=https://lms.example.org/api/v1\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override variables that are already set
	os.Unsetenv("UPPRAISAL_TOKEN")
	os.Unsetenv("UPPRAISAL_BASE_URL")
	Global.EnvFile = envFile

	Global.BaseURL = "https://flag.example.org/api/v1"
	cmd := newCmd()
	if err := cmd.Flags().Set("base-url", Global.BaseURL); err != nil {
		t.Fatal(err)
	}

	if err := LoadEnvironment(cmd); err != nil {
		t.Fatalf("LoadEnvironment() error = %v", err)
	}
	if Global.Token != "from-file" {
		t.Errorf("Global.Token = %q, want %q", Global.Token, "from-file")
	}
	if Global.BaseURL != "https://flag.example.org/api/v1" {
		t.Errorf("Global.BaseURL = %q, flag should win", Global.BaseURL)
	}
}

func TestValidateUploadFlags(t *testing.T) {
	valid := func() {
		Upload.CourseID = 1
		Upload.AssignmentID = 2
		Upload.Mode = ModeBatch
		Upload.Sheet = "Sheet1"
		Upload.IDHeaders = []string{"user_id"}
		Upload.GradeHeader = "grade"
		Upload.CommentHeader = "submission_comment"
		Upload.ChunkSize = 100
		Upload.PollInterval = time.Second
		Upload.RecordDelay = 0
		Upload.MaxPolls = 0
	}

	tests := []struct {
		name    string
		mutate  func()
		wantErr bool
	}{
		{name: "valid", mutate: func() {}},
		{name: "missing course", mutate: func() { Upload.CourseID = 0 }, wantErr: true},
		{name: "bad mode", mutate: func() { Upload.Mode = "bulk" }, wantErr: true},
		{name: "bad sheet", mutate: func() { Upload.Sheet = "a/b" }, wantErr: true},
		{name: "no id headers", mutate: func() { Upload.IDHeaders = nil }, wantErr: true},
		{name: "empty grade header", mutate: func() { Upload.GradeHeader = " " }, wantErr: true},
		{name: "chunk too big", mutate: func() { Upload.ChunkSize = 1001 }, wantErr: true},
		{name: "chunk zero", mutate: func() { Upload.ChunkSize = 0 }, wantErr: true},
		{name: "negative delay", mutate: func() { Upload.RecordDelay = -1 }, wantErr: true},
		{name: "negative max polls", mutate: func() { Upload.MaxPolls = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetGlobal(t)
			valid()
			tt.mutate()

			err := ValidateUploadFlags(newCmd(), nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUploadFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateListFlags(t *testing.T) {
	resetGlobal(t)
	List.CourseID = 1
	List.AssignmentID = 2

	if err := ValidateListFlags(newCmd(), nil); err != nil {
		t.Errorf("ValidateListFlags() error = %v", err)
	}

	cmd := newCmd()
	List.AllColumns = true
	if err := cmd.Flags().Set("columns", "a,b"); err != nil {
		t.Fatal(err)
	}
	if err := ValidateListFlags(cmd, nil); err == nil {
		t.Error("expected error for --columns with --all-columns")
	}
}
