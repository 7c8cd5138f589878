package config

import (
	"os"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Helper function to reset pflag.CommandLine for testing
func resetFlags() {
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	viper.Reset()
}

// Helper function to set os.Args for testing
func setArgs(args []string) {
	os.Args = args
}

// Helper function to clear environment variables
func clearEnvVars() {
	os.Unsetenv("PDFCONVERT_HOST")
	os.Unsetenv("PDFCONVERT_PORT")
	os.Unsetenv("PDFCONVERT_APIKEY")
	os.Unsetenv("PDFCONVERT_DATADIR")
	os.Unsetenv("PDFCONVERT_DBPATH")
	os.Unsetenv("PDFCONVERT_WORKERS")
	os.Unsetenv("PDFCONVERT_QUEUESIZE")
	os.Unsetenv("PDFCONVERT_MAXUPLOAD")
	os.Unsetenv("PDFCONVERT_LOGLEVEL")
}

func TestLoadFromFlags_DefaultConfig(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	setArgs([]string{"pdfconvert"})
	resetFlags()
	clearEnvVars()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	if cfg.Host != "127.0.0.1" {
		t.Errorf("LoadFromFlags() Host = %v, want %v", cfg.Host, "127.0.0.1")
	}
	if cfg.Port != 8085 {
		t.Errorf("LoadFromFlags() Port = %v, want %v", cfg.Port, 8085)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LoadFromFlags() LogLevel = %v, want %v", cfg.LogLevel, "info")
	}
	if cfg.Workers != 4 {
		t.Errorf("LoadFromFlags() Workers = %v, want %v", cfg.Workers, 4)
	}
	// DataDir should be expanded to an absolute path
	if cfg.DataDir == "" || !strings.HasPrefix(cfg.DataDir, "/") {
		t.Errorf("LoadFromFlags() DataDir = %v, want an absolute path", cfg.DataDir)
	}
}

func TestLoadFromFlags_ValidFlags(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		wantHost     string
		wantPort     int
		wantWorkers  int
		wantLogLevel string
	}{
		{
			name:         "custom host and port",
			args:         []string{"pdfconvert", "--host=0.0.0.0", "--port=9090"},
			wantHost:     "0.0.0.0",
			wantPort:     9090,
			wantWorkers:  4,
			wantLogLevel: "info",
		},
		{
			name:         "debug logging",
			args:         []string{"pdfconvert", "--loglevel=debug"},
			wantHost:     "127.0.0.1",
			wantPort:     8085,
			wantWorkers:  4,
			wantLogLevel: "debug",
		},
		{
			name:         "custom worker count",
			args:         []string{"pdfconvert", "--workers=8"},
			wantHost:     "127.0.0.1",
			wantPort:     8085,
			wantWorkers:  8,
			wantLogLevel: "info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			originalArgs := os.Args
			defer func() {
				os.Args = originalArgs
				resetFlags()
				clearEnvVars()
			}()

			setArgs(tt.args)
			resetFlags()
			clearEnvVars()

			cfg, err := LoadFromFlags()
			if err != nil {
				t.Fatalf("LoadFromFlags() unexpected error: %v", err)
			}

			if cfg.Host != tt.wantHost {
				t.Errorf("LoadFromFlags() Host = %v, want %v", cfg.Host, tt.wantHost)
			}
			if cfg.Port != tt.wantPort {
				t.Errorf("LoadFromFlags() Port = %v, want %v", cfg.Port, tt.wantPort)
			}
			if cfg.Workers != tt.wantWorkers {
				t.Errorf("LoadFromFlags() Workers = %v, want %v", cfg.Workers, tt.wantWorkers)
			}
			if cfg.LogLevel != tt.wantLogLevel {
				t.Errorf("LoadFromFlags() LogLevel = %v, want %v", cfg.LogLevel, tt.wantLogLevel)
			}
		})
	}
}

func TestLoadFromFlags_EnvironmentVariables(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	os.Setenv("PDFCONVERT_HOST", "192.168.1.1")
	os.Setenv("PDFCONVERT_PORT", "3000")
	os.Setenv("PDFCONVERT_APIKEY", "secret-token")
	os.Setenv("PDFCONVERT_LOGLEVEL", "warn")

	setArgs([]string{"pdfconvert"})
	resetFlags()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	if cfg.Host != "192.168.1.1" {
		t.Errorf("LoadFromFlags() Host = %v, want %v", cfg.Host, "192.168.1.1")
	}
	if cfg.Port != 3000 {
		t.Errorf("LoadFromFlags() Port = %v, want %v", cfg.Port, 3000)
	}
	if cfg.APIKey != "secret-token" {
		t.Errorf("LoadFromFlags() APIKey = %v, want %v", cfg.APIKey, "secret-token")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LoadFromFlags() LogLevel = %v, want %v", cfg.LogLevel, "warn")
	}
}

func TestLoadFromFlags_FlagOverridesEnvironment(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	os.Setenv("PDFCONVERT_HOST", "192.168.1.1")
	os.Setenv("PDFCONVERT_PORT", "3000")

	setArgs([]string{"pdfconvert", "--host=localhost", "--port=8888"})
	resetFlags()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	if cfg.Host != "localhost" {
		t.Errorf("LoadFromFlags() Host = %v, want %v (should override env)", cfg.Host, "localhost")
	}
	if cfg.Port != 8888 {
		t.Errorf("LoadFromFlags() Port = %v, want %v (should override env)", cfg.Port, 8888)
	}
}

func TestLoadFromFlags_InvalidPort(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	setArgs([]string{"pdfconvert", "--port=99999"})
	resetFlags()
	clearEnvVars()

	_, err := LoadFromFlags()
	if err == nil {
		t.Error("LoadFromFlags() expected error for invalid port")
	}
	if err != nil && !strings.Contains(err.Error(), "port must be between 1 and 65535") {
		t.Errorf("LoadFromFlags() error = %v, want error about invalid port", err)
	}
}

func TestLoadFromFlags_InvalidLogLevel(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	setArgs([]string{"pdfconvert", "--loglevel=invalid"})
	resetFlags()
	clearEnvVars()

	_, err := LoadFromFlags()
	if err == nil {
		t.Error("LoadFromFlags() expected error for invalid log level")
	}
	if err != nil && !strings.Contains(err.Error(), "invalid log level") {
		t.Errorf("LoadFromFlags() error = %v, want error about invalid log level", err)
	}
}
