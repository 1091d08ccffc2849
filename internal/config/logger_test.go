package config

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simp-lee/logger"
)

func boolPtr(b bool) *bool { return &b }

// newCapturedLogger builds a logger from cfg whose console output goes to buf.
func newCapturedLogger(t *testing.T, cfg *LogConfig, buf *bytes.Buffer) *logger.Logger {
	t.Helper()
	opts := append(BuildLoggerOpts(cfg), logger.WithConsoleWriter(buf))
	log, err := logger.New(opts...)
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(func() { _ = log.Close() })
	return log
}

func TestBuildLoggerOpts_CarriesRequestIDFromContext(t *testing.T) {
	var buf bytes.Buffer
	log := newCapturedLogger(t, &LogConfig{Level: "info", Format: "json", Color: boolPtr(false)}, &buf)

	ctx := logger.WithContextAttrs(context.Background(), slog.String("request_id", "3f1c-orders-list"))
	log.InfoContext(ctx, "order status updated", slog.Int64("id", 1700000000123))

	out := buf.String()
	for _, want := range []string{`"request_id":"3f1c-orders-list"`, `"msg":"order status updated"`, `"id":1700000000123`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log to contain %s, got:\n%s", want, out)
		}
	}
}

func TestBuildLoggerOpts_LevelGatesRecords(t *testing.T) {
	tests := []struct {
		level    string
		dropped  slog.Level
		accepted slog.Level
	}{
		{"debug", slog.LevelDebug - 1, slog.LevelDebug},
		{"info", slog.LevelDebug, slog.LevelInfo},
		{"WARN", slog.LevelInfo, slog.LevelWarn},
		{"error", slog.LevelWarn, slog.LevelError},
		{"", slog.LevelDebug, slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log := newCapturedLogger(t, &LogConfig{Level: tt.level, Format: "text", Color: boolPtr(false)}, &buf)

			log.Log(context.Background(), tt.dropped, "seed skipped")
			log.Log(context.Background(), tt.accepted, "store opened")

			out := buf.String()
			if strings.Contains(out, "seed skipped") {
				t.Errorf("record below %q was written:\n%s", tt.level, out)
			}
			if !strings.Contains(out, "store opened") {
				t.Errorf("record at %v was dropped:\n%s", tt.accepted, out)
			}
		})
	}
}

func TestBuildLoggerOpts_FileSinkOptions(t *testing.T) {
	const console = 4
	tests := []struct {
		name string
		cfg  *LogConfig
		want int
	}{
		{"console only", &LogConfig{Level: "info", Format: "text"}, console},
		{"file without rotation", &LogConfig{Level: "info", Format: "json", FilePath: "data/admin.log"}, console + 2},
		{"file with size cap", &LogConfig{Format: "json", FilePath: "data/admin.log", MaxSizeMB: 20}, console + 3},
		{"compress false still applied", &LogConfig{Format: "json", FilePath: "data/admin.log", CompressRotated: boolPtr(false)}, console + 3},
		{"full rotation", &LogConfig{
			Format: "json", FilePath: "data/admin.log",
			MaxSizeMB: 20, RetentionDays: 14, MaxBackups: 5, CompressRotated: boolPtr(true),
		}, console + 6},
		{"rotation ignored without file", &LogConfig{Format: "text", MaxSizeMB: 20, MaxBackups: 5}, console},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(BuildLoggerOpts(tt.cfg)); got != tt.want {
				t.Errorf("option count = %d; want %d", got, tt.want)
			}
		})
	}

	if BuildLoggerOpts(nil) != nil {
		t.Error("nil config must yield nil options")
	}
}

func TestSetupLogger_WritesFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storeadmin.log")
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	log, err := SetupLogger(&LogConfig{
		Level: "info", Format: "json", Color: boolPtr(false),
		FilePath: path, MaxSizeMB: 1, MaxBackups: 1,
	})
	if err != nil {
		t.Fatalf("SetupLogger: %v", err)
	}
	log.Info("seed completed", slog.Int("collections", 8))
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "seed completed") {
		t.Errorf("log file does not contain the record:\n%s", data)
	}
}

func TestSetupLogger_NilConfig(t *testing.T) {
	if _, err := SetupLogger(nil); err == nil || !strings.Contains(err.Error(), "log config is nil") {
		t.Errorf("expected nil config error, got %v", err)
	}
}

func TestSetupLogger_InstallsDefaultFromProjectConfig(t *testing.T) {
	cfg, err := Load("../../configs/config.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	log, err := SetupLogger(&cfg.Log)
	if err != nil {
		t.Fatalf("SetupLogger: %v", err)
	}
	defer log.Close()

	if slog.Default().Handler() != log.Handler() {
		t.Error("SetupLogger did not install the logger as slog.Default")
	}
	if !log.Enabled(context.Background(), slog.LevelInfo) || log.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("project config should log at info")
	}
}
