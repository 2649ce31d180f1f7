package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/chrissnell/youngslab/pkg/config"
	"github.com/chrissnell/youngslab/pkg/elasticity"
)

func TestBuildWithSQLiteArchive(t *testing.T) {
	cfg := config.Default()
	cfg.Archive = config.ArchiveData{Backend: config.ArchiveSQLite, SQLitePath: filepath.Join(t.TempDir(), "runs.db")}

	bench, store, err := Build(cfg, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer store.Close()

	if _, err := bench.Compute(context.Background(), elasticity.DefaultDataset().Fields()); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if bench.Settings().Title != cfg.Report.Title {
		t.Errorf("settings = %+v", bench.Settings())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := "server:\n  listen_addr: 127.0.0.1\n  http_port: 18093\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- New(config.NewYAMLProvider(path), zap.NewNop().Sugar()).Run(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
