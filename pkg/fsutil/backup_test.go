package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/bookfix/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	if got := fsutil.BackupPath("part2/ch05.md", fsutil.BackupModeSidecar); got != "part2/ch05.md.bookfix.bak" {
		t.Errorf("sidecar BackupPath = %q", got)
	}
	if got := fsutil.BackupPath("part2/ch05.md", fsutil.BackupModeNone); got != "" {
		t.Errorf("none BackupPath = %q, want empty", got)
	}
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	t.Run("creates sidecar copy", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "ch.md")
		if err := os.WriteFile(path, []byte("original"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		created, err := fsutil.CreateBackup(context.Background(), path, cfg)
		if err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}
		if !created {
			t.Fatal("expected backup to be created")
		}

		got, err := os.ReadFile(path + fsutil.BackupSuffix)
		if err != nil {
			t.Fatalf("read backup: %v", err)
		}
		if string(got) != "original" {
			t.Errorf("backup = %q, want %q", got, "original")
		}
	})

	t.Run("keeps the first backup", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "ch.md")
		if err := os.WriteFile(path, []byte("first"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if _, err := fsutil.CreateBackup(context.Background(), path, cfg); err != nil {
			t.Fatalf("first backup: %v", err)
		}
		if err := os.WriteFile(path, []byte("second"), 0644); err != nil {
			t.Fatalf("rewrite: %v", err)
		}

		created, err := fsutil.CreateBackup(context.Background(), path, cfg)
		if err != nil {
			t.Fatalf("second backup: %v", err)
		}
		if created {
			t.Error("second backup should not be created")
		}

		got, _ := os.ReadFile(path + fsutil.BackupSuffix)
		if string(got) != "first" {
			t.Errorf("backup = %q, want %q", got, "first")
		}
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "ch.md")
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		created, err := fsutil.CreateBackup(context.Background(), path, fsutil.BackupConfig{})
		if err != nil || created {
			t.Errorf("CreateBackup() = %v, %v; want false, nil", created, err)
		}
		if _, err := os.Stat(path + fsutil.BackupSuffix); !os.IsNotExist(err) {
			t.Error("backup file should not exist")
		}
	})
}
