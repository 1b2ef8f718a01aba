package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestCollectUpFiles_SortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"002_add_index.up.sql",
		"001_create_contact_submissions.up.sql",
		"001_create_contact_submissions.down.sql",
		"000_drop_all.sql",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "003_dir.up.sql"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := collectUpFiles(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"001_create_contact_submissions.up.sql", "002_add_index.up.sql"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCollectUpFiles_MissingDir(t *testing.T) {
	if _, err := collectUpFiles(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestRootCommand_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	cmd := newRootCommand()
	cmd.SetArgs([]string{"up", "--database-url", ""})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error without a database url")
	}
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"up", "reset", "fresh"} {
		if sub, _, err := cmd.Find([]string{name}); err != nil || sub.Name() != name {
			t.Errorf("missing subcommand %q", name)
		}
	}
}
