package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func initRepoWithCommit(t *testing.T) (string, string) {
	t.Helper()

	tmpDir := t.TempDir()
	repo, err := gogit.PlainInit(tmpDir, false)
	if err != nil {
		t.Fatalf("Failed to init git repo: %v", err)
	}

	testFile := filepath.Join(tmpDir, "test.txt")
	if err := os.WriteFile(testFile, []byte("test content"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}
	if _, err := worktree.Add("test.txt"); err != nil {
		t.Fatalf("Failed to add file: %v", err)
	}

	commit, err := worktree.Commit("Initial commit", &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
		},
	})
	if err != nil {
		t.Fatalf("Failed to create commit: %v", err)
	}

	return tmpDir, commit.String()
}

func TestDetector_Detect(t *testing.T) {
	tmpDir, commit := initRepoWithCommit(t)

	d := NewDetector()
	info, err := d.Detect(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if info.Commit != commit {
		t.Errorf("Expected commit %s, got %s", commit, info.Commit)
	}

	// go-git defaults to master
	if info.Branch != "master" && info.Branch != "main" {
		t.Errorf("Unexpected branch: %s", info.Branch)
	}
}

func TestDetector_Detect_NoGitRepo(t *testing.T) {
	d := NewDetector()

	_, err := d.Detect(context.Background(), t.TempDir())
	if err == nil {
		t.Error("Expected error when no git repo exists")
	}
}

func TestFindGitRepo_FromSubdirectory(t *testing.T) {
	tmpDir, _ := initRepoWithCommit(t)

	subDir := filepath.Join(tmpDir, "level1", "level2")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}

	found, err := findGitRepo(subDir)
	if err != nil {
		t.Fatalf("findGitRepo() error = %v", err)
	}
	if found != tmpDir {
		t.Errorf("Expected repo at %s, found at %s", tmpDir, found)
	}
}

func TestFindGitRepo_NotFound(t *testing.T) {
	if _, err := findGitRepo(t.TempDir()); err == nil {
		t.Error("Expected error when no git repo exists")
	}
}

func TestShortCommit(t *testing.T) {
	tests := []struct {
		commit   string
		expected string
	}{
		{"abcdef1234567890abcdef1234567890abcdef12", "abcdef1"},
		{"short", "short"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ShortCommit(tt.commit); got != tt.expected {
			t.Errorf("ShortCommit(%q) = %q, want %q", tt.commit, got, tt.expected)
		}
	}
}
