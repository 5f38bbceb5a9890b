package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdblocks/pkg/runner"
)

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func relPaths(t *testing.T, dir string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, file := range files {
		rel, err := filepath.Rel(dir, file)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"readme.md":            "x",
		"docs/guide.md":        "x",
		"docs/api.MARKDOWN":    "x",
		"docs/drafts/wip.md":   "x",
		"src/main.go":          "x",
		".hidden/secret.md":    "x",
		"docs/.scratch.md":     "x",
		"vendor/lib/readme.md": "x",
	})

	tests := []struct {
		name     string
		opts     runner.Options
		expected []string
	}{
		{
			name: "working directory",
			opts: runner.Options{},
			expected: []string{
				"docs/api.MARKDOWN", "docs/drafts/wip.md", "docs/guide.md",
				"readme.md", "vendor/lib/readme.md",
			},
		},
		{
			name: "excludes",
			opts: runner.Options{ExcludeGlobs: []string{"vendor/**", "**/drafts"}},
			expected: []string{
				"docs/api.MARKDOWN", "docs/guide.md", "readme.md",
			},
		},
		{
			name:     "base name pattern",
			opts:     runner.Options{Paths: []string{"docs"}, ExcludeGlobs: []string{"*.MARKDOWN"}},
			expected: []string{"docs/drafts/wip.md", "docs/guide.md"},
		},
		{
			name:     "explicit files deduplicated",
			opts:     runner.Options{Paths: []string{"readme.md", "readme.md", "src/main.go", "docs/.scratch.md"}},
			expected: []string{"docs/.scratch.md", "readme.md"},
		},
		{
			name:     "custom extensions",
			opts:     runner.Options{Extensions: []string{".go"}},
			expected: []string{"src/main.go"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			opts := testCase.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, relPaths(t, dir, files))
		})
	}
}

func TestDiscover_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"missing.md"},
	})
	require.Error(t, err)
}

func TestOptions_OutputPath(t *testing.T) {
	t.Parallel()

	work := filepath.FromSlash("/work")

	tests := []struct {
		name     string
		opts     runner.Options
		source   string
		expected string
	}{
		{"next to source", runner.Options{}, "/work/posts/a.md", "/work/posts/a.json"},
		{"custom extension", runner.Options{OutputExtension: ".out"}, "/work/a.markdown", "/work/a.out"},
		{"mirrors tree", runner.Options{OutputDir: "build"}, "/work/posts/2024/a.md", "/work/build/posts/2024/a.json"},
		{"absolute output dir", runner.Options{OutputDir: "/out"}, "/work/a.md", "/out/a.json"},
		{"outside working dir", runner.Options{OutputDir: "build"}, "/elsewhere/a.md", "/work/build/a.json"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := testCase.opts.OutputPath(work, filepath.FromSlash(testCase.source))
			assert.Equal(t, filepath.FromSlash(testCase.expected), got)
		})
	}
}
