// Package runner converts many markdown files concurrently.
package runner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gomdblocks/pkg/document"
)

// DefaultOutputExtension is appended to the source base name when
// Options.OutputExtension is empty.
const DefaultOutputExtension = ".json"

// Options controls a batch conversion.
type Options struct {
	// Paths are the files or directories to convert.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir resolves relative Paths. Defaults to the process working directory.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Markdown. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// Jobs is the maximum number of concurrent workers.
	// 0 or negative means one per CPU.
	Jobs int

	// OutputDir receives the converted documents, mirroring each source's
	// directory relative to WorkingDir. Empty writes next to the source.
	OutputDir string

	// OutputExtension replaces the source extension. Defaults to ".json".
	OutputExtension string

	// Pretty indents the JSON output.
	Pretty bool

	// Template supplies borrowed fields for new documents. May be nil.
	Template document.Document

	// Merge replaces the content of an existing output document instead of
	// creating a new one. Outputs that do not exist yet are created.
	Merge bool
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// OutputPath returns where the document converted from source is written.
// root must be absolute. It resolves a relative OutputDir and is the top of
// the tree mirrored under OutputDir; sources outside root are written
// directly into OutputDir.
func (o Options) OutputPath(root, source string) string {
	ext := o.OutputExtension
	if ext == "" {
		ext = DefaultOutputExtension
	}
	name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)) + ext

	if o.OutputDir == "" {
		return filepath.Join(filepath.Dir(source), name)
	}

	outDir := o.OutputDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(root, outDir)
	}

	if !within(root, source) {
		return filepath.Join(outDir, name)
	}
	rel, _ := filepath.Rel(root, filepath.Dir(source))
	return filepath.Join(outDir, rel, name)
}

// mirrorRoot returns workDir when every file lies inside it, otherwise the
// deepest directory containing all files. files must be absolute.
func mirrorRoot(workDir string, files []string) string {
	if len(files) == 0 {
		return workDir
	}

	inside := true
	for _, file := range files {
		if !within(workDir, file) {
			inside = false
			break
		}
	}
	if inside {
		return workDir
	}

	root := filepath.Dir(files[0])
	for _, file := range files[1:] {
		for !within(root, file) {
			parent := filepath.Dir(root)
			if parent == root {
				break
			}
			root = parent
		}
	}
	return root
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}
