package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/yaklabco/gomdblocks/internal/logging"
	"github.com/yaklabco/gomdblocks/pkg/document"
	"github.com/yaklabco/gomdblocks/pkg/fsutil"
)

// Runner converts files with a document.Builder.
type Runner struct {
	Builder *document.Builder
}

// New creates a Runner. A nil builder uses the default document layout.
func New(builder *document.Builder) *Runner {
	if builder == nil {
		builder = document.NewBuilder(nil, document.DefaultOptions())
	}
	return &Runner{Builder: builder}
}

// Run discovers files under opts.Paths and converts them concurrently.
// A file that fails is recorded in its FileOutcome and does not stop the
// run. Outcomes are ordered by source path.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	logger := logging.FromContext(ctx)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files), logging.FieldWorkingDir, workDir)

	if len(files) == 0 {
		return result, nil
	}

	if opts.OutputDir != "" && !filepath.IsAbs(opts.OutputDir) {
		opts.OutputDir = filepath.Join(workDir, opts.OutputDir)
	}
	root := mirrorRoot(workDir, files)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, root, opts, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}
	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	logger.Debug("run complete",
		logging.FieldFilesConverted, result.Stats.FilesConverted,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
	)

	return result, nil
}

func (r *Runner) worker(ctx context.Context, root string, opts Options, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.convertFile(ctx, root, path, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// convertFile converts one source and writes its document.
func (r *Runner) convertFile(ctx context.Context, root, path string, opts Options) FileOutcome {
	logger := logging.FromContext(ctx)
	outcome := FileOutcome{Path: path, Output: opts.OutputPath(root, path)}

	fail := func(err error) FileOutcome {
		outcome.Error = err
		logger.Debug("conversion failed", logging.FieldPath, path, logging.FieldError, err)
		return outcome
	}

	source, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return fail(err)
	}

	var (
		res          *document.Result
		existingInfo *fsutil.FileInfo
	)
	if opts.Merge {
		res, existingInfo, err = r.mergeExisting(ctx, outcome.Output, string(source))
		if err != nil {
			return fail(err)
		}
		outcome.Merged = res != nil
	}
	if res == nil {
		res, err = r.Builder.Build(string(source), opts.Template)
		if err != nil {
			return fail(fmt.Errorf("build %s: %w", path, err))
		}
	}

	var buf bytes.Buffer
	if err := res.Document.Encode(&buf, opts.Pretty); err != nil {
		return fail(err)
	}

	if existingInfo != nil {
		modified, err := fsutil.CheckModified(ctx, existingInfo)
		if err != nil {
			return fail(err)
		}
		if modified {
			return fail(fmt.Errorf("%w: %s", fsutil.ErrModified, outcome.Output))
		}
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, outcome.Output, buf.Bytes(), 0)
	if err != nil {
		return fail(err)
	}

	if res.FrontMatter != nil {
		outcome.Title = res.FrontMatter.Title
	}
	outcome.Blocks = len(res.Content)
	outcome.Links = len(res.Content.Links())
	outcome.Keys = res.Keys.Len()
	outcome.Written = written

	logger.Debug("converted",
		logging.FieldPath, path,
		logging.FieldOutput, outcome.Output,
		logging.FieldBlocks, outcome.Blocks,
		logging.FieldLinks, outcome.Links,
		logging.FieldWritten, written,
	)

	return outcome
}

// mergeExisting merges source into the document at output. It returns a nil
// result when no document exists there yet.
func (r *Runner) mergeExisting(ctx context.Context, output, source string) (*document.Result, *fsutil.FileInfo, error) {
	raw, info, err := fsutil.ReadFile(ctx, output)
	if errors.Is(err, fsutil.ErrNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	existing, err := document.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", output, err)
	}

	res, err := r.Builder.Merge(existing, source)
	if err != nil {
		return nil, nil, fmt.Errorf("merge %s: %w", output, err)
	}
	return res, info, nil
}
