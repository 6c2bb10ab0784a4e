package bank

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentReads caps the number of files read at once.
const maxConcurrentReads = 8

var (
	// ErrEmptyBatch is returned when no question survived parsing.
	ErrEmptyBatch = errors.New("no questions found in the imported text")

	// ErrValidation is wrapped by BatchError.
	ErrValidation = errors.New("question bank failed validation")
)

// Source is one raw question bank.
type Source struct {
	Name string
	Text string
}

// FileReadError reports a bank file that could not be read.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// BatchError rejects a whole import because at least one question is invalid.
type BatchError struct {
	Errors []*ValidationError
}

func (e *BatchError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("%v: %v", ErrValidation, e.Errors[0])
	}
	return fmt.Sprintf("%v: %d problems", ErrValidation, len(e.Errors))
}

func (e *BatchError) Unwrap() error { return ErrValidation }

// ImportOptions configures Import.
type ImportOptions struct {
	// Strict turns dropped question blocks into validation errors.
	Strict bool
}

// ImportResult is the outcome of importing one or more banks.
type ImportResult struct {
	// Questions are the accepted questions in source order, numbered as
	// in the source. Empty unless the import succeeded.
	Questions []Question

	// Dropped lists question blocks the parser skipped.
	Dropped []DroppedBlock

	// FileErrors lists banks that could not be read. They never block the others.
	FileErrors []*FileReadError

	// ValidationErrors lists every rule violation in the batch.
	ValidationErrors []*ValidationError

	// Sources is the number of banks that were parsed.
	Sources int

	// Err is nil on success, a *BatchError, or ErrEmptyBatch.
	Err error
}

// OK reports whether the import produced a usable batch.
func (r ImportResult) OK() bool {
	return r.Err == nil
}

// Messages renders every problem of the import as one line each.
func (r ImportResult) Messages() []string {
	var msgs []string
	for _, fe := range r.FileErrors {
		msgs = append(msgs, fe.Error())
	}
	for _, ve := range r.ValidationErrors {
		msgs = append(msgs, ve.Error())
	}
	if errors.Is(r.Err, ErrEmptyBatch) {
		msgs = append(msgs, "no questions found: each question needs a numbered line, four lettered answers and at least one answer ending in *")
	}
	return msgs
}

// Import parses, concatenates and validates sources as one batch.
// Either every question is accepted or none is.
func Import(sources []Source, opts ImportOptions) ImportResult {
	var (
		res        ImportResult
		candidates []Question
	)
	for _, src := range sources {
		rep := ParseReport(src.Name, src.Text)
		candidates = append(candidates, rep.Questions...)
		res.Dropped = append(res.Dropped, rep.Dropped...)
		res.Sources++
	}

	res.ValidationErrors = Validate(candidates)
	if opts.Strict {
		for _, d := range res.Dropped {
			res.ValidationErrors = append(res.ValidationErrors, &ValidationError{
				Number:  d.Number,
				Source:  d.Source,
				Line:    d.Line,
				Rule:    Rule(d.Reason),
				Message: d.Detail,
			})
		}
	}

	switch {
	case len(res.ValidationErrors) > 0:
		res.Err = &BatchError{Errors: res.ValidationErrors}
	case len(candidates) == 0:
		res.Err = ErrEmptyBatch
	default:
		res.Questions = candidates
	}
	return res
}

// ReadFiles reads every path concurrently. Results keep the order of paths;
// files that fail are reported and left out.
func ReadFiles(ctx context.Context, paths []string) ([]Source, []*FileReadError) {
	type result struct {
		src Source
		err *FileReadError
	}
	results := make([]result, len(paths))

	var g errgroup.Group
	g.SetLimit(maxConcurrentReads)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].err = &FileReadError{Path: p, Err: err}
				return nil
			}
			data, err := os.ReadFile(p)
			if err != nil {
				results[i].err = &FileReadError{Path: p, Err: err}
				return nil
			}
			results[i].src = Source{Name: filepath.Base(p), Text: string(data)}
			return nil
		})
	}
	_ = g.Wait()

	var (
		sources []Source
		errs    []*FileReadError
	)
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		sources = append(sources, r.src)
	}
	return sources, errs
}

// ImportFiles reads paths and imports whatever could be read.
func ImportFiles(ctx context.Context, paths []string, opts ImportOptions) ImportResult {
	sources, fileErrs := ReadFiles(ctx, paths)
	res := Import(sources, opts)
	res.FileErrors = fileErrs
	return res
}
