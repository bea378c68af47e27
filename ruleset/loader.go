package ruleset

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"secrulelang/grammar"
	"secrulelang/secrule"
)

// ErrorPolicy decides what Load does when a directive fails to parse.
type ErrorPolicy int

// Error policies.
const (
	// FailFast stops at the first directive that fails to parse.
	FailFast ErrorPolicy = iota
	// CollectAll parses every directive and reports all failures together.
	CollectAll
)

func (p ErrorPolicy) String() string {
	switch p {
	case FailFast:
		return "fail_fast"
	case CollectAll:
		return "collect_all"
	}
	return fmt.Sprintf("ErrorPolicy(%d)", int(p))
}

// ParseErrorPolicy parses fail_fast or collect_all.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch strings.ToLower(s) {
	case "fail_fast":
		return FailFast, nil
	case "collect_all":
		return CollectAll, nil
	}
	return 0, fmt.Errorf("unknown error policy %q, expected fail_fast or collect_all", s)
}

// Options configure a Loader.
type Options struct {
	Workers      int // Directives parsed concurrently. Defaults to GOMAXPROCS.
	Policy       ErrorPolicy
	KeepIncludes bool // Keep Include directives verbatim instead of loading the included files.
}

// Loader loads rule files.
type Loader interface {
	func (l *loaderImpl) Load(ctx context.Context, path string) (*RuleSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sources, err := l.collect(path, nil)
	if err != nil {
		return nil, err
	}

	directives := make([]Directive, len(sources))
	failures := make([]error, len(sources))

	// Lowest failed index so far. FailFast skips directives after it, never those before it,
	// so the failure it reports is the first in file order.
	var firstFailure atomic.Int64
	firstFailure.Store(int64(len(sources)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.opts.Workers)

	for i := range sources {
		if gctx.Err() != nil || l.skip(i, &firstFailure) {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if l.skip(i, &firstFailure) {
				return nil
			}

			directives[i], failures[i] = parseDirective(sources[i])
			if failures[i] != nil {
				lowerTo(&firstFailure, int64(i))
			}
			return nil
		})
	}

	waitErr := g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var combined error
	for _, err := range failures {
		if err == nil {
			continue
		}
		if l.opts.Policy == FailFast {
			return nil, err
		}
		combined = multierr.Append(combined, err)
	}
	if waitErr != nil {
		return nil, waitErr
	}

	rs := &RuleSet{}
	afterFailure := false
	for i, d := range directives {
		if failures[i] != nil {
			afterFailure = true
			continue
		}
		d.AfterFailure = afterFailure
		afterFailure = false
		rs.Directives = append(rs.Directives, d)
	}

	l.logger.Debug().
		Str("file", path).
		Int("directives", len(rs.Directives)).
		Int("failed", len(multierr.Errors(combined))).
		Msg("Loaded rule file")

	return rs, combined
}

func (l *loaderImpl) skip(i int, firstFailure *atomic.Int64) bool {
	return l.opts.Policy == FailFast && int64(i) > firstFailure.Load()
}

func lowerTo(v *atomic.Int64, i int64) {
	for {
		cur := v.Load()
		if i >= cur || v.CompareAndSwap(cur, i) {
			return
		}
	}
}

func parseDirective(src source) (Directive, error) {
	d := Directive{File: src.file, Line: src.stmt.Line, Text: src.stmt.Text}
	if !strings.EqualFold(src.stmt.Directive(), "SecRule") {
		return d, nil
	}

	n, err := grammar.ParseStatement(src.stmt)
	if err != nil {
		return d, &DirectiveError{File: src.file, Line: src.stmt.Line, Text: src.stmt.Text, Err: err}
	}

	var r secrule.SecRule
	if err := r.Deserialize(n); err != nil {
		return d, &DirectiveError{File: src.file, Line: src.stmt.Line, Text: src.stmt.Text, Err: err}
	}

	d.Rule = &r
	return d, nil
}

// collect reads a file and splits it into statements, replacing Include directives with the statements of the included files.
func (l *loaderImpl) collect(filePath string, parentIncludeFiles []string) ([]source, error) {
	// Guard against cyclic includes
	abs, err := l.fs.Abs(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get absolute path for %s", filePath)
	}
	abs, err = l.fs.EvalSymlinks(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to eval symlinks for %s", filePath)
	}
	for _, f := range parentIncludeFiles {
		if abs == f {
			return nil, errors.Wrapf(ErrCyclicInclude, "in config file %s", abs)
		}
	}
	parentIncludeFiles = append(parentIncludeFiles[:len(parentIncludeFiles):len(parentIncludeFiles)], abs)

	bb, err := l.fs.ReadFile(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read rule file %s", abs)
	}

	var sources []source
	for _, stmt := range grammar.SplitStatements(string(bb)) {
		if !stmt.IsInclude() || l.opts.KeepIncludes {
			sources = append(sources, source{file: abs, stmt: stmt})
			continue
		}

		p := stmt.IncludePath()
		if !filepath.IsAbs(p) {
			p = filepath.Join(filepath.Dir(abs), p)
		}

		l.logger.Debug().Str("file", abs).Int("line", stmt.Line).Str("include", p).Msg("Following include")

		included, err := l.collect(p, parentIncludeFiles)
		if err != nil {
			return nil, err
		}
		sources = append(sources, included...)
	}

	return sources, nil
}
