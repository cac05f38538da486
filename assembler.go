package docpdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-docpdf/internal/fileutil"
)

// Assembler renders Documents to PDF. It holds only immutable configuration
// and may be shared by goroutines; every render owns its own PDF state.
type Assembler struct {
	logger    *zap.Logger
	overflow  OverflowPolicy
	compress  bool
	codeTheme string
	clock     func() time.Time
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithOverflowPolicy sets how table rows taller than a page are handled.
func WithOverflowPolicy(p OverflowPolicy) Option {
	return func(a *Assembler) {
		a.overflow = p
	}
}

// WithCompression toggles PDF stream compression (default on).
func WithCompression(on bool) Option {
	return func(a *Assembler) {
		a.compress = on
	}
}

// WithCodeTheme sets the chroma style used for Code blocks.
func WithCodeTheme(name string) Option {
	return func(a *Assembler) {
		if name != "" {
			a.codeTheme = name
		}
	}
}

// WithClock sets the time source for PDF creation dates. Documents with
// Metadata.CreatedAt set ignore it.
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("docpdf: WithClock requires a non-nil function")
	}
	return func(a *Assembler) {
		a.clock = now
	}
}

// NewAssembler creates an Assembler with the given options.
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		logger:    zap.NewNop(),
		overflow:  OverflowFail,
		compress:  true,
		codeTheme: DefaultCodeTheme,
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Result describes a finished render.
type Result struct {
	Pages      int
	BlockPages [][]int
	Bytes      int64
	Layout     *Layout
}

// Layout paginates doc without drawing it. Useful for dry runs.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (a *Assembler) Layout(ctx context.Context, doc *Document) (l *Layout, err error) {
	defer recoverInternal(&err)
	return a.layout(ctx, doc)
}

// Render lays out and draws doc, then writes the PDF to w in a single call.
// Nothing is written when validation, layout or drawing fails.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (a *Assembler) Render(ctx context.Context, doc *Document, w io.Writer) (res *Result, err error) {
	defer recoverInternal(&err)

	start := a.clock()
	l, buf, err := a.build(ctx, doc)
	if err != nil {
		return nil, err
	}

	n, err := w.Write(buf.Bytes())
	if err != nil {
		return nil, &IOError{Op: "write", Err: err}
	}
	if n != buf.Len() {
		return nil, &IOError{Op: "write", Err: io.ErrShortWrite}
	}

	a.logger.Debug("document rendered",
		zap.Int("pages", l.PageCount()),
		zap.Int("bytes", n),
		zap.Duration("duration", a.clock().Sub(start)))
	return &Result{Pages: l.PageCount(), BlockPages: l.BlockPages, Bytes: int64(n), Layout: l}, nil
}

// RenderFile renders doc to path atomically: the file appears complete or
// not at all.
func (a *Assembler) RenderFile(ctx context.Context, doc *Document, path string) (res *Result, err error) {
	defer recoverInternal(&err)

	l, buf, err := a.build(ctx, doc)
	if err != nil {
		return nil, err
	}
	if err := fileutil.WriteAtomic(path, buf.Bytes(), fileutil.FilePermPublic); err != nil {
		var oe *fileutil.OpError
		if errors.As(err, &oe) {
			return nil, &IOError{Op: oe.Op, Path: path, Err: oe.Err}
		}
		return nil, &IOError{Op: "write", Path: path, Err: err}
	}

	a.logger.Debug("document written", zap.String("path", path), zap.Int("pages", l.PageCount()))
	return &Result{Pages: l.PageCount(), BlockPages: l.BlockPages, Bytes: int64(buf.Len()), Layout: l}, nil
}

// Bytes renders doc and returns the PDF.
func (a *Assembler) Bytes(ctx context.Context, doc *Document) (pdf []byte, l *Layout, err error) {
	defer recoverInternal(&err)

	l, buf, err := a.build(ctx, doc)
	if err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), l, nil
}

func (a *Assembler) build(ctx context.Context, doc *Document) (*Layout, *bytes.Buffer, error) {
	l, err := a.layout(ctx, doc)
	if err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	buf, err := draw(l, doc.Metadata, drawOptions{compress: a.compress, now: a.clock()})
	if err != nil {
		return nil, nil, err
	}
	return l, buf, nil
}

// Render renders doc to w with a default Assembler.
func Render(doc *Document, w io.Writer) error {
	_, err := NewAssembler().Render(context.Background(), doc, w)
	return err
}

func recoverInternal(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: internal error: %v", ErrRender, r)
	}
}
