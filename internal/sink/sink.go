package sink

import (
	"bytes"
	"context"
	"sync"

	"go.uber.org/zap"

	docpdf "github.com/alnah/go-docpdf"
)

// Sink renders documents and delivers them to targets. It is safe for
// concurrent use; the S3 uploader is created on first use and shared.
type Sink struct {
	asm    *docpdf.Assembler
	logger *zap.Logger

	s3opts      S3Options
	newUploader func(ctx context.Context, opts S3Options) (Uploader, error)

	once        sync.Once
	uploader    Uploader
	uploaderErr error
}

// Option configures a Sink.
type Option func(*Sink)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Sink) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithS3Options sets region and endpoint for S3 targets.
func WithS3Options(o S3Options) Option {
	return func(s *Sink) {
		s.s3opts = o
	}
}

// WithUploader replaces the S3 uploader, mainly for tests.
func WithUploader(u Uploader) Option {
	return func(s *Sink) {
		s.newUploader = func(context.Context, S3Options) (Uploader, error) { return u, nil }
	}
}

// New creates a Sink rendering with asm.
func New(asm *docpdf.Assembler, opts ...Option) *Sink {
	s := &Sink{
		asm:    asm,
		logger: zap.NewNop(),
		newUploader: func(ctx context.Context, o S3Options) (Uploader, error) {
			u, err := NewS3Uploader(ctx, o)
			if err != nil {
				return nil, err
			}
			return u, nil
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Deliver renders doc and writes it to t. File targets are written
// atomically; S3 targets are uploaded after the whole PDF is built, so a
// failed render never leaves a partial object.
func (s *Sink) Deliver(ctx context.Context, doc *docpdf.Document, t Target) (*docpdf.Result, error) {
	if !t.IsS3() {
		return s.asm.RenderFile(ctx, doc, t.Path)
	}

	pdf, l, err := s.asm.Bytes(ctx, doc)
	if err != nil {
		return nil, err
	}

	u, err := s.s3Uploader(ctx)
	if err != nil {
		return nil, &docpdf.IOError{Op: "upload", Path: t.String(), Err: err}
	}
	out, err := u.Upload(ctx, putInput(t, bytes.NewReader(pdf)))
	if err != nil {
		return nil, &docpdf.IOError{Op: "upload", Path: t.String(), Err: err}
	}

	location := t.String()
	if out != nil && out.Location != "" {
		location = out.Location
	}
	s.logger.Debug("document uploaded",
		zap.String("target", t.String()),
		zap.String("location", location),
		zap.Int("bytes", len(pdf)))

	return &docpdf.Result{
		Pages:      l.PageCount(),
		BlockPages: l.BlockPages,
		Bytes:      int64(len(pdf)),
		Layout:     l,
	}, nil
}

func (s *Sink) s3Uploader(ctx context.Context) (Uploader, error) {
	s.once.Do(func() {
		s.uploader, s.uploaderErr = s.newUploader(ctx, s.s3opts)
	})
	return s.uploader, s.uploaderErr
}
