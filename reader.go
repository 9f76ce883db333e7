package xlsx

import (
	"errors"
	"log/slog"
)

// Reader reads the first worksheet of a workbook, falling back to the
// style-free reader when the primary reader reports ErrStyleCorruption.
// A Reader holds no per-call state and is safe for concurrent use.
type Reader struct {
	primary PrimaryFunc
	logger  *slog.Logger
}

type Option func(*Reader)

// WithPrimary replaces the excelize based primary reader.
func WithPrimary(primary PrimaryFunc) Option {
	return func(r *Reader) {
		r.primary = primary
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) {
		r.logger = logger
	}
}

func NewReader(opts ...Option) *Reader {
	r := &Reader{
		primary: ReadPrimary,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Read uses a Reader with default options.
func Read(data []byte) (*Table, error) {
	return NewReader().Read(data)
}

// Read returns the primary reader's table, or the fallback reader's table
// when the primary one failed with ErrStyleCorruption. Any other primary
// failure is returned unchanged. Fallback failures come back as
// *FallbackError.
func (r *Reader) Read(data []byte) (*Table, error) {
	table, err := r.primary(data)
	if err == nil {
		return table, nil
	}
	if !errors.Is(err, ErrStyleCorruption) {
		return nil, err
	}

	r.logger.Warn("primary xlsx read failed, using fallback reader", "error", err, "size", len(data))

	table, err = ReadFallback(data)
	if err != nil {
		return nil, &FallbackError{Err: err}
	}

	r.logger.Debug("fallback xlsx read done", "columns", len(table.Header), "rows", len(table.Rows))
	return table, nil
}
