package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/phbpx/addressbook"
)

// DefaultPath is the book file used when none is configured.
const DefaultPath = "addressbook.pkl"

// defaultMode is the permission of a newly created book file. Saving over an
// existing file keeps its permission.
const defaultMode os.FileMode = 0o644

// Config is the required properties to use the book file.
type Config struct {
	Path string
}

// BookStorage keeps the whole book as one YAML document in a single file.
type BookStorage struct {
	path string
}

func NewBookStorage(cfg Config) addressbook.BookStorage {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	return &BookStorage{
		path: path,
	}
}

// Load reads the book file. A missing file yields an empty book; a file that
// exists but cannot be read or decoded is an error.
func (s BookStorage) Load(ctx context.Context) (*addressbook.Book, error) {
	_, span := startSpan(ctx, "filestore.Load", s.path)
	defer span.End()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			span.SetAttributes(attribute.Bool("file.exists", false))
			return addressbook.NewBook(), nil
		}
		return nil, spanErr(span, fmt.Errorf("reading book file: %w", err))
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, spanErr(span, fmt.Errorf("decoding book file %s: %w", s.path, err))
	}

	book, err := doc.book()
	if err != nil {
		return nil, spanErr(span, fmt.Errorf("decoding book file %s: %w", s.path, err))
	}

	span.SetAttributes(attribute.Int("contacts", book.Len()))
	return book, nil
}

// Save replaces the book file. The document is written to a temporary file
// next to the target and renamed over it.
func (s BookStorage) Save(ctx context.Context, book *addressbook.Book) error {
	_, span := startSpan(ctx, "filestore.Save", s.path)
	span.SetAttributes(attribute.Int("contacts", book.Len()))
	defer span.End()

	raw, err := yaml.Marshal(newDocument(book))
	if err != nil {
		return spanErr(span, fmt.Errorf("encoding book: %w", err))
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return spanErr(span, fmt.Errorf("creating book directory: %w", err))
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return spanErr(span, fmt.Errorf("creating temp file: %w", err))
	}
	defer os.Remove(tmp.Name())

	mode := defaultMode
	if fi, err := os.Stat(s.path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return spanErr(span, fmt.Errorf("setting temp file mode: %w", err))
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return spanErr(span, fmt.Errorf("writing temp file: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return spanErr(span, fmt.Errorf("syncing temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return spanErr(span, fmt.Errorf("closing temp file: %w", err))
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return spanErr(span, fmt.Errorf("replacing book file: %w", err))
	}
	return nil
}

func startSpan(ctx context.Context, name, path string) (context.Context, trace.Span) {
	ctx, span := otel.GetTracerProvider().Tracer("filestore").Start(ctx, name)
	span.SetAttributes(attribute.String("file.path", path))
	return ctx, span
}

func spanErr(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
