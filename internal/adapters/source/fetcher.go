package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
)

// Document is a parsed results file.
type Document struct {
	Name string
	Rows []model.RawRow
}

// Fetcher retrieves results files.
type Fetcher interface {
	// Fetch returns the file of key. Returns ErrNotFound when it does not exist.
	Fetch(ctx context.Context, key model.FileKey) (Document, error)

	// Admissions returns the admitted entries sheet. Returns ErrNotFound when
	// there is none.
	Admissions(ctx context.Context) (Document, error)
}

// DirFetcher reads files laid out as <root>/<competition>/<DAY><CATEGORY>.xlsx
// (or .csv). The admissions sheet lives at <root>/<admissions>.xlsx.
type DirFetcher struct {
	root       string
	admissions string
}

var _ Fetcher = (*DirFetcher)(nil)

// NewDirFetcher creates a fetcher rooted at root. An empty admissions name
// disables the admissions sheet.
func NewDirFetcher(root, admissions string) *DirFetcher {
	return &DirFetcher{root: root, admissions: admissions}
}

// Fetch implements Fetcher.
func (d *DirFetcher) Fetch(ctx context.Context, key model.FileKey) (Document, error) {
	for _, part := range []string{key.Competition, string(key.Day), key.Category} {
		if err := checkComponent(part); err != nil {
			return Document{}, err
		}
	}
	return d.read(ctx, filepath.Join(d.root, key.Competition, key.BaseName()))
}

// Admissions implements Fetcher.
func (d *DirFetcher) Admissions(ctx context.Context) (Document, error) {
	if d.admissions == "" {
		return Document{}, ErrNotFound
	}
	if err := checkComponent(d.admissions); err != nil {
		return Document{}, err
	}
	return d.read(ctx, filepath.Join(d.root, d.admissions))
}

func (d *DirFetcher) read(ctx context.Context, base string) (Document, error) {
	for _, ext := range Extensions {
		if err := ctx.Err(); err != nil {
			return Document{}, err
		}
		path := base + ext
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Document{}, fmt.Errorf("read %s: %w", path, err)
		}
		rows, err := Parse(path, data)
		if errors.Is(err, ErrEmptySheet) {
			// A blank sheet is a day that was not held.
			return Document{Name: filepath.Base(path)}, nil
		}
		if err != nil {
			return Document{}, fmt.Errorf("parse %s: %w", path, err)
		}
		return Document{Name: filepath.Base(path), Rows: rows}, nil
	}
	return Document{}, fmt.Errorf("%w: %s", ErrNotFound, base)
}

func checkComponent(s string) error {
	if s == "" || s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, s)
	}
	return nil
}
