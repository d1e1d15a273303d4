package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"

	"github.com/goliatone/go-funfacts/internal/facts"
	"github.com/goliatone/go-funfacts/internal/logging"
	"github.com/goliatone/go-funfacts/internal/validation"
	"github.com/goliatone/go-funfacts/pkg/interfaces"
)

var (
	ErrManifestMissing = errors.New("dataset: manifest.json not found")
	ErrDocumentInvalid = errors.New("dataset: document invalid")
	ErrRegionMismatch  = errors.New("dataset: document region does not match its file")
)

// Loader decodes a content tree into a Bundle.
type Loader struct {
	fsys   fs.FS
	logger interfaces.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithFS reads content from fsys instead of the embedded tree.
func WithFS(fsys fs.FS) Option {
	return func(l *Loader) {
		if fsys != nil {
			l.fsys = fsys
		}
	}
}

// WithLogger injects the logger used while loading.
func WithLogger(logger interfaces.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader constructs a loader reading the embedded content by default.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		fsys:   Embedded(),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load reads the manifest, then every regional, default and directory document
// it declares. A missing regional or default document contributes no entries; a
// missing directory yields an empty directory.
func (l *Loader) Load(ctx context.Context) (*Bundle, error) {
	if l == nil || l.fsys == nil {
		return nil, errors.New("dataset: loader filesystem cannot be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	schemas, err := compileSchemas()
	if err != nil {
		return nil, err
	}

	var manifest Manifest
	found, err := l.readDocument(manifestPath, schemas.manifest, &manifest)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrManifestMissing
	}

	bundle := &Bundle{
		Manifest:    manifest,
		Sources:     map[Key]Source{},
		Directories: map[facts.Locale][]facts.DirectoryGroup{},
	}

	for _, category := range manifest.Categories {
		for _, locale := range manifest.Locales {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			key := Key{Locale: locale, Category: category}
			source, err := l.loadSource(key, manifest.Regions, schemas)
			if err != nil {
				return nil, err
			}
			bundle.Sources[key] = source
		}
	}

	for _, locale := range manifest.Locales {
		groups, err := l.loadDirectory(locale, schemas.directory)
		if err != nil {
			return nil, err
		}
		bundle.Directories[locale] = groups
	}

	l.logger.Debug("dataset.loaded",
		"locales", len(manifest.Locales),
		"categories", len(manifest.Categories),
		"regions", len(manifest.Regions),
	)
	return bundle, nil
}

type regionalDocument struct {
	Region string                         `json:"region"`
	Facts  map[facts.CountryCode][]string `json:"facts"`
}

type directoryDocument struct {
	Groups []facts.DirectoryGroup `json:"groups"`
}

func (l *Loader) loadSource(key Key, regions []string, schemas documentSchemas) (Source, error) {
	source := Source{
		Key:     key,
		Regions: make([]facts.RegionalTable, 0, len(regions)),
	}
	for _, region := range regions {
		table, err := l.loadRegion(key, region, schemas.table)
		if err != nil {
			return Source{}, err
		}
		source.Regions = append(source.Regions, table)
	}
	// the default document may only carry the reserved DEFAULT and WORLD keys
	defaults, err := l.loadRegion(key, DefaultRegion, schemas.defaults)
	if err != nil {
		return Source{}, err
	}
	source.Defaults = defaults
	return source, nil
}

func (l *Loader) loadRegion(key Key, region string, schema *validation.Schema) (facts.RegionalTable, error) {
	table := facts.RegionalTable{Region: region, Facts: map[facts.CountryCode]facts.FactList{}}
	name := path.Join(string(key.Category), string(key.Locale), region+".json")

	var doc regionalDocument
	found, err := l.readDocument(name, schema, &doc)
	if err != nil {
		return table, err
	}
	if !found {
		logging.WithFields(l.logger, map[string]any{
			"document": name,
			"region":   region,
		}).Debug("dataset.region.missing")
		return table, nil
	}
	if doc.Region != region {
		return table, fmt.Errorf("%w: %s declares %q", ErrRegionMismatch, name, doc.Region)
	}
	for code, list := range doc.Facts {
		table.Facts[code] = facts.FactList(list)
	}
	return table, nil
}

func (l *Loader) loadDirectory(locale facts.Locale, schema *validation.Schema) ([]facts.DirectoryGroup, error) {
	name := path.Join("directory", string(locale)+".json")
	var doc directoryDocument
	found, err := l.readDocument(name, schema, &doc)
	if err != nil {
		return nil, err
	}
	if !found {
		l.logger.Debug("dataset.directory.missing", "document", name)
		return []facts.DirectoryGroup{}, nil
	}
	if doc.Groups == nil {
		doc.Groups = []facts.DirectoryGroup{}
	}
	return doc.Groups, nil
}

// readDocument validates and decodes name into out. found is false when the
// document does not exist.
func (l *Loader) readDocument(name string, schema *validation.Schema, out any) (bool, error) {
	raw, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("dataset: read %s: %w", name, err)
	}
	if err := schema.ValidateDocument(name, raw); err != nil {
		return true, fmt.Errorf("%w: %w", ErrDocumentInvalid, err)
	}
	if err := decode(bytes.NewReader(raw), out); err != nil {
		return true, fmt.Errorf("%w: %s: %w", ErrDocumentInvalid, name, err)
	}
	return true, nil
}

func decode(r io.Reader, out any) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

type documentSchemas struct {
	manifest  *validation.Schema
	table     *validation.Schema
	defaults  *validation.Schema
	directory *validation.Schema
}

func compileSchemas() (documentSchemas, error) {
	var out documentSchemas
	targets := []struct {
		file string
		dst  **validation.Schema
	}{
		{"manifest.schema.json", &out.manifest},
		{"regional_table.schema.json", &out.table},
		{"default_table.schema.json", &out.defaults},
		{"directory.schema.json", &out.directory},
	}
	for _, target := range targets {
		raw, err := embeddedSchemas.ReadFile(path.Join("schemas", target.file))
		if err != nil {
			return documentSchemas{}, fmt.Errorf("dataset: read schema %s: %w", target.file, err)
		}
		compiled, err := validation.CompileSchema(target.file, raw)
		if err != nil {
			return documentSchemas{}, err
		}
		*target.dst = compiled
	}
	return out, nil
}
