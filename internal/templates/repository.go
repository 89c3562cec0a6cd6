package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/clafollett/agenterra-go/internal/proto"
)

// Metadata is the summary form a Repository returns for enumeration,
// before a specific bundle's files are read.
type Metadata struct {
	Path        string
	Protocol    proto.Protocol
	Role        proto.Role
	Language    proto.Language
	Name        string
	Description string
}

// Repository enumerates and reads template bundles. EmbeddedRepository
// and FilesystemRepository are the two concrete implementations named
// by spec.md §4.4.
type Repository interface {
	ListTemplates() ([]Metadata, error)
	GetTemplate(bundlePath string) (*Metadata, error)
	HasTemplate(bundlePath string) bool
	GetTemplateFiles(bundlePath string) ([]RawFile, error)
}

// EmbeddedRepository serves bundles compiled into the binary via
// embed.FS. Enumeration scans every path, extracts the first three
// segments {protocol}/{role}/{language}, and keeps one Metadata per
// triple whose directory contains a manifest file.
type EmbeddedRepository struct {
	fsys fs.FS
	root string
}

// NewEmbeddedRepository wraps an embedded filesystem rooted at root
// (e.g. "bundled").
func NewEmbeddedRepository(fsys embed.FS, root string) *EmbeddedRepository {
	return &EmbeddedRepository{fsys: fsys, root: root}
}

func (r *EmbeddedRepository) sub(bundlePath string) string {
	return path.Join(r.root, bundlePath)
}

func (r *EmbeddedRepository) ListTemplates() ([]Metadata, error) {
	seen := map[string]struct{}{}
	var out []Metadata

	err := fs.WalkDir(r.fsys, r.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(r.root, p)
		if err != nil {
			return nil
		}
		segs := strings.Split(filepath.ToSlash(rel), "/")
		if len(segs) < 3 {
			return nil
		}
		bundlePath := path.Join(segs[0], segs[1], segs[2])
		if _, ok := seen[bundlePath]; ok {
			return nil
		}
		if !r.hasManifestFile(bundlePath) {
			return nil
		}
		seen[bundlePath] = struct{}{}

		md, mdErr := r.metadataFor(bundlePath)
		if mdErr == nil {
			out = append(out, md)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("templates: list embedded templates: %w", err)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (r *EmbeddedRepository) hasManifestFile(bundlePath string) bool {
	for _, name := range []string{"manifest.yml", "manifest.yaml"} {
		if _, err := fs.Stat(r.fsys, path.Join(r.sub(bundlePath), name)); err == nil {
			return true
		}
	}
	return false
}

func (r *EmbeddedRepository) metadataFor(bundlePath string) (Metadata, error) {
	content, name, err := r.readManifestBytes(bundlePath)
	if err != nil {
		return Metadata{}, err
	}
	m, err := ParseManifestYAML(content, bundlePath)
	if err != nil {
		return Metadata{}, fmt.Errorf("templates: %s: %w", name, err)
	}
	return Metadata{
		Path: bundlePath, Protocol: m.Protocol, Role: m.Role,
		Language: m.Language, Name: m.Name, Description: m.Description,
	}, nil
}

func (r *EmbeddedRepository) readManifestBytes(bundlePath string) (content []byte, name string, err error) {
	for _, n := range []string{"manifest.yml", "manifest.yaml"} {
		p := path.Join(r.sub(bundlePath), n)
		b, readErr := fs.ReadFile(r.fsys, p)
		if readErr == nil {
			return b, p, nil
		}
	}
	return nil, "", fmt.Errorf("no manifest.yml or manifest.yaml under %s", bundlePath)
}

func (r *EmbeddedRepository) GetTemplate(bundlePath string) (*Metadata, error) {
	md, err := r.metadataFor(bundlePath)
	if err != nil {
		return nil, err
	}
	return &md, nil
}

func (r *EmbeddedRepository) HasTemplate(bundlePath string) bool {
	return r.hasManifestFile(bundlePath)
}

func (r *EmbeddedRepository) GetTemplateFiles(bundlePath string) ([]RawFile, error) {
	var out []RawFile
	base := r.sub(bundlePath)
	err := fs.WalkDir(r.fsys, base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(base, p)
		if relErr != nil {
			return relErr
		}
		b, readErr := fs.ReadFile(r.fsys, p)
		if readErr != nil {
			return readErr
		}
		out = append(out, RawFile{RelativePath: filepath.ToSlash(rel), Contents: b})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("templates: read embedded bundle %s: %w", bundlePath, err)
	}
	return out, nil
}

// FilesystemRepository serves bundles from an on-disk directory: the
// bundle rooted at the directory itself (bundle path "", as DiscoverAt
// uses it) and, from the same instance, the bundle for a
// (protocol,role,language) triple under that directory as a base.
type FilesystemRepository struct {
	base string
}

// NewFilesystemRepository validates base via ValidateTemplateDir and
// returns a repository rooted there.
func NewFilesystemRepository(base string) (*FilesystemRepository, error) {
	clean, err := ValidateTemplateDir(base)
	if err != nil {
		return nil, err
	}
	return &FilesystemRepository{base: clean}, nil
}

func (r *FilesystemRepository) bundleDir(bundlePath string) string {
	if bundlePath == "" {
		return r.base
	}
	return filepath.Join(r.base, filepath.FromSlash(bundlePath))
}

func (r *FilesystemRepository) ListTemplates() ([]Metadata, error) {
	md, err := r.GetTemplate("")
	if err != nil {
		return nil, err
	}
	return []Metadata{*md}, nil
}

func (r *FilesystemRepository) GetTemplate(bundlePath string) (*Metadata, error) {
	content, name, err := r.readManifestBytes(bundlePath)
	if err != nil {
		return nil, err
	}
	m, err := ParseManifestYAML(content, name)
	if err != nil {
		return nil, err
	}
	return &Metadata{
		Path: bundlePath, Protocol: m.Protocol, Role: m.Role,
		Language: m.Language, Name: m.Name, Description: m.Description,
	}, nil
}

func (r *FilesystemRepository) readManifestBytes(bundlePath string) ([]byte, string, error) {
	dir := r.bundleDir(bundlePath)
	for _, n := range []string{"manifest.yml", "manifest.yaml"} {
		p := filepath.Join(dir, n)
		b, err := os.ReadFile(p) // #nosec G304 -- dir validated by ValidateTemplateDir
		if err == nil {
			return b, p, nil
		}
	}
	return nil, "", fmt.Errorf("templates: no manifest.yml or manifest.yaml under %s", dir)
}

func (r *FilesystemRepository) HasTemplate(bundlePath string) bool {
	_, _, err := r.readManifestBytes(bundlePath)
	return err == nil
}

func (r *FilesystemRepository) GetTemplateFiles(bundlePath string) ([]RawFile, error) {
	dir := r.bundleDir(bundlePath)
	var out []RawFile
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(dir, p)
		if relErr != nil {
			return relErr
		}
		b, readErr := os.ReadFile(p) // #nosec G304 -- dir validated by ValidateTemplateDir
		if readErr != nil {
			return readErr
		}
		out = append(out, RawFile{RelativePath: filepath.ToSlash(rel), Contents: b})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("templates: read filesystem bundle %s: %w", dir, err)
	}
	return out, nil
}
