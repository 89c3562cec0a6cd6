package templates

import (
	"fmt"
)

// Discover resolves the canonical (protocol, role, language) -> Template
// lookup against repo, keyed by Descriptor.Path(). The manifest found at
// the bundle root is authoritative for file typing.
func Discover(repo Repository, d Descriptor) (*Template, error) {
	bundlePath := d.Path()
	return load(repo, bundlePath, d, SourceEmbedded, "")
}

// DiscoverAt bypasses the triple lookup and treats dir itself as the
// bundle root, for a user-supplied bundle directory. Its manifest's own
// (protocol, role, language) becomes the effective Descriptor.
func DiscoverAt(dir string) (*Template, error) {
	repo, err := NewFilesystemRepository(dir)
	if err != nil {
		return nil, err
	}
	md, err := repo.GetTemplate("")
	if err != nil {
		return nil, err
	}
	d := Descriptor{Protocol: md.Protocol, Role: md.Role, Language: md.Language}
	return load(repo, "", d, SourceFileSystem, dir)
}

func load(repo Repository, bundlePath string, d Descriptor, source Source, sourcePath string) (*Template, error) {
	if !repo.HasTemplate(bundlePath) {
		return nil, fmt.Errorf("templates: no template found for %s", d.Path())
	}

	md, err := repo.GetTemplate(bundlePath)
	if err != nil {
		return nil, fmt.Errorf("templates: discover %s: %w", d.Path(), err)
	}
	if md.Protocol != d.Protocol && bundlePath != "" {
		return nil, fmt.Errorf("templates: manifest protocol %s does not match requested %s", md.Protocol, d.Protocol)
	}

	loader, ok := repo.(manifestLoader)
	if !ok {
		return nil, fmt.Errorf("templates: repository %T does not support manifest loading", repo)
	}
	manifest, err := loader.loadManifest(bundlePath)
	if err != nil {
		return nil, err
	}

	raw, err := repo.GetTemplateFiles(bundlePath)
	if err != nil {
		return nil, fmt.Errorf("templates: read files for %s: %w", d.Path(), err)
	}

	manifestByTarget := map[string]ManifestFile{}
	for _, mf := range manifest.Files {
		manifestByTarget[mf.Source] = mf
	}

	files := make([]File, 0, len(raw))
	for _, rf := range raw {
		if rf.RelativePath == "manifest.yml" || rf.RelativePath == "manifest.yaml" {
			continue
		}
		ft := fileTypeFor(rf.RelativePath, manifestByTarget)
		files = append(files, File{
			Path:     rf.RelativePath,
			Content:  string(rf.Contents),
			FileType: ft,
		})
	}

	return &Template{
		Descriptor: d,
		Manifest:   manifest,
		Files:      files,
		Source:     source,
		SourcePath: sourcePath,
	}, nil
}

// fileTypeFor resolves a raw file's type: the manifest entry for its
// path if one exists, otherwise the fallback rule from spec.md §4.4
// (".tmpl" extension => Template{for_each: nil}, else Static).
func fileTypeFor(relPath string, manifestByTarget map[string]ManifestFile) FileType {
	if mf, ok := manifestByTarget[relPath]; ok {
		return mf.FileType
	}
	if hasTemplateSuffix(relPath) {
		return FileType{Kind: FileKindTemplate}
	}
	return FileType{Kind: FileKindStatic}
}

func hasTemplateSuffix(p string) bool {
	return len(p) > 5 && p[len(p)-5:] == ".tmpl"
}

// loadManifest is a Repository-agnostic helper: read the manifest bytes
// from whichever repository implementation handles bundlePath and parse
// them. Both EmbeddedRepository and FilesystemRepository expose
// GetTemplate (summary) but discovery also needs the full Manifest
// (files/variables/hooks), so this re-reads and re-parses the same
// bytes GetTemplate already validated.
func (r *EmbeddedRepository) loadManifest(bundlePath string) (Manifest, error) {
	content, name, err := r.readManifestBytes(bundlePath)
	if err != nil {
		return Manifest{}, err
	}
	m, err := ParseManifestYAML(content, bundlePath)
	if err != nil {
		return Manifest{}, fmt.Errorf("templates: %s: %w", name, err)
	}
	return m, nil
}

func (r *FilesystemRepository) loadManifest(bundlePath string) (Manifest, error) {
	content, name, err := r.readManifestBytes(bundlePath)
	if err != nil {
		return Manifest{}, err
	}
	m, err := ParseManifestYAML(content, name)
	if err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// manifestLoader is implemented by both repository kinds; Discover's
// load() helper calls it through the Repository interface via a type
// assertion since Repository itself doesn't declare loadManifest (it is
// an internal detail, not part of the public port).
type manifestLoader interface {
	loadManifest(bundlePath string) (Manifest, error)
}

var (
	_ manifestLoader = (*EmbeddedRepository)(nil)
	_ manifestLoader = (*FilesystemRepository)(nil)
)
