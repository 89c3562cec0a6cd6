// Package templates implements the template repository (C4), manifest
// model (C5), and discovery port (C6): enumerating, loading, and
// parsing the bundles the renderer consumes, from either the embedded
// filesystem or a user-supplied directory.
package templates

import (
	"fmt"

	"github.com/clafollett/agenterra-go/internal/proto"
)

// Source records where a Template came from.
type Source int

const (
	SourceEmbedded Source = iota
	SourceFileSystem
)

// Template is a complete, loaded bundle: its manifest and its files,
// tagged with where it was loaded from.
type Template struct {
	Descriptor Descriptor
	Manifest   Manifest
	Files      []File
	Source     Source
	SourcePath string // set when Source == SourceFileSystem
}

// Descriptor is the (protocol, role, language) triple that identifies a
// template bundle, matching the Rust source's TemplateDescriptor used
// by discovery and the renderer factory.
type Descriptor struct {
	Protocol proto.Protocol
	Role     proto.Role
	Language proto.Language
}

// Path returns the canonical "{protocol}/{role}/{language}" lookup path.
func (d Descriptor) Path() string {
	return fmt.Sprintf("%s/%s/%s", d.Protocol, d.Role, d.Language)
}

// Manifest is the strongly typed form of a bundle's manifest.yml.
type Manifest struct {
	Name        string
	Version     string
	Description string
	Path        string
	Protocol    proto.Protocol
	Role        proto.Role
	Language    proto.Language
	Files       []ManifestFile
	Variables   map[string]any
	PostGenerateHooks []string
}

// ManifestFile is one entry of a manifest's files list.
type ManifestFile struct {
	Source   string
	Target   string
	FileType FileType
}

// FileTypeKind distinguishes the three kinds of manifest file entries.
type FileTypeKind int

const (
	FileKindTemplate FileTypeKind = iota
	FileKindStatic
	FileKindConfiguration
)

// FileType is Template{ForEach}, Static, or Configuration.
type FileType struct {
	Kind    FileTypeKind
	ForEach string // only meaningful when Kind == FileKindTemplate
}

// File is one loaded, typed file within a Template.
type File struct {
	Path     string
	Content  string
	FileType FileType
}

// RawFile is what a Repository returns before manifest-driven typing is
// applied: raw bytes at a path relative to the bundle root.
type RawFile struct {
	RelativePath string
	Contents     []byte
}
