package templates

import (
	"fmt"
	"strings"

	"github.com/clafollett/agenterra-go/internal/proto"
	"gopkg.in/yaml.v3"
)

// configurationSuffixes and configurationNames are the extension-or-
// exact-name rules that classify a manifest file entry as Configuration
// rather than Static, ported from is_configuration_file.
var configurationSuffixes = []string{
	".json", ".yaml", ".yml", ".toml", ".xml", ".properties", ".ini",
	".conf", ".config",
}

var configurationNames = map[string]struct{}{
	"Cargo.toml": {}, "package.json": {}, "pyproject.toml": {},
	"tsconfig.json": {}, ".env": {}, ".gitignore": {},
}

func isConfigurationFile(source string) bool {
	if _, ok := configurationNames[source]; ok {
		return true
	}
	for _, suf := range configurationSuffixes {
		if strings.HasSuffix(source, suf) {
			return true
		}
	}
	return false
}

// ParseManifestYAML parses manifest.yml content into a Manifest. path
// names the manifest (the embedded repository passes the bundle's
// "{protocol}/{role}/{language}" path, the filesystem repository the
// manifest file's path) and is used both for error messages and as the
// Manifest.Path field.
func ParseManifestYAML(content []byte, path string) (Manifest, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return Manifest{}, fmt.Errorf("templates: parse manifest %s: %w", path, err)
	}

	name, err := requiredString(raw, "name", path)
	if err != nil {
		return Manifest{}, err
	}
	version, err := requiredString(raw, "version", path)
	if err != nil {
		return Manifest{}, err
	}
	description, _ := raw["description"].(string)

	protocolStr, err := requiredString(raw, "protocol", path)
	if err != nil {
		return Manifest{}, err
	}
	protocol, err := proto.ParseProtocol(protocolStr)
	if err != nil {
		return Manifest{}, fmt.Errorf("templates: manifest %s: %w", path, err)
	}

	roleStr, err := requiredString(raw, "role", path)
	if err != nil {
		return Manifest{}, err
	}
	role, err := proto.ParseRole(roleStr)
	if err != nil {
		return Manifest{}, fmt.Errorf("templates: manifest %s: %w", path, err)
	}

	languageStr, err := requiredString(raw, "language", path)
	if err != nil {
		return Manifest{}, err
	}
	language, err := proto.ParseLanguage(languageStr)
	if err != nil {
		return Manifest{}, fmt.Errorf("templates: manifest %s: %w", path, err)
	}

	var files []ManifestFile
	if rawFiles, ok := raw["files"]; ok {
		files, err = parseManifestFiles(rawFiles, path)
		if err != nil {
			return Manifest{}, err
		}
	}

	variables := map[string]any{}
	if rawVars, ok := raw["variables"].(map[string]any); ok {
		variables = rawVars
	}

	hooks := parseHooksField(raw)

	return Manifest{
		Name:              name,
		Version:           version,
		Description:       description,
		Path:               path,
		Protocol:           protocol,
		Role:               role,
		Language:           language,
		Files:              files,
		Variables:          variables,
		PostGenerateHooks:  hooks,
	}, nil
}

func requiredString(raw map[string]any, key, path string) (string, error) {
	v, ok := raw[key]
	if !ok {
		return "", fmt.Errorf("templates: manifest %s: missing %q field", path, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("templates: manifest %s: %q must be a string", path, key)
	}
	return s, nil
}

func parseManifestFiles(raw any, manifestPath string) ([]ManifestFile, error) {
	seq, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("templates: manifest %s: 'files' must be an array", manifestPath)
	}
	files := make([]ManifestFile, 0, len(seq))
	for _, entryRaw := range seq {
		entry, ok := entryRaw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("templates: manifest %s: file entry must be a map", manifestPath)
		}
		source, ok := entry["source"].(string)
		if !ok || source == "" {
			return nil, fmt.Errorf("templates: manifest %s: file entry missing 'source'", manifestPath)
		}
		target, ok := entry["destination"].(string)
		if !ok {
			target, ok = entry["target"].(string)
			if !ok {
				return nil, fmt.Errorf("templates: manifest %s: file entry missing 'destination' or 'target'", manifestPath)
			}
		}
		forEach, _ := entry["for_each"].(string)

		var ft FileType
		switch {
		case strings.HasSuffix(source, ".tmpl"):
			ft = FileType{Kind: FileKindTemplate, ForEach: forEach}
		case isConfigurationFile(source):
			ft = FileType{Kind: FileKindConfiguration}
		default:
			ft = FileType{Kind: FileKindStatic}
		}

		files = append(files, ManifestFile{Source: source, Target: target, FileType: ft})
	}
	return files, nil
}

// parseHooksField accepts hooks.post_generate (string or list) and
// falls back to a top-level post_generate_hooks key, matching the Rust
// source's two-path lookup.
func parseHooksField(raw map[string]any) []string {
	if hooksRaw, ok := raw["hooks"].(map[string]any); ok {
		if v, ok := hooksRaw["post_generate"]; ok {
			if hooks := normalizeHooks(v); hooks != nil {
				return hooks
			}
		}
	}
	if v, ok := raw["post_generate_hooks"]; ok {
		if hooks := normalizeHooks(v); hooks != nil {
			return hooks
		}
	}
	return nil
}

func normalizeHooks(v any) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
