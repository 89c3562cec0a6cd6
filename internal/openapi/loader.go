package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/clafollett/agenterra-go/internal/generation"
)

// httpLoadTimeout bounds an HTTP(S) fetch, matching the teacher's
// pattern of short, explicit timeouts on outbound requests.
const httpLoadTimeout = 30 * time.Second

// Load decodes raw document bytes as JSON or YAML (preferring the hint
// from a file extension or Content-Type, falling back to JSON-then-YAML)
// and parses the result into a generation.OpenApiSpec, validating the
// document with kin-openapi along the way so structurally invalid specs
// fail before reaching the domain parser.
func Load(source []byte, preferYAML bool) (*generation.OpenApiSpec, error) {
	doc, err := decode(source, preferYAML)
	if err != nil {
		return nil, err
	}

	if err := validate(doc); err != nil {
		return nil, generation.Wrap(generation.KindValidation, err, "OpenAPI document failed validation")
	}

	return NewParser(doc).Parse()
}

func decode(source []byte, preferYAML bool) (map[string]any, error) {
	tryJSON := func() (map[string]any, error) {
		var m map[string]any
		err := json.Unmarshal(source, &m)
		return m, err
	}
	tryYAML := func() (map[string]any, error) {
		var m map[string]any
		err := yaml.Unmarshal(source, &m)
		return m, err
	}

	first, second := tryJSON, tryYAML
	if preferYAML {
		first, second = tryYAML, tryJSON
	}

	if m, err := first(); err == nil {
		return m, nil
	}
	m, err := second()
	if err != nil {
		return nil, generation.Wrap(generation.KindLoad, err, "could not decode document as JSON or YAML")
	}
	return m, nil
}

func validate(doc map[string]any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	loaded, err := openapi3.NewLoader().LoadFromData(raw)
	if err != nil {
		return err
	}
	return loaded.Validate(context.Background())
}

// FileLoader reads an OpenAPI document from disk, deciding the decode
// order from the path's extension: .json forces JSON, .yaml/.yml forces
// YAML, anything else tries JSON then YAML.
type FileLoader struct{}

func (FileLoader) Load(_ context.Context, source string) (*generation.OpenApiSpec, error) {
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, generation.Wrap(generation.KindLoad, err, "read %s", source)
	}
	if strings.HasSuffix(source, ".json") && !json.Valid(data) {
		return nil, generation.New(generation.KindLoad, "%s is not valid JSON", source)
	}
	preferYAML := strings.HasSuffix(source, ".yaml") || strings.HasSuffix(source, ".yml")
	spec, err := Load(data, preferYAML)
	if err != nil {
		return nil, err
	}
	return spec, nil
}

// HTTPLoader fetches an OpenAPI document over http:// or https://, with
// a 30-second timeout and Content-Type-driven decode selection.
type HTTPLoader struct {
	Client *http.Client
}

func (h HTTPLoader) Load(ctx context.Context, source string) (*generation.OpenApiSpec, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		return nil, generation.New(generation.KindLoad, "unsupported scheme for %s, expected http(s)://", source)
	}

	client := h.Client
	if client == nil {
		client = &http.Client{Timeout: httpLoadTimeout}
	}

	reqCtx, cancel := context.WithTimeout(ctx, httpLoadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, source, nil)
	if err != nil {
		return nil, generation.Wrap(generation.KindLoad, err, "build request for %s", source)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, generation.Wrap(generation.KindLoad, err, "fetch %s", source)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, generation.New(generation.KindLoad, "HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, generation.Wrap(generation.KindLoad, err, "read response body from %s", source)
	}

	contentType := resp.Header.Get("Content-Type")
	preferYAML := strings.Contains(contentType, "yaml")
	if !preferYAML && !strings.Contains(contentType, "json") {
		preferYAML = strings.HasSuffix(source, ".yaml") || strings.HasSuffix(source, ".yml")
	}

	return Load(body, preferYAML)
}

// CompositeLoader tries HTTPLoader then FileLoader, returning whichever
// succeeds first and the last error encountered if both fail.
type CompositeLoader struct {
	HTTP HTTPLoader
	File FileLoader
}

// Load tries the HTTP loader, falling back to the file loader on any
// failure, and returns the last error encountered (the file loader's)
// when both fail — not a new wrapping error — so its generation.Error
// Kind survives for errors.Is/As, matching
// infrastructure/openapi/composite_loader.rs's last-error semantics.
func (c CompositeLoader) Load(ctx context.Context, source string) (*generation.OpenApiSpec, error) {
	spec, httpErr := c.HTTP.Load(ctx, source)
	if httpErr == nil {
		return spec, nil
	}

	spec, fileErr := c.File.Load(ctx, source)
	if fileErr == nil {
		return spec, nil
	}

	if genErr, ok := fileErr.(*generation.Error); ok {
		return nil, &generation.Error{
			Kind:    genErr.Kind,
			Message: fmt.Sprintf("%s (http attempt: %v)", genErr.Message, httpErr),
			Cause:   genErr.Cause,
		}
	}
	return nil, fileErr
}
