package openapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/clafollett/agenterra-go/internal/generation"
)

const minimalYAML = `
openapi: "3.0.0"
info:
  title: Demo
  version: "1.0.0"
paths:
  /ping:
    get:
      operationId: ping
      responses:
        "200":
          description: ok
`

const minimalJSON = `{"openapi":"3.0.0","info":{"title":"Demo","version":"1.0.0"},"paths":{"/ping":{"get":{"operationId":"ping","responses":{"200":{"description":"ok"}}}}}}`

func TestFileLoaderDecodesYAMLByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spec.yaml")
	if err := os.WriteFile(path, []byte(minimalYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	spec, err := FileLoader{}.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if spec.Info.Title != "Demo" || len(spec.Operations) != 1 {
		t.Fatalf("unexpected spec: %+v", spec)
	}
}

func TestFileLoaderDecodesJSONByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spec.json")
	if err := os.WriteFile(path, []byte(minimalJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	spec, err := FileLoader{}.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if spec.Operations[0].ID != "ping" {
		t.Fatalf("unexpected operation id: %s", spec.Operations[0].ID)
	}
}

func TestHTTPLoaderFetchesByContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(minimalJSON))
	}))
	defer srv.Close()

	spec, err := HTTPLoader{}.Load(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if spec.Info.Title != "Demo" {
		t.Fatalf("unexpected spec: %+v", spec)
	}
}

func TestHTTPLoaderRejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := HTTPLoader{}.Load(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestHTTPLoaderRejectsNonHTTPScheme(t *testing.T) {
	if _, err := (HTTPLoader{}).Load(context.Background(), "/tmp/spec.json"); err == nil {
		t.Fatal("expected scheme error")
	}
}

func TestCompositeLoaderFallsBackToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spec.json")
	if err := os.WriteFile(path, []byte(minimalJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	spec, err := CompositeLoader{}.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if spec.Info.Title != "Demo" {
		t.Fatalf("unexpected spec: %+v", spec)
	}
}

func TestCompositeLoaderReturnsLastErrorWhenAllFail(t *testing.T) {
	_, err := CompositeLoader{}.Load(context.Background(), "/nonexistent/spec.json")
	if err == nil {
		t.Fatal("expected error")
	}

	var genErr *generation.Error
	if !errors.As(err, &genErr) {
		t.Fatalf("expected a *generation.Error, got %T: %v", err, err)
	}
	if genErr.Kind != generation.KindLoad {
		t.Errorf("Kind = %v, want %v", genErr.Kind, generation.KindLoad)
	}
	if !errors.Is(err, generation.ErrKind(generation.KindLoad)) {
		t.Errorf("errors.Is(err, ErrKind(KindLoad)) = false, want true")
	}
}
