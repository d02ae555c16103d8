// Package seed provides the read-only documents used to populate the event
// collection on first use.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Anas-en/College-event-management/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed events.json
var bundled []byte

type Source interface {
	Fetch(ctx context.Context) ([]domain.Event, error)
}

// New picks the source: url wins over file, and the bundled document is
// used when neither is set.
func New(url, file string, timeout time.Duration) Source {
	switch {
	case url != "":
		return NewHTTPSource(url, timeout)
	case file != "":
		return NewFileSource(file)
	default:
		return BundledSource{}
	}
}

type BundledSource struct{}

func (BundledSource) Fetch(ctx context.Context) ([]domain.Event, error) {
	return decodeJSON(bundled)
}

type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{url: url, client: newHTTPClient(timeout)}
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]domain.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", s.url, resp.StatusCode)
	}

	var events []domain.Event
	if err = json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.url, err)
	}

	return nonNil(events), nil
}

type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Fetch(ctx context.Context) ([]domain.Event, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return decodeJSON(data)
	}
}

func decodeJSON(data []byte) ([]domain.Event, error) {
	var events []domain.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return nonNil(events), nil
}

// decodeYAML goes through JSON so both formats share the same field rules.
func decodeYAML(data []byte) ([]domain.Event, error) {
	var raw []map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode yaml seed: %w", err)
	}

	// yaml.v3 decodes unquoted dates as strings into map[string]any,
	// so the JSON round trip keeps "2030-01-01" intact.
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("convert yaml seed: %w", err)
	}

	return decodeJSON(asJSON)
}

func nonNil(events []domain.Event) []domain.Event {
	if events == nil {
		return []domain.Event{}
	}
	return events
}

func newHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}
