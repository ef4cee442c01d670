package material

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"sphere-viewer/internal/download"
)

// DefaultServer is the public snippet service.
const DefaultServer = "https://snippet.babylonjs.com"

var (
	// ErrEmptyID is returned for a blank snippet id.
	ErrEmptyID = errors.New("material: empty snippet id")
	// ErrNoMaterial is returned when a snippet payload holds no material.
	ErrNoMaterial = errors.New("material: snippet has no material")
)

// Fetcher retrieves the body at a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// SnippetLoader loads materials saved on a snippet server. Ids have the form
// "ID#REVISION"; the revision defaults to 0.
type SnippetLoader struct {
	Server  string
	Fetcher Fetcher
}

// NewSnippetLoader returns a loader for server using f. An empty server means
// DefaultServer; a nil f means a zero download.Client.
func NewSnippetLoader(server string, f Fetcher) *SnippetLoader {
	if server == "" {
		server = DefaultServer
	}
	if f == nil {
		f = &download.Client{}
	}
	return &SnippetLoader{Server: server, Fetcher: f}
}

// URL returns the address of snippet id on the loader's server.
func (l *SnippetLoader) URL(id string) (string, error) {
	id = strings.TrimSpace(id)
	name, rev, _ := strings.Cut(id, "#")
	if name == "" {
		return "", ErrEmptyID
	}
	if rev == "" {
		rev = "0"
	}
	return strings.TrimRight(l.Server, "/") + "/" + url.PathEscape(name) + "/" + url.PathEscape(rev), nil
}

// Load fetches snippet id and decodes its material.
func (l *SnippetLoader) Load(ctx context.Context, id string) (*Material, error) {
	u, err := l.URL(id)
	if err != nil {
		return nil, err
	}
	body, err := l.Fetcher.Fetch(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("material %s: %w", id, err)
	}
	def, err := DecodeSnippet(body)
	if err != nil {
		return nil, fmt.Errorf("material %s: %w", id, err)
	}
	return def.Material(), nil
}

type snippetEnvelope struct {
	JSONPayload string `json:"jsonPayload"`
}

type snippetPayload struct {
	NodeMaterial json.RawMessage `json:"nodeMaterial"`
}

// DecodeSnippet decodes a snippet server response. The envelope's jsonPayload
// is a JSON document encoded as a string; its nodeMaterial entry may itself be
// either a JSON string or an object.
func DecodeSnippet(body []byte) (*Definition, error) {
	var env snippetEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.JSONPayload == "" {
		return nil, ErrNoMaterial
	}
	var payload snippetPayload
	if err := json.Unmarshal([]byte(env.JSONPayload), &payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	raw := payload.NodeMaterial
	if len(raw) == 0 || string(raw) == "null" {
		return nil, ErrNoMaterial
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decode material: %w", err)
		}
		if s == "" {
			return nil, ErrNoMaterial
		}
		raw = json.RawMessage(s)
	}
	var def Definition
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("decode material: %w", err)
	}
	return &def, nil
}
