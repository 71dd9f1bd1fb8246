// FILE: lixenwraith/params/url.go
package params

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultURLTimeout bounds a single URLSource request.
const DefaultURLTimeout = 30 * time.Second

var urlSourceSchema = MustSchema("URLSource", "read parameters from a JSON document served over HTTP",
	Leaf("input_host", KindString, Required(), Describe("host of url")),
	Leaf("input_port", KindInt, Describe("port of url")),
	Leaf("input_url", KindString, Required(), Describe("location on host of input")),
	Leaf("input_protocol", KindString, Default("http"), Describe("url protocol to use"),
		WithValidators(OneOf("http", "https"))),
)

// URLSourceConfig configures a URLSource.
type URLSourceConfig struct {
	Host     string `params:"input_host" validate:"required,hostname|ip"`
	Port     int    `params:"input_port" validate:"omitempty,min=1,max=65535"`
	URL      string `params:"input_url" validate:"required"`
	Protocol string `params:"input_protocol" validate:"oneof=http https"`
}

// URLSource fetches parameters with one GET request and decodes the JSON
// response. There are no retries.
type URLSource struct {
	Config URLSourceConfig
	client *http.Client
}

// NewURLSource creates an unconfigured URLSource.
func NewURLSource() Source {
	return &URLSource{client: &http.Client{Timeout: DefaultURLTimeout}}
}

// URLSourceFactory returns a factory for URL sources using client.
func URLSourceFactory(client *http.Client) SourceFactory {
	return func() Source {
		return &URLSource{client: client}
	}
}

func (s *URLSource) Name() string          { return "URLSource" }
func (s *URLSource) ConfigSchema() *Schema { return urlSourceSchema }

func (s *URLSource) Configure(cfg Tree) error {
	return ConfigureStruct(cfg, &s.Config, URLSourceConfig{Protocol: "http"})
}

// Endpoint returns the URL built from the configuration.
func (s *URLSource) Endpoint() string {
	host := s.Config.Host
	if s.Config.Port != 0 {
		host = net.JoinHostPort(host, strconv.Itoa(s.Config.Port))
	}
	u := url.URL{Scheme: s.Config.Protocol, Host: host, Path: s.Config.URL}
	return u.String()
}

func (s *URLSource) Get(ctx context.Context) (Tree, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Endpoint(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", s.Endpoint(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: unexpected status %s", s.Endpoint(), resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxFileSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	tree, err := decodeBytes(FormatJSON, bytes.TrimSpace(body), s.Endpoint())
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return tree, nil
}
