package decode

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/midbel/effcharts"
)

const (
	schemeHttp  = "http"
	schemeHttps = "https"
	schemeFile  = "file"
)

// Loader fetches chart configs from local files or over HTTP.
type Loader struct {
	Client *http.Client
	Dir    string
	Strict bool
}

func Load(ctx context.Context, location string) (charts.Config, error) {
	var ld Loader
	return ld.Load(ctx, location)
}

func (ld Loader) Load(ctx context.Context, location string) (charts.Config, error) {
	u, err := url.Parse(location)
	if err != nil {
		return charts.Config{}, fmt.Errorf("%s: invalid location: %w", location, err)
	}
	switch u.Scheme {
	case schemeHttp, schemeHttps:
		return ld.loadRemote(ctx, u)
	case schemeFile:
		return ld.loadFile(u.Path)
	case "":
		return ld.loadFile(location)
	default:
		return charts.Config{}, fmt.Errorf("%s: unsupported scheme %s", location, u.Scheme)
	}
}

func (ld Loader) loadFile(file string) (charts.Config, error) {
	if !filepath.IsAbs(file) && ld.Dir != "" {
		file = filepath.Join(ld.Dir, file)
	}
	r, err := os.Open(file)
	if err != nil {
		return charts.Config{}, err
	}
	defer r.Close()
	return ld.decode(r, file, FormatFromPath(file))
}

func (ld Loader) loadRemote(ctx context.Context, u *url.URL) (charts.Config, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return charts.Config{}, err
	}
	client := ld.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return charts.Config{}, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return charts.Config{}, fmt.Errorf("%s: unexpected status %s", u, res.Status)
	}
	format := FormatFromPath(u.Path)
	switch ct := res.Header.Get("Content-Type"); {
	case strings.Contains(ct, "json"):
		format = FormatJSON
	case strings.Contains(ct, "yaml"):
		format = FormatYAML
	}
	return ld.decode(res.Body, u.String(), format)
}

func (ld Loader) decode(r io.Reader, name string, format Format) (charts.Config, error) {
	dec := NewDecoder(r)
	dec.SetFile(name)
	dec.SetFormat(format)
	dec.SetStrict(ld.Strict)
	return dec.Decode()
}
