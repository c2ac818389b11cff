package dash

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/midbel/effcharts"
	"github.com/midbel/effcharts/decode"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 450
	DefaultExt    = ".svg"
)

var ErrDashboard = errors.New("invalid dashboard")

// Dashboard lists the charts rendered together from one file.
type Dashboard struct {
	Title   string                  `yaml:"title"`
	Output  string                  `yaml:"output"`
	Width   int                     `yaml:"width" env-default:"800"`
	Height  int                     `yaml:"height" env-default:"450"`
	Style   Style                   `yaml:"style"`
	Sources map[string]SourceConfig `yaml:"sources"`
	Charts  []Chart                 `yaml:"charts"`

	dir string
}

type Chart struct {
	Name    string                  `yaml:"name"`
	Kind    string                  `yaml:"kind"`
	Axis    string                  `yaml:"axis"`
	Ratio   string                  `yaml:"ratio"`
	Width   int                     `yaml:"width"`
	Height  int                     `yaml:"height"`
	Config  string                  `yaml:"config"`
	Source  string                  `yaml:"source"`
	Output  string                  `yaml:"output"`
	Style   Style                   `yaml:"style"`
	Sources map[string]SourceConfig `yaml:"sources"`
}

func Load(file string) (Dashboard, error) {
	var d Dashboard
	if err := cleanenv.ReadConfig(file, &d); err != nil {
		return d, fmt.Errorf("%s: %w", file, err)
	}
	d.dir = filepath.Dir(file)
	d.normalize()
	if err := d.Validate(); err != nil {
		return d, fmt.Errorf("%s: %w", file, err)
	}
	return d, nil
}

func (d *Dashboard) normalize() {
	if d.Width <= 0 {
		d.Width = DefaultWidth
	}
	if d.Height <= 0 {
		d.Height = DefaultHeight
	}
	for i := range d.Charts {
		c := &d.Charts[i]
		c.Kind = strings.ToLower(strings.TrimSpace(c.Kind))
		if c.Name == "" {
			base := filepath.Base(c.Config)
			c.Name = strings.TrimSuffix(base, filepath.Ext(base))
		}
		if c.Width <= 0 {
			c.Width = d.Width
		}
		if c.Height <= 0 {
			c.Height = d.Height
		}
	}
}

func (d Dashboard) Validate() error {
	if len(d.Charts) == 0 {
		return fmt.Errorf("%w: no charts", ErrDashboard)
	}
	seen := make(map[string]struct{})
	for i, c := range d.Charts {
		i, c := i, c
		if c.Config == "" {
			return fmt.Errorf("%w: chart #%d: config missing", ErrDashboard, i+1)
		}
		if c.Kind == "" {
			return fmt.Errorf("%w: %s: kind missing", ErrDashboard, c.Name)
		}
		if _, ok := seen[c.Name]; ok {
			return fmt.Errorf("%w: %s: duplicate chart", ErrDashboard, c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}

// Dir is the directory relative paths of d are resolved against.
func (d Dashboard) Dir() string {
	if d.dir == "" {
		return "."
	}
	return d.dir
}

func (d Dashboard) output(c Chart, dir string) string {
	if d.Output != "" {
		dir = d.Output
	}
	if dir == "" {
		dir = d.Dir()
	} else if !filepath.IsAbs(dir) {
		dir = filepath.Join(d.Dir(), dir)
	}
	file := c.Output
	if file == "" {
		file = c.Name + DefaultExt
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(dir, file)
}

type Result struct {
	Chart   string
	File    string
	Bytes   int
	Elapsed time.Duration
}

// Builder renders the charts of a dashboard concurrently, at most
// Workers at a time.
type Builder struct {
	Registry *charts.Registry
	Loader   decode.Loader
	Logger   *slog.Logger
	Client   *http.Client
	Workers  int
	Output   string
}

func (b Builder) Build(ctx context.Context, d Dashboard) ([]Result, error) {
	scope := NewScope()
	if err := scope.DefineAll(d.Sources, d.Dir(), b.Client); err != nil {
		return nil, err
	}

	var (
		results  = make([]Result, len(d.Charts))
		grp, sub = errgroup.WithContext(ctx)
		logger   = b.logger()
	)
	grp.SetLimit(b.workers())
	for i, c := range d.Charts {
		i, c := i, c
		grp.Go(func() error {
			res, err := b.build(sub, d, c, scope)
			if err != nil {
				logger.Error("chart failed", "chart", c.Name, "kind", c.Kind, "err", err)
				return fmt.Errorf("%s: %w", c.Name, err)
			}
			logger.Info("chart rendered", "chart", c.Name, "file", res.File, "bytes", res.Bytes, "elapsed", res.Elapsed)
			results[i] = res
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (b Builder) build(ctx context.Context, d Dashboard, c Chart, scope *Scope) (Result, error) {
	var (
		now = time.Now()
		res = Result{
			Chart: c.Name,
			File:  d.output(c, b.Output),
		}
	)
	frame, err := b.registry().Frame(c.Kind)
	if err != nil {
		return res, err
	}
	ld := b.Loader
	ld.Dir = d.Dir()
	if ld.Client == nil {
		ld.Client = b.Client
	}
	cfg, err := ld.Load(ctx, c.Config)
	if err != nil {
		return res, err
	}
	if c.Source != "" {
		rows, err := b.rows(ctx, c, scope, d.Dir())
		if err != nil {
			return res, err
		}
		cfg.Data = rows
	}
	cfg, err = c.Style.merge(d.Style).apply(cfg, charts.IsPolar(frame.Renderer))
	if err != nil {
		return res, err
	}

	frame.SetLayout(charts.ParseAxis(c.Axis), c.Ratio)
	var buf bytes.Buffer
	if err := frame.Render(cfg).WriteDocument(&buf, c.Width, c.Height); err != nil {
		return res, err
	}
	if err := os.MkdirAll(filepath.Dir(res.File), 0o755); err != nil {
		return res, err
	}
	if err := os.WriteFile(res.File, buf.Bytes(), 0o644); err != nil {
		return res, err
	}
	res.Bytes = buf.Len()
	res.Elapsed = time.Since(now)
	return res, nil
}

func (b Builder) rows(ctx context.Context, c Chart, scope *Scope, dir string) ([]charts.Row, error) {
	local := scope.Nest()
	if err := local.DefineAll(c.Sources, dir, b.Client); err != nil {
		return nil, err
	}
	src, err := local.Lookup(c.Source)
	if err != nil {
		return nil, err
	}
	return src.Rows(ctx)
}

func (b Builder) registry() *charts.Registry {
	if b.Registry == nil {
		return charts.Builtin()
	}
	return b.Registry
}

func (b Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return b.Logger
}

func (b Builder) workers() int {
	if b.Workers <= 0 {
		return runtime.NumCPU()
	}
	return b.Workers
}
