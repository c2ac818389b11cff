package dash

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/midbel/effcharts"
	"github.com/xuri/excelize/v2"
)

const (
	SourceCSV    = "csv"
	SourceXLSX   = "xlsx"
	SourceJSON   = "json"
	SourceHTTP   = "http"
	SourceInline = "inline"
)

var ErrSource = errors.New("invalid data source")

// DataSource yields the rows of a chart. The first line of tabular
// sources names the fields.
type DataSource interface {
	Rows(context.Context) ([]charts.Row, error)
}

type Limit struct {
	Offset int `yaml:"offset"`
	Count  int `yaml:"count"`
}

func (lim Limit) apply(list []charts.Row) []charts.Row {
	z := len(list)
	if lim.Offset < 0 {
		lim.Offset = z + lim.Offset
	}
	if lim.Offset > 0 && lim.Offset < z {
		list = list[lim.Offset:]
	}
	if lim.Count > 0 && lim.Count < len(list) {
		list = list[:lim.Count]
	}
	return list
}

// SourceConfig is the dashboard description of a data source. Type is
// guessed from the path or the url when omitted.
type SourceConfig struct {
	Type    string `yaml:"type"`
	Path    string `yaml:"path"`
	URL     string `yaml:"url"`
	Sheet   string `yaml:"sheet"`
	Format  string `yaml:"format"`
	Content string `yaml:"content"`

	Method   string            `yaml:"method"`
	Body     string            `yaml:"body"`
	Username string            `yaml:"username"`
	Password string            `yaml:"password"`
	Headers  map[string]string `yaml:"headers"`

	Limit `yaml:",inline"`
}

func (c SourceConfig) kind() string {
	if c.Type != "" {
		return strings.ToLower(c.Type)
	}
	switch {
	case c.URL != "":
		return SourceHTTP
	case c.Content != "":
		return SourceInline
	}
	switch strings.ToLower(filepath.Ext(c.Path)) {
	case ".xlsx":
		return SourceXLSX
	case ".json":
		return SourceJSON
	default:
		return SourceCSV
	}
}

// Source builds the DataSource described by c. Relative paths are
// resolved against dir.
func (c SourceConfig) Source(dir string, client *http.Client) (DataSource, error) {
	path := c.Path
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	switch kind := c.kind(); kind {
	case SourceCSV, SourceXLSX, SourceJSON:
		if c.Path == "" {
			return nil, fmt.Errorf("%w: %s source without path", ErrSource, kind)
		}
		if kind == SourceXLSX {
			return Workbook{Path: path, Sheet: c.Sheet, Limit: c.Limit}, nil
		}
		if kind == SourceJSON {
			return JSONFile{Path: path, Limit: c.Limit}, nil
		}
		return LocalFile{Path: path, Limit: c.Limit}, nil
	case SourceHTTP:
		if c.URL == "" {
			return nil, fmt.Errorf("%w: http source without url", ErrSource)
		}
		f := HttpFile{
			URL:      c.URL,
			Format:   c.Format,
			Method:   c.Method,
			Body:     c.Body,
			Username: c.Username,
			Password: c.Password,
			Headers:  make(http.Header),
			Client:   client,
			Limit:    c.Limit,
		}
		for k, v := range c.Headers {
			f.Headers.Set(k, v)
		}
		return f, nil
	case SourceInline:
		return LocalData{Content: c.Content, Limit: c.Limit}, nil
	default:
		return nil, fmt.Errorf("%w: unknown type %s", ErrSource, kind)
	}
}

type LocalFile struct {
	Path string
	Limit
}

func (f LocalFile) Rows(_ context.Context) ([]charts.Row, error) {
	r, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	rows, err := readCSV(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return f.apply(rows), nil
}

type Workbook struct {
	Path  string
	Sheet string
	Limit
}

func (w Workbook) Rows(_ context.Context) ([]charts.Row, error) {
	f, err := excelize.OpenFile(w.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := w.Sheet
	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, fmt.Errorf("%s: workbook without sheet", w.Path)
		}
		sheet = list[0]
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", w.Path, err)
	}
	return w.apply(makeRows(records)), nil
}

type JSONFile struct {
	Path string
	Limit
}

func (f JSONFile) Rows(_ context.Context) ([]charts.Row, error) {
	r, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	rows, err := readJSON(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return f.apply(rows), nil
}

type HttpFile struct {
	URL    string
	Format string

	Method   string
	Body     string
	Username string
	Password string
	Headers  http.Header
	Client   *http.Client
	Limit
}

func (f HttpFile) Rows(ctx context.Context) ([]charts.Row, error) {
	method := f.Method
	if method == "" {
		method = http.MethodGet
	}
	var body io.Reader
	if f.Body != "" {
		body = strings.NewReader(f.Body)
	}
	req, err := http.NewRequestWithContext(ctx, method, f.URL, body)
	if err != nil {
		return nil, err
	}
	for k := range f.Headers {
		req.Header.Set(k, f.Headers.Get(k))
	}
	if f.Username != "" {
		req.SetBasicAuth(f.Username, f.Password)
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %s", f.URL, res.Status)
	}

	var rows []charts.Row
	if f.format(res.Header.Get("Content-Type")) == SourceJSON {
		rows, err = readJSON(res.Body)
	} else {
		rows, err = readCSV(res.Body)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.URL, err)
	}
	return f.apply(rows), nil
}

func (f HttpFile) format(ctype string) string {
	if f.Format != "" {
		return strings.ToLower(f.Format)
	}
	if strings.Contains(ctype, "json") || strings.HasSuffix(f.URL, ".json") {
		return SourceJSON
	}
	return SourceCSV
}

type LocalData struct {
	Content string
	Limit
}

func (d LocalData) Rows(_ context.Context) ([]charts.Row, error) {
	rows, err := readCSV(strings.NewReader(strings.TrimSpace(d.Content)))
	if err != nil {
		return nil, err
	}
	return d.apply(rows), nil
}

func readCSV(r io.Reader) ([]charts.Row, error) {
	rs := csv.NewReader(r)
	rs.FieldsPerRecord = -1
	rs.TrimLeadingSpace = true

	records, err := rs.ReadAll()
	if err != nil {
		return nil, err
	}
	return makeRows(records), nil
}

func readJSON(r io.Reader) ([]charts.Row, error) {
	var rows []charts.Row
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// makeRows turns records into rows keyed by the first record. Numeric
// cells are stored as numbers, empty cells are left out.
func makeRows(records [][]string) []charts.Row {
	if len(records) == 0 {
		return nil
	}
	var (
		header = records[0]
		list   = make([]charts.Row, 0, len(records)-1)
	)
	for _, rec := range records[1:] {
		row := make(charts.Row, len(header))
		for i, cell := range rec {
			if i >= len(header) || header[i] == "" {
				break
			}
			if cell = strings.TrimSpace(cell); cell == "" {
				continue
			}
			row[header[i]] = parseCell(cell)
		}
		list = append(list, row)
	}
	return list
}

func parseCell(cell string) any {
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return cell
	}
	return f
}
