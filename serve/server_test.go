package serve

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/midbel/effcharts"
)

const lineConfig = `{
	"data": [
		{"name": "A", "uv": 10},
		{"name": "B", "uv": 20},
		{"name": "C", "uv": 15}
	],
	"series": {"uv": {"field": "uv", "title": "Visits", "color": "red"}}
}`

const pieConfig = `{
	"data": [
		{"name": "a", "value": 1, "color": "red"},
		{"name": "b", "value": 3, "color": "blue"}
	],
	"series": {"share": {}}
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(nil, nil, Options{}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %s", url, err)
	}
	defer res.Body.Close()
	buf, _ := io.ReadAll(res.Body)
	return res, string(buf)
}

func post(t *testing.T, url, body string) (*http.Response, string) {
	t.Helper()
	res, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %s", url, err)
	}
	defer res.Body.Close()
	buf, _ := io.ReadAll(res.Body)
	return res, string(buf)
}

func TestKinds(t *testing.T) {
	srv := newTestServer(t)
	res, body := get(t, srv.URL+"/kinds")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", res.StatusCode)
	}
	var kinds []string
	if err := json.Unmarshal([]byte(body), &kinds); err != nil {
		t.Fatalf("invalid body %q: %s", body, err)
	}
	want := []string{charts.KindBar, charts.KindLine, charts.KindPie}
	if strings.Join(kinds, ",") != strings.Join(want, ",") {
		t.Fatalf("want %v, got %v", want, kinds)
	}
}

func TestRenderQuery(t *testing.T) {
	cfg, err := charts.DecodeJSON([]byte(lineConfig))
	if err != nil {
		t.Fatalf("invalid config: %s", err)
	}
	enc, err := charts.Encode(cfg)
	if err != nil {
		t.Fatalf("encode: %s", err)
	}
	srv := newTestServer(t)
	res, body := get(t, srv.URL+"/charts/line.svg?ratio=2&active=1&width=640&config="+enc)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", res.StatusCode, body)
	}
	if ct := res.Header.Get("Content-Type"); ct != svgContentType {
		t.Errorf("unexpected content type %s", ct)
	}
	for _, str := range []string{`width="640"`, `viewBox="`, `class="line"`, `data-active=""`} {
		if !strings.Contains(body, str) {
			t.Errorf("document lacks %s", str)
		}
	}
}

func TestRenderBody(t *testing.T) {
	srv := newTestServer(t)
	res, body := post(t, srv.URL+"/charts/pie?palette=tableau10", pieConfig)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", res.StatusCode, body)
	}
	if !strings.Contains(body, `fill="red"`) || !strings.Contains(body, `fill="blue"`) {
		t.Errorf("row colors should be kept: %s", body)
	}

	yaml := "data:\n  - {name: a, uv: 1}\nseries:\n  uv: {field: uv}\n"
	res, body = post(t, srv.URL+"/charts/bar?axis=y", yaml)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("yaml: unexpected status %d: %s", res.StatusCode, body)
	}
}

func TestRenderErrors(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		Name string
		Path string
		Body string
		Code int
	}{
		{Name: "kind", Path: "/charts/radar", Body: lineConfig, Code: http.StatusNotFound},
		{Name: "empty", Path: "/charts/line", Body: "  ", Code: http.StatusBadRequest},
		{Name: "json", Path: "/charts/line", Body: `{"data": [}`, Code: http.StatusBadRequest},
		{Name: "palette", Path: "/charts/line?palette=nope", Body: lineConfig, Code: http.StatusBadRequest},
		{Name: "active", Path: "/charts/line?active=x", Body: lineConfig, Code: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			res, body := post(t, srv.URL+tt.Path, tt.Body)
			if res.StatusCode != tt.Code {
				t.Fatalf("want status %d, got %d: %s", tt.Code, res.StatusCode, body)
			}
		})
	}
	res, _ := get(t, srv.URL+"/charts/line.svg")
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing config: want 400, got %d", res.StatusCode)
	}
	res, _ = get(t, srv.URL+"/charts/nope.svg")
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown kind without config: want 404, got %d", res.StatusCode)
	}
}

func TestTooltip(t *testing.T) {
	srv := newTestServer(t)
	res, body := post(t, srv.URL+"/charts/line/tooltip?index=1", lineConfig)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", res.StatusCode, body)
	}
	if !strings.Contains(body, "<span>Visits</span>") || !strings.Contains(body, "<span>20</span>") {
		t.Errorf("unexpected tooltip %s", body)
	}

	res, body = post(t, srv.URL+"/charts/line/tooltip?x=799&y=10&width=800&height=450", lineConfig)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", res.StatusCode, body)
	}
	if !strings.Contains(body, "<span>15</span>") {
		t.Errorf("last row expected under the cursor: %s", body)
	}

	res, _ = post(t, srv.URL+"/charts/line/tooltip?index=9", lineConfig)
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("out of range index: want 404, got %d", res.StatusCode)
	}
}

func TestMetrics(t *testing.T) {
	srv := newTestServer(t)
	post(t, srv.URL+"/charts/line", lineConfig)
	post(t, srv.URL+"/charts/line", lineConfig)
	post(t, srv.URL+"/charts/radar", lineConfig)
	get(t, srv.URL+"/charts/aaa.svg")
	get(t, srv.URL+"/charts/bbb.svg")

	res, body := get(t, srv.URL+"/metrics")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", res.StatusCode)
	}
	for _, str := range []string{
		`effcharts_renders_total{kind="line"} 2`,
		`effcharts_render_errors_total{kind="unknown"} 3`,
		`effcharts_render_duration_seconds_count{kind="line"} 2`,
		`effcharts_uptime_seconds`,
	} {
		if !strings.Contains(body, str) {
			t.Errorf("metrics lack %s", str)
		}
	}
	for _, kind := range []string{"radar", "aaa", "bbb"} {
		if strings.Contains(body, `kind="`+kind+`"`) {
			t.Errorf("unknown kind %s should not get its own label", kind)
		}
	}
}
