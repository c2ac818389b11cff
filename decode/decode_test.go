package decode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/midbel/effcharts"
)

func TestDecoder_Decode(t *testing.T) {
	for _, file := range []string{"testdata/sample.yaml", "testdata/sample.json"} {
		r, err := os.Open(file)
		if err != nil {
			t.Fatal(err)
		}
		defer r.Close()

		cfg, err := NewDecoder(r).Decode()
		if err != nil {
			t.Fatalf("%s: %s", file, err)
		}
		if keys := cfg.Series.Keys(); !reflect.DeepEqual(keys, []string{"def", "sec"}) {
			t.Errorf("%s: series order: got %v", file, keys)
		}
		if len(cfg.Data) != 2 || cfg.Data[1].Number("uv") != -3000 {
			t.Errorf("%s: unexpected data %v", file, cfg.Data)
		}
		if cfg.Grid.Value.Zero.Enabled(true) {
			t.Errorf("%s: zero line should be off", file)
		}
		if cfg.Levels.Count != 6 {
			t.Errorf("%s: levels: want 6, got %d", file, cfg.Levels.Count)
		}
	}
}

func TestDecoderEncoded(t *testing.T) {
	str, err := charts.Encode(charts.Config{
		Data:   []charts.Row{{"name": "x", "key": 2.0}},
		Series: charts.NewSeriesSet(),
	})
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := NewDecoder(strings.NewReader(str)).Decode()
	if err != nil {
		t.Fatalf("decode encoded config: %s", err)
	}
	if cfg.Data[0].Number("key") != 2 {
		t.Fatalf("unexpected data %v", cfg.Data)
	}
}

func TestDecoderErrors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := NewDecoder(strings.NewReader("  \n")).Decode()
		if !errors.Is(err, charts.ErrEmptyInput) {
			t.Fatalf("want ErrEmptyInput, got %v", err)
		}
	})
	t.Run("json", func(t *testing.T) {
		dec := NewDecoder(strings.NewReader("{\n  \"data\": [],\n  \"series\": {,}\n}"))
		dec.SetFile("bad.json")
		_, err := dec.Decode()
		var derr DecodeError
		if !errors.As(err, &derr) {
			t.Fatalf("want DecodeError, got %v", err)
		}
		if derr.Line != 3 || derr.File != "bad.json" {
			t.Fatalf("unexpected position %s in %s", derr.Position, derr.File)
		}
		if !strings.HasPrefix(err.Error(), "bad.json:3:") {
			t.Fatalf("unexpected message %q", err)
		}
	})
	t.Run("yaml", func(t *testing.T) {
		_, err := NewDecoder(strings.NewReader("data:\n\t- 1")).Decode()
		var derr DecodeError
		if !errors.As(err, &derr) || derr.Line == 0 {
			t.Fatalf("want DecodeError with a line, got %v", err)
		}
	})
	t.Run("strict", func(t *testing.T) {
		var (
			str = "data: []\nseries:\n  s:\n    feild: x\n"
			dec = NewDecoder(strings.NewReader(str))
		)
		dec.SetStrict(true)
		_, err := dec.Decode()
		var oerr OptionError
		if !errors.As(err, &oerr) {
			t.Fatalf("want OptionError, got %v", err)
		}
		if oerr.Option != "feild" || oerr.Section != "series.s" || oerr.Line != 4 || oerr.Column != 5 {
			t.Fatalf("unexpected error %+v", oerr)
		}
		if _, err := NewDecoder(strings.NewReader(str)).Decode(); err != nil {
			t.Fatalf("lenient decoder should ignore unknown options: %s", err)
		}
	})
	t.Run("strict-json", func(t *testing.T) {
		dec := NewDecoder(strings.NewReader(`{"data": [], "colour": "red"}`))
		dec.SetStrict(true)
		var oerr OptionError
		if _, err := dec.Decode(); !errors.As(err, &oerr) || oerr.Section != "config" {
			t.Fatalf("want OptionError, got %v", err)
		}
	})
}

func TestLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chart" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.Write([]byte("data:\n  - {key: 1}\nseries:\n  s: {}\n"))
	}))
	defer srv.Close()

	cfg, err := Load(context.Background(), srv.URL+"/chart")
	if err != nil {
		t.Fatalf("load remote: %s", err)
	}
	if cfg.Series.Len() != 1 || len(cfg.Data) != 1 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if _, err := Load(context.Background(), srv.URL+"/missing"); err == nil {
		t.Fatalf("missing remote config should fail")
	}

	ld := Loader{Dir: "testdata"}
	if _, err := ld.Load(context.Background(), "sample.yaml"); err != nil {
		t.Fatalf("load relative file: %s", err)
	}
	if _, err := Load(context.Background(), "ftp://example.com/chart.json"); err == nil {
		t.Fatalf("unsupported scheme should fail")
	}
}
