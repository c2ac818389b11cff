package charts

import (
	"fmt"
	"html"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// Renderer is the strategy a Frame delegates to for one chart kind.
type Renderer interface {
	Extra(Config, Axis, ViewBox) Extra
	Render(Config, Extra, Axis, ViewBox) string
}

// DataFormatter is implemented by renderers that reshape rows before
// the extra config is computed.
type DataFormatter interface {
	FormatData([]Row) []Row
}

// Styler is implemented by renderers that need extra presentation rules.
type Styler interface {
	CSS() string
}

func newCanvas(w io.Writer) *svg.SVG {
	return svg.New(w)
}

func render(fn func(*svg.SVG)) string {
	var str strings.Builder
	fn(newCanvas(&str))
	return str.String()
}

func attr(name string, value any) string {
	var str string
	switch v := value.(type) {
	case string:
		str = v
	case float64:
		str = formatNumber(v)
	default:
		str = fmt.Sprint(v)
	}
	return fmt.Sprintf(`%s="%s"`, name, html.EscapeString(str))
}

func flag(name string) string {
	return attr(name, "")
}

func openStack(canvas *svg.SVG, index int, name string) {
	canvas.Group(attr("data-stack-index", index), attr("data-stack", name))
}

func openSeries(canvas *svg.SVG, index int, key string) {
	canvas.Group(attr("data-series-index", index), attr("data-series", key))
}

func cartesianExtra(extra Extra) (CartesianExtra, bool) {
	switch x := extra.(type) {
	case CartesianExtra:
		return x, true
	case *CartesianExtra:
		return *x, x != nil
	default:
		return CartesianExtra{}, false
	}
}

func polarExtra(extra Extra) (PolarExtra, bool) {
	switch x := extra.(type) {
	case PolarExtra:
		return x, true
	case *PolarExtra:
		return *x, x != nil
	default:
		return PolarExtra{}, false
	}
}

// IsPolar reports whether r lays rows out around a center rather than
// along an axis.
func IsPolar(r Renderer) bool {
	_, ok := polarExtra(r.Extra(Config{}, AxisX, DefaultViewBox()))
	return ok
}
