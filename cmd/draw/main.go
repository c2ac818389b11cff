package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/midbel/effcharts"
	"github.com/midbel/effcharts/decode"
	"github.com/midbel/effcharts/settings"
	"github.com/spf13/cobra"
)

var (
	settingsFile string
	kind         string
	axis         string
	ratio        string
	palette      string
	outputPath   string
	width        int
	height       int
	active       int
	strict       bool
	pretty       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "draw [config]",
		Short:         "Render one chart config into a SVG document",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDraw,
	}
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "settings file")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "reject unknown options")

	rootCmd.Flags().StringVarP(&kind, "kind", "k", charts.KindBar, "chart kind")
	rootCmd.Flags().StringVar(&axis, "axis", string(charts.AxisX), "key axis: x or y")
	rootCmd.Flags().StringVar(&ratio, "ratio", "", "aspect ratio (w/h)")
	rootCmd.Flags().StringVar(&palette, "palette", "", "palette name or comma separated colors")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")
	rootCmd.Flags().IntVar(&width, "width", 0, "document width")
	rootCmd.Flags().IntVar(&height, "height", 0, "document height")
	rootCmd.Flags().IntVar(&active, "active", -1, "index of the active row")

	encodeCmd := &cobra.Command{
		Use:   "encode [config]",
		Short: "Serialize a chart config for an attribute value",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEncode,
	}
	decodeCmd := &cobra.Command{
		Use:   "decode [encoded]",
		Short: "Print the config held by an encoded string",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDecode,
	}
	decodeCmd.Flags().BoolVar(&pretty, "pretty", false, "indent output")
	rootCmd.AddCommand(encodeCmd, decodeCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("draw failed", "err", err)
		os.Exit(1)
	}
}

func runDraw(cmd *cobra.Command, args []string) error {
	set, err := settings.Load(settingsFile)
	if err != nil {
		return err
	}
	logger := set.Logger(os.Stderr)

	cfg, err := loadConfig(cmd.Context(), set, args)
	if err != nil {
		return err
	}
	frame, err := charts.Builtin().Frame(strings.ToLower(kind))
	if err != nil {
		return err
	}
	if cfg.Precision == nil {
		p := set.Precision
		cfg.Precision = &p
	}
	if palette != "" {
		p, ok := charts.PaletteByName(palette)
		if !ok {
			return fmt.Errorf("%s: unknown palette", palette)
		}
		cfg = p.Apply(cfg, charts.IsPolar(frame.Renderer))
	}
	if !cmd.Flags().Changed("width") {
		width = set.Width
	}
	if !cmd.Flags().Changed("height") {
		height = set.Height
	}

	frame.SetLayout(charts.ParseAxis(axis), ratio)
	m := frame.Render(cfg)
	if active >= 0 {
		m = frame.SetActive(active, "")
	}

	var buf bytes.Buffer
	if err := m.WriteDocument(&buf, width, height); err != nil {
		return err
	}
	if outputPath == "" {
		_, err = os.Stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("chart rendered", "kind", frame.Kind, "file", outputPath, "bytes", buf.Len())
	return nil
}

func runEncode(cmd *cobra.Command, args []string) error {
	set, err := settings.Load(settingsFile)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd.Context(), set, args)
	if err != nil {
		return err
	}
	str, err := charts.Encode(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), str)
	return nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	var str string
	if len(args) == 0 || args[0] == "-" {
		buf, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		str = string(buf)
	} else {
		str = args[0]
	}
	cfg, err := charts.Decode(str)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(cfg)
}

// loadConfig reads the config from the location given in args, or from
// stdin when none is given.
func loadConfig(ctx context.Context, set *settings.Settings, args []string) (charts.Config, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(args) == 0 || args[0] == "-" {
		dec := decode.NewDecoder(os.Stdin)
		dec.SetFile("stdin")
		dec.SetStrict(strict || set.Strict)
		return dec.Decode()
	}
	if set.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, set.Timeout)
		defer cancel()
	}

	ld := decode.Loader{
		Strict: strict || set.Strict,
	}
	return ld.Load(ctx, args[0])
}
