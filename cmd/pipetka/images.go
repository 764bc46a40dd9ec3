package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"slices"

	"github.com/pipetka/pipetka/internal/api"
	"github.com/pipetka/pipetka/internal/color"
	"github.com/pipetka/pipetka/internal/engine"
	"github.com/pipetka/pipetka/internal/extract"
	"github.com/pipetka/pipetka/internal/palette"
	"github.com/pipetka/pipetka/internal/vision"
	"github.com/spf13/cobra"
)

// decodeFile decodes an image, taking its type from the extension and
// falling back to content sniffing.
func decodeFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	typ := mime.TypeByExtension(filepath.Ext(path))
	if typ == "" {
		typ = http.DetectContentType(data)
	}
	img, err := extract.Decode(bytes.NewReader(data), typ)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

func simulateImageFile(in, out string, kind vision.Kind) error {
	img, err := decodeFile(in)
	if err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, vision.SimulateImage(img, kind)); err != nil {
		return fmt.Errorf("encoding %s: %w", out, err)
	}
	log.Infof("wrote %s", out)
	return nil
}

func printSwatches(w io.Writer, swatches []extract.Swatch) {
	for _, s := range swatches {
		fmt.Fprintf(w, "%s  %-20s %5.1f%%\n", s.Hex, s.RGB, s.Percentage)
	}
}

func printResult(w io.Writer, r extract.Result) {
	if r.Mode != extract.ModeBrand {
		printSwatches(w, r.Swatches)
		return
	}
	for _, b := range r.Brand {
		fmt.Fprintf(w, "%s  %5.1f%%  %-16s %-8s %-6s text %s\n", b.Hex, b.Percentage, b.Name, b.Family, b.Tone, b.TextColor)
	}
}

func newExtractCmd(opts *options) *cobra.Command {
	var (
		mode string
		k    int
		jobs int
		seed uint64
	)

	cmd := &cobra.Command{
		Use:   "extract <image>...",
		Short: "Extract dominant, brand or palette colors from images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			m, err := extract.ParseMode(mode)
			if err != nil {
				return err
			}
			if k <= 0 {
				k = cfg.Clustering.Colors
			}

			app := api.NewApplication(cfg, "")
			app.Seed = seed
			ex := app.Extractor()

			images := make([]image.Image, len(args))
			for i, path := range args {
				if images[i], err = decodeFile(path); err != nil {
					return err
				}
			}

			// Dominant extraction over several images runs concurrently.
			if m == extract.ModeDominant && len(images) > 1 {
				results, err := ex.Batch(cmd.Context(), images, k, jobs)
				if err != nil {
					return err
				}
				byFile := make(map[string][]extract.Swatch, len(args))
				for i, path := range args {
					byFile[path] = results[i]
				}
				return opts.emit(cmd.OutOrStdout(), byFile, func(w io.Writer) {
					for i, path := range args {
						fmt.Fprintf(w, "%s:\n", path)
						printSwatches(w, results[i])
					}
				})
			}

			results := make([]extract.Result, len(images))
			for i, img := range images {
				if results[i], err = ex.Run(img, m, k); err != nil {
					return err
				}
			}
			return opts.emit(cmd.OutOrStdout(), results, func(w io.Writer) {
				for i, r := range results {
					if len(args) > 1 {
						fmt.Fprintf(w, "%s:\n", args[i])
					}
					printResult(w, r)
				}
			})
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", string(extract.ModeDominant), "dominant, brand or palette")
	cmd.Flags().IntVarP(&k, "colors", "k", 0, "number of colors (default from config)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 4, "images analysed concurrently")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "fixed seed for reproducible results (0 is random)")
	return cmd
}

func newExportCmd(opts *options) *cobra.Command {
	var (
		name      string
		formats   []string
		outDir    string
		templates string
		imagePath string
		stdout    bool
	)

	cmd := &cobra.Command{
		Use:   "export [colors...]",
		Short: "Render a palette through the export templates",
		Long: "Render a palette as CSS variables, SCSS, JSON, a Tailwind config or any *.tmpl " +
			"in --templates. Colors come from the arguments or from --image.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			var colors []color.Color
			for _, arg := range args {
				c, err := parseColorArg(arg)
				if err != nil {
					return err
				}
				colors = append(colors, c)
			}
			if imagePath != "" {
				img, err := decodeFile(imagePath)
				if err != nil {
					return err
				}
				for _, s := range api.NewApplication(cfg, "").Extractor().Dominant(img, cfg.Clustering.Colors) {
					colors = append(colors, s.Color)
				}
			}
			colors = palette.Unique(colors)
			if len(colors) == 0 {
				return fmt.Errorf("no colors given; pass colors or --image")
			}

			p := engine.NewPalette(name, colors, cfg.Dictionary())
			e := &engine.Engine{TemplatesDir: templates, OutputDir: outDir, Formats: formats}

			if stdout {
				if len(formats) != 1 {
					return fmt.Errorf("--stdout needs exactly one --format")
				}
				return e.Render(formats[0], cmd.OutOrStdout(), p)
			}
			if err := e.Run(p); err != nil {
				return fmt.Errorf("exporting: %w", err)
			}

			rendered := formats
			if len(rendered) == 0 {
				if rendered, err = e.Templates(); err != nil {
					return err
				}
			}
			slices.Sort(rendered)
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %v to %s\n", rendered, outDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "palette", "palette name passed to templates")
	cmd.Flags().StringArrayVarP(&formats, "format", "f", nil, "export only these formats (can be repeated)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "output", "output directory")
	cmd.Flags().StringVar(&templates, "templates", "", "directory of extra *.tmpl templates")
	cmd.Flags().StringVar(&imagePath, "image", "", "take the dominant colors of an image")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "write a single format to stdout")
	return cmd
}

func newServeCmd(opts *options) *cobra.Command {
	var (
		addr      string
		templates string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return api.NewApplication(cfg, templates).Serve()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config and PIPETKA_ADDR)")
	cmd.Flags().StringVar(&templates, "templates", "", "directory of extra export templates")
	return cmd
}
