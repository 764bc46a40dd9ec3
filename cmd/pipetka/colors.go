package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pipetka/pipetka"
	"github.com/pipetka/pipetka/internal/color"
	"github.com/pipetka/pipetka/internal/contrast"
	"github.com/pipetka/pipetka/internal/names"
	"github.com/pipetka/pipetka/internal/palette"
	"github.com/pipetka/pipetka/internal/vision"
	"github.com/spf13/cobra"
)

func parseColorArg(s string) (color.Color, error) {
	c, ok := color.ParseColor(s)
	if !ok {
		return color.Color{}, fmt.Errorf("%w %q", color.ErrInvalidHex, s)
	}
	return c, nil
}

func levelLabel(l contrast.Levels) string {
	switch {
	case l.AAANormal:
		return "AAA"
	case l.AANormal:
		return "AA"
	case l.AALarge:
		return "AA large"
	default:
		return "fail"
	}
}

func printColors(w io.Writer, colors []color.Color) {
	for _, c := range colors {
		fmt.Fprintf(w, "%s  %s\n", c.Hex(), c.RGB())
	}
}

func printReport(w io.Writer, r pipetka.Report) {
	fmt.Fprintf(w, "%s  %s\n", r.Hex, r.Algorithmic)
	fmt.Fprintf(w, "  rgb(%d, %d, %d)  hsl(%g, %g%%, %g%%)\n", r.RGB.R, r.RGB.G, r.RGB.B, r.HSL.H, r.HSL.S, r.HSL.L)
	fmt.Fprintf(w, "  lab(%g, %g, %g)  lch(%g, %g, %g)  oklch(%g %g %g)\n",
		r.Lab.L, r.Lab.A, r.Lab.B, r.LCH.L, r.LCH.C, r.LCH.H, r.OKLCH.L, r.OKLCH.C, r.OKLCH.H)
	nearest := make([]string, len(r.Names))
	for i, m := range r.Names {
		nearest[i] = fmt.Sprintf("%s (%.2f)", m.Name, m.Distance)
	}
	fmt.Fprintf(w, "  names: %s\n", strings.Join(nearest, ", "))
	fmt.Fprintf(w, "  family: %s  tone: %s  text: %s\n", r.Family, r.Tone, r.BestTextColor)
	fmt.Fprintf(w, "  on white: %.2f:1 %s  on black: %.2f:1 %s\n",
		r.OnWhite.Ratio, levelLabel(r.OnWhite.Levels), r.OnBlack.Ratio, levelLabel(r.OnBlack.Levels))
}

func newDescribeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <color>...",
		Short: "Show a color in every color space with names, classification and contrast",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			dict := cfg.Dictionary()

			reports := make([]pipetka.Report, 0, len(args))
			for _, arg := range args {
				r, err := pipetka.DescribeString(arg, dict)
				if err != nil {
					return err
				}
				reports = append(reports, r)
			}
			return opts.emit(cmd.OutOrStdout(), reports, func(w io.Writer) {
				for i, r := range reports {
					if i > 0 {
						fmt.Fprintln(w)
					}
					printReport(w, r)
				}
			})
		},
	}
}

func newContrastCmd(opts *options) *cobra.Command {
	var target float64

	cmd := &cobra.Command{
		Use:   "contrast <foreground> <background>",
		Short: "Check the WCAG contrast ratio of a color pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, err := parseColorArg(args[0])
			if err != nil {
				return err
			}
			bg, err := parseColorArg(args[1])
			if err != nil {
				return err
			}

			res := contrast.Evaluate(fg, bg)
			suggestion, ok := contrast.Suggest(fg, bg, target)
			return opts.emit(cmd.OutOrStdout(), res, func(w io.Writer) {
				fmt.Fprintf(w, "%s on %s: %.2f:1 %s\n", fg.Hex(), bg.Hex(), res.Ratio, levelLabel(res.Levels))
				fmt.Fprintf(w, "  AA normal %t  AA large %t  AAA normal %t  AAA large %t\n",
					res.Levels.AANormal, res.Levels.AALarge, res.Levels.AAANormal, res.Levels.AAALarge)
				if res.Ratio < target && ok {
					fmt.Fprintf(w, "  suggestion: %s (%.2f:1)\n", suggestion.Hex(), contrast.Ratio(suggestion, bg))
				}
			})
		},
	}
	cmd.Flags().Float64Var(&target, "target", contrast.MinAANormal, "ratio a suggested foreground must reach")
	return cmd
}

func newNamesCmd(opts *options) *cobra.Command {
	var (
		limit  int
		metric string
	)

	cmd := &cobra.Command{
		Use:   "names <color>",
		Short: "List the closest named colors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			c, err := parseColorArg(args[0])
			if err != nil {
				return err
			}
			m, err := color.ParseMetric(metric)
			if err != nil {
				return err
			}

			matches := names.ClosestBy(c, cfg.Dictionary(), limit, m)
			return opts.emit(cmd.OutOrStdout(), matches, func(w io.Writer) {
				for _, match := range matches {
					fmt.Fprintf(w, "%-24s %s  %s %.2f\n", match.Name, match.Hex, distanceLabel(m), match.Distance)
				}
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", pipetka.NameCount, "number of names to list")
	cmd.Flags().StringVar(&metric, "metric", color.MetricDeltaE.String(), "distance metric: rgb, deltae or ciede2000")
	return cmd
}

func distanceLabel(m color.Metric) string {
	if m == color.MetricRGB {
		return "d"
	}
	return "ΔE"
}

func newPaletteCmd(opts *options) *cobra.Command {
	var (
		scheme string
		shades int
	)

	cmd := &cobra.Command{
		Use:   "palette <color>",
		Short: "Generate a harmony palette from a base color",
		Long:  "Generate a harmony palette. Schemes: " + strings.Join(palette.Schemes(), ", ") + ".",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := parseColorArg(args[0])
			if err != nil {
				return err
			}
			colors, err := palette.Harmony(base, scheme)
			if err != nil {
				return err
			}
			colors = append(colors, palette.Shades(base, shades)...)
			return opts.emit(cmd.OutOrStdout(), colors, func(w io.Writer) {
				printColors(w, colors)
			})
		},
	}
	cmd.Flags().StringVarP(&scheme, "scheme", "s", palette.Complementary, "harmony scheme")
	cmd.Flags().IntVar(&shades, "shades", 0, "append this many lightness shades of the base color")
	return cmd
}

func newGradientCmd(opts *options) *cobra.Command {
	var (
		steps int
		space string
	)

	cmd := &cobra.Command{
		Use:   "gradient <from> <to>",
		Short: "Interpolate between two colors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseColorArg(args[0])
			if err != nil {
				return err
			}
			to, err := parseColorArg(args[1])
			if err != nil {
				return err
			}
			colors, err := palette.Gradient(from, to, steps, space)
			if err != nil {
				return err
			}
			return opts.emit(cmd.OutOrStdout(), colors, func(w io.Writer) {
				printColors(w, colors)
			})
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 5, "number of colors, endpoints included")
	cmd.Flags().StringVar(&space, "space", palette.SpaceRGB, "interpolation space: rgb, lab or hcl")
	return cmd
}

func newVisionCmd(opts *options) *cobra.Command {
	var (
		kind    string
		imgPath string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "vision [color]",
		Short: "Simulate color vision deficiencies for a color or an image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := vision.Kinds
			if kind != "" {
				k, err := vision.ParseKind(kind)
				if err != nil {
					return err
				}
				kinds = []vision.Kind{k}
			}

			if imgPath != "" {
				if len(kinds) != 1 {
					return fmt.Errorf("--image needs a single --kind")
				}
				return simulateImageFile(imgPath, outPath, kinds[0])
			}
			if len(args) != 1 {
				return fmt.Errorf("a color argument or --image is required")
			}

			c, err := parseColorArg(args[0])
			if err != nil {
				return err
			}
			sims := make(map[vision.Kind]color.Color, len(kinds))
			for _, k := range kinds {
				sims[k] = vision.Simulate(c, k)
			}
			return opts.emit(cmd.OutOrStdout(), sims, func(w io.Writer) {
				for _, k := range kinds {
					fmt.Fprintf(w, "%-14s %s\n", k, sims[k].Hex())
				}
			})
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "protanopia, deuteranopia, tritanopia or achromatopsia (default all)")
	cmd.Flags().StringVar(&imgPath, "image", "", "simulate an image file instead of a color")
	cmd.Flags().StringVarP(&outPath, "out", "o", "simulated.png", "output PNG for --image")
	return cmd
}
