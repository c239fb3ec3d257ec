package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/echoflaresat/colorpick/colors"
	"github.com/echoflaresat/colorpick/config"
	"github.com/echoflaresat/colorpick/editor"
	"github.com/echoflaresat/colorpick/palette"
	"github.com/echoflaresat/colorpick/texture"
)

type options struct {
	to         *string
	image      *string
	x, y       *int
	radius     *int
	swatch     *bool
	recent     *bool
	configPath *string
	saveConfig *bool
	verbose    *bool
	showHelp   *bool
	edits      editList
}

// editList collects repeated -set flags.
type editList []string

func (e *editList) String() string { return strings.Join(*e, ",") }

func (e *editList) Set(v string) error {
	*e = append(*e, v)
	return nil
}

func defineFlags() *options {
	o := &options{
		to: flag.String("to", "", "Target color space: rgb, hsv, oklab, oklch or cmyk (default from config)"),

		image:  flag.String("image", "", "Pick the color from this image file"),
		x:      flag.Int("x", 0, "Pixel column to pick"),
		y:      flag.Int("y", 0, "Pixel row to pick"),
		radius: flag.Int("radius", 0, "Average a square of this radius around the pixel"),

		swatch: flag.Bool("swatch", true, "Print a true-color swatch (default from config)"),
		recent: flag.Bool("recent", false, "Print the distinct colors seen, newest first"),

		configPath: flag.String("config", config.DefaultPath(), "Config file path"),
		saveConfig: flag.Bool("save-config", false, "Write -to and -swatch back to the config file"),
		verbose:    flag.Bool("v", false, "Log debug messages to stderr"),
		showHelp:   flag.Bool("h", false, "Show this help message"),
	}
	flag.Var(&o.edits, "set", "Edit a channel after conversion, as name=text, index=text or hex=#RRGGBB (repeatable)")
	return o
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `colorpick - convert and edit colors

Usage:
  %[1]s [options] <color> [<color>...]
  %[1]s [options] -image <file> -x <col> -y <row>

Colors are written as #RRGGBB or as rgb(255, 0, 0), hsv(0, 100%%, 100%%),
oklab(62.8%% 0.2249 0.1258), oklch(62.8%% 0.2577 29.23), cmyk(0%%, 100%%, 100%%, 0%%).

`, os.Args[0])

	printGroup("Conversion", []string{"to", "set"})
	printGroup("Eyedropper", []string{"image", "x", "y", "radius"})
	printGroup("Output", []string{"swatch", "recent"})
	printGroup("Misc", []string{"config", "save-config", "v", "h"})
}

func printGroup(title string, keys []string) {
	fmt.Fprintf(os.Stderr, "%s:\n", title)
	for _, name := range keys {
		if f := flag.Lookup(name); f != nil {
			fmt.Fprintf(os.Stderr, "  -%-8s %s (default %q)\n", f.Name, f.Usage, f.DefValue)
		}
	}
	fmt.Fprintln(os.Stderr)
}

// settings is the merged result of the config file and the flags.
type settings struct {
	target      colors.Space
	image       string
	x, y        int
	radius      int
	swatch      bool
	recent      bool
	historySize int
	edits       []string
}

func main() {
	opts := defineFlags()
	flag.Usage = printHelp
	flag.Parse()

	if *opts.showHelp {
		printHelp()
		return
	}

	setupLogging(*opts.verbose)

	cfg, err := config.Load(*opts.configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	s, err := merge(&cfg, opts)
	if err != nil {
		log.Fatal(err)
	}
	if *opts.saveConfig {
		if err := cfg.Save(*opts.configPath); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}
		slog.Info("saved config", "path", *opts.configPath)
	}

	out := termenv.NewOutput(os.Stdout)
	if err := run(s, flag.Args(), out); err != nil {
		log.Fatal(err)
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	colors.SetLogger(logger)
}

// merge lets flags given on the command line override the config file,
// updating cfg in place.
func merge(cfg *config.Config, opts *options) (settings, error) {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *opts.to != "" {
		cfg.Space = *opts.to
	}
	if set["swatch"] {
		cfg.Swatch = *opts.swatch
	}
	if err := cfg.Validate(); err != nil {
		return settings{}, err
	}
	return settings{
		target:      cfg.TargetSpace(),
		image:       *opts.image,
		x:           *opts.x,
		y:           *opts.y,
		radius:      *opts.radius,
		swatch:      cfg.Swatch,
		recent:      *opts.recent,
		historySize: max(cfg.HistorySize, 1),
		edits:       opts.edits,
	}, nil
}

var errNoInput = errors.New("no color given; pass a color or -image")

func run(s settings, args []string, out *termenv.Output) error {
	pal := palette.New()
	if s.image != "" {
		rgb, err := pick(s.image, s.x, s.y, s.radius)
		if err != nil {
			return err
		}
		pal.Add(colors.FromRGB(rgb))
	}
	for _, arg := range args {
		c, err := colors.Parse(arg)
		if err != nil {
			return err
		}
		pal.Add(c)
	}
	if pal.Len() == 0 {
		return errNoInput
	}

	hist, err := palette.NewHistory(s.historySize)
	if err != nil {
		return err
	}
	for i := 0; i < pal.Len(); i++ {
		c, err := pal.At(i)
		if err != nil {
			return err
		}
		ed := editor.New(c)
		ed.SwitchSpace(s.target)
		for _, e := range s.edits {
			if err := applyEdit(ed, e); err != nil {
				return err
			}
		}
		hist.Remember(*c)
		writeColor(out, *c, s.swatch)
	}

	if s.recent {
		fmt.Fprintln(out, "recent:")
		for _, h := range hist.Recent() {
			if c, ok := hist.Lookup(h); ok {
				fmt.Fprintf(out, "  %s %s\n", h, c)
			}
		}
	}
	return nil
}

func pick(path string, x, y, radius int) ([3]float32, error) {
	tex, err := texture.Load(path)
	if err != nil {
		return [3]float32{}, err
	}
	defer tex.Close()

	if radius > 0 {
		return tex.Average(x, y, radius)
	}
	return tex.Sample(x, y)
}

// applyEdit types "field=text" into the editor and submits it. The field
// is "hex", a channel name of the live space or a channel index.
func applyEdit(ed *editor.Editor, edit string) error {
	name, text, ok := strings.Cut(edit, "=")
	if !ok {
		return fmt.Errorf("edit %q: want field=value", edit)
	}
	f, err := fieldOf(ed.Color(), strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("edit %q: %w", edit, err)
	}
	ed.Type(f, text)
	if err := ed.Submit(f); err != nil {
		return fmt.Errorf("edit %q: %w", edit, err)
	}
	return nil
}

func fieldOf(c colors.Color, name string) (editor.Field, error) {
	if strings.EqualFold(name, "hex") {
		return editor.Hex, nil
	}
	for i, ch := range c.Channels() {
		if strings.EqualFold(ch.Name, name) {
			return editor.Field(i), nil
		}
	}
	i, err := strconv.Atoi(name)
	if err != nil || i < 0 || i >= c.ChannelCount() {
		return 0, fmt.Errorf("%s has no channel %q", c.Space(), name)
	}
	return editor.Field(i), nil
}

// writeColor prints the hex and clipboard text of c, after a background
// colored block when swatch is set. Profiles without color print the
// block as blanks.
func writeColor(out *termenv.Output, c colors.Color, swatch bool) {
	text := c.CopyToClipboard()
	if swatch {
		block := out.String("    ").Background(out.Color(c.Hex()))
		fmt.Fprintf(out, "%s %s %s\n", block, c.Hex(), text)
		return
	}
	fmt.Fprintf(out, "%s %s\n", c.Hex(), text)
}
