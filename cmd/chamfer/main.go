package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/logrusorgru/aurora"
	"github.com/osuushi/chamfer/advanced"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"golang.org/x/image/colornames"
	"golang.org/x/image/tiff"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Command line front end for the distance transforms. Input rasters are PNG
// or TIFF (first page only), gray levels above 0 are foreground. Output maps
// are 16-bit rasters where 65535 marks positions no path reaches.
func main() {
	// glog reads its settings from the standard flag set, which kingpin does
	// not parse. Flags below forward to it.
	flag.CommandLine.Parse(nil)

	err := run(context.Background(), afero.NewOsFs(), os.Stdout, os.Args[1:])
	glog.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(err.Error()))
		os.Exit(1)
	}
}

type maskFlags struct {
	label     *string
	weights   *string
	normalize *bool
	float     *bool
	preview   *bool
}

func addMaskFlags(cmd *kingpin.CmdClause) maskFlags {
	return maskFlags{
		label:     cmd.Flag("mask", "Catalog label of the chamfer mask.").Short('m').Default("Borgefors (3,4)").String(),
		weights:   cmd.Flag("weights", "Comma separated shell weights, used instead of --mask.").String(),
		normalize: cmd.Flag("normalize", "Divide by the orthogonal weight.").Default("true").Bool(),
		float:     cmd.Flag("float", "Accumulate float weights before writing.").Bool(),
		preview:   cmd.Flag("preview", "Print the result inline in the terminal.").Bool(),
	}
}

func run(ctx context.Context, fs afero.Fs, stdout io.Writer, args []string) error {
	app := kingpin.New("chamfer", "Chamfer distance maps of binary images.")
	verbosity := app.Flag("v", "Log verbosity.").Short('v').Default("0").Int()

	masksCmd := app.Command("masks", "List the named chamfer masks.")

	distCmd := app.Command("dist", "Distance of foreground pixels to the background.")
	distInput := distCmd.Arg("input", "Binary input raster.").Required().String()
	distOutput := distCmd.Flag("out", "Output raster.").Short('o').Required().String()
	distInverted := distCmd.Flag("inverted", "Distance of background pixels to the foreground.").Bool()
	distMask := addMaskFlags(distCmd)

	geoCmd := app.Command("geodesic", "Distance to markers inside an allowed region.")
	geoMarker := geoCmd.Arg("marker", "Marker raster.").Required().String()
	geoRegion := geoCmd.Arg("region", "Allowed region raster.").Required().String()
	geoOutput := geoCmd.Flag("out", "Output raster.").Short('o').Required().String()
	geoReject := geoCmd.Flag("reject-outside", "Fail on markers outside the region.").Bool()
	geoMask := addMaskFlags(geoCmd)

	overlayCmd := app.Command("overlay", "Paint a color over a gray image where an overlay is positive.")
	overlayReference := overlayCmd.Arg("reference", "Gray reference raster.").Required().String()
	overlayInput := overlayCmd.Arg("overlay", "Overlay raster.").Required().String()
	overlayOutput := overlayCmd.Flag("out", "Output raster.").Short('o').Required().String()
	overlayColor := overlayCmd.Flag("color", "Overlay color, a name such as Red or Dark Gray, or #rrggbb.").Default("#ff0000").String()
	overlayOpacity := overlayCmd.Flag("opacity", "Overlay opacity in percent.").Default("50").Int()

	command, err := app.Parse(args)
	if err != nil {
		return err
	}
	flag.Set("logtostderr", "true")
	flag.Set("v", strconv.Itoa(*verbosity))

	switch command {
	case masksCmd.FullCommand():
		return listMasks(stdout)

	case distCmd.FullCommand():
		mask, err := selectMask(distMask)
		if err != nil {
			return err
		}
		input, err := readGrid(fs, *distInput)
		if err != nil {
			return err
		}
		options := []advanced.Option{
			advanced.WithNormalization(*distMask.normalize),
			advanced.WithInverted(*distInverted),
		}
		var result *image.Gray16
		var summary advanced.Summary
		if *distMask.float {
			grid, err := advanced.NewDistanceTransform2D[float32](mask, options...).DistanceMap(ctx, input)
			if err != nil {
				return err
			}
			result, summary = advanced.Gray16(grid), advanced.Summarize2D(grid)
		} else {
			grid, err := advanced.NewDistanceTransform2D[uint16](mask, options...).DistanceMap(ctx, input)
			if err != nil {
				return err
			}
			result, summary = advanced.Gray16(grid), advanced.Summarize2D(grid)
		}
		return finish(fs, stdout, *distOutput, result, summary, *distMask.preview)

	case geoCmd.FullCommand():
		mask, err := selectMask(geoMask)
		if err != nil {
			return err
		}
		marker, err := readGrid(fs, *geoMarker)
		if err != nil {
			return err
		}
		region, err := readGrid(fs, *geoRegion)
		if err != nil {
			return err
		}
		policy := advanced.IgnoreOutsideMarkers
		if *geoReject {
			policy = advanced.RejectOutsideMarkers
		}
		options := []advanced.Option{
			advanced.WithNormalization(*geoMask.normalize),
			advanced.WithMarkerPolicy(policy),
		}
		var result *image.Gray16
		var summary advanced.Summary
		if *geoMask.float {
			grid, err := advanced.NewGeodesicDistanceTransform2D[float32](mask, options...).GeodesicDistanceMap(ctx, marker, region)
			if err != nil {
				return err
			}
			result, summary = advanced.Gray16(grid), advanced.SummarizeRegion2D(grid, region)
		} else {
			grid, err := advanced.NewGeodesicDistanceTransform2D[uint16](mask, options...).GeodesicDistanceMap(ctx, marker, region)
			if err != nil {
				return err
			}
			result, summary = advanced.Gray16(grid), advanced.SummarizeRegion2D(grid, region)
		}
		return finish(fs, stdout, *geoOutput, result, summary, *geoMask.preview)

	case overlayCmd.FullCommand():
		reference, err := readGrid(fs, *overlayReference)
		if err != nil {
			return err
		}
		overlay, err := readGrid(fs, *overlayInput)
		if err != nil {
			return err
		}
		c, err := parseColor(*overlayColor)
		if err != nil {
			return err
		}
		gray := advanced.NewGrid2D[uint8](reference.Width, reference.Height)
		for i, v := range reference.Data {
			gray.Data[i] = uint8(v >> 8)
		}
		result, err := advanced.Overlay2D(gray, overlay, c, *overlayOpacity)
		if err != nil {
			return err
		}
		if err := writeImage(fs, *overlayOutput, result); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s %s\n", aurora.Green("wrote"), *overlayOutput)
		return nil
	}
	return nil
}

func listMasks(w io.Writer) error {
	for _, catalog := range []struct {
		title   string
		catalog *advanced.Catalog
	}{{"2D", advanced.Masks2D}, {"3D", advanced.Masks3D}} {
		fmt.Fprintln(w, aurora.Bold(catalog.title))
		for _, e := range catalog.catalog.Entries() {
			fmt.Fprintf(w, "  %-32s %d offsets\n", e.Label, e.Mask.Len())
		}
	}
	return nil
}

// Only 2D masks make sense here, since the rasters are 2D.
func selectMask(flags maskFlags) (*advanced.Mask, error) {
	if *flags.weights == "" {
		return advanced.Masks2D.Lookup(*flags.label)
	}
	var weights []int
	for _, field := range strings.Split(*flags.weights, ",") {
		w, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, errors.Wrapf(advanced.ErrInvalidMask, "weight %q", field)
		}
		weights = append(weights, w)
	}
	return advanced.NewMask2D(weights...)
}

func readGrid(fs afero.Fs, path string) (*advanced.Grid2D[uint16], error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	defer f.Close()

	var img image.Image
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		img, err = tiff.Decode(f)
	default:
		img, err = png.Decode(f)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return advanced.GridFromImage(img), nil
}

func writeImage(fs afero.Fs, path string, img image.Image) error {
	f, err := fs.Create(path)
	if err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(f, img)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return errors.Wrapf(err, "encoding %s", path)
}

func finish(fs afero.Fs, stdout io.Writer, path string, result *image.Gray16, summary advanced.Summary, preview bool) error {
	if err := writeImage(fs, path, result); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s %s\n", aurora.Green("wrote"), path)
	fmt.Fprintf(stdout, "  reachable %d, unreachable %d\n", summary.Reachable, summary.Unreachable)
	if summary.Reachable > 0 {
		fmt.Fprintf(stdout, "  min %.4g, max %.4g, mean %.4g, stddev %.4g\n", summary.Min, summary.Max, summary.Mean, summary.StdDev)
	}
	if summary.Unreachable > 0 {
		fmt.Fprintln(stdout, aurora.Yellow("  some positions are unreachable"))
	}
	if preview {
		return advanced.Preview(advanced.Render2D(advanced.GridFromImage(result), 4), stdout)
	}
	return nil
}

// Names are the SVG color keywords, compared without case or spaces.
func parseColor(s string) (color.Color, error) {
	if c, ok := colornames.Map[strings.ToLower(strings.ReplaceAll(s, " ", ""))]; ok {
		return c, nil
	}
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return nil, errors.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid color %q", s)
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, nil
}
