package main

import (
	"context"
	"io"
	"math"
	"os"
	"time"

	"github.com/paulmach/orb"
	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/cbers4asat/internal/config"
	"github.com/robert-malhotra/cbers4asat/pkg/cbers"
	"github.com/robert-malhotra/cbers4asat/pkg/client"
	"github.com/robert-malhotra/cbers4asat/pkg/geometry"
	"github.com/robert-malhotra/cbers4asat/pkg/query"
)

const (
	geometryFlag    = "geometry"
	idFlag          = "id"
	collectionsFlag = "collections"
	startFlag       = "start"
	endFlag         = "end"
	cloudFlag       = "cloud"
	limitFlag       = "limit"
	pathFlag        = "path"
	rowFlag         = "row"
	saveFlag        = "save"
	outputFlag      = "output"
	formatFlag      = "format"
)

// areaFlags may not be combined with --id.
var areaFlags = []string{geometryFlag, collectionsFlag, startFlag, endFlag, cloudFlag, limitFlag, pathFlag, rowFlag}

func searchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    geometryFlag,
			Aliases: []string{"g"},
			Usage:   "GeoJSON file holding the search polygons, - for stdin",
		},
		&cli.StringFlag{
			Name:  idFlag,
			Usage: "look up a single scene by identifier",
		},
		&cli.StringSliceFlag{
			Name:    collectionsFlag,
			Aliases: []string{"c"},
			Usage:   "restrict the search to these collections",
		},
		&cli.StringFlag{
			Name:  startFlag,
			Usage: "first day of the search window (YYYY-MM-DD), defaults to a week before --end",
		},
		&cli.StringFlag{
			Name:  endFlag,
			Usage: "last day of the search window (YYYY-MM-DD), defaults to today",
		},
		&cli.IntFlag{
			Name:  cloudFlag,
			Usage: "maximum cloud cover in percent (0-100)",
			Value: int(query.DefaultCloudCover),
		},
		&cli.IntFlag{
			Name:  limitFlag,
			Usage: "maximum number of scenes per polygon",
			Value: int(query.DefaultLimit),
		},
		&cli.IntFlag{
			Name:  pathFlag,
			Usage: "orbit path, requires --row",
		},
		&cli.IntFlag{
			Name:  rowFlag,
			Usage: "orbit row, requires --path",
		},
		&cli.BoolFlag{
			Name:  saveFlag,
			Usage: "save the result as a GeoJSON file",
		},
		&cli.StringFlag{
			Name:    outputFlag,
			Aliases: []string{"o"},
			Usage:   "directory for --save, defaults to the working directory",
		},
		&cli.StringFlag{
			Name:  formatFlag,
			Usage: "output format: text or json",
			Value: formatText,
		},
	}
}

func searchAction(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	if cmd.Args().Len() != 0 {
		return usageErrorf("no arguments expected, got %q", cmd.Args().Slice())
	}

	format := cmd.String(formatFlag)
	if format != formatText && format != formatJSON {
		return usageErrorf("--%s must be %s or %s, got %q", formatFlag, formatText, formatJSON, format)
	}

	var run func(*cbers.Service) (*client.FeatureCollection, error)
	switch {
	case cmd.IsSet(idFlag):
		for _, name := range areaFlags {
			if cmd.IsSet(name) {
				return usageErrorf("--%s cannot be combined with --%s", idFlag, name)
			}
		}
		id := cmd.String(idFlag)
		run = func(svc *cbers.Service) (*client.FeatureCollection, error) {
			return svc.SearchID(ctx, id)
		}

	case cmd.IsSet(geometryFlag):
		opts, err := searchOptions(cmd)
		if err != nil {
			return err
		}
		areas, err := readAreas(cmd)
		if err != nil {
			return err
		}
		run = func(svc *cbers.Service) (*client.FeatureCollection, error) {
			return svc.SearchArea(ctx, areas, opts)
		}

	default:
		return usageErrorf("one of --%s or --%s is required", geometryFlag, idFlag)
	}

	svc, err := newService(cmd, cfg)
	if err != nil {
		return err
	}
	fc, err := run(svc)
	if err != nil {
		return err
	}

	out := cmd.Root().Writer
	if cmd.Bool(saveFlag) {
		if err := saveResult(out, cmd.String(outputFlag), fc, time.Now()); err != nil {
			return err
		}
	}
	if format == formatJSON {
		return printJSON(out, fc)
	}
	return printText(out, fc)
}

// searchOptions validates the area flags. Only flags set on the command line
// are carried; the rest take the query builder defaults.
func searchOptions(cmd *cli.Command) (cbers.Options, error) {
	var opts cbers.Options

	if cmd.IsSet(collectionsFlag) {
		opts.Collections = cmd.StringSlice(collectionsFlag)
	}
	if cmd.IsSet(startFlag) {
		t, err := query.ParseDate(cmd.String(startFlag))
		if err != nil {
			return opts, usageErrorf("--%s: %v", startFlag, err)
		}
		opts.Start = &t
	}
	if cmd.IsSet(endFlag) {
		t, err := query.ParseDate(cmd.String(endFlag))
		if err != nil {
			return opts, usageErrorf("--%s: %v", endFlag, err)
		}
		opts.End = &t
	}
	// A lone --end anchors the window on itself rather than on today, so a
	// past end date still yields a DefaultWindowDays window.
	if opts.End != nil && opts.Start == nil {
		start := opts.End.AddDate(0, 0, -query.DefaultWindowDays)
		opts.Start = &start
	}
	if opts.Start != nil {
		end := time.Now()
		if opts.End != nil {
			end = *opts.End
		}
		if err := query.ValidateRange(*opts.Start, end); err != nil {
			return opts, usageErrorf("%v", err)
		}
	}

	if cmd.IsSet(cloudFlag) {
		v := int(cmd.Int(cloudFlag))
		// Anything above 100 disables cloud filtering, as 100 does.
		if v < 0 || v > math.MaxUint8 {
			return opts, usageErrorf("--%s must be between 0 and %d, got %d", cloudFlag, math.MaxUint8, v)
		}
		cloud := uint8(v)
		opts.CloudCover = &cloud
	}
	if cmd.IsSet(limitFlag) {
		v := int(cmd.Int(limitFlag))
		if v < 1 || v > math.MaxUint16 {
			return opts, usageErrorf("--%s must be between 1 and %d, got %d", limitFlag, math.MaxUint16, v)
		}
		limit := uint16(v)
		opts.Limit = &limit
	}

	if cmd.IsSet(pathFlag) != cmd.IsSet(rowFlag) {
		return opts, usageErrorf("--%s and --%s must be given together", pathFlag, rowFlag)
	}
	if cmd.IsSet(pathFlag) {
		path, row := int(cmd.Int(pathFlag)), int(cmd.Int(rowFlag))
		opts.Path, opts.Row = &path, &row
	}
	return opts, nil
}

// readAreas loads the --geometry file, or stdin for "-".
func readAreas(cmd *cli.Command) ([]orb.Geometry, error) {
	name := cmd.String(geometryFlag)

	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(cmd.Root().Reader)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, usageErrorf("reading %s: %v", name, err)
	}

	areas, err := geometry.ReadAreas(data)
	if err != nil {
		return nil, usageErrorf("%s: %v", name, err)
	}
	if len(areas) == 0 {
		return nil, usageErrorf("%s holds no geometries", name)
	}
	return areas, nil
}
