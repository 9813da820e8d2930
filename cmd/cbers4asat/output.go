package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/robert-malhotra/cbers4asat/pkg/client"
	"github.com/robert-malhotra/cbers4asat/pkg/stac"
)

const (
	formatText = "text"
	formatJSON = "json"

	saveTimeLayout = "2006-01-02-15h04m05s"
)

// printText writes the scene listing.
func printText(w io.Writer, fc *client.FeatureCollection) error {
	if _, err := fmt.Fprintf(w, "%d scenes found\n---\n", fc.Len()); err != nil {
		return err
	}
	for _, item := range fc.Features {
		_, err := fmt.Fprintf(w, "Product %s - Date: %s, Sensor: %s, Satellite: %s, Cloud: %s%%, Path: %s, Row: %s, Collection: %s\n",
			item.Id,
			property(item, "datetime"),
			property(item, "sensor"),
			property(item, "satellite"),
			property(item, "cloud_cover"),
			property(item, "path"),
			property(item, "row"),
			item.Collection,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func property(item *stac.Item, key string) string {
	v, ok := item.Properties[key]
	if !ok || v == nil {
		return "-"
	}
	return fmt.Sprint(v)
}

// printJSON writes the scenes as a JSON array of summaries.
func printJSON(w io.Writer, fc *client.FeatureCollection) error {
	entries := make([][]byte, 0, fc.Len())
	for _, item := range fc.Features {
		summary, err := newSceneSummary(item)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		entries = append(entries, data)
	}
	return printJSONArray(w, entries)
}

func printJSONArray(w io.Writer, entries [][]byte) error {
	if _, err := fmt.Fprintln(w, "["); err != nil {
		return err
	}
	for i, entry := range entries {
		if i > 0 {
			if _, err := fmt.Fprintln(w, ","); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, string(entry)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "]")
	return err
}

// saveResult writes fc as GeoJSON into dir, or the working directory when
// dir is empty, and reports the file name on w. An empty result is not saved.
func saveResult(w io.Writer, dir string, fc *client.FeatureCollection, now time.Time) error {
	if fc.Len() == 0 {
		_, err := fmt.Fprintln(w, "Nothing to save.")
		return err
	}

	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("error reading working directory: %w", err)
		}
		dir = wd
	}

	name := saveFileName(now)
	data, err := json.Marshal(fc)
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return usageErrorf("error saving output: %v", err)
	}

	_, err = fmt.Fprintf(w, "---\nOutput file saved - %s\n", name)
	return err
}

func saveFileName(now time.Time) string {
	return "cbers4asat-" + now.Local().Format(saveTimeLayout) + ".geojson"
}
