package main

import (
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/banshee-data/guv.calcs/internal/fsutil"
	"github.com/banshee-data/guv.calcs/internal/zone"
)

// writeZoneCSV writes one row per sample: coordinates, value and whether
// the value is masked.
func writeZoneCSV(fsys fsutil.FileSystem, name string, z zone.Zone) error {
	f := z.Values()
	if f == nil {
		return fmt.Errorf("zone %q has no computed values", z.ID())
	}

	file, err := fsys.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}

	w := csv.NewWriter(file)
	coords := z.Grid().Coords()
	values, mask := f.Values(), f.Mask()

	rows := make([][]string, 0, len(values)+1)
	rows = append(rows, []string{"x", "y", "z", "value", "masked"})
	for i, v := range values {
		rows = append(rows, []string{
			formatFloat(coords.X[i]),
			formatFloat(coords.Y[i]),
			formatFloat(coords.Z[i]),
			formatFloat(v),
			strconv.FormatBool(mask[i]),
		})
	}
	if err := w.WriteAll(rows); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
