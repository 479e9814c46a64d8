// Command guvcalc computes UV irradiance and dose fields for a scenario file
// and prints per-zone statistics.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/banshee-data/guv.calcs/internal/config"
	"github.com/banshee-data/guv.calcs/internal/fsutil"
	"github.com/banshee-data/guv.calcs/internal/monitoring"
	"github.com/banshee-data/guv.calcs/internal/room"
	"github.com/banshee-data/guv.calcs/internal/version"
)

var (
	configPath  = flag.String("config", "", "Scenario file (.json, .yaml or .yml)")
	logLevel    = flag.String("log-level", "info", "Log level: debug, info, warn or error")
	logFile     = flag.String("log-file", "", "Also log to this file, rotated by size")
	csvDir      = flag.String("csv-dir", "", "Write <zone-id>.csv for every zone into this directory")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println("guvcalc", version.String())
		return
	}
	if *configPath == "" {
		log.Fatal("-config is required")
	}

	monitoring.Init(*logLevel, os.Stderr, *logFile)
	err := run(fsutil.OSFileSystem{}, *configPath, *csvDir, os.Stdout)
	monitoring.Sync()
	if err != nil {
		log.Fatalf("guvcalc: %v", err)
	}
}

// run loads the scenario at path, calculates every zone, writes a summary to
// out, and exports CSV files when csvDir is set.
func run(fsys fsutil.FileSystem, path, csvDir string, out io.Writer) error {
	scenario, err := config.LoadScenario(fsys, path)
	if err != nil {
		return err
	}
	r, err := scenario.Build()
	if err != nil {
		return err
	}

	start := time.Now()
	if err := r.Calculate(); err != nil {
		return err
	}
	monitoring.Logf("calculated %d zones from %d enabled lamps in %s",
		len(r.ZoneIDs()), len(r.Sources()), time.Since(start).Round(time.Millisecond))

	writeSummary(out, r)

	if csvDir == "" {
		return nil
	}
	if err := fsys.MkdirAll(csvDir, 0755); err != nil {
		return fmt.Errorf("failed to create csv directory: %w", err)
	}
	used := make(map[string]bool)
	for _, id := range r.ZoneIDs() {
		z, _ := r.Zone(id)
		name := filepath.Join(csvDir, uniqueCSVName(id, used))
		if err := writeZoneCSV(fsys, name, z); err != nil {
			return err
		}
		monitoring.Logf("wrote zone %s to %s", id, name)
	}
	return nil
}

func writeSummary(out io.Writer, r *room.Room) {
	fmt.Fprintf(out, "%-20s %-7s %-12s %-7s %12s %12s %12s %7s\n",
		"zone", "kind", "shape", "units", "mean", "min", "max", "masked")
	for _, id := range r.ZoneIDs() {
		z, _ := r.Zone(id)
		f := z.Values()
		fmt.Fprintf(out, "%-20s %-7s %-12s %-7s %12.4g %12.4g %12.4g %7d\n",
			id, z.Kind(), formatShape(f.Shape()), f.Units(), f.Mean(), f.Min(), f.Max(), f.Len()-f.Count())
	}
}

func formatShape(shape []int) string {
	parts := make([]string, len(shape))
	for i, n := range shape {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "x")
}

// csvFileName turns a zone ID into a file name that stays inside the output
// directory: anything other than ASCII letters, digits, dot, underscore or
// dash becomes a single underscore.
func csvFileName(id string) string {
	const maxLen = 128
	var b strings.Builder
	lastUnderscore := false
	for _, r := range id {
		if b.Len() >= maxLen {
			break
		}
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'),
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
			lastUnderscore = r == '_'
		case !lastUnderscore:
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	name := strings.Trim(b.String(), "._")
	if name == "" {
		name = "zone"
	}
	return name + ".csv"
}

// uniqueCSVName is csvFileName with a numeric suffix added when an earlier
// zone ID already sanitised to the same name. Chosen names are recorded in used.
func uniqueCSVName(id string, used map[string]bool) string {
	name := csvFileName(id)
	stem := strings.TrimSuffix(name, ".csv")
	for n := 2; used[name]; n++ {
		name = fmt.Sprintf("%s_%d.csv", stem, n)
	}
	used[name] = true
	return name
}
