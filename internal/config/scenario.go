// Package config loads calculation scenarios: a room, its lamps, and the
// zones to sample.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/banshee-data/guv.calcs/internal/fsutil"
	"github.com/banshee-data/guv.calcs/internal/lamp"
	"github.com/banshee-data/guv.calcs/internal/photometry"
	"github.com/banshee-data/guv.calcs/internal/room"
	"github.com/banshee-data/guv.calcs/internal/units"
	"github.com/banshee-data/guv.calcs/internal/zone"
)

// ExampleScenarioPath is the documented example scenario.
const ExampleScenarioPath = "config/scenario.example.json"

const maxFileSize = 1 * 1024 * 1024 // 1MB

// ErrInvalidScenario wraps every Validate failure.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is the root of a scenario file. Fields omitted from the file take
// the defaults of the Get* methods and of the lamp and zone configs.
type Scenario struct {
	Room    *RoomConfig         `json:"room,omitempty" yaml:"room,omitempty"`
	Lamps   []LampConfig        `json:"lamps,omitempty" yaml:"lamps,omitempty"`
	Planes  []zone.PlaneConfig  `json:"planes,omitempty" yaml:"planes,omitempty"`
	Volumes []zone.VolumeConfig `json:"volumes,omitempty" yaml:"volumes,omitempty"`
}

// RoomConfig holds the room extent and length unit.
type RoomConfig struct {
	X     *float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y     *float64 `json:"y,omitempty" yaml:"y,omitempty"`
	Z     *float64 `json:"z,omitempty" yaml:"z,omitempty"`
	Units *string  `json:"units,omitempty" yaml:"units,omitempty"`
}

// LampConfig is a lamp placement plus its intensity distribution.
type LampConfig struct {
	lamp.Config  `yaml:",inline"`
	Distribution DistributionConfig `json:"distribution" yaml:"distribution"`
}

// DistributionConfig is either a constant intensity or a table indexed
// [phi][theta]. Photometric files are not read; tables are given inline.
type DistributionConfig struct {
	Isotropic *float64    `json:"isotropic,omitempty" yaml:"isotropic,omitempty"`
	Thetas    []float64   `json:"thetas,omitempty" yaml:"thetas,omitempty"`
	Phis      []float64   `json:"phis,omitempty" yaml:"phis,omitempty"`
	Values    [][]float64 `json:"values,omitempty" yaml:"values,omitempty"`
}

// LoadScenario reads and validates a scenario file. The extension selects
// the format: .json, or .yaml/.yml.
func LoadScenario(fsys fsutil.FileSystem, path string) (*Scenario, error) {
	cleanPath := filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("scenario file must have .json, .yaml or .yml extension, got %q", ext)
	}

	info, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat scenario file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("scenario file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	s := &Scenario{}
	if ext == ".json" {
		err = json.Unmarshal(data, s)
	} else {
		err = yaml.Unmarshal(data, s)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", cleanPath, err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return s, nil
}

// GetRoom returns the room section, empty when omitted.
func (s *Scenario) GetRoom() *RoomConfig {
	if s.Room == nil {
		return &RoomConfig{}
	}
	return s.Room
}

// GetDimensions returns the room extent, defaulting to 6 x 4 x 2.7.
func (c *RoomConfig) GetDimensions() [3]float64 {
	return [3]float64{
		valueOr(c.X, 6.0),
		valueOr(c.Y, 4.0),
		valueOr(c.Z, 2.7),
	}
}

// GetUnits returns the length unit, defaulting to meters.
func (c *RoomConfig) GetUnits() string {
	return valueOr(c.Units, units.Meters)
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// Validate checks the parts of the scenario that can be checked without
// building it. Lamp and zone geometry is validated by Build.
func (s *Scenario) Validate() error {
	r := s.GetRoom()
	for i, d := range r.GetDimensions() {
		if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
			return fmt.Errorf("%w: room dimension %d must be a positive number, got %g", ErrInvalidScenario, i, d)
		}
	}
	if u := r.GetUnits(); !units.IsValidLength(u) {
		return fmt.Errorf("%w: room units %q must be one of: %s", ErrInvalidScenario, u, units.GetValidLengthUnitsString())
	}

	lampIDs := make(map[string]bool)
	for i, l := range s.Lamps {
		if l.ID != "" {
			if lampIDs[l.ID] {
				return fmt.Errorf("%w: duplicate lamp id %q", ErrInvalidScenario, l.ID)
			}
			lampIDs[l.ID] = true
		}
		if l.IntensityUnits != nil && !units.IsValidIntensity(*l.IntensityUnits) {
			return fmt.Errorf("%w: lamp %d: unknown intensity units %q", ErrInvalidScenario, i, *l.IntensityUnits)
		}
		if err := l.Distribution.Validate(); err != nil {
			return fmt.Errorf("%w: lamp %d: %v", ErrInvalidScenario, i, err)
		}
	}

	zoneIDs := make(map[string]bool)
	checkZone := func(id string) error {
		if id == "" {
			return nil
		}
		if zoneIDs[id] {
			return fmt.Errorf("%w: duplicate zone id %q", ErrInvalidScenario, id)
		}
		zoneIDs[id] = true
		return nil
	}
	for _, p := range s.Planes {
		if err := checkZone(p.ID); err != nil {
			return err
		}
	}
	for _, v := range s.Volumes {
		if err := checkZone(v.ID); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks that exactly one distribution form is given.
func (d DistributionConfig) Validate() error {
	table := d.Thetas != nil || d.Phis != nil || d.Values != nil
	switch {
	case d.Isotropic != nil && table:
		return errors.New("distribution must be isotropic or a table, not both")
	case d.Isotropic != nil:
		if v := *d.Isotropic; math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("isotropic intensity must be a non-negative number, got %g", v)
		}
	case !table:
		return errors.New("distribution is missing")
	}
	return nil
}

// Build returns the distribution described by d.
func (d DistributionConfig) Build() (photometry.Distribution, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if d.Isotropic != nil {
		return photometry.Isotropic{Value: *d.Isotropic}, nil
	}
	return photometry.NewTable(d.Thetas, d.Phis, d.Values)
}

// Build creates the room with every lamp and zone of the scenario.
func (s *Scenario) Build() (*room.Room, error) {
	r := s.GetRoom()
	rm, err := room.New(r.GetDimensions(), r.GetUnits())
	if err != nil {
		return nil, err
	}

	for i, lc := range s.Lamps {
		dist, err := lc.Distribution.Build()
		if err != nil {
			return nil, fmt.Errorf("lamp %d: %w", i, err)
		}
		l, err := lamp.New(lc.Config, dist)
		if err != nil {
			return nil, fmt.Errorf("lamp %d: %w", i, err)
		}
		rm.AddLamp(l)
	}
	for _, pc := range s.Planes {
		p, err := zone.NewPlane(pc)
		if err != nil {
			return nil, err
		}
		rm.AddZone(p)
	}
	for _, vc := range s.Volumes {
		v, err := zone.NewVolume(vc)
		if err != nil {
			return nil, err
		}
		rm.AddZone(v)
	}
	return rm, nil
}
