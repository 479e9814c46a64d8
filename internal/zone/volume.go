package zone

import (
	"github.com/google/uuid"

	"github.com/banshee-data/guv.calcs/internal/geometry"
	"github.com/banshee-data/guv.calcs/internal/irradiance"
)

// VolumeConfig describes a box of samples. Nil fields take the package
// defaults; an empty ID is replaced with a random UUID.
type VolumeConfig struct {
	ID       string   `json:"zone_id" yaml:"zone_id"`
	Name     *string  `json:"name,omitempty" yaml:"name,omitempty"`
	X1       *float64 `json:"x1,omitempty" yaml:"x1,omitempty"`
	X2       *float64 `json:"x2,omitempty" yaml:"x2,omitempty"`
	Y1       *float64 `json:"y1,omitempty" yaml:"y1,omitempty"`
	Y2       *float64 `json:"y2,omitempty" yaml:"y2,omitempty"`
	Z1       *float64 `json:"z1,omitempty" yaml:"z1,omitempty"`
	Z2       *float64 `json:"z2,omitempty" yaml:"z2,omitempty"`
	XSpacing *float64 `json:"x_spacing,omitempty" yaml:"x_spacing,omitempty"`
	YSpacing *float64 `json:"y_spacing,omitempty" yaml:"y_spacing,omitempty"`
	ZSpacing *float64 `json:"z_spacing,omitempty" yaml:"z_spacing,omitempty"`
	Offset   *bool    `json:"offset,omitempty" yaml:"offset,omitempty"`
	FOV80    *bool    `json:"fov80,omitempty" yaml:"fov80,omitempty"`
	Vert     *bool    `json:"vert,omitempty" yaml:"vert,omitempty"`
	Horiz    *bool    `json:"horiz,omitempty" yaml:"horiz,omitempty"`
	Dose     *bool    `json:"dose,omitempty" yaml:"dose,omitempty"`
	Hours    *float64 `json:"hours,omitempty" yaml:"hours,omitempty"`
	Visible  *bool    `json:"visible,omitempty" yaml:"visible,omitempty"`
}

// Spacing3 holds one sample step per axis.
type Spacing3 struct {
	X, Y, Z float64
}

// Volume samples an axis-aligned box.
type Volume struct {
	base
	x, y, z Range
	spacing Spacing3
}

var _ Zone = (*Volume)(nil)

// NewVolume builds a volume from cfg.
func NewVolume(cfg VolumeConfig) (*Volume, error) {
	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}
	v := &Volume{
		base: base{
			id:      id,
			name:    valueOr(cfg.Name, id),
			visible: valueOr(cfg.Visible, true),
			offset:  valueOr(cfg.Offset, true),
			opts: irradiance.Options{
				FOV:        valueOr(cfg.FOV80, false),
				Vertical:   valueOr(cfg.Vert, false),
				Horizontal: valueOr(cfg.Horiz, false),
			},
			dose:  valueOr(cfg.Dose, false),
			hours: valueOr(cfg.Hours, DefaultHours),
		},
		x: Range{Min: valueOr(cfg.X1, defaultX.Min), Max: valueOr(cfg.X2, defaultX.Max)},
		y: Range{Min: valueOr(cfg.Y1, defaultY.Min), Max: valueOr(cfg.Y2, defaultY.Max)},
		z: Range{Min: valueOr(cfg.Z1, defaultZ.Min), Max: valueOr(cfg.Z2, defaultZ.Max)},
		spacing: Spacing3{
			X: valueOr(cfg.XSpacing, DefaultSpacing),
			Y: valueOr(cfg.YSpacing, DefaultSpacing),
			Z: valueOr(cfg.ZSpacing, DefaultSpacing),
		},
	}
	if err := v.validate(v.x, v.y, v.z, v.spacing); err != nil {
		return nil, err
	}
	if err := checkHours(id, v.hours); err != nil {
		return nil, err
	}
	v.warnOptions()
	v.update()
	return v, nil
}

func (v *Volume) validate(x, y, z Range, s Spacing3) error {
	for _, r := range []struct {
		axis string
		r    Range
	}{{"x", x}, {"y", y}, {"z", z}} {
		if err := checkRange(v.id, r.axis, r.r.Min, r.r.Max); err != nil {
			return err
		}
	}
	if err := checkSpacing(v.id, "x_spacing", s.X); err != nil {
		return err
	}
	if err := checkSpacing(v.id, "y_spacing", s.Y); err != nil {
		return err
	}
	if err := checkSpacing(v.id, "z_spacing", s.Z); err != nil {
		return err
	}
	return checkSamples(v.id,
		[]float64{axisCount(x, s.X), axisCount(y, s.Y), axisCount(z, s.Z)},
		[]string{"x_spacing", "y_spacing", "z_spacing"},
		[]float64{s.X, s.Y, s.Z})
}

func (v *Volume) update() {
	v.setGrid(newVolumeGrid(v.x, v.y, v.z, v.spacing.X, v.spacing.Y, v.spacing.Z, v.offset))
}

// Kind returns KindVolume.
func (v *Volume) Kind() Kind { return KindVolume }

// Spacing returns the per-axis sample steps.
func (v *Volume) Spacing() Spacing3 { return v.spacing }

// Bounds returns the low and high corners of the box.
func (v *Volume) Bounds() (lo, hi geometry.Vec3) {
	return geometry.Vec3{X: v.x.Min, Y: v.y.Min, Z: v.z.Min},
		geometry.Vec3{X: v.x.Max, Y: v.y.Max, Z: v.z.Max}
}

// SetDimensions replaces the extent on all three axes.
func (v *Volume) SetDimensions(x, y, z Range) error {
	if err := v.validate(x, y, z, v.spacing); err != nil {
		return err
	}
	v.x, v.y, v.z = x, y, z
	v.update()
	return nil
}

// SetSpacing replaces the per-axis sample steps.
func (v *Volume) SetSpacing(s Spacing3) error {
	if err := v.validate(v.x, v.y, v.z, s); err != nil {
		return err
	}
	v.spacing = s
	v.update()
	return nil
}

// SetOffset switches between cell-centre and boundary-inclusive sampling.
func (v *Volume) SetOffset(offset bool) {
	v.offset = offset
	v.update()
}
