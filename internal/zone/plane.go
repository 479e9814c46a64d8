package zone

import (
	"github.com/google/uuid"

	"github.com/banshee-data/guv.calcs/internal/geometry"
	"github.com/banshee-data/guv.calcs/internal/irradiance"
)

// PlaneConfig describes a horizontal sampling plane. Nil fields take the
// package defaults; an empty ID is replaced with a random UUID.
type PlaneConfig struct {
	ID       string   `json:"zone_id" yaml:"zone_id"`
	Name     *string  `json:"name,omitempty" yaml:"name,omitempty"`
	X1       *float64 `json:"x1,omitempty" yaml:"x1,omitempty"`
	X2       *float64 `json:"x2,omitempty" yaml:"x2,omitempty"`
	Y1       *float64 `json:"y1,omitempty" yaml:"y1,omitempty"`
	Y2       *float64 `json:"y2,omitempty" yaml:"y2,omitempty"`
	Height   *float64 `json:"height,omitempty" yaml:"height,omitempty"`
	XSpacing *float64 `json:"x_spacing,omitempty" yaml:"x_spacing,omitempty"`
	YSpacing *float64 `json:"y_spacing,omitempty" yaml:"y_spacing,omitempty"`
	Offset   *bool    `json:"offset,omitempty" yaml:"offset,omitempty"`
	FOV80    *bool    `json:"fov80,omitempty" yaml:"fov80,omitempty"`
	Vert     *bool    `json:"vert,omitempty" yaml:"vert,omitempty"`
	Horiz    *bool    `json:"horiz,omitempty" yaml:"horiz,omitempty"`
	Dose     *bool    `json:"dose,omitempty" yaml:"dose,omitempty"`
	Hours    *float64 `json:"hours,omitempty" yaml:"hours,omitempty"`
	Visible  *bool    `json:"visible,omitempty" yaml:"visible,omitempty"`
}

// Plane samples a rectangle at constant height.
type Plane struct {
	base
	x, y     Range
	height   float64
	xSpacing float64
	ySpacing float64
}

var _ Zone = (*Plane)(nil)

// NewPlane builds a plane from cfg.
func NewPlane(cfg PlaneConfig) (*Plane, error) {
	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}
	p := &Plane{
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
		x:        Range{Min: valueOr(cfg.X1, defaultX.Min), Max: valueOr(cfg.X2, defaultX.Max)},
		y:        Range{Min: valueOr(cfg.Y1, defaultY.Min), Max: valueOr(cfg.Y2, defaultY.Max)},
		height:   valueOr(cfg.Height, DefaultHeight),
		xSpacing: valueOr(cfg.XSpacing, DefaultSpacing),
		ySpacing: valueOr(cfg.YSpacing, DefaultSpacing),
	}
	if err := p.validate(p.x, p.y, p.height, p.xSpacing, p.ySpacing); err != nil {
		return nil, err
	}
	if err := checkHours(id, p.hours); err != nil {
		return nil, err
	}
	p.warnOptions()
	p.update()
	return p, nil
}

func (p *Plane) validate(x, y Range, height, xs, ys float64) error {
	if err := checkRange(p.id, "x", x.Min, x.Max); err != nil {
		return err
	}
	if err := checkRange(p.id, "y", y.Min, y.Max); err != nil {
		return err
	}
	if err := checkFinite(p.id, "height", height); err != nil {
		return err
	}
	if err := checkSpacing(p.id, "x_spacing", xs); err != nil {
		return err
	}
	if err := checkSpacing(p.id, "y_spacing", ys); err != nil {
		return err
	}
	return checkSamples(p.id,
		[]float64{axisCount(x, xs), axisCount(y, ys)},
		[]string{"x_spacing", "y_spacing"},
		[]float64{xs, ys})
}

func (p *Plane) update() {
	p.setGrid(newPlaneGrid(p.x, p.y, p.height, p.xSpacing, p.ySpacing, p.offset))
}

// Kind returns KindPlane.
func (p *Plane) Kind() Kind { return KindPlane }

// Height returns the plane height.
func (p *Plane) Height() float64 { return p.height }

// Spacing returns the x and y sample steps.
func (p *Plane) Spacing() (xs, ys float64) { return p.xSpacing, p.ySpacing }

// Bounds returns the corners of the plane; both share the plane height.
func (p *Plane) Bounds() (lo, hi geometry.Vec3) {
	return geometry.Vec3{X: p.x.Min, Y: p.y.Min, Z: p.height},
		geometry.Vec3{X: p.x.Max, Y: p.y.Max, Z: p.height}
}

// SetDimensions replaces the x and y extent.
func (p *Plane) SetDimensions(x, y Range) error {
	if err := p.validate(x, y, p.height, p.xSpacing, p.ySpacing); err != nil {
		return err
	}
	p.x, p.y = x, y
	p.update()
	return nil
}

// SetHeight moves the plane.
func (p *Plane) SetHeight(height float64) error {
	if err := checkFinite(p.id, "height", height); err != nil {
		return err
	}
	p.height = height
	p.update()
	return nil
}

// SetSpacing replaces the x and y sample steps.
func (p *Plane) SetSpacing(xs, ys float64) error {
	if err := p.validate(p.x, p.y, p.height, xs, ys); err != nil {
		return err
	}
	p.xSpacing, p.ySpacing = xs, ys
	p.update()
	return nil
}

// SetOffset switches between cell-centre and boundary-inclusive sampling.
func (p *Plane) SetOffset(offset bool) {
	p.offset = offset
	p.update()
}
