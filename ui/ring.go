package ui

import (
	"image/color"
	"math"

	"RingTimer/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// TimeRing is a circular progress indicator filled to TimeLeft/TimeLimit,
// with Content centered inside it. It has no state of its own.
type TimeRing struct {
	widget.BaseWidget

	TimeLimit float64
	TimeLeft  float64
	Color     color.Color
	Content   fyne.CanvasObject

	// Label is the accessible description of the ring.
	Label string
}

// NewTimeRing creates a ring with the given limit, value, color and content.
func NewTimeRing(limit, left float64, c color.Color, content fyne.CanvasObject) *TimeRing {
	r := &TimeRing{TimeLimit: limit, TimeLeft: left, Color: c, Content: content}
	r.ExtendBaseWidget(r)
	return r
}

// Fraction is the filled part of the ring, clamped to [0, 1].
func (r *TimeRing) Fraction() float64 {
	return timer.Fraction(r.TimeLeft, r.TimeLimit)
}

// SetValues updates the ring inputs and refreshes it.
func (r *TimeRing) SetValues(limit, left float64, c color.Color) {
	r.TimeLimit = limit
	r.TimeLeft = left
	r.Color = c
	r.Refresh()
}

func (r *TimeRing) CreateRenderer() fyne.WidgetRenderer {
	r.ExtendBaseWidget(r)
	rr := &ringRenderer{ring: r}
	rr.raster = canvas.NewRasterWithPixels(r.pixel)
	rr.center = container.New(layout.NewCenterLayout())
	if r.Content != nil {
		rr.center.Add(r.Content)
	}
	return rr
}

// pixel paints the ring band. Angles are measured clockwise from 12 o'clock.
func (r *TimeRing) pixel(x, y, w, h int) color.Color {
	cx, cy := float64(w)/2, float64(h)/2
	outer := math.Min(cx, cy)
	inner := outer * (1 - timer.RingThickness)

	dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
	dist := math.Hypot(dx, dy)
	if dist > outer || dist < inner {
		return color.Transparent
	}

	c := r.Color
	if c == nil {
		c = color.White
	}

	angle := math.Atan2(dx, -dy)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	if angle/(2*math.Pi) < r.Fraction() {
		return c
	}
	return withAlpha(c, timer.TrackAlpha)
}

type ringRenderer struct {
	ring   *TimeRing
	raster *canvas.Raster
	center *fyne.Container
}

func (rr *ringRenderer) Layout(size fyne.Size) {
	rr.raster.Resize(size)
	rr.raster.Move(fyne.NewPos(0, 0))
	rr.center.Resize(size)
	rr.center.Move(fyne.NewPos(0, 0))
}

func (rr *ringRenderer) MinSize() fyne.Size {
	size := fyne.NewSize(timer.RingSize, timer.RingSize)
	if rr.ring.Content != nil {
		size = size.Max(rr.ring.Content.MinSize())
	}
	return size
}

func (rr *ringRenderer) Refresh() {
	if len(rr.center.Objects) == 0 || rr.center.Objects[0] != rr.ring.Content {
		rr.center.Objects = nil
		if rr.ring.Content != nil {
			rr.center.Objects = []fyne.CanvasObject{rr.ring.Content}
		}
	}
	rr.raster.Refresh()
	rr.center.Refresh()
}

func (rr *ringRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{rr.raster, rr.center}
}

func (rr *ringRenderer) Destroy() {}

func withAlpha(c color.Color, alpha uint8) color.NRGBA {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha}
}
