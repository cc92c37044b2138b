package app

import (
	"fmt"
	"image/color"

	"oscope/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

var (
	colorHUD   = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	colorHUDBG = color.RGBA{R: 0x18, G: 0x18, B: 0x18, A: 0xff}
	colorPause = color.RGBA{R: 0xff, G: 0xdd, B: 0x66, A: 0xff}
)

// fbDisplay lets tinyfont draw into a hal.Framebuffer.
type fbDisplay struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*fbDisplay)(nil)

func (d *fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil {
		return
	}
	img := d.fb.Image()
	if img == nil {
		return
	}
	ix, iy := int(x), int(y)
	if ix < 0 || iy < 0 || ix >= img.Rect.Dx() || iy >= img.Rect.Dy() {
		return
	}
	img.SetRGBA(ix, iy, c)
}

// Display is a no-op; the frame is presented once the HUD is drawn.
func (d *fbDisplay) Display() error { return nil }

func (d *fbDisplay) fillRect(x, y, w, h int, c color.RGBA) {
	img := d.fb.Image()
	if img == nil {
		return
	}
	b := img.Rect
	for yy := max(y, b.Min.Y); yy < min(y+h, b.Max.Y); yy++ {
		for xx := max(x, b.Min.X); xx < min(x+w, b.Max.X); xx++ {
			img.SetRGBA(xx, yy, c)
		}
	}
}

const (
	hudPad     = 2
	hudLineH   = 7
	hudBaseOff = 5
)

// hud draws the status lines in the top left corner.
type hud struct {
	d    fbDisplay
	font tinyfont.Fonter
}

func newHUD(fb hal.Framebuffer) *hud {
	return &hud{d: fbDisplay{fb: fb}, font: &tinyfont.TomThumb}
}

type hudState struct {
	rate    float64
	mode    string
	multi   string
	spp     float64
	running bool
	detail  string
}

func (s hudState) lines() []string {
	head := fmt.Sprintf("%.0f fps  %s  %s  spp %g", s.rate, s.mode, s.multi, s.spp)
	if !s.running {
		head += "  paused"
	}
	if s.detail == "" {
		return []string{head}
	}
	return []string{head, s.detail}
}

func (h *hud) draw(s hudState) {
	lines := s.lines()
	width := 0
	for _, l := range lines {
		_, w := tinyfont.LineWidth(h.font, l)
		width = max(width, int(w))
	}
	h.d.fillRect(0, 0, width+2*hudPad, len(lines)*hudLineH+2*hudPad, colorHUDBG)

	c := colorHUD
	if !s.running {
		c = colorPause
	}
	for i, l := range lines {
		y := int16(hudPad + i*hudLineH + hudBaseOff)
		tinyfont.WriteLine(&h.d, h.font, hudPad, y, l, c)
	}
}
