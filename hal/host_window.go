//go:build cgo

package hal

import (
	"oscope/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow opens a resizable desktop window that displays the framebuffer
// and forwards keyboard input. It blocks until the window closes.
func RunWindow(newApp func(HAL) App, width, height int) error {
	h := newHost(width, height, false)
	app := newApp(h)
	if app.Close != nil {
		defer app.Close()
	}

	g := &hostGame{h: h, step: app.Step}
	w, ht := h.disp.Size()
	ebiten.SetWindowTitle("oscope (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(w, ht)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	fbImg   *ebiten.Image
	scratch []byte
	seq     uint64
	step    func() error
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.disp.fb
	w, h := fb.Width(), fb.Height()
	if w == 0 || h == 0 {
		return
	}
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != w || g.fbImg.Bounds().Dy() != h {
		g.scratch = make([]byte, w*h*4)
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
		g.seq = 0
	}

	if seq, sw, sh, ok := fb.snapshot(g.scratch, g.seq); ok && sw == w && sh == h {
		g.seq = seq
		g.fbImg.WritePixels(g.scratch)
	}
	screen.DrawImage(g.fbImg, nil)
}

// Layout makes the logical size follow the window; the application resizes
// the framebuffer to match on its next frame.
func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.h.disp.setSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
