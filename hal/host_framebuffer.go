package hal

import (
	"image"
	"sync"
)

type hostFramebuffer struct {
	mu        sync.Mutex
	img       *image.RGBA
	presented uint64
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	return &hostFramebuffer{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (f *hostFramebuffer) Width() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.img.Rect.Dx()
}

func (f *hostFramebuffer) Height() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.img.Rect.Dy()
}

func (f *hostFramebuffer) Image() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.img
}

func (f *hostFramebuffer) Resize(w, h int) {
	if w < 0 || h < 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.img.Rect.Dx() == w && f.img.Rect.Dy() == h {
		return
	}
	f.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pix := f.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = r
		pix[i+1] = g
		pix[i+2] = b
		pix[i+3] = 0xff
	}
}

// Present marks the current contents as a finished frame.
func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	f.presented++
	f.mu.Unlock()
	return nil
}

// snapshot copies the last presented frame into dst when it is newer than
// seq. It returns the frame's sequence number and size.
func (f *hostFramebuffer) snapshot(dst []byte, seq uint64) (next uint64, w, h int, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, h = f.img.Rect.Dx(), f.img.Rect.Dy()
	if f.presented == seq || len(dst) < len(f.img.Pix) {
		return f.presented, w, h, false
	}
	copy(dst, f.img.Pix)
	return f.presented, w, h, true
}
