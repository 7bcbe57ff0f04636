//go:build cgo

package hal

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunWindow starts a desktop window that displays the framebuffer and forwards
// keyboard and mouse input. It blocks until the loop stops or the window closes.
func RunWindow(cfg HostConfig, newLoop func(*Host) (Loop, error)) error {
	h, err := New(cfg)
	if err != nil {
		return err
	}
	defer h.Close()

	h.win.onOpen = func(o WindowOptions) {
		ebiten.SetWindowTitle(o.Title)
		ebiten.SetWindowSize(o.Width, o.Height)
		ebiten.SetFullscreen(o.Fullscreen)
	}
	h.win.onFullscreen = ebiten.SetFullscreen

	loop, err := newLoop(h)
	if err != nil {
		return err
	}
	if !h.win.isOpen() {
		return errors.Join(ErrNoWindow, loop.Close())
	}

	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(60)

	g := &hostGame{h: h, loop: loop}
	runErr := ebiten.RunGame(g)
	if errors.Is(runErr, ebiten.Termination) {
		runErr = nil
	}
	return errors.Join(runErr, loop.Close())
}

type hostGame struct {
	h    *Host
	loop Loop

	img   *image.RGBA
	fbImg *ebiten.Image

	haveCursor bool
	cx, cy     int
}

func (g *hostGame) Update() error {
	g.poll()
	if err := g.loop.Step(); err != nil {
		if errors.Is(err, ErrStop) {
			return ebiten.Termination
		}
		return err
	}
	if g.h.win.Closed() {
		return ebiten.Termination
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.disp.framebuffer()
	if fb == nil {
		return
	}
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.toRGBA(g.img.Pix)
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if fb := g.h.disp.framebuffer(); fb != nil {
		return fb.width, fb.height
	}
	return outsideWidth, outsideHeight
}

var hostKeys = [...]struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyBackspace, KeyBackspace},
	{ebiten.KeyTab, KeyTab},
	{ebiten.KeyDelete, KeyDelete},
	{ebiten.KeyHome, KeyHome},
	{ebiten.KeyEnd, KeyEnd},
	{ebiten.KeyF1, KeyF1},
	{ebiten.KeyF2, KeyF2},
	{ebiten.KeyF3, KeyF3},
	{ebiten.KeyF11, KeyF11},
	{ebiten.KeySpace, KeySpace},
	{ebiten.KeyNumpad4, KeyNumpad4},
	{ebiten.KeyNumpad6, KeyNumpad6},
}

var hostButtons = [...]struct {
	btn ebiten.MouseButton
	b   MouseButton
}{
	{ebiten.MouseButtonLeft, MouseLeft},
	{ebiten.MouseButtonRight, MouseRight},
	{ebiten.MouseButtonMiddle, MouseMiddle},
}

func (g *hostGame) poll() {
	h := g.h

	if ebiten.IsWindowBeingClosed() {
		h.PostEvent(Event{Kind: EventClose})
	}
	h.SetMinimized(ebiten.IsWindowMinimized())

	for _, k := range hostKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			h.PostEvent(Event{Kind: EventKeyDown, Key: k.code})
		}
		h.SetKey(k.code, ebiten.IsKeyPressed(k.key))
	}

	for _, b := range hostButtons {
		if inpututil.IsMouseButtonJustPressed(b.btn) {
			h.PostEvent(Event{Kind: EventMouseDown, Button: b.b})
		}
		h.in.ms.button(b.b, ebiten.IsMouseButtonPressed(b.btn))
	}

	x, y := ebiten.CursorPosition()
	if g.haveCursor {
		h.MoveMouse(x-g.cx, y-g.cy)
	}
	g.cx, g.cy, g.haveCursor = x, y, true

	if _, wy := ebiten.Wheel(); wy != 0 {
		h.in.ms.wheel(int(wy))
	}
}
