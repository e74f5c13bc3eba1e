package ui

import (
	"fmt"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"nitro-core-dx/internal/emulator"
	"nitro-core-dx/internal/ppu"
)

// buttonOrder matches the set_buttons(machine, mask) bit layout
// (buttonBits in internal/emulator): Right, Left, Up, Down, A, B, Select,
// Start. The key name at index i maps to bit i of the mask.
var buttonOrder = []string{"right", "left", "up", "down", "a", "b", "select", "start"}

// defaultKeyNames is the built-in keymap, used when the host gives no
// override. Names are SDL scancode names (sdl.GetScancodeFromName).
var defaultKeyNames = map[string]string{
	"right":  "Right",
	"left":   "Left",
	"up":     "Up",
	"down":   "Down",
	"a":      "Z",
	"b":      "X",
	"select": "RShift",
	"start":  "Return",
}

// buildKeymap resolves a button-name -> scancode-name map (as loaded
// from internal/config) into the scancode -> mask-bit table updateInput
// scans every frame. An unresolvable or missing binding falls back to
// defaultKeyNames for that button.
func buildKeymap(bindings map[string]string) map[sdl.Scancode]uint8 {
	keymap := make(map[sdl.Scancode]uint8, len(buttonOrder))
	for i, name := range buttonOrder {
		keyName, ok := bindings[name]
		if !ok || keyName == "" {
			keyName = defaultKeyNames[name]
		}
		scancode := sdl.GetScancodeFromName(keyName)
		if scancode == sdl.SCANCODE_UNKNOWN {
			scancode = sdl.GetScancodeFromName(defaultKeyNames[name])
		}
		keymap[scancode] = 1 << uint(i)
	}
	return keymap
}

// UI owns the host window, renderer, and audio device presenting a
// running Machine. It has no knowledge of CPU, PPU, or APU internals --
// it only calls the Machine's public frame/audio/input surface.
type UI struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	machine  *emulator.Machine
	running  bool
	scale    int
	audioDev sdl.AudioDeviceID
	keymap   map[sdl.Scancode]uint8
}

// NewUI opens a window sized to the DMG's 160x144 screen at scale and
// wires up an SDL audio device for the Machine's APU output, using the
// built-in key bindings.
func NewUI(m *emulator.Machine, scale int) (*UI, error) {
	return NewUIWithKeyBindings(m, scale, nil)
}

// NewUIWithKeyBindings is NewUI but lets the host override which key
// drives each joypad button, keyed by the same button names
// internal/config.Config.KeyBindings uses ("right", "a", "start", ...).
func NewUIWithKeyBindings(m *emulator.Machine, scale int, keyBindings map[string]string) (*UI, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("failed to initialize SDL: %w", err)
	}

	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "0")

	width := int32(ppu.ScreenWidth * scale)
	height := int32(ppu.ScreenHeight * scale)

	window, err := sdl.CreateWindow(
		"nitro-core-dx",
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		width,
		height,
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_ARGB8888,
		sdl.TEXTUREACCESS_STREAMING,
		int32(ppu.ScreenWidth),
		int32(ppu.ScreenHeight),
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to create texture: %w", err)
	}

	audioSpec := sdl.AudioSpec{
		Freq:     44100,
		Format:   sdl.AUDIO_S16SYS,
		Channels: 2,
		Samples:  1024,
	}
	audioDev, err := sdl.OpenAudioDevice("", false, &audioSpec, nil, 0)
	if err != nil {
		fmt.Printf("audio device unavailable, running silent: %v\n", err)
		audioDev = 0
	} else {
		sdl.PauseAudioDevice(audioDev, false)
	}

	return &UI{
		window:   window,
		renderer: renderer,
		texture:  texture,
		machine:  m,
		running:  true,
		scale:    scale,
		audioDev: audioDev,
		keymap:   buildKeymap(keyBindings),
	}, nil
}

// Run drives the main loop: poll input, advance one Machine frame, push
// its audio and video output to the host, repeat until quit.
func (u *UI) Run() error {
	defer u.Cleanup()

	audioBuf := make([]int16, 2*1024)

	for u.running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if err := u.handleEvent(event); err != nil {
				return err
			}
		}

		u.updateInput()

		if err := u.machine.RunFrame(60); err != nil {
			return fmt.Errorf("emulation error: %w", err)
		}

		if u.audioDev != 0 {
			n := u.machine.AudioPull(audioBuf)
			if n > 0 {
				maxQueued := uint32(len(audioBuf) * 2 * 2)
				if sdl.GetQueuedAudioSize(u.audioDev) < maxQueued {
					bytes := int16SliceToBytes(audioBuf[:n])
					if err := sdl.QueueAudio(u.audioDev, bytes); err != nil {
						fmt.Printf("audio queue error: %v\n", err)
					}
				}
			}
		}

		if err := u.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
	}

	return nil
}

func int16SliceToBytes(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		out[i*2] = byte(s)
		out[i*2+1] = byte(s >> 8)
	}
	return out
}

func (u *UI) handleEvent(event sdl.Event) error {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		u.running = false
	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
			u.running = false
		}
		if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_r && sdl.GetModState()&sdl.KMOD_CTRL != 0 {
			u.machine.Reset()
		}
	}
	return nil
}

// updateInput samples the whole keyboard every frame and forwards the
// result as one set_buttons mask, rather than tracking edges ourselves --
// SetButtons already diffs against the joypad's latched state.
func (u *UI) updateInput() {
	keys := sdl.GetKeyboardState()
	var mask uint8
	for scancode, bit := range u.keymap {
		if keys[scancode] != 0 {
			mask |= bit
		}
	}
	u.machine.SetButtons(mask)
}

// render uploads the Machine's ARGB8888 framebuffer to the texture and
// presents it scaled to the window, preserving nearest-neighbor pixels.
func (u *UI) render() error {
	buf := u.machine.FrameBuffer()
	pitch := ppu.ScreenWidth * 4
	if err := u.texture.Update(nil, unsafe.Pointer(&buf[0]), pitch); err != nil {
		return fmt.Errorf("failed to update texture: %w", err)
	}

	u.renderer.Clear()
	if err := u.renderer.Copy(u.texture, nil, nil); err != nil {
		return fmt.Errorf("failed to copy texture: %w", err)
	}
	u.renderer.Present()
	return nil
}

// Cleanup releases every SDL resource NewUI opened.
func (u *UI) Cleanup() {
	if u.audioDev != 0 {
		sdl.CloseAudioDevice(u.audioDev)
	}
	if u.texture != nil {
		u.texture.Destroy()
	}
	if u.renderer != nil {
		u.renderer.Destroy()
	}
	if u.window != nil {
		u.window.Destroy()
	}
	sdl.Quit()
}

// SetScale resizes the window to a new integer pixel scale.
func (u *UI) SetScale(scale int) {
	u.scale = scale
	u.window.SetSize(int32(ppu.ScreenWidth*scale), int32(ppu.ScreenHeight*scale))
}
