package common

import "github.com/veandco/go-sdl2/sdl"

// InputState is a per-frame snapshot of the keys and mouse motion that drive the camera. It is decoupled from SDL so
// the camera can be driven (and tested) without a window.
type InputState struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
	Boost   bool

	MouseDX int32
	MouseDY int32

	LeftButton  bool
	RightButton bool
}

// ReadInput polls SDL for the current keyboard state and the mouse motion accumulated since the last call. It must
// be called exactly once per frame, after the event queue has been pumped.
func ReadInput() InputState {
	keys := sdl.GetKeyboardState()
	dx, dy, buttons := sdl.GetRelativeMouseState()
	return InputState{
		Forward:     keys[sdl.SCANCODE_W] != 0 || keys[sdl.SCANCODE_UP] != 0,
		Back:        keys[sdl.SCANCODE_S] != 0 || keys[sdl.SCANCODE_DOWN] != 0,
		Left:        keys[sdl.SCANCODE_A] != 0 || keys[sdl.SCANCODE_LEFT] != 0,
		Right:       keys[sdl.SCANCODE_D] != 0 || keys[sdl.SCANCODE_RIGHT] != 0,
		Boost:       keys[sdl.SCANCODE_LSHIFT] != 0,
		MouseDX:     dx,
		MouseDY:     dy,
		LeftButton:  buttons&sdl.ButtonLMask() != 0,
		RightButton: buttons&sdl.ButtonRMask() != 0,
	}
}
