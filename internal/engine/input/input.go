// Package input turns SDL2 events into preview controls.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Action is a preview control triggered by a key press.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionTogglePlay
	ActionStepForward
	ActionStepBack
	ActionResetView
	ActionToggleFollow
	ActionToggleWireframe
	ActionScreenshot
)

var keyActions = map[sdl.Scancode]Action{
	sdl.SCANCODE_ESCAPE: ActionQuit,
	sdl.SCANCODE_SPACE:  ActionTogglePlay,
	sdl.SCANCODE_RIGHT:  ActionStepForward,
	sdl.SCANCODE_LEFT:   ActionStepBack,
	sdl.SCANCODE_R:      ActionResetView,
	sdl.SCANCODE_F:      ActionToggleFollow,
	sdl.SCANCODE_TAB:    ActionToggleWireframe,
	sdl.SCANCODE_F12:    ActionScreenshot,
}

// ActionForKey returns the action bound to a key.
func ActionForKey(key sdl.Scancode) Action {
	return keyActions[key]
}

// Frame is the input gathered during one frame.
type Frame struct {
	Quit bool

	// Resized is set with the new size when the window changed size.
	Resized       bool
	Width, Height int

	// DragX and DragY accumulate mouse motion while the left button is held.
	DragX, DragY float32
	// Zoom accumulates wheel steps, positive away from the user.
	Zoom float32

	// Pick is set with the cursor position, in window coordinates, when the
	// right button was pressed.
	Pick         bool
	PickX, PickY float32

	// Forward, Right and Up are held movement keys in [-1, 1].
	Forward, Right, Up float32

	Actions []Action
}

// Input polls SDL events.
type Input struct {
	frame    Frame
	dragging bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{}
}

// Poll drains the SDL event queue and returns what happened since the last
// call. The returned Frame is reused by the next Poll.
func (in *Input) Poll() *Frame {
	actions := in.frame.Actions[:0]
	in.frame = Frame{Actions: actions}

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		in.handle(event)
	}

	keys := sdl.GetKeyboardState()
	in.frame.Forward = axis(keys, sdl.SCANCODE_W, sdl.SCANCODE_S)
	in.frame.Right = axis(keys, sdl.SCANCODE_D, sdl.SCANCODE_A)
	in.frame.Up = axis(keys, sdl.SCANCODE_E, sdl.SCANCODE_Q)
	return &in.frame
}

func (in *Input) handle(event sdl.Event) {
	f := &in.frame
	switch e := event.(type) {
	case *sdl.QuitEvent:
		f.Quit = true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED {
			f.Resized = true
			f.Width, f.Height = int(e.Data1), int(e.Data2)
		}

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN {
			return
		}
		switch a := ActionForKey(e.Keysym.Scancode); a {
		case ActionNone:
		case ActionQuit:
			f.Quit = true
		default:
			f.Actions = append(f.Actions, a)
		}

	case *sdl.MouseButtonEvent:
		switch e.Button {
		case sdl.BUTTON_LEFT:
			in.dragging = e.Type == sdl.MOUSEBUTTONDOWN
		case sdl.BUTTON_RIGHT:
			if e.Type == sdl.MOUSEBUTTONDOWN {
				f.Pick = true
				f.PickX, f.PickY = float32(e.X), float32(e.Y)
			}
		}

	case *sdl.MouseMotionEvent:
		if in.dragging {
			f.DragX += float32(e.XRel)
			f.DragY += float32(e.YRel)
		}

	case *sdl.MouseWheelEvent:
		f.Zoom += float32(e.Y)
	}
}

func axis(keys []uint8, pos, neg sdl.Scancode) float32 {
	var v float32
	if keys[pos] != 0 {
		v++
	}
	if keys[neg] != 0 {
		v--
	}
	return v
}
