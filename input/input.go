// Package input models gamepad controls and folds their events into a joystick axis and button
// snapshot.
package input

import (
	"time"
)

// EventType is the kind of change an Event reports.
type EventType uint8

// Event types.
const (
	All EventType = iota
	Connect
	Disconnect // unplugged, or a wireless link timed out
	ButtonDown
	ButtonUp
	ButtonChange      // both up and down
	PositionChangeAbs // absolute position, a la joysticks
)

// ControlCode identifies an axis or button.
type ControlCode uint32

// Axes are numbered in the order joystick messages report them.
const (
	AbsoluteX ControlCode = 1000 + iota
	AbsoluteY
	AbsoluteZ
	AbsoluteRX
	AbsoluteRY
	AbsoluteRZ
	AbsoluteHat0X
	AbsoluteHat0Y
)

// Buttons, in joystick message order.
const (
	ButtonSouth ControlCode = 2000 + iota
	ButtonEast
	ButtonWest
	ButtonNorth
	ButtonLT
	ButtonRT
	ButtonLThumb
	ButtonRThumb
	ButtonSelect
	ButtonStart
	ButtonMenu
)

// Event is a single control change.
type Event struct {
	Time  time.Time
	Event EventType
	Code  ControlCode // key or axis code
	Value float64     // 0 or 1 for buttons, -1.0 to +1.0 for axes
}

// IsAxis reports whether code is an axis.
func (code ControlCode) IsAxis() bool {
	return code >= AbsoluteX && code <= AbsoluteHat0Y
}

// IsButton reports whether code is a button.
func (code ControlCode) IsButton() bool {
	return code >= ButtonSouth && code <= ButtonMenu
}

// Joystick is the latest value of every axis and button seen so far.
type Joystick struct {
	axes    []float64
	buttons []int
	updated time.Time
}

// Apply folds ev into the snapshot and reports whether any value changed.
func (j *Joystick) Apply(ev Event) bool {
	switch {
	case ev.Event == Disconnect:
		changed := len(j.axes) > 0 || len(j.buttons) > 0
		j.axes, j.buttons = nil, nil
		return changed
	case ev.Code.IsAxis() && (ev.Event == PositionChangeAbs || ev.Event == All):
		idx := int(ev.Code - AbsoluteX)
		for len(j.axes) <= idx {
			j.axes = append(j.axes, 0)
		}
		if j.axes[idx] == ev.Value {
			return false
		}
		j.axes[idx] = ev.Value
	case ev.Code.IsButton():
		idx := int(ev.Code - ButtonSouth)
		for len(j.buttons) <= idx {
			j.buttons = append(j.buttons, 0)
		}
		pressed := 0
		if ev.Event == ButtonDown || (ev.Event != ButtonUp && ev.Value > 0) {
			pressed = 1
		}
		if j.buttons[idx] == pressed {
			return false
		}
		j.buttons[idx] = pressed
	default:
		return false
	}
	j.updated = ev.Time
	return true
}

// Axes returns a copy of the axis values, indexed from AbsoluteX.
func (j *Joystick) Axes() []float64 {
	return append([]float64(nil), j.axes...)
}

// Buttons returns a copy of the button states, indexed from ButtonSouth.
func (j *Joystick) Buttons() []int {
	return append([]int(nil), j.buttons...)
}

// Updated is the time of the last change.
func (j *Joystick) Updated() time.Time {
	return j.updated
}

// EventsFromAxes expands a joystick sample into one event per axis and button.
func EventsFromAxes(at time.Time, axes []float64, buttons []int) []Event {
	events := make([]Event, 0, len(axes)+len(buttons))
	for i, v := range axes {
		events = append(events, Event{Time: at, Event: PositionChangeAbs, Code: AbsoluteX + ControlCode(i), Value: v})
	}
	for i, b := range buttons {
		ev := Event{Time: at, Event: ButtonUp, Code: ButtonSouth + ControlCode(i)}
		if b != 0 {
			ev.Event, ev.Value = ButtonDown, 1
		}
		events = append(events, ev)
	}
	return events
}
