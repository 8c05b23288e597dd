// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package camera

// Key identifies a camera movement input, decoupled from any window
// library's key codes. The window layer maps its own events onto these.
type Key int

// Camera movement keys.
const (
	KeyForward Key = iota
	KeyBackward
	KeyLeft
	KeyRight
	keyCount
)

// DefaultSpeed is the eye displacement per update tick.
const DefaultSpeed = 0.01

// Controller moves a camera from held keys. Forward and backward travel
// along the view direction; left and right orbit sideways. The target
// stays fixed so the scene remains centered.
type Controller struct {
	// Speed is the displacement per Update while a key is held.
	Speed float32

	pressed [keyCount]bool
}

// NewController creates a controller with the given speed. Non-positive
// speed selects DefaultSpeed.
func NewController(speed float32) *Controller {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return &Controller{Speed: speed}
}

// HandleKey records a key press or release.
func (ct *Controller) HandleKey(k Key, pressed bool) {
	if k >= 0 && k < keyCount {
		ct.pressed[k] = pressed
	}
}

// Moving reports whether any movement key is held.
func (ct *Controller) Moving() bool {
	for _, p := range ct.pressed {
		if p {
			return true
		}
	}
	return false
}

// Update applies one tick of movement to the camera.
func (ct *Controller) Update(c *Camera) {
	forward := c.Target.Sub(c.Eye)
	dist := forward.Len()
	if dist == 0 {
		return
	}
	dir := forward.Mul(1 / dist)

	// Keep a margin so the eye never crosses the target.
	if ct.pressed[KeyForward] && dist > ct.Speed*2 {
		c.Eye = c.Eye.Add(dir.Mul(ct.Speed))
	}
	if ct.pressed[KeyBackward] {
		c.Eye = c.Eye.Sub(dir.Mul(ct.Speed))
	}

	right := dir.Cross(c.Up)
	if right.Len() == 0 {
		return
	}
	right = right.Normalize()

	// Orbit: slide sideways, then pull back onto the original radius so
	// lateral movement circles the target instead of drifting away.
	if ct.pressed[KeyLeft] != ct.pressed[KeyRight] {
		side := right.Mul(ct.Speed)
		if ct.pressed[KeyLeft] {
			side = side.Mul(-1)
		}
		eye := c.Eye.Add(side)
		offset := eye.Sub(c.Target)
		c.Eye = c.Target.Add(offset.Normalize().Mul(dist))
	}
}
