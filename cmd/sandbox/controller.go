package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/uiprojector/camera"
	"github.com/milk9111/uiprojector/common"
	"golang.org/x/image/math/f64"
)

const (
	moveSpeed     = 20.0        // world units per second
	rotationSpeed = math.Pi / 2 // radians per second
	stickDeadzone = 0.2
)

// Keys abstracts the keyboard so the controller can be driven in tests.
type Keys interface {
	Pressed(k ebiten.Key) bool
	JustPressed(k ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) Pressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }
func (ebitenKeys) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

// CameraController flies the camera: WASD moves, Q/E lower and raise,
// the arrow keys turn and R resets.
type CameraController struct {
	cam  *camera.Perspective
	keys Keys

	initialPos   f64.Vec3
	initialYaw   float64
	initialPitch float64
}

func NewCameraController(cam *camera.Perspective, keys Keys) *CameraController {
	if keys == nil {
		keys = ebitenKeys{}
	}
	return &CameraController{
		cam:          cam,
		keys:         keys,
		initialPos:   cam.Position,
		initialYaw:   cam.Yaw,
		initialPitch: cam.Pitch,
	}
}

func (c *CameraController) Update(dt float64) {
	c.handleMovement(dt)
	c.handleRotation(dt)
	if c.keys.JustPressed(ebiten.KeyR) {
		c.cam.Position = c.initialPos
		c.cam.Yaw = c.initialYaw
		c.cam.Pitch = c.initialPitch
	}
}

func (c *CameraController) handleMovement(dt float64) {
	var right, up, forward float64
	if c.keys.Pressed(ebiten.KeyW) {
		forward++
	}
	if c.keys.Pressed(ebiten.KeyS) {
		forward--
	}
	if c.keys.Pressed(ebiten.KeyD) {
		right++
	}
	if c.keys.Pressed(ebiten.KeyA) {
		right--
	}
	if c.keys.Pressed(ebiten.KeyE) {
		up++
	}
	if c.keys.Pressed(ebiten.KeyQ) {
		up--
	}

	if id, ok := c.gamepad(); ok {
		if x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal); math.Abs(x) > stickDeadzone {
			right = x
		}
		if y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical); math.Abs(y) > stickDeadzone {
			forward = -y
		}
	}

	step := moveSpeed * dt
	c.cam.Move(right*step, up*step, forward*step)
}

func (c *CameraController) handleRotation(dt float64) {
	var yaw, pitch float64
	if c.keys.Pressed(ebiten.KeyArrowLeft) {
		yaw--
	}
	if c.keys.Pressed(ebiten.KeyArrowRight) {
		yaw++
	}
	// up looks up, which is negative pitch
	if c.keys.Pressed(ebiten.KeyArrowUp) {
		pitch--
	}
	if c.keys.Pressed(ebiten.KeyArrowDown) {
		pitch++
	}
	step := rotationSpeed * dt
	c.cam.Rotate(yaw*step, pitch*step)
}

// gamepad returns the first connected gamepad when reading live input.
func (c *CameraController) gamepad() (ebiten.GamepadID, bool) {
	if _, live := c.keys.(ebitenKeys); !live {
		return 0, false
	}
	ids := ebiten.GamepadIDs()
	if len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}

// Distance returns how far the camera has drifted from its start.
func (c *CameraController) Distance() float64 {
	d := common.Sub3(c.cam.Position, c.initialPos)
	return math.Sqrt(common.Dot3(d, d))
}
