package projection

import (
	"fmt"
	"strings"
)

// RenderMode selects how a surface is composited and therefore how screen
// points are converted into its local space.
type RenderMode int

const (
	// Overlay surfaces are drawn on top of the screen and positioned through
	// a camera-independent anchor system.
	Overlay RenderMode = iota
	// CameraSpace surfaces sit on a plane in front of their camera.
	CameraSpace
	// WorldSpace surfaces live in the 3D scene. They cannot follow targets.
	WorldSpace
)

func (m RenderMode) String() string {
	switch m {
	case Overlay:
		return "overlay"
	case CameraSpace:
		return "camera"
	case WorldSpace:
		return "world"
	default:
		return fmt.Sprintf("RenderMode(%d)", int(m))
	}
}

func (m RenderMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *RenderMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "overlay", "screen_space_overlay":
		*m = Overlay
	case "camera", "camera_space", "screen_space_camera":
		*m = CameraSpace
	case "world", "world_space":
		*m = WorldSpace
	default:
		return fmt.Errorf("projection: unknown render mode %q", string(text))
	}
	return nil
}
