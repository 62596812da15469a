package projection

import (
	"fmt"

	"github.com/milk9111/uiprojector/common"
	"golang.org/x/image/math/f64"
)

// strategy moves a binding's element to where its target projects.
type strategy interface {
	project(b *binding) error
}

func newStrategy(mode RenderMode, cam Camera, root *Root) (strategy, error) {
	switch mode {
	case Overlay:
		return overlayStrategy{camera: cam, root: root}, nil
	case CameraSpace:
		return cameraSpaceStrategy{camera: cam, root: root}, nil
	case WorldSpace:
		return nil, fmt.Errorf("%w: %s (surface %q)", ErrUnsupportedRenderMode, mode, root.name)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRenderMode, mode)
	}
}

type overlayStrategy struct {
	camera Camera
	root   *Root
}

func (s overlayStrategy) project(b *binding) error {
	screen, err := screenPoint(s.camera, b)
	if err != nil {
		return err
	}
	b.element.SetAnchoredPosition(s.root.screenToLocal(common.XY(screen)))
	return nil
}

type cameraSpaceStrategy struct {
	camera Camera
	root   *Root
}

func (s cameraSpaceStrategy) project(b *binding) error {
	screen, err := screenPoint(s.camera, b)
	if err != nil {
		return err
	}
	local := s.root.screenToLocalCamera(common.XY(screen), s.camera)
	b.element.SetLocalPosition(f64.Vec3{local[0], local[1], 0})
	return nil
}

// screenPoint projects the target, applies the screen offset and corrects
// the result.
func screenPoint(cam Camera, b *binding) (f64.Vec3, error) {
	if !b.target.Alive() {
		return f64.Vec3{}, ErrTargetGone
	}
	p := cam.WorldToScreen(common.Add3(b.target.WorldPosition(), b.worldOffset))
	p[0] += b.screenOffset[0]
	p[1] += b.screenOffset[1]
	return b.corrector.Correct(p), nil
}
