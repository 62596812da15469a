// Package projection keeps 2D UI elements pinned to the screen projection
// of 3D targets.
//
// A Service owns a set of surfaces. Each surface is an independent UI root
// with its own camera and render mode, cloned from a Template. Elements are
// bound to targets through a SurfaceHandle and released through the
// returned BindingHandle:
//
//	svc, err := projection.NewService(
//		projection.WithPrimaryCamera(cam),
//		projection.WithDisplay(display),
//	)
//	if err != nil {
//		return err
//	}
//	defer svc.Close()
//
//	hud, err := svc.CreateSurface(projection.Template{Name: "hud"}, nil)
//	if err != nil {
//		return err
//	}
//	b, err := hud.AddBinding(label, enemy,
//		projection.WithWorldOffset(f64.Vec3{0, 2, 0}),
//		projection.WithCorrector(projection.ScreenCorrector{Display: display}),
//	)
//
// The host calls Service.Update once per frame, after game state has moved
// and before drawing. Every binding is re-projected from scratch. A binding
// whose target has died is released at the end of that pass; other
// bindings are unaffected.
//
// Screen space has its origin at the bottom-left with y up. Surface-local
// space is centered on the surface and divided by the surface scale factor.
package projection
