// Package scripted provides a projection.Corrector whose policy is a tengo
// script.
//
// The script sees the projected point as the globals x, y and z, the
// screen size as width and height, and the safe area as safe_x, safe_y,
// safe_w and safe_h. It writes the corrected point back into x, y and z.
// The helper clamp_rect(x, y, z, rx, ry, rw, rh) applies the built-in
// rectangle correction and returns [x, y, z]:
//
//	if x < 0 { x = 0 }
//	if x > width { x = width }
package scripted

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/uiprojector/common"
	"github.com/milk9111/uiprojector/projection"
	"go.uber.org/zap"
	"golang.org/x/image/math/f64"
)

var inputs = []string{"x", "y", "z", "width", "height", "safe_x", "safe_y", "safe_w", "safe_h"}

// Corrector runs a compiled script for every point. A script error leaves
// the point unchanged and is logged once per distinct message.
type Corrector struct {
	compiled *tengo.Compiled
	display  projection.Display
	logger   *zap.Logger
	lastErr  string
}

// New compiles src. The display supplies the screen and safe-area globals.
func New(src []byte, display projection.Display, logger *zap.Logger) (*Corrector, error) {
	if display == nil {
		return nil, fmt.Errorf("scripted: display is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	script := tengo.NewScript(src)
	for _, name := range inputs {
		if err := script.Add(name, 0.0); err != nil {
			return nil, fmt.Errorf("scripted: declare %s: %w", name, err)
		}
	}
	if err := script.Add("clamp_rect", &tengo.UserFunction{Name: "clamp_rect", Value: clampRect}); err != nil {
		return nil, fmt.Errorf("scripted: declare clamp_rect: %w", err)
	}
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scripted: compile: %w", err)
	}
	return &Corrector{compiled: compiled, display: display, logger: logger}, nil
}

// Correct implements projection.Corrector.
func (c *Corrector) Correct(p f64.Vec3) f64.Vec3 {
	out, err := c.run(p)
	if err != nil {
		if msg := err.Error(); msg != c.lastErr {
			c.lastErr = msg
			c.logger.Warn("correction script failed", zap.Error(err))
		}
		return p
	}
	return out
}

func (c *Corrector) run(p f64.Vec3) (f64.Vec3, error) {
	w, h := c.display.ScreenSize()
	safe := c.display.SafeArea()
	values := map[string]float64{
		"x": p[0], "y": p[1], "z": p[2],
		"width": w, "height": h,
		"safe_x": safe.X, "safe_y": safe.Y, "safe_w": safe.Width, "safe_h": safe.Height,
	}
	for name, v := range values {
		if err := c.compiled.Set(name, v); err != nil {
			return p, err
		}
	}
	if err := c.compiled.Run(); err != nil {
		return p, err
	}
	return f64.Vec3{
		c.compiled.Get("x").Float(),
		c.compiled.Get("y").Float(),
		c.compiled.Get("z").Float(),
	}, nil
}

func clampRect(args ...tengo.Object) (tengo.Object, error) {
	if len(args) != 7 {
		return nil, tengo.ErrWrongNumArguments
	}
	v := make([]float64, len(args))
	for i, arg := range args {
		f, ok := tengo.ToFloat64(arg)
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{
				Name:     fmt.Sprintf("arg%d", i),
				Expected: "float",
				Found:    arg.TypeName(),
			}
		}
		v[i] = f
	}
	out := projection.ClampToRect(
		f64.Vec3{v[0], v[1], v[2]},
		common.Rect{X: v[3], Y: v[4], Width: v[5], Height: v[6]},
	)
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Float{Value: out[0]},
		&tengo.Float{Value: out[1]},
		&tengo.Float{Value: out[2]},
	}}, nil
}
