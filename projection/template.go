package projection

import "slices"

// Template is the configuration a surface is cloned from. Several surfaces
// may be created from one template; each gets its own copy.
type Template struct {
	Name         string     `yaml:"name"`
	RenderMode   RenderMode `yaml:"render_mode"`
	SortingOrder int        `yaml:"sorting_order"`

	// ReferenceWidth and ReferenceHeight enable scale-with-screen-size. When
	// either is zero the surface uses a scale factor of 1.
	ReferenceWidth  float64 `yaml:"reference_width"`
	ReferenceHeight float64 `yaml:"reference_height"`
	// MatchWidthOrHeight blends between matching the reference width (0)
	// and the reference height (1).
	MatchWidthOrHeight float64 `yaml:"match_width_or_height"`
	PixelPerfect       bool    `yaml:"pixel_perfect"`

	// Children names content authored under the template. It is never
	// carried over into a surface.
	Children []string `yaml:"children,omitempty"`
}

// Clone returns a deep copy of t.
func (t Template) Clone() Template {
	t.Children = slices.Clone(t.Children)
	return t
}
