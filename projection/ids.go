package projection

import "strconv"

// SurfaceID identifies a surface for the lifetime of a Service. Ids are
// never reused.
type SurfaceID uint64

func (id SurfaceID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// BindingID identifies a binding for the lifetime of a Service. Ids are
// unique across all surfaces and never reused.
type BindingID uint64

func (id BindingID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}
