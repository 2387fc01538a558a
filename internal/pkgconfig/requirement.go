package pkgconfig

import "fmt"

// Requirement names a pkg-config module and the half-open version range
// [Min, Max) it must fall in. The range is checked by pkg-config itself, so
// versions compare the way pkg-config compares them (rpmvercmp) rather than
// as semantic versions: 0.1.5.1 is in range and 0.2.0-rc.1 is not.
type Requirement struct {
	Name string
	Min  string
	Max  string
}

// String renders the requirement as a pkg-config module list.
func (r Requirement) String() string {
	return fmt.Sprintf("%s >= %s, %s < %s", r.Name, r.Min, r.Name, r.Max)
}
