// Package generation defines the boundary between the application core and
// the external vision metadata service. The core depends only on the
// Describer interface and the error taxonomy declared here; concrete
// implementations live under internal/platform.
package generation
