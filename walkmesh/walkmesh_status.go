package walkmesh

import "strings"

// Status is a set of result flags. A Status with WM_FAILURE set is an error;
// the detail bits say which one.
type Status uint32

const (
	// High level status.
	WM_FAILURE Status = 1 << 31 // Operation failed.
	WM_SUCCESS Status = 1 << 30 // Operation succeed.

	// Detail information for status.
	WM_STATUS_DETAIL_MASK Status = 0x0ffffff
	WM_MALFORMED_MESH     Status = 1 << 0 // Bad indices, degenerate triangle or bad normal.
	WM_EMPTY_MESH         Status = 1 << 1 // The mesh has no triangles.
	WM_OFF_MESH           Status = 1 << 2 // The point does not lie on the walkable surface.
	WM_WALK_DIVERGENCE    Status = 1 << 3 // The walk hit its iteration bound.
	WM_WRONG_MAGIC        Status = 1 << 4 // Input data is not recognized.
	WM_WRONG_VERSION      Status = 1 << 5 // Input data is in wrong version.
)

var (
	ErrMalformedMesh  error = WM_FAILURE | WM_MALFORMED_MESH
	ErrEmptyMesh      error = WM_FAILURE | WM_EMPTY_MESH
	ErrOffMesh        error = WM_FAILURE | WM_OFF_MESH
	ErrWalkDivergence error = WM_FAILURE | WM_WALK_DIVERGENCE
)

var statusDetailNames = []struct {
	detail Status
	name   string
}{
	{WM_MALFORMED_MESH, "malformed mesh"},
	{WM_EMPTY_MESH, "empty mesh"},
	{WM_OFF_MESH, "off mesh"},
	{WM_WALK_DIVERGENCE, "walk divergence"},
	{WM_WRONG_MAGIC, "wrong magic"},
	{WM_WRONG_VERSION, "wrong version"},
}

// Returns true of status is success.
func (status Status) Succeed() bool {
	return (status & WM_SUCCESS) != 0
}

// Returns true of status is failure.
func (status Status) Failed() bool {
	return (status & WM_FAILURE) != 0
}

// Returns true if specific detail is set.
func (status Status) Detail(detail Status) bool {
	return (status & detail) != 0
}

func (status Status) Error() string {
	var parts []string
	for _, d := range statusDetailNames {
		if status.Detail(d.detail) {
			parts = append(parts, d.name)
		}
	}
	if len(parts) == 0 {
		if status.Failed() {
			return "walkmesh: failure"
		}
		return "walkmesh: success"
	}
	return "walkmesh: " + strings.Join(parts, ", ")
}

// Is reports whether every bit of target is set in status, so a status
// carrying extra detail bits still matches the plain sentinel.
func (status Status) Is(target error) bool {
	t, ok := target.(Status)
	if !ok || t == 0 {
		return false
	}
	return status&t == t
}
