package domain

import "errors"

// Resource names a platform collection managed through the dashboard. The
// value doubles as the path segment under /api/ on the upstream side.
type Resource string

const (
	ResourceStudents    Resource = "students"
	ResourceTeachers    Resource = "teachers"
	ResourceSubjects    Resource = "subjects"
	ResourceCourses     Resource = "courses"
	ResourceEnrollments Resource = "enrollments"
	ResourceEssays      Resource = "essays"
)

var (
	ErrUnknownResource   = errors.New("unknown resource")
	ErrForbiddenResource = errors.New("resource not available to this role")
)

// resourcesByRole fixes which collections each dashboard may touch, mirroring
// the per-dashboard managers in the web UI: the owner administers the whole
// roster, teachers and students work with courses and essays, parents only
// see enrollments.
var resourcesByRole = map[Role][]Resource{
	RoleOwner:   {ResourceStudents, ResourceTeachers, ResourceSubjects, ResourceCourses, ResourceEnrollments},
	RoleTeacher: {ResourceCourses, ResourceEssays},
	RoleStudent: {ResourceCourses, ResourceEssays},
	RoleParent:  {ResourceEnrollments},
}

// ParseResource validates a path segment against the known collections.
func ParseResource(s string) (Resource, error) {
	switch Resource(s) {
	case ResourceStudents, ResourceTeachers, ResourceSubjects, ResourceCourses, ResourceEnrollments, ResourceEssays:
		return Resource(s), nil
	}
	return "", ErrUnknownResource
}

// RoleAllows reports whether the given dashboard role may operate on the
// resource.
func RoleAllows(role Role, resource Resource) bool {
	for _, r := range resourcesByRole[role] {
		if r == resource {
			return true
		}
	}
	return false
}
