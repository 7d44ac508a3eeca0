package course_test

import (
	"testing"

	"parley/internal/domain/course"
)

// TestCourse_Validate tests validation of Course.
func TestCourse_Validate(t *testing.T) {
	tests := []struct {
		name    string
		c       course.Course
		wantErr bool
	}{
		{"valid active course", course.Course{ID: 1, Title: "Foundations", Status: course.StatusActive}, false},
		{"valid draft course", course.Course{ID: 2, Title: "Drafting", Status: course.StatusDraft}, false},
		{"empty title", course.Course{ID: 3, Status: course.StatusActive}, true},
		{"unknown status", course.Course{ID: 4, Title: "X", Status: "published"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestCourse_ToggleStatus verifies the active/draft flip.
func TestCourse_ToggleStatus(t *testing.T) {
	c := course.Course{ID: 1, Title: "Foundations", Status: course.StatusActive, Enrolled: 3}

	c.ToggleStatus()
	if c.Status != course.StatusDraft {
		t.Errorf("status=%q want draft", c.Status)
	}
	c.ToggleStatus()
	if c.Status != course.StatusActive {
		t.Errorf("status=%q want active", c.Status)
	}
	if c.Enrolled != 3 {
		t.Errorf("toggle mutated enrolment: %d", c.Enrolled)
	}
}

// TestCourse_Enroll verifies the enrolment counter.
func TestCourse_Enroll(t *testing.T) {
	c := course.Course{ID: 1, Title: "Foundations", Status: course.StatusActive}
	c.Enroll()
	c.Enroll()
	if c.Enrolled != 2 {
		t.Errorf("enrolled=%d want 2", c.Enrolled)
	}
}
