package model

import "time"

// MinimumSkills lists the valid skill levels of a course.
var MinimumSkills = []string{"beginner", "intermediate", "advanced"}

// Course belongs to exactly one organization, embedded as a snapshot.
type Course struct {
	Key                  string               `json:"_key,omitempty"`
	Title                string               `json:"title"`
	Description          string               `json:"description"`
	Weeks                float64              `json:"weeks"`
	Tuition              float64              `json:"tuition"`
	MinimumSkill         string               `json:"minimumSkill"`
	ScholarshipAvailable bool                 `json:"scholarshipAvailable"`
	Organization         OrganizationSnapshot `json:"organization"`
	Owner                string               `json:"owner"`
	CreatedAt            time.Time            `json:"createdAt"`
}

// CourseCreate is the payload for creating a course.
type CourseCreate struct {
	Title                string  `json:"title"`
	Description          string  `json:"description"`
	Weeks                float64 `json:"weeks"`
	Tuition              float64 `json:"tuition"`
	MinimumSkill         string  `json:"minimumSkill"`
	ScholarshipAvailable bool    `json:"scholarshipAvailable"`
}

// Validate checks the create payload.
func (d *CourseCreate) Validate() error {
	if len(d.Title) < 3 || len(d.Title) > 50 {
		return BadRequest("title must be between 3 and 50 characters")
	}
	if len(d.Description) < 10 || len(d.Description) > 500 {
		return BadRequest("description must be between 10 and 500 characters")
	}
	if d.Weeks < 1 || d.Weeks > 16 {
		return BadRequest("weeks must be between 1 and 16")
	}
	if d.Tuition < 0 {
		return BadRequest("tuition must not be negative")
	}
	if !validSkill(d.MinimumSkill) {
		return BadRequest("invalid minimumSkill: %s", d.MinimumSkill)
	}
	return nil
}

func validSkill(s string) bool {
	for _, v := range MinimumSkills {
		if v == s {
			return true
		}
	}
	return false
}

// CourseUpdate is the partial payload for updating a course.
type CourseUpdate struct {
	Title                *string  `json:"title"`
	Description          *string  `json:"description"`
	Weeks                *float64 `json:"weeks"`
	Tuition              *float64 `json:"tuition"`
	MinimumSkill         *string  `json:"minimumSkill"`
	ScholarshipAvailable *bool    `json:"scholarshipAvailable"`
}

// Changes flattens the non-nil fields into an update document.
func (d *CourseUpdate) Changes() map[string]interface{} {
	ch := map[string]interface{}{}
	if d.Title != nil {
		ch["title"] = *d.Title
	}
	if d.Description != nil {
		ch["description"] = *d.Description
	}
	if d.Weeks != nil {
		ch["weeks"] = *d.Weeks
	}
	if d.Tuition != nil {
		ch["tuition"] = *d.Tuition
	}
	if d.MinimumSkill != nil {
		ch["minimumSkill"] = *d.MinimumSkill
	}
	if d.ScholarshipAvailable != nil {
		ch["scholarshipAvailable"] = *d.ScholarshipAvailable
	}
	return ch
}

// Validate checks the update payload.
func (d *CourseUpdate) Validate() error {
	if d.Title != nil && (len(*d.Title) < 3 || len(*d.Title) > 50) {
		return BadRequest("title must be between 3 and 50 characters")
	}
	if d.Description != nil && (len(*d.Description) < 10 || len(*d.Description) > 500) {
		return BadRequest("description must be between 10 and 500 characters")
	}
	if d.Weeks != nil && (*d.Weeks < 1 || *d.Weeks > 16) {
		return BadRequest("weeks must be between 1 and 16")
	}
	if d.Tuition != nil && *d.Tuition < 0 {
		return BadRequest("tuition must not be negative")
	}
	if d.MinimumSkill != nil && !validSkill(*d.MinimumSkill) {
		return BadRequest("invalid minimumSkill: %s", *d.MinimumSkill)
	}
	return nil
}
