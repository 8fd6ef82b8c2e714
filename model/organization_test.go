package model

import (
	"reflect"
	"testing"
)

func TestSnapshotCopiesOnlyRequestedFields(t *testing.T) {
	rating := 8.0
	org := &Organization{
		Key:           "org-1",
		Name:          "Devworks Bootcamp",
		Slug:          "devworks-bootcamp",
		Description:   "a full stack bootcamp",
		Phone:         "(111) 111-1111",
		AverageRating: &rating,
	}

	course := org.Snapshot(CourseOrganizationFields)
	want := OrganizationSnapshot{Key: "org-1", Name: "Devworks Bootcamp", Slug: "devworks-bootcamp"}
	if !reflect.DeepEqual(course, want) {
		t.Errorf("course snapshot = %+v, want %+v", course, want)
	}

	review := org.Snapshot(ReviewOrganizationFields)
	if review.Slug != "" || review.Description != "" || review.AverageRating != nil {
		t.Errorf("review snapshot carries fields outside its allow-list: %+v", review)
	}

	owned := org.Snapshot(AccountOwnedOrganizationFields)
	if owned.AverageRating == nil || *owned.AverageRating != 8 {
		t.Errorf("owned snapshot should carry averageRating, got %+v", owned)
	}
}

func TestOrganizationCreateValidate(t *testing.T) {
	valid := OrganizationCreate{
		Name:        "Devworks",
		Description: "a description long enough",
		Website:     "https://devworks.com",
		Address:     "233 Bay State Rd Boston",
		Careers:     []string{"Web Development"},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	cases := []func(o *OrganizationCreate){
		func(o *OrganizationCreate) { o.Name = "ab" },
		func(o *OrganizationCreate) { o.Description = "short" },
		func(o *OrganizationCreate) { o.Website = "not a url" },
		func(o *OrganizationCreate) { o.Address = "near" },
		func(o *OrganizationCreate) { o.Careers = nil },
		func(o *OrganizationCreate) { o.Careers = []string{"Astrology"} },
	}
	for i, mutate := range cases {
		dto := valid
		mutate(&dto)
		if err := dto.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestAccountCreateValidateDefaultsRole(t *testing.T) {
	dto := AccountCreate{Name: "Sasha Ryan", Email: "sasha@example.com", Password: "secret1"}
	if err := dto.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.Role != RoleUser {
		t.Errorf("empty role should default to user, got %q", dto.Role)
	}

	dto.Role = "superuser"
	if err := dto.Validate(); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestCourseUpdateChanges(t *testing.T) {
	tuition := 9000.0
	title := "Advanced Go"
	dto := CourseUpdate{Title: &title, Tuition: &tuition}

	changes := dto.Changes()
	want := map[string]interface{}{"title": "Advanced Go", "tuition": 9000.0}
	if !reflect.DeepEqual(changes, want) {
		t.Errorf("Changes() = %v, want %v", changes, want)
	}
}
