package services

import (
	"reflect"
	"testing"

	"github.com/dvinubius/bootcamp-backend/model"
)

func TestPropagationPatchPerSite(t *testing.T) {
	changes := map[string]interface{}{
		"name":        "Devworks Academy",
		"slug":        "devworks-academy",
		"description": "a new description of at least ten chars",
		"phone":       "(333) 333-3333",
	}

	cases := []struct {
		site    string
		allowed []string
		want    map[string]interface{}
	}{
		{
			site:    "course",
			allowed: model.CourseOrganizationFields,
			want: map[string]interface{}{
				"name": "Devworks Academy",
				"slug": "devworks-academy",
			},
		},
		{
			site:    "review",
			allowed: model.ReviewOrganizationFields,
			want:    map[string]interface{}{"name": "Devworks Academy"},
		},
		{
			site:    "accountOwned",
			allowed: model.AccountOwnedOrganizationFields,
			want: map[string]interface{}{
				"name":        "Devworks Academy",
				"description": "a new description of at least ten chars",
			},
		},
		{
			site:    "accountJoined",
			allowed: model.AccountJoinedOrganizationFields,
			want: map[string]interface{}{
				"name":        "Devworks Academy",
				"description": "a new description of at least ten chars",
			},
		},
	}

	for _, tc := range cases {
		got := propagationPatch(changes, tc.allowed)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s patch = %v, want %v", tc.site, got, tc.want)
		}
		if _, ok := got["phone"]; ok {
			t.Errorf("%s patch must never carry phone", tc.site)
		}
	}
}

func TestPropagationPatchEmptyWhenNothingEmbedded(t *testing.T) {
	changes := map[string]interface{}{"phone": "(444) 444-4444", "housing": false}
	for _, allowed := range [][]string{
		model.CourseOrganizationFields,
		model.ReviewOrganizationFields,
		model.AccountOwnedOrganizationFields,
		model.AccountJoinedOrganizationFields,
	} {
		if patch := propagationPatch(changes, allowed); len(patch) != 0 {
			t.Errorf("expected empty patch for %v, got %v", allowed, patch)
		}
	}
}
