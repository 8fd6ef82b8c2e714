package model

import (
	"net/url"
	"time"
)

// Careers lists the valid career tags of an organization.
var Careers = []string{"Web Development", "Mobile Development", "UI/UX", "Data Science", "Business", "Other"}

// Location is a geocoded GeoJSON point with its address parts.
type Location struct {
	Type             string    `json:"type"`
	Coordinates      []float64 `json:"coordinates"`
	FormattedAddress string    `json:"formattedAddress"`
	Street           string    `json:"street,omitempty"`
	City             string    `json:"city"`
	Zipcode          string    `json:"zipcode"`
	Country          string    `json:"country"`
}

// Organization is a training organization in the directory. AverageRating and
// AverageCost are derived from reviews and courses; both are absent (not zero)
// while no child rows exist.
type Organization struct {
	Key           string    `json:"_key,omitempty"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Website       string    `json:"website,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address"`
	Careers       []string  `json:"careers"`
	Photo         string    `json:"photo,omitempty"`
	Housing       bool      `json:"housing"`
	JobAssistance bool      `json:"jobAssistance"`
	JobGuarantee  bool      `json:"jobGuarantee"`
	AcceptGi      bool      `json:"acceptGi"`
	Location      *Location `json:"location,omitempty"`
	AverageRating *float64  `json:"averageRating,omitempty"`
	AverageCost   *float64  `json:"averageCost,omitempty"`
	Owner         string    `json:"owner"`
	Courses       []string  `json:"courses"`
	Participants  []string  `json:"participants"`
	CreatedAt     time.Time `json:"createdAt"`
}

// OrganizationSnapshot is the denormalized partial copy of an organization
// embedded inside courses, reviews and accounts. Which fields are set depends
// on the allow-list of the embedding site.
type OrganizationSnapshot struct {
	Key           string   `json:"_key"`
	Name          string   `json:"name,omitempty"`
	Slug          string   `json:"slug,omitempty"`
	Description   string   `json:"description,omitempty"`
	AverageRating *float64 `json:"averageRating,omitempty"`
}

// Snapshot copies the allow-listed fields of the organization into an embedded
// snapshot document. Unknown field names are ignored.
func (o *Organization) Snapshot(fields []string) OrganizationSnapshot {
	snap := OrganizationSnapshot{Key: o.Key}
	for _, f := range fields {
		switch f {
		case "name":
			snap.Name = o.Name
		case "slug":
			snap.Slug = o.Slug
		case "description":
			snap.Description = o.Description
		case "averageRating":
			snap.AverageRating = o.AverageRating
		}
	}
	return snap
}

// OrganizationCreate is the payload for creating an organization.
type OrganizationCreate struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Website       string   `json:"website"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	Address       string   `json:"address"`
	Careers       []string `json:"careers"`
	Photo         string   `json:"photo"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"jobAssistance"`
	JobGuarantee  bool     `json:"jobGuarantee"`
	AcceptGi      bool     `json:"acceptGi"`
}

// Validate checks the create payload.
func (d *OrganizationCreate) Validate() error {
	if len(d.Name) < 3 || len(d.Name) > 50 {
		return BadRequest("name must be between 3 and 50 characters")
	}
	if len(d.Description) < 10 || len(d.Description) > 500 {
		return BadRequest("description must be between 10 and 500 characters")
	}
	if d.Website != "" {
		if u, err := url.Parse(d.Website); err != nil || u.Scheme == "" || u.Host == "" {
			return BadRequest("website must be a valid URL")
		}
	}
	if len(d.Address) < 10 {
		return BadRequest("address must be at least 10 characters")
	}
	if len(d.Careers) == 0 {
		return BadRequest("at least one career is required")
	}
	for _, c := range d.Careers {
		if !validCareer(c) {
			return BadRequest("invalid career: %s", c)
		}
	}
	return nil
}

func validCareer(c string) bool {
	for _, v := range Careers {
		if v == c {
			return true
		}
	}
	return false
}

// OrganizationUpdate is the partial payload for updating an organization.
// Nil pointers mean "leave unchanged".
type OrganizationUpdate struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Website       *string   `json:"website"`
	Phone         *string   `json:"phone"`
	Email         *string   `json:"email"`
	Address       *string   `json:"address"`
	Careers       *[]string `json:"careers"`
	Photo         *string   `json:"photo"`
	Housing       *bool     `json:"housing"`
	JobAssistance *bool     `json:"jobAssistance"`
	JobGuarantee  *bool     `json:"jobGuarantee"`
	AcceptGi      *bool     `json:"acceptGi"`
}

// Changes flattens the non-nil fields into an update document.
func (d *OrganizationUpdate) Changes() map[string]interface{} {
	ch := map[string]interface{}{}
	if d.Name != nil {
		ch["name"] = *d.Name
	}
	if d.Description != nil {
		ch["description"] = *d.Description
	}
	if d.Website != nil {
		ch["website"] = *d.Website
	}
	if d.Phone != nil {
		ch["phone"] = *d.Phone
	}
	if d.Email != nil {
		ch["email"] = *d.Email
	}
	if d.Address != nil {
		ch["address"] = *d.Address
	}
	if d.Careers != nil {
		ch["careers"] = *d.Careers
	}
	if d.Photo != nil {
		ch["photo"] = *d.Photo
	}
	if d.Housing != nil {
		ch["housing"] = *d.Housing
	}
	if d.JobAssistance != nil {
		ch["jobAssistance"] = *d.JobAssistance
	}
	if d.AcceptGi != nil {
		ch["acceptGi"] = *d.AcceptGi
	}
	if d.JobGuarantee != nil {
		ch["jobGuarantee"] = *d.JobGuarantee
	}
	return ch
}
