package model

import "time"

// Review is a rating of an organization by an account. The organization is
// embedded as a snapshot; the parent holds no review id list.
type Review struct {
	Key          string               `json:"_key,omitempty"`
	Title        string               `json:"title"`
	Text         string               `json:"text"`
	Rating       float64              `json:"rating"`
	Organization OrganizationSnapshot `json:"organization"`
	Author       string               `json:"author"`
	CreatedAt    time.Time            `json:"createdAt"`
}

// ReviewCreate is the payload for creating a review.
type ReviewCreate struct {
	Title  string  `json:"title"`
	Text   string  `json:"text"`
	Rating float64 `json:"rating"`
}

// Validate checks the create payload.
func (d *ReviewCreate) Validate() error {
	if len(d.Title) < 3 || len(d.Title) > 100 {
		return BadRequest("title must be between 3 and 100 characters")
	}
	if len(d.Text) < 10 {
		return BadRequest("text must be at least 10 characters")
	}
	if d.Rating < 1 || d.Rating > 10 {
		return BadRequest("rating must be between 1 and 10")
	}
	return nil
}

// ReviewUpdate is the partial payload for updating a review.
type ReviewUpdate struct {
	Title  *string  `json:"title"`
	Text   *string  `json:"text"`
	Rating *float64 `json:"rating"`
}

// Validate checks the update payload.
func (d *ReviewUpdate) Validate() error {
	if d.Title != nil && (len(*d.Title) < 3 || len(*d.Title) > 100) {
		return BadRequest("title must be between 3 and 100 characters")
	}
	if d.Text != nil && len(*d.Text) < 10 {
		return BadRequest("text must be at least 10 characters")
	}
	if d.Rating != nil && (*d.Rating < 1 || *d.Rating > 10) {
		return BadRequest("rating must be between 1 and 10")
	}
	return nil
}

// Changes flattens the non-nil fields into an update document.
func (d *ReviewUpdate) Changes() map[string]interface{} {
	ch := map[string]interface{}{}
	if d.Title != nil {
		ch["title"] = *d.Title
	}
	if d.Text != nil {
		ch["text"] = *d.Text
	}
	if d.Rating != nil {
		ch["rating"] = *d.Rating
	}
	return ch
}
