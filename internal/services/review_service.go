package services

import (
	"context"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"go.uber.org/zap"

	"github.com/dvinubius/bootcamp-backend/database"
	"github.com/dvinubius/bootcamp-backend/model"
	"github.com/dvinubius/bootcamp-backend/query"
)

// ReviewService coordinates review writes with the organization's derived
// average rating.
type ReviewService struct {
	DB  database.DBConnection
	Log *zap.SugaredLogger
	Agg *AggregateRecalculator
}

// Get reads a raw review document by key.
func (s *ReviewService) Get(ctx context.Context, key string) (*model.Review, error) {
	q := `
		FOR r IN reviews
			FILTER r._key == @key
			LIMIT 1
			RETURN r
	`
	cursor, err := s.DB.Database.Query(ctx, q, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"key": key},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return nil, model.NotFound("review not found with id of %s", key)
	}
	var review model.Review
	if _, err := cursor.ReadDocument(ctx, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// GetByAuthorAndOrg reports whether the author already reviewed the
// organization. Returns nil without error when no review exists.
func (s *ReviewService) GetByAuthorAndOrg(ctx context.Context, author, org string) (*model.Review, error) {
	q := `
		FOR r IN reviews
			FILTER r.author == @author && r.organization._key == @org
			LIMIT 1
			RETURN r
	`
	cursor, err := s.DB.Database.Query(ctx, q, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"author": author, "org": org},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return nil, nil
	}
	var review model.Review
	if _, err := cursor.ReadDocument(ctx, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// Create inserts the review with its organization snapshot and recalculates
// the average rating.
func (s *ReviewService) Create(ctx context.Context, dto *model.ReviewCreate, org *model.Organization, actor *model.Account) (map[string]interface{}, error) {
	review := model.Review{
		Title:        dto.Title,
		Text:         dto.Text,
		Rating:       dto.Rating,
		Organization: org.Snapshot(model.ReviewOrganizationFields),
		Author:       actor.Key,
		CreatedAt:    time.Now().UTC(),
	}

	meta, err := s.DB.Collections[model.ColReviews].CreateDocument(ctx, review)
	if err != nil {
		return nil, err
	}

	s.Agg.RecalcAverageRating(ctx, org.Key)

	return query.FindPopulated(ctx, s.DB, "review", meta.Key)
}

// Update applies the update and recalculates the average rating when the
// rating changed.
func (s *ReviewService) Update(ctx context.Context, review *model.Review, dto *model.ReviewUpdate) (map[string]interface{}, error) {
	changes := dto.Changes()
	if len(changes) > 0 {
		update := `
			FOR r IN reviews
				FILTER r._key == @key
				UPDATE r WITH @changes IN reviews
		`
		cursor, err := s.DB.Database.Query(ctx, update, &arangodb.QueryOptions{
			BindVars: map[string]interface{}{"key": review.Key, "changes": changes},
		})
		if err != nil {
			return nil, err
		}
		cursor.Close()

		if _, ok := changes["rating"]; ok {
			s.Agg.RecalcAverageRating(ctx, review.Organization.Key)
		}
	}

	return query.FindPopulated(ctx, s.DB, "review", review.Key)
}

// Delete removes the review and recalculates the average rating.
func (s *ReviewService) Delete(ctx context.Context, review *model.Review) error {
	if _, err := s.DB.Collections[model.ColReviews].DeleteDocument(ctx, review.Key); err != nil {
		return err
	}
	s.Agg.RecalcAverageRating(ctx, review.Organization.Key)
	return nil
}
