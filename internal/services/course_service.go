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

// CourseService coordinates course writes with the parent organization's
// course list and its derived average cost.
type CourseService struct {
	DB  database.DBConnection
	Log *zap.SugaredLogger
	Agg *AggregateRecalculator
}

// Get reads a raw course document by key.
func (s *CourseService) Get(ctx context.Context, key string) (*model.Course, error) {
	q := `
		FOR c IN courses
			FILTER c._key == @key
			LIMIT 1
			RETURN c
	`
	cursor, err := s.DB.Database.Query(ctx, q, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"key": key},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return nil, model.NotFound("course not found with id of %s", key)
	}
	var course model.Course
	if _, err := cursor.ReadDocument(ctx, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts the course with its organization snapshot, appends the course
// id to the parent's list and recalculates the average cost.
func (s *CourseService) Create(ctx context.Context, dto *model.CourseCreate, org *model.Organization, actor *model.Account) (map[string]interface{}, error) {
	course := model.Course{
		Title:                dto.Title,
		Description:          dto.Description,
		Weeks:                dto.Weeks,
		Tuition:              dto.Tuition,
		MinimumSkill:         dto.MinimumSkill,
		ScholarshipAvailable: dto.ScholarshipAvailable,
		Organization:         org.Snapshot(model.CourseOrganizationFields),
		Owner:                actor.Key,
		CreatedAt:            time.Now().UTC(),
	}

	meta, err := s.DB.Collections[model.ColCourses].CreateDocument(ctx, course)
	if err != nil {
		return nil, err
	}

	push := `
		FOR o IN organizations
			FILTER o._key == @org
			UPDATE o WITH { courses: PUSH(o.courses, @course) } IN organizations
	`
	cursor, err := s.DB.Database.Query(ctx, push, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"org": org.Key, "course": meta.Key},
	})
	if err != nil {
		return nil, err
	}
	cursor.Close()

	s.Agg.RecalcAverageCost(ctx, org.Key)

	return query.FindPopulated(ctx, s.DB, "course", meta.Key)
}

// Update applies the update and recalculates the parent's average cost when
// the tuition changed.
func (s *CourseService) Update(ctx context.Context, course *model.Course, dto *model.CourseUpdate) (map[string]interface{}, error) {
	changes := dto.Changes()
	if len(changes) > 0 {
		update := `
			FOR c IN courses
				FILTER c._key == @key
				UPDATE c WITH @changes IN courses
		`
		cursor, err := s.DB.Database.Query(ctx, update, &arangodb.QueryOptions{
			BindVars: map[string]interface{}{"key": course.Key, "changes": changes},
		})
		if err != nil {
			return nil, err
		}
		cursor.Close()

		if _, ok := changes["tuition"]; ok {
			s.Agg.RecalcAverageCost(ctx, course.Organization.Key)
		}
	}

	return query.FindPopulated(ctx, s.DB, "course", course.Key)
}

// Delete removes the course, pulls its id from the parent's list and
// recalculates the average cost.
func (s *CourseService) Delete(ctx context.Context, course *model.Course) error {
	if _, err := s.DB.Collections[model.ColCourses].DeleteDocument(ctx, course.Key); err != nil {
		return err
	}

	pull := `
		FOR o IN organizations
			FILTER o._key == @org
			UPDATE o WITH { courses: REMOVE_VALUE(o.courses, @course) } IN organizations
	`
	cursor, err := s.DB.Database.Query(ctx, pull, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"org": course.Organization.Key, "course": course.Key},
	})
	if err != nil {
		return err
	}
	cursor.Close()

	s.Agg.RecalcAverageCost(ctx, course.Organization.Key)
	return nil
}
