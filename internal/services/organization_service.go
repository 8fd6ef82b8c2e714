package services

import (
	"context"
	"errors"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"go.uber.org/zap"

	"github.com/dvinubius/bootcamp-backend/database"
	"github.com/dvinubius/bootcamp-backend/internal/geo"
	"github.com/dvinubius/bootcamp-backend/model"
	"github.com/dvinubius/bootcamp-backend/query"
	"github.com/dvinubius/bootcamp-backend/util"
)

// OrganizationService coordinates organization writes with the denormalized
// snapshots embedded in courses, reviews and accounts.
type OrganizationService struct {
	DB  database.DBConnection
	Geo geo.Geocoder
	Log *zap.SugaredLogger
}

// Get reads a raw organization document by key.
func (s *OrganizationService) Get(ctx context.Context, key string) (*model.Organization, error) {
	return s.findOne(ctx, "FILTER o._key == @val", key)
}

// GetByOwner returns the organization owned by the account, or nil.
func (s *OrganizationService) GetByOwner(ctx context.Context, ownerKey string) (*model.Organization, error) {
	org, err := s.findOne(ctx, "FILTER o.owner == @val", ownerKey)
	if err != nil {
		var e *model.ErrorResponse
		if errors.As(err, &e) && e.StatusCode == 404 {
			return nil, nil
		}
		return nil, err
	}
	return org, nil
}

func (s *OrganizationService) findOne(ctx context.Context, filter, val string) (*model.Organization, error) {
	query := `
		FOR o IN organizations
			` + filter + `
			LIMIT 1
			RETURN o
	`
	cursor, err := s.DB.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"val": val},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return nil, model.NotFound("organization not found")
	}
	var org model.Organization
	if _, err := cursor.ReadDocument(ctx, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

// Create inserts the organization and writes the owned-organization snapshot
// onto the acting account.
func (s *OrganizationService) Create(ctx context.Context, dto *model.OrganizationCreate, actor *model.Account) (map[string]interface{}, error) {
	org := model.Organization{
		Name:          dto.Name,
		Slug:          util.Slugify(dto.Name),
		Description:   dto.Description,
		Website:       dto.Website,
		Phone:         dto.Phone,
		Email:         dto.Email,
		Address:       dto.Address,
		Careers:       dto.Careers,
		Photo:         dto.Photo,
		Housing:       dto.Housing,
		JobAssistance: dto.JobAssistance,
		JobGuarantee:  dto.JobGuarantee,
		AcceptGi:      dto.AcceptGi,
		Owner:         actor.Key,
		Courses:       []string{},
		Participants:  []string{},
		CreatedAt:     time.Now().UTC(),
	}

	loc, err := s.Geo.Geocode(ctx, dto.Address)
	switch {
	case err == nil:
		org.Location = loc
		org.Address = loc.FormattedAddress
	case errors.Is(err, geo.ErrNotConfigured):
		// directory stays usable without a geocoder; radius search will reject
	default:
		return nil, model.BadRequest("could not geocode address: %s", dto.Address)
	}

	meta, err := s.DB.Collections[model.ColOrganizations].CreateDocument(ctx, org)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, model.Conflict("an organization named %q already exists", dto.Name)
		}
		return nil, err
	}
	org.Key = meta.Key

	// owned snapshot on the acting account
	snap := org.Snapshot(model.AccountOwnedOrganizationFields)
	setOwned := `
		FOR a IN accounts
			FILTER a._key == @account
			UPDATE a WITH { organizationOwned: @snap } IN accounts
	`
	cursor, err := s.DB.Database.Query(ctx, setOwned, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"account": actor.Key, "snap": snap},
	})
	if err != nil {
		return nil, err
	}
	cursor.Close()

	return query.FindPopulated(ctx, s.DB, "organization", org.Key)
}

// Update applies the field update and propagates the changed allow-listed
// fields into every embedded snapshot of this organization. The four
// propagations are independent; each runs only when the update intersects its
// allow-list.
func (s *OrganizationService) Update(ctx context.Context, org *model.Organization, dto *model.OrganizationUpdate) (map[string]interface{}, error) {
	changes := dto.Changes()

	if dto.Name != nil {
		changes["slug"] = util.Slugify(*dto.Name)
	}
	if dto.Address != nil {
		loc, err := s.Geo.Geocode(ctx, *dto.Address)
		switch {
		case err == nil:
			changes["location"] = loc
			changes["address"] = loc.FormattedAddress
		case errors.Is(err, geo.ErrNotConfigured):
		default:
			return nil, model.BadRequest("could not geocode address: %s", *dto.Address)
		}
	}

	if len(changes) > 0 {
		update := `
			FOR o IN organizations
				FILTER o._key == @org
				UPDATE o WITH @changes IN organizations
		`
		cursor, err := s.DB.Database.Query(ctx, update, &arangodb.QueryOptions{
			BindVars: map[string]interface{}{"org": org.Key, "changes": changes},
		})
		if err != nil {
			if isUniqueViolation(err) {
				return nil, model.Conflict("an organization with that name already exists")
			}
			return nil, err
		}
		cursor.Close()

		if err := s.propagate(ctx, org, changes); err != nil {
			return nil, err
		}
	}

	return query.FindPopulated(ctx, s.DB, "organization", org.Key)
}

func (s *OrganizationService) propagate(ctx context.Context, org *model.Organization, changes map[string]interface{}) error {
	// courses embedding this organization
	if patch := propagationPatch(changes, model.CourseOrganizationFields); len(patch) > 0 {
		q := `
			FOR c IN courses
				FILTER c.organization._key == @org
				UPDATE c WITH { organization: MERGE(c.organization, @patch) } IN courses
		`
		if err := s.run(ctx, q, map[string]interface{}{"org": org.Key, "patch": patch}); err != nil {
			return err
		}
	}

	// reviews for this organization
	if patch := propagationPatch(changes, model.ReviewOrganizationFields); len(patch) > 0 {
		q := `
			FOR r IN reviews
				FILTER r.organization._key == @org
				UPDATE r WITH { organization: MERGE(r.organization, @patch) } IN reviews
		`
		if err := s.run(ctx, q, map[string]interface{}{"org": org.Key, "patch": patch}); err != nil {
			return err
		}
	}

	// accounts that joined this organization
	if patch := propagationPatch(changes, model.AccountJoinedOrganizationFields); len(patch) > 0 {
		q := `
			FOR a IN accounts
				FILTER @org IN a.organizationsJoined[*]._key
				UPDATE a WITH {
					organizationsJoined: (
						FOR j IN a.organizationsJoined
							RETURN j._key == @org ? MERGE(j, @patch) : j
					)
				} IN accounts
		`
		if err := s.run(ctx, q, map[string]interface{}{"org": org.Key, "patch": patch}); err != nil {
			return err
		}
	}

	// the owning account's owned snapshot
	if patch := propagationPatch(changes, model.AccountOwnedOrganizationFields); len(patch) > 0 {
		q := `
			FOR a IN accounts
				FILTER a._key == @owner AND a.organizationOwned._key == @org
				UPDATE a WITH { organizationOwned: MERGE(a.organizationOwned, @patch) } IN accounts
		`
		if err := s.run(ctx, q, map[string]interface{}{"owner": org.Owner, "org": org.Key, "patch": patch}); err != nil {
			return err
		}
	}

	return nil
}

// SetPhoto records the stored photo filename on the organization. Photos are
// not part of any snapshot allow-list, so nothing propagates.
func (s *OrganizationService) SetPhoto(ctx context.Context, org *model.Organization, filename string) error {
	update := `
		FOR o IN organizations
			FILTER o._key == @org
			UPDATE o WITH { photo: @photo } IN organizations
	`
	return s.run(ctx, update, map[string]interface{}{"org": org.Key, "photo": filename})
}

// Register adds the account to the organization's participant set and appends
// the joined snapshot to the account.
func (s *OrganizationService) Register(ctx context.Context, org *model.Organization, accountKey string) (map[string]interface{}, error) {
	push := `
		FOR o IN organizations
			FILTER o._key == @org
			UPDATE o WITH { participants: PUSH(o.participants, @account) } IN organizations
	`
	if err := s.run(ctx, push, map[string]interface{}{"org": org.Key, "account": accountKey}); err != nil {
		return nil, err
	}

	snap := org.Snapshot(model.AccountJoinedOrganizationFields)
	join := `
		FOR a IN accounts
			FILTER a._key == @account
			UPDATE a WITH { organizationsJoined: PUSH(a.organizationsJoined, @snap) } IN accounts
	`
	if err := s.run(ctx, join, map[string]interface{}{"account": accountKey, "snap": snap}); err != nil {
		return nil, err
	}

	return query.FindPopulated(ctx, s.DB, "organization", org.Key)
}

// Delete removes the organization and cascades: the owner's owned snapshot is
// cleared (unless the owner is being deleted by the caller), every
// participant's joined list is stripped, and all courses and reviews of the
// organization are deleted.
func (s *OrganizationService) Delete(ctx context.Context, org *model.Organization, ownerDeleted bool) error {
	if _, err := s.DB.Collections[model.ColOrganizations].DeleteDocument(ctx, org.Key); err != nil {
		return err
	}

	if !ownerDeleted {
		clearOwned := `
			FOR a IN accounts
				FILTER a._key == @owner
				UPDATE a WITH { organizationOwned: null } IN accounts OPTIONS { keepNull: false }
		`
		if err := s.run(ctx, clearOwned, map[string]interface{}{"owner": org.Owner}); err != nil {
			return err
		}
	}

	stripJoined := `
		FOR a IN accounts
			FILTER a._key IN @participants
			UPDATE a WITH {
				organizationsJoined: (
					FOR j IN a.organizationsJoined
						FILTER j._key != @org
						RETURN j
				)
			} IN accounts
	`
	if err := s.run(ctx, stripJoined, map[string]interface{}{"participants": org.Participants, "org": org.Key}); err != nil {
		return err
	}

	dropCourses := `
		FOR c IN courses
			FILTER c.organization._key == @org
			REMOVE c IN courses
	`
	if err := s.run(ctx, dropCourses, map[string]interface{}{"org": org.Key}); err != nil {
		return err
	}

	dropReviews := `
		FOR r IN reviews
			FILTER r.organization._key == @org
			REMOVE r IN reviews
	`
	return s.run(ctx, dropReviews, map[string]interface{}{"org": org.Key})
}

func (s *OrganizationService) run(ctx context.Context, query string, bindVars map[string]interface{}) error {
	cursor, err := s.DB.Database.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return err
	}
	cursor.Close()
	return nil
}
