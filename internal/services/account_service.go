package services

import (
	"context"
	"errors"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"go.uber.org/zap"

	"github.com/dvinubius/bootcamp-backend/database"
	"github.com/dvinubius/bootcamp-backend/model"
)

// AccountService coordinates account writes and the delete cascade over
// authored reviews, joined organizations and an owned organization.
type AccountService struct {
	DB   database.DBConnection
	Log  *zap.SugaredLogger
	Orgs *OrganizationService
	Agg  *AggregateRecalculator
}

// Get reads a raw account document by key.
func (s *AccountService) Get(ctx context.Context, key string) (*model.Account, error) {
	return s.findOne(ctx, "_key", key)
}

// GetByEmail looks an account up by email address. Returns nil without error
// when no account matches.
func (s *AccountService) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	acc, err := s.findOne(ctx, "email", email)
	if err != nil {
		var respErr *model.ErrorResponse
		if errors.As(err, &respErr) && respErr.StatusCode == 404 {
			return nil, nil
		}
		return nil, err
	}
	return acc, nil
}

func (s *AccountService) findOne(ctx context.Context, filter, val string) (*model.Account, error) {
	q := `
		FOR a IN accounts
			FILTER a.` + "`" + filter + "`" + ` == @val
			LIMIT 1
			RETURN a
	`
	cursor, err := s.DB.Database.Query(ctx, q, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"val": val},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return nil, model.NotFound("account not found")
	}
	var acc model.Account
	if _, err := cursor.ReadDocument(ctx, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

// Create inserts a new account. The password is hashed by the caller.
func (s *AccountService) Create(ctx context.Context, dto *model.AccountCreate, passwordHash string) (*model.Account, error) {
	acc := model.Account{
		Name:                dto.Name,
		Email:               dto.Email,
		Role:                dto.Role,
		PasswordHash:        passwordHash,
		OrganizationsJoined: []model.OrganizationSnapshot{},
		CreatedAt:           time.Now().UTC(),
	}

	meta, err := s.DB.Collections[model.ColAccounts].CreateDocument(ctx, acc)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, model.Conflict("an account with email %s already exists", dto.Email)
		}
		return nil, err
	}
	acc.Key = meta.Key
	return &acc, nil
}

// Update applies a partial update to the account document.
func (s *AccountService) Update(ctx context.Context, acc *model.Account, changes map[string]interface{}) (*model.Account, error) {
	if len(changes) > 0 {
		update := `
			FOR a IN accounts
				FILTER a._key == @key
				UPDATE a WITH @changes IN accounts
		`
		cursor, err := s.DB.Database.Query(ctx, update, &arangodb.QueryOptions{
			BindVars: map[string]interface{}{"key": acc.Key, "changes": changes},
		})
		if err != nil {
			if isUniqueViolation(err) {
				return nil, model.Conflict("an account with that email already exists")
			}
			return nil, err
		}
		cursor.Close()
	}
	return s.Get(ctx, acc.Key)
}

// SetCredentials overwrites credential fields. Nil-valued entries are unset.
func (s *AccountService) SetCredentials(ctx context.Context, key string, changes map[string]interface{}) error {
	update := `
		FOR a IN accounts
			FILTER a._key == @key
			UPDATE a WITH @changes IN accounts OPTIONS { keepNull: false }
	`
	cursor, err := s.DB.Database.Query(ctx, update, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"key": key, "changes": changes},
	})
	if err != nil {
		return err
	}
	cursor.Close()
	return nil
}

// GetByResetToken finds the account holding an unexpired reset token hash.
// Returns nil without error when no account matches.
func (s *AccountService) GetByResetToken(ctx context.Context, tokenHash string) (*model.Account, error) {
	q := `
		FOR a IN accounts
			FILTER a.resetPasswordToken == @token && a.resetPasswordExpire > @now
			LIMIT 1
			RETURN a
	`
	cursor, err := s.DB.Database.Query(ctx, q, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"token": tokenHash, "now": time.Now().UTC()},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return nil, nil
	}
	var acc model.Account
	if _, err := cursor.ReadDocument(ctx, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

// Delete removes the account and cascades: authored reviews are deleted,
// the account is pulled from joined organizations' participant lists, and
// an owned organization is deleted with its own cascade.
func (s *AccountService) Delete(ctx context.Context, acc *model.Account) error {
	reviews := `
		FOR r IN reviews
			FILTER r.author == @account
			REMOVE r IN reviews
			RETURN DISTINCT OLD.organization._key
	`
	cursor, err := s.DB.Database.Query(ctx, reviews, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"account": acc.Key},
	})
	if err != nil {
		return err
	}
	for cursor.HasMore() {
		var orgKey string
		if _, err := cursor.ReadDocument(ctx, &orgKey); err != nil {
			cursor.Close()
			return err
		}
		s.Agg.RecalcAverageRating(ctx, orgKey)
	}
	cursor.Close()

	participants := `
		FOR o IN organizations
			FILTER @account IN o.participants
			UPDATE o WITH { participants: REMOVE_VALUE(o.participants, @account) } IN organizations
	`
	if err := s.Orgs.run(ctx, participants, map[string]interface{}{"account": acc.Key}); err != nil {
		return err
	}

	if acc.OrganizationOwned != nil {
		org, err := s.Orgs.Get(ctx, acc.OrganizationOwned.Key)
		if err != nil {
			var respErr *model.ErrorResponse
			if !errors.As(err, &respErr) || respErr.StatusCode != 404 {
				return err
			}
		} else if err := s.Orgs.Delete(ctx, org, true); err != nil {
			return err
		}
	}

	_, err = s.DB.Collections[model.ColAccounts].DeleteDocument(ctx, acc.Key)
	return err
}
