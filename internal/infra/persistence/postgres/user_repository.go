// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"strings"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	"coderr/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Create persists a new user together with its profile.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = newID()
	}
	userM := fromUserDomain(user)

	// GORM inserts the has-one profile in the same statement batch.
	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.Wrap(repository.ErrUserConflict, err.Error())
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt
	if user.Profile != nil && userM.Profile != nil {
		user.Profile.UserID = userM.ID
		user.Profile.CreatedAt = userM.Profile.CreatedAt
	}

	return nil
}

// FindByID retrieves a single user by their unique ID, preloading the profile.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Profile").
		Where("id = ?", id).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByUsernameOrEmail retrieves the user whose username or email equals identity.
// A username match wins when two accounts collide.
func (repo *userRepository) FindByUsernameOrEmail(ctx context.Context, identity string) (*entity.User, error) {
	var users []model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Profile").
		Where("username = ? OR LOWER(email) = ?", identity, strings.ToLower(identity)).
		Limit(2).
		Find(&users).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by identity")
	}
	if len(users) == 0 {
		return nil, repository.ErrUserNotFound
	}

	for i := range users {
		if users[i].Username == identity {
			return toUserDomain(&users[i]), nil
		}
	}

	return toUserDomain(&users[0]), nil
}

// ExistsByEmail reports whether a user other than excludeID owns the email, compared case-insensitively.
func (repo *userRepository) ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("LOWER(email) = ?", strings.ToLower(email))
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check email")
	}

	return count > 0, nil
}

// ExistsByUsername reports whether the username is taken.
func (repo *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check username")
	}

	return count > 0, nil
}

// Update writes the mutable user and profile columns. The profile type is never written.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	db := repo.db.WithContext(ctx)

	result := db.Model(&model.UserModel{ID: user.ID}).Updates(map[string]any{
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
	})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return errors.Wrap(repository.ErrUserConflict, result.Error.Error())
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	if user.Profile != nil {
		err := db.Model(&model.ProfileModel{UserID: user.ID}).Updates(map[string]any{
			"file":          user.Profile.File,
			"uploaded_at":   user.Profile.UploadedAt,
			"location":      user.Profile.Location,
			"tel":           user.Profile.Tel,
			"description":   user.Profile.Description,
			"working_hours": user.Profile.WorkingHours,
		}).Error
		if err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to update profile")
		}
	}

	return nil
}

// ListByProfileType returns one page of users of the given profile type, oldest first.
func (repo *userRepository) ListByProfileType(ctx context.Context, profileType entity.ProfileType, page repository.Page) ([]*entity.User, int64, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Where("profiles.type = ?", profileType.String()).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count users")
	}

	var users []*model.UserModel
	err := paginate(query, page).
		Select("users.*").
		Preload("Profile").
		Order("profiles.created_at ASC").
		Order("users.id ASC").
		Find(&users).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list users")
	}

	result := make([]*entity.User, 0, len(users))
	for _, userM := range users {
		result = append(result, toUserDomain(userM))
	}

	return result, total, nil
}

// CountByProfileType counts the profiles of the given type.
func (repo *userRepository) CountByProfileType(ctx context.Context, profileType entity.ProfileType) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("type = ?", profileType.String()).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count profiles")
	}

	return count, nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:        data.ID,
		Username:  data.Username,
		Email:     data.Email,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		IsStaff:   data.IsStaff,
		Profile:   toProfileDomain(data.Profile),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:        data.ID,
		Username:  data.Username,
		Email:     data.Email,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		IsStaff:   data.IsStaff,
		Profile:   fromProfileDomain(data.ID, data.Profile),
	}
}

// toProfileDomain converts a GORM ProfileModel to a domain Profile entity.
func toProfileDomain(data *model.ProfileModel) *entity.Profile {
	if data == nil {
		return nil
	}

	return &entity.Profile{
		UserID:       data.UserID,
		Type:         entity.ProfileType(data.Type),
		File:         data.File,
		UploadedAt:   data.UploadedAt,
		Location:     data.Location,
		Tel:          data.Tel,
		Description:  data.Description,
		WorkingHours: data.WorkingHours,
		CreatedAt:    data.CreatedAt,
	}
}

// fromProfileDomain converts a domain Profile entity to a GORM ProfileModel for persistence.
func fromProfileDomain(userID uuid.UUID, data *entity.Profile) *model.ProfileModel {
	if data == nil {
		return nil
	}

	return &model.ProfileModel{
		UserID:       userID,
		Type:         data.Type.String(),
		File:         data.File,
		UploadedAt:   data.UploadedAt,
		Location:     data.Location,
		Tel:          data.Tel,
		Description:  data.Description,
		WorkingHours: data.WorkingHours,
	}
}
