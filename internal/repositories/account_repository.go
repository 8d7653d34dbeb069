package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"guidelk/internal/models/db_models"
)

type AccountRepository interface {
	FindOrCreate(ctx context.Context, user *db_models.User) (*db_models.User, error)
	FindById(ctx context.Context, id uuid.UUID) (*db_models.User, error)
	FindByFirebaseUID(ctx context.Context, uid string) (*db_models.User, error)
	Delete(ctx context.Context, user *db_models.User) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

// FindOrCreate inserts user unless its firebase uid is already stored, then
// returns the stored row. The first insert wins; email and name of an
// existing user are never overwritten.
func (a *accountRepository) FindOrCreate(ctx context.Context, user *db_models.User) (*db_models.User, error) {
	existing, err := a.FindByFirebaseUID(ctx, user.FirebaseUID)
	if err != nil || existing != nil {
		return existing, err
	}

	err = a.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "firebase_uid"}}, DoNothing: true}).
		Omit(clause.Associations).
		Create(user).Error
	if err != nil {
		return nil, err
	}

	stored, err := a.FindByFirebaseUID(ctx, user.FirebaseUID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return stored, nil
}

func (a *accountRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	return a.findOne(ctx, "id = ?", id)
}

func (a *accountRepository) FindByFirebaseUID(ctx context.Context, uid string) (*db_models.User, error) {
	return a.findOne(ctx, "firebase_uid = ?", uid)
}

func (a *accountRepository) findOne(ctx context.Context, query string, arg interface{}) (*db_models.User, error) {
	var user db_models.User
	err := a.db.WithContext(ctx).First(&user, query, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Delete removes the user with every trip it owns, and their stops and
// bookings, in one transaction.
func (a *accountRepository) Delete(ctx context.Context, user *db_models.User) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&db_models.Trip{}).Select("id").Where("user_id = ?", user.ID)

		if err := tx.Where("trip_id IN (?)", owned).Delete(&db_models.TripStop{}).Error; err != nil {
			return err
		}
		if err := tx.Where("trip_id IN (?)", owned).Delete(&db_models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&db_models.Trip{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db_models.User{}, "id = ?", user.ID).Error
	})
}
