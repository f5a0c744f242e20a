package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otodeal/internal/domain/entity"
	"otodeal/internal/domain/service"
	"otodeal/pkg/errors"
)

type fakeShowroomRepo struct {
	showrooms map[string]*entity.Showroom
}

func newFakeShowroomRepo(showrooms ...*entity.Showroom) *fakeShowroomRepo {
	repo := &fakeShowroomRepo{showrooms: map[string]*entity.Showroom{}}
	for _, s := range showrooms {
		repo.showrooms[s.ID] = s
	}
	return repo
}

func (r *fakeShowroomRepo) Create(ctx context.Context, showroom *entity.Showroom) error {
	if showroom.ID == "" {
		showroom.ID = "showroom-" + showroom.OwnerID
	}
	r.showrooms[showroom.ID] = showroom
	return nil
}

func (r *fakeShowroomRepo) GetByID(ctx context.Context, id string) (*entity.Showroom, error) {
	if s, ok := r.showrooms[id]; ok {
		return s, nil
	}
	return nil, errors.NotFound("Showroom", nil)
}

func (r *fakeShowroomRepo) GetBySlug(ctx context.Context, slug string) (*entity.Showroom, error) {
	for _, s := range r.showrooms {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, errors.NotFound("Showroom", nil)
}

func (r *fakeShowroomRepo) GetByOwnerID(ctx context.Context, ownerID string) (*entity.Showroom, error) {
	for _, s := range r.showrooms {
		if s.OwnerID == ownerID {
			return s, nil
		}
	}
	return nil, errors.NotFound("Showroom", nil)
}

func (r *fakeShowroomRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Showroom, error) {
	var result []*entity.Showroom
	for _, id := range ids {
		if s, ok := r.showrooms[id]; ok {
			result = append(result, s)
		}
	}
	return result, nil
}

func (r *fakeShowroomRepo) Update(ctx context.Context, showroom *entity.Showroom) error {
	r.showrooms[showroom.ID] = showroom
	return nil
}

func (r *fakeShowroomRepo) Delete(ctx context.Context, id string) error {
	delete(r.showrooms, id)
	return nil
}

func (r *fakeShowroomRepo) List(ctx context.Context, limit, offset int) ([]*entity.Showroom, int64, error) {
	var result []*entity.Showroom
	for _, s := range r.showrooms {
		result = append(result, s)
	}
	return result, int64(len(result)), nil
}

type fakeCarRepo struct {
	cars []*entity.Car
}

func (r *fakeCarRepo) Create(ctx context.Context, car *entity.Car) error {
	if car.ID == "" {
		car.ID = "car-" + car.Title
	}
	car.CreatedAt = time.Now()
	r.cars = append(r.cars, car)
	return nil
}

func (r *fakeCarRepo) GetByID(ctx context.Context, id string) (*entity.Car, error) {
	for _, car := range r.cars {
		if car.ID == id && car.DeletedAt == nil {
			return car, nil
		}
	}
	return nil, errors.NotFound("Car", nil)
}

func (r *fakeCarRepo) List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Car, int64, error) {
	var result []*entity.Car
	for _, car := range r.cars {
		if car.DeletedAt != nil {
			continue
		}
		if status, ok := filter["status"]; ok && car.Status != status {
			continue
		}
		result = append(result, car)
	}
	return result, int64(len(result)), nil
}

func (r *fakeCarRepo) Search(ctx context.Context, query string, filter map[string]interface{}, limit, offset int) ([]*entity.Car, int64, error) {
	return r.List(ctx, filter, "", limit, offset)
}

func (r *fakeCarRepo) ListByShowroomID(ctx context.Context, showroomID string, limit, offset int) ([]*entity.Car, int64, error) {
	var result []*entity.Car
	for _, car := range r.cars {
		if car.ShowroomID == showroomID && car.DeletedAt == nil {
			result = append(result, car)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeCarRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Car, error) {
	var result []*entity.Car
	for _, id := range ids {
		if car, err := r.GetByID(ctx, id); err == nil {
			result = append(result, car)
		}
	}
	return result, nil
}

func (r *fakeCarRepo) Update(ctx context.Context, car *entity.Car) error {
	for i, existing := range r.cars {
		if existing.ID == car.ID {
			r.cars[i] = car
			return nil
		}
	}
	return errors.NotFound("Car", nil)
}

func (r *fakeCarRepo) SoftDelete(ctx context.Context, id string) error {
	for _, car := range r.cars {
		if car.ID == id {
			now := time.Now()
			car.DeletedAt = &now
			return nil
		}
	}
	return errors.NotFound("Car", nil)
}

func (r *fakeCarRepo) IncrementViews(ctx context.Context, id string) error {
	for _, car := range r.cars {
		if car.ID == id {
			car.Views++
		}
	}
	return nil
}

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(ctx context.Context, userID, action string) (bool, time.Duration) {
	return true, 0
}

type denyAllLimiter struct{}

func (denyAllLimiter) Allow(ctx context.Context, userID, action string) (bool, time.Duration) {
	return false, time.Minute
}

func buyer(id string) service.Requester {
	return service.Requester{Authenticated: true, UserID: id, Role: entity.RoleBuyer}
}

func seller(id string) service.Requester {
	return service.Requester{Authenticated: true, UserID: id, Role: entity.RoleSeller}
}

func admin(id string) service.Requester {
	return service.Requester{Authenticated: true, UserID: id, Role: entity.RoleAdmin}
}

func marketplaceFixture() (*CarUseCase, *fakeCarRepo, *fakeShowroomRepo) {
	showroomRepo := newFakeShowroomRepo(
		&entity.Showroom{ID: "sr-pub", OwnerID: "seller-1", Status: entity.ShowroomStatusPublished},
		&entity.Showroom{ID: "sr-draft", OwnerID: "seller-2", Status: entity.ShowroomStatusDraft},
	)
	carRepo := &fakeCarRepo{cars: []*entity.Car{
		{ID: "car-pub", ShowroomID: "sr-pub", Title: "Civic", Status: entity.CarStatusActive},
		{ID: "car-draft", ShowroomID: "sr-draft", Title: "Corolla", Status: entity.CarStatusActive, IsFeatured: true},
		{ID: "car-orphan", ShowroomID: "sr-gone", Title: "Ghost", Status: entity.CarStatusActive},
	}}
	uc := NewCarUseCase(carRepo, showroomRepo, allowAllLimiter{})
	return uc, carRepo, showroomRepo
}

func TestCarList_HidesDraftAndOrphanFromBuyers(t *testing.T) {
	uc, _, _ := marketplaceFixture()

	cars, total, err := uc.List(context.Background(), buyer("buyer-1"), CarListParams{Page: 1, PageSize: 20})
	require.NoError(t, err)

	assert.Equal(t, int64(1), total)
	require.Len(t, cars, 1)
	assert.Equal(t, "car-pub", cars[0].ID)
}

func TestCarList_OwnerSeesCarsInOwnDraftShowroom(t *testing.T) {
	uc, _, _ := marketplaceFixture()

	cars, _, err := uc.List(context.Background(), seller("seller-2"), CarListParams{Page: 1, PageSize: 20})
	require.NoError(t, err)

	ids := map[string]bool{}
	for _, car := range cars {
		ids[car.ID] = true
	}
	assert.True(t, ids["car-pub"])
	assert.True(t, ids["car-draft"])
	assert.False(t, ids["car-orphan"])
}

func TestCarList_AdminSeesEverything(t *testing.T) {
	uc, _, _ := marketplaceFixture()

	cars, total, err := uc.List(context.Background(), admin("admin-1"), CarListParams{Page: 1, PageSize: 20})
	require.NoError(t, err)

	assert.Equal(t, int64(3), total)
	assert.Len(t, cars, 3)
}

func TestCarGet_InvisibleCarReportsNotFound(t *testing.T) {
	uc, _, _ := marketplaceFixture()

	_, err := uc.Get(context.Background(), buyer("buyer-1"), "car-draft")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	_, err = uc.Get(context.Background(), buyer("buyer-1"), "car-orphan")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestCarFeatured_SelectsFromVisibleSetOnly(t *testing.T) {
	uc, _, _ := marketplaceFixture()

	// The only featured car sits in a draft showroom; buyers must not see it
	// even though the flag is set.
	cars, err := uc.Featured(context.Background(), buyer("buyer-1"), 10)
	require.NoError(t, err)
	assert.Empty(t, cars)

	cars, err = uc.Featured(context.Background(), seller("seller-2"), 10)
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, "car-draft", cars[0].ID)
}

func TestCarCreate_RequiresShowroom(t *testing.T) {
	uc, _, _ := marketplaceFixture()

	_, err := uc.Create(context.Background(), seller("seller-without-showroom"), CarInput{Title: "Swift"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCarCreate_RateLimited(t *testing.T) {
	_, carRepo, showroomRepo := marketplaceFixture()
	uc := NewCarUseCase(carRepo, showroomRepo, denyAllLimiter{})

	_, err := uc.Create(context.Background(), seller("seller-1"), CarInput{Title: "Swift"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "TOO_MANY_REQUESTS"))
}

func TestCarSetFeatured_AdminOnly(t *testing.T) {
	uc, _, _ := marketplaceFixture()

	_, err := uc.SetFeatured(context.Background(), seller("seller-1"), "car-pub", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	car, err := uc.SetFeatured(context.Background(), admin("admin-1"), "car-pub", true)
	require.NoError(t, err)
	assert.True(t, car.IsFeatured)
}

func TestCarUpdate_OtherSellerCannotTouchVisibleCar(t *testing.T) {
	uc, _, _ := marketplaceFixture()

	// The car is visible to everyone, so ownership failure is forbidden, not
	// not-found.
	_, err := uc.Update(context.Background(), seller("seller-2"), "car-pub", CarInput{Title: "Hijacked"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestCarListByShowroom_DraftShowroomHiddenFromBuyers(t *testing.T) {
	uc, _, _ := marketplaceFixture()

	_, _, err := uc.ListByShowroom(context.Background(), buyer("buyer-1"), "sr-draft", 1, 20)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	cars, _, err := uc.ListByShowroom(context.Background(), seller("seller-2"), "sr-draft", 1, 20)
	require.NoError(t, err)
	assert.Len(t, cars, 1)
}
