package usecase

import (
	"context"

	"otodeal/internal/domain/entity"
	"otodeal/internal/domain/repository"
	"otodeal/internal/domain/service"
	"otodeal/pkg/errors"
)

type FavoriteUseCase struct {
	favoriteRepo repository.FavoriteRepository
	carRepo      repository.CarRepository
	showroomRepo repository.ShowroomRepository
}

func NewFavoriteUseCase(
	favoriteRepo repository.FavoriteRepository,
	carRepo repository.CarRepository,
	showroomRepo repository.ShowroomRepository,
) *FavoriteUseCase {
	return &FavoriteUseCase{
		favoriteRepo: favoriteRepo,
		carRepo:      carRepo,
		showroomRepo: showroomRepo,
	}
}

func (uc *FavoriteUseCase) Add(ctx context.Context, requester service.Requester, carID string) (*entity.Favorite, error) {
	car, err := uc.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}

	showroom, err := uc.showroomRepo.GetByID(ctx, car.ShowroomID)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}
	if !service.CanViewCar(requester, car, func(string) *entity.Showroom { return showroom }) {
		return nil, errors.NotFound("Car", nil)
	}
	if showroom != nil && showroom.OwnerID == requester.UserID {
		return nil, errors.BadRequest("Cannot favorite your own car", nil)
	}

	return uc.favoriteRepo.Add(ctx, requester.UserID, carID)
}

func (uc *FavoriteUseCase) Remove(ctx context.Context, userID, carID string) error {
	return uc.favoriteRepo.Remove(ctx, userID, carID)
}

func (uc *FavoriteUseCase) IsFavorite(ctx context.Context, userID, carID string) (bool, error) {
	return uc.favoriteRepo.IsFavorite(ctx, userID, carID)
}

// List enriches favorites with their cars. Cars that were deleted or whose
// showroom has since gone back to draft drop a nil car rather than the whole
// entry, so the user can still unfavorite them.
func (uc *FavoriteUseCase) List(ctx context.Context, requester service.Requester, page, pageSize int) ([]*entity.FavoriteWithCar, int64, error) {
	offset := (page - 1) * pageSize
	favorites, total, err := uc.favoriteRepo.ListByUserID(ctx, requester.UserID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.CarID)
	}
	cars, err := uc.carRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	showroomIDs := make(map[string]bool)
	var sids []string
	for _, car := range cars {
		if !showroomIDs[car.ShowroomID] {
			showroomIDs[car.ShowroomID] = true
			sids = append(sids, car.ShowroomID)
		}
	}
	showrooms, err := uc.showroomRepo.GetByIDs(ctx, sids)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[string]*entity.Showroom, len(showrooms))
	for _, s := range showrooms {
		byID[s.ID] = s
	}
	lookup := func(id string) *entity.Showroom { return byID[id] }

	carByID := make(map[string]*entity.Car, len(cars))
	for _, car := range cars {
		if service.CanViewCar(requester, car, lookup) {
			carByID[car.ID] = car
		}
	}

	result := make([]*entity.FavoriteWithCar, 0, len(favorites))
	for _, f := range favorites {
		result = append(result, &entity.FavoriteWithCar{
			ID:        f.ID,
			UserID:    f.UserID,
			CarID:     f.CarID,
			Car:       carByID[f.CarID],
			CreatedAt: f.CreatedAt,
		})
	}
	return result, total, nil
}

func (uc *FavoriteUseCase) Count(ctx context.Context, userID string) (int64, error) {
	return uc.favoriteRepo.CountByUserID(ctx, userID)
}
