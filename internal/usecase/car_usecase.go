package usecase

import (
	"context"
	"fmt"
	"time"

	"otodeal/internal/domain/entity"
	"otodeal/internal/domain/repository"
	"otodeal/internal/domain/service"
	"otodeal/pkg/errors"
	"otodeal/pkg/logger"
)

type CarUseCase struct {
	carRepo      repository.CarRepository
	showroomRepo repository.ShowroomRepository
	limiter      RateLimiter
}

func NewCarUseCase(
	carRepo repository.CarRepository,
	showroomRepo repository.ShowroomRepository,
	limiter RateLimiter,
) *CarUseCase {
	return &CarUseCase{
		carRepo:      carRepo,
		showroomRepo: showroomRepo,
		limiter:      limiter,
	}
}

type CarInput struct {
	Title        string
	Make         string
	Model        string
	Year         int
	Price        float64
	Mileage      int
	Transmission string
	FuelType     string
	Description  string
	Images       []entity.CarImage
	Status       string
}

type CarListParams struct {
	Make     string
	Model    string
	Year     int
	Status   string
	Sort     string
	Page     int
	PageSize int
}

func (uc *CarUseCase) Create(ctx context.Context, requester service.Requester, input CarInput) (*entity.Car, error) {
	showroom, err := uc.showroomRepo.GetByOwnerID(ctx, requester.UserID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, errors.BadRequest("Create a showroom before listing cars", nil)
		}
		return nil, err
	}

	if allowed, retryAfter := uc.limiter.Allow(ctx, requester.UserID, "create_car"); !allowed {
		return nil, errors.TooManyRequests(fmt.Sprintf("Too many listings, retry in %s", retryAfter.Round(time.Second)))
	}

	car := &entity.Car{
		ShowroomID:   showroom.ID,
		Title:        input.Title,
		Make:         input.Make,
		Model:        input.Model,
		Year:         input.Year,
		Price:        input.Price,
		Mileage:      input.Mileage,
		Transmission: input.Transmission,
		FuelType:     input.FuelType,
		Description:  input.Description,
		Images:       input.Images,
		Status:       entity.CarStatusActive,
	}

	if err := uc.carRepo.Create(ctx, car); err != nil {
		return nil, err
	}

	logger.Info("Car %s created in showroom %s", car.ID, showroom.ID)
	return car, nil
}

// Get applies the visibility rule before anything else; an invisible car is
// reported as missing, never as forbidden. The view counter bumps in the
// background so a slow write cannot delay the response.
func (uc *CarUseCase) Get(ctx context.Context, requester service.Requester, id string) (*entity.Car, error) {
	car, err := uc.carRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lookup, err := uc.lookupFor(ctx, []*entity.Car{car})
	if err != nil {
		return nil, err
	}
	if !service.CanViewCar(requester, car, lookup) {
		return nil, errors.NotFound("Car", nil)
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := uc.carRepo.IncrementViews(bgCtx, id); err != nil {
			logger.Warn("Failed to increment views for car %s: %v", id, err)
		}
	}()

	return car, nil
}

func (uc *CarUseCase) Update(ctx context.Context, requester service.Requester, id string, input CarInput) (*entity.Car, error) {
	car, err := uc.ownedCar(ctx, requester, id)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		car.Title = input.Title
	}
	if input.Make != "" {
		car.Make = input.Make
	}
	if input.Model != "" {
		car.Model = input.Model
	}
	if input.Year != 0 {
		car.Year = input.Year
	}
	if input.Price != 0 {
		car.Price = input.Price
	}
	if input.Mileage != 0 {
		car.Mileage = input.Mileage
	}
	if input.Transmission != "" {
		car.Transmission = input.Transmission
	}
	if input.FuelType != "" {
		car.FuelType = input.FuelType
	}
	if input.Description != "" {
		car.Description = input.Description
	}
	if input.Images != nil {
		car.Images = input.Images
	}
	if input.Status != "" {
		if input.Status != entity.CarStatusActive && input.Status != entity.CarStatusSold {
			return nil, errors.BadRequest("Status must be active or sold", nil)
		}
		car.Status = input.Status
	}

	if err := uc.carRepo.Update(ctx, car); err != nil {
		return nil, err
	}
	return car, nil
}

func (uc *CarUseCase) Delete(ctx context.Context, requester service.Requester, id string) error {
	if _, err := uc.ownedCar(ctx, requester, id); err != nil {
		return err
	}
	return uc.carRepo.SoftDelete(ctx, id)
}

// List fetches candidates, applies visibility, then paginates. Pagination
// after filtering keeps page boundaries stable for each requester.
func (uc *CarUseCase) List(ctx context.Context, requester service.Requester, params CarListParams) ([]*entity.Car, int64, error) {
	cars, _, err := uc.carRepo.List(ctx, carFilter(params), params.Sort, 0, 0)
	if err != nil {
		return nil, 0, err
	}
	return uc.filterAndPaginate(ctx, requester, cars, params.Page, params.PageSize)
}

func (uc *CarUseCase) Search(ctx context.Context, requester service.Requester, query string, params CarListParams) ([]*entity.Car, int64, error) {
	cars, _, err := uc.carRepo.Search(ctx, query, carFilter(params), 0, 0)
	if err != nil {
		return nil, 0, err
	}
	return uc.filterAndPaginate(ctx, requester, cars, params.Page, params.PageSize)
}

// Featured selects featured cars strictly from the requester's visible set,
// so a featured car in a draft showroom never leaks.
func (uc *CarUseCase) Featured(ctx context.Context, requester service.Requester, limit int) ([]*entity.Car, error) {
	cars, _, err := uc.carRepo.List(ctx, map[string]interface{}{"status": entity.CarStatusActive}, "", 0, 0)
	if err != nil {
		return nil, err
	}

	lookup, err := uc.lookupFor(ctx, cars)
	if err != nil {
		return nil, err
	}
	visible := service.FilterCars(requester, cars, lookup)

	featured := make([]*entity.Car, 0, limit)
	for _, car := range visible {
		if !car.IsFeatured {
			continue
		}
		featured = append(featured, car)
		if limit > 0 && len(featured) == limit {
			break
		}
	}
	return featured, nil
}

// SetFeatured is admin only; the flag is curation, not ownership.
func (uc *CarUseCase) SetFeatured(ctx context.Context, requester service.Requester, id string, featured bool) (*entity.Car, error) {
	if !requester.IsAdmin() {
		return nil, errors.Forbidden("Only admins can feature cars", nil)
	}

	car, err := uc.carRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	car.IsFeatured = featured
	if err := uc.carRepo.Update(ctx, car); err != nil {
		return nil, err
	}

	logger.Info("Car %s featured=%t by %s", id, featured, requester.UserID)
	return car, nil
}

func (uc *CarUseCase) ListByShowroom(ctx context.Context, requester service.Requester, showroomID string, page, pageSize int) ([]*entity.Car, int64, error) {
	showroom, err := uc.showroomRepo.GetByID(ctx, showroomID)
	if err != nil {
		return nil, 0, err
	}
	if !service.CanViewShowroom(requester, showroom) {
		return nil, 0, errors.NotFound("Showroom", nil)
	}

	// Every car inherits visibility from this showroom, so once the showroom
	// is visible no further filtering is needed.
	offset := (page - 1) * pageSize
	return uc.carRepo.ListByShowroomID(ctx, showroomID, pageSize, offset)
}

func (uc *CarUseCase) ownedCar(ctx context.Context, requester service.Requester, id string) (*entity.Car, error) {
	car, err := uc.carRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lookup, err := uc.lookupFor(ctx, []*entity.Car{car})
	if err != nil {
		return nil, err
	}
	if !service.CanViewCar(requester, car, lookup) {
		return nil, errors.NotFound("Car", nil)
	}
	if requester.IsAdmin() {
		return car, nil
	}

	showroom := lookup(car.ShowroomID)
	if showroom == nil || showroom.OwnerID != requester.UserID {
		return nil, errors.Forbidden("Not your car", nil)
	}
	return car, nil
}

func (uc *CarUseCase) filterAndPaginate(ctx context.Context, requester service.Requester, cars []*entity.Car, page, pageSize int) ([]*entity.Car, int64, error) {
	lookup, err := uc.lookupFor(ctx, cars)
	if err != nil {
		return nil, 0, err
	}

	visible := service.FilterCars(requester, cars, lookup)
	total := int64(len(visible))

	offset := (page - 1) * pageSize
	if offset >= len(visible) {
		return nil, total, nil
	}
	visible = visible[offset:]
	if pageSize > 0 && pageSize < len(visible) {
		visible = visible[:pageSize]
	}

	return visible, total, nil
}

// lookupFor batch-fetches the showrooms behind a car set and returns an
// in-memory resolver for the visibility filter. Unresolvable showrooms stay
// nil, which the filter treats as invisible.
func (uc *CarUseCase) lookupFor(ctx context.Context, cars []*entity.Car) (service.ShowroomLookup, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, car := range cars {
		if car == nil || seen[car.ShowroomID] {
			continue
		}
		seen[car.ShowroomID] = true
		ids = append(ids, car.ShowroomID)
	}

	showrooms, err := uc.showroomRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entity.Showroom, len(showrooms))
	for _, s := range showrooms {
		byID[s.ID] = s
	}
	return func(showroomID string) *entity.Showroom {
		return byID[showroomID]
	}, nil
}

func carFilter(params CarListParams) map[string]interface{} {
	filter := map[string]interface{}{}
	if params.Make != "" {
		filter["make"] = params.Make
	}
	if params.Model != "" {
		filter["model"] = params.Model
	}
	if params.Year != 0 {
		filter["year"] = params.Year
	}
	if params.Status != "" {
		filter["status"] = params.Status
	}
	return filter
}
