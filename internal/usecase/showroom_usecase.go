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
	"otodeal/pkg/utils"
)

type ShowroomUseCase struct {
	showroomRepo repository.ShowroomRepository
	carRepo      repository.CarRepository
	limiter      RateLimiter
}

func NewShowroomUseCase(
	showroomRepo repository.ShowroomRepository,
	carRepo repository.CarRepository,
	limiter RateLimiter,
) *ShowroomUseCase {
	return &ShowroomUseCase{
		showroomRepo: showroomRepo,
		carRepo:      carRepo,
		limiter:      limiter,
	}
}

type ShowroomInput struct {
	Name        string
	Description string
	City        string
	Phone       string
	LogoURL     string
	BannerURL   string
	// Status only applies on create; updates go through SetStatus.
	Status string
}

func (uc *ShowroomUseCase) Create(ctx context.Context, requester service.Requester, input ShowroomInput) (*entity.Showroom, error) {
	if requester.Role != entity.RoleSeller && !requester.IsAdmin() {
		return nil, errors.Forbidden("Only sellers can create a showroom", nil)
	}

	if _, err := uc.showroomRepo.GetByOwnerID(ctx, requester.UserID); err == nil {
		return nil, errors.Conflict("You already have a showroom")
	} else if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	if allowed, retryAfter := uc.limiter.Allow(ctx, requester.UserID, "create_showroom"); !allowed {
		return nil, errors.TooManyRequests(fmt.Sprintf("Too many showroom attempts, retry in %s", retryAfter.Round(time.Second)))
	}

	status := input.Status
	switch status {
	case "":
		status = entity.ShowroomStatusDraft
	case entity.ShowroomStatusDraft, entity.ShowroomStatusPublished:
	default:
		return nil, errors.BadRequest("Status must be draft or published", nil)
	}

	slug, err := uc.uniqueSlug(ctx, input.Name)
	if err != nil {
		return nil, err
	}

	showroom := &entity.Showroom{
		OwnerID:     requester.UserID,
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		City:        input.City,
		Phone:       input.Phone,
		LogoURL:     input.LogoURL,
		BannerURL:   input.BannerURL,
		Status:      status,
	}

	if err := uc.showroomRepo.Create(ctx, showroom); err != nil {
		return nil, err
	}

	logger.Info("Showroom %s created by %s", showroom.ID, requester.UserID)
	return showroom, nil
}

func (uc *ShowroomUseCase) Update(ctx context.Context, requester service.Requester, id string, input ShowroomInput) (*entity.Showroom, error) {
	showroom, err := uc.visibleShowroom(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	if !requester.IsAdmin() && showroom.OwnerID != requester.UserID {
		return nil, errors.Forbidden("Not your showroom", nil)
	}

	if input.Name != "" {
		showroom.Name = input.Name
	}
	if input.Description != "" {
		showroom.Description = input.Description
	}
	if input.City != "" {
		showroom.City = input.City
	}
	if input.Phone != "" {
		showroom.Phone = input.Phone
	}
	if input.LogoURL != "" {
		showroom.LogoURL = input.LogoURL
	}
	if input.BannerURL != "" {
		showroom.BannerURL = input.BannerURL
	}

	if err := uc.showroomRepo.Update(ctx, showroom); err != nil {
		return nil, err
	}
	return showroom, nil
}

// SetStatus publishes or unpublishes a showroom. Unpublishing hides every car
// in it from everyone but the owner and admins on the next read; nothing else
// needs to change.
func (uc *ShowroomUseCase) SetStatus(ctx context.Context, requester service.Requester, id, status string) (*entity.Showroom, error) {
	if status != entity.ShowroomStatusDraft && status != entity.ShowroomStatusPublished {
		return nil, errors.BadRequest("Status must be draft or published", nil)
	}

	showroom, err := uc.visibleShowroom(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	if !requester.IsAdmin() && showroom.OwnerID != requester.UserID {
		return nil, errors.Forbidden("Not your showroom", nil)
	}

	showroom.Status = status
	if err := uc.showroomRepo.Update(ctx, showroom); err != nil {
		return nil, err
	}

	logger.Info("Showroom %s status set to %s by %s", id, status, requester.UserID)
	return showroom, nil
}

func (uc *ShowroomUseCase) Get(ctx context.Context, requester service.Requester, id string) (*entity.Showroom, error) {
	return uc.visibleShowroom(ctx, requester, id)
}

func (uc *ShowroomUseCase) GetBySlug(ctx context.Context, requester service.Requester, slug string) (*entity.Showroom, error) {
	showroom, err := uc.showroomRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !service.CanViewShowroom(requester, showroom) {
		return nil, errors.NotFound("Showroom", nil)
	}
	return showroom, nil
}

func (uc *ShowroomUseCase) GetMine(ctx context.Context, userID string) (*entity.Showroom, error) {
	return uc.showroomRepo.GetByOwnerID(ctx, userID)
}

// List fetches all candidates and filters by visibility before paginating, so
// the owner's draft shows up on their own listing.
func (uc *ShowroomUseCase) List(ctx context.Context, requester service.Requester, page, pageSize int) ([]*entity.Showroom, int64, error) {
	all, _, err := uc.showroomRepo.List(ctx, 0, 0)
	if err != nil {
		return nil, 0, err
	}

	visible := service.FilterShowrooms(requester, all)
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

func (uc *ShowroomUseCase) Delete(ctx context.Context, requester service.Requester, id string) error {
	showroom, err := uc.visibleShowroom(ctx, requester, id)
	if err != nil {
		return err
	}
	if !requester.IsAdmin() && showroom.OwnerID != requester.UserID {
		return errors.Forbidden("Not your showroom", nil)
	}

	cars, _, err := uc.carRepo.ListByShowroomID(ctx, id, 0, 0)
	if err != nil {
		return err
	}
	for _, car := range cars {
		if err := uc.carRepo.SoftDelete(ctx, car.ID); err != nil {
			return err
		}
	}

	if err := uc.showroomRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Showroom %s deleted by %s (%d cars removed)", id, requester.UserID, len(cars))
	return nil
}

func (uc *ShowroomUseCase) visibleShowroom(ctx context.Context, requester service.Requester, id string) (*entity.Showroom, error) {
	showroom, err := uc.showroomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !service.CanViewShowroom(requester, showroom) {
		return nil, errors.NotFound("Showroom", nil)
	}
	return showroom, nil
}

// maxSlugAttempts bounds the suffix search so a pathological name cannot
// keep the create request spinning against the store.
const maxSlugAttempts = 50

func (uc *ShowroomUseCase) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := utils.Slugify(name)
	if base == "" {
		base = "showroom"
	}

	slug := base
	for i := 2; i <= maxSlugAttempts; i++ {
		_, err := uc.showroomRepo.GetBySlug(ctx, slug)
		if errors.Is(err, "NOT_FOUND") {
			return slug, nil
		}
		if err != nil {
			return "", err
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	return "", errors.Conflict("No available slug for " + base)
}
