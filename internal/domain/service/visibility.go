package service

import (
	"otodeal/internal/domain/entity"
)

// Requester identifies who is asking, derived from the session on every
// request. A zero Requester is an anonymous guest.
type Requester struct {
	Authenticated bool
	UserID        string
	Role          string
}

func Guest() Requester {
	return Requester{}
}

func RequesterFor(user *entity.User) Requester {
	if user == nil {
		return Requester{}
	}
	return Requester{
		Authenticated: true,
		UserID:        user.ID,
		Role:          user.Role,
	}
}

func (r Requester) IsAdmin() bool {
	return r.Authenticated && r.Role == entity.RoleAdmin
}

// ShowroomLookup resolves a showroom by ID, returning nil when it does not
// exist. Used by car visibility checks so callers can batch-fetch.
type ShowroomLookup func(showroomID string) *entity.Showroom

// FilterShowrooms narrows a candidate list to what the requester may see:
// admins see everything, published showrooms are visible to everyone, and an
// owner always sees their own showroom. Published showrooms keep their input
// order; the owner's unpublished showroom, if any, is appended at the end.
func FilterShowrooms(req Requester, showrooms []*entity.Showroom) []*entity.Showroom {
	if req.IsAdmin() {
		return showrooms
	}

	visible := make([]*entity.Showroom, 0, len(showrooms))
	var own *entity.Showroom
	for _, s := range showrooms {
		if s == nil {
			continue
		}
		if s.Status == entity.ShowroomStatusPublished {
			visible = append(visible, s)
			continue
		}
		if req.Authenticated && s.OwnerID == req.UserID && own == nil {
			own = s
		}
	}
	if own != nil {
		visible = append(visible, own)
	}
	return visible
}

// CanViewShowroom applies the same rule to a single showroom. A false result
// must be surfaced as "not found", never "forbidden", so draft showrooms do
// not leak their existence.
func CanViewShowroom(req Requester, showroom *entity.Showroom) bool {
	if showroom == nil {
		return false
	}
	if req.IsAdmin() {
		return true
	}
	if showroom.Status == entity.ShowroomStatusPublished {
		return true
	}
	return req.Authenticated && showroom.OwnerID == req.UserID
}

// CanViewCar resolves the car's showroom and inherits its visibility. A car
// whose showroom cannot be resolved is invisible to non-admins rather than
// an error.
func CanViewCar(req Requester, car *entity.Car, lookup ShowroomLookup) bool {
	if car == nil {
		return false
	}
	if req.IsAdmin() {
		return true
	}
	if lookup == nil {
		return false
	}
	return CanViewShowroom(req, lookup(car.ShowroomID))
}

// FilterCars keeps every car whose showroom the requester may see. Featured
// or any other selection must be applied after this filter, never before.
func FilterCars(req Requester, cars []*entity.Car, lookup ShowroomLookup) []*entity.Car {
	if req.IsAdmin() {
		return cars
	}

	visible := make([]*entity.Car, 0, len(cars))
	for _, car := range cars {
		if CanViewCar(req, car, lookup) {
			visible = append(visible, car)
		}
	}
	return visible
}
