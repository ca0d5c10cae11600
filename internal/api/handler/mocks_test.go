package handler_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/onthegorentals/onthego/internal/auth"
	"github.com/onthegorentals/onthego/internal/booking"
	"github.com/onthegorentals/onthego/internal/car"
	"github.com/onthegorentals/onthego/internal/insurance"
)

type memUserRepo struct {
	nextID int64
	users  map[int64]*auth.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*auth.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *auth.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return auth.ErrEmailExists
		}
	}
	r.nextID++
	u.ID = r.nextID
	if u.PublicID == uuid.Nil {
		u.PublicID = uuid.New()
	}
	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*auth.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (r *memUserRepo) GetByPublicID(_ context.Context, id uuid.UUID) (*auth.User, error) {
	for _, u := range r.users {
		if u.PublicID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (r *memUserRepo) List(_ context.Context) ([]auth.User, error) {
	out := make([]auth.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memUserRepo) Update(_ context.Context, u *auth.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return auth.ErrUserNotFound
	}
	stored := *u
	r.users[u.ID] = &stored
	return nil
}

type memRoleRepo struct {
	roles map[string]*auth.Role
}

func newMemRoleRepo() *memRoleRepo {
	return &memRoleRepo{roles: make(map[string]*auth.Role)}
}

func (r *memRoleRepo) FindByName(_ context.Context, name string) (*auth.Role, error) {
	role, ok := r.roles[name]
	if !ok {
		return nil, auth.ErrRoleNotFound
	}
	cp := *role
	return &cp, nil
}

func (r *memRoleRepo) Create(_ context.Context, role *auth.Role) error {
	role.ID = int64(len(r.roles) + 1)
	stored := *role
	r.roles[role.Name] = &stored
	return nil
}

type memTokenRepo struct {
	byUser map[int64]*auth.RefreshToken
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{byUser: make(map[int64]*auth.RefreshToken)}
}

func (r *memTokenRepo) Save(_ context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	r.byUser[userID] = &auth.RefreshToken{
		TokenHash: tokenHash,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

func (r *memTokenRepo) FindValid(_ context.Context, tokenHash string, now time.Time) (*auth.RefreshToken, error) {
	for _, rt := range r.byUser {
		if rt.TokenHash == tokenHash {
			if !now.Before(rt.ExpiresAt) {
				return nil, auth.ErrTokenExpired
			}
			cp := *rt
			return &cp, nil
		}
	}
	return nil, auth.ErrTokenNotFound
}

func (r *memTokenRepo) Revoke(_ context.Context, userID int64) error {
	delete(r.byUser, userID)
	return nil
}

func (r *memTokenRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for id, rt := range r.byUser {
		if !now.Before(rt.ExpiresAt) {
			delete(r.byUser, id)
			n++
		}
	}
	return n, nil
}

type memCarRepo struct {
	cars map[uuid.UUID]*car.Car
}

func newMemCarRepo() *memCarRepo {
	return &memCarRepo{cars: make(map[uuid.UUID]*car.Car)}
}

func (r *memCarRepo) Create(_ context.Context, c *car.Car) error {
	for _, existing := range r.cars {
		if existing.LicensePlate == c.LicensePlate {
			return car.ErrDuplicatePlate
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now().UTC()
	stored := *c
	r.cars[c.ID] = &stored
	return nil
}

func (r *memCarRepo) GetByID(_ context.Context, id uuid.UUID) (*car.Car, error) {
	c, ok := r.cars[id]
	if !ok {
		return nil, car.ErrCarNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memCarRepo) List(_ context.Context, filter car.ListFilter) ([]car.Car, error) {
	out := make([]car.Car, 0, len(r.cars))
	for _, c := range r.cars {
		if filter.Category != nil && c.Category != *filter.Category {
			continue
		}
		if filter.Available != nil && c.Available != *filter.Available {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *memCarRepo) Update(_ context.Context, id uuid.UUID, fields car.UpdateFields) (*car.Car, error) {
	c, ok := r.cars[id]
	if !ok {
		return nil, car.ErrCarNotFound
	}
	if fields.Make != nil {
		c.Make = *fields.Make
	}
	if fields.Model != nil {
		c.Model = *fields.Model
	}
	if fields.Year != nil {
		c.Year = *fields.Year
	}
	if fields.Category != nil {
		c.Category = *fields.Category
	}
	if fields.PriceGroup != nil {
		c.PriceGroup = *fields.PriceGroup
	}
	if fields.PricePerDay != nil {
		c.PricePerDay = *fields.PricePerDay
	}
	if fields.Available != nil {
		c.Available = *fields.Available
	}
	cp := *c
	return &cp, nil
}

func (r *memCarRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.cars[id]; !ok {
		return car.ErrCarNotFound
	}
	delete(r.cars, id)
	return nil
}

type memInsuranceRepo struct {
	plans map[uuid.UUID]*insurance.Plan
}

func newMemInsuranceRepo() *memInsuranceRepo {
	return &memInsuranceRepo{plans: make(map[uuid.UUID]*insurance.Plan)}
}

func (r *memInsuranceRepo) Create(_ context.Context, p *insurance.Plan) error {
	for _, existing := range r.plans {
		if existing.Name == p.Name {
			return insurance.ErrDuplicatePlanName
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	stored := *p
	r.plans[p.ID] = &stored
	return nil
}

func (r *memInsuranceRepo) GetByID(_ context.Context, id uuid.UUID) (*insurance.Plan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, insurance.ErrPlanNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memInsuranceRepo) List(_ context.Context) ([]insurance.Plan, error) {
	out := make([]insurance.Plan, 0, len(r.plans))
	for _, p := range r.plans {
		out = append(out, *p)
	}
	return out, nil
}

func (r *memInsuranceRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.plans[id]; !ok {
		return insurance.ErrPlanNotFound
	}
	delete(r.plans, id)
	return nil
}

type memBookingRepo struct {
	users    *memUserRepo
	bookings map[uuid.UUID]*booking.Booking
}

func newMemBookingRepo(users *memUserRepo) *memBookingRepo {
	return &memBookingRepo{users: users, bookings: make(map[uuid.UUID]*booking.Booking)}
}

func (r *memBookingRepo) Create(_ context.Context, b *booking.Booking) error {
	for _, existing := range r.bookings {
		if existing.CarID != b.CarID || existing.Status == booking.StatusCancelled {
			continue
		}
		if b.StartDate.Before(existing.EndDate) && existing.StartDate.Before(b.EndDate) {
			return booking.ErrBookingOverlap
		}
	}
	b.ID = uuid.New()
	b.CreatedAt = time.Now().UTC()
	stored := *b
	r.bookings[b.ID] = &stored
	return nil
}

func (r *memBookingRepo) GetByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	cp := *b
	r.fillUser(&cp)
	return &cp, nil
}

func (r *memBookingRepo) List(_ context.Context) ([]booking.Booking, error) {
	out := make([]booking.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		cp := *b
		r.fillUser(&cp)
		out = append(out, cp)
	}
	return out, nil
}

func (r *memBookingRepo) ListByUser(_ context.Context, userID int64) ([]booking.Booking, error) {
	out := make([]booking.Booking, 0)
	for _, b := range r.bookings {
		if b.UserID == userID {
			cp := *b
			r.fillUser(&cp)
			out = append(out, cp)
		}
	}
	return out, nil
}

func (r *memBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) (*booking.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	b.Status = status
	cp := *b
	r.fillUser(&cp)
	return &cp, nil
}

func (r *memBookingRepo) fillUser(b *booking.Booking) {
	if u, ok := r.users.users[b.UserID]; ok {
		b.UserPublicID = u.PublicID
		b.UserEmail = u.Email
	}
}

