//go:build unit || e2e

// Package memstore is an in-memory UnitOfWork used by use case tests.
// Transactions run serialized under one mutex against a cloned state;
// the clone replaces the live state only on commit, which mirrors the
// all-or-nothing behavior of the real store.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"ticketgo/internal/domain/booking"
	"ticketgo/internal/domain/seat"
	"ticketgo/internal/domain/trip"
	"ticketgo/internal/domain/user"
	"ticketgo/internal/infra"
	"ticketgo/internal/usecase/queries"
	"ticketgo/internal/usecase/shared"

	"github.com/google/uuid"
)

type tripRow struct {
	ID             uuid.UUID
	Kind           string
	Name           string
	Code           string
	FromCity       string
	ToCity         string
	DepartureAt    time.Time
	ArrivalAt      time.Time
	PriceCents     int64
	TotalSeats     int32
	AvailableSeats int32
	CreatedAt      time.Time
}

type seatRow struct {
	ID         uuid.UUID
	TripID     uuid.UUID
	SeatNumber string
	Status     string
	Version    int32
}

type bookingRow struct {
	ID                uuid.UUID
	Reference         string
	TripID            uuid.UUID
	SeatID            uuid.UUID
	UserID            *uuid.UUID
	PassengerFullName string
	PassengerIDNumber string
	PassengerPhone    string
	NextOfKinName     string
	NextOfKinPhone    string
	TravelDate        time.Time
	PaymentMethod     string
	PaymentStatus     string
	Status            string
	AmountCents       int64
	CreatedAt         time.Time
}

type userRow struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	PhoneNumber  string
	Role         string
	IsActive     bool
	LastLogin    *time.Time
}

type idemKey struct {
	Key     uuid.UUID
	OwnerID uuid.UUID
}

type state struct {
	trips    map[uuid.UUID]tripRow
	seats    map[uuid.UUID]seatRow
	bookings map[uuid.UUID]bookingRow
	refs     map[string]uuid.UUID
	idem     map[idemKey]shared.IdempotencyRecord
	users    map[uuid.UUID]userRow
	seq      int64
}

func newState() *state {
	return &state{
		trips:    make(map[uuid.UUID]tripRow),
		seats:    make(map[uuid.UUID]seatRow),
		bookings: make(map[uuid.UUID]bookingRow),
		refs:     make(map[string]uuid.UUID),
		idem:     make(map[idemKey]shared.IdempotencyRecord),
		users:    make(map[uuid.UUID]userRow),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.trips {
		c.trips[k] = v
	}
	for k, v := range s.seats {
		c.seats[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	for k, v := range s.refs {
		c.refs[k] = v
	}
	for k, v := range s.idem {
		c.idem[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	c.seq = s.seq
	return c
}

type Store struct {
	mu    sync.Mutex
	state *state
}

func New() *Store {
	return &Store{state: newState()}
}

// Within runs fn against a clone and commits it only on success.
func (s *Store) Within(_ context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.clone()
	if err := fn(context.Background(), &memTx{st: working}); err != nil {
		return err
	}
	s.state = working
	return nil
}

func (s *Store) WithDB(_ context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return s.Within(context.Background(), fn)
}

type memTx struct {
	st *state
}

func (t *memTx) Trips() shared.TripRepository              { return &tripRepo{st: t.st} }
func (t *memTx) Seats() shared.SeatRepository              { return &seatRepo{st: t.st} }
func (t *memTx) Bookings() shared.BookingRepository        { return &bookingRepo{st: t.st} }
func (t *memTx) Idempotency() shared.IdempotencyRepository { return &idemRepo{st: t.st} }
func (t *memTx) Users() shared.UserRepository              { return &userRepo{st: t.st} }

type tripRepo struct {
	st *state
}

func (r *tripRepo) Create(_ context.Context, t *trip.Trip) error {
	for _, row := range r.st.trips {
		if row.Code == t.Code() {
			return infra.WrapRepoErr("duplicate trip code", nil, infra.KindDuplicateKey)
		}
	}
	r.st.seq++
	r.st.trips[t.ID()] = tripRow{
		ID:             t.ID(),
		Kind:           t.Kind().String(),
		Name:           t.Name(),
		Code:           t.Code(),
		FromCity:       t.FromCity(),
		ToCity:         t.ToCity(),
		DepartureAt:    t.Departure(),
		ArrivalAt:      t.Arrival(),
		PriceCents:     t.PriceCents(),
		TotalSeats:     int32(t.TotalSeats()),
		AvailableSeats: int32(t.AvailableSeats()),
		CreatedAt:      time.Unix(r.st.seq, 0),
	}
	return nil
}

func (r *tripRepo) FindSpec(_ context.Context, id uuid.UUID) (*shared.TripSnapshot, error) {
	row, ok := r.st.trips[id]
	if !ok {
		return nil, infra.WrapRepoErr("trip not found", nil, infra.KindNotFound)
	}
	return &shared.TripSnapshot{
		ID:             row.ID,
		Kind:           trip.Kind(row.Kind),
		Name:           row.Name,
		PriceCents:     row.PriceCents,
		Departure:      row.DepartureAt,
		TotalSeats:     row.TotalSeats,
		AvailableSeats: row.AvailableSeats,
	}, nil
}

type seatRepo struct {
	st *state
}

func (r *seatRepo) CreateBatch(_ context.Context, tripID uuid.UUID, seatNumbers []string) error {
	for _, n := range seatNumbers {
		s, err := seat.NewSeat(tripID, n)
		if err != nil {
			return infra.WrapRepoErr("invalid seat", err)
		}
		r.st.seats[s.ID()] = seatRow{
			ID:         s.ID(),
			TripID:     s.TripID(),
			SeatNumber: s.SeatNumber(),
			Status:     s.Status().String(),
			Version:    s.Version(),
		}
	}
	return nil
}

func (r *seatRepo) FindForClaim(_ context.Context, seatID uuid.UUID) (*shared.SeatSnapshot, error) {
	row, ok := r.st.seats[seatID]
	if !ok {
		return nil, infra.WrapRepoErr("seat not found", nil, infra.KindNotFound)
	}
	return &shared.SeatSnapshot{
		ID:         row.ID,
		TripID:     row.TripID,
		SeatNumber: row.SeatNumber,
		Status:     seat.Status(row.Status),
		Version:    row.Version,
	}, nil
}

func (r *seatRepo) TryClaim(_ context.Context, seatID uuid.UUID, expectedVersion int32) (seat.ClaimResult, error) {
	row, ok := r.st.seats[seatID]
	if !ok {
		return seat.ClaimNotFound, nil
	}

	s, err := seat.Reconstruct(row.ID, row.TripID, row.SeatNumber, seat.Status(row.Status), row.Version, time.Time{})
	if err != nil {
		return seat.ClaimConflict, infra.WrapRepoErr("corrupt seat row", err)
	}
	if result := s.Claim(expectedVersion); result != seat.ClaimOK {
		return result, nil
	}

	tripRow, ok := r.st.trips[row.TripID]
	if !ok || tripRow.AvailableSeats <= 0 {
		return seat.ClaimConflict, infra.WrapRepoErr("no seats available", nil, infra.KindConflict)
	}

	row.Status = s.Status().String()
	row.Version = s.Version()
	r.st.seats[seatID] = row

	tripRow.AvailableSeats--
	r.st.trips[row.TripID] = tripRow
	return seat.ClaimOK, nil
}

func (r *seatRepo) Release(_ context.Context, seatID uuid.UUID) error {
	row, ok := r.st.seats[seatID]
	if !ok {
		return infra.WrapRepoErr("seat not found", nil, infra.KindNotFound)
	}

	s, err := seat.Reconstruct(row.ID, row.TripID, row.SeatNumber, seat.Status(row.Status), row.Version, time.Time{})
	if err != nil {
		return infra.WrapRepoErr("corrupt seat row", err)
	}
	if err := s.Release(); err != nil {
		return infra.WrapRepoErr("seat is not booked", err, infra.KindConflict)
	}

	row.Status = s.Status().String()
	row.Version = s.Version()
	r.st.seats[seatID] = row

	tripRow := r.st.trips[row.TripID]
	if tripRow.AvailableSeats < tripRow.TotalSeats {
		tripRow.AvailableSeats++
		r.st.trips[row.TripID] = tripRow
	}
	return nil
}

type bookingRepo struct {
	st *state
}

func (r *bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if _, exists := r.st.refs[b.Reference()]; exists {
		return infra.WrapRepoErr("duplicate booking reference", nil, infra.KindDuplicateKey)
	}
	passenger := b.Passenger()
	r.st.seq++
	r.st.bookings[b.ID()] = bookingRow{
		ID:                b.ID(),
		Reference:         b.Reference(),
		TripID:            b.TripID(),
		SeatID:            b.SeatID(),
		UserID:            b.UserID(),
		PassengerFullName: passenger.Name(),
		PassengerIDNumber: passenger.IDNumber(),
		PassengerPhone:    passenger.Phone(),
		NextOfKinName:     passenger.NextOfKinName(),
		NextOfKinPhone:    passenger.NextOfKinPhone(),
		TravelDate:        b.TravelDate(),
		PaymentMethod:     b.PaymentMethod().String(),
		PaymentStatus:     b.PaymentStatus().String(),
		Status:            b.Status().String(),
		AmountCents:       b.TotalAmount().Cents(),
		CreatedAt:         time.Unix(r.st.seq, 0),
	}
	r.st.refs[b.Reference()] = b.ID()
	return nil
}

func (r *bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	row, ok := r.st.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return &shared.BookingSnapshot{
		ID:        row.ID,
		Reference: row.Reference,
		TripID:    row.TripID,
		SeatID:    row.SeatID,
		UserID:    row.UserID,
		Status:    booking.Status(row.Status),
	}, nil
}

func (r *bookingRepo) MarkCancelled(_ context.Context, id uuid.UUID) error {
	row, ok := r.st.bookings[id]
	if !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	if row.Status != booking.StatusConfirmed.String() {
		return infra.WrapRepoErr("booking is not confirmed", nil, infra.KindConflict)
	}
	row.Status = booking.StatusCancelled.String()
	row.PaymentStatus = booking.PaymentStatusRefunded.String()
	r.st.bookings[id] = row
	return nil
}

type idemRepo struct {
	st *state
}

func (r *idemRepo) TryInsert(_ context.Context, key, ownerID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	k := idemKey{Key: key, OwnerID: ownerID}
	if _, exists := r.st.idem[k]; exists {
		return false, nil
	}
	r.st.idem[k] = shared.IdempotencyRecord{
		Key:         key,
		OwnerID:     ownerID,
		Status:      shared.IdempotencyStatusProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r *idemRepo) Get(_ context.Context, key, ownerID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.st.idem[idemKey{Key: key, OwnerID: ownerID}]
	if !ok {
		return nil, infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return &rec, nil
}

func (r *idemRepo) MarkCompleted(_ context.Context, key, ownerID uuid.UUID, resultBookingID uuid.UUID) error {
	k := idemKey{Key: key, OwnerID: ownerID}
	rec, ok := r.st.idem[k]
	if !ok {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	id := resultBookingID
	rec.Status = shared.IdempotencyStatusCompleted
	rec.ResultBookingID = &id
	r.st.idem[k] = rec
	return nil
}

func (r *idemRepo) Delete(_ context.Context, key, ownerID uuid.UUID) error {
	k := idemKey{Key: key, OwnerID: ownerID}
	if rec, ok := r.st.idem[k]; ok && rec.Status == shared.IdempotencyStatusProcessing {
		delete(r.st.idem, k)
	}
	return nil
}

type userRepo struct {
	st *state
}

func (r *userRepo) Create(_ context.Context, u *user.User) error {
	for _, row := range r.st.users {
		if strings.EqualFold(row.Email, u.Email().Value()) {
			return infra.WrapRepoErr("duplicate email", nil, infra.KindDuplicateKey)
		}
	}
	r.st.users[u.ID()] = userRow{
		ID:           u.ID(),
		Email:        u.Email().Value(),
		PasswordHash: u.PasswordHash(),
		FullName:     u.FullName(),
		PhoneNumber:  u.PhoneNumber(),
		Role:         u.Role().String(),
		IsActive:     u.IsActive(),
	}
	return nil
}

func (r *userRepo) UpdateLastLogin(_ context.Context, userID uuid.UUID) error {
	row, ok := r.st.users[userID]
	if !ok {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	now := time.Now()
	row.LastLogin = &now
	r.st.users[userID] = row
	return nil
}

// ---- read side ----

// ReadStore serves the query interfaces from the same backing state.
func (s *Store) ReadStore() *ReadStore {
	return &ReadStore{store: s}
}

type ReadStore struct {
	store *Store
}

func (r *ReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row, ok := r.store.state.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return r.toView(row), nil
}

func (r *ReadStore) FindByReference(_ context.Context, reference string) (*queries.BookingView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	id, ok := r.store.state.refs[reference]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return r.toView(r.store.state.bookings[id]), nil
}

func (r *ReadStore) FindByUserID(_ context.Context, userID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var rows []bookingRow
	for _, row := range r.store.state.bookings {
		if row.UserID != nil && *row.UserID == userID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	if int32(len(rows)) > limit {
		rows = rows[:limit]
	}

	result := make([]*queries.BookingListItem, len(rows))
	for i, row := range rows {
		tripRow := r.store.state.trips[row.TripID]
		seatRow := r.store.state.seats[row.SeatID]
		result[i] = &queries.BookingListItem{
			ID:          row.ID,
			Reference:   row.Reference,
			TripName:    tripRow.Name,
			FromCity:    tripRow.FromCity,
			ToCity:      tripRow.ToCity,
			DepartureAt: tripRow.DepartureAt,
			SeatNumber:  seatRow.SeatNumber,
			AmountCents: row.AmountCents,
			Status:      row.Status,
			CreatedAt:   row.CreatedAt,
		}
	}
	return result, nil
}

func (r *ReadStore) toView(row bookingRow) *queries.BookingView {
	tripRow := r.store.state.trips[row.TripID]
	seatRow := r.store.state.seats[row.SeatID]
	return &queries.BookingView{
		ID:                row.ID,
		Reference:         row.Reference,
		TripID:            row.TripID,
		TripName:          tripRow.Name,
		TripCode:          tripRow.Code,
		FromCity:          tripRow.FromCity,
		ToCity:            tripRow.ToCity,
		DepartureAt:       tripRow.DepartureAt,
		SeatID:            row.SeatID,
		SeatNumber:        seatRow.SeatNumber,
		UserID:            row.UserID,
		PassengerFullName: row.PassengerFullName,
		PassengerIDNumber: row.PassengerIDNumber,
		PassengerPhone:    row.PassengerPhone,
		NextOfKinName:     row.NextOfKinName,
		NextOfKinPhone:    row.NextOfKinPhone,
		PaymentMethod:     row.PaymentMethod,
		PaymentStatus:     row.PaymentStatus,
		AmountCents:       row.AmountCents,
		Status:            row.Status,
		CreatedAt:         row.CreatedAt,
	}
}

// TripReadStore serves the trip query interface. It is a separate type
// because the trip and booking read interfaces both name a FindByID.
func (s *Store) TripReadStore() *TripReadStore {
	return &TripReadStore{store: s}
}

type TripReadStore struct {
	store *Store
}

func (r *TripReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.TripView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row, ok := r.store.state.trips[id]
	if !ok {
		return nil, infra.WrapRepoErr("trip not found", nil, infra.KindNotFound)
	}
	return tripRowToView(row), nil
}

func (r *TripReadStore) Search(_ context.Context, filter queries.TripSearchFilter, limit int32) ([]*queries.TripView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var rows []tripRow
	for _, row := range r.store.state.trips {
		if filter.FromCity != nil && !containsFold(row.FromCity, *filter.FromCity) {
			continue
		}
		if filter.ToCity != nil && !containsFold(row.ToCity, *filter.ToCity) {
			continue
		}
		if filter.Kind != nil && row.Kind != *filter.Kind {
			continue
		}
		if filter.DepartsAfter != nil && row.DepartureAt.Before(*filter.DepartsAfter) {
			continue
		}
		if filter.DepartsBefore != nil && row.DepartureAt.After(*filter.DepartsBefore) {
			continue
		}
		if filter.OnlyAvailable && row.AvailableSeats <= 0 {
			continue
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].DepartureAt.Before(rows[j].DepartureAt)
	})
	if int32(len(rows)) > limit {
		rows = rows[:limit]
	}

	result := make([]*queries.TripView, len(rows))
	for i, row := range rows {
		result[i] = tripRowToView(row)
	}
	return result, nil
}

func (r *TripReadStore) FindSeatsByTripID(_ context.Context, tripID uuid.UUID) ([]*queries.SeatView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var result []*queries.SeatView
	for _, row := range r.store.state.seats {
		if row.TripID == tripID {
			result = append(result, &queries.SeatView{
				ID:         row.ID,
				TripID:     row.TripID,
				SeatNumber: row.SeatNumber,
				Status:     row.Status,
			})
		}
	}
	// Row order, not text order: 2A before 10A.
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].SeatNumber, result[j].SeatNumber
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	})
	return result, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func tripRowToView(row tripRow) *queries.TripView {
	return &queries.TripView{
		ID:             row.ID,
		Kind:           row.Kind,
		Name:           row.Name,
		Code:           row.Code,
		FromCity:       row.FromCity,
		ToCity:         row.ToCity,
		DepartureAt:    row.DepartureAt,
		ArrivalAt:      row.ArrivalAt,
		PriceCents:     row.PriceCents,
		TotalSeats:     row.TotalSeats,
		AvailableSeats: row.AvailableSeats,
		CreatedAt:      row.CreatedAt,
	}
}

// ---- seeding and inspection helpers ----

// SeedTrip stores a trip with its full seat map and returns the seat IDs
// in seat-map order.
func (s *Store) SeedTrip(t *trip.Trip) []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo := tripRepo{st: s.state}
	_ = repo.Create(context.Background(), t)

	numbers := t.SeatNumbers()
	ids := make([]uuid.UUID, 0, len(numbers))
	for _, n := range numbers {
		id := uuid.New()
		s.state.seats[id] = seatRow{
			ID:         id,
			TripID:     t.ID(),
			SeatNumber: n,
			Status:     seat.StatusAvailable.String(),
			Version:    1,
		}
		ids = append(ids, id)
	}
	return ids
}

func (s *Store) SeatStatus(seatID uuid.UUID) (string, int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.state.seats[seatID]
	return row.Status, row.Version
}

func (s *Store) AvailableSeats(tripID uuid.UUID) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.trips[tripID].AvailableSeats
}

func (s *Store) BookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.bookings)
}

func (s *Store) ConfirmedBookingsForSeat(seatID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, row := range s.state.bookings {
		if row.SeatID == seatID && row.Status == booking.StatusConfirmed.String() {
			n++
		}
	}
	return n
}
