package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/pethotel/PHM-BookingWorkflow/internal/domain"
	"github.com/pethotel/PHM-BookingWorkflow/pkg/dbmetrics"
	"github.com/pethotel/PHM-BookingWorkflow/pkg/psqlbuilder"
)

// Коды ошибок PostgreSQL, означающие конфликт занятости
const (
	pqUniqueViolation    = "23505"
	pqExclusionViolation = "23P01"
)

// Repository репозиторий для сохранения составленных бронирований
//
// Простое бронирование - одна строка в bookings с типом номера и датами
// на верхнем уровне. Составное - строка в bookings плюс упорядоченные
// строки в booking_segments (позиция сегмента хранится явно)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование в одной из двух взаимоисключающих форм
// Для составной формы вставка шапки и сегментов должна выполняться в одной
// транзакции - вызывающая сторона оборачивает вызов в txManager.DoSerializable,
// активная транзакция приходит через контекст
func (r *Repository) Create(ctx context.Context, payload domain.SubmissionPayload) (*domain.Reservation, error) {
	switch p := payload.(type) {
	case domain.SimpleBookingPayload:
		return r.createSimple(ctx, p)
	case domain.CompositeBookingPayload:
		return r.createComposite(ctx, p)
	default:
		return nil, fmt.Errorf("%w: Create - unknown payload type %T", ErrBuildQuery, payload)
	}
}

func (r *Repository) createSimple(ctx context.Context, p domain.SimpleBookingPayload) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"client_id",
			"pet_ids",
			"kind",
			"room_type_id",
			"check_in_date",
			"check_out_date",
			"assigned_room_id",
			"special_requests",
			"status",
		).
		Values(
			p.ClientID,
			pq.Array(p.PetIDs),
			"simple",
			p.RoomTypeID,
			p.CheckInDate,
			p.CheckOutDate,
			p.AssignedRoomID,
			p.SpecialRequests,
			domain.ReservationConfirmed,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: createSimple - build insert query: %v", ErrBuildQuery, err)
	}

	reservation := &domain.Reservation{
		ClientID: p.ClientID,
		Status:   domain.ReservationConfirmed,
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&reservation.ID, &createdAt)
	if err != nil {
		if isConflict(err) {
			return nil, fmt.Errorf("%w: %v", ErrRoomConflict, err)
		}
		return nil, fmt.Errorf("%w: createSimple - execute insert: %v", ErrExecQuery, err)
	}
	reservation.CreatedAt = createdAt.Time

	return reservation, nil
}

func (r *Repository) createComposite(ctx context.Context, p domain.CompositeBookingPayload) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"client_id",
			"pet_ids",
			"kind",
			"special_requests",
			"status",
		).
		Values(
			p.ClientID,
			pq.Array(p.PetIDs),
			"composite",
			p.SpecialRequests,
			domain.ReservationConfirmed,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: createComposite - build insert query: %v", ErrBuildQuery, err)
	}

	reservation := &domain.Reservation{
		ClientID: p.ClientID,
		Status:   domain.ReservationConfirmed,
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&reservation.ID, &createdAt)
	if err != nil {
		if isConflict(err) {
			return nil, fmt.Errorf("%w: %v", ErrRoomConflict, err)
		}
		return nil, fmt.Errorf("%w: createComposite - execute insert: %v", ErrExecQuery, err)
	}
	reservation.CreatedAt = createdAt.Time

	// Сегменты вставляются в порядке варианта; позиция хранится явно,
	// чтобы порядок переездов восстанавливался без сортировки по датам
	for i, segment := range p.Segments {
		segQuery, segArgs, err := psqlbuilder.Insert("booking_segments").
			Columns(
				"booking_id",
				"position",
				"room_type_id",
				"check_in_date",
				"check_out_date",
			).
			Values(
				reservation.ID,
				i,
				segment.RoomTypeID,
				segment.CheckInDate,
				segment.CheckOutDate,
			).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: createComposite - build segment insert: %v", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(ctx, segQuery, segArgs...); err != nil {
			if isConflict(err) {
				return nil, fmt.Errorf("%w: %v", ErrRoomConflict, err)
			}
			return nil, fmt.Errorf("%w: createComposite - insert segment %d: %v", ErrExecQuery, i, err)
		}
	}

	return reservation, nil
}

// isConflict распознает нарушение ограничений занятости PostgreSQL
func isConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == pqUniqueViolation || string(pqErr.Code) == pqExclusionViolation
}
