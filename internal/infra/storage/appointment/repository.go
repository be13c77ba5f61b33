package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/luminahealth/LMH-SchedulingService/internal/domain"
	"github.com/luminahealth/LMH-SchedulingService/pkg/dbmetrics"
	"github.com/luminahealth/LMH-SchedulingService/pkg/psqlbuilder"
	"github.com/luminahealth/LMH-SchedulingService/pkg/types"
)

var appointmentColumns = []string{
	"id",
	"patient_name",
	"patient_phone",
	"patient_email",
	"patient_record_id",
	"appointment_type",
	"provider",
	"appointment_date",
	"appointment_time",
	"start_time",
	"end_time",
	"timezone",
	"duration_minutes",
	"buffer_before_minutes",
	"buffer_after_minutes",
	"status",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"calendar_event_id",
	"created_at",
	"updated_at",
}

// Repository persists appointments in PostgreSQL.
type Repository struct {
	db DBExecutor
}

// NewRepository creates an appointment repository over db.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new appointment. When the context carries an open
// transaction (via the transaction manager) the insert joins it, which
// is how the check-then-reserve sequence stays atomic.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"id",
			"patient_name",
			"patient_phone",
			"patient_email",
			"patient_record_id",
			"appointment_type",
			"provider",
			"appointment_date",
			"appointment_time",
			"start_time",
			"end_time",
			"timezone",
			"duration_minutes",
			"buffer_before_minutes",
			"buffer_after_minutes",
			"status",
			"notes",
		).
		Values(
			appt.ID,
			appt.PatientName,
			appt.PatientPhone,
			appt.PatientEmail,
			appt.PatientRecordID,
			appt.AppointmentType,
			appt.Provider,
			appt.Date,
			appt.Time.String(),
			appt.StartTime,
			appt.EndTime,
			appt.Timezone,
			appt.DurationMinutes,
			appt.BufferBeforeMinutes,
			appt.BufferAfterMinutes,
			appt.Status,
			appt.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time
	return appt, nil
}

// GetByID fetches one appointment by id.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("%w: GetByID: %v", ErrScanRow, err)
	}
	return appt, nil
}

// GetByDate returns all appointments on a calendar date, ordered by
// start time. Cancelled rows are excluded unless includeCancelled.
func (r *Repository) GetByDate(ctx context.Context, date time.Time, includeCancelled bool) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"appointment_date": date}).
		OrderBy("start_time ASC", "id ASC")

	if !includeCancelled {
		builder = builder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return collectAppointments(rows)
}

// UpdateSchedule replaces the scheduling fields of an appointment as a
// unit, as a reschedule does.
func (r *Repository) UpdateSchedule(ctx context.Context, id string, upd domain.ScheduleUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("appointment_date", upd.Date).
		Set("appointment_time", upd.Time.String()).
		Set("start_time", upd.StartTime).
		Set("end_time", upd.EndTime).
		Set("timezone", upd.Timezone).
		Set("duration_minutes", upd.DurationMinutes).
		Set("buffer_before_minutes", upd.BufferBeforeMinutes).
		Set("buffer_after_minutes", upd.BufferAfterMinutes).
		Set("notes", upd.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateSchedule")
}

// UpdateStatus sets the lifecycle status.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// Cancel soft-retires an appointment, recording the reason and the
// appended audit note. The row is never deleted.
func (r *Repository) Cancel(ctx context.Context, id string, reason string, notes *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("notes", notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// SetCalendarEventID stamps the external calendar reference.
func (r *Repository) SetCalendarEventID(ctx context.Context, id string, eventID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("calendar_event_id", eventID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetCalendarEventID - build update: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetCalendarEventID")
}

// Search finds appointments whose patient phone or email contains term,
// newest first. No results is an empty slice, not an error.
func (r *Repository) Search(ctx context.Context, term string) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	pattern := "%" + term + "%"
	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Or{
			squirrel.ILike{"patient_phone": pattern},
			squirrel.ILike{"patient_email": pattern},
		}).
		OrderBy("start_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Search - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Search - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		appt        domain.Appointment
		timeStr     string
		status      string
		cancelledAt sql.NullTime
		createdAt   sql.NullTime
		updatedAt   sql.NullTime
	)

	err := row.Scan(
		&appt.ID,
		&appt.PatientName,
		&appt.PatientPhone,
		&appt.PatientEmail,
		&appt.PatientRecordID,
		&appt.AppointmentType,
		&appt.Provider,
		&appt.Date,
		&timeStr,
		&appt.StartTime,
		&appt.EndTime,
		&appt.Timezone,
		&appt.DurationMinutes,
		&appt.BufferBeforeMinutes,
		&appt.BufferAfterMinutes,
		&status,
		&appt.Notes,
		&appt.CancellationReason,
		&cancelledAt,
		&appt.CalendarEventID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.Time = types.TimeString(timeStr)
	appt.Status = domain.AppointmentStatus(status)
	if cancelledAt.Valid {
		appt.CancelledAt = &cancelledAt.Time
	}
	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time
	return &appt, nil
}

func collectAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appts := make([]*domain.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScanRow, err)
		}
		appts = append(appts, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %v", ErrExecQuery, err)
	}
	return appts, nil
}
