package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JayeshSardesai/ERP-sub004/entity"
	repository "github.com/JayeshSardesai/ERP-sub004/internal/database"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/sl"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/validate"
)

// ErrValidation marks client input the service refused.
var ErrValidation = errors.New("validation failed")

// Resolver yields the tenant handle for a school code.
type Resolver interface {
	Resolve(ctx context.Context, schoolCode string) (*repository.Tenant, error)
}

// Service implements session attendance marking and summaries.
type Service struct {
	tenants Resolver
	log     *slog.Logger
}

func NewService(tenants Resolver, logger *slog.Logger) *Service {
	return &Service{
		tenants: tenants,
		log:     logger.With(sl.Module("attendance-service")),
	}
}

// MarkEntry is one student's mark within a bulk submission.
type MarkEntry struct {
	StudentID   string `json:"student_id" validate:"required"`
	StudentName string `json:"student_name" validate:"required"`
	Status      string `json:"status" validate:"required"`
}

// MarkInput is a class roster marked for one date and session.
type MarkInput struct {
	SchoolCode string      `validate:"required"`
	ClassName  string      `validate:"required"`
	Section    string      `validate:"required"`
	Date       time.Time   `validate:"required"`
	Session    string      `validate:"required"`
	MarkedBy   string      `validate:"required"`
	Entries    []MarkEntry `validate:"required,min=1,dive"`
}

// Mark upserts the whole roster in one bulk write. Re-marking a slot
// replaces the earlier mark. Returns the number of marks written.
func (s *Service) Mark(ctx context.Context, in MarkInput) (int, error) {
	if err := validate.Struct(in); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	session := entity.AttendanceSession(in.Session)
	if !session.Valid() {
		return 0, fmt.Errorf("%w: unknown session %q", ErrValidation, in.Session)
	}
	for _, e := range in.Entries {
		if !entity.AttendanceStatus(e.Status).Valid() {
			return 0, fmt.Errorf("%w: unknown status %q for student %s", ErrValidation, e.Status, e.StudentID)
		}
	}

	tenant, err := s.tenants.Resolve(ctx, in.SchoolCode)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	date := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, time.UTC)
	records := make([]entity.AttendanceRecord, 0, len(in.Entries))
	for _, e := range in.Entries {
		records = append(records, entity.AttendanceRecord{
			ID:          entity.SlotID(e.StudentID, date, session),
			StudentID:   e.StudentID,
			StudentName: e.StudentName,
			ClassName:   in.ClassName,
			Section:     in.Section,
			Date:        date,
			Session:     session,
			Status:      entity.AttendanceStatus(e.Status),
			MarkedBy:    in.MarkedBy,
			MarkedAt:    now,
		})
	}

	if err = tenant.Attendance.BulkMark(ctx, records); err != nil {
		return 0, err
	}

	s.log.Info("attendance marked",
		slog.String("school_code", tenant.Code),
		slog.String("class", in.ClassName+"/"+in.Section),
		slog.String("session", in.Session),
		slog.Int("count", len(records)),
	)
	return len(records), nil
}

// ClassDay returns every mark of a class+section for one day.
func (s *Service) ClassDay(ctx context.Context, schoolCode, className, section string, date time.Time) ([]entity.AttendanceRecord, error) {
	tenant, err := s.tenants.Resolve(ctx, schoolCode)
	if err != nil {
		return nil, err
	}
	return tenant.Attendance.ListByClassDate(ctx, className, section, date)
}

// StudentSummary aggregates one student's marks over an inclusive range.
func (s *Service) StudentSummary(ctx context.Context, schoolCode, studentID string, from, to time.Time) (*entity.AttendanceSummary, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end before start", ErrValidation)
	}

	tenant, err := s.tenants.Resolve(ctx, schoolCode)
	if err != nil {
		return nil, err
	}

	records, err := tenant.Attendance.ListByStudentRange(ctx, studentID, from, to)
	if err != nil {
		return nil, err
	}

	summary := Summarize(studentID, records)
	return summary, nil
}

// Summarize folds a record list into per-status counters.
func Summarize(studentID string, records []entity.AttendanceRecord) *entity.AttendanceSummary {
	summary := &entity.AttendanceSummary{StudentID: studentID}
	for _, rec := range records {
		summary.Tally(rec.Status)
	}
	summary.Finalize()
	return summary
}
