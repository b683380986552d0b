package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

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

// Service implements the leave-request business rules on top of the
// tenant stores.
type Service struct {
	tenants Resolver
	log     *slog.Logger
}

func NewService(tenants Resolver, logger *slog.Logger) *Service {
	return &Service{
		tenants: tenants,
		log:     logger.With(sl.Module("leave-service")),
	}
}

// CreateInput carries everything a teacher submits with a new request.
type CreateInput struct {
	TeacherID   string    `validate:"required"`
	TeacherName string    `validate:"required"`
	SchoolCode  string    `validate:"required"`
	SubjectLine string    `validate:"required"`
	Description string    `validate:"required"`
	StartDate   time.Time `validate:"required"`
	EndDate     time.Time `validate:"required"`
}

// Create validates the submission and inserts a pending request. The
// derived day count is recomputed from the range, never taken from the
// client.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.LeaveRequest, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, fmt.Errorf("%w: end date must not be before start date", ErrValidation)
	}

	tenant, err := s.tenants.Resolve(ctx, in.SchoolCode)
	if err != nil {
		return nil, err
	}

	req := &entity.LeaveRequest{
		ID:           uuid.NewString(),
		TeacherID:    in.TeacherID,
		TeacherName:  in.TeacherName,
		SchoolCode:   tenant.Code,
		SubjectLine:  in.SubjectLine,
		StartDate:    entity.TruncateToDay(in.StartDate),
		EndDate:      entity.TruncateToDay(in.EndDate),
		NumberOfDays: entity.LeaveDayCount(in.StartDate, in.EndDate),
		Description:  in.Description,
		Status:       entity.LeaveStatusPending,
		CreatedAt:    time.Now().UTC(),
	}

	if err = tenant.Leaves.Create(ctx, req); err != nil {
		return nil, err
	}

	s.log.Info("leave request created",
		slog.String("school_code", tenant.Code),
		slog.String("teacher_id", in.TeacherID),
		slog.Int("days", req.NumberOfDays),
	)
	return req, nil
}

// MyRequests returns a teacher's own requests, newest first.
func (s *Service) MyRequests(ctx context.Context, schoolCode, teacherID string) ([]entity.LeaveRequest, error) {
	tenant, err := s.tenants.Resolve(ctx, schoolCode)
	if err != nil {
		return nil, err
	}
	return tenant.Leaves.ListByTeacher(ctx, teacherID)
}

// RequestWithIdentity is a leave request expanded with directory details
// about the people involved. Expansion is best-effort.
type RequestWithIdentity struct {
	entity.LeaveRequest
	TeacherEmail  string `json:"teacher_email,omitempty"`
	ReviewerEmail string `json:"reviewer_email,omitempty"`
}

// ListForSchool returns the school's requests with an optional status
// filter, newest first. Teacher and reviewer identities are expanded
// from the tenant's user accounts; a failed lookup degrades to the raw
// record instead of failing the listing.
func (s *Service) ListForSchool(ctx context.Context, schoolCode, status string) ([]RequestWithIdentity, error) {
	if status != "" && !entity.ValidLeaveStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	tenant, err := s.tenants.Resolve(ctx, schoolCode)
	if err != nil {
		return nil, err
	}

	requests, err := tenant.Leaves.ListAll(ctx, status)
	if err != nil {
		return nil, err
	}

	expanded := make([]RequestWithIdentity, 0, len(requests))
	for _, req := range requests {
		view := RequestWithIdentity{LeaveRequest: req}
		if u, lookupErr := tenant.Users.GetByID(ctx, req.TeacherID); lookupErr == nil {
			view.TeacherEmail = u.Email
		} else {
			s.log.Debug("teacher expansion skipped", slog.String("teacher_id", req.TeacherID), sl.Err(lookupErr))
		}
		if req.ReviewerID != "" {
			if u, lookupErr := tenant.Users.GetByID(ctx, req.ReviewerID); lookupErr == nil {
				view.ReviewerEmail = u.Email
			} else {
				s.log.Debug("reviewer expansion skipped", slog.String("reviewer_id", req.ReviewerID), sl.Err(lookupErr))
			}
		}
		expanded = append(expanded, view)
	}
	return expanded, nil
}

// Pending returns the school's undecided requests, newest first.
func (s *Service) Pending(ctx context.Context, schoolCode string) ([]entity.LeaveRequest, error) {
	tenant, err := s.tenants.Resolve(ctx, schoolCode)
	if err != nil {
		return nil, err
	}
	return tenant.Leaves.ListAll(ctx, entity.LeaveStatusPending)
}

// Decide approves or rejects a pending request. Deciding anything other
// than a pending record fails; the reviewer stamp lands in the same
// update as the status flip.
func (s *Service) Decide(ctx context.Context, schoolCode, id, status string, reviewer *entity.Identity, comments string) (*entity.LeaveRequest, error) {
	if !entity.ValidLeaveDecision(status) {
		return nil, fmt.Errorf("%w: status must be approved or rejected", ErrValidation)
	}

	tenant, err := s.tenants.Resolve(ctx, schoolCode)
	if err != nil {
		return nil, err
	}

	req, err := tenant.Leaves.Decide(ctx, id, status, reviewer.UserID, reviewer.Name, comments)
	if err != nil {
		return nil, err
	}

	s.log.Info("leave request decided",
		slog.String("school_code", tenant.Code),
		slog.String("id", id),
		slog.String("status", status),
		slog.String("reviewer_id", reviewer.UserID),
	)
	return req, nil
}

// Delete removes a teacher's own request while it is still pending.
// Someone else's record fails with ErrForbidden, a decided one with
// ErrConflict.
func (s *Service) Delete(ctx context.Context, schoolCode, id, teacherID string) error {
	tenant, err := s.tenants.Resolve(ctx, schoolCode)
	if err != nil {
		return err
	}

	req, err := tenant.Leaves.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !req.OwnedBy(teacherID) {
		return repository.ErrForbidden
	}
	if !req.IsPending() {
		return repository.ErrConflict
	}

	deleted, err := tenant.Leaves.DeletePending(ctx, id, teacherID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		// Decided between the read and the delete.
		return repository.ErrConflict
	}
	return nil
}

// Stats aggregates per-status counts for the school.
func (s *Service) Stats(ctx context.Context, schoolCode string) (*entity.LeaveStats, error) {
	tenant, err := s.tenants.Resolve(ctx, schoolCode)
	if err != nil {
		return nil, err
	}
	return tenant.Leaves.Stats(ctx)
}
