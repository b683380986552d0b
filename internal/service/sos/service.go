package sos

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

// Directory looks up school settings (the SOS chat id lives there).
type Directory interface {
	GetSchoolByCode(ctx context.Context, code string) (*entity.School, error)
}

// Broadcaster pushes alert events to connected staff consoles.
type Broadcaster interface {
	BroadcastAlert(schoolCode string, alert *entity.SOSAlert)
	BroadcastUpdate(schoolCode string, alert *entity.SOSAlert)
}

// Notifier delivers an out-of-band notification for a fresh alert.
type Notifier interface {
	NotifySOS(chatID int64, alert *entity.SOSAlert) error
}

// Service implements the SOS alert lifecycle. Fanout (websocket,
// telegram) is best-effort: a failed delivery never fails the request.
type Service struct {
	tenants     Resolver
	directory   Directory
	broadcaster Broadcaster
	notifier    Notifier
	log         *slog.Logger
}

func NewService(tenants Resolver, directory Directory, logger *slog.Logger) *Service {
	return &Service{
		tenants:   tenants,
		directory: directory,
		log:       logger.With(sl.Module("sos-service")),
	}
}

// SetBroadcaster attaches the websocket hub.
func (s *Service) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetNotifier attaches the telegram notifier.
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// RaiseInput carries a student's emergency ping.
type RaiseInput struct {
	StudentID   string `validate:"required"`
	StudentName string `validate:"required"`
	ClassName   string
	Section     string
	SchoolCode  string `validate:"required"`
	Location    string `validate:"required"`
	Message     string
}

// Raise records a new active alert and fans it out.
func (s *Service) Raise(ctx context.Context, in RaiseInput) (*entity.SOSAlert, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	tenant, err := s.tenants.Resolve(ctx, in.SchoolCode)
	if err != nil {
		return nil, err
	}

	alert := &entity.SOSAlert{
		ID:          uuid.NewString(),
		StudentID:   in.StudentID,
		StudentName: in.StudentName,
		ClassName:   in.ClassName,
		Section:     in.Section,
		SchoolCode:  tenant.Code,
		Location:    in.Location,
		Message:     in.Message,
		Status:      entity.SOSStatusActive,
		CreatedAt:   time.Now().UTC(),
	}

	if err = tenant.Alerts.Create(ctx, alert); err != nil {
		return nil, err
	}

	s.log.Info("sos alert raised",
		slog.String("school_code", tenant.Code),
		slog.String("student_id", in.StudentID),
		slog.String("alert_id", alert.ID),
	)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastAlert(tenant.Code, alert)
	}
	s.notify(ctx, tenant.Code, alert)

	return alert, nil
}

func (s *Service) notify(ctx context.Context, schoolCode string, alert *entity.SOSAlert) {
	if s.notifier == nil {
		return
	}
	school, err := s.directory.GetSchoolByCode(ctx, schoolCode)
	if err != nil || school.SOSChatID == 0 {
		return
	}
	if err = s.notifier.NotifySOS(school.SOSChatID, alert); err != nil {
		s.log.Warn("sos notification failed",
			slog.String("alert_id", alert.ID),
			sl.Err(err),
		)
	}
}

// Acknowledge marks an active alert as seen by a staff member.
func (s *Service) Acknowledge(ctx context.Context, schoolCode, id string, actor *entity.Identity) (*entity.SOSAlert, error) {
	tenant, err := s.tenants.Resolve(ctx, schoolCode)
	if err != nil {
		return nil, err
	}

	alert, err := tenant.Alerts.Acknowledge(ctx, id, actor.UserID)
	if err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastUpdate(tenant.Code, alert)
	}
	return alert, nil
}

// Resolve closes an alert from either open state.
func (s *Service) Resolve(ctx context.Context, schoolCode, id string, actor *entity.Identity) (*entity.SOSAlert, error) {
	tenant, err := s.tenants.Resolve(ctx, schoolCode)
	if err != nil {
		return nil, err
	}

	alert, err := tenant.Alerts.Resolve(ctx, id, actor.UserID)
	if err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastUpdate(tenant.Code, alert)
	}
	return alert, nil
}

// List returns the school's alerts, optionally filtered by status,
// newest first.
func (s *Service) List(ctx context.Context, schoolCode, status string) ([]entity.SOSAlert, error) {
	if status != "" && !entity.ValidSOSStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	tenant, err := s.tenants.Resolve(ctx, schoolCode)
	if err != nil {
		return nil, err
	}
	return tenant.Alerts.List(ctx, status)
}
