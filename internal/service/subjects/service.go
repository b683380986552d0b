package subjects

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

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

// Service maintains per-class subject assignments.
type Service struct {
	tenants Resolver
	log     *slog.Logger
}

func NewService(tenants Resolver, logger *slog.Logger) *Service {
	return &Service{
		tenants: tenants,
		log:     logger.With(sl.Module("subjects-service")),
	}
}

// AssignmentInput is one subject-teacher pairing in an upsert.
type AssignmentInput struct {
	SubjectName string `json:"subject_name" validate:"required"`
	TeacherID   string `json:"teacher_id" validate:"required"`
	TeacherName string `json:"teacher_name"`
}

// UpsertInput replaces the subject list of one class+section.
type UpsertInput struct {
	SchoolCode string            `validate:"required"`
	ClassName  string            `validate:"required"`
	Section    string            `validate:"required"`
	Subjects   []AssignmentInput `validate:"required,min=1,dive"`
}

// Upsert replaces the class's subject list wholesale.
func (s *Service) Upsert(ctx context.Context, in UpsertInput) (*entity.ClassSubjects, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	tenant, err := s.tenants.Resolve(ctx, in.SchoolCode)
	if err != nil {
		return nil, err
	}

	cs := &entity.ClassSubjects{
		ClassName: in.ClassName,
		Section:   in.Section,
	}
	for _, a := range in.Subjects {
		cs.Subjects = append(cs.Subjects, entity.SubjectAssignment{
			SubjectName: a.SubjectName,
			TeacherID:   a.TeacherID,
			TeacherName: a.TeacherName,
		})
	}

	if err = tenant.Subjects.Upsert(ctx, cs); err != nil {
		return nil, err
	}

	s.log.Info("class subjects replaced",
		slog.String("school_code", tenant.Code),
		slog.String("class", in.ClassName+"/"+in.Section),
		slog.Int("subjects", len(cs.Subjects)),
	)
	return cs, nil
}

// Get returns the subject list of one class+section.
func (s *Service) Get(ctx context.Context, schoolCode, className, section string) (*entity.ClassSubjects, error) {
	tenant, err := s.tenants.Resolve(ctx, schoolCode)
	if err != nil {
		return nil, err
	}
	return tenant.Subjects.Get(ctx, className, section)
}

// List returns every class's subject list for the school.
func (s *Service) List(ctx context.Context, schoolCode string) ([]entity.ClassSubjects, error) {
	tenant, err := s.tenants.Resolve(ctx, schoolCode)
	if err != nil {
		return nil, err
	}
	return tenant.Subjects.ListAll(ctx)
}
