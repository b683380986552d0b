package results

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

// Service maintains nested result documents and drains the legacy flat
// collection.
type Service struct {
	tenants Resolver
	log     *slog.Logger
}

func NewService(tenants Resolver, logger *slog.Logger) *Service {
	return &Service{
		tenants: tenants,
		log:     logger.With(sl.Module("results-service")),
	}
}

// ScoreInput is one subject-test score for a student's year document.
type ScoreInput struct {
	SchoolCode   string  `validate:"required"`
	StudentID    string  `validate:"required"`
	StudentName  string  `validate:"required"`
	ClassName    string  `validate:"required"`
	Section      string  `validate:"required"`
	AcademicYear string  `validate:"required"`
	SubjectName  string  `validate:"required"`
	TestType     string  `validate:"required"`
	Marks        float64 `validate:"min=0"`
	MaxMarks     float64 `validate:"required,gt=0"`
	Grade        string
}

// UpsertScore pushes a score entry into the student's year document. The
// percentage is derived from marks, never taken from the client.
func (s *Service) UpsertScore(ctx context.Context, in ScoreInput) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if in.Marks > in.MaxMarks {
		return fmt.Errorf("%w: marks exceed max marks", ErrValidation)
	}

	tenant, err := s.tenants.Resolve(ctx, in.SchoolCode)
	if err != nil {
		return err
	}

	key := entity.ResultKey{
		StudentID:    in.StudentID,
		ClassName:    in.ClassName,
		Section:      in.Section,
		AcademicYear: in.AcademicYear,
	}
	score := entity.SubjectScore{
		SubjectName: in.SubjectName,
		TestType:    in.TestType,
		Marks:       in.Marks,
		MaxMarks:    in.MaxMarks,
		Grade:       in.Grade,
		Percentage:  in.Marks / in.MaxMarks * 100,
	}
	return tenant.Results.UpsertScore(ctx, key, in.StudentName, score)
}

// StudentYear retrieves one student's nested document.
func (s *Service) StudentYear(ctx context.Context, schoolCode, studentID, academicYear string) (*entity.Result, error) {
	tenant, err := s.tenants.Resolve(ctx, schoolCode)
	if err != nil {
		return nil, err
	}
	return tenant.Results.GetByStudentYear(ctx, studentID, academicYear)
}

// ClassYear lists a class's nested documents for one academic year.
func (s *Service) ClassYear(ctx context.Context, schoolCode, className, section, academicYear string) ([]entity.Result, error) {
	tenant, err := s.tenants.Resolve(ctx, schoolCode)
	if err != nil {
		return nil, err
	}
	return tenant.Results.ListByClassYear(ctx, className, section, academicYear)
}

// MigrateLegacy drains the tenant's flat result rows into nested
// documents. The sweep is idempotent: each group lands with a
// migrated-from backlink only when no document exists for its key yet,
// and consumed rows are deleted afterwards, so rerunning after a crash
// repairs the previous run instead of duplicating it.
func (s *Service) MigrateLegacy(ctx context.Context, schoolCode string) (*entity.MigrationReport, error) {
	tenant, err := s.tenants.Resolve(ctx, schoolCode)
	if err != nil {
		return nil, err
	}

	rows, err := tenant.Results.FetchLegacy(ctx)
	if err != nil {
		return nil, err
	}

	report := &entity.MigrationReport{}
	for _, doc := range GroupLegacy(rows) {
		created, err := tenant.Results.InsertMigrated(ctx, doc)
		if err != nil {
			return report, fmt.Errorf("migrating group %s: %w", doc.ID, err)
		}
		if created {
			report.GroupsMigrated++
		} else {
			report.GroupsSkipped++
		}

		deleted, err := tenant.Results.DeleteLegacyByIDs(ctx, doc.MigratedFrom)
		if err != nil {
			return report, fmt.Errorf("sweeping group %s: %w", doc.ID, err)
		}
		report.RowsConsumed += int(deleted)
	}

	s.log.Info("legacy results migrated",
		slog.String("school_code", tenant.Code),
		slog.Int("groups", report.GroupsMigrated),
		slog.Int("rows", report.RowsConsumed),
		slog.Int("skipped", report.GroupsSkipped),
	)
	return report, nil
}

// GroupLegacy folds flat rows into nested documents, one per
// (student, class, section, year), preserving first-seen group order and
// row order within a group. Each document carries the ids of the rows it
// consumed as its backlink.
func GroupLegacy(rows []entity.LegacyResult) []*entity.Result {
	now := time.Now().UTC()
	byKey := make(map[entity.ResultKey]*entity.Result)
	order := make([]*entity.Result, 0)

	for _, row := range rows {
		key := row.Key()
		doc, ok := byKey[key]
		if !ok {
			doc = &entity.Result{
				ID:           key.DocID(),
				StudentID:    key.StudentID,
				StudentName:  row.StudentName,
				ClassName:    key.ClassName,
				Section:      key.Section,
				AcademicYear: key.AcademicYear,
				UpdatedAt:    now,
			}
			byKey[key] = doc
			order = append(order, doc)
		}
		doc.Subjects = append(doc.Subjects, row.Score())
		doc.MigratedFrom = append(doc.MigratedFrom, row.ID)
	}
	return order
}
