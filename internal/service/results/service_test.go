package results

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JayeshSardesai/ERP-sub004/entity"
	repository "github.com/JayeshSardesai/ERP-sub004/internal/database"
)

type fakeResultStore struct {
	repository.ResultStore

	legacy []entity.LegacyResult
	docs   map[string]*entity.Result
}

func newFakeResultStore(rows ...entity.LegacyResult) *fakeResultStore {
	return &fakeResultStore{legacy: rows, docs: make(map[string]*entity.Result)}
}

func (f *fakeResultStore) FetchLegacy(_ context.Context) ([]entity.LegacyResult, error) {
	out := make([]entity.LegacyResult, len(f.legacy))
	copy(out, f.legacy)
	return out, nil
}

func (f *fakeResultStore) InsertMigrated(_ context.Context, result *entity.Result) (bool, error) {
	if _, ok := f.docs[result.ID]; ok {
		return false, nil
	}
	f.docs[result.ID] = result
	return true, nil
}

func (f *fakeResultStore) DeleteLegacyByIDs(_ context.Context, ids []string) (int64, error) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	var kept []entity.LegacyResult
	var deleted int64
	for _, row := range f.legacy {
		if drop[row.ID] {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	f.legacy = kept
	return deleted, nil
}

type fakeResolver struct {
	tenant *repository.Tenant
}

func (f *fakeResolver) Resolve(_ context.Context, _ string) (*repository.Tenant, error) {
	return f.tenant, nil
}

func newService(store *fakeResultStore) *Service {
	tenant := &repository.Tenant{Code: "ABC", Results: store}
	return NewService(&fakeResolver{tenant: tenant}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func row(id, student, subject, test string, marks float64) entity.LegacyResult {
	return entity.LegacyResult{
		ID:           id,
		StudentID:    student,
		StudentName:  "Student " + student,
		ClassName:    "10",
		Section:      "A",
		AcademicYear: "2024-25",
		SubjectName:  subject,
		TestType:     test,
		Marks:        marks,
		MaxMarks:     100,
	}
}

func TestGroupLegacy(t *testing.T) {
	rows := []entity.LegacyResult{
		row("r1", "s1", "Maths", "midterm", 80),
		row("r2", "s2", "Maths", "midterm", 70),
		row("r3", "s1", "Science", "midterm", 90),
	}

	docs := GroupLegacy(rows)
	require.Len(t, docs, 2)

	// First-seen order is preserved.
	assert.Equal(t, "s1:10:A:2024-25", docs[0].ID)
	assert.Equal(t, "s2:10:A:2024-25", docs[1].ID)

	assert.Len(t, docs[0].Subjects, 2)
	assert.Equal(t, []string{"r1", "r3"}, docs[0].MigratedFrom)
	assert.Equal(t, "Maths", docs[0].Subjects[0].SubjectName)
	assert.Equal(t, "Science", docs[0].Subjects[1].SubjectName)

	assert.Len(t, docs[1].Subjects, 1)
	assert.Equal(t, []string{"r2"}, docs[1].MigratedFrom)
}

func TestMigrateLegacy(t *testing.T) {
	store := newFakeResultStore(
		row("r1", "s1", "Maths", "midterm", 80),
		row("r2", "s1", "Science", "midterm", 90),
		row("r3", "s2", "Maths", "midterm", 70),
	)
	svc := newService(store)

	report, err := svc.MigrateLegacy(context.Background(), "ABC")
	require.NoError(t, err)

	assert.Equal(t, 2, report.GroupsMigrated)
	assert.Equal(t, 3, report.RowsConsumed)
	assert.Zero(t, report.GroupsSkipped)
	assert.Empty(t, store.legacy, "consumed rows must be swept")
	assert.Len(t, store.docs, 2)
}

func TestMigrateLegacyIsIdempotent(t *testing.T) {
	store := newFakeResultStore(row("r1", "s1", "Maths", "midterm", 80))
	svc := newService(store)

	_, err := svc.MigrateLegacy(context.Background(), "ABC")
	require.NoError(t, err)

	report, err := svc.MigrateLegacy(context.Background(), "ABC")
	require.NoError(t, err)
	assert.Zero(t, report.GroupsMigrated)
	assert.Zero(t, report.RowsConsumed)
	assert.Len(t, store.docs, 1, "rerun must not duplicate documents")
}

func TestMigrateLegacyRepairsCrashedRun(t *testing.T) {
	// A previous run inserted the document but crashed before sweeping
	// the flat rows. The rerun skips the insert and finishes the sweep.
	store := newFakeResultStore(row("r1", "s1", "Maths", "midterm", 80))
	svc := newService(store)

	doc := GroupLegacy(store.legacy)[0]
	_, err := store.InsertMigrated(context.Background(), doc)
	require.NoError(t, err)

	report, err := svc.MigrateLegacy(context.Background(), "ABC")
	require.NoError(t, err)

	assert.Zero(t, report.GroupsMigrated)
	assert.Equal(t, 1, report.GroupsSkipped)
	assert.Equal(t, 1, report.RowsConsumed)
	assert.Empty(t, store.legacy)
}

func TestUpsertScoreDerivesPercentage(t *testing.T) {
	store := newFakeResultStore()
	captured := &capturingResultStore{fakeResultStore: store}
	tenant := &repository.Tenant{Code: "ABC", Results: captured}
	svc := NewService(&fakeResolver{tenant: tenant}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := svc.UpsertScore(context.Background(), ScoreInput{
		SchoolCode:   "ABC",
		StudentID:    "s1",
		StudentName:  "Student s1",
		ClassName:    "10",
		Section:      "A",
		AcademicYear: "2024-25",
		SubjectName:  "Maths",
		TestType:     "midterm",
		Marks:        45,
		MaxMarks:     60,
	})
	require.NoError(t, err)
	assert.InDelta(t, 75.0, captured.lastScore.Percentage, 0.001)
}

func TestUpsertScoreRejectsMarksOverMax(t *testing.T) {
	svc := newService(newFakeResultStore())

	err := svc.UpsertScore(context.Background(), ScoreInput{
		SchoolCode:   "ABC",
		StudentID:    "s1",
		StudentName:  "Student s1",
		ClassName:    "10",
		Section:      "A",
		AcademicYear: "2024-25",
		SubjectName:  "Maths",
		TestType:     "midterm",
		Marks:        101,
		MaxMarks:     100,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

type capturingResultStore struct {
	*fakeResultStore
	lastScore entity.SubjectScore
}

func (c *capturingResultStore) UpsertScore(_ context.Context, _ entity.ResultKey, _ string, score entity.SubjectScore) error {
	c.lastScore = score
	return nil
}
