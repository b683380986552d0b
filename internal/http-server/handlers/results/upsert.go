package results

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/JayeshSardesai/ERP-sub004/internal/lib/api/response"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/sl"
	resultsvc "github.com/JayeshSardesai/ERP-sub004/internal/service/results"
)

type UpsertRequest struct {
	StudentID    string  `json:"student_id"`
	StudentName  string  `json:"student_name"`
	ClassName    string  `json:"class_name"`
	Section      string  `json:"section"`
	AcademicYear string  `json:"academic_year"`
	SubjectName  string  `json:"subject_name"`
	TestType     string  `json:"test_type"`
	Marks        float64 `json:"marks"`
	MaxMarks     float64 `json:"max_marks"`
	Grade        string  `json:"grade"`
}

func Upsert(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.results")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := caller(w, r)
		if id == nil {
			return
		}
		if !id.IsTeacher() && !id.IsAdmin() {
			forbidden(w, r)
			return
		}

		var req UpsertRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		err := handler.UpsertScore(r.Context(), resultsvc.ScoreInput{
			SchoolCode:   id.SchoolCode,
			StudentID:    req.StudentID,
			StudentName:  req.StudentName,
			ClassName:    req.ClassName,
			Section:      req.Section,
			AcademicYear: req.AcademicYear,
			SubjectName:  req.SubjectName,
			TestType:     req.TestType,
			Marks:        req.Marks,
			MaxMarks:     req.MaxMarks,
			Grade:        req.Grade,
		})
		if err != nil {
			logger.Error("failed to upsert score", sl.Err(err))
			render.Status(r, statusOf(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to save score: %v", err)))
			return
		}

		logger.Debug("score saved",
			slog.String("student_id", req.StudentID),
			slog.String("subject", req.SubjectName),
		)
		render.JSON(w, r, response.OkMessage("Score saved successfully"))
	}
}
