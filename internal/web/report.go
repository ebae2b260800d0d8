package web

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/acadeval/report-server/internal/dataset"
	"github.com/acadeval/report-server/internal/metrics"
	"github.com/acadeval/report-server/internal/report"
)

const (
	defaultCommentColumn = "General comments"
	defaultConvertedMax  = 60

	// uploads larger than this are rejected before parsing
	maxUploadBytes = 16 << 20
)

type reportRequest struct {
	EvaluationType string `form:"evaluation_type"`
	FacultyName    string `form:"faculty_name"`
	Program        string `form:"program"`
	CourseCode     string `form:"course_code"`
	Batch          string `form:"batch"`
	Semester       string `form:"semester"`
	Year           string `form:"year"`
	SheetURL       string `form:"sheet_url"`
	CommentColumn  string `form:"comment_column"`
}

func (r *reportRequest) validate() error {
	switch report.EvaluationType(r.EvaluationType) {
	case report.EvaluationFaculty:
		if strings.TrimSpace(r.FacultyName) == "" {
			return fmt.Errorf("please fill in the faculty name")
		}
	case report.EvaluationCourse:
		// no faculty needed.
	default:
		return fmt.Errorf("evaluation_type must be faculty or course")
	}

	if strings.TrimSpace(r.CourseCode) == "" {
		return fmt.Errorf("please fill in the course code")
	}
	if strings.TrimSpace(r.Batch) == "" {
		return fmt.Errorf("please fill in the batch")
	}
	return nil
}

func (r *reportRequest) metadata(sessUsername string) report.Metadata {
	evalType := report.EvaluationType(r.EvaluationType)

	title := "Course Evaluation"
	if evalType == report.EvaluationFaculty {
		title = "Faculty Evaluation"
	}

	semester := strings.TrimSpace(r.Semester)
	if y := strings.TrimSpace(r.Year); y != "" {
		semester = strings.TrimSpace(semester + " " + y)
	}

	return report.Metadata{
		Title:       title,
		Evaluator:   sessUsername,
		FacultyName: r.FacultyName,
		Program:     r.Program,
		CourseCode:  r.CourseCode,
		Batch:       r.Batch,
		Semester:    semester,
		Type:        evalType,
		Date:        time.Now(),
	}
}

// handleGenerateReport runs the whole pipeline for one submission:
// load table, summarize, render charts, compose, rasterize, stream the
// PDF back. Each request owns its own table and summaries; a failure
// here never affects later generations.
func (h *Handlers) handleGenerateReport(c echo.Context) error {
	var req reportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed report request")
	}
	if err := req.validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	table, err := h.loadTable(c, &req)
	if err != nil {
		return h.mapError(c, "load table", err)
	}

	commentColumn := req.CommentColumn
	if commentColumn == "" {
		commentColumn = defaultCommentColumn
	}

	summaries := questionSummaries(table, commentColumn)
	if len(summaries) == 0 {
		return h.mapError(c, "summarize", dataset.ErrEmptyData)
	}

	charts := make(map[string][]byte, len(summaries))
	for _, s := range summaries {
		img, err := h.charts.Donut(s)
		if err != nil {
			return h.mapError(c, "render chart", err)
		}
		charts[s.Question] = img
	}

	sess, _ := CurrentSession(c)
	doc := report.Document{
		Meta:           req.metadata(sess.Username),
		Summaries:      summaries,
		Charts:         charts,
		Comments:       metrics.Comments(table, commentColumn),
		Scores:         metrics.Score(summaries, metrics.DefaultScale(), defaultConvertedMax),
		TotalResponses: len(table.Rows),
	}

	pdf, err := h.generator.Generate(c.Request().Context(), doc)
	if err != nil {
		return h.mapError(c, "generate report", err)
	}

	h.logger.Info("report delivered",
		zap.String("evaluator", sess.Username),
		zap.String("type", req.EvaluationType),
		zap.Int("questions", len(summaries)),
		zap.Int("responses", doc.TotalResponses))

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, doc.Meta.Filename()))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// loadTable picks the data source: an uploaded file wins over a sheet
// link; having neither is a bad request.
func (h *Handlers) loadTable(c echo.Context, req *reportRequest) (*dataset.EvaluationTable, error) {
	fileHeader, fileErr := c.FormFile("file")
	if fileErr == nil && fileHeader != nil {
		if fileHeader.Size > maxUploadBytes {
			return nil, fmt.Errorf("%w: upload exceeds %d bytes", dataset.ErrFormat, maxUploadBytes)
		}

		f, err := fileHeader.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload: %w", err)
		}
		defer f.Close()

		if strings.EqualFold(filepath.Ext(fileHeader.Filename), ".xlsx") {
			return dataset.ParseXLSX(f)
		}
		return dataset.ParseCSV(f)
	}

	if strings.TrimSpace(req.SheetURL) != "" {
		if h.sheets == nil {
			return nil, dataset.ErrSourceUnavailable
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.fetchTimeout)
		defer cancel()
		return h.sheets.FromSheetURL(ctx, req.SheetURL)
	}

	return nil, fmt.Errorf("%w: upload a file or paste a sheet link", dataset.ErrEmptyData)
}

// questionSummaries summarizes the table and drops the bookkeeping
// columns that are not survey questions: the export timestamp and the
// free-text comment column.
func questionSummaries(table *dataset.EvaluationTable, commentColumn string) []metrics.QuestionSummary {
	all := metrics.Summarize(table)

	kept := make([]metrics.QuestionSummary, 0, len(all))
	for _, s := range all {
		if s.Question == commentColumn {
			continue
		}
		if strings.EqualFold(s.Question, "timestamp") {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}
