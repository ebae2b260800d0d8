package report

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/acadeval/report-server/internal/metrics"
)

var (
	// ErrMissingChart reports a summary that has no chart image to place
	// in the document. Checked before any rasterization work starts.
	ErrMissingChart = errors.New("missing chart image for question")
	// ErrEngineUnavailable reports that the rasterization environment is
	// not initialized.
	ErrEngineUnavailable = errors.New("render engine unavailable")
)

// EvaluationType distinguishes the two report flavours.
type EvaluationType string

const (
	EvaluationFaculty EvaluationType = "faculty"
	EvaluationCourse  EvaluationType = "course"
)

// Metadata travels unchanged from the submitting form to the document
// header.
type Metadata struct {
	Title       string
	Evaluator   string
	FacultyName string
	Program     string
	CourseCode  string
	Batch       string
	Semester    string
	Type        EvaluationType
	Date        time.Time
}

// Filename derives a descriptive PDF filename from the metadata.
func (m Metadata) Filename() string {
	parts := []string{m.FacultyName, m.CourseCode, m.Batch, m.Semester}
	if m.Type == EvaluationCourse {
		parts = parts[1:]
	}

	cleaned := make([]string, 0, len(parts)+1)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		cleaned = append(cleaned, strings.ReplaceAll(p, " ", "_"))
	}
	if len(cleaned) == 0 {
		cleaned = append(cleaned, "Evaluation")
	}
	return strings.Join(cleaned, "_") + "_Report.pdf"
}

// Document bundles everything the composer needs for one report.
type Document struct {
	Meta           Metadata
	Summaries      []metrics.QuestionSummary
	Charts         map[string][]byte
	Comments       []string
	Scores         metrics.ScoreCard
	TotalResponses int
}

// Rasterizer converts a composed HTML document into a PDF byte stream.
// Implementations live behind this boundary; the composer never knows
// how the rasterization happens.
type Rasterizer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// Composer assembles metadata, metrics and chart images into the report
// document and hands it to the rasterizer.
type Composer struct {
	rasterizer Rasterizer
	tmpl       *template.Template
	logger     *zap.Logger
}

// NewComposer creates a Composer. rasterizer may be nil if only Compose
// is used.
func NewComposer(rasterizer Rasterizer, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{
		rasterizer: rasterizer,
		tmpl:       template.Must(template.New("report").Parse(htmlTemplate)),
		logger:     logger.Named("composer"),
	}
}

type questionView struct {
	Question string
	MeanText string
	ChartURI template.URL
}

type metadataField struct {
	Label string
	Value string
}

type documentView struct {
	Title          string
	GeneratedAt    string
	Fields         []metadataField
	TotalResponses int
	Questions      []questionView
	Comments       []string
	Scores         metrics.ScoreCard
	HasScores      bool
}

// Compose renders the document to its HTML form. Every summary must have
// a matching chart image; a gap fails with ErrMissingChart before any
// rasterization work is attempted.
func (c *Composer) Compose(doc Document) (string, error) {
	for _, s := range doc.Summaries {
		if _, ok := doc.Charts[s.Question]; !ok {
			return "", fmt.Errorf("%w: %s", ErrMissingChart, s.Question)
		}
	}

	view := documentView{
		Title:          doc.Meta.Title,
		GeneratedAt:    doc.Meta.Date.Format("2 January 2006"),
		Fields:         metadataFields(doc.Meta),
		TotalResponses: doc.TotalResponses,
		Comments:       doc.Comments,
		Scores:         doc.Scores,
		HasScores:      len(doc.Scores.Attributes) > 0,
	}

	for _, s := range doc.Summaries {
		uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(doc.Charts[s.Question])
		view.Questions = append(view.Questions, questionView{
			Question: s.Question,
			MeanText: meanText(s),
			ChartURI: template.URL(uri),
		})
	}

	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("execute report template: %w", err)
	}
	return buf.String(), nil
}

// Generate composes the document and rasterizes it into PDF bytes.
func (c *Composer) Generate(ctx context.Context, doc Document) ([]byte, error) {
	if c.rasterizer == nil {
		return nil, ErrEngineUnavailable
	}

	html, err := c.Compose(doc)
	if err != nil {
		return nil, err
	}

	pdf, err := c.rasterizer.Render(ctx, html)
	if err != nil {
		return nil, err
	}

	c.logger.Info("report generated",
		zap.String("title", doc.Meta.Title),
		zap.Int("questions", len(doc.Summaries)),
		zap.Int("pdf_bytes", len(pdf)))

	return pdf, nil
}

func meanText(s metrics.QuestionSummary) string {
	if s.Mean == nil {
		return "no data"
	}
	return fmt.Sprintf("%.2f", *s.Mean)
}

func metadataFields(m Metadata) []metadataField {
	candidates := []metadataField{
		{"Faculty Name", m.FacultyName},
		{"Evaluator", m.Evaluator},
		{"Program", m.Program},
		{"Course Code", m.CourseCode},
		{"Batch", m.Batch},
		{"Semester", m.Semester},
	}

	fields := make([]metadataField, 0, len(candidates))
	for _, f := range candidates {
		if strings.TrimSpace(f.Value) != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
