package reports

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	"github.com/aristath/pension/internal/modules/retirement"
)

//go:embed templates/*
var templateFS embed.FS

// EmailSubject is the subject line of report emails.
const EmailSubject = "Your Financial Analysis Report - Athlete Pension"

type emailView struct {
	view
	Year int
}

// EmailRenderer renders the HTML and plain-text bodies of report emails.
type EmailRenderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
	now  func() time.Time
}

// NewEmailRenderer parses the embedded email templates.
func NewEmailRenderer() (*EmailRenderer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "templates/email.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email html template: %w", err)
	}

	text, err := texttemplate.New("email.txt").
		Funcs(texttemplate.FuncMap{"inc": func(i int) int { return i + 1 }}).
		ParseFS(templateFS, "templates/email.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email text template: %w", err)
	}

	return &EmailRenderer{html: html, text: text, now: time.Now}, nil
}

// Render returns the HTML body for analysis.
func (r *EmailRenderer) Render(analysis retirement.AnalysisResult) (string, error) {
	var buf bytes.Buffer
	if err := r.html.Execute(&buf, r.data(analysis)); err != nil {
		return "", fmt.Errorf("failed to render email html: %w", err)
	}
	return buf.String(), nil
}

// RenderText returns the plain-text alternative body for analysis.
func (r *EmailRenderer) RenderText(analysis retirement.AnalysisResult) (string, error) {
	var buf bytes.Buffer
	if err := r.text.Execute(&buf, r.data(analysis)); err != nil {
		return "", fmt.Errorf("failed to render email text: %w", err)
	}
	return buf.String(), nil
}

func (r *EmailRenderer) data(analysis retirement.AnalysisResult) emailView {
	return emailView{view: newView(analysis), Year: r.now().Year()}
}
