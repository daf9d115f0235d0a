// Package report renders the review backlog and progress summary as markdown.
package report

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/rbarros/studytrack/internal/calendar"
	"github.com/rbarros/studytrack/internal/pdf"
	"github.com/rbarros/studytrack/internal/review"
	"github.com/rbarros/studytrack/internal/statistics"
)

//go:embed templates/review-report.md.go.tmpl
var reviewReportTemplate string

// Data is the input for one rendered report.
type Data struct {
	Track          string
	GeneratedOn    calendar.Date
	Classification review.Classification
	Summary        statistics.Summary
}

func parseTemplateWithFallback(templatePath string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
		"percent": func(v float64) string {
			return fmt.Sprintf("%.0f%%", v*100)
		},
	}

	if templatePath == "" {
		tmpl, err := template.New("review-report.md.go.tmpl").
			Funcs(funcMap).
			Parse(reviewReportTemplate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse embedded template: %w", err)
		}
		return tmpl, nil
	}

	// If template path is provided, it must be valid.
	if _, err := os.Stat(templatePath); err != nil {
		return nil, fmt.Errorf("template file not found or accessible: %w", err)
	}

	fileName := filepath.Base(templatePath)
	tmpl, err := template.New(fileName).
		Funcs(funcMap).
		ParseFiles(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template file %s: %w", templatePath, err)
	}
	return tmpl, nil
}

// Write renders the report to w. An empty templatePath uses the embedded
// template.
func Write(w io.Writer, templatePath string, data Data) error {
	tmpl, err := parseTemplateWithFallback(templatePath)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback(%s) > %w", templatePath, err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

// Writer writes rendered reports into an output directory.
type Writer struct {
	outputDirectory string
	templatePath    string
}

func NewWriter(outputDirectory, templatePath string) *Writer {
	return &Writer{
		outputDirectory: outputDirectory,
		templatePath:    templatePath,
	}
}

// Generate writes the markdown report for data, named after the track and
// date. With generatePDF it also converts the markdown to a PDF alongside it.
// It returns the paths of the files written.
func (writer Writer) Generate(data Data, generatePDF bool) ([]string, error) {
	if err := os.MkdirAll(writer.outputDirectory, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", writer.outputDirectory, err)
	}

	name := fmt.Sprintf("%s-%s.md", data.Track, data.GeneratedOn)
	outputFilename := filepath.Join(writer.outputDirectory, name)

	output, err := os.Create(outputFilename)
	if err != nil {
		return nil, fmt.Errorf("os.Create(%s) > %w", outputFilename, err)
	}
	defer func() {
		_ = output.Close()
	}()

	if err := Write(output, writer.templatePath, data); err != nil {
		return nil, fmt.Errorf("report.Write(%s) > %w", outputFilename, err)
	}
	paths := []string{outputFilename}

	if generatePDF {
		pdfPath, err := pdf.ConvertMarkdownToPDF(outputFilename)
		if err != nil {
			return paths, fmt.Errorf("ConvertMarkdownToPDF(%s) > %w", outputFilename, err)
		}
		paths = append(paths, pdfPath)
	}

	return paths, nil
}
