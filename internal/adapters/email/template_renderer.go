package email

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"eventbooking/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// ErrTemplateNotFound is returned by Render for an unknown template name.
var ErrTemplateNotFound = errors.New("email template not found")

const eventDateLayout = "Mon, 02 Jan 2006 15:04 MST"

var funcs = map[string]any{
	"eventDate": func(t time.Time) string { return t.UTC().Format(eventDateLayout) },
}

// Templates are parsed once; a parse error is a build defect.
var (
	htmlTemplates = htmltemplate.Must(htmltemplate.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
	textTemplates = texttemplate.Must(texttemplate.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.txt"))
)

// templateRenderer implements domain.EmailTemplateRenderer over the embedded templates.
// A template "x" consists of x_subject.txt, x.txt and optionally x.html.
type templateRenderer struct{}

func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return templateRenderer{}
}

func (templateRenderer) Render(name string, data any) (domain.RenderedEmail, error) {
	subjectTmpl := textTemplates.Lookup(name + "_subject.txt")
	textTmpl := textTemplates.Lookup(name + ".txt")
	if subjectTmpl == nil || textTmpl == nil {
		return domain.RenderedEmail{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	var out domain.RenderedEmail
	var buf bytes.Buffer
	if err := subjectTmpl.Execute(&buf, data); err != nil {
		return domain.RenderedEmail{}, fmt.Errorf("render subject: %w", err)
	}
	// Subjects are single-line.
	out.Subject = strings.Join(strings.Fields(buf.String()), " ")

	buf.Reset()
	if err := textTmpl.Execute(&buf, data); err != nil {
		return domain.RenderedEmail{}, fmt.Errorf("render text: %w", err)
	}
	out.Text = buf.String()

	if htmlTmpl := htmlTemplates.Lookup(name + ".html"); htmlTmpl != nil {
		buf.Reset()
		if err := htmlTmpl.Execute(&buf, data); err != nil {
			return domain.RenderedEmail{}, fmt.Errorf("render html: %w", err)
		}
		out.HTML = buf.String()
	}
	return out, nil
}
