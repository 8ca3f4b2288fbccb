package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	"text/template"

	"eventmanagement/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// templateRenderer renders the embedded templates, parsed once at construction.
// A template named "welcome" is made of welcome_subject.txt, welcome.html and welcome.txt.
type templateRenderer struct {
	text *template.Template
	html *htmltemplate.Template
}

// NewTemplateRenderer returns an EmailTemplateRenderer over the embedded templates folder.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{
		text: template.Must(template.ParseFS(templateFS, "templates/*.txt")),
		html: htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/*.html")),
	}
}

func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	var buf bytes.Buffer
	if err := r.text.ExecuteTemplate(&buf, templateName+"_subject.txt", data); err != nil {
		return "", "", "", fmt.Errorf("render %s subject: %w", templateName, err)
	}
	subject = strings.TrimSpace(buf.String())

	buf.Reset()
	if err := r.html.ExecuteTemplate(&buf, templateName+".html", data); err != nil {
		return "", "", "", fmt.Errorf("render %s html: %w", templateName, err)
	}
	htmlBody = buf.String()

	buf.Reset()
	if err := r.text.ExecuteTemplate(&buf, templateName+".txt", data); err != nil {
		return "", "", "", fmt.Errorf("render %s text: %w", templateName, err)
	}
	return subject, htmlBody, buf.String(), nil
}
