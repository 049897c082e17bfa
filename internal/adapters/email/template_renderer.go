package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"

	"github.com/JakeWimberley/Weathredds/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// invitationTemplateData is what the invitation templates see.
type invitationTemplateData struct {
	*domain.EventInvitationEmailData
	EventURL string
}

// renderInvitation renders the invitation subject, HTML body, and text body.
func renderInvitation(data *domain.EventInvitationEmailData, baseURL string) (subject, htmlBody, textBody string, err error) {
	td := invitationTemplateData{
		EventInvitationEmailData: data,
		EventURL:                 strings.TrimSuffix(baseURL, "/") + "/events/" + data.EventID,
	}
	subject, err = renderFile("invitation_subject.txt", td, false)
	if err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	htmlBody, err = renderFile("invitation.html", td, true)
	if err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	textBody, err = renderFile("invitation.txt", td, false)
	if err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	return strings.TrimSpace(subject), htmlBody, textBody, nil
}

func renderFile(name string, data interface{}, html bool) (string, error) {
	raw, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", err
	}
	tmplStr := string(raw)
	var buf bytes.Buffer
	if html {
		t, err := template.New(name).Parse(tmplStr)
		if err != nil {
			return "", err
		}
		if err := t.Execute(&buf, data); err != nil {
			return "", err
		}
	} else {
		t, err := texttemplate.New(name).Parse(tmplStr)
		if err != nil {
			return "", err
		}
		if err := t.Execute(&buf, data); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
