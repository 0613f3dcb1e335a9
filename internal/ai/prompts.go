package ai

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var prompts = template.Must(template.ParseFS(promptFS, "prompts/*.tmpl"))

type enrichPromptData struct {
	Text       string
	CaptionMax int
}

func renderPrompt(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := prompts.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", name, err)
	}
	return buf.String(), nil
}

func enrichPrompt(text string) (string, error) {
	return renderPrompt("enrich.tmpl", enrichPromptData{Text: text, CaptionMax: constants.CaptionMaxGlyphs})
}

func reportPrompt(req ReportRequest) (string, error) {
	if req.Instruction == "" {
		req.Instruction = constants.DefaultInstruction
	}
	return renderPrompt("report.tmpl", req)
}
