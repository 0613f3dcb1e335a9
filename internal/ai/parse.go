package ai

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/models"
)

type enrichmentPayload struct {
	ImagePrompt string    `json:"imagePrompt"`
	PoeticQuote string    `json:"poeticQuote"`
	Keywords    []string  `json:"keywords"`
	Highlights  *[]string `json:"highlights"`
}

type keywordPayload struct {
	Text  string  `json:"text"`
	Count float64 `json:"count"`
}

type reportPayload struct {
	Title              string           `json:"title"`
	Summary            string           `json:"summary"`
	MoodVibe           string           `json:"moodVibe"`
	TopKeywords        []keywordPayload `json:"topKeywords"`
	PersonalNarratives []string         `json:"personalNarratives"`
	VisualTheme        string           `json:"visualTheme"`
}

// stripFences removes a ```json ... ``` wrapper some models add around JSON
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ParseEnrichment decodes and normalizes a text-enrichment reply
func ParseEnrichment(raw string) (models.Enrichment, error) {
	var p enrichmentPayload
	if err := json.Unmarshal([]byte(stripFences(raw)), &p); err != nil {
		return models.Enrichment{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	e := models.Enrichment{
		ImagePrompt: p.ImagePrompt,
		Caption:     p.PoeticQuote,
		Keywords:    p.Keywords,
	}
	if p.Highlights != nil {
		e.Highlights = *p.Highlights
		e.HasHighlights = true
	}
	e = e.Normalize()

	if e.ImagePrompt == "" {
		return models.Enrichment{}, fmt.Errorf("%w: empty imagePrompt", ErrMalformedResponse)
	}
	return e, nil
}

// ParseReport decodes a report-synthesis reply
func ParseReport(raw string) (models.ReportNarrative, error) {
	var p reportPayload
	if err := json.Unmarshal([]byte(stripFences(raw)), &p); err != nil {
		return models.ReportNarrative{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if strings.TrimSpace(p.Title) == "" && strings.TrimSpace(p.Summary) == "" {
		return models.ReportNarrative{}, fmt.Errorf("%w: empty report", ErrMalformedResponse)
	}

	n := models.ReportNarrative{
		Title:              strings.TrimSpace(p.Title),
		Summary:            strings.TrimSpace(p.Summary),
		MoodVibe:           strings.TrimSpace(p.MoodVibe),
		TopKeywords:        []models.KeywordCount{},
		PersonalNarratives: []string{},
		VisualTheme:        strings.TrimSpace(p.VisualTheme),
	}
	for _, k := range p.TopKeywords {
		text := strings.TrimSpace(k.Text)
		if text == "" {
			continue
		}
		n.TopKeywords = append(n.TopKeywords, models.KeywordCount{Text: text, Count: int(math.Round(k.Count))})
	}
	for _, s := range p.PersonalNarratives {
		if s = strings.TrimSpace(s); s != "" {
			n.PersonalNarratives = append(n.PersonalNarratives, s)
		}
	}
	return n, nil
}

// DataURI encodes image bytes as an inline data URI
func DataURI(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
