package compose

import "github.com/shenyaoyiivy/Glimmer-Mood/internal/models"

// Step is what the workflow asks its driver to do next
type Step interface {
	isStep()
}

// Enrich asks for text enrichment of Text
type Enrich struct {
	Text string
}

// Illustrate asks for an image from Prompt
type Illustrate struct {
	Prompt string
}

// Committed reports that Entry was written to the store; the workflow is idle
type Committed struct {
	Entry models.JournalEntry
}

func (Enrich) isStep()     {}
func (Illustrate) isStep() {}
func (Committed) isStep()  {}

// Event is a completion delivered back to the workflow
type Event interface {
	isEvent()
}

// EnrichDone carries a successful enrichment
type EnrichDone struct {
	Result models.Enrichment
}

// IllustrateDone carries the generated image reference
type IllustrateDone struct {
	ImageURL string
}

// Failure carries any error from the pending call
type Failure struct {
	Err error
}

func (EnrichDone) isEvent()     {}
func (IllustrateDone) isEvent() {}
func (Failure) isEvent()        {}
