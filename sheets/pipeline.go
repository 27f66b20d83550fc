// Package sheets reads the race calendar spreadsheet. A run resolves the
// sheet's CSV export URL, downloads it, tokenizes the text and maps each data
// row to a models.Race, dropping rows that lack required fields.
package sheets

import (
	"context"
	"fmt"

	"github.com/padraicbc/racecal/models"
)

// Pipeline runs resolve, fetch and parse in sequence. It holds no state of
// its own between runs and is safe for concurrent use.
type Pipeline struct {
	retriever *Retriever
	parser    *Parser
}

// NewPipeline creates a Pipeline from its stages.
func NewPipeline(retriever *Retriever, parser *Parser) *Pipeline {
	return &Pipeline{retriever: retriever, parser: parser}
}

// GetRaces returns the races of the sheet at sourceURL in sheet order.
// URL and retrieval failures abort the run; bad rows are only skipped.
func (p *Pipeline) GetRaces(ctx context.Context, sourceURL string) ([]models.Race, error) {
	exportURL, err := ResolveExportURL(sourceURL)
	if err != nil {
		return nil, err
	}

	text, err := p.retriever.Fetch(ctx, exportURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", exportURL, err)
	}

	return p.parser.Parse(text), nil
}
