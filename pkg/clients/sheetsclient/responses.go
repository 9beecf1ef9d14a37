package sheetsclient

import (
	"fmt"

	"github.com/jakechorley/duty-rota/internal/config"
)

// ReadResponses retrieves the survey response table from the configured spreadsheet
func (c *Client) ReadResponses(cfg *config.Config) ([][]string, error) {
	if cfg.ResponsesSheetID == "" {
		return nil, fmt.Errorf("responsesSheetID is not configured")
	}

	values, err := c.GetValues(cfg.ResponsesSheetID, tabRange(cfg.ResponsesTab))
	if err != nil {
		return nil, fmt.Errorf("failed to get survey responses: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("spreadsheet is empty")
	}

	return fromCells(values), nil
}
