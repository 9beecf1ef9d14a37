package sheetsclient

import (
	"fmt"

	"github.com/jakechorley/duty-rota/pkg/report"
)

// PublishSchedule writes every tab of the workbook, replacing tabs of the same name
func (c *Client) PublishSchedule(spreadsheetID string, workbook *report.Workbook) error {
	if spreadsheetID == "" {
		return fmt.Errorf("scheduleSheetID is not configured")
	}

	for _, tab := range workbook.Tabs {
		if err := c.WriteTab(spreadsheetID, tab.Title, tab.Rows); err != nil {
			return fmt.Errorf("failed to publish schedule: %w", err)
		}
	}

	return nil
}
