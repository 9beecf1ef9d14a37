package sheetsclient

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/jakechorley/duty-rota/internal/config"
	"github.com/jakechorley/duty-rota/pkg/utils"
)

// Client wraps the Google Sheets API client
type Client struct {
	service *sheets.Service
	token   *oauth2.Token
	ctx     context.Context
}

// NewClient creates a new Sheets client, running the OAuth flow if no stored token exists.
// All scopes (sheets, calendar, gmail) are requested so the token can be shared
// with the other clients.
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, env string) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	token, err := utils.GetTokenWithFlow(ctx, oauthConfig, env)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth token: %w", err)
	}

	httpClient := oauthConfig.Client(ctx, token)

	service, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service: service,
		token:   token,
		ctx:     ctx,
	}, nil
}

// Token returns the OAuth token used by this client
func (c *Client) Token() *oauth2.Token {
	return c.token
}

// GetValues reads values from a spreadsheet range
func (c *Client) GetValues(spreadsheetID, sheetRange string) ([][]interface{}, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, sheetRange).Context(c.ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get values: %w", err)
	}

	return resp.Values, nil
}

// CreateSheet creates a new sheet/tab in the spreadsheet
func (c *Client) CreateSheet(spreadsheetID, sheetTitle string) (int64, error) {
	req := &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{
				Title: sheetTitle,
			},
		},
	}

	batchUpdateRequest := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{req},
	}

	resp, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, batchUpdateRequest).Context(c.ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to create sheet: %w", err)
	}

	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil {
		return 0, fmt.Errorf("unexpected response from create sheet")
	}

	return resp.Replies[0].AddSheet.Properties.SheetId, nil
}

// SheetTitles lists the tab titles of a spreadsheet
func (c *Client) SheetTitles(spreadsheetID string) ([]string, error) {
	spreadsheet, err := c.service.Spreadsheets.Get(spreadsheetID).Context(c.ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet metadata: %w", err)
	}

	titles := make([]string, 0, len(spreadsheet.Sheets))
	for _, sheet := range spreadsheet.Sheets {
		titles = append(titles, sheet.Properties.Title)
	}
	return titles, nil
}

// WriteTab replaces the contents of a tab, creating it if it doesn't exist
func (c *Client) WriteTab(spreadsheetID, title string, rows [][]string) error {
	titles, err := c.SheetTitles(spreadsheetID)
	if err != nil {
		return err
	}

	if slices.Contains(titles, title) {
		_, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, tabRange(title), &sheets.ClearValuesRequest{}).
			Context(c.ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to clear tab %q: %w", title, err)
		}
	} else if _, err := c.CreateSheet(spreadsheetID, title); err != nil {
		return fmt.Errorf("failed to create tab %q: %w", title, err)
	}

	valueRange := &sheets.ValueRange{
		Values: toCells(rows),
	}

	_, err = c.service.Spreadsheets.Values.Update(spreadsheetID, tabRange(title)+"!A1", valueRange).
		ValueInputOption("RAW").
		Context(c.ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write tab %q: %w", title, err)
	}

	return nil
}

// tabRange quotes a tab title for use in A1 notation
func tabRange(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// toCells converts a string grid into the API's cell values
func toCells(rows [][]string) [][]interface{} {
	cells := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells[i] = make([]interface{}, len(row))
		for j, v := range row {
			cells[i][j] = v
		}
	}
	return cells
}

// fromCells converts API cell values into strings. Non-string cells are
// formatted with %v.
func fromCells(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			switch v := cell.(type) {
			case string:
				rows[i][j] = v
			case nil:
			default:
				rows[i][j] = fmt.Sprint(v)
			}
		}
	}
	return rows
}
