// Package sheets implements store.Store on top of the Google Sheets values API.
package sheets

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"sheet-gateway-backend/internal/platform/store"
)

const (
	valueInputRaw  = "RAW"
	insertDataRows = "INSERT_ROWS"
)

// Store addresses one spreadsheet; table names are its tab names.
type Store struct {
	values        *sheetsapi.SpreadsheetsValuesService
	spreadsheetID string
}

// New authenticates with a service-account credentials file.
func New(ctx context.Context, spreadsheetID, credentialsFile string) (*Store, error) {
	return NewWithOptions(ctx, spreadsheetID,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
}

func NewWithOptions(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*Store, error) {
	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Store{values: svc.Spreadsheets.Values, spreadsheetID: spreadsheetID}, nil
}

func (s *Store) GetRange(ctx context.Context, table, span string) ([][]string, error) {
	if _, err := store.ParseSpan(span); err != nil {
		return nil, err
	}

	resp, err := s.values.Get(s.spreadsheetID, a1(table, span)).Context(ctx).Do()
	if err != nil {
		return nil, apiError("get", table, span, err)
	}
	return fromValues(resp.Values), nil
}

func (s *Store) AppendRows(ctx context.Context, table, span string, rows [][]string) error {
	sp, err := store.ParseSpan(span)
	if err != nil {
		return err
	}
	if err := (store.Span{StartCol: sp.StartCol, EndCol: sp.EndCol, StartRow: 1}).Fits(rows); err != nil {
		return err
	}

	_, err = s.values.Append(s.spreadsheetID, a1(table, span), &sheetsapi.ValueRange{Values: toValues(rows, 0)}).
		ValueInputOption(valueInputRaw).
		InsertDataOption(insertDataRows).
		Context(ctx).
		Do()
	if err != nil {
		return apiError("append", table, span, err)
	}
	return nil
}

// ReplaceRange writes rows at the top of the span, padded to its width, then
// clears the rows of the span below them.
func (s *Store) ReplaceRange(ctx context.Context, table, span string, rows [][]string) error {
	sp, err := store.ParseSpan(span)
	if err != nil {
		return err
	}
	if err := sp.Fits(rows); err != nil {
		return err
	}

	if len(rows) > 0 {
		head := sp
		head.EndRow = sp.StartRow + len(rows) - 1
		_, err := s.values.Update(s.spreadsheetID, a1(table, head.String()), &sheetsapi.ValueRange{Values: toValues(rows, sp.Width())}).
			ValueInputOption(valueInputRaw).
			Context(ctx).
			Do()
		if err != nil {
			return apiError("update", table, head.String(), err)
		}
	}

	rest := sp
	rest.StartRow = sp.StartRow + len(rows)
	if rest.Bounded() && rest.StartRow > rest.EndRow {
		return nil
	}
	return s.ClearRange(ctx, table, rest.String())
}

func (s *Store) ClearRange(ctx context.Context, table, span string) error {
	if _, err := store.ParseSpan(span); err != nil {
		return err
	}

	_, err := s.values.Clear(s.spreadsheetID, a1(table, span), &sheetsapi.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return apiError("clear", table, span, err)
	}
	return nil
}

// a1 builds a range reference such as 'Feuille 2'!A:I.
func a1(table, span string) string {
	return "'" + strings.ReplaceAll(table, "'", "''") + "'!" + span
}

func toValues(rows [][]string, width int) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		row = store.Pad(row, width)
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		out[i] = cells
	}
	return out
}

func fromValues(values [][]interface{}) [][]string {
	rows := make([][]string, 0, len(values))
	for _, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			if v != nil {
				cells[j] = fmt.Sprint(v)
			}
		}
		rows = append(rows, trimCells(cells))
	}
	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}
	return rows
}

func trimCells(row []string) []string {
	n := len(row)
	for n > 0 && row[n-1] == "" {
		n--
	}
	return row[:n]
}

// apiError marks client-side refusals other than rate limiting as permanent.
func apiError(op, table, span string, err error) error {
	var gerr *googleapi.Error
	if stderrors.As(err, &gerr) && gerr.Code >= 400 && gerr.Code < 500 && gerr.Code != http.StatusTooManyRequests {
		return fmt.Errorf("sheets %s %s!%s: %w: %w", op, table, span, store.ErrRejected, err)
	}
	return fmt.Errorf("sheets %s %s!%s: %w", op, table, span, err)
}
