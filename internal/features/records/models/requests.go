package models

import (
	"fmt"
	"strconv"
)

// WriteRequest carries one batch of rows. Cells may be JSON strings, numbers
// or booleans; they are stored as text.
type WriteRequest struct {
	Values [][]interface{} `json:"values" binding:"required"`
}

// WriteResult summarises what a batch changed.
type WriteResult struct {
	Message      string `json:"message" example:"Data appended"`
	Appended     int    `json:"appended" example:"3"`
	Skipped      int    `json:"skipped" example:"0"`
	UsersUpdated int    `json:"users_updated" example:"2"`
	UsersCreated int    `json:"users_created" example:"1"`
	DevicesAdded int    `json:"devices_added" example:"1"`
}

// UpdateRequest overwrites a range of a table with values.
type UpdateRequest struct {
	Range  string          `json:"range" binding:"required" example:"B2"`
	Values [][]interface{} `json:"values" binding:"required"`
	Table  string          `json:"table" example:"Feuille 1"`
}

// MessageResponse is the body of writes that return no data.
type MessageResponse struct {
	Message string `json:"message" example:"Data updated"`
}

// Cells converts decoded JSON cells to their stored text form.
func Cells(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = cellText(v)
		}
		rows[i] = cells
	}
	return rows
}

func cellText(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprint(t)
	}
}
