// Package export renders the activity board as an Excel workbook.
package export

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/gdg-garage/school-activities-api/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	ContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	RosterSheet  = "Roster"
	SummarySheet = "Summary"
)

// WriteRoster writes a workbook with one row per participant on the Roster
// sheet and one row per activity on the Summary sheet.
func WriteRoster(w io.Writer, activities []models.Activity) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Error closing excel file: %v", err)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), RosterSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	if err := setRow(f, RosterSheet, 1, []interface{}{"Activity", "Schedule", "Email", "Signed Up At"}); err != nil {
		return err
	}
	row := 2
	for _, a := range activities {
		for _, p := range a.Participants {
			values := []interface{}{a.Name, a.Schedule, p.Email, p.CreatedAt.UTC().Format(time.RFC3339)}
			if err := setRow(f, RosterSheet, row, values); err != nil {
				return err
			}
			row++
		}
	}

	if err := setRow(f, SummarySheet, 1, []interface{}{"Activity", "Schedule", "Capacity", "Enrolled", "Spots Left"}); err != nil {
		return err
	}
	for i, a := range activities {
		values := []interface{}{a.Name, a.Schedule, nil, len(a.Participants), nil}
		if left, ok := a.SpotsLeft(); ok {
			values[2] = *a.MaxParticipants
			values[4] = left
		}
		if err := setRow(f, SummarySheet, i+2, values); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
