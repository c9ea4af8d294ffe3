package usecase

import (
	"bytes"
	"fmt"

	"github.com/JawherBalti/HiredIn-Back/internal/domain"

	"github.com/xuri/excelize/v2"
)

var applicantColumns = []string{"NAME", "EMAIL", "PHONE", "STATUS", "APPLIED AT", "INTERVIEW", "INTERVIEW STATUS", "COVER LETTER"}

// exportApplicants writes one row per application to a styled sheet
func exportApplicants(offer *domain.JobOffer, views []domain.ResumeView) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Applicants"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, name := range applicantColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, name)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(applicantColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, v := range views {
		for colIdx, value := range applicantRow(v) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range applicantColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 22)
	}
	f.SetDocProps(&excelize.DocProperties{Title: fmt.Sprintf("Applicants for %s", offer.Title)})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func applicantRow(v domain.ResumeView) []interface{} {
	var name, email, phone string
	if v.Applicant != nil {
		name = v.Applicant.Name
		email = v.Applicant.Email
		if v.Applicant.Phone != nil {
			phone = *v.Applicant.Phone
		}
	}
	var interviewAt, interviewStatus string
	if v.Interview != nil {
		interviewAt = v.Interview.ScheduledTime.UTC().Format("2006-01-02 15:04")
		interviewStatus = string(v.Interview.Status)
	}
	var cover string
	if v.CoverLetter != nil {
		cover = *v.CoverLetter
	}
	return []interface{}{
		name, email, phone, string(v.Status),
		v.CreatedAt.UTC().Format("2006-01-02 15:04"),
		interviewAt, interviewStatus, cover,
	}
}
