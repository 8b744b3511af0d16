package usecase

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hushh-site-backend/internal/domain"
	"hushh-site-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

const exportLimit = 1000

type adminUsecase struct {
	repo domain.SubmissionRepository
}

// NewAdminUsecase creates the back-office usecase over archived submissions
func NewAdminUsecase(repo domain.SubmissionRepository) domain.AdminUsecase {
	return &adminUsecase{repo: repo}
}

// ListSubmissions returns one page of the archive, newest first
func (u *adminUsecase) ListSubmissions(ctx context.Context, page, pageSize int) (*domain.PaginatedSubmissions, error) {
	if u.repo == nil {
		return nil, apperror.New(http.StatusServiceUnavailable, "Submission archive is not configured", nil)
	}
	if page < 1 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	items, total, err := u.repo.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	return &domain.PaginatedSubmissions{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

var exportColumns = []string{
	"created_at", "name", "email", "company", "phone", "subject",
	"department", "urgency", "preferred_contact", "attachment_count", "message",
}

var exportHeaders = map[string]string{
	"created_at":        "RECEIVED AT",
	"name":              "NAME",
	"email":             "EMAIL",
	"company":           "COMPANY",
	"phone":             "PHONE",
	"subject":           "SUBJECT",
	"department":        "DEPARTMENT",
	"urgency":           "URGENCY",
	"preferred_contact": "PREFERRED CONTACT",
	"attachment_count":  "ATTACHMENTS",
	"message":           "MESSAGE",
}

// ExportSubmissions renders the archive as an xlsx workbook or a CSV file
func (u *adminUsecase) ExportSubmissions(ctx context.Context, format string) ([]byte, string, string, error) {
	if u.repo == nil {
		return nil, "", "", apperror.New(http.StatusServiceUnavailable, "Submission archive is not configured", nil)
	}
	items, _, err := u.repo.List(ctx, exportLimit, 0)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to load submissions: %w", err)
	}

	switch format {
	case "", "xlsx":
		data, name, err := exportExcel(items)
		return data, name, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", err
	case "csv":
		data, name, err := exportCSV(items)
		return data, name, "text/csv", err
	default:
		return nil, "", "", apperror.BadRequest(fmt.Sprintf("unsupported export format: %s", format))
	}
}

func fieldValue(s domain.Submission, col string) interface{} {
	switch col {
	case "created_at":
		return s.CreatedAt.Format(time.RFC3339)
	case "name":
		return s.Name
	case "email":
		return s.Email
	case "company":
		return s.Company
	case "phone":
		return s.Phone
	case "subject":
		return s.Subject
	case "department":
		return s.Department
	case "urgency":
		return s.Urgency
	case "preferred_contact":
		return s.PreferredContact
	case "attachment_count":
		return s.AttachmentCount
	case "message":
		return s.Message
	}
	return ""
}

// exportExcel generates an Excel file from the submission archive
func exportExcel(items []domain.Submission) ([]byte, string, error) {
	f := excelize.NewFile()
	sheetName := "Submissions"
	f.SetSheetName("Sheet1", sheetName)

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, exportHeaders[col])
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, item := range items {
		for colIdx, col := range exportColumns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, fieldValue(item, col))
		}
	}

	for i := range exportColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	filename := fmt.Sprintf("contact_submissions_%s.xlsx", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

// exportCSV generates a CSV file from the submission archive
func exportCSV(items []domain.Submission) ([]byte, string, error) {
	var buf bytes.Buffer

	buf.WriteString(strings.Join(exportColumns, ",") + "\n")

	for _, item := range items {
		var values []string
		for _, col := range exportColumns {
			valueStr := fmt.Sprintf("%v", fieldValue(item, col))
			if strings.Contains(valueStr, ",") || strings.Contains(valueStr, "\"") || strings.Contains(valueStr, "\n") {
				valueStr = "\"" + strings.ReplaceAll(valueStr, "\"", "\"\"") + "\""
			}
			values = append(values, valueStr)
		}
		buf.WriteString(strings.Join(values, ",") + "\n")
	}

	filename := fmt.Sprintf("contact_submissions_%s.csv", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}
