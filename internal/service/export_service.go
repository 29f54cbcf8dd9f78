package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"refcheck_backend/internal/repository"
	"refcheck_backend/internal/util"
	"refcheck_backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ExportService struct {
	ResponseSvc  *ResponseService
	ResponseRepo *repository.ResponseRepository
	TemplateRepo *repository.TemplateRepository
	Storage      *StorageService
}

func NewExportService(responseSvc *ResponseService, responseRepo *repository.ResponseRepository, templateRepo *repository.TemplateRepository, storage *StorageService) *ExportService {
	return &ExportService{
		ResponseSvc:  responseSvc,
		ResponseRepo: responseRepo,
		TemplateRepo: templateRepo,
		Storage:      storage,
	}
}

// ResponsePDF renders a single response as a PDF document and archives a
// copy through the storage provider.
func (s *ExportService) ResponsePDF(ctx context.Context, responseID uint) ([]byte, string, error) {
	detail, err := s.ResponseSvc.Get(responseID)
	if err != nil {
		return nil, "", err
	}

	data, err := BuildResponsePDF(detail)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("response_%d_%s.pdf", detail.ID, detail.SubmittedAt.Format("20060102"))
	s.archive(ctx, "pdf/"+uuid.New().String()+".pdf", data, "application/pdf")
	return data, filename, nil
}

// BuildResponsePDF lays out the reference-check document: title block,
// referee and applicant details, then the question/answer list.
func BuildResponsePDF(detail *ResponseDetail) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, "Reference Check: "+detail.TemplateTitle, "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 6, "Referee: "+detail.RefereeName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Email: "+detail.RefereeEmail, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Applicant: "+detail.ApplicantName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Submitted: "+detail.SubmittedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Responses:", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	for _, answer := range detail.Answers {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.MultiCell(0, 5, "Q: "+answer.QuestionText, "", "L", false)

		value := answer.AnswerValue
		if value == "" {
			value = "-"
		}
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, "A: "+value, "", "L", false)
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TemplateResponsesXLSX exports every response for a template as a
// spreadsheet, one row per response, one column per question.
func (s *ExportService) TemplateResponsesXLSX(ctx context.Context, templateID uint) ([]byte, string, error) {
	template, err := s.TemplateRepo.FindByID(templateID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", util.ErrTemplateNotFound
	} else if err != nil {
		return nil, "", err
	}

	questions, err := s.TemplateRepo.ListQuestions(templateID)
	if err != nil {
		return nil, "", err
	}

	responses, err := s.ResponseRepo.ListByTemplate(templateID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Responses"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	headers := []string{"Referee", "Email", "Applicant", "Submitted"}
	for _, q := range questions {
		headers = append(headers, q.QuestionText)
	}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, response := range responses {
		row := rowIdx + 2
		if response.Form != nil && response.Form.Referee != nil {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), response.Form.Referee.Name)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), response.Form.Referee.Email)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), response.Form.Referee.ApplicantName)
		}
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), response.SubmittedAt.Format("2006-01-02 15:04"))

		valueByQuestion := make(map[uint]string, len(response.Answers))
		for _, a := range response.Answers {
			valueByQuestion[a.QuestionID] = a.AnswerValue
		}
		for qIdx, q := range questions {
			col, _ := excelize.ColumnNumberToName(qIdx + 5)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), valueByQuestion[q.ID])
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("template_%d_responses.xlsx", template.ID)
	s.archive(ctx, "xlsx/"+uuid.New().String()+".xlsx", buf.Bytes(),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return buf.Bytes(), filename, nil
}

// archive stores a copy of the export; failures are logged, not fatal,
// the download itself still succeeds.
func (s *ExportService) archive(ctx context.Context, name string, data []byte, contentType string) {
	if s.Storage == nil {
		return
	}
	if _, err := s.Storage.Upload(ctx, name, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		logger.Log.Error("failed to archive export", zap.String("name", name), zap.Error(err))
	}
}
