package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

// ExportService renders a submitted session's detailed review as an xlsx
// workbook for offline record keeping.
type ExportService interface {
	ExportSessionResults(ctx context.Context, sessionID string) ([]byte, error)
}

type exportService struct {
	sessions SessionService
	logger   *slog.Logger
}

func NewExportService(sessions SessionService, logger *slog.Logger) ExportService {
	return &exportService{
		sessions: sessions,
		logger:   logger,
	}
}

func (s *exportService) ExportSessionResults(ctx context.Context, sessionID string) ([]byte, error) {
	s.logger.Info("Exporting session results", "session_id", sessionID)

	review, err := s.sessions.Review(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	result, err := s.sessions.Result(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Results"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	// Summary block
	summary := [][]any{
		{"Exam", review.ExamID},
		{"Session", review.SessionID},
		{"Correct", fmt.Sprintf("%d / %d", result.Score.CorrectAnswers, result.Score.TotalQuestions)},
		{"Percentage", result.Score.Percentage},
		{"Band Score", result.Score.BandScore},
		{"Description", result.Score.Description},
		{"Time Spent (s)", result.TimeSpentSeconds},
	}
	for i, row := range summary {
		for j, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+j, i+1)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	// Detailed rows
	headers := []string{"Section", "Question", "Type", "Your Answer", "Correct Answer", "Correct"}
	headerRow := len(summary) + 2
	for i, header := range headers {
		cell := fmt.Sprintf("%c%d", 'A'+i, headerRow)
		f.SetCellValue(sheetName, cell, header)
	}

	rowIndex := headerRow + 1
	for _, section := range review.Sections {
		for _, outcome := range section.Outcomes {
			row := []any{
				section.Title,
				outcome.Question.Prompt,
				string(outcome.Question.Type),
				formatAnswer(outcome.UserAnswer),
				formatAnswer(outcome.Question.CorrectAnswer),
				outcome.IsCorrect,
			}
			for j, value := range row {
				cell := fmt.Sprintf("%c%d", 'A'+j, rowIndex)
				f.SetCellValue(sheetName, cell, value)
			}
			rowIndex++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func formatAnswer(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
