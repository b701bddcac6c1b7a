package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportService_RequiresSubmittedSession(t *testing.T) {
	f := newSessionServiceFixture(t)
	svc := NewExportService(f.service, discardLogger())
	id := f.createAndStart(t)

	_, err := svc.ExportSessionResults(context.Background(), id)
	assert.ErrorIs(t, err, ErrSessionNotSubmitted)

	_, err = svc.ExportSessionResults(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExportService_WritesWorkbook(t *testing.T) {
	f := newSessionServiceFixture(t)
	ctx := context.Background()
	f.results.On("Create", mock.Anything, mock.Anything).Return(nil)
	svc := NewExportService(f.service, discardLogger())
	id := f.createAndStart(t)

	require.NoError(t, f.service.SubmitAnswer(ctx, id, &SubmitAnswerRequest{QuestionID: "q1", Value: "B"}))
	_, err := f.service.Submit(ctx, id)
	require.NoError(t, err)

	data, err := svc.ExportSessionResults(ctx, id)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer workbook.Close()

	examCell, err := workbook.GetCellValue("Results", "B1")
	require.NoError(t, err)
	assert.Equal(t, "exam-1", examCell)

	correct, err := workbook.GetCellValue("Results", "B3")
	require.NoError(t, err)
	assert.Equal(t, "1 / 3", correct)

	// Header row sits two rows under the summary block.
	header, err := workbook.GetCellValue("Results", "A9")
	require.NoError(t, err)
	assert.Equal(t, "Section", header)
}
