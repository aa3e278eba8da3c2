package handler_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/sirius-edu-api/internal/dto"
	"github.com/noah-isme/sirius-edu-api/internal/handler"
	"github.com/noah-isme/sirius-edu-api/internal/models"
	"github.com/noah-isme/sirius-edu-api/internal/service"
)

func TestGradebookRoutes(t *testing.T) {
	stack := newTestStack(t, nil)
	token := stack.login(t, "Marta", "TEACHER")
	class := createClass(t, stack, token)
	base := "/api/v1/classes/" + class.ID

	var ana, bruno models.Student
	stack.call(t, http.MethodPost, base+"/students", token, dto.StudentCreateRequest{Name: "Ana"}, fiber.StatusCreated, &ana)
	stack.call(t, http.MethodPost, base+"/students", token, dto.StudentCreateRequest{Name: "Bruno"}, fiber.StatusCreated, &bruno)

	var score dto.ScoreUpdateResponse
	stack.call(t, http.MethodPut, base+"/gradebook/"+ana.ID+"/bi", token, dto.ScoreUpdateRequest{Value: "9,5"}, fiber.StatusOK, &score)
	require.True(t, score.Applied)
	require.Equal(t, "9.5", score.Value)

	result := stack.call(t, http.MethodPut, base+"/gradebook/"+ana.ID+"/bi", token, dto.ScoreUpdateRequest{Value: "12"}, fiber.StatusOK, &score)
	require.Equal(t, "score ignored", result.Message)
	require.False(t, score.Applied)
	require.Equal(t, "9.5", score.Value)

	stack.call(t, http.MethodPut, base+"/gradebook/"+ana.ID+"/final", token, dto.ScoreUpdateRequest{Value: "5"}, fiber.StatusNotFound, nil)
	stack.call(t, http.MethodPut, base+"/gradebook/ghost/m1", token, dto.ScoreUpdateRequest{Value: "5"}, fiber.StatusNotFound, nil)

	var bulk dto.BulkFillResponse
	stack.call(t, http.MethodPost, base+"/gradebook/bi/bulk-fill", token, dto.BulkFillRequest{Value: "6", Mode: dto.BulkFillEmpty}, fiber.StatusOK, &bulk)
	require.Equal(t, 1, bulk.Updated)

	stack.call(t, http.MethodPost, base+"/gradebook/bi/bulk-fill", token, dto.BulkFillRequest{Value: "abc", Mode: dto.BulkFillOverwrite}, fiber.StatusBadRequest, nil)
	stack.call(t, http.MethodPost, base+"/gradebook/bi/bulk-fill", token, dto.BulkFillRequest{Value: "6", Mode: "all"}, fiber.StatusBadRequest, nil)

	var report dto.GradebookResponse
	stack.call(t, http.MethodGet, base+"/gradebook", token, nil, fiber.StatusOK, &report)
	require.Len(t, report.Rows, 2)
	require.Equal(t, "9.5", report.Rows[0].Scores["bi"])
	require.Equal(t, "4,8", report.Rows[0].Average)
	require.Equal(t, "6", report.Rows[1].Scores["bi"])
	require.Equal(t, "3,0", report.Rows[1].Average)
	require.True(t, report.Rows[1].BelowPassing)
}

func TestGradebookExport(t *testing.T) {
	stack := newTestStack(t, nil)
	coordinator := stack.login(t, "Carlos", "COORDINATOR")
	teacher := stack.login(t, "Marta", "TEACHER")
	class := createClass(t, stack, teacher)
	stack.call(t, http.MethodPost, "/api/v1/classes/"+class.ID+"/students", teacher, dto.StudentCreateRequest{Name: "Ana"}, fiber.StatusCreated, nil)

	resp := stack.do(t, http.MethodGet, "/api/v1/classes/"+class.ID+"/gradebook/export", coordinator, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, handler.MIMESpreadsheet, resp.Header.Get(fiber.HeaderContentType))
	require.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), ".xlsx")

	f, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue(service.GradebookSheet, "B2")
	require.NoError(t, err)
	require.Equal(t, "Ana", name)

	missing := stack.do(t, http.MethodGet, "/api/v1/classes/ghost/gradebook/export", teacher, nil)
	require.Equal(t, fiber.StatusNotFound, missing.StatusCode)
}
