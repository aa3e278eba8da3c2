package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/sirius-edu-api/internal/dto"
)

func TestWriteGradebookXLSX(t *testing.T) {
	fx := newServiceFixture(t)
	class := fx.createClass(t)
	ana := fx.addStudent(t, class.ID, "Ana")
	fx.addStudent(t, class.ID, "Bruno")

	_, err := fx.gradebook.SetScore(context.Background(), class.ID, ana.ID, "bi", dto.ScoreUpdateRequest{Value: "9,5"})
	require.NoError(t, err)

	report, err := fx.gradebook.Report(context.Background(), class.ID)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteGradebookXLSX(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(GradebookSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"Nº", "Aluno", "Matrícula", "M1", "M2", "M3", "Pesq", "Bim", "Leit", "Média"}, rows[0])

	name, err := f.GetCellValue(GradebookSheet, "B2")
	require.NoError(t, err)
	require.Equal(t, "Ana", name)

	bimonthly, err := f.GetCellValue(GradebookSheet, "H2")
	require.NoError(t, err)
	require.Equal(t, "9.5", bimonthly)

	average, err := f.GetCellValue(GradebookSheet, "J2")
	require.NoError(t, err)
	require.Equal(t, "4,8", average)

	average, err = f.GetCellValue(GradebookSheet, "J3")
	require.NoError(t, err)
	require.Equal(t, "0,0", average)
}

func TestGradebookFileName(t *testing.T) {
	name := GradebookFileName(dto.GradebookResponse{ClassName: "6º Ano - Fundamental II - Turma A"})
	require.Equal(t, "notas_6º_Ano___Fundamental_II___Turma_A.xlsx", name)
}
