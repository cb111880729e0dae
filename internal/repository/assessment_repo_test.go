package repository

import (
	"context"
	"testing"
	"time"

	"github.com/epeers/riskprofile/internal/models"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessmentRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	completed := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)
	a := &models.Assessment{
		ID:              "asm-1",
		InvestorID:      "inv-1",
		Responses:       []models.AssessmentResponse{{QuestionID: "Q1", OptionID: "B"}},
		RawScore:        50,
		PercentileScore: 62.5,
		CompletedAt:     completed,
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO assessment").
		WithArgs("asm-1", "inv-1", []byte(`[{"question_id":"Q1","option_id":"B"}]`), 50, 62.5, completed).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	ctx := context.Background()
	tx, err := mock.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, NewAssessmentRepository(mock).Create(ctx, tx, a))
	require.NoError(t, tx.Commit(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}
