package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreFor_Clean(t *testing.T) {
	assert.Equal(t, 100, ScoreFor(0, 0))
}

func TestScoreFor_ErrorsDominate(t *testing.T) {
	assert.Equal(t, 75, ScoreFor(1, 0))
	assert.Equal(t, 50, ScoreFor(2, 0))
	assert.Equal(t, 25, ScoreFor(3, 0))
	// Four or more errors floor at zero.
	assert.Equal(t, 0, ScoreFor(4, 0))
	assert.Equal(t, 0, ScoreFor(10, 0))
}

func TestScoreFor_WarningsDegradeGracefully(t *testing.T) {
	assert.Equal(t, 95, ScoreFor(0, 1))
	assert.Equal(t, 50, ScoreFor(0, 10))
	assert.Equal(t, 0, ScoreFor(0, 20))
	assert.Equal(t, 0, ScoreFor(0, 25))
}

func TestScoreFor_Mixed(t *testing.T) {
	assert.Equal(t, 100-25-5*3, ScoreFor(1, 3))
}

func TestRecorder_Empty(t *testing.T) {
	rec := NewRecorder()
	assert.True(t, rec.IsValid())
	assert.Equal(t, 100, rec.Score())

	result := rec.Result()
	assert.True(t, result.Valid)
	assert.Equal(t, 100, result.Score)
	assert.Empty(t, result.Errors)
}

func TestRecorder_WarningsNeverAffectValidity(t *testing.T) {
	rec := NewRecorder()
	for i := 0; i < 30; i++ {
		rec.AddWarning("X_W001", "w", nil)
	}
	assert.True(t, rec.IsValid())
	assert.Equal(t, 0, rec.Score())
}

func TestRecorder_ErrorInvalidates(t *testing.T) {
	rec := NewRecorder()
	rec.AddError("X_E001", "boom", map[string]any{"field": "name"})

	result := rec.Result()
	assert.False(t, result.Valid)
	assert.Equal(t, 75, result.Score)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, "X_E001", result.Errors[0].Code)
	assert.Equal(t, SeverityError, result.Errors[0].Level)
	assert.Equal(t, "name", result.Errors[0].Metadata["field"])
	assert.False(t, result.Errors[0].Timestamp.IsZero())
}

func TestRecorder_AddFindingRoutesBySeverity(t *testing.T) {
	rec := NewRecorder()
	rec.AddFinding(SeverityError, "X_E001", "e", nil)
	rec.AddFinding(SeverityWarning, "X_W001", "w", nil)
	rec.AddFinding(SeverityInfo, "X_I001", "i", nil)

	result := rec.Result()
	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, 1, result.WarningCount)
	assert.Len(t, result.Info, 1)
}

func TestRecorder_ResultCopiesFindings(t *testing.T) {
	rec := NewRecorder()
	rec.AddError("X_E001", "e", nil)
	first := rec.Result()

	rec.AddError("X_E002", "e2", nil)
	assert.Len(t, first.Errors, 1)
}
