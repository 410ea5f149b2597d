package service

import (
	"testing"
	"time"

	"citizen_registry/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRow_SnakeCaseHeader(t *testing.T) {
	row := NewRow(
		[]string{"nin", "first_name", "last_name", "has_pvc"},
		[]string{"12345678901", "Amaka", "Bello", "yes"},
	)

	rec, ok := NormalizeRow(row)
	require.True(t, ok)

	assert.Equal(t, utils.HashNIN("12345678901"), rec.NINHash)
	assert.Equal(t, "1234****8901", rec.NINMasked)
	assert.Equal(t, "Amaka", *rec.FirstName)
	assert.Equal(t, "Bello", *rec.LastName)
	assert.Equal(t, "YES", rec.PVCStatus)
}

func TestNormalizeRow_MixedCaseAliases(t *testing.T) {
	row := NewRow(
		[]string{"NIN", "FirstName", "Surname", "PVCStatus", "State"},
		[]string{"98765432109", "Chidi", "Okafor", "no", "Anambra"},
	)

	rec, ok := NormalizeRow(row)
	require.True(t, ok)

	assert.Equal(t, "Chidi", *rec.FirstName)
	assert.Equal(t, "Okafor", *rec.LastName) // surname is a last_name alias
	assert.Equal(t, "NO", rec.PVCStatus)
	assert.Equal(t, "Anambra", *rec.State)
}

func TestNormalizeRow_SkipsMissingNIN(t *testing.T) {
	row := NewRow([]string{"first_name"}, []string{"Amaka"})

	_, ok := NormalizeRow(row)
	assert.False(t, ok)
}

func TestNormalizeRow_SkipsShortNIN(t *testing.T) {
	row := NewRow([]string{"nin"}, []string{"12345"})

	_, ok := NormalizeRow(row)
	assert.False(t, ok)
}

func TestNormalizeRow_TrimsNINBeforeLengthCheck(t *testing.T) {
	row := NewRow([]string{"nin"}, []string{"  1234567  "})

	_, ok := NormalizeRow(row)
	assert.False(t, ok)
}

func TestNormalizeRow_DateOfBirth(t *testing.T) {
	row := NewRow(
		[]string{"nin", "date_of_birth"},
		[]string{"12345678901", "2001-05-28"},
	)

	rec, ok := NormalizeRow(row)
	require.True(t, ok)
	require.NotNil(t, rec.DateOfBirth)
	assert.Equal(t, 2001, rec.DateOfBirth.Year())
	assert.Equal(t, time.May, rec.DateOfBirth.Month())
}

func TestNormalizeRow_InvalidDateIsNull(t *testing.T) {
	row := NewRow(
		[]string{"nin", "date_of_birth"},
		[]string{"12345678901", "not a date"},
	)

	rec, ok := NormalizeRow(row)
	require.True(t, ok)
	assert.Nil(t, rec.DateOfBirth)
}

func TestNormalizeRow_PVCDefaultsToNo(t *testing.T) {
	row := NewRow([]string{"nin"}, []string{"12345678901"})

	rec, ok := NormalizeRow(row)
	require.True(t, ok)
	assert.Equal(t, "NO", rec.PVCStatus)
}

func TestNormalizeRow_PVCOutsideEnumStoredAsIs(t *testing.T) {
	row := NewRow([]string{"nin", "has_pvc"}, []string{"12345678901", "maybe"})

	rec, ok := NormalizeRow(row)
	require.True(t, ok)
	assert.Equal(t, "MAYBE", rec.PVCStatus)
}

func TestNormalizeRow_FirstAliasWins(t *testing.T) {
	row := NewRow(
		[]string{"nin", "last_name", "surname"},
		[]string{"12345678901", "FromLastName", "FromSurname"},
	)

	rec, ok := NormalizeRow(row)
	require.True(t, ok)
	assert.Equal(t, "FromLastName", *rec.LastName)
}

func TestNormalizeRow_EmptyCellFallsToNextAlias(t *testing.T) {
	row := NewRow(
		[]string{"nin", "last_name", "surname"},
		[]string{"12345678901", "   ", "FromSurname"},
	)

	rec, ok := NormalizeRow(row)
	require.True(t, ok)
	assert.Equal(t, "FromSurname", *rec.LastName)
}

func TestNewRow_RaggedCells(t *testing.T) {
	row := NewRow(
		[]string{"nin", "first_name", "email"},
		[]string{"12345678901", "Amaka"},
	)

	rec, ok := NormalizeRow(row)
	require.True(t, ok)
	assert.Equal(t, "Amaka", *rec.FirstName)
	assert.Nil(t, rec.Email)
}
