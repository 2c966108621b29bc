package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placacenter/pos-api/internal/application/report"
	"github.com/placacenter/pos-api/internal/domain"
)

func TestPeriodKey(t *testing.T) {
	// Miércoles 2025-03-19.
	ts := time.Date(2025, 3, 19, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		granularity string
		want        string
	}{
		{report.GranularityDay, "2025-03-19"},
		{report.GranularityWeek, "2025-03-17"}, // lunes de esa semana
		{report.GranularityISOWeek, "2025-W12"},
		{report.GranularityMonth, "2025-03"},
		{report.GranularityYear, "2025"},
	}
	for _, tc := range cases {
		t.Run(tc.granularity, func(t *testing.T) {
			got, err := report.PeriodKey(tc.granularity, ts)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPeriodKey_DomingoPerteneceASuSemana(t *testing.T) {
	// Domingo 2025-03-23 cierra la semana que empezó el lunes 17.
	sunday := time.Date(2025, 3, 23, 23, 59, 0, 0, time.UTC)
	got, err := report.PeriodKey(report.GranularityWeek, sunday)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-17", got)
}

func TestPeriodKey_SemanaISOCruzaAno(t *testing.T) {
	// 2024-12-30 (lunes) pertenece a la semana 1 de 2025 según ISO-8601.
	ts := time.Date(2024, 12, 30, 10, 0, 0, 0, time.UTC)
	got, err := report.PeriodKey(report.GranularityISOWeek, ts)
	require.NoError(t, err)
	assert.Equal(t, "2025-W01", got)
}

func TestPeriodKey_GranularidadDesconocida(t *testing.T) {
	_, err := report.PeriodKey("quarter", time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidGranularity(t *testing.T) {
	assert.True(t, report.ValidGranularity(report.GranularityDay))
	assert.True(t, report.ValidGranularity(report.GranularityISOWeek))
	assert.False(t, report.ValidGranularity(""))
	assert.False(t, report.ValidGranularity("quarter"))
}
