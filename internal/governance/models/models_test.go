package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "verity/pkg/domain-errors"
)

func TestEnforcementTypeForScore(t *testing.T) {
	tests := []struct {
		score  int
		want   ActionType
		wantOK bool
	}{
		{100, "", false},
		{80, "", false},
		{79, ActionWarning, true},
		{60, ActionWarning, true},
		{59, ActionRateLimit, true},
		{40, ActionRateLimit, true},
		{39, ActionReviewRequired, true},
		{20, ActionReviewRequired, true},
		{19, ActionTempRestriction, true},
		{0, ActionTempRestriction, true},
	}
	for _, tt := range tests {
		got, ok := EnforcementTypeForScore(tt.score)
		assert.Equal(t, tt.wantOK, ok, "score %d", tt.score)
		assert.Equal(t, tt.want, got, "score %d", tt.score)
	}
}

func TestRiskLevelForScore(t *testing.T) {
	tests := map[int]RiskLevel{
		100: RiskLow,
		80:  RiskLow,
		79:  RiskMedium,
		60:  RiskMedium,
		59:  RiskHigh,
		40:  RiskHigh,
		39:  RiskCritical,
		0:   RiskCritical,
	}
	for score, want := range tests {
		assert.Equal(t, want, RiskLevelForScore(score), "score %d", score)
	}
}

func TestBandForComposite(t *testing.T) {
	assert.Equal(t, BandHigh, BandForComposite(70))
	assert.Equal(t, BandMedium, BandForComposite(69.99))
	assert.Equal(t, BandMedium, BandForComposite(40))
	assert.Equal(t, BandLow, BandForComposite(39.99))
	assert.Equal(t, BandLow, BandForComposite(30))
}

func TestClampTrust(t *testing.T) {
	assert.Equal(t, 0, ClampTrust(-40))
	assert.Equal(t, 100, ClampTrust(140))
	assert.Equal(t, 55, ClampTrust(55))
}

func TestParseEnums(t *testing.T) {
	t.Run("entity type is case insensitive", func(t *testing.T) {
		got, err := ParseEntityType("brand")
		require.NoError(t, err)
		assert.Equal(t, EntityBrand, got)
	})

	t.Run("unknown entity type is invalid input", func(t *testing.T) {
		_, err := ParseEntityType("tenant")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("escalation status", func(t *testing.T) {
		got, err := ParseEscalationStatus("referred")
		require.NoError(t, err)
		assert.Equal(t, StatusReferred, got)

		_, err = ParseEscalationStatus("closed")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("escalated by", func(t *testing.T) {
		got, err := ParseEscalatedBy("Admin")
		require.NoError(t, err)
		assert.Equal(t, EscalatedByAdmin, got)

		_, err = ParseEscalatedBy("robot")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func TestEntityRef(t *testing.T) {
	ref := EntityRef{Type: EntityBrand, ID: "acme"}
	assert.Equal(t, "BRAND:acme", ref.Key())
	assert.NoError(t, ref.Validate())

	assert.Error(t, EntityRef{Type: EntityBrand, ID: "  "}.Validate())
	assert.Error(t, EntityRef{Type: "TEAM", ID: "x"}.Validate())
}

func TestTrustScoreNewerThan(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	older := &TrustScore{EvaluatedAt: at, Seq: 1}
	sameTimeLater := &TrustScore{EvaluatedAt: at, Seq: 2}
	later := &TrustScore{EvaluatedAt: at.Add(time.Second), Seq: 0}

	assert.True(t, sameTimeLater.NewerThan(older))
	assert.False(t, older.NewerThan(sameTimeLater))
	assert.True(t, later.NewerThan(sameTimeLater))
	assert.True(t, older.NewerThan(nil))
}

func TestComplaintRates(t *testing.T) {
	rate, ok := BrandComplaintStats{Total: 10, Resolved: 2}.ResolutionRate()
	assert.True(t, ok)
	assert.InDelta(t, 0.2, rate, 1e-9)

	_, ok = BrandComplaintStats{}.ResolutionRate()
	assert.False(t, ok)

	rate, ok = UserComplaintStats{Total: 10, Rejected: 5}.RejectionRate()
	assert.True(t, ok)
	assert.InDelta(t, 0.5, rate, 1e-9)
}
