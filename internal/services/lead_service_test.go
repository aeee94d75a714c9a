package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sunstate-labs/agentcrm/internal/models"
)

func TestEstimatedConversionRate(t *testing.T) {
	require.Equal(t, 0.05, EstimatedConversionRate(models.TierBronze))
	require.Equal(t, 0.10, EstimatedConversionRate(models.TierSilver))
	require.Equal(t, 0.20, EstimatedConversionRate(models.TierGold))
	require.Equal(t, 0.35, EstimatedConversionRate(models.TierPlatinum))

	// Unknown tiers fall back to the bronze rate
	require.Equal(t, 0.05, EstimatedConversionRate("DIAMOND"))
	require.Equal(t, 0.05, EstimatedConversionRate(""))
}
