package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticFieldExtractor_IgnoresInput(t *testing.T) {
	cfg := ExtractorConfig{
		VehicleModel:    "Sonata",
		SoftwareVersion: "v2.1.3",
		ControlBoard:    "ECU-2024",
		ManagerName:     "Kim",
		DistributorName: "Park",
		TestResult:      "All Pass",
	}
	extractor := NewStaticFieldExtractor(cfg)

	want := ExtractedFields{
		VehicleModel:    "Sonata",
		SoftwareVersion: "v2.1.3",
		ControlBoard:    "ECU-2024",
		ManagerName:     "Kim",
		DistributorName: "Park",
		TestResult:      "All Pass",
	}

	for _, input := range []string{
		"Sonata, v2.1.3, ECU-2024",
		"a completely different vehicle event",
		"",
	} {
		got, err := extractor.Extract(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
