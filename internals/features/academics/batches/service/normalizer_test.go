package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBatchName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already canonical", "Batch-7", "Batch-7"},
		{"spaces around dash collapse", "Batch - 7", "Batch-7"},
		{"uneven spacing around dash", "Batch   -7", "Batch-7"},
		{"leading and trailing space", "  Batch-7  ", "Batch-7"},
		{"percent encoded", "Batch%20-%207", "Batch-7"},
		{"plus encoded spaces", "Batch+-+7", "Batch-7"},
		{"no dash passes through trimmed", "  Morning Batch ", "Morning Batch"},
		{"multiple dashes", "A - B - C", "A-B-C"},
		{"empty", "", ""},
		{"only spaces", "   ", ""},
		{"invalid percent escape falls back to raw", "Batch %zz- 7", "Batch %zz-7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeBatchName(tt.in))
		})
	}
}

func TestNormalizeBatchNameIsIdempotent(t *testing.T) {
	inputs := []string{"Batch - 7", "Batch%20-%207", "  A - B ", "Morning Batch"}
	for _, in := range inputs {
		once := NormalizeBatchName(in)
		assert.Equal(t, once, NormalizeBatchName(once), "normalizing %q twice must be stable", in)
	}
}

func TestNormalizeBatchNameEncodedPlus(t *testing.T) {
	// "+" decodes to a space, so a literal plus must arrive percent-encoded.
	// The decoded value contains a raw "+" that a second decode would eat:
	// normalization runs exactly once per input, never on its own output.
	assert.Equal(t, "A+", NormalizeBatchName("A%2B"))
	assert.Equal(t, "A", NormalizeBatchName(NormalizeBatchName("A%2B")))
}

func TestNormalizeBatchNameIsCasePreserving(t *testing.T) {
	// Matching is exact and case-sensitive; normalization never folds case.
	assert.Equal(t, "batch-7", NormalizeBatchName("batch - 7"))
	assert.NotEqual(t, NormalizeBatchName("Batch-7"), NormalizeBatchName("batch-7"))
}
