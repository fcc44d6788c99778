package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultIndexSpec(t *testing.T) {
	spec := DefaultIndexSpec("it-support")

	assert.Equal(t, "it-support", spec.Name)
	assert.Equal(t, 1536, spec.Dimension)
	assert.Equal(t, "cosine", spec.Metric)
	assert.Equal(t, "aws", spec.Cloud)
	assert.Equal(t, "us-east-1", spec.Region)
}

func TestRequestEnumsIncludeDefaults(t *testing.T) {
	assert.Contains(t, ValidImpactNames, DefaultImpactName)
	assert.Contains(t, ValidPriorityNames, DefaultPriorityName)
	assert.Contains(t, ValidUrgencyNames, DefaultUrgencyName)
	assert.Contains(t, ValidStatusNames, DefaultStatusName)
	assert.Contains(t, ValidSupportLevels, "tier1")
}
