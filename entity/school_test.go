package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSchoolCode(t *testing.T) {
	assert.Equal(t, "ABC", NormalizeSchoolCode("abc"))
	assert.Equal(t, "ABC", NormalizeSchoolCode("  Abc "))
	assert.Equal(t, "", NormalizeSchoolCode("   "))
}

func TestNewSchool(t *testing.T) {
	s := NewSchool("dps", "Delhi Public School")

	assert.Equal(t, "DPS", s.Code)
	assert.True(t, s.IsActive())
	assert.False(t, s.CreatedAt.IsZero())
}
