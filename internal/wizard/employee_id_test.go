package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateEmployeeID(t *testing.T) {
	assert.Equal(t, "ENG-001", GenerateEmployeeID("Engineering", 0))
	assert.Equal(t, "ENG-003", GenerateEmployeeID("Engineering", 2))
	assert.Equal(t, "LEN-001", GenerateEmployeeID("Lending", 0))
}

func TestGenerateEmployeeIDPadsShortNames(t *testing.T) {
	assert.Equal(t, "ITX-001", GenerateEmployeeID("IT", 0))
	assert.Equal(t, "QXX-001", GenerateEmployeeID("Q", 0))
}

func TestGenerateEmployeeIDDeterministic(t *testing.T) {
	first := GenerateEmployeeID("Operations", 0)
	second := GenerateEmployeeID("Operations", 0)
	assert.Equal(t, first, second)
}

func TestIsValidEmployeeID(t *testing.T) {
	assert.True(t, IsValidEmployeeID("ENG-001"))
	assert.True(t, IsValidEmployeeID("ITX-042"))
	assert.False(t, IsValidEmployeeID("eng-001"))
	assert.False(t, IsValidEmployeeID("ENGG-001"))
	assert.False(t, IsValidEmployeeID("ENG-1"))
	assert.False(t, IsValidEmployeeID(""))
}
