// file: internal/models/cascade_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func populatedCascade() ReviewCascade {
	return ReviewCascade{
		Universities:    []University{{ID: "1", Name: "Stanford University"}},
		Departments:     []Department{{ID: "10", Name: "Computer Science", UniversityID: "1"}},
		ResearchGroups:  []ResearchGroup{{ID: "20", Name: "AI Research Group", DepartmentID: "10"}},
		Labs:            []Lab{{ID: "42", LabName: "Computer Vision Lab"}},
		UniversityID:    "1",
		DepartmentID:    "10",
		ResearchGroupID: "20",
		LabID:           "42",
	}
}

func TestCascadeSelectUniversityClearsDownstream(t *testing.T) {
	c := populatedCascade()
	c.SelectUniversity("2")

	assert.Equal(t, "2", c.UniversityID)
	assert.Empty(t, c.DepartmentID)
	assert.Empty(t, c.ResearchGroupID)
	assert.Empty(t, c.LabID)
	assert.Nil(t, c.Departments)
	assert.Nil(t, c.ResearchGroups)
	assert.Nil(t, c.Labs)
	assert.NotEmpty(t, c.Universities)
}

func TestCascadeSelectDepartmentKeepsUniversity(t *testing.T) {
	c := populatedCascade()
	c.SelectDepartment("11")

	assert.Equal(t, "1", c.UniversityID)
	assert.Equal(t, "11", c.DepartmentID)
	assert.Empty(t, c.ResearchGroupID)
	assert.Empty(t, c.LabID)
	assert.Nil(t, c.ResearchGroups)
	assert.Nil(t, c.Labs)
	assert.NotEmpty(t, c.Departments)
}

func TestCascadeSelectResearchGroupClearsOnlyLab(t *testing.T) {
	c := populatedCascade()
	c.SelectResearchGroup("21")

	assert.Equal(t, "1", c.UniversityID)
	assert.Equal(t, "10", c.DepartmentID)
	assert.Equal(t, "21", c.ResearchGroupID)
	assert.Empty(t, c.LabID)
	assert.Nil(t, c.Labs)
}

func TestCascadeAddAndSelect(t *testing.T) {
	var c ReviewCascade

	c.AddUniversity(University{ID: "5", Name: "New University"})
	assert.Equal(t, "5", c.UniversityID)
	assert.Len(t, c.Universities, 1)
	assert.True(t, c.CanPickDepartment())
	assert.False(t, c.CanPickLab())

	c.AddDepartment(Department{ID: "50", Name: "Physics", UniversityID: "5"})
	assert.Equal(t, "50", c.DepartmentID)
	assert.Len(t, c.Departments, 1)
	assert.True(t, c.CanPickLab())

	c.AddResearchGroup(ResearchGroup{ID: "51", Name: "Optics", DepartmentID: "50"})
	assert.Equal(t, "51", c.ResearchGroupID)

	assert.False(t, c.Complete())
	c.AddLab(Lab{ID: "52", LabName: "Optics Lab"})
	assert.Equal(t, "52", c.LabID)
	assert.True(t, c.Complete())
}

func TestCascadeResearchGroupOptional(t *testing.T) {
	var c ReviewCascade
	c.SelectUniversity("1")
	c.SelectDepartment("10")
	c.SelectLab("42")

	assert.Empty(t, c.ResearchGroupID)
	assert.True(t, c.Complete())
}
