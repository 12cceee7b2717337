// file: internal/models/cascade.go
package models

// ReviewCascade holds the write-review form's dependent selection
// state. Each level's selection invalidates everything below it:
// university clears department, research group and lab; department
// clears research group and lab; research group clears only the lab
// and re-scopes the lab search. Option lists are replaced by the
// caller after the matching load completes.
type ReviewCascade struct {
	Universities   []University    `json:"universities"`
	Departments    []Department    `json:"departments"`
	ResearchGroups []ResearchGroup `json:"researchGroups"`
	Labs           []Lab           `json:"labs"`

	UniversityID    string `json:"universityId"`
	DepartmentID    string `json:"departmentId"`
	ResearchGroupID string `json:"researchGroupId"`
	LabID           string `json:"labId"`
}

// SelectUniversity records a university choice and drops every
// downstream selection and option list.
func (c *ReviewCascade) SelectUniversity(id string) {
	c.UniversityID = id
	c.DepartmentID = ""
	c.ResearchGroupID = ""
	c.LabID = ""
	c.Departments = nil
	c.ResearchGroups = nil
	c.Labs = nil
}

// SelectDepartment records a department choice and drops the research
// group and lab selections and their option lists.
func (c *ReviewCascade) SelectDepartment(id string) {
	c.DepartmentID = id
	c.ResearchGroupID = ""
	c.LabID = ""
	c.ResearchGroups = nil
	c.Labs = nil
}

// SelectResearchGroup records a research group choice and drops only
// the lab selection. The next lab search is scoped to the group.
func (c *ReviewCascade) SelectResearchGroup(id string) {
	c.ResearchGroupID = id
	c.LabID = ""
	c.Labs = nil
}

// SelectLab records the final lab choice.
func (c *ReviewCascade) SelectLab(id string) {
	c.LabID = id
}

// AddUniversity appends a just-created university to the options and
// selects it, without refetching the list.
func (c *ReviewCascade) AddUniversity(u University) {
	c.Universities = append(c.Universities, u)
	c.SelectUniversity(u.ID)
}

// AddDepartment appends a just-created department and selects it.
func (c *ReviewCascade) AddDepartment(d Department) {
	c.Departments = append(c.Departments, d)
	c.SelectDepartment(d.ID)
}

// AddResearchGroup appends a just-created research group and selects it.
func (c *ReviewCascade) AddResearchGroup(g ResearchGroup) {
	c.ResearchGroups = append(c.ResearchGroups, g)
	c.SelectResearchGroup(g.ID)
}

// AddLab appends a just-created lab and selects it.
func (c *ReviewCascade) AddLab(l Lab) {
	c.Labs = append(c.Labs, l)
	c.SelectLab(l.ID)
}

// CanPickDepartment reports whether the department picker is enabled.
func (c *ReviewCascade) CanPickDepartment() bool { return c.UniversityID != "" }

// CanPickLab reports whether the lab search is enabled. A research
// group is optional; a department is enough.
func (c *ReviewCascade) CanPickLab() bool { return c.DepartmentID != "" }

// Complete reports whether every required level has a selection.
func (c *ReviewCascade) Complete() bool {
	return c.UniversityID != "" && c.LabID != ""
}
