package portal

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const academicRecordHTML = `
<html><body>
<div id="student-profile">
	<span class="student-no">901014532</span>
	<span class="student-name">Lineo Mahao</span>
	<span class="student-email">lineo.mahao@example.ac.ls</span>
	<span class="student-phone">+266 5800 0000</span>
</div>
<div class="program" data-code="BSCIT" data-name="BSc in Information Technology"
     data-structure="BSCIT-2019" data-status="Active">
	<div class="semester" data-term="2023-1" data-number="1" data-status="Active">
		<table class="results">
			<tr><th>Code</th><th>Module</th><th>Credits</th><th>Marks</th><th>Grade</th><th>Status</th></tr>
			<tr><td>CS101</td><td>Programming 1</td><td>3</td><td>92</td><td>A+</td><td>Active</td></tr>
			<tr><td>MA101</td><td>Mathematics 1</td><td>4</td><td>71</td><td>B</td><td>Active</td></tr>
			<tr><td>CM101</td><td>Communication Skills</td><td>3</td><td>-</td><td>NM</td><td>Active</td></tr>
		</table>
	</div>
	<div class="semester" data-term="2023-2" data-number="2" data-status="Deferred">
		<table class="results">
			<tr><th>Code</th><th>Module</th><th>Credits</th><th>Marks</th><th>Grade</th><th>Status</th></tr>
			<tr><td>CS102</td><td>Programming 2</td><td>3</td><td></td><td></td><td>Drop</td></tr>
		</table>
	</div>
</div>
</body></html>`

func TestParseStudentDocument(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(academicRecordHTML))
	require.NoError(t, err)

	record, err := ParseStudentDocument(doc)
	require.NoError(t, err)

	assert.Equal(t, "901014532", record.StudentNo)
	assert.Equal(t, "Lineo Mahao", record.Name)
	assert.Equal(t, "lineo.mahao@example.ac.ls", record.Email)

	require.Len(t, record.Programs, 1)
	program := record.Programs[0]
	assert.Equal(t, "BSCIT", program.ProgramCode)
	assert.Equal(t, "BSCIT-2019", program.StructureCode)
	assert.Equal(t, "Active", program.Status)

	require.Len(t, program.Semesters, 2)
	first := program.Semesters[0]
	assert.Equal(t, "2023-1", first.TermCode)
	assert.Equal(t, 1, first.SemesterNumber)
	require.Len(t, first.Attempts, 3)

	assert.Equal(t, "CS101", first.Attempts[0].ModuleCode)
	assert.Equal(t, "Programming 1", first.Attempts[0].ModuleName)
	assert.Equal(t, 3.0, first.Attempts[0].Credits)
	require.NotNil(t, first.Attempts[0].Marks)
	assert.Equal(t, 92.0, *first.Attempts[0].Marks)
	assert.Equal(t, "A+", first.Attempts[0].Grade)

	// Dashed-out marks stay nil while grading is in progress.
	assert.Nil(t, first.Attempts[2].Marks)
	assert.Equal(t, "NM", first.Attempts[2].Grade)

	second := program.Semesters[1]
	assert.Equal(t, "Deferred", second.Status)
	require.Len(t, second.Attempts, 1)
	assert.Equal(t, "Drop", second.Attempts[0].Status)
	assert.Empty(t, second.Attempts[0].Grade)
}

const structureHTML = `
<html><body>
<div id="structure" data-code="BSCIT-2019" data-program="BSCIT"></div>
<table class="requirements">
	<tr><th>Code</th><th>Module</th><th>Credits</th><th>Semester</th></tr>
	<tr><td>CS101</td><td>Programming 1</td><td>3</td><td>1</td></tr>
	<tr data-hidden="true"><td>RE100</td><td>Retired Elective</td><td>3</td><td>2</td></tr>
	<tr><td>MS202</td><td>Media &amp; Society II</td><td>3</td><td>3</td></tr>
</table>
</body></html>`

func TestParseStructureDocument(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(structureHTML))
	require.NoError(t, err)

	record, err := ParseStructureDocument(doc)
	require.NoError(t, err)

	assert.Equal(t, "BSCIT-2019", record.StructureCode)
	assert.Equal(t, "BSCIT", record.ProgramCode)
	require.Len(t, record.Requirements, 3)

	assert.False(t, record.Requirements[0].Hidden)
	assert.True(t, record.Requirements[1].Hidden)
	assert.Equal(t, "Media & Society II", record.Requirements[2].ModuleName)
	assert.Equal(t, 3, record.Requirements[2].SemesterNumber)
}

func TestParseStructureDocumentMissingBlock(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body></body></html>"))
	require.NoError(t, err)

	_, err = ParseStructureDocument(doc)
	assert.Error(t, err)
}
