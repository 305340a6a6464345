package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalogJSON = `[
  {
    "id": 1,
    "title": "Backend Developer",
    "company": "TechCorp",
    "location": "Remote",
    "salary": "$120k-$150k",
    "type": "Full-time",
    "description": "Build scalable backend services",
    "requirements": "python sql docker 3+ years experience",
    "experience": "3+",
    "education_required": "bachelor",
    "projects_required": "portfolio of backend projects",
    "visa_sponsorship": true
  },
  {
    "id": 2,
    "title": "Data Scientist",
    "company": "DataLab",
    "description": "Machine learning models",
    "requirements": "python pandas statistics",
    "experience": "2+"
  }
]`

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCatalogFile(t, sampleCatalogJSON)

	c, err := Load(path, []string{"Backend Developer", "Data Scientist"})
	require.NoError(t, err)

	assert.Equal(t, 2, c.Size())

	jobs := c.Jobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, 1, jobs[0].ID)
	assert.Equal(t, "Backend Developer", jobs[0].Title)
	assert.Equal(t, "bachelor", jobs[0].EducationReq)
	assert.True(t, jobs[0].VisaSponsorship)
	assert.Equal(t, "2+", jobs[1].Experience)

	assert.Equal(t, []string{"Backend Developer", "Data Scientist"}, c.Roles())
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeCatalogFile(t, `{"not": "an array"}`)
	_, err := Load(path, nil)
	assert.Error(t, err)
}

func TestLoad_MissingTitle(t *testing.T) {
	path := writeCatalogFile(t, `[{"id": 7, "company": "NoTitle Inc"}]`)
	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")
}

func TestCatalog_JobsReturnsCopy(t *testing.T) {
	path := writeCatalogFile(t, sampleCatalogJSON)
	c, err := Load(path, nil)
	require.NoError(t, err)

	jobs := c.Jobs()
	jobs[0].Title = "Mutated"

	assert.Equal(t, "Backend Developer", c.Jobs()[0].Title, "目录内容必须保持只读")
}
