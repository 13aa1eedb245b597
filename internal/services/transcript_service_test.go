package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/campusops/registry-service/internal/academics"
	"github.com/campusops/registry-service/internal/cache"
	"github.com/campusops/registry-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memoryCache is a map-backed cache.Service for asserting cache behavior.
type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = data
	return nil
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, ok := m.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (m *memoryCache) Delete(ctx context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

func (m *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	m.entries = make(map[string][]byte)
	return nil
}

func TestTranscriptService_AcademicSummary(t *testing.T) {
	repo := newMockRepository()
	service := NewTranscriptService(repo, academics.DefaultCatalog(), cache.NewNoop(), testLogger())

	student := clearanceFixtureStudent(
		gradedAttempt("Computing Concepts & Design I", "CS101", "A+", 3),
		gradedAttempt("Mathematics for Computing", "MA101", "B", 3),
		gradedAttempt("Communication Skills", "LL101", "C", 4),
	)
	repo.students.On("GetAcademicRecord", mock.Anything, "901014532").Return(student, nil)

	summary, err := service.AcademicSummary(context.Background(), "901014532")
	require.NoError(t, err)

	assert.Equal(t, "901014532", summary.StudentNo)
	assert.Equal(t, "Lineo Mahao", summary.StudentName)
	assert.Equal(t, "BSCIT", summary.ProgramCode)

	// 3*4.00 + 3*3.33 + 4*2.33 = 31.31 points over 10 credits.
	require.Len(t, summary.Records, 1)
	assert.InDelta(t, 3.131, summary.Records[0].GPA, 1e-9)
	assert.Equal(t, 10.0, summary.Records[0].CreditsAttempted)
	assert.Equal(t, 10.0, summary.Records[0].CreditsCompleted)

	assert.Equal(t, 3.13, summary.FinalCGPA)
	assert.Equal(t, academics.ClassMerit, summary.Classification)
}

func TestTranscriptService_AcademicSummary_CachesResult(t *testing.T) {
	repo := newMockRepository()
	memCache := newMemoryCache()
	service := NewTranscriptService(repo, academics.DefaultCatalog(), memCache, testLogger())

	student := clearanceFixtureStudent(
		gradedAttempt("Computing Concepts & Design I", "CS101", "A", 3),
	)
	repo.students.On("GetAcademicRecord", mock.Anything, "901014532").Return(student, nil).Once()

	first, err := service.AcademicSummary(context.Background(), "901014532")
	require.NoError(t, err)

	// Second call must be served from cache; the mock only allows one load.
	second, err := service.AcademicSummary(context.Background(), "901014532")
	require.NoError(t, err)

	assert.Equal(t, first.FinalCGPA, second.FinalCGPA)
	assert.Equal(t, first.Classification, second.Classification)
	repo.students.AssertExpectations(t)
}

func TestTranscriptService_AcademicSummary_StudentNotFound(t *testing.T) {
	repo := newMockRepository()
	service := NewTranscriptService(repo, academics.DefaultCatalog(), cache.NewNoop(), testLogger())

	repo.students.On("GetAcademicRecord", mock.Anything, "000000").Return(nil, gorm.ErrRecordNotFound)

	_, err := service.AcademicSummary(context.Background(), "000000")
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestTranscriptService_AcademicSummary_NoProgram(t *testing.T) {
	repo := newMockRepository()
	service := NewTranscriptService(repo, academics.DefaultCatalog(), cache.NewNoop(), testLogger())

	repo.students.On("GetAcademicRecord", mock.Anything, "901014532").
		Return(&models.Student{StudentNo: "901014532", Name: "Lineo Mahao"}, nil)

	summary, err := service.AcademicSummary(context.Background(), "901014532")
	require.NoError(t, err)
	assert.Equal(t, academics.ClassNoProgram, summary.Classification)
	assert.Zero(t, summary.FinalCGPA)
}

func TestTranscriptService_AcademicSummary_NoCountedSemesters(t *testing.T) {
	repo := newMockRepository()
	service := NewTranscriptService(repo, academics.DefaultCatalog(), cache.NewNoop(), testLogger())

	student := &models.Student{
		StudentNo: "901014532",
		Name:      "Lineo Mahao",
		Programs: []models.StudentProgram{
			{
				ID:      11,
				Status:  models.ProgramActive,
				Program: models.Program{Code: "BSCIT", Name: "BSc Information Technology"},
				Semesters: []models.StudentSemester{
					{ID: 21, TermCode: "2023-1", Status: models.SemesterDeferred},
				},
			},
		},
	}
	repo.students.On("GetAcademicRecord", mock.Anything, "901014532").Return(student, nil)

	summary, err := service.AcademicSummary(context.Background(), "901014532")
	require.NoError(t, err)
	assert.Equal(t, academics.ClassNoSemesters, summary.Classification)
}
