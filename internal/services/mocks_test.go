package services

import (
	"context"

	"github.com/campusops/registry-service/internal/models"
	"github.com/campusops/registry-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

// MockStudentRepository is a mock implementation of StudentRepository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) Update(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) GetByStudentNo(ctx context.Context, studentNo string) (*models.Student, error) {
	args := m.Called(ctx, studentNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) GetAcademicRecord(ctx context.Context, studentNo string) (*models.Student, error) {
	args := m.Called(ctx, studentNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Student), args.Get(1).(int64), args.Error(2)
}

func (m *MockStudentRepository) UpsertRecord(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

// MockCurriculumRepository is a mock implementation of CurriculumRepository
type MockCurriculumRepository struct {
	mock.Mock
}

func (m *MockCurriculumRepository) GetProgramByCode(ctx context.Context, code string) (*models.Program, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Program), args.Error(1)
}

func (m *MockCurriculumRepository) GetStructure(ctx context.Context, id uint) (*models.ProgramStructure, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgramStructure), args.Error(1)
}

func (m *MockCurriculumRepository) GetStructureByCode(ctx context.Context, code string) (*models.ProgramStructure, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgramStructure), args.Error(1)
}

func (m *MockCurriculumRepository) VisibleRequirements(ctx context.Context, structureID uint) ([]*models.StructureModule, error) {
	args := m.Called(ctx, structureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StructureModule), args.Error(1)
}

func (m *MockCurriculumRepository) UpsertProgram(ctx context.Context, program *models.Program) error {
	args := m.Called(ctx, program)
	return args.Error(0)
}

func (m *MockCurriculumRepository) UpsertModule(ctx context.Context, module *models.Module) error {
	args := m.Called(ctx, module)
	return args.Error(0)
}

func (m *MockCurriculumRepository) UpsertStructure(ctx context.Context, structure *models.ProgramStructure) error {
	args := m.Called(ctx, structure)
	return args.Error(0)
}

// MockClearanceRepository is a mock implementation of ClearanceRepository
type MockClearanceRepository struct {
	mock.Mock
}

func (m *MockClearanceRepository) Create(ctx context.Context, request *models.ClearanceRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockClearanceRepository) GetLatestByStudent(ctx context.Context, studentID uint) (*models.ClearanceRequest, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClearanceRequest), args.Error(1)
}

func (m *MockClearanceRepository) List(ctx context.Context, filters repositories.ClearanceFilters) ([]*models.ClearanceRequest, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.ClearanceRequest), args.Get(1).(int64), args.Error(2)
}

// MockSyncJobRepository is a mock implementation of SyncJobRepository
type MockSyncJobRepository struct {
	mock.Mock
}

func (m *MockSyncJobRepository) Create(ctx context.Context, job *models.SyncJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockSyncJobRepository) Update(ctx context.Context, job *models.SyncJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockSyncJobRepository) GetByID(ctx context.Context, id uint) (*models.SyncJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SyncJob), args.Error(1)
}

// mockRepository bundles the per-aggregate mocks behind the Repository
// interface for service construction.
type mockRepository struct {
	students   *MockStudentRepository
	curriculum *MockCurriculumRepository
	clearance  *MockClearanceRepository
	syncJobs   *MockSyncJobRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		students:   new(MockStudentRepository),
		curriculum: new(MockCurriculumRepository),
		clearance:  new(MockClearanceRepository),
		syncJobs:   new(MockSyncJobRepository),
	}
}

func (r *mockRepository) Students() repositories.StudentRepository      { return r.students }
func (r *mockRepository) Curriculum() repositories.CurriculumRepository { return r.curriculum }
func (r *mockRepository) Clearance() repositories.ClearanceRepository   { return r.clearance }
func (r *mockRepository) SyncJobs() repositories.SyncJobRepository      { return r.syncJobs }
