package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"gorm.io/gorm"

	redisclient "github.com/beyzakarasahann/AcuRate-sub001/internal/clients/redis"
	types "github.com/beyzakarasahann/AcuRate-sub001/internal/domain"
	apperrors "github.com/beyzakarasahann/AcuRate-sub001/internal/pkg/errors"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/modules/achievement/steps"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/pkg/logger"
)

type fixtureRepos struct {
	departments  []*types.Department
	courses      []*types.Course
	outcomes     []*types.Outcome
	assessments  []*types.Assessment
	grades       []*types.Grade
	enrollments  []*types.Enrollment
	achievements []*types.AchievementRecord
}

func (f *fixtureRepos) repos() AggregationRepos {
	return AggregationRepos{
		Departments:  stubDepartmentRepo{f},
		Courses:      stubCourseRepo{f},
		Outcomes:     stubOutcomeRepo{f},
		Assessments:  stubAssessmentRepo{f},
		Grades:       stubGradeRepo{f},
		Enrollments:  stubEnrollmentRepo{f},
		Achievements: stubAchievementRepo{f},
	}
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type stubDepartmentRepo struct{ f *fixtureRepos }

func (r stubDepartmentRepo) Create(_ context.Context, _ *gorm.DB, rows []*types.Department) ([]*types.Department, error) {
	return rows, nil
}
func (r stubDepartmentRepo) GetByIDs(_ context.Context, _ *gorm.DB, ids []int) ([]*types.Department, error) {
	var out []*types.Department
	for _, d := range r.f.departments {
		if contains(ids, d.ID) {
			out = append(out, d)
		}
	}
	return out, nil
}

type stubCourseRepo struct{ f *fixtureRepos }

func (r stubCourseRepo) Create(_ context.Context, _ *gorm.DB, rows []*types.Course) ([]*types.Course, error) {
	return rows, nil
}
func (r stubCourseRepo) GetByIDs(_ context.Context, _ *gorm.DB, ids []int) ([]*types.Course, error) {
	var out []*types.Course
	for _, c := range r.f.courses {
		if contains(ids, c.ID) {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r stubCourseRepo) GetByDepartmentIDs(_ context.Context, _ *gorm.DB, ids []int) ([]*types.Course, error) {
	var out []*types.Course
	for _, c := range r.f.courses {
		if c.DepartmentID != nil && contains(ids, *c.DepartmentID) {
			out = append(out, c)
		}
	}
	return out, nil
}

type stubOutcomeRepo struct{ f *fixtureRepos }

func (r stubOutcomeRepo) Create(_ context.Context, _ *gorm.DB, rows []*types.Outcome) ([]*types.Outcome, error) {
	return rows, nil
}
func (r stubOutcomeRepo) GetByIDs(_ context.Context, _ *gorm.DB, ids []int) ([]*types.Outcome, error) {
	var out []*types.Outcome
	for _, o := range r.f.outcomes {
		if contains(ids, o.ID) {
			out = append(out, o)
		}
	}
	return out, nil
}
func (r stubOutcomeRepo) GetByDepartmentIDs(_ context.Context, _ *gorm.DB, ids []int) ([]*types.Outcome, error) {
	var out []*types.Outcome
	for _, o := range r.f.outcomes {
		if o.DepartmentID != nil && contains(ids, *o.DepartmentID) {
			out = append(out, o)
		}
	}
	return out, nil
}
func (r stubOutcomeRepo) GetByCourseIDs(_ context.Context, _ *gorm.DB, ids []int) ([]*types.Outcome, error) {
	var out []*types.Outcome
	for _, o := range r.f.outcomes {
		if o.CourseID != nil && contains(ids, *o.CourseID) {
			out = append(out, o)
		}
	}
	return out, nil
}

type stubAssessmentRepo struct{ f *fixtureRepos }

func (r stubAssessmentRepo) Create(_ context.Context, _ *gorm.DB, rows []*types.Assessment) ([]*types.Assessment, error) {
	return rows, nil
}
func (r stubAssessmentRepo) GetByIDs(_ context.Context, _ *gorm.DB, ids []int) ([]*types.Assessment, error) {
	var out []*types.Assessment
	for _, a := range r.f.assessments {
		if contains(ids, a.ID) {
			out = append(out, a)
		}
	}
	return out, nil
}
func (r stubAssessmentRepo) GetByCourseIDs(_ context.Context, _ *gorm.DB, ids []int) ([]*types.Assessment, error) {
	var out []*types.Assessment
	for _, a := range r.f.assessments {
		if contains(ids, a.CourseID) {
			out = append(out, a)
		}
	}
	return out, nil
}

type stubGradeRepo struct{ f *fixtureRepos }

func (r stubGradeRepo) Create(_ context.Context, _ *gorm.DB, rows []*types.Grade) ([]*types.Grade, error) {
	return rows, nil
}
func (r stubGradeRepo) GetByAssessmentIDs(_ context.Context, _ *gorm.DB, ids []int) ([]*types.Grade, error) {
	var out []*types.Grade
	for _, g := range r.f.grades {
		if contains(ids, g.AssessmentID) {
			out = append(out, g)
		}
	}
	return out, nil
}
func (r stubGradeRepo) GetByStudentIDs(_ context.Context, _ *gorm.DB, ids []int) ([]*types.Grade, error) {
	var out []*types.Grade
	for _, g := range r.f.grades {
		if contains(ids, g.StudentID) {
			out = append(out, g)
		}
	}
	return out, nil
}

type stubEnrollmentRepo struct{ f *fixtureRepos }

func (r stubEnrollmentRepo) Create(_ context.Context, _ *gorm.DB, rows []*types.Enrollment) ([]*types.Enrollment, error) {
	return rows, nil
}
func (r stubEnrollmentRepo) GetByCourseIDs(_ context.Context, _ *gorm.DB, ids []int) ([]*types.Enrollment, error) {
	var out []*types.Enrollment
	for _, e := range r.f.enrollments {
		if contains(ids, e.CourseID) {
			out = append(out, e)
		}
	}
	return out, nil
}
func (r stubEnrollmentRepo) GetByStudentIDs(_ context.Context, _ *gorm.DB, ids []int) ([]*types.Enrollment, error) {
	var out []*types.Enrollment
	for _, e := range r.f.enrollments {
		if contains(ids, e.StudentID) {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubAchievementRepo struct{ f *fixtureRepos }

func (r stubAchievementRepo) Create(_ context.Context, _ *gorm.DB, rows []*types.AchievementRecord) ([]*types.AchievementRecord, error) {
	return rows, nil
}
func (r stubAchievementRepo) GetByOutcomeIDs(_ context.Context, _ *gorm.DB, ids []int) ([]*types.AchievementRecord, error) {
	var out []*types.AchievementRecord
	for _, a := range r.f.achievements {
		if contains(ids, a.OutcomeID) {
			out = append(out, a)
		}
	}
	return out, nil
}
func (r stubAchievementRepo) GetByStudentIDs(_ context.Context, _ *gorm.DB, ids []int) ([]*types.AchievementRecord, error) {
	var out []*types.AchievementRecord
	for _, a := range r.f.achievements {
		if contains(ids, a.StudentID) {
			out = append(out, a)
		}
	}
	return out, nil
}

// memoryCache records Get/Set traffic so tests can assert cache usage without
// a redis server.
type memoryCache struct {
	entries map[string][]byte
	hits    int
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dst any) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	c.hits++
	return true, nil
}

func (c *memoryCache) Set(_ context.Context, key string, val any, _ time.Duration) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	c.sets++
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *memoryCache) Close() error { return nil }

func intPtr(v int) *int         { return &v }
func f64Ptr(v float64) *float64 { return &v }

func departmentFixture() *fixtureRepos {
	deptID := 1
	courseID := 10
	return &fixtureRepos{
		departments: []*types.Department{{ID: deptID, Name: "Computer Science"}},
		courses: []*types.Course{
			{ID: courseID, Code: "CS101", Name: "Intro to Programming", DepartmentID: intPtr(deptID)},
		},
		outcomes: []*types.Outcome{
			{ID: 100, Code: "PO1", Title: "Engineering Knowledge", Kind: types.KindProgramOutcome, TargetPercentage: 70, IsActive: true, DepartmentID: intPtr(deptID)},
			{ID: 101, Code: "PO2", Title: "Problem Analysis", Kind: types.KindProgramOutcome, TargetPercentage: 70, IsActive: true, DepartmentID: intPtr(deptID)},
		},
		assessments: []*types.Assessment{
			{ID: 200, CourseID: courseID, Type: "midterm", Weight: 40, MaxScore: 100, RelatedOutcomeIDs: []byte(`[100]`)},
			{ID: 201, CourseID: courseID, Type: "final", Weight: 60, MaxScore: 100, RelatedOutcomeIDs: []byte(`[100,101]`)},
		},
		grades: []*types.Grade{
			{ID: 300, AssessmentID: 200, StudentID: 7, Score: 80},
			{ID: 301, AssessmentID: 201, StudentID: 7, Score: 90},
		},
		enrollments: []*types.Enrollment{
			{ID: 400, StudentID: 7, CourseID: courseID, IsActive: true},
		},
		achievements: []*types.AchievementRecord{
			{ID: 500, OutcomeID: 100, StudentID: 7, CurrentPercentage: f64Ptr(85)},
			{ID: 501, OutcomeID: 101, StudentID: 7, CurrentPercentage: f64Ptr(60)},
		},
	}
}

func newTestService(t *testing.T, f *fixtureRepos, cache *memoryCache) AggregationService {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	var rc redisclient.ResultCache
	if cache != nil {
		rc = cache
	}
	return NewAggregationService(nil, log, f.repos(), rc, time.Minute, steps.DefaultOptions())
}

func TestDepartmentAchievement(t *testing.T) {
	svc := newTestService(t, departmentFixture(), nil)

	result, err := svc.DepartmentAchievement(context.Background(), 1)
	if err != nil {
		t.Fatalf("DepartmentAchievement: %v", err)
	}
	if len(result.Resolved) != 2 {
		t.Fatalf("expected 2 resolved outcomes, got %d", len(result.Resolved))
	}
	byCode := map[string]steps.ResolvedOutcome{}
	for _, r := range result.Resolved {
		byCode[r.Outcome.Code] = r
	}
	po1 := byCode["PO1"]
	if !po1.HasData || po1.Current != 85 {
		t.Fatalf("PO1 = %+v, want HasData with current 85", po1)
	}
	if po1.Status != steps.StatusExcellent {
		t.Fatalf("PO1 status = %q, want %q", po1.Status, steps.StatusExcellent)
	}
	if byCode["PO2"].Status != steps.StatusNeedsAttention {
		t.Fatalf("PO2 status = %q, want %q", byCode["PO2"].Status, steps.StatusNeedsAttention)
	}
	if result.OverallAchievement != 72.5 {
		t.Fatalf("overall = %v, want 72.5", result.OverallAchievement)
	}

	if len(result.CourseScores) != 1 {
		t.Fatalf("expected 1 course score, got %d", len(result.CourseScores))
	}
	cs := result.CourseScores[0]
	if cs.Score == nil || *cs.Score != 86 {
		t.Fatalf("course score = %v, want 86", cs.Score)
	}
}

func TestDepartmentAchievementCaching(t *testing.T) {
	cache := newMemoryCache()
	svc := newTestService(t, departmentFixture(), cache)

	first, err := svc.DepartmentAchievement(context.Background(), 1)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected one cache write, got %d", cache.sets)
	}

	second, err := svc.DepartmentAchievement(context.Background(), 1)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if cache.hits != 1 {
		t.Fatalf("expected one cache hit, got %d", cache.hits)
	}
	if second.OverallAchievement != first.OverallAchievement {
		t.Fatalf("cached overall = %v, want %v", second.OverallAchievement, first.OverallAchievement)
	}
	if len(second.Resolved) != len(first.Resolved) {
		t.Fatalf("cached resolved count = %d, want %d", len(second.Resolved), len(first.Resolved))
	}
}

func TestDepartmentAchievementUnknownDepartment(t *testing.T) {
	svc := newTestService(t, departmentFixture(), nil)

	_, err := svc.DepartmentAchievement(context.Background(), 999)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestStudentStrengthsTopN(t *testing.T) {
	svc := newTestService(t, departmentFixture(), nil)

	result, err := svc.StudentStrengths(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("StudentStrengths: %v", err)
	}
	if len(result.Top) != 1 {
		t.Fatalf("expected 1 top outcome, got %d", len(result.Top))
	}
	if result.Top[0].Outcome.Code != "PO1" {
		t.Fatalf("top outcome = %q, want PO1", result.Top[0].Outcome.Code)
	}
	if result.Top[0].Rank != 1 {
		t.Fatalf("rank = %d, want 1", result.Top[0].Rank)
	}
	if len(result.Rest) != 1 || result.Rest[0].Outcome.Code != "PO2" {
		t.Fatalf("rest = %+v, want single PO2", result.Rest)
	}
}

func TestDepartmentMatrix(t *testing.T) {
	svc := newTestService(t, departmentFixture(), nil)

	matrix, err := svc.DepartmentMatrix(context.Background(), 1)
	if err != nil {
		t.Fatalf("DepartmentMatrix: %v", err)
	}
	if w, ok := matrix.Weight("CS101", "PO1"); !ok || w != 60 {
		t.Fatalf("CS101/PO1 weight = %v ok=%v, want 60", w, ok)
	}
	if w, ok := matrix.Weight("CS101", "PO2"); !ok || w != 60 {
		t.Fatalf("CS101/PO2 weight = %v ok=%v, want 60", w, ok)
	}
}

func TestAggregateSnapshotUsesCallerOptions(t *testing.T) {
	svc := newTestService(t, &fixtureRepos{}, nil)

	snap := steps.Snapshot{
		Outcomes: []steps.OutcomeInput{
			{ID: 1, Code: "PO1", Kind: "po", TargetPercentage: 70, IsActive: true},
		},
	}
	opts := steps.DefaultOptions()
	opts.BaseHue = 10
	opts.HueStep = 1

	result := svc.AggregateSnapshot(context.Background(), snap, &opts)
	if len(result.Resolved) != 1 {
		t.Fatalf("expected 1 resolved outcome, got %d", len(result.Resolved))
	}
	if result.Resolved[0].Status != steps.StatusNoData {
		t.Fatalf("status = %q, want %q", result.Resolved[0].Status, steps.StatusNoData)
	}
}
