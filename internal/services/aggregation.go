package services

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	redisclient "github.com/beyzakarasahann/AcuRate-sub001/internal/clients/redis"
	repos "github.com/beyzakarasahann/AcuRate-sub001/internal/data/repos/outcomes"
	types "github.com/beyzakarasahann/AcuRate-sub001/internal/domain"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/modules/achievement/steps"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/normalization"
	apperrors "github.com/beyzakarasahann/AcuRate-sub001/internal/pkg/errors"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/pkg/logger"
)

const tracerName = "acurate/aggregation"

// AggregationService is the one owner of outcome aggregation. Pages call it;
// none of them reimplement the math.
type AggregationService interface {
	// AggregateSnapshot runs the pure pipeline over a caller-supplied
	// snapshot. No I/O, no cache.
	AggregateSnapshot(ctx context.Context, snap steps.Snapshot, opts *steps.Options) *steps.Result

	// DepartmentAchievement fetches a department's snapshot from the store
	// and aggregates it. Results are cached per department. Returns
	// ErrNotFound for an unknown department.
	DepartmentAchievement(ctx context.Context, departmentID int) (*steps.Result, error)

	// StudentStrengths aggregates one student's data and ranks top-n
	// strengths.
	StudentStrengths(ctx context.Context, studentID, topN int) (*steps.Result, error)

	// DepartmentMatrix returns just the course↔outcome matrix for a
	// department.
	DepartmentMatrix(ctx context.Context, departmentID int) (steps.MatrixResult, error)
}

type AggregationRepos struct {
	Departments  repos.DepartmentRepo
	Courses      repos.CourseRepo
	Outcomes     repos.OutcomeRepo
	Assessments  repos.AssessmentRepo
	Grades       repos.GradeRepo
	Enrollments  repos.EnrollmentRepo
	Achievements repos.AchievementRepo
}

type aggregationService struct {
	db       *gorm.DB
	log      *logger.Logger
	repos    AggregationRepos
	cache    redisclient.ResultCache // nil disables caching
	cacheTTL time.Duration
	opts     steps.Options
}

func NewAggregationService(db *gorm.DB, log *logger.Logger, r AggregationRepos, cache redisclient.ResultCache, cacheTTL time.Duration, opts steps.Options) AggregationService {
	return &aggregationService{
		db:       db,
		log:      log.With("service", "AggregationService"),
		repos:    r,
		cache:    cache,
		cacheTTL: cacheTTL,
		opts:     opts,
	}
}

func (s *aggregationService) AggregateSnapshot(ctx context.Context, snap steps.Snapshot, opts *steps.Options) *steps.Result {
	_, span := otel.Tracer(tracerName).Start(ctx, "AggregateSnapshot")
	defer span.End()

	effective := s.opts
	if opts != nil {
		effective = *opts
	}
	result := steps.Aggregate(snap, effective)
	span.SetAttributes(
		attribute.Int("resolved_outcomes", len(result.Resolved)),
		attribute.Int("skipped_assessments", result.Skipped.Assessments),
	)
	return result
}

func (s *aggregationService) DepartmentAchievement(ctx context.Context, departmentID int) (*steps.Result, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "DepartmentAchievement")
	defer span.End()
	span.SetAttributes(attribute.Int("department_id", departmentID))

	cacheKey := fmt.Sprintf("agg:dept:%d", departmentID)
	if s.cache != nil {
		var cached steps.Result
		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			s.log.Warn("cache read failed, recomputing", "key", cacheKey, "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	snap, err := s.departmentSnapshot(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	result := steps.Aggregate(snap, s.opts)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result, s.cacheTTL); err != nil {
			s.log.Warn("cache write failed", "key", cacheKey, "error", err)
		}
	}
	return result, nil
}

func (s *aggregationService) DepartmentMatrix(ctx context.Context, departmentID int) (steps.MatrixResult, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "DepartmentMatrix")
	defer span.End()

	snap, err := s.departmentSnapshot(ctx, departmentID)
	if err != nil {
		return steps.MatrixResult{}, err
	}
	return steps.BuildMatrix(snap.Courses, snap.Assessments, snap.Enrollments, snap.Outcomes), nil
}

func (s *aggregationService) StudentStrengths(ctx context.Context, studentID, topN int) (*steps.Result, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "StudentStrengths")
	defer span.End()
	span.SetAttributes(attribute.Int("student_id", studentID))

	var (
		enrollments  []*types.Enrollment
		grades       []*types.Grade
		achievements []*types.AchievementRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		enrollments, err = s.repos.Enrollments.GetByStudentIDs(gctx, nil, []int{studentID})
		return err
	})
	g.Go(func() (err error) {
		grades, err = s.repos.Grades.GetByStudentIDs(gctx, nil, []int{studentID})
		return err
	})
	g.Go(func() (err error) {
		achievements, err = s.repos.Achievements.GetByStudentIDs(gctx, nil, []int{studentID})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch student %d: %w", studentID, err)
	}

	courseIDs := make([]int, 0, len(enrollments))
	for _, e := range enrollments {
		courseIDs = append(courseIDs, e.CourseID)
	}
	outcomeIDs := make([]int, 0, len(achievements))
	for _, a := range achievements {
		outcomeIDs = append(outcomeIDs, a.OutcomeID)
	}

	var (
		courses     []*types.Course
		assessments []*types.Assessment
		outcomes    []*types.Outcome
	)
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		courses, err = s.repos.Courses.GetByIDs(gctx, nil, courseIDs)
		return err
	})
	g.Go(func() (err error) {
		assessments, err = s.repos.Assessments.GetByCourseIDs(gctx, nil, courseIDs)
		return err
	})
	g.Go(func() (err error) {
		outcomes, err = s.repos.Outcomes.GetByIDs(gctx, nil, outcomeIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch student %d scope: %w", studentID, err)
	}

	snap := buildSnapshot(courses, outcomes, assessments, grades, enrollments, achievements)
	opts := s.opts
	if topN > 0 {
		opts.TopN = topN
	}
	return steps.Aggregate(snap, opts), nil
}

// departmentSnapshot fetches everything one department's aggregation needs.
// Independent reads run in parallel and join before the engine call; the
// first failure cancels the rest and fails the whole fetch, so the engine
// never sees a partially loaded snapshot.
func (s *aggregationService) departmentSnapshot(ctx context.Context, departmentID int) (steps.Snapshot, error) {
	depts, err := s.repos.Departments.GetByIDs(ctx, nil, []int{departmentID})
	if err != nil {
		return steps.Snapshot{}, fmt.Errorf("fetch department %d: %w", departmentID, err)
	}
	if len(depts) == 0 {
		return steps.Snapshot{}, fmt.Errorf("department %d: %w", departmentID, apperrors.ErrNotFound)
	}

	courses, err := s.repos.Courses.GetByDepartmentIDs(ctx, nil, []int{departmentID})
	if err != nil {
		return steps.Snapshot{}, fmt.Errorf("fetch department %d courses: %w", departmentID, err)
	}
	courseIDs := make([]int, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
	}

	var (
		programOutcomes []*types.Outcome
		courseOutcomes  []*types.Outcome
		assessments     []*types.Assessment
		enrollments     []*types.Enrollment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		programOutcomes, err = s.repos.Outcomes.GetByDepartmentIDs(gctx, nil, []int{departmentID})
		return err
	})
	g.Go(func() (err error) {
		courseOutcomes, err = s.repos.Outcomes.GetByCourseIDs(gctx, nil, courseIDs)
		return err
	})
	g.Go(func() (err error) {
		assessments, err = s.repos.Assessments.GetByCourseIDs(gctx, nil, courseIDs)
		return err
	})
	g.Go(func() (err error) {
		enrollments, err = s.repos.Enrollments.GetByCourseIDs(gctx, nil, courseIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return steps.Snapshot{}, fmt.Errorf("fetch department %d: %w", departmentID, err)
	}

	// An outcome scoped to both the department and one of its courses would
	// arrive from both fetches; keep one row per ID.
	seen := make(map[int]bool, len(programOutcomes)+len(courseOutcomes))
	outcomes := make([]*types.Outcome, 0, len(programOutcomes)+len(courseOutcomes))
	for _, o := range append(programOutcomes, courseOutcomes...) {
		if seen[o.ID] {
			continue
		}
		seen[o.ID] = true
		outcomes = append(outcomes, o)
	}

	assessmentIDs := make([]int, 0, len(assessments))
	for _, a := range assessments {
		assessmentIDs = append(assessmentIDs, a.ID)
	}
	outcomeIDs := make([]int, 0, len(outcomes))
	for _, o := range outcomes {
		outcomeIDs = append(outcomeIDs, o.ID)
	}

	var (
		grades       []*types.Grade
		achievements []*types.AchievementRecord
	)
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		grades, err = s.repos.Grades.GetByAssessmentIDs(gctx, nil, assessmentIDs)
		return err
	})
	g.Go(func() (err error) {
		achievements, err = s.repos.Achievements.GetByOutcomeIDs(gctx, nil, outcomeIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return steps.Snapshot{}, fmt.Errorf("fetch department %d records: %w", departmentID, err)
	}

	return buildSnapshot(courses, outcomes, assessments, grades, enrollments, achievements), nil
}

// buildSnapshot converts canonical store rows into engine inputs. Store rows
// already carry integer IDs, so every reference resolves.
func buildSnapshot(
	courses []*types.Course,
	outcomes []*types.Outcome,
	assessments []*types.Assessment,
	grades []*types.Grade,
	enrollments []*types.Enrollment,
	achievements []*types.AchievementRecord,
) steps.Snapshot {
	snap := steps.Snapshot{}

	for _, c := range courses {
		in := steps.CourseInput{ID: c.ID, Code: c.Code, Name: c.Name}
		if c.DepartmentID != nil {
			in.Department = normalization.RefFromID(*c.DepartmentID)
		}
		snap.Courses = append(snap.Courses, in)
	}
	for _, o := range outcomes {
		in := steps.OutcomeInput{
			ID:               o.ID,
			Code:             o.Code,
			Title:            o.Title,
			Description:      o.Description,
			Kind:             o.Kind,
			TargetPercentage: o.TargetPercentage,
			IsActive:         o.IsActive,
		}
		if o.DepartmentID != nil {
			in.Department = normalization.RefFromID(*o.DepartmentID)
		}
		if o.CourseID != nil {
			in.Course = normalization.RefFromID(*o.CourseID)
		}
		snap.Outcomes = append(snap.Outcomes, in)
	}
	for _, a := range assessments {
		in := steps.AssessmentInput{
			ID:       a.ID,
			Course:   normalization.RefFromID(a.CourseID),
			Type:     a.Type,
			Weight:   a.Weight,
			MaxScore: a.MaxScore,
		}
		if len(a.RelatedOutcomeIDs) > 0 {
			// jsonb array of IDs; a malformed column value just yields no
			// outcome links rather than failing the fetch.
			_ = json.Unmarshal(a.RelatedOutcomeIDs, &in.RelatedOutcomes)
		}
		snap.Assessments = append(snap.Assessments, in)
	}
	for _, gr := range grades {
		snap.Grades = append(snap.Grades, steps.GradeInput{
			Assessment: normalization.RefFromID(gr.AssessmentID),
			Student:    normalization.RefFromID(gr.StudentID),
			Score:      gr.Score,
		})
	}
	for _, e := range enrollments {
		snap.Enrollments = append(snap.Enrollments, steps.EnrollmentInput{
			Student:    normalization.RefFromID(e.StudentID),
			Course:     normalization.RefFromID(e.CourseID),
			IsActive:   e.IsActive,
			FinalGrade: e.FinalGrade,
		})
	}
	for _, rec := range achievements {
		snap.Achievements = append(snap.Achievements, steps.AchievementInput{
			Outcome:           normalization.RefFromID(rec.OutcomeID),
			Student:           normalization.RefFromID(rec.StudentID),
			CurrentPercentage: rec.CurrentPercentage,
		})
	}
	return snap
}
