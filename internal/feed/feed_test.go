package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/datatypes"

	"github.com/Big-jpg/swipehire/internal/ai"
	"github.com/Big-jpg/swipehire/internal/models"
	"github.com/Big-jpg/swipehire/internal/store"
	"github.com/Big-jpg/swipehire/internal/store/storetest"
)

type stubQualifier struct {
	mu      sync.Mutex
	calls   int
	resumes []string
	verdict *ai.Verdict
	err     error
	block   bool
}

func (q *stubQualifier) Qualify(ctx context.Context, resumeText string, _ *models.Profile, _ *models.Job) (*ai.Verdict, error) {
	q.mu.Lock()
	q.calls++
	q.resumes = append(q.resumes, resumeText)
	q.mu.Unlock()

	if q.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return q.verdict, q.err
}

func (q *stubQualifier) callCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.calls
}

type fixture struct {
	store     *store.Store
	service   *Service
	qualifier *stubQualifier
	logs      *observer.ObservedLogs
	user      *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := storetest.New(t)
	core, logs := observer.New(zapcore.DebugLevel)
	q := &stubQualifier{verdict: &ai.Verdict{Qualified: true, Reason: "strong match"}}

	svc := New(&Config{OracleTimeout: 50 * time.Millisecond}, &Deps{
		Store:     s,
		Qualifier: q,
		Logger:    zap.New(core),
	})

	return &fixture{
		store:     s,
		service:   svc,
		qualifier: q,
		logs:      logs,
		user:      storetest.User(t, s, "user-1"),
	}
}

func (f *fixture) profile(t *testing.T, p models.Profile) {
	t.Helper()
	if _, err := f.service.SaveProfile(context.Background(), f.user.ID, &p); err != nil {
		t.Fatalf("save profile: %v", err)
	}
}

func (f *fixture) resume(t *testing.T, text string) {
	t.Helper()
	if _, err := f.service.SaveResume(context.Background(), f.user.ID, &models.Resume{ParsedText: text}); err != nil {
		t.Fatalf("save resume: %v", err)
	}
}

func (f *fixture) next(t *testing.T) *NextResult {
	t.Helper()
	res, err := f.service.NextJob(context.Background(), f.user.ID)
	if err != nil {
		t.Fatalf("next job: %v", err)
	}
	return res
}

func (f *fixture) decide(t *testing.T, jobID uint, d models.Decision) *DecisionResult {
	t.Helper()
	res, err := f.service.RecordDecision(context.Background(), f.user.ID, DecisionInput{JobID: jobID, Decision: d})
	if err != nil {
		t.Fatalf("record %s: %v", d, err)
	}
	return res
}

func countRows(t *testing.T, s *store.Store, model any) int64 {
	t.Helper()
	var n int64
	if err := s.DB().Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestNextJobRequiresUserAndProfile(t *testing.T) {
	f := newFixture(t)

	if _, err := f.service.NextJob(context.Background(), 0); !errors.Is(err, ErrUnauthorized) || KindOf(err) != KindUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	_, err := f.service.NextJob(context.Background(), f.user.ID)
	if !errors.Is(err, ErrProfileRequired) {
		t.Fatalf("expected profile required, got %v", err)
	}
	if KindOf(err) != KindPrecondition || Message(err) != "profile required" {
		t.Fatalf("unexpected classification: %s %q", KindOf(err), Message(err))
	}
}

func TestNextJobScenario(t *testing.T) {
	f := newFixture(t)
	f.profile(t, models.Profile{
		City:                "San Francisco",
		Country:             "USA",
		MinSalary:           storetest.Ptr(100000),
		MaxSalary:           storetest.Ptr(150000),
		WorkModePreferences: datatypes.JSONSlice[string]{"remote", "hybrid"},
	})
	f.resume(t, "Go engineer")

	onsite, remote := models.WorkModeOnsite, models.WorkModeRemote
	storetest.Job(t, f.store, models.Job{Title: "Job B", City: "Austin", SalaryMin: storetest.Ptr(200000), WorkMode: &onsite})
	jobA := storetest.Job(t, f.store, models.Job{Title: "Job A", City: "San Francisco", SalaryMin: storetest.Ptr(90000), SalaryMax: storetest.Ptr(140000), WorkMode: &remote})

	res := f.next(t)
	if res.Exhausted() || res.Job.ID != jobA.ID {
		t.Fatalf("expected Job A, got %+v", res.Job)
	}
	if res.Verdict == nil || !res.Verdict.Qualified || res.Verdict.Reason != "strong match" {
		t.Fatalf("unexpected verdict: %+v", res.Verdict)
	}
	if f.qualifier.resumes[0] != "Go engineer" {
		t.Fatalf("qualifier got resume %q", f.qualifier.resumes[0])
	}

	f.decide(t, jobA.ID, models.DecisionDislike)
	if res := f.next(t); !res.Exhausted() || res.Verdict != nil {
		t.Fatalf("Job B must never be offered, got %+v", res)
	}
}

func TestNextJobWithoutResumeSkipsQualifier(t *testing.T) {
	f := newFixture(t)
	f.profile(t, models.Profile{})
	storetest.Job(t, f.store, models.Job{Title: "any"})

	res := f.next(t)
	if res.Verdict == nil || res.Verdict.Qualified || res.Verdict.Reason != ReasonResumeRequired {
		t.Fatalf("unexpected verdict: %+v", res.Verdict)
	}
	if f.qualifier.callCount() != 0 {
		t.Fatalf("qualifier must not be called without a resume")
	}
}

func TestNextJobQualifierFailuresFallBack(t *testing.T) {
	tests := []struct {
		name  string
		setup func(q *stubQualifier)
	}{
		{"timeout", func(q *stubQualifier) { q.block = true }},
		{"error", func(q *stubQualifier) { q.err = errors.New("malformed response") }},
		{"no verdict", func(q *stubQualifier) { q.verdict = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.profile(t, models.Profile{})
			f.resume(t, "resume")
			storetest.Job(t, f.store, models.Job{Title: "any"})
			tt.setup(f.qualifier)

			res := f.next(t)
			if res.Job == nil {
				t.Fatalf("expected a job despite qualifier failure")
			}
			if res.Verdict == nil || res.Verdict.Qualified || res.Verdict.Reason != ReasonTechnicalError {
				t.Fatalf("unexpected verdict: %+v", res.Verdict)
			}

			warns := f.logs.FilterMessage("qualification failed, using fallback verdict").FilterLevelExact(zapcore.WarnLevel).All()
			if len(warns) != 1 {
				t.Fatalf("expected one warning, got %d", len(warns))
			}
		})
	}
}

func TestNextJobUnconfiguredQualifier(t *testing.T) {
	s := storetest.New(t)
	user := storetest.User(t, s, "user-1")
	svc := New(nil, &Deps{Store: s})

	ctx := context.Background()
	if _, err := svc.SaveProfile(ctx, user.ID, &models.Profile{}); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if _, err := svc.SaveResume(ctx, user.ID, &models.Resume{ParsedText: "text"}); err != nil {
		t.Fatalf("save resume: %v", err)
	}
	storetest.Job(t, s, models.Job{Title: "any"})

	res, err := svc.NextJob(ctx, user.ID)
	if err != nil {
		t.Fatalf("next job: %v", err)
	}
	if res.Verdict == nil || res.Verdict.Reason != ReasonTechnicalError {
		t.Fatalf("unexpected verdict: %+v", res.Verdict)
	}
}

func TestLikeQueuesApplicationDislikeDoesNot(t *testing.T) {
	f := newFixture(t)
	liked := storetest.Job(t, f.store, models.Job{Title: "liked"})
	disliked := storetest.Job(t, f.store, models.Job{Title: "disliked"})

	res, err := f.service.RecordDecision(context.Background(), f.user.ID, DecisionInput{
		JobID:    liked.ID,
		Decision: models.DecisionLike,
		Verdict:  &Verdict{Qualified: true, Reason: " fits "},
	})
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if !res.OK || res.SwipeID == 0 || res.ApplicationID == nil {
		t.Fatalf("unexpected result: %+v", res)
	}

	app, err := f.store.GetApplication(context.Background(), *res.ApplicationID)
	if err != nil {
		t.Fatalf("get application: %v", err)
	}
	if app.Status != models.ApplicationQueued || app.SwipeID == nil || *app.SwipeID != res.SwipeID {
		t.Fatalf("unexpected application: %+v", app)
	}

	dislike := f.decide(t, disliked.ID, models.DecisionDislike)
	if dislike.ApplicationID != nil {
		t.Fatalf("dislike must not create an application")
	}
	if n := countRows(t, f.store, &models.Application{}); n != 1 {
		t.Fatalf("expected 1 application, got %d", n)
	}

	history, err := f.service.ListSwipeHistory(context.Background(), f.user.ID, nil)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 || history[0].Job.Title != "disliked" {
		t.Fatalf("expected newest first, got %+v", history)
	}
	snap := history[1].Swipe.Verdict
	if snap.Qualified == nil || !*snap.Qualified || snap.Reason == nil || *snap.Reason != "fits" {
		t.Fatalf("verdict snapshot not stored: %+v", snap)
	}
	if history[0].Swipe.Verdict.Qualified != nil || history[0].Swipe.Verdict.Reason != nil {
		t.Fatalf("missing verdict must be stored as nulls")
	}

	like := models.DecisionLike
	likes, err := f.service.ListSwipeHistory(context.Background(), f.user.ID, &like)
	if err != nil {
		t.Fatalf("likes: %v", err)
	}
	if len(likes) != 1 || likes[0].Job.ID != liked.ID {
		t.Fatalf("unexpected likes: %+v", likes)
	}
}

func TestRecordDecisionValidation(t *testing.T) {
	f := newFixture(t)
	job := storetest.Job(t, f.store, models.Job{Title: "any"})
	ctx := context.Background()

	tests := []struct {
		name   string
		userID uint
		in     DecisionInput
		kind   Kind
	}{
		{"no user", 0, DecisionInput{JobID: job.ID, Decision: models.DecisionLike}, KindUnauthorized},
		{"unknown user", 999, DecisionInput{JobID: job.ID, Decision: models.DecisionLike}, KindUnauthorized},
		{"bad decision", f.user.ID, DecisionInput{JobID: job.ID, Decision: "maybe"}, KindInvalid},
		{"no job id", f.user.ID, DecisionInput{Decision: models.DecisionLike}, KindInvalid},
		{"missing job", f.user.ID, DecisionInput{JobID: 999, Decision: models.DecisionLike}, KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.RecordDecision(ctx, tt.userID, tt.in)
			if KindOf(err) != tt.kind {
				t.Fatalf("expected %s, got %v", tt.kind, err)
			}
		})
	}

	if n := countRows(t, f.store, &models.Swipe{}); n != 0 {
		t.Fatalf("failed decisions must not write, got %d swipes", n)
	}
}

// ledger counts the rows an undo may touch.
type ledger struct {
	swipes, undone, applications, failed int64
}

func snapshotLedger(t *testing.T, s *store.Store) ledger {
	t.Helper()
	var l ledger
	db := s.DB()
	if err := db.Model(&models.Swipe{}).Count(&l.swipes).Error; err != nil {
		t.Fatalf("count swipes: %v", err)
	}
	if err := db.Model(&models.Swipe{}).Where("undone_at IS NOT NULL").Count(&l.undone).Error; err != nil {
		t.Fatalf("count undone swipes: %v", err)
	}
	if err := db.Model(&models.Application{}).Count(&l.applications).Error; err != nil {
		t.Fatalf("count applications: %v", err)
	}
	if err := db.Model(&models.Application{}).Where("status = ?", models.ApplicationFailed).Count(&l.failed).Error; err != nil {
		t.Fatalf("count failed applications: %v", err)
	}
	return l
}

func TestUndoWithNothingToUndo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	before := snapshotLedger(t, f.store)
	_, err := f.service.UndoLastDecision(ctx, f.user.ID)
	if !errors.Is(err, ErrNothingToUndo) || KindOf(err) != KindNotFound {
		t.Fatalf("expected nothing to undo, got %v", err)
	}
	if after := snapshotLedger(t, f.store); after != before {
		t.Fatalf("failed undo wrote rows: %+v -> %+v", before, after)
	}

	job := storetest.Job(t, f.store, models.Job{Title: "any"})
	f.decide(t, job.ID, models.DecisionLike)
	if _, err := f.service.UndoLastDecision(ctx, f.user.ID); err != nil {
		t.Fatalf("undo: %v", err)
	}

	before = snapshotLedger(t, f.store)
	if want := (ledger{swipes: 1, undone: 1, applications: 1, failed: 1}); before != want {
		t.Fatalf("unexpected ledger after undo: %+v", before)
	}
	if _, err := f.service.UndoLastDecision(ctx, f.user.ID); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("second undo must fail, got %v", err)
	}
	if after := snapshotLedger(t, f.store); after != before {
		t.Fatalf("failed undo wrote rows: %+v -> %+v", before, after)
	}
}

func TestLikeUndoRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.profile(t, models.Profile{})
	job := storetest.Job(t, f.store, models.Job{Title: "only"})

	liked := f.decide(t, job.ID, models.DecisionLike)
	if res := f.next(t); !res.Exhausted() {
		t.Fatalf("decided job must not be re-offered, got %+v", res.Job)
	}

	undo, err := f.service.UndoLastDecision(context.Background(), f.user.ID)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if !undo.OK || undo.SwipeID != liked.SwipeID || undo.FailedApplications != 1 {
		t.Fatalf("unexpected undo result: %+v", undo)
	}

	if res := f.next(t); res.Exhausted() || res.Job.ID != job.ID {
		t.Fatalf("undone job must be offered again, got %+v", res)
	}

	apps, err := f.service.ListApplications(context.Background(), f.user.ID)
	if err != nil {
		t.Fatalf("applications: %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("expected 1 application, got %d", len(apps))
	}
	app := apps[0].Application
	if app.Status != models.ApplicationFailed || app.FailureReason == nil || *app.FailureReason != models.FailureReasonUndone {
		t.Fatalf("unexpected application after undo: %+v", app)
	}
	if app.SubmittedAt != nil {
		t.Fatalf("undo must not touch submitted_at")
	}

	history, err := f.service.ListSwipeHistory(context.Background(), f.user.ID, nil)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("undone swipes must be hidden, got %d", len(history))
	}

	f.decide(t, job.ID, models.DecisionLike)
	apps, _ = f.service.ListApplications(context.Background(), f.user.ID)
	if len(apps) != 2 || apps[0].Application.Status != models.ApplicationQueued {
		t.Fatalf("redo must queue a new application, got %+v", apps)
	}
}

func TestUndoTargetsLatestSwipeOnly(t *testing.T) {
	f := newFixture(t)
	first := storetest.Job(t, f.store, models.Job{Title: "first"})
	second := storetest.Job(t, f.store, models.Job{Title: "second"})
	ctx := context.Background()

	at := time.Now().Add(-time.Minute).UTC()
	older := &models.Swipe{UserID: f.user.ID, JobID: first.ID, Decision: models.DecisionLike, CreatedAt: at}
	newer := &models.Swipe{UserID: f.user.ID, JobID: second.ID, Decision: models.DecisionLike, CreatedAt: at}
	for _, sw := range []*models.Swipe{older, newer} {
		if err := f.store.AppendSwipe(ctx, sw); err != nil {
			t.Fatalf("append: %v", err)
		}
		if err := f.store.CreateApplication(ctx, &models.Application{UserID: f.user.ID, JobID: sw.JobID, SwipeID: &sw.ID}); err != nil {
			t.Fatalf("application: %v", err)
		}
	}

	undo, err := f.service.UndoLastDecision(ctx, f.user.ID)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if undo.SwipeID != newer.ID {
		t.Fatalf("equal timestamps must resolve to the higher id: got %d want %d", undo.SwipeID, newer.ID)
	}

	apps, err := f.service.ListApplications(ctx, f.user.ID)
	if err != nil {
		t.Fatalf("applications: %v", err)
	}
	for _, entry := range apps {
		wantFailed := *entry.Application.SwipeID == newer.ID
		if (entry.Application.Status == models.ApplicationFailed) != wantFailed {
			t.Fatalf("unexpected status for swipe %d: %s", *entry.Application.SwipeID, entry.Application.Status)
		}
	}
}

func TestConcurrentDecisionsAndUndo(t *testing.T) {
	f := newFixture(t)
	const n = 8

	jobs := make([]*models.Job, n)
	for i := range jobs {
		jobs[i] = storetest.Job(t, f.store, models.Job{Title: "job"})
	}

	var wg sync.WaitGroup
	errs := make(chan error, 2*n)
	for _, job := range jobs {
		wg.Add(2)
		go func(id uint) {
			defer wg.Done()
			_, err := f.service.RecordDecision(context.Background(), f.user.ID, DecisionInput{JobID: id, Decision: models.DecisionLike})
			errs <- err
		}(job.ID)
		go func() {
			defer wg.Done()
			_, err := f.service.UndoLastDecision(context.Background(), f.user.ID)
			if err != nil && !errors.Is(err, ErrNothingToUndo) {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent call failed: %v", err)
		}
	}

	var swipes []models.Swipe
	if err := f.store.DB().Find(&swipes).Error; err != nil {
		t.Fatalf("load swipes: %v", err)
	}
	if len(swipes) != n {
		t.Fatalf("expected %d swipes, got %d", n, len(swipes))
	}

	var apps []models.Application
	if err := f.store.DB().Find(&apps).Error; err != nil {
		t.Fatalf("load applications: %v", err)
	}
	undone := map[uint]bool{}
	for _, sw := range swipes {
		undone[sw.ID] = sw.Undone()
	}
	for _, app := range apps {
		if undone[*app.SwipeID] != (app.Status == models.ApplicationFailed) {
			t.Fatalf("application %d inconsistent with its swipe", app.ID)
		}
	}

	if f.service.locks.size() != 0 {
		t.Fatalf("user locks must be released")
	}
}
