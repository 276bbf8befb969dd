package certificate

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tsegazeab/timhirt/core"
	"github.com/tsegazeab/timhirt/core/grading"
	"github.com/tsegazeab/timhirt/core/user"
)

var (
	// errors
	ErrNotFound = errors.New("certificate not found")
)

type (
	Repository interface {
		CreateAward(a Award) (Award, error)
		QueryStudentAwards(studentID string) ([]Award, error)
	}

	// SubmissionSource supplies graded work; satisfied by grading.Service.
	SubmissionSource interface {
		FilterSubmissions(filter grading.QueryFilter) ([]grading.Submission, error)
		GetAssignmentsByID(ids ...string) (map[string]grading.Assignment, error)
	}

	// AttendanceSource supplies windowed attendance aggregates; satisfied by
	// attendance.Service.
	AttendanceSource interface {
		ActiveDays(studentID string, windowDays int, asOf time.Time) (int, error)
	}

	// UserSource resolves students for award notifications; satisfied by
	// user.Service.
	UserSource interface {
		GetByID(id string) (user.User, error)
	}

	Service interface {
		// EvaluateStudent runs all eligibility rules for a student and
		// persists the resulting awards. Rules are isolated: a failure in one
		// rule's data fetch or persistence yields no award for that rule but
		// does not stop the others.
		EvaluateStudent(studentID string) ([]Award, error)
		QueryStudent(studentID string) ([]Award, error)
	}

	service struct {
		repo    Repository
		subs    SubmissionSource
		att     AttendanceSource
		users   UserSource
		mailSvc core.EmailService
		logger  core.Logger
	}
)

var (
	_ Service = (*service)(nil)

	nowFunc = time.Now // mockable
)

func NewService(
	repo Repository,
	subs SubmissionSource,
	att AttendanceSource,
	users UserSource,
	mailSvc core.EmailService,
	logger core.Logger,
) Service {
	return &service{
		repo:    repo,
		subs:    subs,
		att:     att,
		users:   users,
		mailSvc: mailSvc,
		logger:  logger,
	}
}

func (svc *service) QueryStudent(studentID string) ([]Award, error) {
	return svc.repo.QueryStudentAwards(studentID)
}

func (svc *service) EvaluateStudent(studentID string) ([]Award, error) {
	now := nowFunc().UTC()

	rules := []struct {
		typ  string
		eval func() (Award, bool, error)
	}{
		{TypeTopPerformer, func() (Award, bool, error) { return svc.topPerformer(studentID, now) }},
		{TypePerfectAttendance, func() (Award, bool, error) { return svc.perfectAttendance(studentID, now) }},
		{TypeHomeworkHero, func() (Award, bool, error) { return svc.homeworkHero(studentID, now) }},
	}

	awards := make([]Award, 0, len(rules))
	for _, rule := range rules {
		award, ok, err := rule.eval()
		if err != nil {
			// a failed rule yields no award; siblings still run
			svc.logger.Error(fmt.Sprintf("evaluating %s for student %s: %v", rule.typ, studentID, err), err)
			continue
		}
		if !ok {
			continue
		}

		award.ID = uuid.New().String()
		award.StudentID = studentID
		award.CreatedAt = now
		award, err = svc.repo.CreateAward(award)
		if err != nil {
			svc.logger.Error(fmt.Sprintf("persisting %s for student %s: %v", rule.typ, studentID, err), err)
			continue
		}
		awards = append(awards, award)
		svc.notify(award)
	}
	return awards, nil
}

func (svc *service) topPerformer(studentID string, now time.Time) (Award, bool, error) {
	subs, err := svc.studentSubmissions(studentID, now, topPerformerWindowDays)
	if err != nil {
		return Award{}, false, err
	}
	award, ok := evalTopPerformer(subs, now)
	return award, ok, nil
}

func (svc *service) perfectAttendance(studentID string, now time.Time) (Award, bool, error) {
	daysActive, err := svc.att.ActiveDays(studentID, perfectAttendanceWindowDays, now)
	if err != nil {
		return Award{}, false, errors.Wrap(err, "counting active days")
	}
	award, ok := evalPerfectAttendance(daysActive, now)
	return award, ok, nil
}

func (svc *service) homeworkHero(studentID string, now time.Time) (Award, bool, error) {
	subs, err := svc.studentSubmissions(studentID, now, homeworkHeroWindowDays)
	if err != nil {
		return Award{}, false, err
	}

	ids := make([]string, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.AssignmentID)
	}
	assignments, err := svc.subs.GetAssignmentsByID(ids...)
	if err != nil {
		return Award{}, false, errors.Wrap(err, "fetching assignments")
	}

	award, ok := evalHomeworkHero(subs, assignments, now)
	return award, ok, nil
}

func (svc *service) studentSubmissions(studentID string, now time.Time, windowDays int) ([]grading.Submission, error) {
	subs, err := svc.subs.FilterSubmissions(grading.QueryFilter{
		StudentID:     studentID,
		SubmittedFrom: now.AddDate(0, 0, -windowDays),
		SubmittedTo:   now,
	})
	if err != nil {
		return nil, errors.Wrap(err, "fetching submissions")
	}
	return subs, nil
}

// notify sends the student a best-effort award email.
func (svc *service) notify(award Award) {
	if svc.users == nil || svc.mailSvc == nil {
		return
	}
	usr, err := svc.users.GetByID(award.StudentID)
	if err != nil {
		svc.logger.Warn(fmt.Sprintf("resolving student %s for award mail: %v", award.StudentID, err), err)
		return
	}
	svc.mailSvc.SendMessages(
		&core.EmailMessage{
			To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
			Subject:      "You earned a certificate!",
			TemplateName: "certificate-award",
			TemplateData: struct {
				User  user.User
				Award Award
			}{usr, award},
		},
	)
}
