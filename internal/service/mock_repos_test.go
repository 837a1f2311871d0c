package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/model"
)

// ── Mock SchoolUnitRepository ──

type mockSchoolUnitRepo struct {
	units []model.SchoolUnit
}

func newMockSchoolUnitRepo() *mockSchoolUnitRepo {
	return &mockSchoolUnitRepo{}
}

func (m *mockSchoolUnitRepo) List(_ context.Context) ([]model.SchoolUnit, error) {
	return m.units, nil
}

// ── Mock SchoolYearRepository ──

type mockSchoolYearRepo struct {
	years   map[string]*model.SchoolYear
	periods map[string]*model.GradingPeriod
}

func newMockSchoolYearRepo() *mockSchoolYearRepo {
	return &mockSchoolYearRepo{
		years:   make(map[string]*model.SchoolYear),
		periods: make(map[string]*model.GradingPeriod),
	}
}

func (m *mockSchoolYearRepo) Create(_ context.Context, year *model.SchoolYear) error {
	if year.SchoolYearID == "" {
		year.SchoolYearID = fmt.Sprintf("year-%d", year.Year)
	}
	for i := range year.Periods {
		p := &year.Periods[i]
		if p.GradingPeriodID == "" {
			p.GradingPeriodID = fmt.Sprintf("%s-p%d", year.SchoolYearID, p.Number)
		}
		p.SchoolYearID = year.SchoolYearID
		m.periods[p.GradingPeriodID] = p
	}
	m.years[year.SchoolYearID] = year
	return nil
}

func (m *mockSchoolYearRepo) GetByID(_ context.Context, id string) (*model.SchoolYear, error) {
	if y, ok := m.years[id]; ok {
		return y, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSchoolYearRepo) GetCurrent(_ context.Context) (*model.SchoolYear, error) {
	for _, y := range m.years {
		if y.IsActive {
			return y, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSchoolYearRepo) List(_ context.Context) ([]model.SchoolYear, error) {
	var result []model.SchoolYear
	for _, y := range m.years {
		result = append(result, *y)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Year > result[j].Year })
	return result, nil
}

func (m *mockSchoolYearRepo) Update(_ context.Context, year *model.SchoolYear) error {
	m.years[year.SchoolYearID] = year
	return nil
}

func (m *mockSchoolYearRepo) ClearActive(_ context.Context) error {
	for _, y := range m.years {
		y.IsActive = false
	}
	return nil
}

func (m *mockSchoolYearRepo) GetPeriod(_ context.Context, id string) (*model.GradingPeriod, error) {
	if p, ok := m.periods[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSchoolYearRepo) ListPeriods(_ context.Context, schoolYearID string) ([]model.GradingPeriod, error) {
	var result []model.GradingPeriod
	for _, p := range m.periods {
		if p.SchoolYearID == schoolYearID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Number < result[j].Number })
	return result, nil
}

// ── Mock ClassSectionRepository ──

type mockClassSectionRepo struct {
	classes map[string]*model.ClassSection
}

func newMockClassSectionRepo() *mockClassSectionRepo {
	return &mockClassSectionRepo{classes: make(map[string]*model.ClassSection)}
}

func (m *mockClassSectionRepo) GetByID(_ context.Context, id string) (*model.ClassSection, error) {
	if c, ok := m.classes[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassSectionRepo) ListBySchoolYear(_ context.Context, schoolYearID string) ([]model.ClassSection, error) {
	var result []model.ClassSection
	for _, c := range m.classes {
		if c.SchoolYearID == schoolYearID {
			result = append(result, *c)
		}
	}
	return result, nil
}

// ── Mock ScheduleEntryRepository ──

type mockScheduleEntryRepo struct {
	entries map[string][]model.ScheduleEntry // classSectionID → entries
}

func newMockScheduleEntryRepo() *mockScheduleEntryRepo {
	return &mockScheduleEntryRepo{entries: make(map[string][]model.ScheduleEntry)}
}

func (m *mockScheduleEntryRepo) ListByClass(_ context.Context, classSectionID string) ([]model.ScheduleEntry, error) {
	return m.entries[classSectionID], nil
}

func (m *mockScheduleEntryRepo) ReplaceByClass(_ context.Context, classSectionID string, entries []model.ScheduleEntry) error {
	for i := range entries {
		if entries[i].ScheduleEntryID == "" {
			entries[i].ScheduleEntryID = fmt.Sprintf("%s-d%d", classSectionID, entries[i].DayOfWeek)
		}
		for j := range entries[i].Slots {
			if entries[i].Slots[j].SubjectSlotID == "" {
				entries[i].Slots[j].SubjectSlotID = fmt.Sprintf("%s-s%d", entries[i].ScheduleEntryID, j)
			}
			entries[i].Slots[j].ScheduleEntryID = entries[i].ScheduleEntryID
		}
	}
	m.entries[classSectionID] = entries
	return nil
}

// ── Mock CalendarEventRepository ──

type mockCalendarEventRepo struct {
	events map[string]*model.CalendarEvent
	nextID int
}

func newMockCalendarEventRepo() *mockCalendarEventRepo {
	return &mockCalendarEventRepo{events: make(map[string]*model.CalendarEvent)}
}

func (m *mockCalendarEventRepo) Create(_ context.Context, event *model.CalendarEvent) error {
	if event.CalendarEventID == "" {
		m.nextID++
		event.CalendarEventID = fmt.Sprintf("ev-%d", m.nextID)
	}
	m.events[event.CalendarEventID] = event
	return nil
}

func (m *mockCalendarEventRepo) BatchCreate(_ context.Context, events []model.CalendarEvent) error {
	for i := range events {
		if events[i].CalendarEventID == "" {
			m.nextID++
			events[i].CalendarEventID = fmt.Sprintf("ev-%d", m.nextID)
		}
		ev := events[i]
		m.events[ev.CalendarEventID] = &ev
	}
	return nil
}

func (m *mockCalendarEventRepo) GetByID(_ context.Context, id string) (*model.CalendarEvent, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCalendarEventRepo) ListBySchoolYear(_ context.Context, schoolYearID string) ([]model.CalendarEvent, error) {
	var result []model.CalendarEvent
	for _, e := range m.events {
		if e.SchoolYearID == schoolYearID {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result, nil
}

func (m *mockCalendarEventRepo) ListByRange(_ context.Context, schoolYearID string, start, end time.Time) ([]model.CalendarEvent, error) {
	var result []model.CalendarEvent
	for _, e := range m.events {
		if e.SchoolYearID != schoolYearID {
			continue
		}
		if e.EndDate.Before(start) || e.StartDate.After(end) {
			continue
		}
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockCalendarEventRepo) Update(_ context.Context, event *model.CalendarEvent) error {
	m.events[event.CalendarEventID] = event
	return nil
}

func (m *mockCalendarEventRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.events, id)
	return nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	enrollments map[string]*model.Enrollment
}

func newMockEnrollmentRepo() *mockEnrollmentRepo {
	return &mockEnrollmentRepo{enrollments: make(map[string]*model.Enrollment)}
}

func (m *mockEnrollmentRepo) GetByID(_ context.Context, id string) (*model.Enrollment, error) {
	if e, ok := m.enrollments[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) ListByClass(_ context.Context, classSectionID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, e := range m.enrollments {
		if e.ClassSectionID == classSectionID {
			result = append(result, *e)
		}
	}
	return result, nil
}

// ── Mock GradeRepository ──

type mockGradeRepo struct {
	bimesters map[string]*model.BimesterGrade // enrollmentID:subject:bimester
	annuals   map[string]*model.AnnualGrade   // enrollmentID:subject
	classOf   map[string]string               // enrollmentID → classSectionID（ListBimestersByClass 需要）
}

func newMockGradeRepo() *mockGradeRepo {
	return &mockGradeRepo{
		bimesters: make(map[string]*model.BimesterGrade),
		annuals:   make(map[string]*model.AnnualGrade),
		classOf:   make(map[string]string),
	}
}

func bimesterKey(enrollmentID, subject string, bimester int) string {
	return fmt.Sprintf("%s:%s:%d", enrollmentID, subject, bimester)
}

func (m *mockGradeRepo) GetBimester(_ context.Context, enrollmentID, subject string, bimester int) (*model.BimesterGrade, error) {
	if g, ok := m.bimesters[bimesterKey(enrollmentID, subject, bimester)]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGradeRepo) ListBimesters(_ context.Context, enrollmentID, subject string) ([]model.BimesterGrade, error) {
	var result []model.BimesterGrade
	for _, g := range m.bimesters {
		if g.EnrollmentID == enrollmentID && g.Subject == subject {
			result = append(result, *g)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Bimester < result[j].Bimester })
	return result, nil
}

func (m *mockGradeRepo) ListBimestersByClass(_ context.Context, classSectionID string, bimester int) ([]model.BimesterGrade, error) {
	var result []model.BimesterGrade
	for _, g := range m.bimesters {
		if g.Bimester == bimester && m.classOf[g.EnrollmentID] == classSectionID {
			result = append(result, *g)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Subject < result[j].Subject })
	return result, nil
}

func (m *mockGradeRepo) SaveBimester(_ context.Context, grade *model.BimesterGrade) error {
	if grade.BimesterGradeID == "" {
		grade.BimesterGradeID = "bg-" + bimesterKey(grade.EnrollmentID, grade.Subject, grade.Bimester)
	}
	m.bimesters[bimesterKey(grade.EnrollmentID, grade.Subject, grade.Bimester)] = grade
	return nil
}

func (m *mockGradeRepo) GetAnnual(_ context.Context, enrollmentID, subject string) (*model.AnnualGrade, error) {
	if g, ok := m.annuals[enrollmentID+":"+subject]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGradeRepo) ListAnnuals(_ context.Context, enrollmentID string) ([]model.AnnualGrade, error) {
	var result []model.AnnualGrade
	for _, g := range m.annuals {
		if g.EnrollmentID == enrollmentID {
			result = append(result, *g)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Subject < result[j].Subject })
	return result, nil
}

func (m *mockGradeRepo) SaveAnnual(_ context.Context, grade *model.AnnualGrade) error {
	if grade.AnnualGradeID == "" {
		grade.AnnualGradeID = "ag-" + grade.EnrollmentID + ":" + grade.Subject
	}
	m.annuals[grade.EnrollmentID+":"+grade.Subject] = grade
	return nil
}

func (m *mockGradeRepo) ListSubjects(_ context.Context, enrollmentID string) ([]string, error) {
	seen := make(map[string]bool)
	var subjects []string
	for _, g := range m.bimesters {
		if g.EnrollmentID == enrollmentID && !seen[g.Subject] {
			seen[g.Subject] = true
			subjects = append(subjects, g.Subject)
		}
	}
	sort.Strings(subjects)
	return subjects, nil
}
