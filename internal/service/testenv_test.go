package service

import (
	"context"
	"time"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/model"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/repository"
)

// ── 共享测试环境 ──

// testMocks 各 mock 仓储的直接引用，便于测试用例预置/断言数据
type testMocks struct {
	schoolUnit    *mockSchoolUnitRepo
	schoolYear    *mockSchoolYearRepo
	classSection  *mockClassSectionRepo
	scheduleEntry *mockScheduleEntryRepo
	calendarEvent *mockCalendarEventRepo
	enrollment    *mockEnrollmentRepo
	grade         *mockGradeRepo
}

func newTestRepo() (*repository.Repository, *testMocks) {
	mocks := &testMocks{
		schoolUnit:    newMockSchoolUnitRepo(),
		schoolYear:    newMockSchoolYearRepo(),
		classSection:  newMockClassSectionRepo(),
		scheduleEntry: newMockScheduleEntryRepo(),
		calendarEvent: newMockCalendarEventRepo(),
		enrollment:    newMockEnrollmentRepo(),
		grade:         newMockGradeRepo(),
	}
	repo := &repository.Repository{
		SchoolUnit:    mocks.schoolUnit,
		SchoolYear:    mocks.schoolYear,
		ClassSection:  mocks.classSection,
		ScheduleEntry: mocks.scheduleEntry,
		CalendarEvent: mocks.calendarEvent,
		Enrollment:    mocks.enrollment,
		Grade:         mocks.grade,
	}
	return repo, mocks
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seedSchoolYear 预置一个激活学年（2099 年，远未结束）及其 4 个评分期
func seedSchoolYear(m *testMocks) *model.SchoolYear {
	year := &model.SchoolYear{
		SchoolYearID: "year-2099",
		Year:         2099,
		StartDate:    date(2099, 2, 2),
		EndDate:      date(2099, 12, 11),
		IsActive:     true,
		Periods: []model.GradingPeriod{
			{Number: 1, StartDate: date(2099, 2, 2), EndDate: date(2099, 4, 17)},
			{Number: 2, StartDate: date(2099, 4, 20), EndDate: date(2099, 6, 30)},
			{Number: 3, StartDate: date(2099, 8, 3), EndDate: date(2099, 9, 30)},
			{Number: 4, StartDate: date(2099, 10, 1), EndDate: date(2099, 12, 11)},
		},
	}
	_ = m.schoolYear.Create(context.Background(), year)
	return year
}

// seedClass 预置一个挂在激活学年下的班级
func seedClass(m *testMocks) *model.ClassSection {
	class := &model.ClassSection{
		ClassSectionID: "class-1",
		UnitID:         "centro",
		GradeID:        "ef-8",
		ShiftID:        "matutino",
		Name:           "8º Ano A",
		SchoolYearID:   "year-2099",
	}
	m.classSection.classes[class.ClassSectionID] = class
	return class
}

// seedEnrollment 预置一条注册记录（含学生与班级关联）
func seedEnrollment(m *testMocks, class *model.ClassSection) *model.Enrollment {
	enrollment := &model.Enrollment{
		EnrollmentID:   "enr-1",
		StudentID:      "stu-1",
		ClassSectionID: class.ClassSectionID,
		SchoolYearID:   class.SchoolYearID,
		Student:        &model.Student{StudentID: "stu-1", Name: "Ana Souza"},
		ClassSection:   class,
	}
	m.enrollment.enrollments[enrollment.EnrollmentID] = enrollment
	m.grade.classOf[enrollment.EnrollmentID] = class.ClassSectionID
	return enrollment
}
