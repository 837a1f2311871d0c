package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/dto"
)

// ── 测试辅助 ──

func setupTestScheduleService() (ScheduleService, *testMocks) {
	repo, mocks := newTestRepo()
	svc := NewScheduleService(repo, nil, zap.NewNop())
	return svc, mocks
}

func validScheduleRequest() *dto.ReplaceScheduleRequest {
	return &dto.ReplaceScheduleRequest{
		Days: []dto.ScheduleDayInput{
			{
				DayOfWeek: 1,
				Slots: []dto.SubjectSlotInput{
					{Subject: "Português", StartTime: "07:30", EndTime: "08:20"},
					{Subject: "Matemática", StartTime: "08:20", EndTime: "09:10"},
				},
			},
			{
				DayOfWeek: 2,
				Slots: []dto.SubjectSlotInput{
					{Subject: "Matemática", StartTime: "07:00", EndTime: "09:00"},
				},
			},
		},
	}
}

// ── Replace 测试 ──

func TestScheduleService_Replace_Success(t *testing.T) {
	svc, mocks := setupTestScheduleService()
	seedSchoolYear(mocks)
	seedClass(mocks)

	result, err := svc.Replace(context.Background(), "class-1", validScheduleRequest(), "admin-001")
	if err != nil {
		t.Fatalf("Replace 应成功: %v", err)
	}
	if len(result.Days) != 2 {
		t.Fatalf("期望2天课表，实际=%d", len(result.Days))
	}
	if result.Days[0].DayOfWeek != 1 {
		t.Errorf("课表应按星期排序，首天期望=1，实际=%d", result.Days[0].DayOfWeek)
	}
	if len(result.Days[0].Slots) != 2 {
		t.Fatalf("周一期望2个时段，实际=%d", len(result.Days[0].Slots))
	}
	if result.Days[0].Slots[1].Position != 1 {
		t.Errorf("时段应按提交顺序编号，期望Position=1，实际=%d", result.Days[0].Slots[1].Position)
	}
}

func TestScheduleService_Replace_Overwrites(t *testing.T) {
	svc, mocks := setupTestScheduleService()
	seedSchoolYear(mocks)
	seedClass(mocks)

	if _, err := svc.Replace(context.Background(), "class-1", validScheduleRequest(), "admin-001"); err != nil {
		t.Fatalf("首次 Replace 应成功: %v", err)
	}

	// 整体替换为单日课表
	req := &dto.ReplaceScheduleRequest{
		Days: []dto.ScheduleDayInput{
			{
				DayOfWeek: 3,
				Slots: []dto.SubjectSlotInput{
					{Subject: "História", StartTime: "10:00", EndTime: "11:00"},
				},
			},
		},
	}
	result, err := svc.Replace(context.Background(), "class-1", req, "admin-001")
	if err != nil {
		t.Fatalf("再次 Replace 应成功: %v", err)
	}
	if len(result.Days) != 1 || result.Days[0].DayOfWeek != 3 {
		t.Errorf("替换应为全量覆盖，实际=%+v", result.Days)
	}
}

func TestScheduleService_Replace_Validation(t *testing.T) {
	svc, mocks := setupTestScheduleService()
	seedSchoolYear(mocks)
	seedClass(mocks)

	tests := []struct {
		name    string
		mutate  func(*dto.ReplaceScheduleRequest)
		wantErr error
	}{
		{
			name: "星期重复",
			mutate: func(r *dto.ReplaceScheduleRequest) {
				r.Days[1].DayOfWeek = 1
			},
			wantErr: ErrScheduleDayDuplicate,
		},
		{
			name: "时间格式错误",
			mutate: func(r *dto.ReplaceScheduleRequest) {
				r.Days[0].Slots[0].StartTime = "7h30"
			},
			wantErr: ErrSlotTimeInvalid,
		},
		{
			name: "结束不晚于开始",
			mutate: func(r *dto.ReplaceScheduleRequest) {
				r.Days[0].Slots[0].EndTime = "07:30"
			},
			wantErr: ErrSlotTimeInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validScheduleRequest()
			tt.mutate(req)
			if _, err := svc.Replace(context.Background(), "class-1", req, "admin-001"); !errors.Is(err, tt.wantErr) {
				t.Errorf("期望错误=%v，实际=%v", tt.wantErr, err)
			}
		})
	}
}

func TestScheduleService_Replace_ClassNotFound(t *testing.T) {
	svc, _ := setupTestScheduleService()

	if _, err := svc.Replace(context.Background(), "missing", validScheduleRequest(), "admin-001"); !errors.Is(err, ErrClassNotFound) {
		t.Errorf("期望错误=%v，实际=%v", ErrClassNotFound, err)
	}
}

// ── GetByClass 测试 ──

func TestScheduleService_GetByClass_Empty(t *testing.T) {
	svc, mocks := setupTestScheduleService()
	seedSchoolYear(mocks)
	seedClass(mocks)

	result, err := svc.GetByClass(context.Background(), "class-1")
	if err != nil {
		t.Fatalf("GetByClass 应成功: %v", err)
	}
	if len(result.Days) != 0 {
		t.Errorf("无课表班级期望空列表，实际=%d", len(result.Days))
	}
}
