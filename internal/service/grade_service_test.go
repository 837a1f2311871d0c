package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/dto"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/model"
)

// ── 测试辅助 ──

func setupTestGradeService() (GradeService, *testMocks) {
	repo, mocks := newTestRepo()
	seedSchoolYear(mocks)
	class := seedClass(mocks)
	seedEnrollment(mocks, class)
	return NewGradeService(repo, zap.NewNop()), mocks
}

func upsertScore(t *testing.T, svc GradeService, bimester int, score float64) *dto.SubjectGradesResponse {
	t.Helper()
	result, err := svc.UpsertBimester(context.Background(), "enr-1", &dto.UpsertBimesterGradeRequest{
		Subject:  "Matemática",
		Bimester: bimester,
		Score:    fptr(score),
	}, "prof-001")
	if err != nil {
		t.Fatalf("UpsertBimester 应成功: %v", err)
	}
	return result
}

// ── UpsertBimester 测试 ──

func TestGradeService_UpsertBimester_ComputesMedia(t *testing.T) {
	svc, _ := setupTestGradeService()

	result := upsertScore(t, svc, 1, 6.0)

	if len(result.Bimesters) != 1 {
		t.Fatalf("期望1条双月期记录，实际=%d", len(result.Bimesters))
	}
	b := result.Bimesters[0]
	if b.Media == nil || *b.Media != 6.0 {
		t.Errorf("期望Media=6.0，实际=%v", b.Media)
	}
	// 年度均值恒除以 4：6/4 = 1.5
	if result.AnnualMedia == nil || *result.AnnualMedia != 1.5 {
		t.Errorf("期望AnnualMedia=1.5，实际=%v", result.AnnualMedia)
	}
	if result.Status != model.AnnualStatusInProgress {
		t.Errorf("期望Status=in_progress，实际=%s", result.Status)
	}
}

func TestGradeService_UpsertBimester_MakeupRules(t *testing.T) {
	svc, _ := setupTestGradeService()

	tests := []struct {
		name      string
		score     *float64
		makeup    *float64
		wantMedia float64
	}{
		{"补考更高则覆盖", fptr(4.0), fptr(6.5), 6.5},
		{"补考更低则保留原分", fptr(5.0), fptr(3.0), 5.0},
		{"补考为零不覆盖", nil, fptr(0.0), 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.UpsertBimester(context.Background(), "enr-1", &dto.UpsertBimesterGradeRequest{
				Subject:     "Matemática",
				Bimester:    1,
				Score:       tt.score,
				MakeupScore: tt.makeup,
			}, "prof-001")
			if err != nil {
				t.Fatalf("UpsertBimester 应成功: %v", err)
			}
			b := result.Bimesters[0]
			if b.Media == nil || *b.Media != tt.wantMedia {
				t.Errorf("期望Media=%v，实际=%v", tt.wantMedia, b.Media)
			}
		})
	}
}

func TestGradeService_UpsertBimester_NullClears(t *testing.T) {
	svc, _ := setupTestGradeService()

	upsertScore(t, svc, 1, 6.0)

	result, err := svc.UpsertBimester(context.Background(), "enr-1", &dto.UpsertBimesterGradeRequest{
		Subject:  "Matemática",
		Bimester: 1,
	}, "prof-001")
	if err != nil {
		t.Fatalf("UpsertBimester 应成功: %v", err)
	}
	if result.Bimesters[0].Media != nil {
		t.Errorf("清除两项成绩后期望Media=null，实际=%v", *result.Bimesters[0].Media)
	}
	if result.AnnualMedia != nil {
		t.Errorf("无有效均值时期望AnnualMedia=null，实际=%v", *result.AnnualMedia)
	}
}

func TestGradeService_UpsertBimester_EnrollmentNotFound(t *testing.T) {
	svc, _ := setupTestGradeService()

	_, err := svc.UpsertBimester(context.Background(), "missing", &dto.UpsertBimesterGradeRequest{
		Subject:  "Matemática",
		Bimester: 1,
		Score:    fptr(6.0),
	}, "prof-001")
	if !errors.Is(err, ErrEnrollmentNotFound) {
		t.Errorf("期望错误=%v，实际=%v", ErrEnrollmentNotFound, err)
	}
}

// ── 学年判定链路测试 ──

func TestGradeService_FourBimesters_Approved(t *testing.T) {
	svc, _ := setupTestGradeService()

	var result *dto.SubjectGradesResponse
	for b := 1; b <= 4; b++ {
		result = upsertScore(t, svc, b, 8.0)
	}

	if result.AnnualMedia == nil || *result.AnnualMedia != 8.0 {
		t.Errorf("期望AnnualMedia=8.0，实际=%v", result.AnnualMedia)
	}
	if result.Status != model.AnnualStatusApproved {
		t.Errorf("期望Status=approved，实际=%s", result.Status)
	}
	if !result.Approved {
		t.Error("四期齐备且无签核阻断时 Approved 应为 true")
	}
}

func TestGradeService_SignOff_FalseBlocksApproval(t *testing.T) {
	svc, _ := setupTestGradeService()

	for b := 1; b <= 4; b++ {
		upsertScore(t, svc, b, 8.0)
	}

	result, err := svc.SignOff(context.Background(), "enr-1", &dto.SignOffRequest{
		Subject:        "Matemática",
		Bimester:       2,
		ScoreSignedOff: bptr(false),
	}, "coord-001")
	if err != nil {
		t.Fatalf("SignOff 应成功: %v", err)
	}
	if result.Approved {
		t.Error("显式 false 签核应阻断 Approved")
	}
	// 成绩判定本身不受签核影响
	if result.Status != model.AnnualStatusApproved {
		t.Errorf("期望Status=approved，实际=%s", result.Status)
	}
}

func TestGradeService_SignOff_GradeNotFound(t *testing.T) {
	svc, _ := setupTestGradeService()

	_, err := svc.SignOff(context.Background(), "enr-1", &dto.SignOffRequest{
		Subject:        "Matemática",
		Bimester:       1,
		ScoreSignedOff: bptr(true),
	}, "coord-001")
	if !errors.Is(err, ErrGradeNotFound) {
		t.Errorf("期望错误=%v，实际=%v", ErrGradeNotFound, err)
	}
}

func TestGradeService_FinalMakeup_Flow(t *testing.T) {
	svc, _ := setupTestGradeService()

	var result *dto.SubjectGradesResponse
	for b := 1; b <= 4; b++ {
		result = upsertScore(t, svc, b, 5.0)
	}

	// 年度均值 5.0 < 7.0 且四期齐备 → 待期末补考
	if result.Status != model.AnnualStatusFinalMakeup {
		t.Errorf("期望Status=final_makeup，实际=%s", result.Status)
	}

	result, err := svc.SetFinalMakeup(context.Background(), "enr-1", &dto.FinalMakeupRequest{
		Subject: "Matemática",
		Score:   fptr(6.0),
	}, "coord-001")
	if err != nil {
		t.Fatalf("SetFinalMakeup 应成功: %v", err)
	}
	// (5.0 + 6.0) / 2 = 5.5 ≥ 5.0 → 及格
	if result.FinalMedia == nil || *result.FinalMedia != 5.5 {
		t.Errorf("期望FinalMedia=5.5，实际=%v", result.FinalMedia)
	}
	if result.Status != model.AnnualStatusApproved {
		t.Errorf("期望Status=approved，实际=%s", result.Status)
	}
}

func TestGradeService_FinalMakeup_StillFailing(t *testing.T) {
	svc, _ := setupTestGradeService()

	for b := 1; b <= 4; b++ {
		upsertScore(t, svc, b, 3.0)
	}

	result, err := svc.SetFinalMakeup(context.Background(), "enr-1", &dto.FinalMakeupRequest{
		Subject: "Matemática",
		Score:   fptr(4.0),
	}, "coord-001")
	if err != nil {
		t.Fatalf("SetFinalMakeup 应成功: %v", err)
	}
	// (3.0 + 4.0) / 2 = 3.5 < 5.0 → 不及格
	if result.Status != model.AnnualStatusFailed {
		t.Errorf("期望Status=failed，实际=%s", result.Status)
	}
}

// ── GetReportCard 测试 ──

func TestGradeService_GetReportCard(t *testing.T) {
	svc, _ := setupTestGradeService()

	upsertScore(t, svc, 1, 7.0)
	if _, err := svc.UpsertBimester(context.Background(), "enr-1", &dto.UpsertBimesterGradeRequest{
		Subject:  "Português",
		Bimester: 1,
		Score:    fptr(9.0),
	}, "prof-001"); err != nil {
		t.Fatalf("UpsertBimester 应成功: %v", err)
	}

	card, err := svc.GetReportCard(context.Background(), "enr-1")
	if err != nil {
		t.Fatalf("GetReportCard 应成功: %v", err)
	}
	if card.StudentName != "Ana Souza" {
		t.Errorf("期望StudentName=Ana Souza，实际=%s", card.StudentName)
	}
	if card.ClassName != "8º Ano A" {
		t.Errorf("期望ClassName=8º Ano A，实际=%s", card.ClassName)
	}
	if len(card.Subjects) != 2 {
		t.Fatalf("期望2个学科，实际=%d", len(card.Subjects))
	}
	// 学科按名称排序
	if card.Subjects[0].Subject != "Matemática" {
		t.Errorf("期望首个学科=Matemática，实际=%s", card.Subjects[0].Subject)
	}
}
