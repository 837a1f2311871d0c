package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/dto"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/model"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/repository"
)

// ── 成绩模块业务错误 ──

var (
	ErrEnrollmentNotFound = errors.New("注册记录不存在")
	ErrGradeNotFound      = errors.New("成绩记录不存在")
)

// GradeService 成绩业务接口
//
// 每次写入后同步重算并落库：双月期均值、学年均值、学年判定。
// 计算本身是纯函数，落库带乐观锁，并发写入时由调用方重试。
type GradeService interface {
	UpsertBimester(ctx context.Context, enrollmentID string, req *dto.UpsertBimesterGradeRequest, callerID string) (*dto.SubjectGradesResponse, error)
	SignOff(ctx context.Context, enrollmentID string, req *dto.SignOffRequest, callerID string) (*dto.SubjectGradesResponse, error)
	SetFinalMakeup(ctx context.Context, enrollmentID string, req *dto.FinalMakeupRequest, callerID string) (*dto.SubjectGradesResponse, error)
	GetReportCard(ctx context.Context, enrollmentID string) (*dto.ReportCardResponse, error)
}

type gradeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGradeService 创建 GradeService 实例
func NewGradeService(repo *repository.Repository, logger *zap.Logger) GradeService {
	return &gradeService{repo: repo, logger: logger}
}

// ────────────────────── UpsertBimester ──────────────────────

func (s *gradeService) UpsertBimester(ctx context.Context, enrollmentID string, req *dto.UpsertBimesterGradeRequest, callerID string) (*dto.SubjectGradesResponse, error) {
	enrollment, err := s.getEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	grade, err := s.repo.Grade.GetBimester(ctx, enrollmentID, req.Subject, req.Bimester)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询双月期成绩失败", zap.Error(err))
			return nil, err
		}
		grade = &model.BimesterGrade{
			EnrollmentID: enrollmentID,
			Subject:      req.Subject,
			Bimester:     req.Bimester,
		}
		grade.CreatedBy = auditRef(callerID)
	}

	// 传 null 即清除，录入口径以本次请求为准
	grade.Score = req.Score
	grade.MakeupScore = req.MakeupScore
	if req.AbsenceHours != nil {
		grade.AbsenceHours = *req.AbsenceHours
	}
	grade.Media = float64(EvaluateBimester(grade.Score, grade.MakeupScore))
	grade.UpdatedBy = auditRef(callerID)

	if err := s.repo.Grade.SaveBimester(ctx, grade); err != nil {
		s.logger.Error("保存双月期成绩失败",
			zap.String("enrollment_id", enrollmentID),
			zap.String("subject", req.Subject),
			zap.Int("bimester", req.Bimester),
			zap.Error(err))
		return nil, err
	}

	return s.recomputeAnnual(ctx, enrollment, req.Subject, callerID)
}

// ────────────────────── SignOff ──────────────────────

func (s *gradeService) SignOff(ctx context.Context, enrollmentID string, req *dto.SignOffRequest, callerID string) (*dto.SubjectGradesResponse, error) {
	enrollment, err := s.getEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	grade, err := s.repo.Grade.GetBimester(ctx, enrollmentID, req.Subject, req.Bimester)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGradeNotFound
		}
		s.logger.Error("查询双月期成绩失败", zap.Error(err))
		return nil, err
	}

	grade.ScoreSignedOff = req.ScoreSignedOff
	grade.MakeupSignedOff = req.MakeupSignedOff
	grade.UpdatedBy = auditRef(callerID)

	if err := s.repo.Grade.SaveBimester(ctx, grade); err != nil {
		s.logger.Error("保存签核标志失败",
			zap.String("enrollment_id", enrollmentID),
			zap.String("subject", req.Subject),
			zap.Error(err))
		return nil, err
	}

	return s.recomputeAnnual(ctx, enrollment, req.Subject, callerID)
}

// ────────────────────── SetFinalMakeup ──────────────────────

func (s *gradeService) SetFinalMakeup(ctx context.Context, enrollmentID string, req *dto.FinalMakeupRequest, callerID string) (*dto.SubjectGradesResponse, error) {
	enrollment, err := s.getEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	annual, err := s.repo.Grade.GetAnnual(ctx, enrollmentID, req.Subject)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询学年成绩失败", zap.Error(err))
			return nil, err
		}
		annual = &model.AnnualGrade{
			EnrollmentID: enrollmentID,
			Subject:      req.Subject,
		}
		annual.CreatedBy = auditRef(callerID)
	}

	annual.FinalMakeupScore = req.Score
	annual.UpdatedBy = auditRef(callerID)

	if err := s.repo.Grade.SaveAnnual(ctx, annual); err != nil {
		s.logger.Error("保存期末补考成绩失败",
			zap.String("enrollment_id", enrollmentID),
			zap.String("subject", req.Subject),
			zap.Error(err))
		return nil, err
	}

	return s.recomputeAnnual(ctx, enrollment, req.Subject, callerID)
}

// ────────────────────── GetReportCard ──────────────────────

func (s *gradeService) GetReportCard(ctx context.Context, enrollmentID string) (*dto.ReportCardResponse, error) {
	enrollment, err := s.getEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	subjects, err := s.repo.Grade.ListSubjects(ctx, enrollmentID)
	if err != nil {
		s.logger.Error("查询学科列表失败", zap.String("enrollment_id", enrollmentID), zap.Error(err))
		return nil, err
	}

	resp := &dto.ReportCardResponse{
		EnrollmentID: enrollmentID,
		Subjects:     make([]dto.SubjectGradesResponse, 0, len(subjects)),
	}
	if enrollment.Student != nil {
		resp.StudentName = enrollment.Student.Name
	}
	if enrollment.ClassSection != nil {
		resp.ClassName = enrollment.ClassSection.Name
	}

	for _, subject := range subjects {
		sg, err := s.subjectGrades(ctx, enrollment, subject)
		if err != nil {
			return nil, err
		}
		resp.Subjects = append(resp.Subjects, *sg)
	}
	return resp, nil
}

// ────────────────────── 内部辅助 ──────────────────────

func (s *gradeService) getEnrollment(ctx context.Context, id string) (*model.Enrollment, error) {
	enrollment, err := s.repo.Enrollment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		s.logger.Error("查询注册记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return enrollment, nil
}

// yearFinished 学年是否已结束（按学年结束日期判断）
func (s *gradeService) yearFinished(ctx context.Context, schoolYearID string) (bool, error) {
	year, err := s.repo.SchoolYear.GetByID(ctx, schoolYearID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrSchoolYearNotFound
		}
		s.logger.Error("查询学年失败", zap.String("id", schoolYearID), zap.Error(err))
		return false, err
	}
	today := model.DateOnly(time.Now())
	return today.After(model.DateOnly(year.EndDate)), nil
}

// recomputeAnnual 重算并落库某注册/学科的学年判定，返回该学科的完整成绩视图
func (s *gradeService) recomputeAnnual(ctx context.Context, enrollment *model.Enrollment, subject string, callerID string) (*dto.SubjectGradesResponse, error) {
	bimesters, err := s.repo.Grade.ListBimesters(ctx, enrollment.EnrollmentID, subject)
	if err != nil {
		s.logger.Error("查询双月期成绩失败", zap.Error(err))
		return nil, err
	}

	finished, err := s.yearFinished(ctx, enrollment.SchoolYearID)
	if err != nil {
		return nil, err
	}

	annual, err := s.repo.Grade.GetAnnual(ctx, enrollment.EnrollmentID, subject)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询学年成绩失败", zap.Error(err))
			return nil, err
		}
		annual = &model.AnnualGrade{
			EnrollmentID: enrollment.EnrollmentID,
			Subject:      subject,
		}
		annual.CreatedBy = auditRef(callerID)
	}

	medias, signOffs := collectBimesters(bimesters)
	outcome := EvaluateYear(medias, annual.FinalMakeupScore, finished, signOffs)

	annual.AnnualMedia = float64(outcome.AnnualMedia)
	annual.FinalMedia = float64(outcome.FinalMedia)
	annual.Status = outcome.Status
	annual.AnnualMediaApproved = outcome.Approved
	annual.UpdatedBy = auditRef(callerID)

	if err := s.repo.Grade.SaveAnnual(ctx, annual); err != nil {
		s.logger.Error("保存学年判定失败",
			zap.String("enrollment_id", enrollment.EnrollmentID),
			zap.String("subject", subject),
			zap.Error(err))
		return nil, err
	}

	return toSubjectGradesResponse(subject, bimesters, annual), nil
}

// subjectGrades 组装某学科的完整成绩视图（只读，不重算）
func (s *gradeService) subjectGrades(ctx context.Context, enrollment *model.Enrollment, subject string) (*dto.SubjectGradesResponse, error) {
	bimesters, err := s.repo.Grade.ListBimesters(ctx, enrollment.EnrollmentID, subject)
	if err != nil {
		s.logger.Error("查询双月期成绩失败", zap.Error(err))
		return nil, err
	}

	annual, err := s.repo.Grade.GetAnnual(ctx, enrollment.EnrollmentID, subject)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询学年成绩失败", zap.Error(err))
			return nil, err
		}
		annual = &model.AnnualGrade{
			EnrollmentID: enrollment.EnrollmentID,
			Subject:      subject,
			AnnualMedia:  model.MediaUngraded,
			FinalMedia:   model.MediaUngraded,
			Status:       model.AnnualStatusInProgress,
		}
	}
	return toSubjectGradesResponse(subject, bimesters, annual), nil
}

// collectBimesters 将成绩记录铺入定长数组（缺期保持未录入哨兵）
func collectBimesters(bimesters []model.BimesterGrade) ([4]Media, [4]BimesterSignOff) {
	medias := [4]Media{UngradedMedia, UngradedMedia, UngradedMedia, UngradedMedia}
	var signOffs [4]BimesterSignOff
	for i := range bimesters {
		b := &bimesters[i]
		if b.Bimester < 1 || b.Bimester > 4 {
			continue
		}
		medias[b.Bimester-1] = EvaluateBimester(b.Score, b.MakeupScore)
		signOffs[b.Bimester-1] = BimesterSignOff{Score: b.ScoreSignedOff, Makeup: b.MakeupSignedOff}
	}
	return medias, signOffs
}

// toSubjectGradesResponse 模型 → 响应转换
func toSubjectGradesResponse(subject string, bimesters []model.BimesterGrade, annual *model.AnnualGrade) *dto.SubjectGradesResponse {
	resp := &dto.SubjectGradesResponse{
		Subject:          subject,
		Bimesters:        make([]dto.BimesterGradeResponse, 0, len(bimesters)),
		AnnualMedia:      mediaPtr(annual.AnnualMedia),
		FinalMedia:       mediaPtr(annual.FinalMedia),
		FinalMakeupScore: annual.FinalMakeupScore,
		Status:           annual.Status,
		Approved:         annual.AnnualMediaApproved,
	}
	for i := range bimesters {
		b := &bimesters[i]
		resp.Bimesters = append(resp.Bimesters, dto.BimesterGradeResponse{
			Bimester:        b.Bimester,
			Score:           b.Score,
			MakeupScore:     b.MakeupScore,
			Media:           mediaPtr(b.Media),
			AbsenceHours:    b.AbsenceHours,
			ScoreSignedOff:  b.ScoreSignedOff,
			MakeupSignedOff: b.MakeupSignedOff,
		})
	}
	return resp
}

// mediaPtr 哨兵值 → null，落库表示与对外表示在此分界
func mediaPtr(v float64) *float64 {
	if v == model.MediaUngraded {
		return nil
	}
	return &v
}
