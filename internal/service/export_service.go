package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/model"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoGrades     = errors.New("该注册暂无成绩记录")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 成绩单导出面向家长/归档场景，差异报告导出面向教务排查场景
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportReportCard 导出某注册的成绩单为 Excel
	ExportReportCard(ctx context.Context, enrollmentID string) (*bytes.Buffer, string, error)
	// ExportDiscrepancies 导出某班级某双月期的考勤差异报告为 Excel
	ExportDiscrepancies(ctx context.Context, classSectionID string, bimester int) (*bytes.Buffer, string, error)
}

type exportService struct {
	grade      GradeService
	attendance AttendanceService
	logger     *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(grade GradeService, attendance AttendanceService, logger *zap.Logger) ExportService {
	return &exportService{grade: grade, attendance: attendance, logger: logger}
}

// 状态的对外葡文文案
var statusLabels = map[string]string{
	model.AnnualStatusInProgress:  "Em andamento",
	model.AnnualStatusApproved:    "Aprovado",
	model.AnnualStatusFinalMakeup: "Recuperação final",
	model.AnnualStatusFailed:      "Reprovado",
}

// ═══════════════════════════════════════════════════════════
// ExportReportCard — 导出成绩单为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "Boletim"
//   - 标题行：学生姓名 + 班级
//   - 表头：学科 | 1º Bim … 4º Bim | Média Anual | Rec. Final | Média Final | Situação
//   - 未录入的均值呈现为 "-"

func (s *exportService) ExportReportCard(ctx context.Context, enrollmentID string) (*bytes.Buffer, string, error) {
	card, err := s.grade.GetReportCard(ctx, enrollmentID)
	if err != nil {
		return nil, "", err
	}
	if len(card.Subjects) == 0 {
		return nil, "", ErrExportNoGrades
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Boletim"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 24)
	f.SetColWidth(sheetName, "B", "I", 13)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	title := fmt.Sprintf("Boletim — %s (%s)", card.StudentName, card.ClassName)
	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", "I1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	headers := []string{"Disciplina", "1º Bim", "2º Bim", "3º Bim", "4º Bim", "Média Anual", "Rec. Final", "Média Final", "Situação"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheetName, "A2", cell(colName(len(headers)-1), 2), headerStyle)

	// 数据行
	row := 3
	for _, subject := range card.Subjects {
		f.SetCellValue(sheetName, cell("A", row), subject.Subject)

		byBimester := make(map[int]*float64, len(subject.Bimesters))
		for i := range subject.Bimesters {
			byBimester[subject.Bimesters[i].Bimester] = subject.Bimesters[i].Media
		}
		for b := 1; b <= 4; b++ {
			setScoreCell(f, sheetName, cell(colName(b), row), byBimester[b])
		}

		setScoreCell(f, sheetName, cell("F", row), subject.AnnualMedia)
		setScoreCell(f, sheetName, cell("G", row), subject.FinalMakeupScore)
		setScoreCell(f, sheetName, cell("H", row), subject.FinalMedia)

		label := statusLabels[subject.Status]
		if label == "" {
			label = subject.Status
		}
		f.SetCellValue(sheetName, cell("I", row), label)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("boletim_%s.xlsx", enrollmentID)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportDiscrepancies — 导出考勤差异报告为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "Divergências"
//   - 表头：学生 | 学科 | 缺勤课时 | 推算授课课时 | 原因
//   - 估算基线（无课表）的行以 "estimativa" 标注

func (s *exportService) ExportDiscrepancies(ctx context.Context, classSectionID string, bimester int) (*bytes.Buffer, string, error) {
	report, err := s.attendance.Discrepancies(ctx, classSectionID, bimester)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Divergências"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "B", 24)
	f.SetColWidth(sheetName, "C", "E", 18)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	title := fmt.Sprintf("Divergências de frequência — %dº bimestre", bimester)
	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", "E1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	headers := []string{"Aluno", "Disciplina", "Faltas (h)", "Horas lecionadas", "Motivo"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheetName, "A2", "E2", headerStyle)

	reasonLabels := map[string]string{
		discrepancyAbsenceExceedsTaught: "Faltas excedem horas lecionadas",
		discrepancyEstimatedBaseline:    "Sem grade horária (estimativa)",
	}

	row := 3
	for _, item := range report.Items {
		f.SetCellValue(sheetName, cell("A", row), item.StudentName)
		f.SetCellValue(sheetName, cell("B", row), item.Subject)
		f.SetCellValue(sheetName, cell("C", row), item.AbsenceHours)
		if item.Estimated {
			f.SetCellValue(sheetName, cell("D", row), "estimativa")
		} else {
			f.SetCellValue(sheetName, cell("D", row), item.TaughtHours)
		}
		label := reasonLabels[item.Reason]
		if label == "" {
			label = item.Reason
		}
		f.SetCellValue(sheetName, cell("E", row), label)
		row++
	}
	if len(report.Items) == 0 {
		f.SetCellValue(sheetName, "A3", "Nenhuma divergência encontrada")
		f.MergeCell(sheetName, "A3", "E3")
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("divergencias_%s_bim%d.xlsx", classSectionID, bimester)
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// setScoreCell 写入分数单元格，未录入呈现为 "-"
func setScoreCell(f *excelize.File, sheet, axis string, v *float64) {
	if v == nil {
		f.SetCellValue(sheet, axis, "-")
		return
	}
	f.SetCellValue(sheet, axis, *v)
}
