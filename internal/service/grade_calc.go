package service

import (
	"math"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/model"
)

// ── 成绩计算 ──
//
// 纯函数：相同输入必然产生相同输出，每个学生/学科的计算相互独立。

// Media 成绩均值。定义专用类型，使"未录入"哨兵值（-1）的算术
// 必须经过显式转换，避免误把哨兵当普通分数参与运算。
type Media float64

// UngradedMedia 未录入哨兵
const UngradedMedia Media = model.MediaUngraded

// Graded 是否已录入
func (m Media) Graded() bool { return m != UngradedMedia }

// round1 四舍五入到一位小数
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// EvaluateBimester 计算单个评分期的均值
//
// 两者均未录入 → UngradedMedia。
// 补考成绩仅在存在、大于零且严格高于原始成绩时覆盖原始成绩。
func EvaluateBimester(score, makeupScore *float64) Media {
	if score == nil && makeupScore == nil {
		return UngradedMedia
	}
	effectiveScore := 0.0
	if score != nil {
		effectiveScore = *score
	}
	effectiveMakeup := 0.0
	if makeupScore != nil {
		effectiveMakeup = *makeupScore
	}
	if effectiveMakeup > 0 && effectiveMakeup > effectiveScore {
		return Media(round1(effectiveMakeup))
	}
	return Media(round1(effectiveScore))
}

// BimesterSignOff 双月期人工签核标志
// nil 视为已签核，仅显式 false 阻断学年审批
type BimesterSignOff struct {
	Score  *bool
	Makeup *bool
}

// blocked 是否存在显式 false
func (s BimesterSignOff) blocked() bool {
	return (s.Score != nil && !*s.Score) || (s.Makeup != nil && !*s.Makeup)
}

// AnnualOutcome 学年成绩判定结果
type AnnualOutcome struct {
	AnnualMedia Media
	FinalMedia  Media
	Status      string // model.AnnualStatus*
	Approved    bool   // 年度均值是否通过人工签核门槛
}

// 及格线
const (
	annualApprovalThreshold = 7.0 // 年度均值直接及格线
	finalApprovalThreshold  = 5.0 // 期末补考后及格线
)

// EvaluateYear 聚合四个评分期均值（及可选的期末补考成绩）为学年判定
//
// 年度均值恒除以 4，而非已录入期数：未录入的评分期按零权重计入分母。
// 这是刻意的校政——学年未完之前的滚动均值有意保守——而非缺陷。
func EvaluateYear(medias [4]Media, finalMakeup *float64, yearFinished bool, signOffs [4]BimesterSignOff) AnnualOutcome {
	sum := 0.0
	validCount := 0
	for _, m := range medias {
		if m.Graded() {
			sum += float64(m)
			validCount++
		}
	}

	if validCount == 0 {
		return AnnualOutcome{
			AnnualMedia: UngradedMedia,
			FinalMedia:  UngradedMedia,
			Status:      model.AnnualStatusInProgress,
		}
	}

	hasAllFour := validCount == 4
	annualMedia := round1(sum / 4)

	outcome := AnnualOutcome{AnnualMedia: Media(annualMedia)}

	switch {
	case annualMedia >= annualApprovalThreshold:
		outcome.Status = model.AnnualStatusApproved
		outcome.FinalMedia = Media(annualMedia)
	case finalMakeup != nil:
		finalMedia := round1((annualMedia + *finalMakeup) / 2)
		outcome.FinalMedia = Media(finalMedia)
		if finalMedia >= finalApprovalThreshold {
			outcome.Status = model.AnnualStatusApproved
		} else {
			outcome.Status = model.AnnualStatusFailed
		}
	case hasAllFour || yearFinished:
		outcome.Status = model.AnnualStatusFinalMakeup
		outcome.FinalMedia = UngradedMedia
	default:
		outcome.Status = model.AnnualStatusInProgress
		outcome.FinalMedia = UngradedMedia
	}

	if hasAllFour || yearFinished {
		approved := true
		for _, s := range signOffs {
			if s.blocked() {
				approved = false
				break
			}
		}
		outcome.Approved = approved
	}

	return outcome
}
