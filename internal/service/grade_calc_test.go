package service

import (
	"testing"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/model"
)

func fptr(v float64) *float64 { return &v }
func bptr(v bool) *bool       { return &v }

func TestEvaluateBimester(t *testing.T) {
	tests := []struct {
		name     string
		score    *float64
		makeup   *float64
		expected Media
	}{
		{"均未录入", nil, nil, UngradedMedia},
		{"仅原始成绩", fptr(7.5), nil, 7.5},
		{"仅补考成绩", nil, fptr(6.0), 6.0},
		{"补考更高则覆盖", fptr(4.0), fptr(6.5), 6.5},
		{"补考相等不覆盖", fptr(5.0), fptr(5.0), 5.0},
		{"补考更低不覆盖", fptr(7.0), fptr(3.0), 7.0},
		{"补考为零不覆盖", fptr(0.0), fptr(0.0), 0.0},
		{"一位小数舍入", fptr(7.25), nil, 7.3},
		{"原始成绩为零补考为正", fptr(0.0), fptr(2.0), 2.0},
	}
	for _, tt := range tests {
		got := EvaluateBimester(tt.score, tt.makeup)
		if got != tt.expected {
			t.Errorf("%s: EvaluateBimester = %v, 期望 %v", tt.name, got, tt.expected)
		}
	}
}

func TestEvaluateBimester_Idempotent(t *testing.T) {
	score, makeup := fptr(6.3), fptr(7.1)
	first := EvaluateBimester(score, makeup)
	second := EvaluateBimester(score, makeup)
	if first != second {
		t.Errorf("相同输入两次求值结果不同: %v vs %v", first, second)
	}
}

func noSignOffs() [4]BimesterSignOff { return [4]BimesterSignOff{} }

func TestEvaluateYear_AllUngraded(t *testing.T) {
	medias := [4]Media{UngradedMedia, UngradedMedia, UngradedMedia, UngradedMedia}
	out := EvaluateYear(medias, nil, false, noSignOffs())

	if out.Status != model.AnnualStatusInProgress {
		t.Errorf("状态期望 in_progress, 实际 %s", out.Status)
	}
	if out.AnnualMedia != UngradedMedia || out.FinalMedia != UngradedMedia {
		t.Errorf("均值期望均为未录入, 实际 annual=%v final=%v", out.AnnualMedia, out.FinalMedia)
	}
	if out.Approved {
		t.Error("无成绩时不应通过签核")
	}
}

func TestEvaluateYear_DenominatorAlwaysFour(t *testing.T) {
	// 年度均值恒除以 4：[8.0, 6.0, 未录入, 未录入] → (8+6)/4 = 3.5 而非 7.0
	medias := [4]Media{8.0, 6.0, UngradedMedia, UngradedMedia}
	out := EvaluateYear(medias, nil, false, noSignOffs())

	if out.AnnualMedia != 3.5 {
		t.Errorf("年度均值期望 3.5, 实际 %v", out.AnnualMedia)
	}
	if out.Status != model.AnnualStatusInProgress {
		t.Errorf("未满四期且学年未结束期望 in_progress, 实际 %s", out.Status)
	}
}

func TestEvaluateYear_ApprovalThreshold(t *testing.T) {
	// 年度均值 7.0 → 直接及格，finalMedia = annualMedia
	medias := [4]Media{7.0, 7.0, 7.0, 7.0}
	out := EvaluateYear(medias, nil, false, noSignOffs())

	if out.Status != model.AnnualStatusApproved {
		t.Errorf("状态期望 approved, 实际 %s", out.Status)
	}
	if out.FinalMedia != out.AnnualMedia {
		t.Errorf("finalMedia 期望等于 annualMedia, 实际 %v vs %v", out.FinalMedia, out.AnnualMedia)
	}
}

func TestEvaluateYear_FinalMakeup(t *testing.T) {
	// annualMedia = 6.0，补考 4.0 → (6+4)/2 = 5.0 → 及格
	medias := [4]Media{6.0, 6.0, 6.0, 6.0}
	out := EvaluateYear(medias, fptr(4.0), false, noSignOffs())
	if out.FinalMedia != 5.0 {
		t.Errorf("finalMedia 期望 5.0, 实际 %v", out.FinalMedia)
	}
	if out.Status != model.AnnualStatusApproved {
		t.Errorf("状态期望 approved, 实际 %s", out.Status)
	}

	// 补考 2.0 → (6+2)/2 = 4.0 → 不及格
	out = EvaluateYear(medias, fptr(2.0), false, noSignOffs())
	if out.FinalMedia != 4.0 {
		t.Errorf("finalMedia 期望 4.0, 实际 %v", out.FinalMedia)
	}
	if out.Status != model.AnnualStatusFailed {
		t.Errorf("状态期望 failed, 实际 %s", out.Status)
	}
}

func TestEvaluateYear_EntersFinalMakeup(t *testing.T) {
	// 四期齐全、均值低于 7.0、无补考成绩 → 待期末补考
	medias := [4]Media{6.0, 6.0, 6.0, 6.0}
	out := EvaluateYear(medias, nil, false, noSignOffs())

	if out.Status != model.AnnualStatusFinalMakeup {
		t.Errorf("状态期望 final_makeup, 实际 %s", out.Status)
	}
	if out.FinalMedia != UngradedMedia {
		t.Errorf("finalMedia 期望未录入, 实际 %v", out.FinalMedia)
	}

	// 未满四期但学年已结束 → 同样进入待补考
	medias = [4]Media{6.0, 6.0, UngradedMedia, UngradedMedia}
	out = EvaluateYear(medias, nil, true, noSignOffs())
	if out.Status != model.AnnualStatusFinalMakeup {
		t.Errorf("学年结束后状态期望 final_makeup, 实际 %s", out.Status)
	}
}

func TestEvaluateYear_SignOffGating(t *testing.T) {
	medias := [4]Media{8.0, 8.0, 8.0, 8.0}

	// 标志缺省（nil）视为已签核
	out := EvaluateYear(medias, nil, false, noSignOffs())
	if !out.Approved {
		t.Error("签核标志缺省时应通过")
	}

	// 显式 true 同样通过
	signOffs := [4]BimesterSignOff{{Score: bptr(true), Makeup: bptr(true)}}
	out = EvaluateYear(medias, nil, false, signOffs)
	if !out.Approved {
		t.Error("显式 true 签核应通过")
	}

	// 任一显式 false 阻断
	signOffs = noSignOffs()
	signOffs[2].Makeup = bptr(false)
	out = EvaluateYear(medias, nil, false, signOffs)
	if out.Approved {
		t.Error("显式 false 签核应阻断")
	}

	// 未满四期且学年未结束 → 即使签核齐全也不通过
	partial := [4]Media{8.0, UngradedMedia, UngradedMedia, UngradedMedia}
	out = EvaluateYear(partial, nil, false, noSignOffs())
	if out.Approved {
		t.Error("未满四期且学年未结束时不应通过")
	}
}

func TestEvaluateYear_Idempotent(t *testing.T) {
	medias := [4]Media{7.2, 5.5, UngradedMedia, 8.1}
	makeup := fptr(3.3)
	first := EvaluateYear(medias, makeup, true, noSignOffs())
	second := EvaluateYear(medias, makeup, true, noSignOffs())
	if first != second {
		t.Errorf("相同输入两次求值结果不同: %+v vs %+v", first, second)
	}
}
