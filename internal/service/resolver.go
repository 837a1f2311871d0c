package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ── 标识符解析器 ──
//
// 历史系统中校区/班次/年级均以自由文本存储（展示名、大小写变体、
// 或已经是规范化 ID）。解析器把任意遗留字符串映射为规范化 ID；
// 无法匹配时返回 ok=false 而非错误——未映射的遗留数据不能阻断报表生成，
// 由调用方自行降级处理。
//
// 解析是查找表 + 少量归一化规则（大小写折叠、去变音符、分隔符切分）
// 的纯函数：无 I/O、无随机性。

// accentFolder 去变音符转换链（NFKD 分解后删除组合记号）
// NFKD 同时展开兼容字符，如 "º" → "o"、"ª" → "a"
var accentFolder = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold 归一化字符串：去首尾空白、去变音符、转小写
// 用于解析器查表与课表学科名的不区分大小写/变音符比较
func Fold(s string) string {
	folded, _, err := transform.String(accentFolder, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Resolver 标识符解析器
// 查找表的键一律存储为 Fold 后的形式
type Resolver struct {
	units  map[string]string
	shifts map[string]string
	grades map[string]string
}

// NewResolver 创建解析器并装载内置映射表
// 班次与年级为全国统一学制，内置；校区因校而异，由调用方通过
// RegisterUnit 按 school_units 表逐条注册。
func NewResolver() *Resolver {
	r := &Resolver{
		units:  make(map[string]string),
		shifts: make(map[string]string),
		grades: make(map[string]string),
	}

	// ── 班次 ──
	for legacy, id := range map[string]string{
		"manha":            "matutino",
		"matutino":         "matutino",
		"tarde":            "vespertino",
		"vespertino":       "vespertino",
		"noite":            "noturno",
		"noturno":          "noturno",
		"integral":         "integral",
		"periodo integral": "integral",
	} {
		r.shifts[legacy] = id
	}

	// ── 年级 ──
	// 幼儿段
	for legacy, id := range map[string]string{
		"maternal":  "inf-maternal",
		"jardim i":  "inf-jardim-1",
		"jardim 1":  "inf-jardim-1",
		"jardim ii": "inf-jardim-2",
		"jardim 2":  "inf-jardim-2",
	} {
		r.grades[legacy] = id
	}
	// 基础教育 1º-9º Ano（NFKD 折叠后 "8º ano" → "8o ano"）
	ordinals := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}
	for _, n := range ordinals {
		id := "ef-" + n
		r.grades[n+"o ano"] = id
		r.grades[n+" ano"] = id
		r.grades[n+"o. ano"] = id
		r.grades[id] = id
	}
	// 中等教育 1ª-3ª Série
	for _, n := range []string{"1", "2", "3"} {
		id := "em-" + n
		r.grades[n+"a serie"] = id
		r.grades[n+" serie"] = id
		r.grades[n+"a. serie"] = id
		r.grades[id] = id
	}
	// 幼儿段规范化 ID 自映射
	for _, id := range []string{"inf-maternal", "inf-jardim-1", "inf-jardim-2"} {
		r.grades[id] = id
	}
	// 班次规范化 ID 已在上表中自映射

	// ── 校区 ──
	// "all" 为校区无关事件的约定值
	r.units["all"] = "all"
	r.units["todas"] = "all"

	return r
}

// RegisterUnit 注册校区映射（遗留显示名 → 规范化代码）
// 规范化代码同时自映射，保证已规范化的输入可直接通过
func (r *Resolver) RegisterUnit(legacy, canonical string) {
	r.units[Fold(legacy)] = canonical
	r.units[Fold(canonical)] = canonical
}

// ResolveUnit 解析校区标识
func (r *Resolver) ResolveUnit(text string) (string, bool) {
	id, ok := r.units[Fold(text)]
	return id, ok
}

// ResolveShift 解析班次标识
func (r *Resolver) ResolveShift(text string) (string, bool) {
	id, ok := r.shifts[Fold(text)]
	return id, ok
}

// ResolveGrade 解析年级标识
// 直接查表失败时，按 " - " 或 " (" 切分并用前段重试，
// 以容忍 "8º Ano - Fundamental II" 这类复合字符串
func (r *Resolver) ResolveGrade(text string) (string, bool) {
	key := Fold(text)
	if id, ok := r.grades[key]; ok {
		return id, true
	}
	for _, sep := range []string{" - ", " ("} {
		if idx := strings.Index(key, sep); idx > 0 {
			if id, ok := r.grades[strings.TrimSpace(key[:idx])]; ok {
				return id, true
			}
		}
	}
	return "", false
}

// ── 学段 ──

const (
	SegmentInfantil      = "Educação Infantil"
	SegmentFundamentalI  = "Fundamental I"
	SegmentFundamentalII = "Fundamental II"
	SegmentMedio         = "Ensino Médio"
)

// SegmentForGrade 由规范化年级 ID 推导学段
func (r *Resolver) SegmentForGrade(gradeID string) (string, bool) {
	switch {
	case strings.HasPrefix(gradeID, "inf-"):
		return SegmentInfantil, true
	case strings.HasPrefix(gradeID, "em-"):
		return SegmentMedio, true
	case strings.HasPrefix(gradeID, "ef-"):
		n := strings.TrimPrefix(gradeID, "ef-")
		if n >= "1" && n <= "5" {
			return SegmentFundamentalI, true
		}
		if n >= "6" && n <= "9" {
			return SegmentFundamentalII, true
		}
	}
	return "", false
}
