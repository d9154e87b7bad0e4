package domain

import (
	"strings"
	"unicode"
)

// Lexicon 叙述类字段的异常关键词表
// 政治考核、镇街走访、骨干谈心共用基础词表；
// 日常统计的三个叙述字段额外检查 daily 扩展词。
// 匹配为子串匹配，对原文做大小写和标点归一化后比较（宁可误报，不可漏报）。
type Lexicon struct {
	base  []string
	daily []string
}

// DefaultLexicon 固定的全局关键词表，所有叙述类分类规则注入同一份
func DefaultLexicon() *Lexicon {
	base := []string{
		"异常",
		"问题",
		"消极",
		"抵触",
		"不良",
		"困难",
		"担心",
		"焦虑",
		"抑郁",
		"差",
	}
	daily := append([]string{
		"生病",
		"受伤",
		"紧张",
	}, base...)
	return &Lexicon{base: base, daily: daily}
}

// MatchBase 基础词表子串匹配（政治考核/两类谈话）
func (l *Lexicon) MatchBase(text string) bool {
	return match(text, l.base)
}

// MatchDaily 日常统计叙述字段用的扩展词表匹配
func (l *Lexicon) MatchDaily(text string) bool {
	return match(text, l.daily)
}

func match(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	normalized := normalizeText(text)
	if normalized == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

// normalizeText 归一化：转小写，去掉标点、符号和空白
// 关键词本身为纯汉字，不受归一化影响
func normalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
