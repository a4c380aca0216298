package tui

import (
	"fmt"
	"strings"

	"github.com/ersonp/quill/internal/domain/entities"
)

const trendBarWidth = 20

func renderDetail(e entities.Excerpt, query string) string {
	var b strings.Builder
	b.WriteString(accentStyle.Render(e.Date))
	if source := sourceLine(e); source != "" {
		b.WriteString("  " + highlight(source, query))
	}
	b.WriteString("\n\n")
	b.WriteString(highlight(e.Content, query))
	b.WriteString("\n")

	if e.Annotation != "" {
		b.WriteString("\n" + mutedStyle.Render("批注：") + "\n")
		b.WriteString(highlight(e.Annotation, query))
		b.WriteString("\n")
	}
	if len(e.Tags) > 0 {
		tags := make([]string, len(e.Tags))
		for i, t := range e.Tags {
			tags[i] = "#" + t
		}
		b.WriteString("\n" + accentStyle.Render(strings.Join(tags, " ")) + "\n")
	}

	b.WriteString("\n" + mutedStyle.Render("id: "+e.ID))
	return b.String()
}

func renderStats(s entities.Statistics) string {
	var b strings.Builder
	b.WriteString(accentStyle.Render("统计") + "\n\n")
	fmt.Fprintf(&b, "总摘抄数  %d\n", s.TotalExcerpts)
	fmt.Fprintf(&b, "总字数    %d\n", s.TotalWords)
	fmt.Fprintf(&b, "总字符数  %d\n", s.TotalCharacters)

	if s.TotalExcerpts == 0 {
		return b.String()
	}

	b.WriteString("\n" + mutedStyle.Render("热门作者") + "\n")
	for _, a := range s.TopAuthors {
		fmt.Fprintf(&b, "  %-20s %d\n", a.Author, a.Count)
	}

	b.WriteString("\n" + mutedStyle.Render("热门作品") + "\n")
	for _, w := range s.TopWorks {
		fmt.Fprintf(&b, "  %-20s %d\n", w.Work, w.Count)
	}

	if len(s.TopTags) > 0 {
		b.WriteString("\n" + mutedStyle.Render("常用标签") + "\n  ")
		tags := make([]string, len(s.TopTags))
		for i, t := range s.TopTags {
			tags[i] = fmt.Sprintf("#%s(%d)", t.Tag, t.Count)
		}
		b.WriteString(strings.Join(tags, " ") + "\n")
	}

	if len(s.CreationTrend) > 0 {
		b.WriteString("\n" + mutedStyle.Render("创建趋势") + "\n")
		b.WriteString(renderTrend(s.CreationTrend))
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderTrend(days []entities.DayCount) string {
	peak := 0
	for _, d := range days {
		peak = max(peak, d.Count)
	}

	var b strings.Builder
	for _, d := range days {
		width := max(1, d.Count*trendBarWidth/peak)
		fmt.Fprintf(&b, "  %s %s %d\n", d.Date, strings.Repeat("█", width), d.Count)
	}
	return b.String()
}

func renderHelp() string {
	rows := []struct{ key, action string }{
		{"/", "搜索"},
		{"esc", "退出搜索 / 关闭面板"},
		{"enter", "查看摘抄"},
		{"j k ↑ ↓", "移动"},
		{"g G", "第一条 / 最后一条"},
		{"s", "切换排序"},
		{"d", "删除摘抄"},
		{"ctrl+s", "统计"},
		{"?", "帮助"},
		{"q ctrl+c", "退出"},
	}

	var b strings.Builder
	b.WriteString(accentStyle.Render("快捷键") + "\n\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "  %-10s %s\n", r.key, r.action)
	}
	b.WriteString("\n" + mutedStyle.Render("添加或编辑摘抄请使用 quill add / quill edit"))
	return b.String()
}
