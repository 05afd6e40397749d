package tui

import (
	"fmt"
	"strings"

	"github.com/py3kit/py3kit/internal/domain"
)

// RenderPatterns formats the rule catalog listing, grouped by category.
func RenderPatterns(rules []domain.Rule) string {
	if len(rules) == 0 {
		return "\n  " + dimStyle.Render("No matching patterns.") + "\n"
	}

	byCat := make(map[domain.Category][]domain.Rule)
	for _, r := range rules {
		byCat[r.Category] = append(byCat[r.Category], r)
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, cat := range domain.Categories {
		group := byCat[cat]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %s %s\n",
			titleStyle.Render(string(cat)),
			dimStyle.Render(fmt.Sprintf("(%d)", len(group))),
		)
		for _, r := range group {
			fixTag := passStyle.Render("auto")
			if !r.CanFix() {
				fixTag = warnStyle.Render("manual")
			}
			fmt.Fprintf(&b, "    %s %s  %s %s\n",
				ruleTag(padRight(r.ID, 24)),
				fixTag,
				difficultyTag(r.Difficulty),
				dimStyle.Render(r.Summary),
			)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderPattern formats one rule in full, example pair included.
func RenderPattern(r domain.Rule) string {
	var b strings.Builder
	b.WriteString("\n  " + ruleTag(r.ID) + "  " + difficultyTag(r.Difficulty))
	if !r.CanFix() {
		b.WriteString("  " + warnStyle.Render("manual fix required"))
	}
	b.WriteString("\n\n")
	b.WriteString("  " + titleStyle.Render(r.Summary) + "\n")
	b.WriteString("  " + dimStyle.Render(r.Explanation) + "\n\n")
	b.WriteString("  " + faintStyle.Render("Python 2") + "  " + codeStyle.Render(oneLine(strings.TrimRight(r.Example.Py2, "\n"))) + "\n")
	b.WriteString("  " + faintStyle.Render("Python 3") + "  " + codeStyle.Render(oneLine(strings.TrimRight(r.Example.Py3, "\n"))) + "\n")
	return b.String()
}

func difficultyTag(d domain.Difficulty) string {
	switch d {
	case domain.DifficultyEasy:
		return passStyle.Render("easy")
	case domain.DifficultyMedium:
		return warnStyle.Render("medium")
	default:
		return failStyle.Render("hard")
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
