package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sportseek/internal/domain"
)

// CardHeight is the number of lines one result occupies, gap included
const CardHeight = 4

// ResultRenderer handles rendering of search result cards
type ResultRenderer struct {
	styles *Styles
}

// NewResultRenderer creates a new result renderer
func NewResultRenderer(styles *Styles) *ResultRenderer {
	return &ResultRenderer{styles: styles}
}

// RenderResult renders one result as a three line card
func (r *ResultRenderer) RenderResult(item domain.SearchResultItem, rank int, isSelected bool, width int) string {
	if width <= 0 {
		width = 80
	}
	contentWidth := width - 6 // Account for main container padding and the cursor

	cursor := "  "
	titleStyle := r.styles.ResultTitle
	metaStyle := r.styles.ResultMeta
	scoreStyle := r.styles.ResultScore
	if isSelected {
		cursor = "▸ "
		titleStyle = titleStyle.Foreground(lipgloss.Color("226"))
	}

	title := item.Title
	if strings.TrimSpace(title) == "" {
		title = "(untitled post)"
	}
	titleLine := fmt.Sprintf("%d. %s", rank, title)

	sportStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(GetSportColor(item.Sport)))
	meta := []string{}
	if item.Subreddit != "" {
		meta = append(meta, "r/"+item.Subreddit)
	}
	if item.Sport != "" {
		meta = append(meta, sportStyle.Render(item.Sport))
	}
	meta = append(meta,
		fmt.Sprintf("▲ %d", item.Score),
		fmt.Sprintf("%d comments", item.NumComments),
		fmt.Sprintf("%.0f%% upvoted", item.UpvoteRatio*100),
	)
	if item.Awards > 0 {
		meta = append(meta, fmt.Sprintf("%d awards", item.Awards))
	}
	if item.Time != "" {
		meta = append(meta, item.Time)
	}

	scores := fmt.Sprintf("relevance %.2f · pagerank %.4f", item.ElasticsearchScore, item.PageRankScore)

	lines := []string{
		cursor + titleStyle.Render(truncate(titleLine, contentWidth)),
		"  " + metaStyle.Render(strings.Join(meta, metaStyle.Render(" · "))),
		"  " + scoreStyle.Render(scores),
	}
	card := strings.Join(lines, "\n")
	if isSelected {
		card = r.styles.SelectionBg.Width(width - 4).Render(card)
	}
	return card
}

// RenderDetail renders the full post for the pager
func (r *ResultRenderer) RenderDetail(item domain.SearchResultItem) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render(item.Title))
	b.WriteString("\n\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(r.styles.ResultMeta.Render(fmt.Sprintf("%-12s", label)))
		b.WriteString(value)
		b.WriteString("\n")
	}
	field("Subreddit", "r/"+item.Subreddit)
	field("Sport", item.Sport)
	field("Posted", item.Time)
	field("Score", fmt.Sprintf("%d (%.0f%% upvoted)", item.Score, item.UpvoteRatio*100))
	field("Comments", fmt.Sprintf("%d", item.NumComments))
	field("Awards", fmt.Sprintf("%d", item.Awards))
	field("Relevance", fmt.Sprintf("%.4f", item.ElasticsearchScore))
	field("PageRank", fmt.Sprintf("%.6f", item.PageRankScore))
	field("Post", item.PostURL)
	field("Community", item.SubredditURL)

	b.WriteString("\n")
	text := strings.TrimSpace(item.PostText)
	if text == "" {
		text = r.styles.Dim.Render("(no text, link post)")
	}
	b.WriteString(text)
	b.WriteString("\n")
	return b.String()
}

// truncate shortens s to at most width cells, adding an ellipsis
func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
