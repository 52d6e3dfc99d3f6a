package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/suapapa/lotto645_recommender/lotto"
)

// Ball colors follow the draw broadcast: yellow, blue, red, gray, green.
var ballColors = map[lotto.Bucket]lipgloss.Color{
	lotto.Bucket1to10:  lipgloss.Color("#FBC400"),
	lotto.Bucket11to20: lipgloss.Color("#69C8F2"),
	lotto.Bucket21to30: lipgloss.Color("#FF7272"),
	lotto.Bucket31to40: lipgloss.Color("#AAAAAA"),
	lotto.Bucket41to45: lipgloss.Color("#B0D840"),
}

var (
	ballStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)
	bonusBallStyle = ballStyle.
			Background(lipgloss.Color("#6B50FF"))
	bonusLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B50FF")).
			Bold(true)
	chipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#858392"))
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#858392")).
			Italic(true)
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#DFDBDD"))
)

func renderBall(n int) string {
	return ballStyle.Background(ballColors[lotto.BucketOf(n)]).Render(fmt.Sprintf("%2d", n))
}

// renderSet draws "balls + B bonus  N세트".
func renderSet(i int, s lotto.Set) string {
	balls := make([]string, 0, len(s.Main)+4)
	for _, n := range s.Main {
		balls = append(balls, renderBall(n))
	}
	balls = append(balls,
		"+",
		bonusLabelStyle.Render("B"),
		bonusBallStyle.Render(fmt.Sprintf("%2s", s.BonusText())),
		chipStyle.Render(lotto.SetLabel(i)),
	)
	return strings.Join(balls, " ")
}

// renderSets draws valid sets one per line, numbering only those shown.
func renderSets(sets []lotto.Set) string {
	lines := make([]string, 0, len(sets))
	for _, s := range sets {
		if s.Validate() != nil {
			continue
		}
		lines = append(lines, renderSet(len(lines), s))
	}
	return strings.Join(lines, "\n")
}

func renderHistory(h lotto.History) string {
	if len(h) == 0 {
		return mutedStyle.Render(lotto.NoHistoryText)
	}
	lines := lotto.HistoryLines(h)
	for i, l := range lines {
		lines[i] = "• " + l
	}
	return strings.Join(lines, "\n")
}
