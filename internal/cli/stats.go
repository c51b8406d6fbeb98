package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/quietloop/rhythm/internal/models"
	"github.com/quietloop/rhythm/internal/service"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	streakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	stageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("141"))

	encourageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")).
			Italic(true)
)

type StatsCmd struct {
	Name string `help:"Show a single rhythm by name." default:""`
}

func (c *StatsCmd) Run(ctx *Context) error {
	stats, err := ctx.Service.RhythmsWithStats(ctx.Config.UserID, ctx.Now())
	if err != nil {
		return err
	}

	if c.Name != "" {
		filtered := stats[:0]
		for _, s := range stats {
			if s.Rhythm.Name == c.Name {
				filtered = append(filtered, s)
			}
		}
		if len(filtered) == 0 {
			return fmt.Errorf("rhythm %q not found", c.Name)
		}
		stats = filtered
	}

	if len(stats) == 0 {
		fmt.Println("No rhythms found. Add one with: rhythm rhythm add <name>")
		return nil
	}

	for i, s := range stats {
		if i > 0 {
			fmt.Println()
		}
		printRhythmStats(ctx, s)
	}
	return nil
}

func printRhythmStats(ctx *Context, s service.RhythmWithStats) {
	fmt.Println(titleStyle.Render(s.Rhythm.Name))

	streak := fmt.Sprintf("%d day", s.Streak.Current)
	if s.Streak.Current != 1 {
		streak += "s"
	}
	fmt.Printf("  %s %s (best %d)\n",
		labelStyle.Render("streak:"), streakStyle.Render(streak), s.Streak.Longest)
	if s.Streak.LastCompleted != "" {
		fmt.Printf("  %s %s\n", labelStyle.Render("last complete:"), s.Streak.LastCompleted)
	}

	if data := s.Rhythm.CachedChainStats; data != nil {
		fmt.Printf("  %s %s\n", labelStyle.Render("chains:"), chainLine(data.Chains))
	}

	fmt.Printf("  %s %s\n", labelStyle.Render("today:"), periodLine(s.Today))
	fmt.Printf("  %s %s\n", labelStyle.Render("this week:"), periodLine(s.ThisWeek))
	fmt.Printf("  %s %s\n", labelStyle.Render("this month:"), periodLine(s.ThisMonth))
	fmt.Printf("  %s %s\n", labelStyle.Render("all time:"), periodLine(s.AllTime))
	fmt.Printf("  %s %s\n", labelStyle.Render("stage:"), stageStyle.Render(string(s.Stage)))

	if msg := ctx.Service.EncouragementFor(s.Rhythm); msg != "" {
		fmt.Printf("  %s\n", encourageStyle.Render(msg))
	}
}

func chainLine(chains []models.ChainStat) string {
	parts := make([]string, 0, len(chains))
	for _, cs := range chains {
		parts = append(parts, fmt.Sprintf("%s %d/%d", cs.Type, cs.Current, cs.Longest))
	}
	return strings.Join(parts, "  ")
}

func periodLine(p service.PeriodStats) string {
	if p.Sessions == 0 {
		return "-"
	}
	sessions := fmt.Sprintf("%d session", p.Sessions)
	if p.Sessions != 1 {
		sessions += "s"
	}
	return fmt.Sprintf("%s, %s", sessions, FormatMinutes(p.TotalMinutes))
}

type RecalcCmd struct {
	Name string `help:"Recalculate a single rhythm by name." default:""`
}

func (c *RecalcCmd) Run(ctx *Context) error {
	var rhythms []models.Rhythm
	if c.Name != "" {
		r, err := ctx.Store.GetRhythmByName(ctx.Config.UserID, c.Name)
		if err != nil {
			return fmt.Errorf("rhythm %q not found", c.Name)
		}
		rhythms = []models.Rhythm{r}
	} else {
		var err error
		rhythms, err = ctx.Store.GetAllRhythms(ctx.Config.UserID, false)
		if err != nil {
			return err
		}
	}

	now := ctx.Now()
	for _, r := range rhythms {
		data, err := ctx.Service.Recalculate(r, now)
		if err != nil {
			return fmt.Errorf("failed to recalculate %q: %w", r.Name, err)
		}
		daily := data.Chains[0]
		fmt.Printf("Recalculated %s: streak %d, best %d\n", r.Name, daily.Current, daily.Longest)
	}
	return nil
}
