// Package report formats tournament state as text for the viewer panels and
// the headless report.
package report

import (
	"fmt"
	"strings"

	"github.com/Garsondee/Squid-Sense/internal/tournament"
)

// Status messages shown after save and load.
const (
	MsgSaved   = "Simulation saved!"
	MsgLoaded  = "Simulation loaded!"
	MsgNoSave  = "No save found!"
	MsgCopied  = "Profile copied!"
	MsgRestart = "New tournament!"
)

// SurvivorLine is one row of the survivor panel:
//
//	#12 Kim Yeon | STR: 0.41 AGI: 0.77 LCK: 0.10 INT: 0.93
func SurvivorLine(c tournament.Competitor) string {
	return fmt.Sprintf("%s %s | STR: %.2f AGI: %.2f LCK: %.2f INT: %.2f",
		c.Label(), c.Name, c.Stats.Strength, c.Stats.Agility, c.Stats.Luck, c.Stats.Intelligence)
}

// ProfileTitle is the heading of the profile panel.
func ProfileTitle(c tournament.Competitor) string {
	return c.Label() + " " + c.Name
}

// ProfileStats lists all six stats, one per line.
func ProfileStats(c tournament.Competitor) string {
	s := c.Stats
	return fmt.Sprintf("STR: %.2f\nAGI: %.2f\nLCK: %.2f\nINT: %.2f\nTrust: %.2f\nBetrayal: %.2f",
		s.Strength, s.Agility, s.Luck, s.Intelligence, s.Trust, s.Betrayal)
}

// Profile is the title, status and stats block copied to the clipboard.
func Profile(c tournament.Competitor) string {
	var sb strings.Builder
	sb.WriteString(ProfileTitle(c))
	sb.WriteString("\n")
	sb.WriteString("Status: ")
	sb.WriteString(aliveWord(c.Alive))
	sb.WriteString("\n")
	sb.WriteString(ProfileStats(c))
	return sb.String()
}

// LeaderboardLine is one row of the final leaderboard.
func LeaderboardLine(c tournament.Competitor) string {
	return fmt.Sprintf("%s %s - %s", c.Label(), c.Name, aliveWord(c.Alive))
}

// Leaderboard formats a ranking, one line per competitor.
func Leaderboard(ranking []tournament.Competitor) []string {
	out := make([]string, len(ranking))
	for i, c := range ranking {
		out[i] = LeaderboardLine(c)
	}
	return out
}

// RoundAnnouncement is the banner shown when a round finishes.
func RoundAnnouncement(round tournament.Stage) string {
	return round.Title() + " complete!"
}

// StepSummary is a single-line account of one Advance.
func StepSummary(step tournament.Step) string {
	return fmt.Sprintf("%s: %d -> %d alive (%d eliminated)",
		step.Round.Title(), step.AliveBefore, step.AliveAfter, len(step.Eliminated))
}

func aliveWord(alive bool) string {
	if alive {
		return "ALIVE"
	}
	return "DEAD"
}
