// duelctl is a small operator CLI for a running duel server: it prints the
// leaderboard and per-player statistics.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
)

var (
	serverURL = flag.String("server", "http://127.0.0.1:8080", "base URL of the duel server")
	limit     = flag.Int("limit", 10, "number of leaderboard rows")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: duelctl [flags] <command>\n\ncommands:\n")
		fmt.Fprintf(os.Stderr, "  top            show the leaderboard\n")
		fmt.Fprintf(os.Stderr, "  stats <user>   show a player's duel statistics\n\nflags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	switch flag.Arg(0) {
	case "top":
		if err := showLeaderboard(); err != nil {
			fatal(err)
		}
	case "stats":
		if flag.Arg(1) == "" {
			flag.Usage()
			os.Exit(2)
		}
		if err := showStats(flag.Arg(1)); err != nil {
			fatal(err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func fatal(err error) {
	color.Red("error: %v", err)
	os.Exit(1)
}

func getJSON(path string, out interface{}) error {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(*serverURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s for %s", resp.Status, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type leaderboardRow struct {
	UserID          int64  `json:"user_id"`
	Rating          int    `json:"rating"`
	Tier            string `json:"tier"`
	TotalDuels      int    `json:"total_duels"`
	Wins            int    `json:"wins"`
	Losses          int    `json:"losses"`
	Draws           int    `json:"draws"`
	BestStreak      int    `json:"best_streak"`
	FavoriteElement string `json:"favorite_element"`
}

func showLeaderboard() error {
	var body struct {
		Leaderboard []leaderboardRow `json:"leaderboard"`
	}
	if err := getJSON(fmt.Sprintf("/api/leaderboard?limit=%d", *limit), &body); err != nil {
		return err
	}

	bold := color.New(color.Bold)
	bold.Printf("%-4s %-12s %-8s %-10s %-6s %-6s %-6s %s\n",
		"#", "PLAYER", "RATING", "TIER", "W", "L", "D", "ELEMENT")
	for i, row := range body.Leaderboard {
		line := fmt.Sprintf("%-4d %-12d %-8d %-10s %-6d %-6d %-6d %s",
			i+1, row.UserID, row.Rating, row.Tier, row.Wins, row.Losses, row.Draws, row.FavoriteElement)
		switch i {
		case 0:
			color.Yellow(line)
		case 1, 2:
			color.Cyan(line)
		default:
			fmt.Println(line)
		}
	}
	return nil
}

func showStats(userID string) error {
	var body struct {
		DuelStats struct {
			TotalDuels    int     `json:"total_duels"`
			DuelWins      int     `json:"duel_wins"`
			DuelLosses    int     `json:"duel_losses"`
			DuelDraws     int     `json:"duel_draws"`
			WinRate       float64 `json:"win_rate"`
			CurrentStreak int     `json:"current_streak"`
			BestStreak    int     `json:"best_streak"`
			DuelRating    int     `json:"duel_rating"`
		} `json:"duel_stats"`
		Tier struct {
			Name        string `json:"Name"`
			Description string `json:"Description"`
		} `json:"tier"`
		TierProgress struct {
			ProgressPercentage float64 `json:"ProgressPercentage"`
			RatingToNextTier   int     `json:"RatingToNextTier"`
		} `json:"tier_progress"`
	}
	if err := getJSON("/api/players/"+userID+"/stats", &body); err != nil {
		return err
	}

	s := body.DuelStats
	color.New(color.Bold).Printf("player %s\n", userID)
	fmt.Printf("rating:  %d (%s, %s)\n", s.DuelRating, body.Tier.Name, body.Tier.Description)
	fmt.Printf("record:  %d-%d-%d over %d duels (%.1f%% wins)\n",
		s.DuelWins, s.DuelLosses, s.DuelDraws, s.TotalDuels, s.WinRate)
	fmt.Printf("streak:  %d now, %d best\n", s.CurrentStreak, s.BestStreak)
	if body.TierProgress.RatingToNextTier > 0 {
		fmt.Printf("next tier in %d points (%.0f%% through current band)\n",
			body.TierProgress.RatingToNextTier, body.TierProgress.ProgressPercentage)
	}
	return nil
}
