package rating

import (
	"fmt"
	"testing"

	"github.com/M1tsumi/arc-duels/internal/game"
)

func TestKFactor_Thresholds(t *testing.T) {
	cases := []struct {
		games int
		want  float64
	}{
		{0, 48},
		{9, 48},
		{10, 32},
		{49, 32},
		{50, 24},
		{500, 24},
	}
	for _, c := range cases {
		if got := KFactor(c.games); got != c.want {
			t.Fatalf("KFactor(%d) = %v, want %v", c.games, got, c.want)
		}
	}
}

func TestCalculateChange_EqualProvisional(t *testing.T) {
	win, lose := CalculateChange(1000, 1000, 0, 0, false)
	if win != 24 || lose != -24 {
		t.Fatalf("equal provisional deltas = %d/%d, want 24/-24", win, lose)
	}
}

func TestCalculateChange_DrawEqual(t *testing.T) {
	a, b := CalculateChange(1000, 1000, 20, 20, true)
	if a != 0 || b != 0 {
		t.Fatalf("equal draw deltas = %d/%d, want 0/0", a, b)
	}
}

func TestCalculateChange_UpsetPaysMore(t *testing.T) {
	upset, _ := CalculateChange(1000, 1400, 20, 20, false)
	expected, _ := CalculateChange(1400, 1000, 20, 20, false)
	if upset <= expected {
		t.Fatalf("upset win delta %d should exceed expected win delta %d", upset, expected)
	}
}

func TestApplyChange_FloorAndTier(t *testing.T) {
	c := ApplyChange(10, -50)
	if c.NewRating != 0 {
		t.Fatalf("rating floor: got %d, want 0", c.NewRating)
	}
	c = ApplyChange(1190, 20)
	if !c.TierChanged || c.NewTier != TierSilver {
		t.Fatalf("expected promotion to silver, got %+v", c)
	}
	c = ApplyChange(1500, 10)
	if c.TierChanged {
		t.Fatalf("no tier boundary crossed, got %+v", c)
	}
}

func TestTierFromRating_Bands(t *testing.T) {
	cases := []struct {
		rating int
		want   Tier
	}{
		{0, TierBronze},
		{1199, TierBronze},
		{1200, TierSilver},
		{1400, TierGold},
		{1600, TierPlatinum},
		{1800, TierDiamond},
		{2000, TierMaster},
		{3200, TierMaster},
	}
	for _, c := range cases {
		if got := TierFromRating(c.rating); got != c.want {
			t.Fatalf("TierFromRating(%d) = %s, want %s", c.rating, got, c.want)
		}
	}
}

func TestMatchmakingRange_NarrowsWithExperience(t *testing.T) {
	loNew, hiNew := MatchmakingRange(1000, 0)
	loVet, hiVet := MatchmakingRange(1000, 200)
	if hiNew-loNew <= hiVet-loVet {
		t.Fatalf("new player range [%d,%d] should be wider than veteran range [%d,%d]",
			loNew, hiNew, loVet, hiVet)
	}
	lo, _ := MatchmakingRange(100, 0)
	if lo < 0 {
		t.Fatalf("range low end must not go negative, got %d", lo)
	}
}

func battleLog(attacker, defender int64, damages ...int) []game.BattleAction {
	var log []game.BattleAction
	for i, d := range damages {
		a, b := attacker, defender
		if i%2 == 1 {
			a, b = defender, attacker
		}
		log = append(log, game.BattleAction{
			AttackerID: a,
			DefenderID: b,
			ActionType: game.ActionAttack,
			Damage:     d,
		})
	}
	return log
}

func TestRecordResult_Victory(t *testing.T) {
	ch := PlayerResult{
		UserID: 1, Stats: game.NewDuelStats(),
		Element: game.ElementFire, OpponentID: 2, OpponentElement: game.ElementWater,
	}
	op := PlayerResult{
		UserID: 2, Stats: game.NewDuelStats(),
		Element: game.ElementWater, OpponentID: 1, OpponentElement: game.ElementFire,
	}
	res := game.Victory{WinnerID: 1, LoserID: 2, TurnsTaken: 6}
	log := battleLog(1, 2, 30, 25, 40)

	chOut, opOut := RecordResult(res, log, ch, op)

	if chOut.Result != ResultWin || opOut.Result != ResultLoss {
		t.Fatalf("results = %s/%s, want win/loss", chOut.Result, opOut.Result)
	}
	if ch.Stats.DuelRating != 1024 || op.Stats.DuelRating != 976 {
		t.Fatalf("ratings = %d/%d, want 1024/976", ch.Stats.DuelRating, op.Stats.DuelRating)
	}
	if ch.Stats.TotalDuels != 1 || ch.Stats.DuelWins != 1 || ch.Stats.CurrentStreak != 1 {
		t.Fatalf("winner stats not updated: %+v", ch.Stats)
	}
	if op.Stats.DuelLosses != 1 || op.Stats.CurrentStreak != 0 {
		t.Fatalf("loser stats not updated: %+v", op.Stats)
	}
	if ch.Stats.TotalDamageDealt != 70 || ch.Stats.TotalDamageTaken != 25 {
		t.Fatalf("winner damage totals = %d/%d, want 70/25",
			ch.Stats.TotalDamageDealt, ch.Stats.TotalDamageTaken)
	}
	if ch.Stats.FavoriteElement != game.ElementFire {
		t.Fatalf("favorite element = %q, want fire", ch.Stats.FavoriteElement)
	}
	if !ch.Stats.HasAchievement("first_blood") {
		t.Fatalf("first win should unlock first_blood, got %v", ch.Stats.Achievements)
	}
	if len(chOut.NewAchievements) == 0 {
		t.Fatalf("expected newly unlocked achievements in the outcome")
	}
	if ch.Stats.LastDuelAt == nil || op.Stats.LastDuelAt == nil {
		t.Fatalf("last duel timestamps not set")
	}
}

func TestRecordResult_DrawCountsForBoth(t *testing.T) {
	ch := PlayerResult{UserID: 1, Stats: game.NewDuelStats(), Element: game.ElementEarth, OpponentID: 2, OpponentElement: game.ElementAir}
	op := PlayerResult{UserID: 2, Stats: game.NewDuelStats(), Element: game.ElementAir, OpponentID: 1, OpponentElement: game.ElementEarth}

	chOut, opOut := RecordResult(game.Draw{TurnsTaken: 15}, nil, ch, op)

	if chOut.Result != ResultDraw || opOut.Result != ResultDraw {
		t.Fatalf("results = %s/%s, want draw/draw", chOut.Result, opOut.Result)
	}
	if ch.Stats.DuelDraws != 1 || op.Stats.DuelDraws != 1 {
		t.Fatalf("draw counters = %d/%d, want 1/1", ch.Stats.DuelDraws, op.Stats.DuelDraws)
	}
	if ch.Stats.DuelRating != 1000 || op.Stats.DuelRating != 1000 {
		t.Fatalf("equal-rating draw should not move ratings, got %d/%d",
			ch.Stats.DuelRating, op.Stats.DuelRating)
	}
}

func TestRecordResult_RecentDuelsBounded(t *testing.T) {
	ch := PlayerResult{UserID: 1, Stats: game.NewDuelStats(), Element: game.ElementFire, OpponentID: 2, OpponentElement: game.ElementWater}
	op := PlayerResult{UserID: 2, Stats: game.NewDuelStats(), Element: game.ElementWater, OpponentID: 1, OpponentElement: game.ElementFire}

	for i := 0; i < game.RecentDuelsLimit+5; i++ {
		RecordResult(game.Victory{WinnerID: 1, LoserID: 2, TurnsTaken: 3}, nil, ch, op)
	}
	if n := len(ch.Stats.RecentDuels); n != game.RecentDuelsLimit {
		t.Fatalf("recent duels length = %d, want %d", n, game.RecentDuelsLimit)
	}
	if ch.Stats.CurrentStreak != game.RecentDuelsLimit+5 {
		t.Fatalf("streak = %d, want %d", ch.Stats.CurrentStreak, game.RecentDuelsLimit+5)
	}
}

func TestCheckAchievements_Idempotent(t *testing.T) {
	s := game.NewDuelStats()
	s.DuelWins = 1
	first := CheckAchievements(s)
	if len(first) == 0 {
		t.Fatalf("expected first_blood to unlock")
	}
	again := CheckAchievements(s)
	if len(again) != 0 {
		t.Fatalf("second check should unlock nothing, got %v", again)
	}
}

func TestFavoriteElement_MostPlayed(t *testing.T) {
	s := game.NewDuelStats()
	s.ElementRecordFor(game.ElementWater).Wins = 3
	s.ElementRecordFor(game.ElementFire).Losses = 5
	if got := FavoriteElement(s.ElementStats); got != game.ElementFire {
		t.Fatalf("favorite = %q, want fire", got)
	}
	if got := FavoriteElement(game.NewDuelStats().ElementStats); got != "" {
		t.Fatalf("empty stats favorite = %q, want empty", got)
	}
}

func TestProgressFor_Percent(t *testing.T) {
	p := ProgressFor(1300)
	if p.CurrentTier != TierSilver {
		t.Fatalf("tier = %s, want silver", p.CurrentTier)
	}
	if p.ProgressPercentage < 49 || p.ProgressPercentage > 51 {
		t.Fatalf("midband percent = %v, want ~50", p.ProgressPercentage)
	}
	if m := ProgressFor(2500); m.ProgressPercentage != 100 {
		t.Fatalf("master percent = %v, want 100", m.ProgressPercentage)
	}
}

func ExampleTierFromRating() {
	fmt.Println(TierFromRating(1250))
	// Output: Silver
}
