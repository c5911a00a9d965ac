package rating

// Tier is a rating band classification.
type Tier string

const (
	TierBronze   Tier = "Bronze"
	TierSilver   Tier = "Silver"
	TierGold     Tier = "Gold"
	TierPlatinum Tier = "Platinum"
	TierDiamond  Tier = "Diamond"
	TierMaster   Tier = "Master"
)

type tierBand struct {
	tier Tier
	min  int
	max  int
}

// Bands are checked in order; Master has no upper bound.
var tierBands = []tierBand{
	{TierBronze, 0, 1199},
	{TierSilver, 1200, 1399},
	{TierGold, 1400, 1599},
	{TierPlatinum, 1600, 1799},
	{TierDiamond, 1800, 1999},
	{TierMaster, 2000, 0},
}

// TierFromRating classifies a rating into its band.
func TierFromRating(rating int) Tier {
	for _, b := range tierBands {
		if b.tier == TierMaster {
			if rating >= b.min {
				return TierMaster
			}
			continue
		}
		if rating >= b.min && rating <= b.max {
			return b.tier
		}
	}
	return TierBronze
}

// Info carries the presentation attributes of a tier. Rendering belongs to
// the dispatch layer; the engine only supplies the raw attributes.
type Info struct {
	Name        string
	Color       int
	Icon        string
	Description string
}

var tierInfo = map[Tier]Info{
	TierBronze:   {Name: "Bronze", Color: 0xCD7F32, Icon: "🥉", Description: "Novice Duelist"},
	TierSilver:   {Name: "Silver", Color: 0xC0C0C0, Icon: "🥈", Description: "Skilled Fighter"},
	TierGold:     {Name: "Gold", Color: 0xFFD700, Icon: "🥇", Description: "Elite Warrior"},
	TierPlatinum: {Name: "Platinum", Color: 0xE5E4E2, Icon: "💎", Description: "Master Duelist"},
	TierDiamond:  {Name: "Diamond", Color: 0xB9F2FF, Icon: "💠", Description: "Legendary Champion"},
	TierMaster:   {Name: "Master", Color: 0xFF6B6B, Icon: "👑", Description: "Grandmaster"},
}

// InfoFor returns the presentation attributes of a tier.
func InfoFor(t Tier) Info {
	if info, ok := tierInfo[t]; ok {
		return info
	}
	return tierInfo[TierBronze]
}

// Progress describes position within the current tier.
type Progress struct {
	CurrentTier        Tier
	Rating             int
	TierMin            int
	TierMax            int // 0 for Master (unbounded)
	ProgressPercentage float64
	RatingToNextTier   int
}

// ProgressFor computes progress within the rating's tier band.
func ProgressFor(rating int) Progress {
	tier := TierFromRating(rating)
	for _, b := range tierBands {
		if b.tier != tier {
			continue
		}
		if tier == TierMaster {
			return Progress{CurrentTier: tier, Rating: rating, TierMin: b.min, ProgressPercentage: 100}
		}
		span := b.max - b.min
		pct := float64(rating-b.min) / float64(span) * 100
		needed := b.max + 1 - rating
		if needed < 0 {
			needed = 0
		}
		return Progress{
			CurrentTier:        tier,
			Rating:             rating,
			TierMin:            b.min,
			TierMax:            b.max,
			ProgressPercentage: pct,
			RatingToNextTier:   needed,
		}
	}
	return Progress{CurrentTier: tier, Rating: rating}
}

// MatchmakingRange returns the rating window to search for opponents:
// wider for provisional players, narrowing as rating climbs.
func MatchmakingRange(rating, gamesPlayed int) (min, max int) {
	var span int
	switch {
	case gamesPlayed < ProvisionalGames:
		span = 300
	case rating < 1200:
		span = 200
	case rating < 1600:
		span = 150
	default:
		span = 100
	}
	min = rating - span
	if min < 0 {
		min = 0
	}
	return min, rating + span
}
