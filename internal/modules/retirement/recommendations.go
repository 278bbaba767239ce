package retirement

import (
	"math"

	"golang.org/x/text/language"
)

// RecommendationKind identifies which advice rule produced a recommendation.
type RecommendationKind string

const (
	KindOnTrack           RecommendationKind = "on_track"
	KindContinueStrategy  RecommendationKind = "continue_strategy"
	KindShortfall         RecommendationKind = "shortfall"
	KindSavingsVeryHigh   RecommendationKind = "savings_very_high"
	KindSavingsAggressive RecommendationKind = "savings_aggressive"
	KindSavingsHealthy    RecommendationKind = "savings_healthy"
	KindTimelineImminent  RecommendationKind = "timeline_imminent"
	KindTimelineNear      RecommendationKind = "timeline_near"
	KindTimelineLong      RecommendationKind = "timeline_long"
	KindAthleteTip        RecommendationKind = "athlete_tip"
	KindInflation         RecommendationKind = "inflation"
)

var kindIcons = map[RecommendationKind]string{
	KindOnTrack:           "🎉",
	KindContinueStrategy:  "💡",
	KindShortfall:         "📊",
	KindSavingsVeryHigh:   "⚠️",
	KindSavingsAggressive: "💪",
	KindSavingsHealthy:    "✅",
	KindTimelineImminent:  "⏰",
	KindTimelineNear:      "🎯",
	KindTimelineLong:      "⏳",
	KindAthleteTip:        "🏆",
	KindInflation:         "📈",
}

// Recommendation is one piece of advice tagged with the rule that produced it.
type Recommendation struct {
	Kind RecommendationKind `json:"kind"`
	Text string             `json:"text"`
}

// String renders the recommendation with its icon.
func (r Recommendation) String() string {
	if icon, ok := kindIcons[r.Kind]; ok {
		return icon + " " + r.Text
	}
	return r.Text
}

// Figures are the computed values the recommendation rules look at.
type Figures struct {
	OnTrack               bool
	WealthGap             float64
	SavingsRatePercentage float64
	YearsToRetirement     int
	CurrentWealth         float64
	RequiredCorpus        float64
	MonthlyPayoutRequired float64
}

// Recommend builds the ordered advice list for m in the given language:
// the on-track or shortfall summary, savings-rate advice, timeline advice,
// the athlete tip, and the inflation note for horizons over ten years.
func Recommend(m Figures, tag language.Tag) []Recommendation {
	p := newPrinter(tag)
	var recs []Recommendation

	add := func(kind RecommendationKind, text string) {
		recs = append(recs, Recommendation{Kind: kind, Text: text})
	}

	if m.OnTrack {
		add(KindOnTrack, p.text(msgOnTrack, p.amount(m.CurrentWealth), p.amount(m.RequiredCorpus)))
		add(KindContinueStrategy, p.text(msgContinueStrategy))
	} else {
		add(KindShortfall, p.text(msgShortfall, p.amount(math.Abs(m.WealthGap)), p.percent(m.SavingsRatePercentage)))
	}

	switch {
	case m.SavingsRatePercentage > 40:
		add(KindSavingsVeryHigh, p.text(msgSavingsVeryHigh))
	case m.SavingsRatePercentage > 25:
		add(KindSavingsAggressive, p.text(msgSavingsAggressive))
	case m.SavingsRatePercentage > 15:
		add(KindSavingsHealthy, p.text(msgSavingsHealthy))
	}

	switch {
	case m.YearsToRetirement < 5:
		add(KindTimelineImminent, p.text(msgTimelineImminent))
	case m.YearsToRetirement < 10:
		add(KindTimelineNear, p.text(msgTimelineNear))
	default:
		add(KindTimelineLong, p.text(msgTimelineLong, m.YearsToRetirement))
	}

	add(KindAthleteTip, p.text(msgAthleteTip))

	if m.YearsToRetirement > 10 {
		add(KindInflation, p.text(msgInflation, p.amount(m.MonthlyPayoutRequired)))
	}

	return recs
}
