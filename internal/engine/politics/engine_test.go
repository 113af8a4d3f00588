package politics

import "testing"

func TestCalculateElectionResults(t *testing.T) {
	if r := CalculateElectionResults(nil, 100); r != nil {
		t.Error("Expected nil for empty candidate list")
	}
	if r := CalculateElectionResults([]Candidate{{Name: "A", Votes: 0}}, 100); r != nil {
		t.Error("Expected nil when nobody voted")
	}

	result := CalculateElectionResults([]Candidate{
		{Name: "A", Votes: 60},
		{Name: "B", Votes: 40},
	}, 100)
	if result == nil {
		t.Fatal("Expected decided election")
	}
	if result.Winner.Name != "A" {
		t.Errorf("Expected winner A, got %s", result.Winner.Name)
	}
	if result.TotalVotes != 100 {
		t.Errorf("Expected 100 total votes, got %d", result.TotalVotes)
	}
	if result.TurnoutRatePct != 100 {
		t.Errorf("Expected turnout 100, got %v", result.TurnoutRatePct)
	}
	if result.Margin != 20 {
		t.Errorf("Expected margin 20, got %d", result.Margin)
	}
	if result.MarginPct != 20 {
		t.Errorf("Expected margin percentage 20, got %v", result.MarginPct)
	}
}

func TestCalculateElectionResults_TurnoutClamp(t *testing.T) {
	// More votes than registered voters clamps to 100, never above.
	result := CalculateElectionResults([]Candidate{{Name: "A", Votes: 150}}, 100)
	if result == nil {
		t.Fatal("Expected decided election")
	}
	if result.TurnoutRatePct != 100 {
		t.Errorf("Expected clamped turnout 100, got %v", result.TurnoutRatePct)
	}

	// Single candidate: margin is their full vote count.
	if result.Margin != 150 {
		t.Errorf("Expected unopposed margin 150, got %d", result.Margin)
	}
}

func TestCalculateElectionResults_InputUntouched(t *testing.T) {
	candidates := []Candidate{{Name: "Low", Votes: 10}, {Name: "High", Votes: 90}}
	CalculateElectionResults(candidates, 100)
	if candidates[0].Name != "Low" {
		t.Error("Input slice must not be reordered")
	}
}

func TestCalculateBillSupportLevel(t *testing.T) {
	testCases := []struct {
		name     string
		tally    VoteTally
		expected float64
	}{
		{"Unanimous yea", VoteTally{Yea: 10}, 100},
		{"Unanimous nay", VoteTally{Nay: 10}, 0},
		{"Split with abstentions excluded", VoteTally{Yea: 30, Nay: 10, Abstain: 60}, 75},
		{"Nobody cast a vote", VoteTally{Abstain: 40, Absent: 10}, 50},
		{"Simple third", VoteTally{Yea: 1, Nay: 2}, 33.33},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CalculateBillSupportLevel(tc.tally); got != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestCalculateDonorImpact(t *testing.T) {
	if impact := CalculateDonorImpact(Donor{Amount: 500}, nil); impact != 50 {
		t.Errorf("Expected neutral 50 for empty donor list, got %v", impact)
	}

	donors := []Donor{
		{ID: "a", Amount: 100},
		{ID: "b", Amount: 500},
		{ID: "c", Amount: 1000},
		{ID: "d", Amount: 5000},
	}

	// Top donor outranks 3 of 4: 75th percentile.
	top := CalculateDonorImpact(donors[3], donors)
	if top != 75 {
		t.Errorf("Expected percentile 75, got %v", top)
	}

	// Recurring and matching bonuses stack on top.
	boosted := CalculateDonorImpact(Donor{Amount: 5000, Recurring: true, MatchingGift: true}, donors)
	if boosted != 95 {
		t.Errorf("Expected 75 + 10 + 10 = 95, got %v", boosted)
	}

	// Cap at 100.
	whale := Donor{Amount: 1_000_000, Recurring: true, MatchingGift: true}
	if impact := CalculateDonorImpact(whale, append(donors, whale)); impact != 100 {
		t.Errorf("Expected cap at 100, got %v", impact)
	}
}

func TestCalculateDistrictInfluence(t *testing.T) {
	if got := CalculateDistrictInfluence(DistrictProfile{}); got != 0 {
		t.Errorf("Expected 0 for empty profile, got %v", got)
	}

	max := CalculateDistrictInfluence(DistrictProfile{
		VoterSharePct:     100,
		MediaPresencePct:  100,
		FundingShare:      100,
		EndorsementsCount: 50,
		IncumbencyYears:   20,
	})
	if max != 100 {
		t.Errorf("Expected saturated profile to score 100, got %v", max)
	}

	// Endorsements cap at 20 points.
	few := CalculateDistrictInfluence(DistrictProfile{EndorsementsCount: 3})
	many := CalculateDistrictInfluence(DistrictProfile{EndorsementsCount: 300})
	if few != 6 || many != 20 {
		t.Errorf("Expected endorsement points 6 and 20, got %v and %v", few, many)
	}
}

func TestCalculateOutreachEffectiveness(t *testing.T) {
	// No contacts: zero, not a division error.
	if r := CalculateOutreachEffectiveness(0, 0, 1000, 5000); r.EffectivenessPct != 0 || r.ROIPct != 0 {
		t.Errorf("Expected zero result for no contacts, got %+v", r)
	}

	// 25% conversion is full marks.
	full := CalculateOutreachEffectiveness(1000, 250, 10_000, 25_000)
	if full.EffectivenessPct != 100 {
		t.Errorf("Expected effectiveness 100 at 25%% conversion, got %v", full.EffectivenessPct)
	}
	if full.ROIPct != 150 {
		t.Errorf("Expected ROI 150, got %v", full.ROIPct)
	}

	// Zero spend reports zero ROI rather than dividing.
	free := CalculateOutreachEffectiveness(100, 10, 0, 500)
	if free.ROIPct != 0 {
		t.Errorf("Expected ROI 0 with no spend, got %v", free.ROIPct)
	}
	if free.EffectivenessPct != 40 {
		t.Errorf("Expected effectiveness 40 at 10%% conversion, got %v", free.EffectivenessPct)
	}

	// Money-losing outreach reports negative ROI.
	loss := CalculateOutreachEffectiveness(100, 5, 10_000, 2_000)
	if loss.ROIPct != -80 {
		t.Errorf("Expected ROI -80, got %v", loss.ROIPct)
	}
}

func TestCalculateCampaignPerformance(t *testing.T) {
	// All neutral inputs: no polling, no approval, flat sentiment, no target.
	neutral := CalculateCampaignPerformance(CampaignInputs{})
	// 0 + 50*0.25 + 0 + 50*0.15 = 20
	if neutral != 20 {
		t.Errorf("Expected 20 for empty campaign, got %v", neutral)
	}

	max := CalculateCampaignPerformance(CampaignInputs{
		PollingPct:        100,
		FundraisingTarget: 1000,
		FundraisingActual: 2000,
		Approval:          100,
		MediaSentiment:    100,
	})
	if max != 100 {
		t.Errorf("Expected saturated campaign to score 100, got %v", max)
	}

	// Fundraising attainment is capped at the target.
	over := CalculateCampaignPerformance(CampaignInputs{FundraisingTarget: 100, FundraisingActual: 10_000})
	at := CalculateCampaignPerformance(CampaignInputs{FundraisingTarget: 100, FundraisingActual: 100})
	if over != at {
		t.Errorf("Overshooting the target must not add points: %v vs %v", over, at)
	}
}

func BenchmarkCalculateElectionResults(b *testing.B) {
	candidates := []Candidate{
		{Name: "A", Votes: 4200}, {Name: "B", Votes: 3900},
		{Name: "C", Votes: 1100}, {Name: "D", Votes: 250},
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		CalculateElectionResults(candidates, 12_000)
	}
}
