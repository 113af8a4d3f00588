package politics

import (
	"sort"

	"github.com/magnatehq/magnate-server/internal/money"
)

// Candidate is one entrant in an election.
type Candidate struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Votes int    `json:"votes"`
}

// ElectionResults summarizes a decided race.
type ElectionResults struct {
	Winner           Candidate   `json:"winner"`
	TotalVotes       int         `json:"total_votes"`
	TurnoutRatePct   float64     `json:"turnout_rate"`
	Margin           int         `json:"margin"`
	MarginPct        float64     `json:"margin_percentage"`
	RankedCandidates []Candidate `json:"ranked_candidates"`
}

// CalculateElectionResults decides a race. Nil is the explicit signal for an
// undecidable election: no candidates, or nobody voted.
func CalculateElectionResults(candidates []Candidate, registeredVoters int) *ElectionResults {
	if len(candidates) == 0 {
		return nil
	}

	ranked := make([]Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Votes > ranked[j].Votes })

	total := 0
	for _, c := range ranked {
		total += c.Votes
	}
	if total == 0 {
		return nil
	}

	margin := ranked[0].Votes
	if len(ranked) > 1 {
		margin = ranked[0].Votes - ranked[1].Votes
	}

	turnout := 0.0
	if registeredVoters > 0 {
		turnout = money.Clamp(float64(total)/float64(registeredVoters)*100, 0, 100)
	}

	return &ElectionResults{
		Winner:           ranked[0],
		TotalVotes:       total,
		TurnoutRatePct:   money.RoundPercent(turnout),
		Margin:           margin,
		MarginPct:        money.RoundPercent(float64(margin) / float64(total) * 100),
		RankedCandidates: ranked,
	}
}

// VoteTally counts a legislative vote. Abstain, present, and absent are
// recorded but excluded from the support denominator.
type VoteTally struct {
	Yea     int `json:"yea"`
	Nay     int `json:"nay"`
	Abstain int `json:"abstain"`
	Absent  int `json:"absent"`
}

// CalculateBillSupportLevel reports yea share of the cast yea/nay votes as a
// percentage. A vote with no yeas or nays is neutral 50.
func CalculateBillSupportLevel(v VoteTally) float64 {
	cast := v.Yea + v.Nay
	if cast == 0 {
		return 50
	}
	return money.RoundPercent(float64(v.Yea) / float64(cast) * 100)
}

// Donor is one contributor on a campaign's books.
type Donor struct {
	ID           string  `json:"id"`
	Amount       float64 `json:"amount"`
	Recurring    bool    `json:"recurring"`
	MatchingGift bool    `json:"matching_gift"`
}

// CalculateDonorImpact ranks a donor against the full donor list: percentile
// by amount, plus fixed bonuses for recurring and matched gifts, capped at
// 100. An empty donor list yields the neutral 50.
func CalculateDonorImpact(donor Donor, allDonors []Donor) float64 {
	if len(allDonors) == 0 {
		return 50
	}

	below := 0
	for _, d := range allDonors {
		if d.Amount < donor.Amount {
			below++
		}
	}
	percentile := float64(below) / float64(len(allDonors)) * 100

	impact := percentile
	if donor.Recurring {
		impact += 10
	}
	if donor.MatchingGift {
		impact += 10
	}
	return money.RoundPercent(money.Clamp(impact, 0, 100))
}

// DistrictProfile carries the standing inputs for influence scoring.
type DistrictProfile struct {
	VoterSharePct     float64 `json:"voter_share"`    // party registration share
	MediaPresencePct  float64 `json:"media_presence"` // share of local coverage
	EndorsementsCount int     `json:"endorsements"`   // local org endorsements
	FundingShare      float64 `json:"funding_share"`  // share of district spend
	IncumbencyYears   float64 `json:"incumbency_years"`
}

// CalculateDistrictInfluence grades a candidate's hold on a district on
// [0,100]. Endorsements add 2 points each up to 20; incumbency adds 2 per
// year up to 10.
func CalculateDistrictInfluence(p DistrictProfile) float64 {
	voter := money.Clamp(p.VoterSharePct, 0, 100) * 0.35
	media := money.Clamp(p.MediaPresencePct, 0, 100) * 0.20
	funding := money.Clamp(p.FundingShare, 0, 100) * 0.15
	endorse := money.Clamp(float64(p.EndorsementsCount)*2, 0, 20)
	incumbency := money.Clamp(p.IncumbencyYears*2, 0, 10)

	return money.RoundPercent(money.Clamp(voter+media+funding+endorse+incumbency, 0, 100))
}

// OutreachResult grades a campaign activity.
type OutreachResult struct {
	EffectivenessPct float64 `json:"effectiveness"`
	ROIPct           float64 `json:"roi"`
}

// CalculateOutreachEffectiveness grades voter contact work: reach rate,
// conversion rate, and cost efficiency against spend. Zero-contact or
// zero-spend campaigns report the neutral defaults rather than dividing.
func CalculateOutreachEffectiveness(contacted, converted int, spend, votersGainedValue float64) OutreachResult {
	if contacted <= 0 {
		return OutreachResult{EffectivenessPct: 0, ROIPct: 0}
	}
	conversion := money.Clamp(float64(converted)/float64(contacted)*100, 0, 100)

	roi := 0.0
	if spend > 0 {
		roi = (votersGainedValue - spend) / spend * 100
	}

	// Conversion dominates; 25% conversion is full marks.
	effectiveness := money.Clamp(conversion*4, 0, 100)

	return OutreachResult{
		EffectivenessPct: money.RoundPercent(effectiveness),
		ROIPct:           money.RoundPercent(roi),
	}
}

// CampaignInputs are the aggregate performance figures for a campaign cycle.
type CampaignInputs struct {
	PollingPct        float64 `json:"polling"`
	FundraisingTarget float64 `json:"fundraising_target"`
	FundraisingActual float64 `json:"fundraising_actual"`
	Approval          float64 `json:"approval"`        // [0,100]
	MediaSentiment    float64 `json:"media_sentiment"` // [-100,100]
}

// CalculateCampaignPerformance blends polling, fundraising attainment,
// approval, and sentiment into a [0,100] grade. A campaign with no
// fundraising target scores that component at the neutral 50.
func CalculateCampaignPerformance(in CampaignInputs) float64 {
	polling := money.Clamp(in.PollingPct, 0, 100) * 0.35

	attainment := 50.0
	if in.FundraisingTarget > 0 {
		attainment = money.Clamp(in.FundraisingActual/in.FundraisingTarget*100, 0, 100)
	}
	fundraising := attainment * 0.25

	approval := money.Clamp(in.Approval, 0, 100) * 0.25
	sentiment := (money.Clamp(in.MediaSentiment, -100, 100) + 100) / 2 * 0.15

	return money.RoundPercent(money.Clamp(polling+fundraising+approval+sentiment, 0, 100))
}
