package brackets

import (
	"github.com/Dosada05/job-bracket/models"
)

// materialize applies every round-construction rule in dependency order. Each rule only
// adds ids that are not registered yet, so calling it repeatedly is safe.
func materialize(set matchSet, decided *models.Match) matchSet {
	set = materializeWinnersRounds(set)
	if decided.Bracket == models.BracketWinners && decided.Round == 1 {
		set = materializeLosersRoundOne(set)
	}
	set = materializeLosersRoundTwo(set)
	set = materializeLosersLaterRounds(set)
	return ensureGrandFinal(set)
}

func newPairing(side models.BracketSide, round, position int, job1, job2 *models.Candidate) *models.Match {
	return &models.Match{
		ID:       matchID(side, round, position),
		Job1:     job1,
		Job2:     job2,
		Round:    round,
		Bracket:  side,
		Position: position,
	}
}

// pairConsecutive pairs entrants 0v1, 2v3, ... into the given round.
func pairConsecutive(set matchSet, side models.BracketSide, round int, entrants []*models.Candidate) matchSet {
	for i := 0; i+1 < len(entrants); i += 2 {
		set = set.ensure(newPairing(side, round, i/2, entrants[i], entrants[i+1]))
	}
	return set
}

// pairByIndex pairs first[i] against second[i].
func pairByIndex(set matchSet, side models.BracketSide, round int, first, second []*models.Candidate) matchSet {
	n := min(len(first), len(second))
	for i := 0; i < n; i++ {
		set = set.ensure(newPairing(side, round, i, first[i], second[i]))
	}
	return set
}

// materializeWinnersRounds seeds winners round r+1 from the winners of round r, walking up
// from round 1 until a round is incomplete or only the champion is left.
func materializeWinnersRounds(set matchSet) matchSet {
	for r := 1; r < WinnersRounds; r++ {
		current := set.round(models.BracketWinners, r)
		if !allDecided(current) {
			return set
		}
		winners := winnersOf(current)
		if len(winners) < 2 {
			return set
		}
		set = pairConsecutive(set, models.BracketWinners, r+1, winners)
	}
	return set
}

func materializeLosersRoundOne(set matchSet) matchSet {
	firstRound := set.round(models.BracketWinners, 1)
	if !allDecided(firstRound) {
		return set
	}
	return pairConsecutive(set, models.BracketLosers, 1, losersOf(firstRound))
}

func materializeLosersRoundTwo(set matchSet) matchSet {
	losersFirst := set.round(models.BracketLosers, 1)
	winnersSecond := set.round(models.BracketWinners, 2)
	if !allDecided(losersFirst) || !allDecided(winnersSecond) {
		return set
	}
	return pairByIndex(set, models.BracketLosers, 2, winnersOf(losersFirst), losersOf(winnersSecond))
}

// materializeLosersLaterRounds builds losers rounds 3..LosersRounds. Odd rounds consolidate
// the previous losers round; even rounds take the drop-ins from winners round dest/2+1.
// Progression stops at the first incomplete losers round.
func materializeLosersLaterRounds(set matchSet) matchSet {
	for r := 2; r < LosersRounds; r++ {
		current := set.round(models.BracketLosers, r)
		if len(current) == 0 {
			continue
		}
		if !allDecided(current) {
			return set
		}

		survivors := winnersOf(current)
		dest := r + 1
		if dest%2 != 0 {
			set = pairConsecutive(set, models.BracketLosers, dest, survivors)
			continue
		}

		dropIns := set.round(models.BracketWinners, dest/2+1)
		if !allDecided(dropIns) {
			continue
		}
		set = pairByIndex(set, models.BracketLosers, dest, survivors, losersOf(dropIns))
	}
	return set
}

// ensureGrandFinal keeps the grand final seeded with the current bracket champions and
// creates or drops the reset match depending on the grand final outcome.
func ensureGrandFinal(set matchSet) matchSet {
	winnersFinal, ok := set.get(matchID(models.BracketWinners, WinnersRounds, 0))
	if !ok || winnersFinal.Winner == nil {
		return set
	}
	losersFinal, ok := set.get(matchID(models.BracketLosers, LosersRounds, 0))
	if !ok || losersFinal.Winner == nil {
		return set
	}
	winnersChampion, losersChampion := winnersFinal.Winner, losersFinal.Winner

	grandFinal, ok := set.get(GrandFinalID)
	if !ok {
		grandFinal = &models.Match{
			ID:      GrandFinalID,
			Job1:    winnersChampion,
			Job2:    losersChampion,
			Round:   WinnersRounds + 1,
			Bracket: models.BracketWinners,
		}
		set = set.put(grandFinal)
	} else if reseeded := reseed(grandFinal, winnersChampion, losersChampion); reseeded != nil {
		grandFinal = reseeded
		set = set.put(grandFinal)
	}

	// The winners champion carried no loss into the grand final; losing it there is only
	// their first loss, so they get a second match.
	needsReset := grandFinal.Winner != nil && sameCandidate(grandFinal.Loser(), winnersChampion)

	reset, hasReset := set.get(GrandFinalResetID)
	switch {
	case needsReset && !hasReset:
		set = set.put(&models.Match{
			ID:      GrandFinalResetID,
			Job1:    winnersChampion,
			Job2:    losersChampion,
			Round:   WinnersRounds + 2,
			Bracket: models.BracketWinners,
		})
	case needsReset:
		if reseeded := reseed(reset, winnersChampion, losersChampion); reseeded != nil {
			set = set.put(reseeded)
		}
	case hasReset:
		set = set.remove(GrandFinalResetID)
	}
	return set
}

// reseed returns a copy of m with new slots, or nil when the slots already match.
func reseed(m *models.Match, job1, job2 *models.Candidate) *models.Match {
	if sameCandidate(m.Job1, job1) && sameCandidate(m.Job2, job2) {
		return nil
	}
	cp := *m
	cp.Job1, cp.Job2 = job1, job2
	return &cp
}
