package brackets

import (
	"github.com/benbjohnson/immutable"

	"github.com/Dosada05/job-bracket/models"
)

// finalMatch is the decided reset match if there is one, else the decided grand final.
func finalMatch(set matchSet) (*models.Match, bool) {
	if reset, ok := set.get(GrandFinalResetID); ok && reset.Winner != nil {
		return reset, true
	}
	if grandFinal, ok := set.get(GrandFinalID); ok && grandFinal.Winner != nil {
		return grandFinal, true
	}
	return nil, false
}

// calculatePlacements ranks the champion, the runner-up and then the most recently
// eliminated candidates until five places are filled.
func calculatePlacements(set matchSet, order *immutable.List[models.Candidate]) ([]models.Candidate, map[int]int) {
	placements := make(map[int]int, topPlacements)

	final, ok := finalMatch(set)
	if !ok {
		return []models.Candidate{}, placements
	}

	ranked := make([]models.Candidate, 0, topPlacements)
	place := func(c models.Candidate) {
		ranked = append(ranked, c)
		placements[c.ID] = len(ranked)
	}

	place(*final.Winner)
	if runnerUp := final.Loser(); runnerUp != nil {
		place(*runnerUp)
	}

	for i := order.Len() - 1; i >= 0 && len(ranked) < topPlacements; i-- {
		c := order.Get(i)
		if _, placed := placements[c.ID]; placed {
			continue
		}
		place(c)
	}
	return ranked, placements
}
