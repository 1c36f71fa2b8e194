package brackets

import (
	"github.com/benbjohnson/immutable"

	"github.com/Dosada05/job-bracket/models"
)

const eliminationLosses = 2

type eliminationBook struct {
	lossCounts *immutable.Map[int, int]
	completed  *immutable.Map[int, struct{}]
	order      *immutable.List[models.Candidate]
}

// recordOutcome charges the loser one loss and eliminates it on its second. A candidate is
// appended to the elimination order once only.
func (b eliminationBook) recordOutcome(winner, loser *models.Candidate) eliminationBook {
	if loser != nil {
		losses, _ := b.lossCounts.Get(loser.ID)
		losses++
		b.lossCounts = b.lossCounts.Set(loser.ID, losses)

		if _, done := b.completed.Get(loser.ID); losses >= eliminationLosses && !done {
			b.completed = b.completed.Set(loser.ID, struct{}{})
			b.order = b.order.Append(*loser)
		}
	}

	if winner != nil {
		if _, ok := b.lossCounts.Get(winner.ID); !ok {
			b.lossCounts = b.lossCounts.Set(winner.ID, 0)
		}
	}
	return b
}
