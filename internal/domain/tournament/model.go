package tournament

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/matchpool/tournament-engine/internal/domain/prediction"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusWarmup    Status = "warmup"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Tournament is the configuration snapshot the engine computes against.
// EndingDate is estimator output: nil until the schedule supports an
// estimate, then only revised through explicit recalculation events.
type Tournament struct {
	ID                          string `validate:"required"`
	CompetitionRef              string `validate:"required"`
	StartingMatchday            int    `validate:"gte=1"`
	EndingMatchday              int    `validate:"gtefield=StartingMatchday"`
	Status                      Status `validate:"oneof=pending warmup active completed"`
	BonusMatchEnabled           bool
	EarlyPredictionBonusEnabled bool
	Scoring                     prediction.ScoringRules
	EndingDate                  *time.Time
}

var validate = validator.New()

// Validate rejects snapshots the engine cannot compute against. Upstream
// owns the data; this is the last line before a sweep trusts it.
func (t Tournament) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("invalid tournament %q: %w", t.ID, err)
	}
	if err := validate.Struct(t.Scoring); err != nil {
		return fmt.Errorf("invalid scoring config for tournament %q: %w", t.ID, err)
	}
	return nil
}
