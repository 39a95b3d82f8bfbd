package domain

import "time"

// AccountStage represents a prospect account's position in the sales
// pipeline.
type AccountStage string

const (
	StageLead        AccountStage = "lead"
	StageContacted   AccountStage = "contacted"
	StageNegotiating AccountStage = "negotiating"
	StageWon         AccountStage = "won"
	StageLost        AccountStage = "lost"
)

// Valid stages
var validStages = map[AccountStage]bool{
	StageLead:        true,
	StageContacted:   true,
	StageNegotiating: true,
	StageWon:         true,
	StageLost:        true,
}

// IsValid checks if the stage is a valid pipeline stage.
func (s AccountStage) IsValid() bool {
	return validStages[s]
}

// Account represents a prospect account tracked by sales.
type Account struct {
	ID          string
	Name        string
	TerritoryID string
	ZipCode     string
	Stage       AccountStage
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Contact is a person attached to a prospect account.
type Contact struct {
	ID        string
	AccountID string
	Name      string
	Title     string
	Email     string
	Phone     string
	CreatedAt time.Time
}
