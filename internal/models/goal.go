package models

import (
	"time"

	"gorm.io/gorm"
)

// GoalIcon enumerates the icons a goal can be displayed with.
type GoalIcon string

const (
	GoalIconBike      GoalIcon = "bike"
	GoalIconCar       GoalIcon = "car"
	GoalIconHome      GoalIcon = "home"
	GoalIconPlane     GoalIcon = "plane"
	GoalIconEducation GoalIcon = "education"
	GoalIconWedding   GoalIcon = "wedding"
)

// Goal represents a savings target with a running balance. CurrentAmount is
// only ever mutated through goal transactions, never set directly by clients.
type Goal struct {
	Base
	UserID        string     `gorm:"type:uuid;not null;index" json:"userId"`
	Name          string     `gorm:"not null" json:"name"`
	TargetAmount  float64    `gorm:"not null" json:"targetAmount"`
	CurrentAmount float64    `gorm:"not null;default:0" json:"currentAmount"`
	TargetDate    *time.Time `json:"targetDate,omitempty"`
	Icon          GoalIcon   `gorm:"not null;default:bike" json:"icon"`

	// Derived, capped at 100 for display. Never persisted.
	Progress float64 `gorm:"-" json:"progress"`
}

func (g *Goal) computeProgress() {
	if g.TargetAmount == 0 {
		g.Progress = 0
		return
	}
	progress := g.CurrentAmount / g.TargetAmount * 100
	if progress > 100 {
		progress = 100
	}
	g.Progress = progress
}

// AfterFind populates the derived progress field on loads.
func (g *Goal) AfterFind(tx *gorm.DB) error {
	g.computeProgress()
	return nil
}

// AfterSave populates the derived progress field on creates and updates.
func (g *Goal) AfterSave(tx *gorm.DB) error {
	g.computeProgress()
	return nil
}
