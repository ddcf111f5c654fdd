package types

import (
	"fmt"
	"time"
)

// RepositoryRef identifies a repository on the milestone tracker.
type RepositoryRef struct {
	Owner string `json:"owner" yaml:"owner" toml:"owner"`
	Name  string `json:"name" yaml:"name" toml:"name"`
}

// String returns "owner/name".
func (r RepositoryRef) String() string { return fmt.Sprintf("%s/%s", r.Owner, r.Name) }

// Valid reports whether both parts are set.
func (r RepositoryRef) Valid() bool { return r.Owner != "" && r.Name != "" }

// MilestoneState is the open/closed state reported by the tracker.
type MilestoneState string

const (
	MilestoneOpen   MilestoneState = "open"
	MilestoneClosed MilestoneState = "closed"
)

// Milestone is a tracker milestone. Number is assigned by the tracker.
type Milestone struct {
	Number     int64          `json:"number,omitempty" yaml:"number,omitempty"`
	Title      string         `json:"title" yaml:"title"`
	State      MilestoneState `json:"state,omitempty" yaml:"state,omitempty"`
	DueOn      time.Time      `json:"due_on" yaml:"due_on"`
	OpenIssues int            `json:"open_issues" yaml:"open_issues"`
}

// DueDate returns the UTC calendar date of DueOn.
func (m Milestone) DueDate() Date { return DateOf(m.DueOn.UTC()) }

// NewMilestone returns an open milestone titled title, due at noon UTC on due.
func NewMilestone(title string, due Date) Milestone {
	return Milestone{
		Title: title,
		State: MilestoneOpen,
		DueOn: due.AtNoonUTC(),
	}
}
