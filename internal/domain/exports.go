package domain

import (
	interfaces "releasetrain/internal/domain/interfaces"
	types "releasetrain/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Train          = types.Train
	WeekOfMonth    = types.WeekOfMonth
	DayOfWeek      = types.DayOfWeek
	MilestoneCode  = types.MilestoneCode
	Stop           = types.Stop
	Date           = types.Date
	Spec           = types.Spec
	TrainDate      = types.TrainDate
	TrainDates     = types.TrainDates
	RepositoryRef  = types.RepositoryRef
	Milestone      = types.Milestone
	MilestoneState = types.MilestoneState
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	TrainService       = interfaces.TrainService
	ScheduleService    = interfaces.ScheduleService
	MilestoneTracker   = interfaces.MilestoneTracker
	WorkflowDispatcher = interfaces.WorkflowDispatcher
)
