package models

// Role is the authorization tier of an admin account. Enforcement happens in
// the hosted backend; the dashboard only displays and edits the value.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleViewer    Role = "viewer"
)

var Roles = []Role{RoleAdmin, RoleModerator, RoleViewer}

func (r Role) Valid() bool {
	for _, v := range Roles {
		if r == v {
			return true
		}
	}
	return false
}

type TrashType string

const (
	TrashPlastic   TrashType = "plastic"
	TrashGlass     TrashType = "glass"
	TrashPaper     TrashType = "paper"
	TrashMetal     TrashType = "metal"
	TrashOrganic   TrashType = "organic"
	TrashHazardous TrashType = "hazardous"
	TrashMixed     TrashType = "mixed"
)

var TrashTypes = []TrashType{
	TrashPlastic, TrashGlass, TrashPaper, TrashMetal,
	TrashOrganic, TrashHazardous, TrashMixed,
}

func (t TrashType) Valid() bool {
	for _, v := range TrashTypes {
		if t == v {
			return true
		}
	}
	return false
}

// TrashStatus is the lifecycle state of a trash report.
type TrashStatus string

const (
	StatusReported   TrashStatus = "reported"
	StatusInProgress TrashStatus = "in_progress"
	StatusCleaned    TrashStatus = "cleaned"
	StatusRejected   TrashStatus = "rejected"
)

var TrashStatuses = []TrashStatus{StatusReported, StatusInProgress, StatusCleaned, StatusRejected}

func (s TrashStatus) Valid() bool {
	for _, v := range TrashStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool {
	for _, v := range Priorities {
		if p == v {
			return true
		}
	}
	return false
}

type LogLevel string

const (
	LevelInfo     LogLevel = "info"
	LevelWarning  LogLevel = "warning"
	LevelError    LogLevel = "error"
	LevelCritical LogLevel = "critical"
)

var LogLevels = []LogLevel{LevelInfo, LevelWarning, LevelError, LevelCritical}

func (l LogLevel) Valid() bool {
	for _, v := range LogLevels {
		if l == v {
			return true
		}
	}
	return false
}
