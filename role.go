// Package toolrun defines the domain types for a model-driven tool
// orchestration loop: transcripts of role-tagged turns, the tool catalog
// discovered from a tool session, and the interfaces of the collaborators
// the loop drives.
package toolrun

// Role identifies who authored a turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)
