package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	AgentID  string
	RoundID  string
	AlertID  ID
	EngineID ID
)

// String conversions for domain IDs
func (id AgentID) String() string  { return string(id) }
func (id RoundID) String() string  { return string(id) }
func (id AlertID) String() string  { return ID(id).String() }
func (id EngineID) String() string { return ID(id).String() }

// NewAlertID creates a time-ordered alert identifier
func NewAlertID() AlertID { return AlertID(NewID()) }

// NewEngineID creates a time-ordered engine instance identifier
func NewEngineID() EngineID { return EngineID(NewID()) }

// ParseAgentID parses a string into AgentID
func ParseAgentID(s string) (AgentID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("agent ID cannot be empty")
	}
	return AgentID(s), nil
}

// ParseRoundID parses a string into RoundID
func ParseRoundID(s string) (RoundID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("round ID cannot be empty")
	}
	return RoundID(s), nil
}
