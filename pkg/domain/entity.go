package domain

import dErrors "accessexplorer/pkg/domain-errors"

// EntityType identifies what an explorer page is about.
// Invariant: the value must be one of the supported entity types.
type EntityType string

const (
	EntityAccessManager      EntityType = "access-manager"
	EntityAccessManaged      EntityType = "access-managed"
	EntityTarget             EntityType = "target"
	EntityRoleMember         EntityType = "role-member"
	EntityTimelockController EntityType = "timelock-controller"
)

var validEntityTypes = map[EntityType]bool{
	EntityAccessManager:      true,
	EntityAccessManaged:      true,
	EntityTarget:             true,
	EntityRoleMember:         true,
	EntityTimelockController: true,
}

// ParseEntityType constructs an EntityType from external input.
func ParseEntityType(s string) (EntityType, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "entity type cannot be empty")
	}
	t := EntityType(s)
	if !validEntityTypes[t] {
		return "", dErrors.New(dErrors.CodeBadRequest, "unsupported entity type: "+s)
	}
	return t, nil
}

func (t EntityType) String() string {
	return string(t)
}

// Label is the badge shown next to an entity.
func (t EntityType) Label() string {
	switch t {
	case EntityAccessManager:
		return "Manager"
	case EntityAccessManaged:
		return "Managed"
	case EntityTarget:
		return "Target"
	case EntityRoleMember:
		return "Member"
	case EntityTimelockController:
		return "Timelock"
	default:
		return string(t)
	}
}
