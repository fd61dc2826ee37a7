package types

import "strings"

// RelationshipType describes how a contributor is related to the patient
type RelationshipType string

const (
	RelationshipFamily    RelationshipType = "Family"
	RelationshipFriend    RelationshipType = "Friend"
	RelationshipPartner   RelationshipType = "Partner"
	RelationshipCaregiver RelationshipType = "Caregiver"
	RelationshipColleague RelationshipType = "Colleague"
	RelationshipOther     RelationshipType = "Other"
)

// AllRelationshipTypes returns the built-in relationship types
func AllRelationshipTypes() []RelationshipType {
	return []RelationshipType{
		RelationshipFamily,
		RelationshipFriend,
		RelationshipPartner,
		RelationshipCaregiver,
		RelationshipColleague,
		RelationshipOther,
	}
}

// IsKnown checks if the relationship type is one of the built-in types
func (r RelationshipType) IsKnown() bool {
	switch r {
	case RelationshipFamily,
		RelationshipFriend,
		RelationshipPartner,
		RelationshipCaregiver,
		RelationshipColleague,
		RelationshipOther:
		return true
	default:
		return false
	}
}

// Label returns the human readable label used in prompts. Unknown
// relationship types are kept verbatim since the model only needs a label.
func (r RelationshipType) Label() string {
	label := strings.TrimSpace(string(r))
	if label == "" {
		return string(RelationshipOther)
	}
	return label
}

// String returns the string representation of the relationship type
func (r RelationshipType) String() string {
	return string(r)
}
