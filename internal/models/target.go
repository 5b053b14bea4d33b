package models

// TargetKind enumerates the entity kinds that likes, comments and
// notifications can attach to.
type TargetKind string

const (
	TargetCat      TargetKind = "CAT"
	TargetSighting TargetKind = "SIGHTING"
	TargetPost     TargetKind = "POST"
	TargetComment  TargetKind = "COMMENT"
)

// Valid reports whether the kind is one of the registered target kinds.
func (k TargetKind) Valid() bool {
	switch k {
	case TargetCat, TargetSighting, TargetPost, TargetComment:
		return true
	}
	return false
}

// TargetRef is a (kind, id) pair addressing any likeable/commentable entity.
// It is a value type, not a stored row; referential integrity is checked by
// the target registry at write time because no single foreign key can span
// the four backing tables.
type TargetRef struct {
	Kind TargetKind `json:"kind"`
	ID   string     `json:"id"`
}
