package reconcile

// Kind tells how a referenced resource is deleted.
type Kind string

const (
	KindRole     Kind = "role"
	KindChannel  Kind = "channel"
	KindCategory Kind = "category"
)

// Ref points at a live resource. The zero value means "not provisioned".
type Ref struct {
	ID   uint64 `gorm:"column:id"`
	Kind Kind   `gorm:"column:kind;size:16"`
}

// NewRef builds a reference to a live resource.
func NewRef(id uint64, kind Kind) Ref {
	return Ref{ID: id, Kind: kind}
}

// IsSet reports whether the reference points at something.
func (r Ref) IsSet() bool {
	return r.ID != 0
}

// Same compares references by remote id only; Kind is metadata.
func (r Ref) Same(other Ref) bool {
	return r.ID == other.ID
}

// IsRole reports whether the resource is deleted as a role rather than a channel.
func (r Ref) IsRole() bool {
	return r.Kind == KindRole
}

// Slot is one named reference field of a record.
type Slot struct {
	Name string
	Ref  *Ref
}

// Record exposes its reference fields in a fixed order.
// Two records of the same type must return slots in the same order.
type Record interface {
	Slots() []Slot
}

// AnySet reports whether at least one slot of rec is populated.
func AnySet(rec Record) bool {
	for _, s := range rec.Slots() {
		if s.Ref.IsSet() {
			return true
		}
	}
	return false
}
