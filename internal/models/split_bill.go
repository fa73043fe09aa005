package models

// BillStatus represents the aggregate state of a split bill.
type BillStatus string

const (
	BillStatusPending   BillStatus = "pending"
	BillStatusCompleted BillStatus = "completed"
	BillStatusCancelled BillStatus = "cancelled"
)

// ParticipantStatus represents a single participant's payment state.
type ParticipantStatus string

const (
	ParticipantStatusPending ParticipantStatus = "pending"
	ParticipantStatusPaid    ParticipantStatus = "paid"
)

// SplitBill represents a shared expense divided among participants. The
// aggregate status transitions pending -> completed automatically once every
// participant has paid; a completed bill never reverts on its own.
type SplitBill struct {
	Base
	UserID       string        `gorm:"type:uuid;not null;index" json:"userId"`
	TotalAmount  float64       `gorm:"not null" json:"totalAmount"`
	Description  string        `gorm:"not null" json:"description"`
	Status       BillStatus    `gorm:"not null;default:pending" json:"status"`
	Participants []Participant `gorm:"foreignKey:SplitBillID" json:"participants"`
}

// AllPaid reports whether every participant has settled their share.
func (b *SplitBill) AllPaid() bool {
	for _, p := range b.Participants {
		if p.Status != ParticipantStatusPaid {
			return false
		}
	}
	return len(b.Participants) > 0
}

// Participant represents one person's share of a split bill. Position
// preserves the order participants were submitted in.
type Participant struct {
	Base
	SplitBillID string            `gorm:"type:uuid;not null;index" json:"-"`
	Name        string            `gorm:"not null" json:"name"`
	Phone       string            `gorm:"not null" json:"phone"`
	Amount      float64           `gorm:"not null" json:"amount"`
	Status      ParticipantStatus `gorm:"not null;default:pending" json:"status"`
	Position    int               `gorm:"not null" json:"-"`
}
