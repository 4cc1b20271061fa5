package domain

import "time"

type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadQualified LeadStatus = "qualified"
	LeadConverted LeadStatus = "converted"
	LeadLost      LeadStatus = "lost"
)

var LeadStatuses = []LeadStatus{
	LeadNew, LeadContacted, LeadQualified, LeadConverted, LeadLost,
}

func (s LeadStatus) Valid() bool {
	for _, v := range LeadStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// DefaultLeadSource tags leads that arrive without an explicit source.
const DefaultLeadSource = "website"

type Lead struct {
	ID        uint64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string     `json:"name" gorm:"not null"`
	Email     string     `json:"email" gorm:"not null"`
	Phone     string     `json:"phone" gorm:"not null"`
	Message   string     `json:"message,omitempty" gorm:"type:text"`
	Source    string     `json:"source" gorm:"default:'website'"`
	Status    LeadStatus `json:"status" gorm:"type:enum('new','contacted','qualified','converted','lost');default:'new'"`
	CreatedAt time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}
