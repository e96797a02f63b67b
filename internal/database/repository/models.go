package repository

import "time"

// Item statuses.
const (
	StatusAvailable   = "available"
	StatusAssigned    = "assigned"
	StatusMaintenance = "maintenance"
	StatusRetired     = "retired"
)

// ItemStatuses lists the item statuses in display order.
var ItemStatuses = []string{StatusAvailable, StatusAssigned, StatusMaintenance, StatusRetired}

// Project statuses.
const (
	ProjectActive    = "active"
	ProjectOnHold    = "on_hold"
	ProjectCompleted = "completed"
)

// User represents a registered account.
type User struct {
	ID           string
	FullName     string
	Phone        string
	BusinessName string
	CreatedAt    time.Time
}

// VerificationCode is an issued one-time code; only its hash is stored.
type VerificationCode struct {
	ID        string
	Phone     string
	CodeHash  string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// Item represents an inventory item row.
type Item struct {
	ID                int64
	Name              string
	Category          string
	Location          string
	PurchaseCostCents int64
	Quantity          int
	Tags              []string
	Status            string
	SerialNumber      *string
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ValueCents is the purchase cost of every unit of the item.
func (i Item) ValueCents() int64 {
	return i.PurchaseCostCents * int64(i.Quantity)
}

// Project represents a job site items get assigned to.
type Project struct {
	ID        string
	Name      string
	Client    string
	Location  string
	Status    string
	CreatedAt time.Time
}

// Assignment records items sent to a project.
type Assignment struct {
	ID         string
	ItemID     int64
	ProjectID  string
	Quantity   int
	Note       *string
	AssignedAt time.Time
}
