// Package nav is the screen transition state machine behind the application
// shell. Screens are a closed set of structs; a screen that needs an item
// carries its id, so "item detail without an item" cannot be expressed.
package nav

import "fmt"

// Kind names a screen without its payload.
type Kind int

const (
	KindAuth Kind = iota
	KindVerify
	KindLoading
	KindDashboard
	KindAddItem
	KindBulkUpload
	KindLibrary
	KindItemDetail
	KindAssignToJob
	KindReports
)

var kindNames = [...]string{
	KindAuth:        "auth",
	KindVerify:      "verify",
	KindLoading:     "loading",
	KindDashboard:   "dashboard",
	KindAddItem:     "addItem",
	KindBulkUpload:  "bulkUpload",
	KindLibrary:     "library",
	KindItemDetail:  "itemDetail",
	KindAssignToJob: "assignToJob",
	KindReports:     "reports",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Screen is one of the ten top-level views.
type Screen interface {
	Kind() Kind
	screen()
}

type Auth struct{}

// Verify carries the digits-only phone number the code was sent to.
type Verify struct{ Phone string }

type Loading struct{}

type Dashboard struct{}

type AddItem struct{}

type BulkUpload struct{}

type Library struct{}

type ItemDetail struct{ ItemID int64 }

type AssignToJob struct{ ItemID int64 }

// Reports shows the inventory-wide report, or a single item's when ItemID is set.
type Reports struct{ ItemID int64 }

func (Auth) Kind() Kind        { return KindAuth }
func (Verify) Kind() Kind      { return KindVerify }
func (Loading) Kind() Kind     { return KindLoading }
func (Dashboard) Kind() Kind   { return KindDashboard }
func (AddItem) Kind() Kind     { return KindAddItem }
func (BulkUpload) Kind() Kind  { return KindBulkUpload }
func (Library) Kind() Kind     { return KindLibrary }
func (ItemDetail) Kind() Kind  { return KindItemDetail }
func (AssignToJob) Kind() Kind { return KindAssignToJob }
func (Reports) Kind() Kind     { return KindReports }

func (Auth) screen()        {}
func (Verify) screen()      {}
func (Loading) screen()     {}
func (Dashboard) screen()   {}
func (AddItem) screen()     {}
func (BulkUpload) screen()  {}
func (Library) screen()     {}
func (ItemDetail) screen()  {}
func (AssignToJob) screen() {}
func (Reports) screen()     {}

// ItemOf returns the item id carried by s, if any.
func ItemOf(s Screen) (int64, bool) {
	switch v := s.(type) {
	case ItemDetail:
		return v.ItemID, true
	case AssignToJob:
		return v.ItemID, true
	case Reports:
		return v.ItemID, v.ItemID != 0
	}
	return 0, false
}

// SignedIn reports whether s is behind the verification gate.
func SignedIn(s Screen) bool {
	switch s.Kind() {
	case KindAuth, KindVerify, KindLoading:
		return false
	}
	return true
}
