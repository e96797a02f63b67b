package forms

import (
	"strconv"
	"strings"
)

// Item field keys.
const (
	FieldName     = "name"
	FieldCategory = "category"
	FieldLocation = "location"
	FieldCost     = "purchaseCost"
	FieldQuantity = "quantity"
	FieldTags     = "tags"
)

// ItemInput is the raw text of the add-item form.
type ItemInput struct {
	Name         string
	Category     string
	Location     string
	PurchaseCost string
	Quantity     string
	Tags         string
	SerialNumber string
	Notes        string
}

// ItemValues is a validated ItemInput.
type ItemValues struct {
	Name              string
	Category          string
	Location          string
	PurchaseCostCents int64
	Quantity          int
	Tags              []string
	SerialNumber      string
	Notes             string
}

// Validate checks the input and returns the parsed values when it is clean.
func (in ItemInput) Validate() (ItemValues, Errors) {
	errs := Errors{}
	v := ItemValues{
		Name:         strings.TrimSpace(in.Name),
		Category:     strings.TrimSpace(in.Category),
		Location:     strings.TrimSpace(in.Location),
		Tags:         SplitTags(in.Tags),
		SerialNumber: strings.TrimSpace(in.SerialNumber),
		Notes:        strings.TrimSpace(in.Notes),
	}
	if v.Name == "" {
		errs.Set(FieldName, "Item name is required")
	}
	if v.Category == "" {
		errs.Set(FieldCategory, "Category is required")
	}
	cost, err := ParseCents(in.PurchaseCost)
	switch {
	case err != nil:
		errs.Set(FieldCost, "Purchase cost must be a dollar amount")
	case cost < 0:
		errs.Set(FieldCost, "Purchase cost cannot be negative")
	default:
		v.PurchaseCostCents = cost
	}
	qty := strings.TrimSpace(in.Quantity)
	if qty == "" {
		qty = "1"
	}
	n, err := strconv.Atoi(qty)
	if err != nil || n < 1 {
		errs.Set(FieldQuantity, "Quantity must be a whole number of at least 1")
	} else {
		v.Quantity = n
	}
	return v, errs
}

// SplitTags splits a comma separated tag list, dropping blanks and duplicates.
func SplitTags(s string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, part := range strings.Split(s, ",") {
		p := strings.ToLower(strings.TrimSpace(part))
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
