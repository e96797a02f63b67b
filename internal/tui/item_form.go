package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/inventorly/internal/forms"
	"github.com/jask/inventorly/internal/nav"
)

const (
	itemName = iota
	itemCategory
	itemLocation
	itemCost
	itemQuantity
	itemTags
	itemSerial
	itemNotes
)

var itemFieldKeys = [...]string{
	itemName:     forms.FieldName,
	itemCategory: forms.FieldCategory,
	itemLocation: forms.FieldLocation,
	itemCost:     forms.FieldCost,
	itemQuantity: forms.FieldQuantity,
	itemTags:     forms.FieldTags,
	itemSerial:   "serialNumber",
	itemNotes:    "notes",
}

type itemFormState struct {
	inputs []textinput.Model
	focus  int
	errs   forms.Errors
}

func newItemFormState() itemFormState {
	specs := []struct{ label, placeholder string }{
		itemName:     {"Name", "DeWalt 20V Cordless Drill"},
		itemCategory: {"Category", "Power Tools"},
		itemLocation: {"Location", "Warehouse A"},
		itemCost:     {"Purchase cost", "189.00"},
		itemQuantity: {"Quantity", "1"},
		itemTags:     {"Tags", "drill, dewalt"},
		itemSerial:   {"Serial number", "optional"},
		itemNotes:    {"Notes", "optional"},
	}
	inputs := make([]textinput.Model, len(specs))
	for i, s := range specs {
		in := textinput.New()
		in.Prompt = s.label + ": "
		in.Placeholder = s.placeholder
		in.CharLimit = 120
		inputs[i] = in
	}
	return itemFormState{inputs: inputs, errs: forms.Errors{}}
}

func (s *itemFormState) setFocus(field int) tea.Cmd {
	for i := range s.inputs {
		s.inputs[i].Blur()
	}
	s.focus = (field + len(s.inputs)) % len(s.inputs)
	return s.inputs[s.focus].Focus()
}

func (s *itemFormState) input() forms.ItemInput {
	v := func(i int) string { return s.inputs[i].Value() }
	return forms.ItemInput{
		Name:         v(itemName),
		Category:     v(itemCategory),
		Location:     v(itemLocation),
		PurchaseCost: v(itemCost),
		Quantity:     v(itemQuantity),
		Tags:         v(itemTags),
		SerialNumber: v(itemSerial),
		Notes:        v(itemNotes),
	}
}

func (a *App) enterItemForm() tea.Cmd {
	for i := range a.itemForm.inputs {
		a.itemForm.inputs[i].Reset()
	}
	a.itemForm.errs = forms.Errors{}
	return a.itemForm.setFocus(itemName)
}

func (a *App) handleItemFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Back):
		return a, a.fire(nav.Back{})
	case key.Matches(m, a.keys.Bulk):
		return a, a.fire(nav.RequestBulkUpload{})
	case key.Matches(m, a.keys.Save):
		return a.saveItem()
	case key.Matches(m, a.keys.Submit):
		if a.itemForm.focus == len(a.itemForm.inputs)-1 {
			return a.saveItem()
		}
		return a, a.itemForm.setFocus(a.itemForm.focus + 1)
	case key.Matches(m, a.keys.Next):
		return a, a.itemForm.setFocus(a.itemForm.focus + 1)
	case key.Matches(m, a.keys.Prev):
		return a, a.itemForm.setFocus(a.itemForm.focus - 1)
	}
	if a.busy {
		return a, nil
	}
	f := a.itemForm.focus
	before := a.itemForm.inputs[f].Value()
	var cmd tea.Cmd
	a.itemForm.inputs[f], cmd = a.itemForm.inputs[f].Update(m)
	if a.itemForm.inputs[f].Value() != before {
		a.itemForm.errs.Clear(itemFieldKeys[f])
	}
	return a, cmd
}

func (a *App) saveItem() (tea.Model, tea.Cmd) {
	if a.busy {
		return a, nil
	}
	in := a.itemForm.input()
	if _, errs := in.Validate(); errs.Any() {
		a.itemForm.errs = errs
		return a, nil
	}
	items := a.services.Items
	a.busy = true
	return a, a.run(func(ctx context.Context) tea.Msg {
		similar, err := items.Similar(ctx, in.Name)
		if err != nil {
			return errMsg{err}
		}
		it, err := items.Create(ctx, in)
		if err != nil {
			return errMsg{err}
		}
		return itemSavedMsg{item: it, similar: similar}
	})
}

func (a *App) onItemSaved(m itemSavedMsg) {
	msg := "Added " + m.item.Name
	if len(m.similar) > 0 {
		names := make([]string, 0, len(m.similar))
		for _, s := range m.similar {
			names = append(names, s.Name)
		}
		msg += " (looks like " + strings.Join(names, ", ") + ")"
	}
	a.setStatus(msg)
}

func (a *App) renderItemForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Add an item") + "\n")
	b.WriteString(mutedStyle.Render("Have a spreadsheet? ctrl+b for bulk upload.") + "\n\n")
	for i, in := range a.itemForm.inputs {
		b.WriteString(in.View() + "\n")
		if msg := a.itemForm.errs.Get(itemFieldKeys[i]); msg != "" {
			b.WriteString(errorStyle.Render("  "+msg) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
