package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jask/inventorly/internal/database/repository"
	"github.com/jask/inventorly/internal/forms"
)

// RowStatus classifies a parsed upload row.
type RowStatus string

const (
	RowValid   RowStatus = "valid"
	RowWarning RowStatus = "warning"
	RowError   RowStatus = "error"
)

// BulkRow is one parsed line of an upload.
type BulkRow struct {
	Line     int
	Input    forms.ItemInput
	Status   RowStatus
	Problems []string
}

// Preview is the parsed upload shown before committing.
type Preview struct {
	FileName string
	Rows     []BulkRow
}

// Counts tallies rows per status.
func (p Preview) Counts() map[RowStatus]int {
	c := map[RowStatus]int{RowValid: 0, RowWarning: 0, RowError: 0}
	for _, r := range p.Rows {
		c[r.Status]++
	}
	return c
}

// CommitResult reports what a commit stored.
type CommitResult struct {
	Imported int
	Skipped  int
	Items    []repository.Item
}

// BulkService turns uploaded spreadsheets into items.
type BulkService struct {
	Items      repository.ItemStore
	Log        *zap.Logger
	ParseDelay time.Duration
}

// Preview parses an upload. The file content is drained but not interpreted:
// every upload yields the same demo rows.
func (s *BulkService) Preview(ctx context.Context, name string, r io.Reader) (Preview, error) {
	if r != nil {
		if _, err := io.Copy(io.Discard, r); err != nil {
			return Preview{}, fmt.Errorf("read %s: %w", name, err)
		}
	}
	if err := wait(ctx, s.ParseDelay); err != nil {
		return Preview{}, fmt.Errorf("parse %s: %w", name, err)
	}
	p := Preview{FileName: name, Rows: demoRows()}
	logger(s.Log).Info("upload parsed", zap.String("file", name), zap.Int("rows", len(p.Rows)))
	return p, nil
}

// Commit stores every row that is not an error and skips the rest.
func (s *BulkService) Commit(ctx context.Context, rows []BulkRow) (CommitResult, error) {
	var res CommitResult
	var batch []repository.Item
	for _, row := range rows {
		if row.Status == RowError {
			res.Skipped++
			continue
		}
		batch = append(batch, rowItem(row.Input))
	}
	ids, err := s.Items.InsertBatch(ctx, batch)
	if err != nil {
		return CommitResult{}, fmt.Errorf("import: %w", err)
	}
	for i, id := range ids {
		batch[i].ID = id
	}
	res.Items = batch
	res.Imported = len(batch)
	logger(s.Log).Info("items imported", zap.Int("imported", res.Imported), zap.Int("skipped", res.Skipped))
	return res, nil
}

// rowItem converts an upload row leniently: warning rows keep whatever parsed.
func rowItem(in forms.ItemInput) repository.Item {
	cost, _ := forms.ParseCents(in.PurchaseCost)
	qty, err := strconv.Atoi(strings.TrimSpace(in.Quantity))
	if err != nil || qty < 1 {
		qty = 1
	}
	return repository.Item{
		Name:              strings.TrimSpace(in.Name),
		Category:          strings.TrimSpace(in.Category),
		Location:          strings.TrimSpace(in.Location),
		PurchaseCostCents: max(cost, 0),
		Quantity:          qty,
		Tags:              forms.SplitTags(strings.ReplaceAll(in.Tags, ";", ",")),
		Status:            repository.StatusAvailable,
	}
}

// TemplateHeader is the header row of the upload template.
var TemplateHeader = []string{"Name", "Category", "Location", "Purchase Cost", "Quantity", "Tags"}

// WriteTemplate writes the CSV upload template with one sample row.
func WriteTemplate(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TemplateHeader); err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	if err := cw.Write([]string{"DeWalt 20V Cordless Drill", "Power Tools", "Warehouse A", "189.00", "4", "drill;dewalt"}); err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

func demoRows() []BulkRow {
	return []BulkRow{
		{Line: 2, Status: RowValid, Input: forms.ItemInput{
			Name: "DeWalt 20V Cordless Drill", Category: "Power Tools", Location: "Warehouse A",
			PurchaseCost: "189.00", Quantity: "4", Tags: "drill;dewalt"}},
		{Line: 3, Status: RowValid, Input: forms.ItemInput{
			Name: "Werner 6ft Step Ladder", Category: "Access Equipment", Location: "Warehouse A",
			PurchaseCost: "129.00", Quantity: "3", Tags: "ladder"}},
		{Line: 4, Status: RowValid, Input: forms.ItemInput{
			Name: "Generac 3600W Generator", Category: "Power Generation", Location: "Truck 1",
			PurchaseCost: "899.00", Quantity: "1", Tags: "generator"}},
		{Line: 5, Status: RowValid, Input: forms.ItemInput{
			Name: "Safety Harness", Category: "Safety", Location: "Warehouse B",
			PurchaseCost: "79.99", Quantity: "12", Tags: "safety;harness"}},
		{Line: 6, Status: RowWarning, Problems: []string{"Purchase cost is missing"}, Input: forms.ItemInput{
			Name: "Milwaukee Impact Driver", Category: "Power Tools", Location: "Warehouse A",
			Quantity: "2", Tags: "milwaukee"}},
		{Line: 7, Status: RowError, Problems: []string{"Name is required", "Quantity must be at least 1"}, Input: forms.ItemInput{
			Category: "Hand Tools", Location: "Warehouse C", PurchaseCost: "24.00", Quantity: "-3"}},
	}
}

// Stage is a step of the bulk upload screen.
type Stage int

const (
	StageUpload Stage = iota
	StagePreview
	StageProcessing
)

func (s Stage) String() string {
	switch s {
	case StagePreview:
		return "preview"
	case StageProcessing:
		return "processing"
	default:
		return "upload"
	}
}

// UploadSession tracks one pass through upload, preview and processing.
type UploadSession struct {
	stage   Stage
	parsing bool
	preview Preview
}

func (u *UploadSession) Stage() Stage     { return u.stage }
func (u *UploadSession) Parsing() bool    { return u.parsing }
func (u *UploadSession) Preview() Preview { return u.preview }

// Select marks a file as chosen; its parse is in flight.
func (u *UploadSession) Select() error {
	if u.stage != StageUpload || u.parsing {
		return ErrStage
	}
	u.parsing = true
	return nil
}

// Parsed moves to preview with the rows of p.
func (u *UploadSession) Parsed(p Preview) error {
	if u.stage != StageUpload || !u.parsing {
		return ErrStage
	}
	u.parsing = false
	u.preview = p
	u.stage = StagePreview
	return nil
}

// Commit enters processing and returns the rows to import.
func (u *UploadSession) Commit() ([]BulkRow, error) {
	if u.stage != StagePreview {
		return nil, ErrStage
	}
	u.stage = StageProcessing
	return u.preview.Rows, nil
}

// Reset returns to the upload step, discarding any preview.
func (u *UploadSession) Reset() {
	*u = UploadSession{}
}
