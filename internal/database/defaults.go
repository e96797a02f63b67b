package database

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/jask/inventorly/internal/database/repository"
	"github.com/jask/inventorly/internal/forms"
)

//go:embed fixtures.toml
var fixturesTOML string

type fixtureFile struct {
	Projects []struct {
		Key      string `toml:"key"`
		Name     string `toml:"name"`
		Client   string `toml:"client"`
		Location string `toml:"location"`
		Status   string `toml:"status"`
	} `toml:"projects"`
	Items []struct {
		Name         string   `toml:"name"`
		Category     string   `toml:"category"`
		Location     string   `toml:"location"`
		PurchaseCost string   `toml:"purchase_cost"`
		Quantity     int      `toml:"quantity"`
		Tags         []string `toml:"tags"`
		Status       string   `toml:"status"`
		SerialNumber string   `toml:"serial_number"`
		Notes        string   `toml:"notes"`
	} `toml:"items"`
	Assignments []struct {
		Item     string `toml:"item"`
		Project  string `toml:"project"`
		Quantity int    `toml:"quantity"`
		Note     string `toml:"note"`
	} `toml:"assignments"`
}

// ProjectID derives the stable id of a fixture project from its key.
func ProjectID(key string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("project:"+key)).String()
}

// SeedDefaults loads the demo projects, items and assignments into an empty
// store. It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, store repository.Store) error {
	existing, err := store.Items.List(ctx)
	if err != nil {
		return fmt.Errorf("check existing items: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	var fx fixtureFile
	if _, err := toml.Decode(fixturesTOML, &fx); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	for _, p := range fx.Projects {
		proj := repository.Project{ID: ProjectID(p.Key), Name: p.Name, Client: p.Client, Location: p.Location, Status: p.Status}
		if err := store.Projects.Upsert(ctx, proj); err != nil {
			return fmt.Errorf("seed project %s: %w", p.Key, err)
		}
	}

	itemIDs := make(map[string]int64, len(fx.Items))
	for _, it := range fx.Items {
		cost, err := forms.ParseCents(it.PurchaseCost)
		if err != nil {
			return fmt.Errorf("seed item %s: %w", it.Name, err)
		}
		row := repository.Item{
			Name:              it.Name,
			Category:          it.Category,
			Location:          it.Location,
			PurchaseCostCents: cost,
			Quantity:          it.Quantity,
			Tags:              it.Tags,
			Status:            it.Status,
			SerialNumber:      optional(it.SerialNumber),
			Notes:             optional(it.Notes),
		}
		id, err := store.Items.Insert(ctx, row)
		if err != nil {
			return fmt.Errorf("seed item %s: %w", it.Name, err)
		}
		itemIDs[it.Name] = id
	}

	for _, a := range fx.Assignments {
		itemID, ok := itemIDs[a.Item]
		if !ok {
			return fmt.Errorf("seed assignment: unknown item %q", a.Item)
		}
		asg := repository.Assignment{
			ID:        uuid.NewSHA1(uuid.NameSpaceOID, []byte("assignment:"+a.Item+":"+a.Project)).String(),
			ItemID:    itemID,
			ProjectID: ProjectID(a.Project),
			Quantity:  a.Quantity,
			Note:      optional(a.Note),
		}
		if err := store.Assignments.Insert(ctx, asg); err != nil {
			return fmt.Errorf("seed assignment %s: %w", a.Item, err)
		}
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
