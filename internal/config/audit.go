package config

import (
	"fmt"

	"github.com/registrar-tools/tally/internal/quota"
)

// AuditConfig holds the sampling run parameters: the record owner identity
// stamped on created groups, the group access-control role lists, and the
// ordered category definitions. Category order decides both identifier
// ownership precedence and report section order.
type AuditConfig struct {
	OwnerID         string           `toml:"owner_id"`
	OwnerName       string           `toml:"owner_name"`
	GroupModule     string           `toml:"group_module"`
	EditRoles       []string         `toml:"edit_roles"`
	DisplayRoles    []string         `toml:"display_roles"`
	DeleteRoles     []string         `toml:"delete_roles"`
	DetailBatchSize int              `toml:"detail_batch_size"`
	Categories      []CategoryConfig `toml:"categories"`
}

// CategoryConfig defines one sampling category. Predicate is an opaque SQL
// fragment restricting the record population; an empty predicate matches
// the whole collection. Rule selects the quota variant: "all", "fixed"
// (with count), or "percent" (with percent, min, max).
type CategoryConfig struct {
	Name      string `toml:"name"`
	Predicate string `toml:"predicate"`
	Rule      string `toml:"rule"`
	Count     int    `toml:"count"`
	Percent   int    `toml:"percent"`
	Min       int    `toml:"min"`
	Max       int    `toml:"max"`
	Baseline  bool   `toml:"baseline"`
}

// QuotaRule maps the category's rule fields onto a quota.Rule.
func (c *CategoryConfig) QuotaRule() quota.Rule {
	switch quota.Kind(c.Rule) {
	case quota.KindAll:
		return quota.All()
	case quota.KindFixed:
		return quota.Fixed(c.Count)
	case quota.KindPercent:
		return quota.PercentWithBounds(c.Percent, c.Min, c.Max)
	default:
		return quota.Rule{Kind: quota.Kind(c.Rule)}
	}
}

// Finalize applies defaults and validation.
func (a *AuditConfig) Finalize() error {
	a.loadDefaults()
	return a.validate()
}

// Merge overwrites non-zero fields from overlay. A non-empty overlay
// category list replaces the base list wholesale; categories do not merge
// element-wise.
func (a *AuditConfig) Merge(overlay *AuditConfig) {
	if overlay.OwnerID != "" {
		a.OwnerID = overlay.OwnerID
	}
	if overlay.OwnerName != "" {
		a.OwnerName = overlay.OwnerName
	}
	if overlay.GroupModule != "" {
		a.GroupModule = overlay.GroupModule
	}
	if len(overlay.EditRoles) > 0 {
		a.EditRoles = overlay.EditRoles
	}
	if len(overlay.DisplayRoles) > 0 {
		a.DisplayRoles = overlay.DisplayRoles
	}
	if len(overlay.DeleteRoles) > 0 {
		a.DeleteRoles = overlay.DeleteRoles
	}
	if overlay.DetailBatchSize != 0 {
		a.DetailBatchSize = overlay.DetailBatchSize
	}
	if len(overlay.Categories) > 0 {
		a.Categories = overlay.Categories
	}
}

func (a *AuditConfig) loadDefaults() {
	if a.OwnerID == "" {
		a.OwnerID = "tally"
	}
	if a.OwnerName == "" {
		a.OwnerName = "Collection Audit"
	}
	if a.GroupModule == "" {
		a.GroupModule = "records"
	}
	if len(a.EditRoles) == 0 {
		a.EditRoles = []string{"audit-admin"}
	}
	if len(a.DisplayRoles) == 0 {
		a.DisplayRoles = []string{"audit-admin", "audit-review"}
	}
	if len(a.DeleteRoles) == 0 {
		a.DeleteRoles = []string{"audit-admin"}
	}
	if a.DetailBatchSize == 0 {
		a.DetailBatchSize = 500
	}
	if len(a.Categories) == 0 {
		a.Categories = defaultCategories()
	}
}

func (a *AuditConfig) validate() error {
	baselines := 0
	for i, cat := range a.Categories {
		if cat.Name == "" {
			return fmt.Errorf("category %d: name required", i)
		}
		if err := cat.QuotaRule().Validate(); err != nil {
			return fmt.Errorf("category %q: %w", cat.Name, err)
		}
		if cat.Baseline {
			baselines++
			if i != len(a.Categories)-1 {
				return fmt.Errorf("category %q: baseline must be the final category", cat.Name)
			}
		}
	}
	if baselines != 1 {
		return fmt.Errorf("exactly one baseline category required, found %d", baselines)
	}
	return nil
}

// defaultCategories is the stock audit plan: every rare item, a bounded
// share of high-value items, a fixed draw of recent acquisitions, and a
// small baseline slice of the general collection.
func defaultCategories() []CategoryConfig {
	return []CategoryConfig{
		{
			Name:      "Rare and Special Holdings",
			Predicate: "r.value_class = 'rare'",
			Rule:      string(quota.KindAll),
		},
		{
			Name:      "High Value Items",
			Predicate: "r.value_class = 'high'",
			Rule:      string(quota.KindPercent),
			Percent:   30,
			Min:       5,
			Max:       200,
		},
		{
			Name:      "Recent Acquisitions",
			Predicate: "r.accessioned_at >= now() - interval '1 year'",
			Rule:      string(quota.KindFixed),
			Count:     50,
		},
		{
			Name:     "General Collection",
			Rule:     string(quota.KindPercent),
			Percent:  5,
			Min:      25,
			Max:      500,
			Baseline: true,
		},
	}
}
