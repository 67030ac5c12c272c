package audit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/registrar-tools/tally/internal/groups"
	"github.com/registrar-tools/tally/internal/records"
	"github.com/registrar-tools/tally/internal/render"
	"github.com/registrar-tools/tally/internal/report"
	"github.com/registrar-tools/tally/internal/sampling"
	"github.com/registrar-tools/tally/internal/selection"
)

// Request parameterizes one pipeline run. A nil Seed selects the
// non-reproducible system randomness source; a set Seed reproduces the
// identical selection for identical populations. DryRun computes and
// renders everything but skips group persistence.
type Request struct {
	Collection string
	Seed       *uint64
	DryRun     bool
	OutputDir  string
}

// Result reports a completed run.
type Result struct {
	ArtifactPath string
	Pages        int
	Selected     int
	Sections     int
	Group        *groups.Group
}

// Run executes the pipeline end to end. The run is a single linear batch:
// each external call blocks to completion, and no step retries, since
// group creation is not idempotent and unseeded sampling is not
// reproducible.
func (rt *Runtime) Run(ctx context.Context, req Request) (*Result, error) {
	if err := rt.Records.ValidateCollection(ctx, req.Collection); err != nil {
		return nil, err
	}

	engine := sampling.New(source(req.Seed))
	runDate := time.Now()

	samples, err := rt.drawCategories(ctx, req.Collection, engine)
	if err != nil {
		return nil, err
	}

	merged := selection.Merge(samples)
	rt.Logger.Info(
		"selection merged",
		"collection", req.Collection,
		"selected", len(merged.Ordered),
	)

	details, err := rt.Records.Details(ctx, merged.Ordered)
	if err != nil {
		return nil, err
	}

	doc := report.Assemble(req.Collection, rt.sectionDetails(merged, details), runDate)

	outPath := artifactPath(req.OutputDir, req.Collection, runDate)
	pages, err := render.Paginate(ctx, rt.Renderer, rt.Logger, doc, outPath)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ArtifactPath: outPath,
		Pages:        pages,
		Selected:     len(merged.Ordered),
		Sections:     len(doc.Sections),
	}

	if !req.DryRun {
		group, err := rt.Groups.Create(ctx, rt.groupCommand(req.Collection, merged, runDate))
		if err != nil {
			// The rendered artifact stays on disk for manual follow-up.
			return nil, err
		}
		result.Group = group
	}

	if rt.Archive != nil {
		if err := rt.archiveArtifact(ctx, outPath); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// drawCategories computes each category's quota from its population size
// and draws its sample, in configured order.
func (rt *Runtime) drawCategories(
	ctx context.Context,
	collection string,
	engine *sampling.Engine,
) ([]selection.CategorySample, error) {
	categories := rt.Config.Audit.Categories
	samples := make([]selection.CategorySample, 0, len(categories))

	for _, cat := range categories {
		population, err := rt.Records.Population(ctx, collection, cat.Predicate)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", cat.Name, err)
		}

		q, err := cat.QuotaRule().Quota(len(population))
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", cat.Name, err)
		}

		sample, err := engine.Draw(population, q)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", cat.Name, err)
		}

		rt.Logger.Info(
			"category sampled",
			"category", cat.Name,
			"population", len(population),
			"quota", q,
		)
		rt.Logger.Debug(
			"selection restriction",
			"category", cat.Name,
			"where", sample.InclusionPredicate("r.id"),
		)

		samples = append(samples, selection.CategorySample{
			Category: cat.Name,
			IDs:      sample.IDs,
		})
	}

	return samples, nil
}

// sectionDetails rebuilds per-category detail lists from the batched fetch.
// A record drawn by several categories appears in each of their sections;
// only the persisted membership is deduplicated.
func (rt *Runtime) sectionDetails(
	merged selection.Merged,
	details []records.Detail,
) []report.CategoryDetails {
	byID := make(map[int64]records.Detail, len(details))
	for _, d := range details {
		byID[d.ID] = d
	}

	categories := rt.Config.Audit.Categories
	sections := make([]report.CategoryDetails, 0, len(categories))

	for i, cat := range merged.Categories {
		catDetails := make([]records.Detail, 0, len(cat.IDs))
		for _, id := range cat.IDs {
			if d, ok := byID[id]; ok {
				catDetails = append(catDetails, d)
			}
		}
		records.SortDetails(catDetails)

		sections = append(sections, report.CategoryDetails{
			Name:     cat.Category,
			Baseline: categories[i].Baseline,
			Details:  catDetails,
		})
	}

	return sections
}

func (rt *Runtime) groupCommand(
	collection string,
	merged selection.Merged,
	runDate time.Time,
) groups.CreateCommand {
	audit := rt.Config.Audit
	date := runDate.Format("2006-01-02")

	return groups.CreateCommand{
		Name: fmt.Sprintf("%s audit %s", collection, date),
		Description: fmt.Sprintf(
			"Audit sample of %d records drawn from %s on %s",
			len(merged.Ordered), collection, date,
		),
		UserID:       audit.OwnerID,
		UserName:     audit.OwnerName,
		Module:       audit.GroupModule,
		MemberIDs:    merged.Ordered,
		EditRoles:    audit.EditRoles,
		DisplayRoles: audit.DisplayRoles,
		DeleteRoles:  audit.DeleteRoles,
	}
}

func (rt *Runtime) archiveArtifact(ctx context.Context, path string) error {
	key := filepath.Base(path)

	exists, err := rt.Archive.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check archived artifact: %w", err)
	}
	if exists {
		rt.Logger.Warn("archived artifact already present, replacing", "key", key)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open artifact for archive: %w", err)
	}
	defer f.Close()

	return rt.Archive.Upload(ctx, key, f, "application/pdf")
}

func source(seed *uint64) sampling.Source {
	if seed != nil {
		return sampling.SeededSource(*seed)
	}
	return sampling.SystemSource()
}

func artifactPath(dir, collection string, runDate time.Time) string {
	name := fmt.Sprintf("%s-audit-%s.pdf", collection, runDate.Format("2006-01-02"))
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
