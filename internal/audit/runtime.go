// Package audit orchestrates the sampling and report pipeline: quota
// computation per category, random selection, merge, detail retrieval,
// two-pass rendering, and group persistence.
package audit

import (
	"log/slog"

	"github.com/registrar-tools/tally/internal/config"
	"github.com/registrar-tools/tally/internal/groups"
	"github.com/registrar-tools/tally/internal/records"
	"github.com/registrar-tools/tally/internal/render"
	"github.com/registrar-tools/tally/pkg/archive"
)

// Runtime bundles the collaborators the pipeline requires. It is
// constructed by the CLI from configuration; Archive may be nil when
// report archival is disabled.
type Runtime struct {
	Config   *config.Config
	Records  records.System
	Renderer render.Renderer
	Groups   groups.System
	Archive  archive.System
	Logger   *slog.Logger
}
