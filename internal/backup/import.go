// ABOUTME: Snapshot restore engine with ID remapping and progress reporting.
// ABOUTME: The sole failure boundary: all internal errors become a failed Result.
package backup

import (
	"fmt"
	"time"

	"daytrack/internal/models"
	"daytrack/internal/storage"
)

// BatchSize is the number of values written per transaction during
// restore, bounding memory and statement volume between progress reports.
const BatchSize = 100

// Phase names one step of a restore. A restore moves through the phases
// in order and lands in PhaseFailed on the first error.
type Phase string

const (
	PhaseValidating        Phase = "validating"
	PhaseClearing          Phase = "clearing"
	PhaseRemapping         Phase = "remapping"
	PhaseWritingEvents     Phase = "writing events"
	PhaseWritingValues     Phase = "writing values"
	PhaseRestoringSettings Phase = "restoring settings"
	PhaseFailed            Phase = "failed"
)

// ProgressFunc receives a monotonically non-decreasing percentage and a
// human-readable phase message. Reporting is advisory only.
type ProgressFunc func(percent int, message string)

// Options controls a restore.
type Options struct {
	// ClearExisting deletes every current event (cascading away its
	// values) before anything is inserted. Destructive and not
	// reversible once begun.
	ClearExisting bool

	// OnProgress, when non-nil, is called at step boundaries and
	// between value batches.
	OnProgress ProgressFunc

	// ApplySetting restores one whitelisted setting key. When nil,
	// settings are skipped.
	ApplySetting func(key, value string) error
}

// Result is the outcome of a restore. Import never returns a Go error;
// failures are converted into a Result with OK false. Counts reflect
// whatever was written before a failure — restore is not atomic.
type Result struct {
	OK      bool
	Message string
	Events  int
	Values  int
	Skipped int
}

// Import restores a snapshot into the store. Incoming events receive new
// identities; values follow through an old-id to new-id mapping. Values
// whose event id has no mapping entry are skipped silently. Data written
// before a failure point is not rolled back.
func Import(repo storage.Repository, snap *Snapshot, opts Options) *Result {
	eng := &importEngine{repo: repo, opts: opts}
	return eng.run(snap)
}

type importEngine struct {
	repo    repository
	opts    Options
	percent int
	result  Result
}

// repository is the subset of storage.Repository restore needs.
type repository interface {
	CreateEvent(e *models.Event) error
	ListEvents() ([]*models.Event, error)
	DeleteEvent(id int64) error
	PutValues(values []*models.EventValue) error
}

func (eng *importEngine) run(snap *Snapshot) *Result {
	eng.report(0, "validating snapshot")
	if snap == nil {
		return eng.fail(PhaseValidating, FormatError{Reason: "no document"})
	}
	if err := snap.Validate(); err != nil {
		return eng.fail(PhaseValidating, err)
	}
	eng.report(5, "snapshot valid")

	if eng.opts.ClearExisting {
		if err := eng.clearExisting(); err != nil {
			return eng.fail(PhaseClearing, err)
		}
	}
	eng.report(10, "store ready")

	idMap, err := eng.writeEvents(snap.Events)
	if err != nil {
		return eng.fail(PhaseWritingEvents, err)
	}
	eng.report(30, fmt.Sprintf("restored %d events", eng.result.Events))

	if err := eng.writeValues(snap.EventValues, idMap); err != nil {
		return eng.fail(PhaseWritingValues, err)
	}
	eng.report(95, fmt.Sprintf("restored %d values", eng.result.Values))

	if err := eng.restoreSettings(snap.Settings); err != nil {
		return eng.fail(PhaseRestoringSettings, err)
	}

	eng.result.OK = true
	eng.result.Message = fmt.Sprintf("imported %d events and %d values (%d skipped)",
		eng.result.Events, eng.result.Values, eng.result.Skipped)
	eng.report(100, "import complete")
	return &eng.result
}

func (eng *importEngine) clearExisting() error {
	existing, err := eng.repo.ListEvents()
	if err != nil {
		return err
	}
	for _, e := range existing {
		if err := eng.repo.DeleteEvent(e.ID); err != nil {
			return err
		}
	}
	return nil
}

// writeEvents re-creates each incoming event. The store assigns new
// identities; the returned map translates document ids to store ids.
// Export ids are not portable: restoring into a non-empty store or a
// different device must not collide with existing identities.
func (eng *importEngine) writeEvents(records []EventRecord) (map[int64]int64, error) {
	idMap := make(map[int64]int64, len(records))
	for _, rec := range records {
		e := eventFromRecord(rec)
		if err := eng.repo.CreateEvent(e); err != nil {
			return nil, err
		}
		idMap[rec.ID] = e.ID
		eng.result.Events++
	}
	return idMap, nil
}

// writeValues re-inserts values through the id map in fixed-size
// batches. A value whose event id has no mapping entry referenced an
// event excluded from the export; it is skipped, not an error.
func (eng *importEngine) writeValues(records []ValueRecord, idMap map[int64]int64) error {
	mapped := make([]*models.EventValue, 0, len(records))
	for _, rec := range records {
		newID, exists := idMap[rec.EventID]
		if !exists {
			eng.result.Skipped++
			continue
		}
		v := &models.EventValue{
			EventID: newID,
			Date:    rec.Date,
			Value:   rec.Value,
		}
		v.Timestamp, _ = time.Parse(time.RFC3339, rec.Timestamp)
		mapped = append(mapped, v)
	}

	total := len(mapped)
	for start := 0; start < total; start += BatchSize {
		end := start + BatchSize
		if end > total {
			end = total
		}
		if err := eng.repo.PutValues(mapped[start:end]); err != nil {
			return err
		}
		eng.result.Values += end - start
		eng.report(30+65*end/total, fmt.Sprintf("restoring values (%d/%d)", end, total))
	}
	return nil
}

// restoreSettings applies the whitelisted settings subset. Unknown keys
// never reach here; the document type only carries known ones.
func (eng *importEngine) restoreSettings(s Settings) error {
	if eng.opts.ApplySetting == nil {
		return nil
	}
	if s.ColorScheme != "" {
		if err := eng.opts.ApplySetting("colorScheme", s.ColorScheme); err != nil {
			return err
		}
	}
	return nil
}

// report forwards progress to the caller's sink. Percentages never
// decrease even if phase arithmetic would dip.
func (eng *importEngine) report(percent int, message string) {
	if percent < eng.percent {
		percent = eng.percent
	}
	eng.percent = percent
	if eng.opts.OnProgress != nil {
		eng.opts.OnProgress(percent, message)
	}
}

func (eng *importEngine) fail(phase Phase, err error) *Result {
	eng.result.OK = false
	eng.result.Message = fmt.Sprintf("import failed while %s: %v", phase, err)
	eng.report(eng.percent, string(PhaseFailed))
	return &eng.result
}
