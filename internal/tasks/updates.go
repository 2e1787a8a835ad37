package tasks

import (
	"fmt"

	"github.com/abhishekmj303/ytm2spt/internal/models"
)

// ProgressUpdate represents a progress event during a transfer run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Transfer phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Transfer phase enumeration, in execution order.
type Phase int

const (
	ResolveSource Phase = iota
	FetchSource
	ResolveDest
	PrepareDest
	ProcessTracks
	Finalize
)

func (p Phase) String() string {
	switch p {
	case ResolveSource:
		return "resolve_source"
	case FetchSource:
		return "fetch_source"
	case ResolveDest:
		return "resolve_dest"
	case PrepareDest:
		return "prepare_dest"
	case ProcessTracks:
		return "process_tracks"
	case Finalize:
		return "finalize"
	default:
		return ""
	}
}

func resolveSourceUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveSource,
		Step:    1,
		Total:   1,
		Message: "Resolving source playlist...",
	}
}

func fetchSourceUpdate(title string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSource,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found playlist: %s (%d tracks)", title, count),
	}
}

func resolveDestUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveDest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Resolving destination playlist (%s)...", name),
	}
}

func prepareDestUpdate(message string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PrepareDest,
		Step:    1,
		Total:   1,
		Message: message,
	}
}

func processTrackUpdate(step, total int, track models.Track) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ProcessTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s - %s", step, total, track.Artist, track.Title),
	}
}

func finalizeUpdate(outcome *models.TransferOutcome) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Finalize,
		Step:    1,
		Total:   1,
		Message: outcome.Summary(),
		Data:    outcome,
	}
}
