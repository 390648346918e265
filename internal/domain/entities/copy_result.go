package entities

// CopyErrorKind distinguishes why a per-coordinate copy failed.
type CopyErrorKind string

const (
	CopyErrNone           CopyErrorKind = ""
	CopyErrVersionMissing CopyErrorKind = "version-missing"
	CopyErrSourceMissing  CopyErrorKind = "source-missing"
	CopyErrPartial        CopyErrorKind = "partial"
	CopyErrWrite          CopyErrorKind = "write-failed"
)

// CopyResult is the outcome of copying one canonical coordinate from the
// source store to the target store. Exactly one result is produced per
// eligible coordinate.
type CopyResult struct {
	Coordinate  Coordinate    `json:"coordinate"`
	Succeeded   bool          `json:"succeeded"`
	SourceTried string        `json:"sourcePathTried,omitempty"`
	ErrorKind   CopyErrorKind `json:"errorKind,omitempty"`
	Error       string        `json:"error,omitempty"`
	FilesCopied int           `json:"filesCopied"`
}

// CopySummary aggregates the results of one copy phase. It is a plain fold
// over the per-worker results; nothing here is mutated concurrently.
type CopySummary struct {
	Results     []CopyResult
	Copied      int
	Failed      int
	FilesCopied int
}

// Summarize folds a result list into a summary.
func Summarize(results []CopyResult) *CopySummary {
	s := &CopySummary{Results: results}
	for _, r := range results {
		if r.Succeeded {
			s.Copied++
		} else {
			s.Failed++
		}
		s.FilesCopied += r.FilesCopied
	}
	return s
}

// Failures returns the failed results in input order.
func (s *CopySummary) Failures() []CopyResult {
	var out []CopyResult
	for _, r := range s.Results {
		if !r.Succeeded {
			out = append(out, r)
		}
	}
	return out
}
