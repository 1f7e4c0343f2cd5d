package triage

// Classification is the derived severity view of one result record. It is
// recomputed on demand and never stored independently of the record.
type Classification struct {
	OverallSeverity Severity  `json:"overall_severity"`
	IsAbnormal      bool      `json:"is_abnormal"`
	IsCritical      bool      `json:"is_critical"`
	Findings        []Finding `json:"findings"`
}

// Aggregate reduces a finding list to a classification by taking the
// maximum severity. An empty list is None. Adding a finding can only raise
// the overall severity, never lower it.
func Aggregate(findings []Finding) Classification {
	overall := SeverityNone
	for _, f := range findings {
		overall = maxSeverity(overall, f.Severity)
	}
	return Classification{
		OverallSeverity: overall,
		IsAbnormal:      overall >= SeverityAbnormal,
		IsCritical:      overall == SeverityCritical,
		Findings:        findings,
	}
}

// Engine ties the rule catalog and imaging classifier together. It is
// read-only after construction and safe for concurrent use.
type Engine struct {
	catalog *Catalog
	imaging *ImagingClassifier
}

// NewEngine builds an engine. A nil catalog falls back to the built-in
// default; a nil imaging classifier gets the default phrase list.
func NewEngine(catalog *Catalog, imaging *ImagingClassifier) *Engine {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if imaging == nil {
		imaging = NewImagingClassifier(DefaultNormalPhrases())
	}
	return &Engine{catalog: catalog, imaging: imaging}
}

// Catalog exposes the engine's rule table for display and export consumers.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Classify derives the severity classification for a record. Severity review
// happens once results are final: pending records always classify as None
// regardless of payload content. Imaging records cap at Abnormal.
func (e *Engine) Classify(rec ResultRecord) Classification {
	if rec.Status != StatusCompleted {
		return Classification{OverallSeverity: SeverityNone, Findings: nil}
	}
	if rec.Kind.IsImaging() {
		if e.imaging.Abnormal(rec.Findings, rec.Impression) {
			return Aggregate([]Finding{{
				Panel:    "Imaging",
				Field:    "Report",
				Severity: SeverityAbnormal,
				Message:  "report flagged for review",
			}})
		}
		return Aggregate(nil)
	}
	return Aggregate(e.catalog.Evaluate(rec.Panels))
}
