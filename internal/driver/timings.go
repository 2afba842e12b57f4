package driver

import (
	"encoding/json"
	"fmt"

	"effectful/internal/diag"
	"effectful/internal/observ"
	"effectful/internal/source"
)

// recordTimings adds the timer as an OBS6001 info diagnostic whose only
// note is the JSON report. The entry is kept even when the bag is full.
func recordTimings(bag *diag.Bag, path string, timer *observ.Timer) {
	if bag == nil || timer == nil {
		return
	}
	report := timer.Report(path)
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", report.Kind, report.TotalMS)
	if path != "" {
		msg += " for " + path
	}
	entry := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, msg).
		WithNote(source.Span{}, string(data))
	if !bag.Add(entry) {
		extra := diag.NewBag(1)
		extra.Add(entry)
		bag.Merge(extra)
	}
}
