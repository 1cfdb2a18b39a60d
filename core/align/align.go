package align

import (
	"fmt"

	"github.com/thermoflux/heattrap/internal"
	"github.com/thermoflux/heattrap/schema"
)

// Extract slices each period out of its source frame, re-expresses it on a
// relative-seconds axis anchored at the period's declared start, and
// optionally re-anchors the whole batch at the first reference-temperature
// crossing.
//
// Each period retains the samples in [start-preroll, end]. The first
// retained sample sits at -preroll seconds, so t=0 lands on the declared
// start regardless of the other periods. A period whose selection is empty
// is skipped with a warning and left out of the result; a missing reference
// column is a data error and aborts the batch.
//
// When spec is non-nil, the crossing is the first retained sample whose
// reference value reaches or drops below the target. If every period
// crosses, each one is shifted by its own crossing so all crossings land at
// zero; if any period never crosses, alignment is dropped for the whole
// batch and every period keeps its start-anchored axis.
func Extract(periods []schema.Period, spec *schema.AlignmentSpec) (*schema.AlignResult, error) {
	res := &schema.AlignResult{
		Periods: make(map[string]*schema.WindowedSeries, len(periods)),
	}

	refs := make(map[string]float64, len(periods))
	refsOK := spec != nil

	for _, p := range periods {
		ws, ref, err := extractPeriod(p, spec)
		if err != nil {
			return nil, err
		}
		if ws == nil {
			internal.Warning(fmt.Sprintf("No data found for %s period", p.Name))
			res.Skipped = append(res.Skipped, p.Name)
			continue
		}
		res.Order = append(res.Order, p.Name)
		res.Periods[p.Name] = ws

		if spec != nil {
			if ref == nil {
				internal.Warning(fmt.Sprintf("Period %s never reaches %.1f on %q", p.Name, spec.TargetValue, spec.ReferenceColumn))
				refsOK = false
			} else {
				refs[p.Name] = *ref
			}
		}
	}

	// All-or-nothing: one period without a crossing disables alignment
	// for the whole batch.
	if spec != nil && !refsOK {
		internal.Warning("Some periods do not reach the target; skipping reference alignment")
	}
	if refsOK && len(res.Order) > 0 {
		res.Aligned = true
		res.Shifts = make(map[string]float64, len(res.Order))
		for _, name := range res.Order {
			shift := refs[name]
			ws := res.Periods[name]
			for i := range ws.Seconds {
				ws.Seconds[i] -= shift
			}
			ws.Shift = shift
			ws.Status = schema.AlignedStatus
			res.Shifts[name] = shift
		}
	}
	return res, nil
}

// extractPeriod selects and re-bases one period. It returns a nil series
// for an empty selection, and the crossing point in relative seconds when
// spec is given and the target is reached.
func extractPeriod(p schema.Period, spec *schema.AlignmentSpec) (*schema.WindowedSeries, *float64, error) {
	if p.Source == nil {
		return nil, nil, fmt.Errorf("period %q has no source frame", p.Name)
	}
	var refVals []float64
	if spec != nil {
		var err error
		refVals, err = p.Source.Column(spec.ReferenceColumn)
		if err != nil {
			return nil, nil, fmt.Errorf("period %q: %w", p.Name, err)
		}
	}

	from := p.Start.Add(-p.Preroll)
	sel := make([]int, 0, p.Source.Len())
	for i, t := range p.Source.Times {
		if !t.Before(from) && !t.After(p.End) {
			sel = append(sel, i)
		}
	}
	if len(sel) == 0 {
		return nil, nil, nil
	}

	ws := &schema.WindowedSeries{
		Period:  p.Name,
		Columns: append([]string(nil), p.Source.Columns...),
		Seconds: make([]float64, len(sel)),
		Values:  make(map[string][]float64, len(p.Source.Columns)),
		Status:  schema.UnalignedStatus,
	}
	first := p.Source.Times[sel[0]]
	preroll := p.Preroll.Seconds()
	for j, i := range sel {
		ws.Seconds[j] = p.Source.Times[i].Sub(first).Seconds() - preroll
	}
	for _, col := range ws.Columns {
		src := p.Source.Values[col]
		dst := make([]float64, len(sel))
		for j, i := range sel {
			dst[j] = src[i]
		}
		ws.Values[col] = dst
	}

	var ref *float64
	if spec != nil {
		for j, i := range sel {
			if refVals[i] <= spec.TargetValue {
				r := ws.Seconds[j]
				ref = &r
				break
			}
		}
	}
	return ws, ref, nil
}

// Reports summarizes an aligner batch for the run archive, including the
// periods skipped for lack of data.
func Reports(res *schema.AlignResult) []schema.PeriodReport {
	out := make([]schema.PeriodReport, 0, len(res.Order)+len(res.Skipped))
	for _, name := range res.Order {
		ws := res.Periods[name]
		r := schema.PeriodReport{
			Period:       name,
			RowsRetained: ws.Len(),
			ShiftSeconds: ws.Shift,
			Status:       ws.Status,
		}
		if ws.Len() > 0 {
			r.FirstSeconds = ws.Seconds[0]
			r.LastSeconds = ws.Seconds[ws.Len()-1]
		}
		out = append(out, r)
	}
	for _, name := range res.Skipped {
		out = append(out, schema.PeriodReport{Period: name, Status: schema.SkippedStatus})
	}
	return out
}
