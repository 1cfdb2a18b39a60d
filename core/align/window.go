package align

import "github.com/thermoflux/heattrap/schema"

// Clip returns a copy of ws restricted to relative seconds in [min, max].
// It is a pure filter over the already-computed axis, so the same aligned
// series can be clipped at several zoom levels without recomputation.
func Clip(ws *schema.WindowedSeries, min, max float64) *schema.WindowedSeries {
	sel := make([]int, 0, len(ws.Seconds))
	for i, s := range ws.Seconds {
		if s >= min && s <= max {
			sel = append(sel, i)
		}
	}

	out := &schema.WindowedSeries{
		Period:  ws.Period,
		Columns: append([]string(nil), ws.Columns...),
		Seconds: make([]float64, len(sel)),
		Values:  make(map[string][]float64, len(ws.Columns)),
		Shift:   ws.Shift,
		Status:  ws.Status,
	}
	for j, i := range sel {
		out.Seconds[j] = ws.Seconds[i]
	}
	for _, col := range ws.Columns {
		src := ws.Values[col]
		dst := make([]float64, len(sel))
		for j, i := range sel {
			dst[j] = src[i]
		}
		out.Values[col] = dst
	}
	return out
}

// ClipAll clips every period in the result to [min, max], preserving the
// batch order.
func ClipAll(res *schema.AlignResult, min, max float64) *schema.AlignResult {
	out := &schema.AlignResult{
		Order:   append([]string(nil), res.Order...),
		Periods: make(map[string]*schema.WindowedSeries, len(res.Periods)),
		Aligned: res.Aligned,
		Shifts:  res.Shifts,
		Skipped: append([]string(nil), res.Skipped...),
	}
	for _, name := range res.Order {
		out.Periods[name] = Clip(res.Periods[name], min, max)
	}
	return out
}
