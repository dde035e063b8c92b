package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/stokeskit/internal/tracer"
)

type ExportData struct {
	Flow      string        `json:"flow"`
	Dt        float64       `json:"dt"`
	Duration  float64       `json:"duration"`
	Frames    int           `json:"frames"`
	Particles int           `json:"particles"`
	Times     []float64     `json:"times"`
	Positions [][][]float64 `json:"positions"`
	Stats     tracer.Stats  `json:"stats"`
}

// ExportJSON writes a run as one indented JSON document.
// Positions are indexed [frame][particle][axis].
func ExportJSON(w io.Writer, meta *RunMetadata, result *tracer.Result) error {
	data := ExportData{
		Flow:      meta.Flow,
		Dt:        meta.Dt,
		Duration:  meta.Duration,
		Frames:    len(result.Times),
		Particles: meta.Particles,
		Times:     result.Times,
		Positions: make([][][]float64, len(result.Positions)),
		Stats:     result.Stats,
	}

	for k, frame := range result.Positions {
		data.Positions[k] = make([][]float64, len(frame))
		for i, p := range frame {
			data.Positions[k][i] = p
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
