package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/twobody/internal/dynamo"
)

type ExportData struct {
	RunMetadata
	Samples int          `json:"samples"`
	BodyAXY [][2]float64 `json:"trajectory_a"`
	BodyBXY [][2]float64 `json:"trajectory_b"`
}

func points(tr dynamo.Trajectory, b dynamo.Body) [][2]float64 {
	out := make([][2]float64, len(tr))
	for i, s := range tr {
		p := s.Of(b)
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}

// ExportJSON writes the metadata and one x/y series per body.
func ExportJSON(w io.Writer, meta RunMetadata, tr dynamo.Trajectory) error {
	data := ExportData{
		RunMetadata: meta,
		Samples:     len(tr),
		BodyAXY:     points(tr, dynamo.BodyA),
		BodyBXY:     points(tr, dynamo.BodyB),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// WriteCSV writes the trajectory as step,ax,ay,bx,by rows at full
// precision.
func WriteCSV(w io.Writer, tr dynamo.Trajectory) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(trajectoryHeader); err != nil {
		return err
	}

	for i, s := range tr {
		row := []string{
			strconv.Itoa(i),
			formatFloat(s.A.X),
			formatFloat(s.A.Y),
			formatFloat(s.B.X),
			formatFloat(s.B.Y),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
