package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/simgallery/internal/gallery"
)

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// WritePointsCSV writes one x,y,z row per point under a header.
func WritePointsCSV(w io.Writer, points []gallery.Point3) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y", "z"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			formatFloat(float64(p.X())),
			formatFloat(float64(p.Y())),
			formatFloat(float64(p.Z())),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSeriesCSV writes named columns row by row. Short columns leave
// trailing cells empty.
func WriteSeriesCSV(w io.Writer, header []string, columns [][]float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	rows := 0
	for _, c := range columns {
		rows = max(rows, len(c))
	}
	for i := 0; i < rows; i++ {
		row := make([]string, len(columns))
		for j, c := range columns {
			if i < len(c) {
				row[j] = formatFloat(c[i])
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
