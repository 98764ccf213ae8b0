package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/simgallery/internal/gallery"
	"github.com/san-kum/simgallery/internal/viz"
)

func TestWritePNG(t *testing.T) {
	buf := gallery.NewPixelBuffer(3, 2)
	buf.Set(1, 1, gallery.Color{R: 10, G: 20, B: 30})

	var out bytes.Buffer
	if err := WritePNG(&out, buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&out)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("expected 3x2, got %v", b)
	}
	r, g, b, a := img.At(1, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 || a>>8 != 255 {
		t.Errorf("unexpected pixel %d %d %d %d", r>>8, g>>8, b>>8, a>>8)
	}

	if err := WritePNG(&out, gallery.PixelBuffer{}); !errors.Is(err, ErrEmptyFrame) {
		t.Errorf("expected ErrEmptyFrame, got %v", err)
	}
}

func TestWritePointsCSV(t *testing.T) {
	var out bytes.Buffer
	pts := []gallery.Point3{{1, 2, 3}, {-0.5, 0, 4}}
	if err := WritePointsCSV(&out, pts); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&out).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != "x,y,z" || strings.Join(rows[2], ",") != "-0.5,0,4" {
		t.Errorf("unexpected rows %v", rows)
	}
}

func TestWriteSeriesCSV(t *testing.T) {
	var out bytes.Buffer
	err := WriteSeriesCSV(&out, []string{"frame", "radius"}, [][]float64{{0, 1, 2}, {1.5, 2.5}})
	if err != nil {
		t.Fatal(err)
	}
	want := "frame,radius\n0,1.5\n1,2.5\n2,\n"
	if out.String() != want {
		t.Errorf("expected %q, got %q", want, out.String())
	}
}

func TestWritePointsSVG(t *testing.T) {
	cam := viz.NewCamera()
	pts := []gallery.Point3{{0, 0, 0}, {0.1, 0.1, 0.2}, {50, 0, 0}}

	var out bytes.Buffer
	if err := WritePointsSVG(&out, pts, cam, 200, 100, DefaultSVGStyle()); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	if got := strings.Count(s, "<circle"); got != 2 {
		t.Errorf("expected 2 circles, got %d", got)
	}
	if !strings.HasPrefix(s, "<?xml") || !strings.HasSuffix(s, "</svg>\n") {
		t.Error("expected a complete SVG document")
	}
	if err := WritePointsSVG(&out, pts, cam, 0, 100, DefaultSVGStyle()); !errors.Is(err, ErrEmptyFrame) {
		t.Errorf("expected ErrEmptyFrame, got %v", err)
	}
}

func TestWritePathSVG(t *testing.T) {
	var out bytes.Buffer
	xs := []float64{0, 1, 2, 3}
	ys := []float64{0, 1, 0, 1}
	if err := WritePathSVG(&out, xs, ys, 100, 100, "#ff00ff"); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	if strings.Count(s, "M") != 1 || strings.Count(s, "L") != 3 {
		t.Errorf("expected one move and three lines in %q", s)
	}
	if err := WritePathSVG(&out, xs[:1], ys[:1], 100, 100, "#fff"); !errors.Is(err, ErrEmptyFrame) {
		t.Errorf("expected ErrEmptyFrame for a single sample, got %v", err)
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	buf := gallery.NewPixelBuffer(4, 4)
	err := Save(path, func(w io.Writer) error { return WritePNG(w, buf) })
	if err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("expected a non-empty file, got %v", err)
	}

	bad := filepath.Join(t.TempDir(), "missing", "frame.png")
	if err := Save(bad, func(w io.Writer) error { return nil }); err == nil {
		t.Error("expected error for a missing directory")
	}
}
