package particles_test

import (
	"testing"

	"github.com/san-kum/simgallery/internal/gallery"
	"github.com/san-kum/simgallery/internal/particles"
)

func BenchmarkNBodyStep(b *testing.B) {
	n := particles.NewNBody()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		n.Step(gallery.ReferenceFrame)
	}
}

func BenchmarkSPHStep(b *testing.B) {
	s := particles.NewSPH()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Step(gallery.ReferenceFrame)
	}
}

func BenchmarkBoidsStep(b *testing.B) {
	s := particles.NewBoids()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Step(gallery.ReferenceFrame)
	}
}
