//go:build bench

package resumepdf

import (
	"context"
	"fmt"
	"testing"
	"time"
)

// BenchmarkResolvePoolSize benchmarks pool size calculation.
func BenchmarkResolvePoolSize(b *testing.B) {
	workers := []int{0, 1, 2, 4, 8}

	for _, w := range workers {
		b.Run(workerName(w), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = ResolvePoolSize(w)
			}
		})
	}
}

func workerName(w int) string {
	if w == 0 {
		return "auto"
	}
	return fmt.Sprintf("%d", w)
}

// benchResume is a one-page resume with every section populated.
func benchResume() *Resume {
	r := NewResume("Jane Doe")
	r.Summary = "Backend engineer focused on storage systems."
	for i := range 4 {
		exp := Experience{
			CompanyName: fmt.Sprintf("Company %d", i),
			JobTitle:    "Engineer",
			StartDate:   NewDate(2016+i, time.January, 1),
			EndDate:     NewDate(2017+i, time.June, 1),
			Description: "Built and operated services.",
		}
		exp.AddProject(Project{Name: "Ledger", Technologies: "Go, Postgres"})
		r.AddExperience(exp)
	}
	r.AddEducation(Education{Institution: "MIT", Degree: "BSc"})
	for _, s := range []string{"Go", "SQL", "Kubernetes"} {
		r.AddSkill(Skill{Name: s, ProficiencyLevel: 4})
	}
	r.AddLanguage(Language{Name: "French", ProficiencyLevel: "Native"})
	return r
}

// BenchmarkConverterRender benchmarks a full render per template with
// builtin fonts so results do not depend on installed font files.
func BenchmarkConverterRender(b *testing.B) {
	cfg := DefaultConfig()
	cfg.EnableCustomFonts = false
	conv, err := NewConverter(WithConfig(cfg))
	if err != nil {
		b.Fatal(err)
	}
	r := benchResume()

	for _, id := range TemplateNames() {
		b.Run(id, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := conv.Render(context.Background(), r, id); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkRenderBatch benchmarks batch throughput by worker count.
func BenchmarkRenderBatch(b *testing.B) {
	cfg := DefaultConfig()
	cfg.EnableCustomFonts = false
	conv, err := NewConverter(WithConfig(cfg))
	if err != nil {
		b.Fatal(err)
	}

	jobs := make([]Job, 16)
	for i := range jobs {
		jobs[i] = Job{Name: fmt.Sprintf("job-%d", i), Resume: benchResume(), Template: TemplateNames()[i%5]}
	}

	for _, w := range []int{1, 2, 4, 8} {
		b.Run(workerName(w), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				for _, res := range conv.RenderBatch(context.Background(), jobs, w) {
					if res.Err != nil {
						b.Fatal(res.Err)
					}
				}
			}
		})
	}
}
