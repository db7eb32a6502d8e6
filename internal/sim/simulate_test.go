package sim_test

import (
	"encoding/csv"
	"os"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/twobody/internal/dynamo"
	"github.com/san-kum/twobody/internal/sim"
)

// loadReference reads a recorded trajectory with header step,ax,ay,bx,by.
func loadReference(path string) dynamo.Trajectory {
	f, err := os.Open(path)
	Expect(err).NotTo(HaveOccurred())
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	Expect(err).NotTo(HaveOccurred())
	Expect(records).NotTo(BeEmpty())

	tr := make(dynamo.Trajectory, 0, len(records)-1)
	for _, rec := range records[1:] {
		vals := make([]float64, 4)
		for j := range vals {
			vals[j], err = strconv.ParseFloat(rec[j+1], 64)
			Expect(err).NotTo(HaveOccurred())
		}
		tr = append(tr, dynamo.Sample{
			A: dynamo.Vec2{X: vals[0], Y: vals[1]},
			B: dynamo.Vec2{X: vals[2], Y: vals[3]},
		})
	}
	return tr
}

var _ = Describe("Simulate", func() {
	var a, b dynamo.Particle

	BeforeEach(func() {
		a = dynamo.NewParticle(0, 0, 0, 0, 1)
		b = dynamo.NewParticle(1, 0, 0, 1, 1)
	})

	It("returns an empty trajectory for zero steps", func() {
		tr := sim.Simulate(a, b, 1.0, 0.1, 0)
		Expect(tr).NotTo(BeNil())
		Expect(tr).To(BeEmpty())
	})

	It("treats negative step counts as zero", func() {
		Expect(sim.Simulate(a, b, 1.0, 0.1, -5)).To(BeEmpty())
	})

	DescribeTable("produces a constant trajectory",
		func(g, dt float64) {
			tr := sim.Simulate(a, b, g, dt, 50)
			Expect(tr).To(HaveLen(50))
			for _, s := range tr {
				Expect(s.A).To(Equal(a.Position))
				Expect(s.B).To(Equal(b.Position))
			}
		},
		Entry("when dt is zero", 1.0, 0.0),
		Entry("when g is zero", 0.0, 0.1),
	)

	It("keeps coincident bodies at rest", func() {
		b = dynamo.NewParticle(0, 0, 3, 3, 1)
		tr := sim.Simulate(a, b, 1.0, 0.1, 20)
		for _, s := range tr {
			Expect(s.A).To(Equal(dynamo.Vec2{}))
			Expect(s.B).To(Equal(dynamo.Vec2{}))
		}
	})

	It("does not modify the caller's particles", func() {
		aBefore, bBefore := a, b
		sim.Simulate(a, b, 1.0, 0.1, 10)
		Expect(a).To(Equal(aBefore))
		Expect(b).To(Equal(bBefore))
	})

	Context("with the binary scenario", func() {
		var tr dynamo.Trajectory

		BeforeEach(func() {
			tr = sim.Simulate(a, b, 1.0, 0.1, 1000)
		})

		It("records one sample per step", func() {
			Expect(tr).To(HaveLen(1000))
		})

		It("offsets body a slightly after the first step", func() {
			Expect(tr[0].A.X).To(BeNumerically("~", -0.05258541666666667, 1e-15))
			Expect(tr[0].A.Y).To(BeZero())
		})

		It("is deterministic", func() {
			Expect(sim.Simulate(a, b, 1.0, 0.1, 1000)).To(Equal(tr))
		})

		It("stays on the x axis and keeps the midpoint fixed", func() {
			for _, s := range tr {
				Expect(s.A.Y).To(BeZero())
				Expect(s.B.Y).To(BeZero())
				Expect(s.A.X + s.B.X).To(BeNumerically("~", 1.0, 1e-9))
			}
		})

		It("matches the recorded reference trajectory", func() {
			ref := loadReference("testdata/binary_reference.csv")
			Expect(tr).To(HaveLen(len(ref)))
			for i := range ref {
				Expect(tr[i].A.X).To(BeNumerically("~", ref[i].A.X, 1e-9), "step %d", i)
				Expect(tr[i].A.Y).To(BeNumerically("~", ref[i].A.Y, 1e-9), "step %d", i)
				Expect(tr[i].B.X).To(BeNumerically("~", ref[i].B.X, 1e-9), "step %d", i)
				Expect(tr[i].B.Y).To(BeNumerically("~", ref[i].B.Y, 1e-9), "step %d", i)
			}
		})
	})
})
