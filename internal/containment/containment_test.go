package containment_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/joshdey/pydemic/internal/containment"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var _ = Describe("DaysSince2020", func() {
	It("maps the epoch to zero", func() {
		Expect(containment.DaysSince2020(date(2020, time.January, 1))).To(Equal(0.0))
	})

	It("counts whole and fractional days", func() {
		Expect(containment.DaysSince2020(date(2020, time.February, 1))).To(Equal(31.0))
		noon := time.Date(2020, time.January, 2, 12, 0, 0, 0, time.UTC)
		Expect(containment.DaysSince2020(noon)).To(Equal(1.5))
	})

	It("is negative before the epoch", func() {
		Expect(containment.DaysSince2020(date(2019, time.December, 31))).To(Equal(-1.0))
	})
})

var _ = Describe("Model", func() {
	var m *containment.Model

	BeforeEach(func() {
		m = containment.New(date(2020, time.January, 1), date(2020, time.December, 1))
	})

	It("is the identity factor without events", func() {
		Expect(m.Factor(0)).To(Equal(1.0))
		Expect(m.Factor(100)).To(Equal(1.0))
	})

	It("clamps outside the modeled span", func() {
		Expect(m.Factor(-50)).To(Equal(1.0))
		Expect(m.Factor(1e6)).To(Equal(1.0))
	})

	Context("with a sharp event", func() {
		BeforeEach(func() {
			m.AddSharpEvent(date(2020, time.March, 15), 0.4)
		})

		It("holds the old factor before the event", func() {
			Expect(m.Factor(10)).To(Equal(1.0))
			Expect(m.Factor(containment.DaysSince2020(date(2020, time.March, 14)))).To(Equal(1.0))
		})

		It("holds the new factor after the event", func() {
			Expect(m.Factor(containment.DaysSince2020(date(2020, time.March, 16)))).To(Equal(0.4))
			Expect(m.Factor(containment.DaysSince2020(date(2020, time.November, 1)))).To(Equal(0.4))
		})

		It("ramps through the event instant", func() {
			at := containment.DaysSince2020(date(2020, time.March, 15))
			mid := m.Factor(at)
			Expect(mid).To(BeNumerically("<", 1.0))
			Expect(mid).To(BeNumerically(">", 0.4))
		})

		It("keeps knots sorted", func() {
			times, _ := m.Knots()
			for i := 1; i < len(times); i++ {
				Expect(times[i]).To(BeNumerically(">=", times[i-1]))
			}
		})
	})

	It("applies stacked events in order", func() {
		m.AddSharpEvent(date(2020, time.March, 15), 0.5)
		m.AddSharpEvent(date(2020, time.June, 1), 0.8)

		Expect(m.Factor(containment.DaysSince2020(date(2020, time.February, 1)))).To(Equal(1.0))
		Expect(m.Factor(containment.DaysSince2020(date(2020, time.April, 1)))).To(Equal(0.5))
		Expect(m.Factor(containment.DaysSince2020(date(2020, time.July, 1)))).To(Equal(0.8))
	})
})
