package vessel

import (
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// buildCircadianLikeVessel reproduces the species/rule shape used by the
// byte-exact pretty-print fixture: A, DA, D_A, DR, D_R, MA, MR registered
// in that order, with the seven rules below in insertion order.
func buildCircadianLikeVessel() *Vessel {
	v := NewVessel("circadian")
	a, _ := v.AddSpecies("A", 0)
	da, _ := v.AddSpecies("DA", 0)
	dA, _ := v.AddSpecies("D_A", 1)
	dr, _ := v.AddSpecies("DR", 0)
	dR, _ := v.AddSpecies("D_R", 1)
	ma, _ := v.AddSpecies("MA", 0)
	mr, _ := v.AddSpecies("MR", 0)

	v.AddRule(a.Union(da).Rate(2.3).To(dA))
	v.AddRule(dA.Rate(6.23).To(da.Union(a)))
	v.AddRule(a.Union(dr).Rate(2.3).To(dR))
	v.AddRule(dR.Rate(6.23).To(dr.Union(a)))
	v.AddRule(dA.Rate(0.53).To(ma.Union(dA)))
	v.AddRule(da.Rate(0.53).To(ma.Union(da)))
	v.AddRule(dR.Rate(0.53).To(mr.Union(dR)))

	return v
}

func TestFprintByteExact(t *testing.T) {
	Convey("Given the circadian-rhythm-shaped fixture vessel", t, func() {
		v := buildCircadianLikeVessel()

		Convey("When rendered with Fprint", func() {
			var buf bytes.Buffer
			err := v.Fprint(&buf)

			Convey("Then the text is byte-exact to the canonical rendering", func() {
				So(err, ShouldBeNil)
				want := "" +
					"A + DA --2.3> D_A\n" +
					"D_A --6.23> A + DA\n" +
					"A + DR --2.3> D_R\n" +
					"D_R --6.23> A + DR\n" +
					"D_A --0.53> D_A + MA\n" +
					"DA --0.53> DA + MA\n" +
					"D_R --0.53> D_R + MR\n"
				So(buf.String(), ShouldEqual, want)
			})
		})
	})
}

func TestFprintEnvironmentSides(t *testing.T) {
	Convey("Given a vessel with a creation rule and a decay rule", t, func() {
		v := NewVessel("boundary")
		a, _ := v.AddSpecies("A", 0)
		v.AddRule(v.Environment().Rate(1.5).To(a))
		v.AddRule(a.Rate(0.2).To(v.Environment()))

		Convey("When rendered", func() {
			var buf bytes.Buffer
			So(v.Fprint(&buf), ShouldBeNil)

			Convey("Then empty sides render as the literal word Environment", func() {
				So(buf.String(), ShouldEqual, "Environment --1.5> A\nA --0.2> Environment\n")
			})
		})
	})
}
