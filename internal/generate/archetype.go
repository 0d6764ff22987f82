// Package generate synthesizes numeric fire-protection PE exam questions
// from closed-form engineering formulas with randomized parameters. Every
// prompt embeds all parameter values, so the answer can be re-derived from
// the question text alone.
package generate

import (
	"fmt"
	"math"
	"math/rand"
)

// Draft is the raw output of an archetype before options are assembled.
type Draft struct {
	Domain string
	Prompt string
	Answer float64
	Unit   string
}

// archetype draws bounded random parameters and evaluates one fixed formula.
type archetype func(rng *rand.Rand) Draft

// archetypes is the fixed family of question templates. Selection per
// question is uniform; no balancing across a set.
var archetypes = []archetype{
	frictionLoss,
	egressWidth,
	smokePlume,
	voltageDrop,
}

// pipeSchedule is an internal-diameter lookup for common sprinkler piping.
type pipeSchedule struct {
	name     string
	idInches float64
}

var pipeSchedules = []pipeSchedule{
	{name: "4-inch Sched 40", idInches: 4.026},
	{name: "4-inch Sched 10", idInches: 4.26},
	{name: "2-inch Sched 40", idInches: 2.067},
}

var cFactors = []int{100, 120, 140, 150}

// occupancyFactor pairs an occupancy type with its load factor in
// sq.ft. per person.
type occupancyFactor struct {
	occupancy string
	factor    int
}

var occupancyFactors = []occupancyFactor{
	{"Business", 150},
	{"Assembly (Unconcentrated)", 15},
	{"Assembly (Concentrated)", 7},
	{"Educational (Classroom)", 20},
	{"Mercantile (Basement)", 30},
}

// egressCapacityFactor is the door capacity factor in inches per person.
const egressCapacityFactor = 0.2

// wireResistance is ohms per 1000 ft for 14 AWG solid copper.
const wireResistance = 2.57

// frictionLoss evaluates the Hazen-Williams relation
// p = 4.52 * Q^1.85 / (C^1.85 * d^4.87) * L for a random pipe section.
func frictionLoss(rng *rand.Rand) Draft {
	pipe := pipeSchedules[rng.Intn(len(pipeSchedules))]
	c := cFactors[rng.Intn(len(cFactors))]
	flow := randRange(rng, 250, 1000, 50)   // gpm
	length := randRange(rng, 10, 200, 10)   // ft

	d := pipe.idInches
	psi := 4.52 * math.Pow(float64(flow), 1.85) /
		(math.Pow(float64(c), 1.85) * math.Pow(d, 4.87)) * float64(length)

	return Draft{
		Domain: "Hydraulics",
		Prompt: fmt.Sprintf(
			"Calculate the friction loss (psi) in a %d ft section of %s steel pipe "+
				"with a C-factor of %d and a flow rate of %d gpm.",
			length, pipe.name, c, flow),
		Answer: round2(psi),
		Unit:   "psi",
	}
}

// egressWidth computes the required cumulative clear door width from the
// occupant load: ceil(area / factor) persons at 0.2 in per person.
func egressWidth(rng *rand.Rand) Draft {
	of := occupancyFactors[rng.Intn(len(occupancyFactors))]
	area := randRange(rng, 1000, 10000, 500) // sq.ft.

	occupants := math.Ceil(float64(area) / float64(of.factor))
	width := occupants * egressCapacityFactor

	return Draft{
		Domain: "Egress",
		Prompt: fmt.Sprintf(
			"A %d sq.ft. %s space requires a main egress door. "+
				"Based on an occupant load factor of %d sq.ft./person and a capacity factor "+
				"of 0.2 in/person, what is the minimum total cumulative clear width (inches) "+
				"required for the doors?",
			area, of.occupancy, of.factor),
		Answer: round2(width),
		Unit:   "inches",
	}
}

// smokePlume evaluates the axisymmetric plume mass flow
// m = 0.071 * Qc^(1/3) * z^(5/3), with z the smoke layer height above the
// floor subtracted from the ceiling height.
func smokePlume(rng *rand.Rand) Draft {
	qc := randRange(rng, 1500, 5000, 500) // kW convective
	ceilings := []int{20, 30, 40}
	layers := []int{6, 10}
	ceiling := ceilings[rng.Intn(len(ceilings))]
	layer := layers[rng.Intn(len(layers))]

	z := float64(ceiling - layer)
	m := 0.071 * math.Pow(float64(qc), 1.0/3.0) * math.Pow(z, 5.0/3.0)

	return Draft{
		Domain: "Smoke Control",
		Prompt: fmt.Sprintf(
			"Determine the mass flow rate of the smoke plume (kg/s) at a height of %d ft "+
				"above the floor in an atrium with a %d ft ceiling. The fire has a convective "+
				"heat release rate of %d kW. Assume the axisymmetric plume equation applies "+
				"(m = 0.071 * Qc^(1/3) * z^(5/3)).",
			layer, ceiling, qc),
		Answer: round1(m),
		Unit:   "kg/s",
	}
}

// voltageDrop computes the two-wire NAC voltage drop
// V = I * R * 2L / 1000 for 14 AWG copper.
func voltageDrop(rng *rand.Rand) Draft {
	currents := []float64{0.5, 1.0, 2.0, 3.0}
	current := currents[rng.Intn(len(currents))]
	length := randRange(rng, 100, 500, 50) // ft

	v := current * wireResistance * float64(length*2) / 1000

	return Draft{
		Domain: "Fire Alarm",
		Prompt: fmt.Sprintf(
			"A Notification Appliance Circuit (NAC) utilizes 14 AWG solid copper wire "+
				"(R = 2.57 ohms/1000ft). The circuit draws %s Amps and the distance to the "+
				"last appliance is %d feet. Calculate the voltage drop (Volts). Assume a "+
				"standard 2-wire circuit.",
			formatValue(current), length),
		Answer: round2(v),
		Unit:   "Volts",
	}
}

// randRange mirrors a stepped integer range draw: a random multiple of step
// in [lo, hi).
func randRange(rng *rand.Rand, lo, hi, step int) int {
	n := (hi - lo) / step
	return lo + rng.Intn(n)*step
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
