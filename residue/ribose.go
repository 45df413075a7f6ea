package residue

import (
	"fmt"
	"math"

	"github.com/qczhang/mccore/geom"
	"github.com/qczhang/mccore/types"
)

// MissingAnchorError reports a ribose fit requested without the phosphate
// anchor it needs.
type MissingAnchorError struct {
	Res types.ResId
}

func (e MissingAnchorError) Error() string {
	return fmt.Sprintf("residue: needs a phosphate anchor to build ribose for %s", e.Res)
}

// Descent parameters of the cyclic-coordinate minimizers.
const (
	riboseMinShift  = 0.1
	riboseMinDrop   = 1e-5
	riboseShiftRate = 0.5
)

// Fit of the O3' radial distance in the furanose plane as a cosine of
// the pseudorotation, used by the analytic estimator.
const (
	estimAmplitude = 1.3305
	estimVShift    = 2.0778
	estimPhase     = 0.3041
)

// riboseRefs points at the residue's ribose atoms while a build is in
// flight. o2p is nil for deoxyribose; o5p and p are set only when the 5'
// branch is built, o3p only when the 3' branch is built.
type riboseRefs struct {
	c1p, c2p, c3p, c4p, c5p, o4p *Atom
	o2p                          *Atom
	o5p, p                       *Atom
	o3p                          *Atom
}

// MinRho and MaxRho bound the pseudorotation range of a pucker class.
func MinRho(pucker *types.PropertyType) (float64, error) {
	for i, p := range puckerOrder {
		if p == pucker {
			return float64(i) * rad36, nil
		}
	}
	return 0, fmt.Errorf("residue: unknown pucker type %s", pucker)
}

func MaxRho(pucker *types.PropertyType) (float64, error) {
	min, err := MinRho(pucker)
	if err != nil {
		return 0, err
	}
	return min + rad36, nil
}

// MinChi and MaxChi bound the glycosyl torsion range of a rotamer class.
func MinChi(glycosyl *types.PropertyType) (float64, error) {
	switch glycosyl {
	case types.GlycosylSyn:
		return -math.Pi / 2, nil
	case types.GlycosylAnti:
		return math.Pi / 2, nil
	}
	return 0, fmt.Errorf("residue: unknown glycosyl torsion type %s", glycosyl)
}

func MaxChi(glycosyl *types.PropertyType) (float64, error) {
	switch glycosyl {
	case types.GlycosylSyn:
		return math.Pi / 2, nil
	case types.GlycosylAnti:
		return 3 * math.Pi / 2, nil
	}
	return 0, fmt.Errorf("residue: unknown glycosyl torsion type %s", glycosyl)
}

// ValidateRiboseBuilding reports whether the last ribose build left a
// geometrically acceptable sugar. Only the analytic estimator can clear
// it, when the 3' anchor falls outside the reach of the furanose.
func (r *Residue) ValidateRiboseBuilding() bool { return r.ribValid }

// RiboseBuiltCount returns the number of parametric builds performed by
// the last optimization, a measure of the descent's work.
func (r *Residue) RiboseBuiltCount() int { return r.ribBuilt }

// BuildRibose places the sugar from explicit torsion parameters:
// pseudorotation rho, glycosyl chi, and the backbone torsions gamma
// (O5'-C5') and beta (P-O5') used when the 5' branch is built.
func (r *Residue) BuildRibose(rho, chi, gamma, beta float64, build5p, build3p bool) error {
	_, _, ref, err := r.riboseSetup(nil, nil, build5p, build3p)
	if err != nil {
		return err
	}
	r.buildRiboseAtoms(rho, chi, gamma, beta, build5p, build3p)
	r.riboseFinish(ref, build5p, build3p)
	r.ribValid = true
	return nil
}

// BuildRiboseByClass places the sugar at the midpoint of a pucker and
// glycosyl class, with gamma at 1 rad and beta trans.
func (r *Residue) BuildRiboseByClass(pucker, glycosyl *types.PropertyType, build5p, build3p bool) error {
	p0, err := MinRho(pucker)
	if err != nil {
		return err
	}
	p1, err := MaxRho(pucker)
	if err != nil {
		return err
	}
	g0, err := MinChi(glycosyl)
	if err != nil {
		return err
	}
	g1, err := MaxChi(glycosyl)
	if err != nil {
		return err
	}
	return r.BuildRibose(p0+(p1-p0)/2, g0+(g1-g0)/2, 1, math.Pi, build5p, build3p)
}

// BuildRiboseByCCM4D fits the sugar to its phosphate anchors by cyclic
// coordinate descent over (rho, chi, gamma, beta). Either anchor may be
// nil; the corresponding branch is then built freely. The pucker and
// glycosyl arguments, when non-nil, restrict the search ranges. Returns
// the RMS distance between the built linkers and their anchors.
func (r *Residue) BuildRiboseByCCM4D(po45p, po43p *Residue, pucker, glycosyl *types.PropertyType) (float64, error) {
	build5p := po45p == nil
	build3p := po43p == nil
	if build5p && build3p {
		return 0, MissingAnchorError{Res: r.id}
	}

	anchorO5p, anchorO3p, ref, err := r.riboseSetup(po45p, po43p, build5p, build3p)
	if err != nil {
		return 0, err
	}

	// x = (rho, chi, gamma, beta)
	var x, newX, pMin, pMax, pShift [4]float64

	if pucker != nil {
		if pMin[0], err = MinRho(pucker); err != nil {
			return 0, err
		}
		if pMax[0], err = MaxRho(pucker); err != nil {
			return 0, err
		}
	} else {
		pMin[0], pMax[0] = 0, 2*math.Pi
	}
	if glycosyl != nil {
		if pMin[1], err = MinChi(glycosyl); err != nil {
			return 0, err
		}
		if pMax[1], err = MaxChi(glycosyl); err != nil {
			return 0, err
		}
	} else {
		pMin[1], pMax[1] = 0, 2*math.Pi
	}
	pMin[2], pMax[2] = 0, 2*math.Pi
	pMin[3], pMax[3] = 0, 2*math.Pi

	for i := 0; i < 4; i++ {
		pShift[i] = 0.25 * (pMax[i] - pMin[i])
		x[i] = pMin[i] + 0.5*(pMax[i]-pMin[i])
		newX[i] = x[i]
	}

	r.ribBuilt = 0
	r.buildRiboseAtoms(x[0], x[1], x[2], x[3], build5p, build3p)
	eval := r.evaluateRibose(anchorO5p, anchorO3p, build5p, build3p)

	for pShift[0] > riboseMinShift || pShift[1] > riboseMinShift ||
		pShift[2] > riboseMinShift || pShift[3] > riboseMinShift {
		shifted := false

		for i := 0; i < 4; i++ {
			newX[i] = math.Min(x[i]+pShift[i], pMax[i])
			r.buildRiboseAtoms(newX[0], newX[1], newX[2], newX[3], build5p, build3p)
			if e := r.evaluateRibose(anchorO5p, anchorO3p, build5p, build3p); e < eval-riboseMinDrop {
				x[i] = newX[i]
				eval = e
				shifted = true
				continue
			}

			newX[i] = math.Max(x[i]-pShift[i], pMin[i])
			r.buildRiboseAtoms(newX[0], newX[1], newX[2], newX[3], build5p, build3p)
			if e := r.evaluateRibose(anchorO5p, anchorO3p, build5p, build3p); e < eval-riboseMinDrop {
				x[i] = newX[i]
				eval = e
				shifted = true
			} else {
				newX[i] = x[i]
			}
		}
		if !shifted {
			for i := 0; i < 4; i++ {
				pShift[i] *= riboseShiftRate
			}
		}
	}

	r.buildRiboseAtoms(x[0], x[1], x[2], x[3], build5p, build3p)
	eval = r.evaluateRibose(anchorO5p, anchorO3p, build5p, build3p)

	r.riboseFinish(ref, build5p, build3p)
	r.ribValid = true
	return math.Sqrt(eval / 2), nil
}

// BuildRiboseByCCM2D is the two-axis variant of the descent: only rho
// and chi are optimized, with gamma fixed at 55 degrees and beta trans.
func (r *Residue) BuildRiboseByCCM2D(po45p, po43p *Residue, pucker, glycosyl *types.PropertyType) (float64, error) {
	const defGamma = 55 * math.Pi / 180
	const defBeta = math.Pi

	build5p := po45p == nil
	build3p := po43p == nil
	if build5p && build3p {
		return 0, MissingAnchorError{Res: r.id}
	}

	anchorO5p, anchorO3p, ref, err := r.riboseSetup(po45p, po43p, build5p, build3p)
	if err != nil {
		return 0, err
	}

	var x, newX, pMin, pMax, pShift [2]float64

	if pucker != nil {
		if pMin[0], err = MinRho(pucker); err != nil {
			return 0, err
		}
		if pMax[0], err = MaxRho(pucker); err != nil {
			return 0, err
		}
	} else {
		pMin[0], pMax[0] = 0, 2*math.Pi
	}
	if glycosyl != nil {
		if pMin[1], err = MinChi(glycosyl); err != nil {
			return 0, err
		}
		if pMax[1], err = MaxChi(glycosyl); err != nil {
			return 0, err
		}
	} else {
		pMin[1], pMax[1] = 0, 2*math.Pi
	}

	for i := 0; i < 2; i++ {
		pShift[i] = 0.25 * (pMax[i] - pMin[i])
		x[i] = pMin[i] + 0.5*(pMax[i]-pMin[i])
		newX[i] = x[i]
	}

	r.ribBuilt = 0
	r.buildRiboseAtoms(x[0], x[1], defGamma, defBeta, build5p, build3p)
	eval := r.evaluateRibose(anchorO5p, anchorO3p, build5p, build3p)

	for pShift[0] > riboseMinShift || pShift[1] > riboseMinShift {
		shifted := false

		for i := 0; i < 2; i++ {
			newX[i] = math.Min(x[i]+pShift[i], pMax[i])
			r.buildRiboseAtoms(newX[0], newX[1], defGamma, defBeta, build5p, build3p)
			if e := r.evaluateRibose(anchorO5p, anchorO3p, build5p, build3p); e < eval-riboseMinDrop {
				x[i] = newX[i]
				eval = e
				shifted = true
				continue
			}

			newX[i] = math.Max(x[i]-pShift[i], pMin[i])
			r.buildRiboseAtoms(newX[0], newX[1], defGamma, defBeta, build5p, build3p)
			if e := r.evaluateRibose(anchorO5p, anchorO3p, build5p, build3p); e < eval-riboseMinDrop {
				x[i] = newX[i]
				eval = e
				shifted = true
			} else {
				newX[i] = x[i]
			}
		}
		if !shifted {
			pShift[0] *= riboseShiftRate
			pShift[1] *= riboseShiftRate
		}
	}

	r.buildRiboseAtoms(x[0], x[1], defGamma, defBeta, build5p, build3p)
	eval = r.evaluateRibose(anchorO5p, anchorO3p, build5p, build3p)

	r.riboseFinish(ref, build5p, build3p)
	r.ribValid = true
	return math.Sqrt(eval / 2), nil
}

// BuildRiboseByEstimation fits the sugar against the 3' anchor in closed
// form: the pseudorotation is read off the cosine fit of the O3' radial
// distance in the furanose plane, the glycosyl torsion from the rotation
// about Y that aligns the built O3' onto the anchor. Both mirror rho
// candidates are tried and the lower-error pose kept. An anchor outside
// the reach of the cosine fit invalidates the build.
func (r *Residue) BuildRiboseByEstimation(po45p, po43p *Residue) (float64, error) {
	build5p := po45p == nil
	if po43p == nil {
		return 0, MissingAnchorError{Res: r.id}
	}

	anchorO5p, anchorO3p, ref, err := r.riboseSetup(po45p, po43p, build5p, false)
	if err != nil {
		return 0, err
	}
	r.ribValid = true
	r.ribBuilt = 0

	// the estimation needs a built O3' but the 3' branch stays anchored
	var dummyO3p Atom
	r.rib.o3p = &dummyO3p

	x, z := anchorO3p.X, anchorO3p.Z
	xzLen := math.Hypot(x, z)

	erho1 := (xzLen - estimVShift) / estimAmplitude
	if erho1 < -1.2 || erho1 > 1.2 {
		r.ribValid = false
		return math.MaxFloat64, nil
	}
	erho1 = math.Acos(math.Max(-1, math.Min(1, erho1))) - estimPhase

	var erho2 float64
	if erho1 > 0 {
		erho2 = 2*math.Pi - 2*estimPhase - erho1
	} else {
		erho1 += 2 * math.Pi
		erho2 = 4*math.Pi - estimPhase - erho1
	}

	anchorYRot := yRotationTo(x, z)

	r.buildRiboseAtoms(erho1, 0, 1, math.Pi, build5p, true)
	builtYRot := yRotationTo(r.rib.o3p.Pos.X, r.rib.o3p.Pos.Z)
	r.transformRibose(geom.RotationY(anchorYRot-builtYRot), build5p, false)
	value1 := r.evaluateRibose(anchorO5p, anchorO3p, build5p, false)

	saved := r.saveRibose(build5p)

	r.buildRiboseAtoms(erho2, 0, 1, math.Pi, build5p, true)
	builtYRot = yRotationTo(r.rib.o3p.Pos.X, r.rib.o3p.Pos.Z)
	r.transformRibose(geom.RotationY(anchorYRot-builtYRot), build5p, false)
	value2 := r.evaluateRibose(anchorO5p, anchorO3p, build5p, false)

	final := value2
	if value1 < value2 {
		r.restoreRibose(saved, build5p)
		final = value1
	}

	r.riboseFinish(ref, build5p, false)
	r.rib.o3p = nil
	return math.Sqrt(final / 2), nil
}

// yRotationTo returns the rotation about +Y taking the +X axis onto the
// XZ-plane direction (x, z).
func yRotationTo(x, z float64) float64 {
	a := math.Acos(x / math.Hypot(x, z))
	if z < 0 {
		return a
	}
	return 2*math.Pi - a
}

// riboseSetup resolves the ribose atom references, creating missing
// atoms at the origin, and returns the phosphate anchors expressed in
// the residue's local frame together with the saved referential.
func (r *Residue) riboseSetup(po45p, po43p *Residue, build5p, build3p bool) (anchorO5p, anchorO3p geom.Point, ref geom.Transfo, err error) {
	switch {
	case r.typ.IsRNA():
	case r.typ.IsDNA():
	default:
		err = InvalidTypeError{Res: r.id, Op: "build ribose"}
		return
	}

	getOrCreate := func(t *types.AtomType) {
		if !r.Contains(t) {
			r.Insert(Atom{Type: t})
		}
	}
	getOrCreate(types.AtomC1p)
	getOrCreate(types.AtomC2p)
	getOrCreate(types.AtomC3p)
	getOrCreate(types.AtomC4p)
	getOrCreate(types.AtomC5p)
	getOrCreate(types.AtomO4p)
	if r.typ.IsRNA() {
		getOrCreate(types.AtomO2p)
	}
	if build5p {
		getOrCreate(types.AtomO5p)
		getOrCreate(types.AtomP)
	}
	if build3p {
		getOrCreate(types.AtomO3p)
	}

	// pointers resolved after the last insertion
	r.rib = riboseRefs{
		c1p: r.Get(types.AtomC1p),
		c2p: r.Get(types.AtomC2p),
		c3p: r.Get(types.AtomC3p),
		c4p: r.Get(types.AtomC4p),
		c5p: r.Get(types.AtomC5p),
		o4p: r.Get(types.AtomO4p),
	}
	if r.typ.IsRNA() {
		r.rib.o2p = r.Get(types.AtomO2p)
	}
	if build5p {
		r.rib.o5p = r.Get(types.AtomO5p)
		r.rib.p = r.Get(types.AtomP)
	}
	if build3p {
		r.rib.o3p = r.Get(types.AtomO3p)
	}
	r.ribDirty = false

	ref = r.Referential()
	inv := ref.Invert()

	if po45p != nil {
		a, aerr := po45p.SafeGet(types.AtomO5p)
		if aerr != nil {
			err = aerr
			return
		}
		anchorO5p = inv.Apply(a.Pos)
	}
	if po43p != nil {
		a, aerr := po43p.SafeGet(types.AtomO3p)
		if aerr != nil {
			err = aerr
			return
		}
		anchorO3p = inv.Apply(a.Pos)
	}
	return
}

// transformRibose moves only the sugar atoms of the current build.
func (r *Residue) transformRibose(t geom.Transfo, build5p, build3p bool) {
	r.rib.c1p.Transform(t)
	r.rib.c2p.Transform(t)
	r.rib.c3p.Transform(t)
	r.rib.c4p.Transform(t)
	r.rib.c5p.Transform(t)
	if r.rib.o2p != nil {
		r.rib.o2p.Transform(t)
	}
	r.rib.o4p.Transform(t)
	if build5p {
		r.rib.o5p.Transform(t)
		r.rib.p.Transform(t)
	}
	if build3p {
		r.rib.o3p.Transform(t)
	}
}

func (r *Residue) saveRibose(build5p bool) []Atom {
	out := []Atom{
		*r.rib.c1p, *r.rib.c2p, *r.rib.c3p, *r.rib.c4p, *r.rib.c5p,
	}
	if r.rib.o2p != nil {
		out = append(out, *r.rib.o2p)
	}
	out = append(out, *r.rib.o4p)
	if build5p {
		out = append(out, *r.rib.o5p, *r.rib.p)
	}
	return out
}

func (r *Residue) restoreRibose(saved []Atom, build5p bool) {
	i := 0
	next := func() Atom { a := saved[i]; i++; return a }
	*r.rib.c1p = next()
	*r.rib.c2p = next()
	*r.rib.c3p = next()
	*r.rib.c4p = next()
	*r.rib.c5p = next()
	if r.rib.o2p != nil {
		*r.rib.o2p = next()
	}
	*r.rib.o4p = next()
	if build5p {
		*r.rib.o5p = next()
		*r.rib.p = next()
	}
}

// evaluateRibose is the squared-distance objective of the descent. A
// freely built branch contributes its ideal squared bond length so that
// the returned value stays an RMS over two linkers.
func (r *Residue) evaluateRibose(anchorO5p, anchorO3p geom.Point, build5p, build3p bool) float64 {
	v := 0.0
	if build5p {
		v += 2.0736 // (1.44)^2, ideal C5'-O5'
	} else {
		v += geom.SquareDistance(r.rib.c5p.Pos, anchorO5p)
	}
	if build3p {
		v += 2.047761 // (1.431)^2, ideal C3'-O3'
	} else {
		v += geom.SquareDistance(r.rib.c3p.Pos, anchorO3p)
	}
	return v
}

// riboseFinish places the built sugar back into the residue's frame and
// adds its hydrogens.
func (r *Residue) riboseFinish(ref geom.Transfo, build5p, build3p bool) {
	r.transformRibose(ref, build5p, build3p)
	r.addRiboseHydrogens()
}

func deg(d float64) float64 { return d * math.Pi / 180 }

// buildRiboseAtoms writes the sugar atoms in the residue's local frame,
// chaining for each atom a torsion rotation about Y, a fixed bond-angle
// rotation about Z and a fixed bond-length translation along -Y.
func (r *Residue) buildRiboseAtoms(rho, chi, gamma, beta float64, build5p, build3p bool) {
	r.ribBuilt++

	// endocyclic torsions from the pseudorotation, amplitude 37.68 deg
	nu0 := 0.6576400621514634 * math.Cos(rho+7.5398223686155035)
	nu1 := 0.6576400621514634 * math.Cos(rho+10.053096491487338)

	step := func(base geom.Transfo, yrot, zrot, bond float64) geom.Transfo {
		return base.
			Mul(geom.RotationY(yrot)).
			Mul(geom.RotationZ(zrot)).
			Mul(geom.Translation(geom.Point{Y: -bond}))
	}

	c1p := geom.Translation(geom.Point{Y: -1.465})
	r.rib.c1p.Pos = c1p.Origin()

	o4p := step(c1p, -chi, deg(71.47), 1.417)
	r.rib.o4p.Pos = o4p.Origin()

	c2p := step(c1p, deg(118.44)-chi, deg(67.972), 1.529)
	r.rib.c2p.Pos = c2p.Origin()

	r.rib.c3p.Pos = step(c2p, deg(240.838)-nu1, deg(78.554), 1.523).Origin()

	if r.rib.o2p != nil {
		r.rib.o2p.Pos = step(c2p, deg(121.160)-nu1, deg(70.232), 1.414).Origin()
	}

	r.rib.c4p.Pos = step(o4p, deg(121.335)-nu0, deg(70.3), 1.452).Origin()

	branch5p := geom.Align(r.rib.c4p.Pos, r.rib.c3p.Pos, r.rib.o4p.Pos)
	c5p := step(geom.Identity(), deg(29.891), deg(64.614), 1.510)
	r.rib.c5p.Pos = branch5p.Mul(c5p).Origin()

	if build5p {
		o5p := step(c5p, -gamma, deg(70.598), 1.440)
		r.rib.o5p.Pos = branch5p.Mul(o5p).Origin()
		r.rib.p.Pos = branch5p.Mul(step(o5p, -beta, deg(59.066), 1.593)).Origin()
	}

	if build3p {
		branch3p := geom.Align(r.rib.c3p.Pos, r.rib.c4p.Pos, r.rib.c2p.Pos)
		r.rib.o3p.Pos = branch3p.Mul(step(geom.Identity(), deg(30.291), deg(68.18), 1.431)).Origin()
	}
}
