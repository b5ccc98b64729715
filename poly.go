package bezier

import "math"

// This file collects the closed-form real-root solvers implicitize.go's
// resultant-based intersection-polynomial path uses: fitting the
// implicit equation of one curve against the parametric image of another
// produces a polynomial of degree 1 through 4 in the second curve's
// parameter (see realRootsInUnitInterval), and quadraticRoots/cubicRoots/
// quarticRoots return its real roots directly, taking and returning plain
// ascending-coefficient slices to match that call site rather than the
// fixed-arity signature a general-purpose polynomial library would offer.

// quadraticRoots returns the real roots of coeffs[0] + coeffs[1]*x +
// coeffs[2]*x^2 = 0.
//
// If the equation is nearly linear, it returns the root ignoring the
// quadratic term; the other root might be out of representable range. In
// the degenerate case where every coefficient is zero, so that every x
// satisfies the equation, a single root at 0 is returned.
func quadraticRoots(coeffs []float64) []float64 {
	c0, c1, c2 := coeffs[0], coeffs[1], coeffs[2]
	sc0 := c0 / c2
	sc1 := c1 / c2
	if math.IsInf(sc0, 0) || math.IsInf(sc1, 0) || math.IsNaN(sc0) || math.IsNaN(sc1) {
		// c2 is zero or very small, treat as linear eqn
		root := -c0 / c1
		if !math.IsInf(root, 0) && !math.IsNaN(root) {
			return []float64{root}
		}
		if c0 == 0.0 && c1 == 0.0 {
			return []float64{0}
		}
		return nil
	}
	arg := sc1*sc1 - 4.0*sc0
	var root1 float64
	if math.IsInf(arg, 0) {
		// Likely, calculation of sc1 * sc1 overflowed. Find one root
		// using sc1 x + x² = 0, other root as sc0 / root1.
		root1 = -sc1
	} else {
		if arg < 0.0 {
			return nil
		}
		if arg == 0.0 {
			return []float64{-0.5 * sc1}
		}
		// See https://math.stackexchange.com/questions/866331
		root1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	}
	root2 := sc0 / root1
	if math.IsInf(root2, 0) {
		return []float64{root1}
	}
	if root2 > root1 {
		return []float64{root1, root2}
	}
	return []float64{root2, root1}
}

// cubicRoots returns the real roots of coeffs[0] + coeffs[1]*x +
// coeffs[2]*x^2 + coeffs[3]*x^3 = 0, via Blinn's "How to Solve a Cubic
// Equation" as reworked at https://momentsingraphics.de/CubicRoots.html.
func cubicRoots(coeffs []float64) []float64 {
	c0, c1, c2, c3 := coeffs[0], coeffs[1], coeffs[2], coeffs[3]
	c3Recip := 1.0 / c3
	scaledC2 := c2 * (1.0 / 3.0 * c3Recip)
	scaledC1 := c1 * (1.0 / 3.0 * c3Recip)
	scaledC0 := c0 * c3Recip
	if math.IsInf(scaledC0, 0) || math.IsInf(scaledC1, 0) || math.IsInf(scaledC2, 0) {
		// cubic coefficient is zero or nearly so.
		return quadraticRoots([]float64{c0, c1, c2})
	}
	c0, c1, c2 = scaledC0, scaledC1, scaledC2
	// (d0, d1, d2) is called "Delta" in the article.
	d0 := math.FMA(-c2, c2, c1)
	d1 := math.FMA(-c1, c2, c0)
	d2 := c2*c0 - c1*c1
	// d is called "Discriminant".
	d := 4.0*d0*d2 - d1*d1
	// de is called "Depressed.x", Depressed.y = d0.
	de := math.FMA(-2.0*c2, d0, d1)
	if d < 0.0 {
		sq := math.Sqrt(-0.25 * d)
		r := -0.5 * de
		t1 := math.Cbrt(r+sq) + math.Cbrt(r-sq)
		return []float64{t1 - c2}
	}
	if d == 0.0 {
		t1 := math.Copysign(math.Sqrt(-d0), de)
		return []float64{t1 - c2, -2.0*t1 - c2}
	}
	th := math.Atan2(math.Sqrt(d), -de) * (1.0 / 3.0)
	thSin, thCos := math.Sincos(th)
	r0 := thCos
	ss3 := thSin * math.Sqrt(3.0)
	r1 := 0.5 * (-thCos + ss3)
	r2 := 0.5 * (-thCos - ss3)
	t := 2.0 * math.Sqrt(-d0)
	return []float64{
		math.FMA(t, r0, -c2),
		math.FMA(t, r1, -c2),
		math.FMA(t, r2, -c2),
	}
}

// depressedCubicDominant finds the dominant root of the depressed cubic
// x^3 + gx + h = 0.0, per section 2.2 of Orellana and De Michele.
func depressedCubicDominant(g, h float64) float64 {
	q := (-1.0 / 3.0) * g
	r := 0.5 * h
	var phi0 float64
	var kSet bool
	var kValue float64
	switch {
	case math.Abs(q) < 1e102 && math.Abs(r) < 1e154:
		kSet = false
	case math.Abs(q) < math.Abs(r):
		kSet = true
		kValue = 1.0 - q*((q/r)*(q/r))
	default:
		v := ((r/q)*(r/q))/q - 1.0
		if math.Signbit(q) {
			v = -v
		}
		kSet = true
		kValue = v
	}
	switch {
	case kSet && r == 0.0:
		if g > 0.0 {
			phi0 = 0.0
		} else {
			phi0 = math.Sqrt(-g)
		}
	case kSet && kValue < 0.0 || !kSet && r*r < q*q*q:
		var t float64
		if kSet {
			t = r / q / math.Sqrt(q)
		} else {
			t = r / math.Sqrt(q*q*q)
		}
		phi0 = -2.0 * math.Sqrt(q) * math.Copysign(math.Cos(math.Acos(math.Abs(t))*(1.0/3.0)), t)
	default:
		var a float64
		if kSet {
			if math.Abs(q) < math.Abs(r) {
				a = -r * (1.0 + math.Sqrt(kValue))
			} else {
				a = -r - math.Copysign(math.Sqrt(math.Abs(q))*q*math.Sqrt(kValue), r)
			}
		} else {
			a = -r - math.Copysign(math.Sqrt(r*r-q*q*q), r)
		}
		a = math.Cbrt(a)
		var b float64
		if a == 0.0 {
			b = 0.0
		} else {
			b = q / a
		}
		phi0 = a + b
	}
	x := phi0
	f := (x*x+g)*x + h
	const epsM = 2.22045e-16
	if math.Abs(f) < epsM*max(x*x*x, g*x, h) {
		return x
	}
	for i := 0; i < 8; i++ {
		deltaF := 3.0*x*x + g
		if deltaF == 0.0 {
			break
		}
		newX := x - f/deltaF
		newF := (newX*newX+g)*newX + h
		if newF == 0.0 {
			return newX
		}
		if math.Abs(newF) >= math.Abs(f) {
			break
		}
		x = newX
		f = newF
	}
	return x
}

// quarticRoots returns the real roots of coeffs[0] + coeffs[1]*x +
// coeffs[2]*x^2 + coeffs[3]*x^3 + coeffs[4]*x^4 = 0, following Orellana
// and De Michele, "Algorithm 1010: Boosting Efficiency in Solving Quartic
// Equations with No Compromise in Accuracy" (ACM TOMS 46:2, May 2020).
func quarticRoots(coeffs []float64) []float64 {
	c0, c1, c2, c3, c4 := coeffs[0], coeffs[1], coeffs[2], coeffs[3], coeffs[4]
	if c4 == 0.0 {
		return cubicRoots([]float64{c0, c1, c2, c3})
	}
	if c0 == 0.0 {
		return append(cubicRoots([]float64{c1, c2, c3, c4}), 0)
	}
	a := c3 / c4
	b := c2 / c4
	c := c1 / c4
	d := c0 / c4
	if roots, ok := quarticInner(a, b, c, d, false); ok {
		return roots
	}
	// Do polynomial rescaling.
	const kq = 7.16e76
	for _, rescale := range []bool{false, true} {
		if roots, ok := quarticInner(a/kq, b/(kq*kq), c/(kq*kq*kq), d/(kq*kq*kq*kq), rescale); ok {
			for i := range roots {
				roots[i] *= kq
			}
			return roots
		}
	}
	// Overflow happened, just return no roots.
	return nil
}

func quarticInner(a, b, c, d float64, rescale bool) ([]float64, bool) {
	vs, ok := factorQuartic(a, b, c, d, rescale)
	if !ok {
		return nil, false
	}
	var roots []float64
	for _, v := range vs {
		roots = append(roots, quadraticRoots([]float64{v[1], v[0], 1.0})...)
	}
	return roots, true
}

// factorQuartic attempts to factor a quartic equation into two quadratic
// equations. It returns false either on overflow (in which case rescaling
// might succeed) or if the factorization would need complex coefficients.
func factorQuartic(a, b, c, d float64, rescale bool) ([2][2]float64, bool) {
	calcEpsQ := func(a1, b1, a2, b2 float64) float64 {
		epsA := relativeEpsilon(a1+a2, a)
		epsB := relativeEpsilon(b1+a1*a2+b2, b)
		epsC := relativeEpsilon(b1*a2+a1*b2, c)
		return epsA + epsB + epsC
	}
	calcEpsT := func(a1, b1, a2, b2 float64) float64 {
		return calcEpsQ(a1, b1, a2, b2) + relativeEpsilon(b1*b2, d)
	}
	disc := 9.0*a*a - 24.0*b
	var s float64
	if disc >= 0.0 {
		s = -2.0 * b / (3.0*a + math.Copysign(math.Sqrt(disc), a))
	} else {
		s = -0.25 * a
	}
	aPrime := a + 4.0*s
	bPrime := b + 3.0*s*(a+2.0*s)
	cPrime := c + s*(2.0*b+s*(3.0*a+4.0*s))
	dPrime := d + s*(c+s*(b+s*(a+s)))
	var gPrime, hPrime float64
	const kc = 3.49e102
	if rescale {
		aPrimeS := aPrime / kc
		bPrimeS := bPrime / kc
		cPrimeS := cPrime / kc
		dPrimeS := dPrime / kc
		gPrime = aPrimeS*cPrimeS - (4.0/kc)*dPrimeS - (1.0/3.0)*(bPrimeS*bPrimeS)
		hPrime = (aPrimeS*cPrimeS+(8.0/kc)*dPrimeS-(2.0/9.0)*(bPrimeS*bPrimeS))*
			(1.0/3.0)*
			bPrimeS -
			cPrimeS*(cPrimeS/kc) -
			aPrimeS*aPrimeS*dPrimeS
	} else {
		gPrime = aPrime*cPrime - 4.0*dPrime - (1.0/3.0)*(bPrime*bPrime)
		hPrime =
			(aPrime*cPrime+8.0*dPrime-(2.0/9.0)*(bPrime*bPrime))*(1.0/3.0)*bPrime -
				(cPrime * cPrime) -
				(aPrime*aPrime)*dPrime
	}
	if math.IsInf(gPrime, 0) || math.IsInf(hPrime, 0) {
		return [2][2]float64{}, false
	}
	phi := depressedCubicDominant(gPrime, hPrime)
	if rescale {
		phi *= kc
	}
	l1 := a * 0.5
	l3 := (1.0/6.0)*b + 0.5*phi
	delt2 := c - a*l3
	d2Cand1 := (2.0/3.0)*b - phi - l1*l1
	l2Cand1 := 0.5 * delt2 / d2Cand1
	l2Cand2 := 2.0 * (d - l3*l3) / delt2
	d2Cand2 := 0.5 * delt2 / l2Cand2
	d2Cand3 := d2Cand1
	l2Cand3 := l2Cand2
	var d2Best, l2Best, epsLBest float64
	for i, cand := range [][2]float64{{d2Cand1, l2Cand1}, {d2Cand2, l2Cand2}, {d2Cand3, l2Cand3}} {
		d2, l2 := cand[0], cand[1]
		eps0 := relativeEpsilon(d2+l1*l1+2.0*l3, b)
		eps1 := relativeEpsilon(2.0*(d2*l2+l1*l3), c)
		eps2 := relativeEpsilon(d2*l2*l2+l3*l3, d)
		epsL := eps0 + eps1 + eps2
		if i == 0 || epsL < epsLBest {
			d2Best, l2Best, epsLBest = d2, l2, epsL
		}
	}
	d2 := d2Best
	l2 := l2Best
	var alpha1, beta1, alpha2, beta2 float64
	if d2 < 0.0 {
		sq := math.Sqrt(-d2)
		alpha1 = l1 + sq
		beta1 = l3 + sq*l2
		alpha2 = l1 - sq
		beta2 = l3 - sq*l2
		if math.Abs(beta2) < math.Abs(beta1) {
			beta2 = d / beta1
		} else if math.Abs(beta2) > math.Abs(beta1) {
			beta1 = d / beta2
		}
		var cands [][2]float64
		if math.Abs(alpha1) != math.Abs(alpha2) {
			if math.Abs(alpha1) < math.Abs(alpha2) {
				a1Cand1 := (c - beta1*alpha2) / beta2
				a1Cand2 := (b - beta2 - beta1) / alpha2
				a1Cand3 := a - alpha2
				cands = [][2]float64{{a1Cand3, alpha2}, {a1Cand1, alpha2}, {a1Cand2, alpha2}}
			} else {
				a2Cand1 := (c - alpha1*beta2) / beta1
				a2Cand2 := (b - beta2 - beta1) / alpha1
				a2Cand3 := a - alpha1
				cands = [][2]float64{{alpha1, a2Cand3}, {alpha1, a2Cand1}, {alpha1, a2Cand2}}
			}
			var epsQBest float64
			for i, cand := range cands {
				a1, a2 := cand[0], cand[1]
				if !math.IsInf(a1, 0) && !math.IsInf(a2, 0) {
					epsQ := calcEpsQ(a1, beta1, a2, beta2)
					if i == 0 || epsQ < epsQBest {
						alpha1, alpha2, epsQBest = a1, a2, epsQ
					}
				}
			}
		}
	} else if d2 == 0.0 {
		d3 := d - l3*l3
		alpha1 = l1
		beta1 = l3 + math.Sqrt(-d3)
		alpha2 = l1
		beta2 = l3 - math.Sqrt(-d3)
		if math.Abs(beta1) > math.Abs(beta2) {
			beta2 = d / beta1
		} else if math.Abs(beta2) > math.Abs(beta1) {
			beta1 = d / beta2
		}
	} else {
		// No real roots.
		return [2][2]float64{}, false
	}
	epsT := calcEpsT(alpha1, beta1, alpha2, beta2)
	for i := 0; i < 8; i++ {
		if epsT == 0.0 {
			break
		}
		f0 := beta1*beta2 - d
		f1 := beta1*alpha2 + alpha1*beta2 - c
		f2 := beta1 + alpha1*alpha2 + beta2 - b
		f3 := alpha1 + alpha2 - a
		c1 := alpha1 - alpha2
		detJ := beta1*beta1 - beta1*(alpha2*c1+2.0*beta2) +
			beta2*(alpha1*c1+beta2)
		if detJ == 0.0 {
			break
		}
		inv := 1.0 / detJ
		c2 := beta2 - beta1
		c3 := beta1*alpha2 - alpha1*beta2
		dz0 := c1*f0 + c2*f1 + c3*f2 - (beta1*c2+alpha1*c3)*f3
		dz1 := (alpha1*c1+c2)*f0 -
			beta1*c1*f1 -
			beta1*c2*f2 -
			beta1*c3*f3
		dz2 := -c1*f0 - c2*f1 - c3*f2 + (alpha2*c3+beta2*c2)*f3
		dz3 := -(alpha2*c1+c2)*f0 +
			beta2*c1*f1 +
			beta2*c2*f2 +
			beta2*c3*f3
		a1 := alpha1 - inv*dz0
		b1 := beta1 - inv*dz1
		a2 := alpha2 - inv*dz2
		b2 := beta2 - inv*dz3
		newEpsT := calcEpsT(a1, b1, a2, b2)
		if newEpsT < epsT {
			alpha1, beta1, alpha2, beta2, epsT = a1, b1, a2, b2, newEpsT
		} else {
			break
		}
	}
	return [2][2]float64{{alpha1, beta1}, {alpha2, beta2}}, true
}

// relativeEpsilon computes epsilon relative to coefficient a, a helper
// from the Orellana and De Michele paper.
func relativeEpsilon(raw, a float64) float64 {
	if a == 0.0 {
		return math.Abs(raw)
	}
	return math.Abs((raw - a) / a)
}
