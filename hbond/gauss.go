package hbond

import "gonum.org/v1/gonum/mat"

// Mixture model of base-pair hydrogen bond geometry over the feature
// vector (log-cubed donor-acceptor distance, atanh-cosine of the
// donor-side angle, atanh-cosine of the acceptor-side angle). The first
// two components describe bonded geometries, straight and bent; the
// last describes close contacts with misdirected protons, and the rest
// the long-range background.
const nGauss = 8

var gaussProbH = [nGauss]float64{1, 1, 0, 0, 0, 0, 0, 0}

var gaussWeight = [nGauss]float64{
	0.11, 0.07, 0.14, 0.15, 0.14, 0.17, 0.10, 0.12,
}

var gaussMean = [nGauss]*mat.VecDense{
	mat.NewVecDense(3, []float64{3.17, 2.10, 1.80}),
	mat.NewVecDense(3, []float64{3.30, 1.20, 0.90}),
	mat.NewVecDense(3, []float64{3.80, 0.80, 0.50}),
	mat.NewVecDense(3, []float64{4.30, 0.10, 0.00}),
	mat.NewVecDense(3, []float64{4.60, -0.50, -0.40}),
	mat.NewVecDense(3, []float64{4.90, 0.00, 0.30}),
	mat.NewVecDense(3, []float64{4.10, -0.90, -0.80}),
	mat.NewVecDense(3, []float64{3.20, -0.50, 0.80}),
}

var gaussCovarInv = [nGauss]*mat.Dense{
	diag3(16, 2.0408163, 2.0408163),
	diag3(8.1632653, 4, 4),
	diag3(4.9382716, 1.5625, 1.5625),
	diag3(4, 1.2345679, 1.2345679),
	diag3(4, 1.2345679, 1.2345679),
	diag3(3.3057851, 1, 1),
	diag3(4, 1.2345679, 1.2345679),
	diag3(8, 2, 1),
}

var gaussCovarDet = [nGauss]float64{
	0.01500625,
	0.00765625,
	0.082944,
	0.164025,
	0.164025,
	0.3025,
	0.164025,
	0.0625,
}

func diag3(a, b, c float64) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		a, 0, 0,
		0, b, 0,
		0, 0, c,
	})
}
