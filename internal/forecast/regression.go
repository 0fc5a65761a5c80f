package forecast

import (
	"fmt"

	"github.com/wonny/argus/internal/contracts"
)

// ridgeModel is a closed-form ridge regressor. Two instances with
// different lambdas form the ensemble.
// λ가 클수록 가중치 수축이 강해져 보수적인 예측
type ridgeModel struct {
	name    string
	lambda  float64
	weights []float64 // bias 항 포함
}

func newRidgeModel(name string, lambda float64) *ridgeModel {
	return &ridgeModel{name: name, lambda: lambda}
}

// Fit solves (XᵀX + λI)w = Xᵀy by Gaussian elimination.
// The bias column is not regularized.
func (m *ridgeModel) Fit(rows []featureRow) error {
	if len(rows) == 0 {
		return fmt.Errorf("ridge fit: %w: no training rows", contracts.ErrInsufficientData)
	}

	dim := len(rows[0].features) + 1 // +1 bias

	// XᵀX + λI
	a := make([][]float64, dim)
	for i := range a {
		a[i] = make([]float64, dim)
	}
	b := make([]float64, dim)

	for _, row := range rows {
		x := make([]float64, dim)
		x[0] = 1
		copy(x[1:], row.features)

		for i := 0; i < dim; i++ {
			for j := 0; j < dim; j++ {
				a[i][j] += x[i] * x[j]
			}
			b[i] += x[i] * row.label
		}
	}

	for i := 1; i < dim; i++ {
		a[i][i] += m.lambda
	}

	weights, err := solveLinear(a, b)
	if err != nil {
		return fmt.Errorf("ridge fit %s: %w", m.name, err)
	}
	m.weights = weights
	return nil
}

// Predict returns the predicted next-close / current-close ratio
func (m *ridgeModel) Predict(features []float64) float64 {
	if len(m.weights) != len(features)+1 {
		return 1 // unfitted: no move
	}

	pred := m.weights[0]
	for i, f := range features {
		pred += m.weights[i+1] * f
	}
	return pred
}

// solveLinear solves a·x = b in place with partial pivoting
func solveLinear(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)

	for col := 0; col < n; col++ {
		// Pivot selection
		pivot := col
		for row := col + 1; row < n; row++ {
			if abs(a[row][col]) > abs(a[pivot][col]) {
				pivot = row
			}
		}
		if abs(a[pivot][col]) < 1e-12 {
			return nil, fmt.Errorf("singular system at column %d", col)
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		// Eliminate below
		for row := col + 1; row < n; row++ {
			factor := a[row][col] / a[col][col]
			for k := col; k < n; k++ {
				a[row][k] -= factor * a[col][k]
			}
			b[row] -= factor * b[col]
		}
	}

	// Back substitution
	x := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := b[row]
		for k := row + 1; k < n; k++ {
			sum -= a[row][k] * x[k]
		}
		x[row] = sum / a[row][row]
	}
	return x, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
