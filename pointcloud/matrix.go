package pointcloud

import "gonum.org/v1/gonum/mat"

// CloudMatrixCol names a column of a cloud matrix.
type CloudMatrixCol int

const (
	// CloudMatrixColX is the x column in the cloud matrix.
	CloudMatrixColX CloudMatrixCol = 0
	// CloudMatrixColY is the y column in the cloud matrix.
	CloudMatrixColY CloudMatrixCol = 1
	// CloudMatrixColZ is the z column in the cloud matrix.
	CloudMatrixColZ CloudMatrixCol = 2
)

// CloudMatrix converts a cloud to a dense matrix with one row per point,
// along with a header describing the columns. An empty cloud yields nil.
func CloudMatrix(c Cloud) (*mat.Dense, []CloudMatrixCol) {
	n := c.Size()
	if n == 0 {
		return nil, nil
	}
	header := []CloudMatrixCol{CloudMatrixColX, CloudMatrixColY, CloudMatrixColZ}
	data := make([]float64, 0, n*3)
	for i := 0; i < n; i++ {
		p := c.At(i)
		data = append(data, p.X, p.Y, p.Z)
	}
	return mat.NewDense(n, 3, data), header
}
