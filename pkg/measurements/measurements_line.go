package measurements

import (
	"strconv"
)

// AppendMeasurement appends the line `name;value\n` to dst, value
// rendered with exactly one fractional digit.
func AppendMeasurement(dst []byte, name string, value float64) []byte {
	dst = append(dst, name...)
	dst = append(dst, ';')
	dst = strconv.AppendFloat(dst, value, 'f', 1, 64)
	return append(dst, '\n')
}
