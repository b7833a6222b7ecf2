package measurements

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendMeasurement(t *testing.T) {
	for _, tc := range []struct {
		value float64
		want  string
	}{
		{value: 0, want: "Hamburg;0.0\n"},
		{value: 12.34, want: "Hamburg;12.3\n"},
		{value: 12.36, want: "Hamburg;12.4\n"},
		{value: -7, want: "Hamburg;-7.0\n"},
		{value: 99.9, want: "Hamburg;99.9\n"},
		{value: -99.9, want: "Hamburg;-99.9\n"},
		{value: 5.05, want: "Hamburg;5.0\n"}, // 5.05 is 5.0499999... in binary
	} {
		assert.Equal(t, tc.want, string(AppendMeasurement(nil, "Hamburg", tc.value)))
	}
}

func TestAppendMeasurement_Appends(t *testing.T) {
	buf := AppendMeasurement(nil, "Abha", 18)
	buf = AppendMeasurement(buf, "Washington, D.C.", -1.25)

	assert.Equal(t, "Abha;18.0\nWashington, D.C.;-1.2\n", string(buf))
}
