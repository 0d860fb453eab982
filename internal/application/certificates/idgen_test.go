package certificates

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCertificateID_Format(t *testing.T) {
	year := time.Now().Year()

	id := GenerateCertificateID("Full Stack Development")
	assert.Regexp(t, fmt.Sprintf(`^BMS-%d-FS-\d{6}$`, year), id)

	id = GenerateCertificateID("Go")
	assert.Regexp(t, fmt.Sprintf(`^BMS-%d-G-\d{6}$`, year), id)
}

func TestCourseCode(t *testing.T) {
	cases := map[string]string{
		"Full Stack Development":   "FS",
		"Data Science":             "DS",
		"Go":                       "G",
		"cloud native engineering": "CN",
		"":                         "",
		"  Web   Design  ":         "WD",
	}
	for name, want := range cases {
		assert.Equal(t, want, courseCode(name), "course %q", name)
	}
}
