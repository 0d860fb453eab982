package certificates

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"
)

// GenerateCertificateID builds an id of the form BMS-{year}-{course code}-{6
// random digits}. The course code is the first letter of each word of the
// course name, uppercased and truncated to two characters; single-word names
// yield a one-letter code, matching the dashboard generator. Collisions are
// not retried here; they surface as a conflict on create.
func GenerateCertificateID(courseName string) string {
	year := time.Now().Year()
	random := rand.Intn(1000000)
	return fmt.Sprintf("BMS-%d-%s-%06d", year, courseCode(courseName), random)
}

func courseCode(courseName string) string {
	var code []rune
	for _, word := range strings.Fields(courseName) {
		for _, r := range word {
			code = append(code, unicode.ToUpper(r))
			break
		}
	}
	if len(code) > 2 {
		code = code[:2]
	}
	return string(code)
}
