package resumepdf

import (
	"strings"
	"unicode"
)

const maxFilenameRunes = 100

// SuggestedFilename derives a download name from a resume title: letters
// and digits are kept, every other run of characters becomes one dash.
// An empty result yields "resume.pdf".
func SuggestedFilename(title string) string {
	var b strings.Builder
	dash := false
	n := 0
	for _, r := range title {
		if n >= maxFilenameRunes {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
				n++
			}
			b.WriteRune(r)
			n++
			dash = false
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "resume.pdf"
	}
	return b.String() + ".pdf"
}
