package normalize

import (
	"regexp"
	"strings"
)

// Phone numbers appear with half- or full-width digits and any of several
// hyphen lookalikes, sometimes prefixed with TEL/電話 and a receiver glyph
var phoneRe = regexp.MustCompile(`(?:(?:TEL|Tel|tel|電話)[：:.]?\s*)?[0０][0-9０-９]{1,4}[-ー−‐－‑][0-9０-９]{1,4}[-ー−‐－‑][0-9０-９]{3,4}`)

var iconReplacer = strings.NewReplacer("☎", "", "&#9742;", "")

// Scrub removes phone-number artifacts from a detail text. Undelimited digit
// runs such as prices and dates pass through untouched
func Scrub(text string) string {
	out := phoneRe.ReplaceAllString(text, "")
	out = iconReplacer.Replace(out)
	return strings.TrimSpace(out)
}
