package normalize

import (
	"regexp"
	"strings"
)

// knownLocalities is the full prefecture set, used when a source's own
// sub-region list does not cover a mentioned place
var knownLocalities = []string{
	"北海道",
	"青森県", "岩手県", "宮城県", "秋田県", "山形県", "福島県",
	"茨城県", "栃木県", "群馬県", "埼玉県", "千葉県", "東京都", "神奈川県",
	"新潟県", "富山県", "石川県", "福井県", "山梨県", "長野県",
	"岐阜県", "静岡県", "愛知県", "三重県",
	"滋賀県", "京都府", "大阪府", "兵庫県", "奈良県", "和歌山県",
	"鳥取県", "島根県", "岡山県", "広島県", "山口県",
	"徳島県", "香川県", "愛媛県", "高知県",
	"福岡県", "佐賀県", "長崎県", "熊本県", "大分県", "宮崎県", "鹿児島県", "沖縄県",
}

var (
	parenRe     = regexp.MustCompile(`[（(]([^（）()]+)[）)]`)
	parenCityRe = regexp.MustCompile(`[（(]([^（）()、\s]*?市)[）)]`)
	venueCityRe = regexp.MustCompile(`会場／\s*([^、。\s]*?市)`)
)

// Region infers the event's region-level locality from its title and detail
// text. Precedence: a parenthesized locality in the title, then any known
// locality mentioned in the detail text, then the source's first configured
// sub-region. Never empty when subRegions is well-formed
func Region(title, detail string, subRegions []string) string {
	for _, m := range parenRe.FindAllStringSubmatch(title, -1) {
		token := strings.TrimSpace(m[1])
		if matchLocality(token, subRegions) {
			return token
		}
	}

	for _, loc := range subRegions {
		if strings.Contains(detail, loc) {
			return loc
		}
	}
	for _, loc := range knownLocalities {
		if strings.Contains(detail, loc) {
			return loc
		}
	}

	if len(subRegions) > 0 {
		return subRegions[0]
	}
	return ""
}

// City extracts a municipality token from a parenthesized or venue-prefixed
// "…市" substring. Returns nil when neither text carries one
func City(title, detail string) *string {
	for _, text := range []string{title, detail} {
		if m := parenCityRe.FindStringSubmatch(text); m != nil {
			city := m[1]
			return &city
		}
		if m := venueCityRe.FindStringSubmatch(text); m != nil {
			city := m[1]
			return &city
		}
	}
	return nil
}

func matchLocality(token string, subRegions []string) bool {
	for _, loc := range subRegions {
		if token == loc {
			return true
		}
	}
	for _, loc := range knownLocalities {
		if token == loc {
			return true
		}
	}
	return false
}
