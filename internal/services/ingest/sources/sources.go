// Package sources holds the static table of third-party listing pages
package sources

import (
	"strings"

	"tsudoi/internal/services/ingest/domain"

	perr "tsudoi/internal/platform/errors"
)

const listingBase = "https://www.event-navi.jp/list/furima"

// Registry is an immutable set of sources keyed by region label
type Registry struct {
	entries []domain.Source
}

// New builds a registry from the given sources. The table is copied so the
// caller cannot mutate it afterwards
func New(entries []domain.Source) *Registry {
	cp := make([]domain.Source, len(entries))
	copy(cp, entries)
	return &Registry{entries: cp}
}

// Default returns the production source table, one entry per region
func Default() *Registry {
	return New([]domain.Source{
		{
			Region:     "北海道",
			URL:        listingBase + "/hokkaido/",
			SubRegions: []string{"北海道"},
		},
		{
			Region:     "東北",
			URL:        listingBase + "/tohoku/",
			SubRegions: []string{"宮城県", "青森県", "岩手県", "秋田県", "山形県", "福島県"},
		},
		{
			Region:     "関東",
			URL:        listingBase + "/kanto/",
			SubRegions: []string{"東京都", "神奈川県", "埼玉県", "千葉県", "茨城県", "栃木県", "群馬県"},
		},
		{
			Region:     "甲信越",
			URL:        listingBase + "/koshinetsu/",
			SubRegions: []string{"新潟県", "長野県", "山梨県"},
		},
		{
			Region:     "北陸",
			URL:        listingBase + "/hokuriku/",
			SubRegions: []string{"石川県", "富山県", "福井県"},
		},
		{
			Region:     "東海",
			URL:        listingBase + "/tokai/",
			SubRegions: []string{"愛知県", "静岡県", "岐阜県", "三重県"},
		},
		{
			Region:     "関西",
			URL:        listingBase + "/kansai/",
			SubRegions: []string{"大阪府", "兵庫県", "京都府", "滋賀県", "奈良県", "和歌山県"},
		},
		{
			Region:     "中国",
			URL:        listingBase + "/chugoku/",
			SubRegions: []string{"広島県", "岡山県", "山口県", "鳥取県", "島根県"},
		},
		{
			Region:     "四国",
			URL:        listingBase + "/shikoku/",
			SubRegions: []string{"香川県", "愛媛県", "徳島県", "高知県"},
		},
		{
			Region:     "九州・沖縄",
			URL:        listingBase + "/kyushu/",
			SubRegions: []string{"福岡県", "熊本県", "鹿児島県", "長崎県", "大分県", "宮崎県", "佐賀県", "沖縄県"},
		},
	})
}

// All returns the registry entries in table order
func (r *Registry) All() []domain.Source {
	out := make([]domain.Source, len(r.entries))
	copy(out, r.entries)
	return out
}

// Lookup resolves a source by its region label or by a URL substring.
// An unmatched identifier is a NotFound error, distinct from an empty result
func (r *Registry) Lookup(idOrFragment string) (domain.Source, error) {
	needle := strings.TrimSpace(idOrFragment)
	if needle == "" {
		return domain.Source{}, perr.InvalidArgf("empty source identifier")
	}
	for _, s := range r.entries {
		if s.Region == needle || strings.Contains(s.URL, needle) {
			return s, nil
		}
	}
	return domain.Source{}, perr.NotFoundf("no source matches %q", needle)
}
