package normalize

import "testing"

func TestRegionPrecedence(t *testing.T) {
	t.Parallel()

	subRegions := []string{"神奈川県", "東京都", "埼玉県"}

	tests := []struct {
		name   string
		title  string
		detail string
		want   string
	}{
		{
			name:   "parenthesized title locality wins",
			title:  "フリーマーケット（東京都）",
			detail: "会場は埼玉県の公園です",
			want:   "東京都",
		},
		{
			name:   "detail substring when title has no locality",
			title:  "青空フリーマーケット",
			detail: "会場は埼玉県のうんどう公園",
			want:   "埼玉県",
		},
		{
			name:   "detail match outside configured sub regions",
			title:  "出張フリマ",
			detail: "今回は大阪府での特別開催",
			want:   "大阪府",
		},
		{
			name:   "fallback to first configured sub region",
			title:  "手づくり市",
			detail: "詳細は追ってお知らせします",
			want:   "神奈川県",
		},
		{
			name:   "non-locality parenthetical is ignored",
			title:  "夏祭りフリマ（第3回）",
			detail: "",
			want:   "神奈川県",
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := Region(tc.title, tc.detail, subRegions); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestCity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		title  string
		detail string
		want   string
	}{
		{name: "parenthesized city in title", title: "朝市フリマ（横浜市）", want: "横浜市"},
		{name: "venue prefixed city in detail", detail: "会場／川崎市役所前広場", want: "川崎市"},
		{name: "ascii parens", title: "フリマ(熊本市)", want: "熊本市"},
		{name: "no city token", title: "フリーマーケット", detail: "駅前広場にて開催"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := City(tc.title, tc.detail)
			if tc.want == "" {
				if got != nil {
					t.Fatalf("want nil, got %q", *got)
				}
				return
			}
			if got == nil || *got != tc.want {
				t.Fatalf("want %q, got %v", tc.want, got)
			}
		})
	}
}
