package crawler

import (
	"reflect"
	"strings"
	"testing"
)

const listPage = `<html><head><meta charset="utf-8">
<script>
var x = 1;
var titlew = "&#20196;和6年度 <b>工事設計認証一覧</b>";
</script>
</head><body>
<h2>1.国内</h2>
<h3>工事設計認証</h3>
<div class="mbtab0"><table>
<tr><td><p>株式会社A認証</p><a href="/j/a.xls">A</a> <a href="/j/a.pdf">pdf</a></td></tr>
<tr><td><p>株式会社B認証</p><a href="/j/b.xls">B</a></td></tr>
<tr><td><a href="/j/past.htm">過去</a></td></tr>
</table></div>
<h2>2.外国(相互承認)</h2>
<h3>欧州</h3>
<div class="mbtab0"><table>
<tr><td><p>ignored</p><a href="/j/f.xls">F</a><a href="/j/f.xlsx">FX</a></td></tr>
</table></div>
</body></html>`

func mustPage(t *testing.T, src string) *Page {
	t.Helper()
	p, err := NewPage(strings.NewReader(src))
	if err != nil {
		t.Fatalf("failed to parse page: %v", err)
	}
	return p
}

// TestPage_AdvertisedYear tests title extraction from the script marker.
func TestPage_AdvertisedYear(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "marker decodes references and drops tags",
			html: listPage,
			want: "令和6年度 工事設計認証一覧",
		},
		{
			name: "named and numeric references are decoded",
			html: "<html><head><script>\nvar titlew = \"&#20196;&amp;和6年度\";\n</script></head></html>",
			want: "令&和6年度",
		},
		{
			name: "no script",
			html: `<html><body><h1>title</h1></body></html>`,
			want: "",
		},
		{
			name: "script without marker",
			html: `<html><head><script>var title = "x";</script></head></html>`,
			want: "",
		},
		{
			name: "indented marker is not recognized",
			html: "<html><head><script>\n  var titlew = \"x\";\n</script></head></html>",
			want: "",
		},
		{
			name: "marker without quotes",
			html: "<html><head><script>\nvar titlew = x;\n</script></head></html>",
			want: "",
		},
		{
			name: "greedy match spans to the last quote",
			html: "<html><head><script>\nvar titlew = \"a\" + \"b\";\n</script></head></html>",
			want: `a" + "b`,
		},
		{
			name: "first marker wins",
			html: "<html><head><script>\nvar titlew = \"first\";\n</script><script>\nvar titlew = \"second\";\n</script></head></html>",
			want: "first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := mustPage(t, tt.html).AdvertisedYear()
			if err != nil {
				t.Fatalf("AdvertisedYear: %v", err)
			}
			if got != tt.want {
				t.Errorf("AdvertisedYear() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestPage_Tables tests category heading association.
func TestPage_Tables(t *testing.T) {
	t.Parallel()

	t.Run("headings precede each table", func(t *testing.T) {
		t.Parallel()

		tables := mustPage(t, listPage).Tables()
		if len(tables) != 2 {
			t.Fatalf("expected 2 tables, got %d", len(tables))
		}
		if tables[0].TopCategory != "1.国内" || tables[0].SubCategory != "工事設計認証" {
			t.Errorf("unexpected first table labels: %q %q", tables[0].TopCategory, tables[0].SubCategory)
		}
		if tables[1].TopCategory != "2.外国(相互承認)" || tables[1].SubCategory != "欧州" {
			t.Errorf("unexpected second table labels: %q %q", tables[1].TopCategory, tables[1].SubCategory)
		}
	})

	t.Run("headings in a different container still apply", func(t *testing.T) {
		t.Parallel()

		src := `<html><body>
<div><section><h2>1.国内</h2></section></div>
<div><div><h3>sub</h3></div></div>
<div><div class="mbtab0"><table><tr><td><a href="/x.xls">x</a></td></tr></table></div></div>
</body></html>`
		tables := mustPage(t, src).Tables()
		if len(tables) != 1 {
			t.Fatalf("expected 1 table, got %d", len(tables))
		}
		if tables[0].TopCategory != "1.国内" || tables[0].SubCategory != "sub" {
			t.Errorf("unexpected labels: %q %q", tables[0].TopCategory, tables[0].SubCategory)
		}
	})

	t.Run("missing headings yield empty labels", func(t *testing.T) {
		t.Parallel()

		src := `<html><body><div class="mbtab0"><table></table></div></body></html>`
		tables := mustPage(t, src).Tables()
		if len(tables) != 1 {
			t.Fatalf("expected 1 table, got %d", len(tables))
		}
		if tables[0].TopCategory != "" || tables[0].SubCategory != "" {
			t.Errorf("expected empty labels, got %q %q", tables[0].TopCategory, tables[0].SubCategory)
		}
	})

	t.Run("div without table has no links", func(t *testing.T) {
		t.Parallel()

		src := `<html><body><h2>1.国内</h2><div class="mbtab0"><a href="/x.xls">x</a></div></body></html>`
		tables := mustPage(t, src).Tables()
		if len(tables) != 1 {
			t.Fatalf("expected 1 table, got %d", len(tables))
		}
		if links := tables[0].Links(); len(links) != 0 {
			t.Errorf("expected no links, got %v", links)
		}
	})
}

// TestTable_Links tests link filtering and association.
func TestTable_Links(t *testing.T) {
	t.Parallel()

	tables := mustPage(t, listPage).Tables()

	t.Run("domestic table uses the preceding paragraph", func(t *testing.T) {
		t.Parallel()

		want := []Link{
			{URL: "/j/a.xls", Association: "株式会社A認証"},
			{URL: "/j/b.xls", Association: "株式会社B認証"},
			{URL: "/j/past.htm", Association: "株式会社B認証"},
		}
		if got := tables[0].Links(); !reflect.DeepEqual(got, want) {
			t.Errorf("Links() = %v, want %v", got, want)
		}
	})

	t.Run("other tables use the category label", func(t *testing.T) {
		t.Parallel()

		want := []Link{{URL: "/j/f.xls", Association: "2.外国(相互承認)"}}
		if got := tables[1].Links(); !reflect.DeepEqual(got, want) {
			t.Errorf("Links() = %v, want %v", got, want)
		}
	})

	t.Run("paragraph before the table counts", func(t *testing.T) {
		t.Parallel()

		src := `<html><body><h2>1.国内</h2><p>機関X</p>
<div class="mbtab0"><table><tr><td><a href="/x.xls">x</a></td></tr></table></div></body></html>`
		links := mustPage(t, src).Tables()[0].Links()
		if len(links) != 1 || links[0].Association != "機関X" {
			t.Errorf("unexpected links %v", links)
		}
	})

	t.Run("anchors without href are ignored", func(t *testing.T) {
		t.Parallel()

		src := `<html><body><h2>2.x</h2><div class="mbtab0"><table><tr><td><a name="top">x</a></td></tr></table></div></body></html>`
		if links := mustPage(t, src).Tables()[0].Links(); len(links) != 0 {
			t.Errorf("expected no links, got %v", links)
		}
	})
}

func TestLink_Filename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url       string
		want      string
		wantIndex bool
	}{
		{url: "/j/sys/equ/tech/tech/data/2015_01.xls", want: "2015_01.xls"},
		{url: "past/index.htm", want: "index.htm", wantIndex: true},
		{url: "a.xls", want: "a.xls"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()

			l := Link{URL: tt.url}
			if got := l.Filename(); got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
			if got := l.IsIndex(); got != tt.wantIndex {
				t.Errorf("IsIndex() = %v, want %v", got, tt.wantIndex)
			}
		})
	}
}
