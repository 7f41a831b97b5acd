package render

import (
	"errors"
	"html/template"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"SchoolMeal/internal/neis"
)

func parse(t *testing.T, html template.HTML) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
	if err != nil {
		t.Fatalf("parse markup: %v", err)
	}
	return doc
}

func TestMealsDropsBlankDishes(t *testing.T) {
	r := New()
	html := r.Meals([]neis.MealRecord{{MealType: "중식", Dishes: "Rice<br/>Soup<br/>  <br/>Kimchi"}})

	doc := parse(t, html)
	items := doc.Find(".menu-item")
	if items.Length() != 3 {
		t.Fatalf("expected 3 menu items, got %d", items.Length())
	}
	want := []string{"Rice", "Soup", "Kimchi"}
	items.Each(func(i int, s *goquery.Selection) {
		if s.Text() != want[i] {
			t.Errorf("item %d: expected %q, got %q", i, want[i], s.Text())
		}
	})
}

func TestMealsEmptyRendersSingleNotice(t *testing.T) {
	r := New()
	for _, records := range [][]neis.MealRecord{nil, {}} {
		doc := parse(t, r.Meals(records))
		if n := doc.Find(".no-data").Length(); n != 1 {
			t.Fatalf("expected exactly one notice, got %d", n)
		}
		if doc.Find(".meal-card").Length() != 0 {
			t.Fatalf("expected no cards")
		}
		if got := doc.Find(".no-data").Text(); got != NoDataNotice {
			t.Fatalf("unexpected notice %q", got)
		}
	}
}

func TestMealsCardPerRecord(t *testing.T) {
	r := New()
	doc := parse(t, r.Meals([]neis.MealRecord{
		{MealType: "조식", Dishes: "토스트", Calories: "500 Kcal", Origin: "쌀 : 국내산<br/>김치류 : 국내산"},
		{MealType: "중식", Dishes: "쌀밥"},
	}))

	cards := doc.Find(".meal-card")
	if cards.Length() != 2 {
		t.Fatalf("expected 2 cards, got %d", cards.Length())
	}
	if doc.Find(".no-data").Length() != 0 {
		t.Fatalf("notice must not appear next to cards")
	}

	first := cards.Eq(0)
	if got := first.Find(".meal-type").Text(); got != "조식" {
		t.Fatalf("unexpected meal type %q", got)
	}
	if got := first.Find(".calories").Text(); got != "칼로리: 500 Kcal" {
		t.Fatalf("unexpected calories %q", got)
	}
	if got := first.Find(".origin br").Length(); got != 1 {
		t.Fatalf("expected origin lines separated by one break, got %d", got)
	}

	second := cards.Eq(1)
	if got := second.Find(".calories").Text(); got != "칼로리: "+CaloriePlaceholder {
		t.Fatalf("expected placeholder calories, got %q", got)
	}
	if got := second.Find(".origin").Text(); got != "" {
		t.Fatalf("expected blank origin, got %q", got)
	}
}

func TestMealsEscapesMarkup(t *testing.T) {
	r := New()
	html := r.Meals([]neis.MealRecord{{MealType: "<script>", Dishes: "<b>bold</b>"}})
	if strings.Contains(string(html), "<script>") || strings.Contains(string(html), "<b>") {
		t.Fatalf("markup from the API must be escaped: %s", html)
	}
}

func TestSuggestions(t *testing.T) {
	r := New()
	html, visible := r.Suggestions([]neis.SchoolRecord{
		{Name: "서울고등학교", OfficeName: "서울특별시교육청"},
		{Name: "서울과학고등학교", OfficeName: "서울특별시교육청"},
	})
	if !visible {
		t.Fatalf("expected panel to be visible")
	}
	doc := parse(t, html)
	rows := doc.Find(".suggestion-item")
	if rows.Length() != 2 {
		t.Fatalf("expected 2 rows, got %d", rows.Length())
	}
	if idx, _ := rows.Eq(1).Attr("data-index"); idx != "1" {
		t.Fatalf("expected data-index 1, got %q", idx)
	}
	if got := rows.Eq(0).Find(".suggestion-school-address").Text(); got != "서울특별시교육청" {
		t.Fatalf("unexpected office name %q", got)
	}
}

func TestSuggestionsEmptyHidesPanel(t *testing.T) {
	html, visible := New().Suggestions(nil)
	if visible || html != "" {
		t.Fatalf("empty suggestions should hide the panel, got %q visible=%v", html, visible)
	}
}

func TestHeader(t *testing.T) {
	title, label := New().Header(neis.SchoolIdentity{Name: "서울고등학교"})
	if label != "서울고등학교" {
		t.Fatalf("unexpected label %q", label)
	}
	if string(title) != "🍽️ 서울고등학교 급식" {
		t.Fatalf("unexpected title %q", title)
	}
}

func TestError(t *testing.T) {
	doc := parse(t, New().Error(errors.New("boom")))
	if got := doc.Find(".error").Text(); got != ErrorPrefix+"boom" {
		t.Fatalf("unexpected error text %q", got)
	}
}

func TestSplitDishes(t *testing.T) {
	got := SplitDishes(" 쌀밥 <br/><br/>김치 ")
	if len(got) != 2 || got[0] != "쌀밥" || got[1] != "김치" {
		t.Fatalf("unexpected split %q", got)
	}
	if len(SplitDishes("")) != 0 {
		t.Fatalf("empty text should yield no items")
	}
}
