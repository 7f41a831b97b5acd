package meals

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"SchoolMeal/internal/neis"
)

type stubNeis struct {
	schools   []neis.SchoolRecord
	meals     []neis.MealRecord
	err       error
	gotSize   int
	gotIdent  neis.SchoolIdentity
	gotDate   neis.QueryDate
	mealCalls int
}

func (s *stubNeis) SearchSchools(ctx context.Context, pattern string, pageSize int) ([]neis.SchoolRecord, error) {
	s.gotSize = pageSize
	if s.err != nil {
		return nil, s.err
	}
	if len(s.schools) == 0 {
		return nil, neis.ErrNotFound
	}
	return s.schools, nil
}

func (s *stubNeis) FindBestMatch(ctx context.Context, pattern string) (neis.SchoolRecord, error) {
	records, err := s.SearchSchools(ctx, pattern, 100)
	if err != nil {
		return neis.SchoolRecord{}, err
	}
	return records[0], nil
}

func (s *stubNeis) FetchMeals(ctx context.Context, identity neis.SchoolIdentity, date neis.QueryDate) ([]neis.MealRecord, error) {
	s.mealCalls++
	s.gotIdent = identity
	s.gotDate = date
	return s.meals, s.err
}

func newRouter(stub *stubNeis) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api/v0"), NewHandler(stub, stub))
	return router
}

func get(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestGetSchools(t *testing.T) {
	stub := &stubNeis{schools: []neis.SchoolRecord{
		{Name: "서울고등학교", SchoolCode: "9290083", OfficeCode: "T10", OfficeName: "서울특별시교육청"},
	}}
	router := newRouter(stub)

	w := get(router, "/api/v0/schools?name=%EC%84%9C%EC%9A%B8")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if stub.gotSize != neis.SuggestionPageSize {
		t.Fatalf("expected default page size %d, got %d", neis.SuggestionPageSize, stub.gotSize)
	}
	var body struct {
		Data []neis.SchoolRecord `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].OfficeName != "서울특별시교육청" {
		t.Fatalf("unexpected body %s", w.Body.String())
	}

	if w := get(router, "/api/v0/schools?name=x&size=500"); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an oversized page, got %d", w.Code)
	}
	if w := get(router, "/api/v0/schools"); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a name, got %d", w.Code)
	}
}

func TestGetBestSchoolNotFound(t *testing.T) {
	router := newRouter(&stubNeis{})

	w := get(router, "/api/v0/schools/best?name=nowhere")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetMeals(t *testing.T) {
	stub := &stubNeis{meals: []neis.MealRecord{
		{MealType: "중식", Dishes: "Rice<br/>Soup<br/> <br/>Kimchi", Calories: "650.2 Kcal", Origin: "쌀 : 국내산<br/>김치 : 국내산"},
	}}
	router := newRouter(stub)

	for _, date := range []string{"2024-03-01", "20240301"} {
		w := get(router, "/api/v0/meals?office=T10&school=9290083&date="+date)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d: %s", date, w.Code, w.Body.String())
		}
		var body struct {
			Data DayMeals `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Data.Date != "2024-03-01" || len(body.Data.Meals) != 1 {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
		meal := body.Data.Meals[0]
		if len(meal.Dishes) != 3 || meal.Dishes[2] != "Kimchi" {
			t.Fatalf("expected blank dishes dropped, got %v", meal.Dishes)
		}
		if len(meal.Origin) != 2 {
			t.Fatalf("expected 2 origin lines, got %v", meal.Origin)
		}
	}
	if stub.gotIdent.SchoolCode != "9290083" || stub.gotIdent.OfficeCode != "T10" {
		t.Fatalf("unexpected identity %+v", stub.gotIdent)
	}
	if stub.gotDate.Wire() != "20240301" {
		t.Fatalf("unexpected date %s", stub.gotDate.Wire())
	}
}

func TestGetMealsEmptyDayIsEmptyList(t *testing.T) {
	router := newRouter(&stubNeis{})

	w := get(router, "/api/v0/meals?office=T10&school=9290083&date=2024-03-02")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Data struct {
			Meals []Meal `json:"meals"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Meals == nil || len(body.Data.Meals) != 0 {
		t.Fatalf("expected an empty list, got %s", w.Body.String())
	}
}

func TestGetMealsValidation(t *testing.T) {
	stub := &stubNeis{}
	router := newRouter(stub)

	cases := []string{
		"/api/v0/meals?school=9290083&date=2024-03-01",
		"/api/v0/meals?office=T10&school=9290083&date=2024-02-30",
		"/api/v0/meals?office=T10&school=9290083",
	}
	for _, target := range cases {
		if w := get(router, target); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, w.Code)
		}
	}
	if stub.mealCalls != 0 {
		t.Fatalf("expected no upstream calls, got %d", stub.mealCalls)
	}
}

func TestGetMealsRemoteFailure(t *testing.T) {
	router := newRouter(&stubNeis{err: &neis.RemoteError{Op: "mealServiceDietInfo", Status: 500, Err: errors.New("unexpected response status")}})

	w := get(router, "/api/v0/meals?office=T10&school=9290083&date=2024-03-01")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}
