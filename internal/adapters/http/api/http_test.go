package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/adapters/http/api"
	service "github.com/Nikoblas/campeonatoeuskadiponis/internal/app"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/ranking"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/search"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/summary"
)

type mockDependencies struct {
	notReady bool

	uploadedName string
	uploadedData []byte
	classified   map[model.Day][]model.RawRow
	selection    search.Suggestion
	searchLimit  int
	refreshes    int
}

func (m *mockDependencies) ready() error {
	if m.notReady {
		return service.ErrNotReady
	}
	return nil
}

func (m *mockDependencies) Competitions(context.Context) ([]string, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	return []string{"SEDE"}, nil
}

func (m *mockDependencies) Categories(_ context.Context, competition string) ([]string, error) {
	if competition != "SEDE" {
		return nil, fmt.Errorf("%w: %s", service.ErrNotFound, competition)
	}
	return []string{"A", "A2"}, nil
}

func (m *mockDependencies) Missing(_ context.Context, competition string) ([]model.FileKey, error) {
	return []model.FileKey{{Competition: competition, Day: model.Tiebreak, Category: "A2"}}, nil
}

func (m *mockDependencies) Classification(_ context.Context, competition, category string) (ranking.Result, error) {
	if err := m.ready(); err != nil {
		return ranking.Result{}, err
	}
	if category == "Z" {
		return ranking.Result{}, fmt.Errorf("%w: category %s", service.ErrNotFound, category)
	}
	rec := model.NewRiderRecord(model.CanonicalRow{License: "L1", RiderName: "Ane", HorseName: "Txuri", Club: "Hipika"})
	rec.Total = 4
	return ranking.Result{
		Competition: competition,
		Category:    category,
		Mode:        model.ModePointsTime,
		ShowRank:    true,
		Entries:     []model.ClassificationEntry{{RiderRecord: *rec, Classification: 1, ShowRank: true}},
	}, nil
}

func (m *mockDependencies) Summary(_ context.Context, _, _ string) ([]summary.Entry, error) {
	return []summary.Entry{{Position: 1, RiderName: "Ane", Club: "Hipika", Total: 4, Saturday: "4", Sunday: "0"}}, nil
}

func (m *mockDependencies) ClassifyRows(_ context.Context, category string, days map[model.Day][]model.RawRow) (ranking.Result, error) {
	if category == "" {
		return ranking.Result{}, fmt.Errorf("%w: category is required", service.ErrInvalidInput)
	}
	m.classified = days
	return ranking.Result{Category: category, Mode: model.ModePointsTime}, nil
}

func (m *mockDependencies) File(_ context.Context, key model.FileKey) (*model.FileData, error) {
	if key.Category != "A" {
		return nil, fmt.Errorf("%w: %s", service.ErrNotFound, key)
	}
	raw := model.RowOf("Jinete", "Ane", "Puntos", 4.0)
	return &model.FileData{
		Key:    key,
		Source: "SABADOA.xlsx",
		Raw:    []model.RawRow{raw},
		Rows:   []model.CanonicalRow{{RiderName: "Ane", Score: model.Numeric(4)}},
	}, nil
}

func (m *mockDependencies) ReplaceFile(_ context.Context, key model.FileKey, name string, data []byte) (*model.FileData, error) {
	m.uploadedName = name
	m.uploadedData = data
	return &model.FileData{Key: key, Source: name}, nil
}

func (m *mockDependencies) Search(_ context.Context, term string, limit int) ([]search.Suggestion, error) {
	m.searchLimit = limit
	return []search.Suggestion{{Kind: search.KindRider, Label: "Ane", Name: term}}, nil
}

func (m *mockDependencies) SearchResults(_ context.Context, sel search.Suggestion) ([]search.Result, error) {
	if sel.Kind != search.KindRider && sel.Kind != search.KindHorse {
		return nil, service.ErrInvalidInput
	}
	m.selection = sel
	return []search.Result{{Competition: "SEDE", Day: "SABADO", Name: sel.Name}}, nil
}

func (m *mockDependencies) Refresh(context.Context) (*model.Snapshot, error) {
	m.refreshes++
	return &model.Snapshot{
		ID:       "snap-1",
		LoadedAt: time.Unix(1700000000, 0),
		Files:    map[model.FileKey]*model.FileData{{Competition: "SEDE", Day: model.Saturday, Category: "A"}: {}},
		Missing:  []model.FileKey{{Competition: "SEDE", Day: model.Tiebreak, Category: "A"}},
	}, nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func do(h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return out
}

func TestServerRoutes(t *testing.T) {
	Convey("Given an API server over mocked dependencies", t, func() {
		deps := &mockDependencies{}
		stats := &mockStatsProvider{stats: map[string]interface{}{"started": true}}
		router := api.NewServer(deps, stats).Router()

		Convey("When calling the monitoring endpoints", func() {
			health := do(router, http.MethodGet, "/healthz", nil)
			st := do(router, http.MethodGet, "/stats", nil)

			Convey("Then both respond", func() {
				So(health.Code, ShouldEqual, http.StatusOK)
				So(st.Code, ShouldEqual, http.StatusOK)
				So(decode(st)["started"], ShouldEqual, true)
			})
		})

		Convey("When listing competitions and categories", func() {
			comps := do(router, http.MethodGet, "/competitions/", nil)
			cats := do(router, http.MethodGet, "/competitions/SEDE/categories", nil)
			unknown := do(router, http.MethodGet, "/competitions/OTRA/categories", nil)
			missing := do(router, http.MethodGet, "/competitions/SEDE/missing", nil)

			Convey("Then they come back as JSON", func() {
				So(comps.Code, ShouldEqual, http.StatusOK)
				So(decode(comps)["competitions"], ShouldResemble, []any{"SEDE"})
				So(decode(cats)["categories"], ShouldResemble, []any{"A", "A2"})
				So(unknown.Code, ShouldEqual, http.StatusNotFound)
				So(decode(unknown)["code"], ShouldEqual, "not_found")
				So(decode(missing)["missing"], ShouldResemble, []any{"DESEMPATEA2"})
			})
		})

		Convey("When the service has no snapshot", func() {
			deps.notReady = true
			w := do(router, http.MethodGet, "/competitions/", nil)

			Convey("Then the API answers 503", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(decode(w)["code"], ShouldEqual, "not_ready")
			})
		})
	})
}

func TestClassificationEndpoints(t *testing.T) {
	Convey("Given an API server over mocked dependencies", t, func() {
		router := api.NewServer(&mockDependencies{}, &mockStatsProvider{}).Router()

		Convey("When asking for a classification as JSON", func() {
			w := do(router, http.MethodGet, "/competitions/SEDE/classification/A", nil)

			Convey("Then the ranking is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				body := decode(w)
				So(body["category"], ShouldEqual, "A")
				So(body["entries"], ShouldHaveLength, 1)
			})
		})

		Convey("When asking for a classification as CSV", func() {
			w := do(router, http.MethodGet, "/competitions/SEDE/classification/A?format=csv", nil)

			Convey("Then a CSV attachment is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/csv")
				So(w.Header().Get("Content-Disposition"), ShouldContainSubstring, "Clasificacion_A_")
				lines := strings.Split(w.Body.String(), "\n")
				So(lines[0], ShouldStartWith, "Clasificación,Jinete,Caballo")
				So(lines, ShouldHaveLength, 2)
				So(lines[1], ShouldStartWith, "1,Ane,Txuri,Hipika,4,")
			})
		})

		Convey("When asking for a summary as XLSX", func() {
			w := do(router, http.MethodGet, "/competitions/SEDE/summary/A?format=xlsx", nil)

			Convey("Then a workbook with the category sheet is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
				So(err, ShouldBeNil)
				defer f.Close()
				So(f.GetSheetList(), ShouldResemble, []string{"CAT-A"})
				rows, err := f.GetRows("CAT-A")
				So(err, ShouldBeNil)
				So(rows[0], ShouldResemble, []string{"Clas", "Jinete", "Club", "Total", "Sábado", "Domingo"})
			})
		})

		Convey("When the format is unknown", func() {
			w := do(router, http.MethodGet, "/competitions/SEDE/summary/A?format=pdf", nil)

			Convey("Then the request is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the category does not exist", func() {
			w := do(router, http.MethodGet, "/competitions/SEDE/classification/Z", nil)

			Convey("Then the API answers 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestFileEndpoints(t *testing.T) {
	Convey("Given an API server over mocked dependencies", t, func() {
		deps := &mockDependencies{}
		router := api.NewServer(deps, &mockStatsProvider{}).Router()

		Convey("When reading a loaded file", func() {
			w := do(router, http.MethodGet, "/competitions/SEDE/files/sabado/A", nil)

			Convey("Then raw and canonical rows are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				body := decode(w)
				So(body["columns"], ShouldResemble, []any{"Puntos", "Jinete"})
				So(body["rows"], ShouldHaveLength, 1)
			})
		})

		Convey("When exporting a loaded file as CSV", func() {
			w := do(router, http.MethodGet, "/competitions/SEDE/files/SABADO/A?format=csv", nil)

			Convey("Then the raw columns are written", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldEqual, "Puntos,Jinete\n4,Ane")
			})
		})

		Convey("When the day is unknown", func() {
			w := do(router, http.MethodGet, "/competitions/SEDE/files/LUNES/A", nil)

			Convey("Then the request is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When uploading a CSV file", func() {
			body := []byte("Jinete;Puntos\nAne;4\n")
			req := httptest.NewRequest(http.MethodPut, "/competitions/SEDE/files/DOMINGO/A2", bytes.NewReader(body))
			req.Header.Set("Content-Type", "text/csv")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Convey("Then the body is handed over under a csv name", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.uploadedName, ShouldEqual, "DOMINGOA2.csv")
				So(deps.uploadedData, ShouldResemble, body)
			})
		})

		Convey("When uploading with an explicit file name", func() {
			w := do(router, http.MethodPut, "/competitions/SEDE/files/DOMINGO/A2?filename=resultados.xlsx", []byte("x"))

			Convey("Then that name is used", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.uploadedName, ShouldEqual, "resultados.xlsx")
			})
		})

		Convey("When uploading an empty body", func() {
			w := do(router, http.MethodPut, "/competitions/SEDE/files/DOMINGO/A2", []byte{})

			Convey("Then the request is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When uploading a body over the limit", func() {
			w := do(router, http.MethodPut, "/competitions/SEDE/files/DOMINGO/A2", make([]byte, api.MaxUploadBytes+1))

			Convey("Then the API answers 413", func() {
				So(w.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
				So(decode(w)["code"], ShouldEqual, "too_large")
			})
		})
	})
}

func TestTemplateEndpoints(t *testing.T) {
	Convey("Given an API server", t, func() {
		router := api.NewServer(&mockDependencies{}, &mockStatsProvider{}).Router()

		Convey("When downloading a day template", func() {
			w := do(router, http.MethodGet, "/templates/day?day=domingo&category=B", nil)

			Convey("Then an xlsx workbook with the day sheet is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Disposition"), ShouldContainSubstring, "DOMINGOB.xlsx")
				f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
				So(err, ShouldBeNil)
				defer f.Close()
				rows, err := f.GetRows("DOMINGO-B")
				So(err, ShouldBeNil)
				So(rows[0], ShouldResemble, []string{"Posicion", "No. caballo", "Reg", "Jinete", "Reg", "Caballo", "Faltas", "Tiempo"})
			})
		})

		Convey("When downloading a category template as CSV", func() {
			w := do(router, http.MethodGet, "/templates/category?category=B&format=csv", nil)

			Convey("Then the header line is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldEqual, "Clas,Jinete,Club,Total,Sábado,Domingo")
			})
		})

		Convey("When the category is missing", func() {
			day := do(router, http.MethodGet, "/templates/day?day=SABADO", nil)
			cat := do(router, http.MethodGet, "/templates/category", nil)

			Convey("Then both are rejected", func() {
				So(day.Code, ShouldEqual, http.StatusBadRequest)
				So(cat.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestSearchAndClassify(t *testing.T) {
	Convey("Given an API server over mocked dependencies", t, func() {
		deps := &mockDependencies{}
		router := api.NewServer(deps, &mockStatsProvider{}).Router()

		Convey("When searching", func() {
			w := do(router, http.MethodGet, "/search?q=ane", nil)
			limited := do(router, http.MethodGet, "/search?q=ane&limit=3", nil)
			bad := do(router, http.MethodGet, "/search?q=ane&limit=x", nil)

			Convey("Then suggestions are returned with the requested limit", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decode(w)["suggestions"], ShouldHaveLength, 1)
				So(limited.Code, ShouldEqual, http.StatusOK)
				So(deps.searchLimit, ShouldEqual, 3)
				So(bad.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When listing the results of a rider", func() {
			w := do(router, http.MethodGet, "/search/results?type=rider&license=L1&name=Ane", nil)
			bad := do(router, http.MethodGet, "/search/results?type=club", nil)

			Convey("Then the selection reaches the service", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.selection.License, ShouldEqual, "L1")
				So(decode(w)["results"], ShouldHaveLength, 1)
				So(bad.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When posting rows to classify", func() {
			body := []byte(`{"category":"A","saturday":[{"Jinete":"Ane","Puntos":4}],"sunday":[]}`)
			w := do(router, http.MethodPost, "/classify", body)

			Convey("Then the rows are handed over per day", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.classified[model.Saturday], ShouldHaveLength, 1)
				So(deps.classified[model.Saturday][0].Text("Jinete"), ShouldEqual, "Ane")
				So(deps.classified[model.Sunday], ShouldBeEmpty)
			})
		})

		Convey("When the classify body is invalid", func() {
			malformed := do(router, http.MethodPost, "/classify", []byte("{"))
			noCategory := do(router, http.MethodPost, "/classify", []byte(`{"saturday":[]}`))

			Convey("Then both are rejected", func() {
				So(malformed.Code, ShouldEqual, http.StatusBadRequest)
				So(noCategory.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestRefreshRateLimit(t *testing.T) {
	Convey("Given a refresh limiter allowing a single call", t, func() {
		deps := &mockDependencies{}
		router := api.NewServer(deps, &mockStatsProvider{},
			api.WithRefreshLimiter(api.NewIPRateLimiter(0, 1)),
		).Router()

		Convey("When refreshing twice", func() {
			first := do(router, http.MethodPost, "/refresh", nil)
			second := do(router, http.MethodPost, "/refresh", nil)

			Convey("Then only the first reload runs", func() {
				So(first.Code, ShouldEqual, http.StatusOK)
				body := decode(first)
				So(body["snapshot"], ShouldEqual, "snap-1")
				So(body["files"], ShouldEqual, float64(1))
				So(body["missing"], ShouldResemble, []any{"SEDE/DESEMPATEA"})
				So(second.Code, ShouldEqual, http.StatusTooManyRequests)
				So(deps.refreshes, ShouldEqual, 1)
			})
		})
	})
}

func TestErrorMapping(t *testing.T) {
	Convey("Given errors wrapped by handlers", t, func() {
		err := api.WrapKind("api.test", api.ErrBadRequest, errors.New("boom"))

		Convey("Then both kind and cause are visible", func() {
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.test: bad request: boom")
			So(api.Wrap("api.test", nil), ShouldBeNil)
			So(api.NewKind("api.test", api.ErrRateLimited).Error(), ShouldEqual, "api.test: too many requests")
		})
	})
}
