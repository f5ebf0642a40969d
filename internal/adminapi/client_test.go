package adminapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"dancerfit/admin-dashboard/internal/domain"
	"dancerfit/admin-dashboard/internal/submission"
)

func newTestClient(t *testing.T, h http.HandlerFunc, dialect TypeDialect) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Options{BaseURL: srv.URL + "/api", Credentials: StaticToken("tok"), Dialect: dialect})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestNewRejectsRelativeURL(t *testing.T) {
	if _, err := New(Options{BaseURL: "/api"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestListExercisesSplit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/exercises" || r.URL.Query().Get("page") != "2" {
			t.Errorf("unexpected request %s", r.URL)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("authorization = %q", got)
		}
		io.WriteString(w, `{
			"regular": {"current_page": 2, "last_page": 3, "next_page_url": "/x?page=3", "prev_page_url": "/x?page=1",
				"data": [{"id": 1, "title": "Plié", "categories": ["Balance"], "level": "Beginner", "tags": "[\"Turns\"]", "type": "regular", "url": "v/1.mp4", "thumbnail": null}]},
			"ondemand": {"current_page": 2, "last_page": 2, "next_page_url": null, "prev_page_url": "/x?page=1",
				"data": [{"id": 2, "title": "Live Barre", "categories": [], "level": "advanced", "tags": null, "type": "on_demand"}]}
		}`)
	}, DialectOnDemand)

	pages, err := c.ListExercises(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages.Regular.Data) != 1 || len(pages.OnDemand.Data) != 1 {
		t.Fatalf("pages = %+v", pages)
	}
	reg := pages.Regular.Data[0]
	if reg.Level != domain.LevelBeginner || !reflect.DeepEqual(reg.Tags, []string{"Turns"}) || reg.Type != domain.ExerciseTypeStandalone {
		t.Fatalf("regular = %+v", reg)
	}
	od := pages.OnDemand.Data[0]
	if od.Type != domain.ExerciseTypeOnDemand || od.Tags == nil || len(od.Tags) != 0 {
		t.Fatalf("ondemand = %+v", od)
	}
	if !pages.Regular.HasNext() || pages.OnDemand.HasNext() {
		t.Fatal("next links not carried")
	}
}

func TestListExercisesFlatPartitions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"current_page": 1, "last_page": 1, "next_page_url": null, "prev_page_url": null,
			"data": [{"id": 1, "type": "regular"}, {"id": 2, "type": "ondemand"}, {"id": 3, "type": "on-demand"}]}`)
	}, DialectOnDemand)

	pages, err := c.ListExercises(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages.Regular.Data) != 1 || len(pages.OnDemand.Data) != 2 {
		t.Fatalf("regular=%d ondemand=%d", len(pages.Regular.Data), len(pages.OnDemand.Data))
	}
	if pages.Regular.CurrentPage != 1 || pages.OnDemand.LastPage != 1 {
		t.Fatalf("paging not shared: %+v", pages)
	}
}

func TestParseExerciseTypeSpellings(t *testing.T) {
	tests := map[string]domain.ExerciseType{
		"regular":   domain.ExerciseTypeStandalone,
		"ondemand":  domain.ExerciseTypeOnDemand,
		"on_demand": domain.ExerciseTypeOnDemand,
		"OnDemand":  domain.ExerciseTypeOnDemand,
		"":          domain.ExerciseTypeUnset,
		"weird":     domain.ExerciseTypeUnset,
	}
	for in, want := range tests {
		if got := parseExerciseType(in); got != want {
			t.Errorf("parseExerciseType(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseDialect(t *testing.T) {
	if d, err := ParseDialect(""); err != nil || d != DialectOnDemand {
		t.Fatalf("empty: %v %v", d, err)
	}
	if d, err := ParseDialect("ON_DEMAND"); err != nil || d != DialectOnDemandUS {
		t.Fatalf("on_demand: %v %v", d, err)
	}
	if _, err := ParseDialect("od"); err == nil {
		t.Fatal("expected error")
	}
}

func testExerciseRequest(op submission.Operation, typ domain.ExerciseType) *submission.Request {
	req := &submission.Request{Op: op, ExerciseType: typ}
	req.Add("title", "Plank Hold")
	req.AddList("categories", []string{"Strength", "Power"})
	req.AddFile("video", submission.BytesUpload("plank.mp4", "video/mp4", []byte("frames")))
	req.Add("video_duration", "02:05")
	return req
}

func TestCreateExerciseMultipart(t *testing.T) {
	for _, tt := range []struct {
		dialect TypeDialect
		want    string
	}{{DialectOnDemand, "ondemand"}, {DialectOnDemandUS, "on_demand"}} {
		t.Run(string(tt.dialect), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/api/admin/add-exercise" {
					t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
				}
				if err := r.ParseMultipartForm(1 << 20); err != nil {
					t.Errorf("parse multipart: %v", err)
					return
				}
				if got := r.MultipartForm.Value["categories[]"]; !reflect.DeepEqual(got, []string{"Strength", "Power"}) {
					t.Errorf("categories = %v", got)
				}
				if got := r.FormValue("type"); got != tt.want {
					t.Errorf("type = %q, want %q", got, tt.want)
				}
				f, fh, err := r.FormFile("video")
				if err != nil {
					t.Errorf("video: %v", err)
					return
				}
				defer f.Close()
				b, _ := io.ReadAll(f)
				if fh.Filename != "plank.mp4" || string(b) != "frames" {
					t.Errorf("video = %s %q", fh.Filename, b)
				}
				io.WriteString(w, `{"message": "created", "data": {"id": 9, "title": "Plank Hold", "type": "`+tt.want+`"}}`)
			}, tt.dialect)

			ex, err := c.CreateExercise(context.Background(), testExerciseRequest(submission.OpExerciseCreate, domain.ExerciseTypeOnDemand))
			if err != nil {
				t.Fatal(err)
			}
			if ex == nil || ex.ID != 9 || ex.Type != domain.ExerciseTypeOnDemand {
				t.Fatalf("exercise = %+v", ex)
			}
		})
	}
}

func TestCreateExercisePlanAttachedPath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/training-plans/add-exercise" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if _, ok := r.MultipartForm.Value["type"]; ok {
			t.Error("unset type was sent")
		}
		w.WriteHeader(http.StatusCreated)
	}, DialectOnDemand)

	ex, err := c.CreateExercise(context.Background(), testExerciseRequest(submission.OpPlanExerciseCreate, domain.ExerciseTypeUnset))
	if err != nil || ex != nil {
		t.Fatalf("ex=%v err=%v", ex, err)
	}
}

func TestUpdateExerciseUsesPut(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/admin/exercises/5" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `{"id": 5, "title": "x", "type": "regular"}`)
	}, DialectOnDemand)

	req := &submission.Request{Op: submission.OpExerciseEdit, ID: 5, ExerciseType: domain.ExerciseTypeStandalone}
	req.Add("title", "x")
	ex, err := c.UpdateExercise(context.Background(), req)
	if err != nil || ex == nil || ex.ID != 5 {
		t.Fatalf("ex=%v err=%v", ex, err)
	}
}

func TestServerMessageSurfaced(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"message": "The title has already been taken."}`)
	}, DialectOnDemand)

	err := c.DeleteExercise(context.Background(), 1)
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnprocessableEntity {
		t.Fatalf("got %v", err)
	}
	if got := UserMessage(err, "Delete failed"); got != "The title has already been taken." {
		t.Fatalf("UserMessage = %q", got)
	}
}

func TestUserMessageFallbacks(t *testing.T) {
	if got := UserMessage(&Error{Status: 500, Body: "<html>"}, "Delete failed"); got != "Delete failed" {
		t.Fatalf("no message: %q", got)
	}
	if got := UserMessage(errors.New("dial tcp: refused"), "Delete failed"); got != "Delete failed" {
		t.Fatalf("transport: %q", got)
	}
	verr := &submission.ValidationError{Message: "Video is required!"}
	if got := UserMessage(verr, "x"); got != "Video is required!" {
		t.Fatalf("validation: %q", got)
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := New(Options{BaseURL: base, Credentials: StaticToken("tok")})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.ListPlans(context.Background(), 1); !errors.Is(err, ErrTransport) {
		t.Fatalf("got %v, want ErrTransport", err)
	}
}

func TestMissingCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	}, DialectOnDemand)
	c = c.WithCredentials(StaticToken(""))
	_, err := c.CreateExercise(context.Background(), testExerciseRequest(submission.OpExerciseCreate, domain.ExerciseTypeStandalone))
	if !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("got %v", err)
	}
}

func TestListPlans(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"current_page": 1, "last_page": 1, "next_page_url": null, "prev_page_url": null,
			"data": [{"id": 4, "title": "Core Strength", "categories": "[\"Strength\",\"Power\"]", "level": "beginner",
				"description": "x", "cover_image": "plans/4.png",
				"exercises": [{"id": 9, "title": "Plank Hold", "categories": ["Strength"], "duration": "02:05", "level": "beginner", "thumbnail": null}]}]}`)
	}, DialectOnDemand)

	env, err := c.ListPlans(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(env.Data) != 1 {
		t.Fatalf("plans = %+v", env.Data)
	}
	p := env.Data[0]
	if p.ExerciseCount() != 1 || !p.HasExercise(9) || !reflect.DeepEqual(p.Categories, []string{"Strength", "Power"}) {
		t.Fatalf("plan = %+v", p)
	}
}

func TestUpdatePlanSendsID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/admin/training-plans/edit" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if got := r.FormValue("training_plan_id"); got != "4" {
			t.Errorf("training_plan_id = %q", got)
		}
		if got := r.FormValue("type"); got != "" {
			t.Errorf("plan edit carries type %q", got)
		}
	}, DialectOnDemand)

	req := &submission.Request{Op: submission.OpPlanEdit, ID: 4}
	req.Add("training_plan_id", "4")
	req.Add("title", "Core Strength")
	if _, err := c.UpdatePlan(context.Background(), req); err != nil {
		t.Fatal(err)
	}
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("login sent a bearer token")
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		if body["email"] != "admin@example.com" || body["password"] != "secret" {
			t.Errorf("body = %v", body)
		}
		io.WriteString(w, `{"token": "remote-token", "admin_details": {"id": 1, "name": "Ada"}}`)
	}, DialectOnDemand)

	res, err := c.Login(context.Background(), "admin@example.com", "secret")
	if err != nil {
		t.Fatal(err)
	}
	if res.Token != "remote-token" || res.Admin.Name != "Ada" || res.Admin.Email != "admin@example.com" {
		t.Fatalf("result = %+v", res)
	}
}

func TestLoginWithoutToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"admin_details": "Ada"}`)
	}, DialectOnDemand)
	if _, err := c.Login(context.Background(), "a@b.c", "x"); !errors.Is(err, ErrNoToken) {
		t.Fatalf("got %v", err)
	}
}

func TestPasswordResetCalls(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		b, _ := io.ReadAll(r.Body)
		if strings.HasSuffix(r.URL.Path, "reset-password") && !strings.Contains(string(b), `"password_confirmation":"pw"`) {
			t.Errorf("reset body = %s", b)
		}
	}, DialectOnDemand)

	ctx := context.Background()
	if err := c.ResendOTP(ctx, "a@b.c"); err != nil {
		t.Fatal(err)
	}
	if err := c.VerifyOTP(ctx, "a@b.c", "1234"); err != nil {
		t.Fatal(err)
	}
	if err := c.ResetPassword(ctx, "a@b.c", "pw", "pw"); err != nil {
		t.Fatal(err)
	}
	want := []string{"/api/admin/resend-otp", "/api/admin/verify-otp", "/api/admin/reset-password"}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("paths = %v", paths)
	}
}
