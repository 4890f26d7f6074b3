package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/duynhne/rslist-service/internal/core/repository/memory"
	logicv1 "github.com/duynhne/rslist-service/internal/logic/v1"
	"github.com/duynhne/rslist-service/middleware"
)

// newTestRouter builds the API routes over a fresh in-memory store, the same
// wiring main performs.
func newTestRouter(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterValidations()

	store := memory.NewStore()
	userService := logicv1.NewUserService(store.Users())
	eventService := logicv1.NewRsEventService(store.Events(), store.Users())
	userHandler := NewUserHandler(userService)
	eventHandler := NewRsEventHandler(eventService)

	r := gin.New()
	r.Use(middleware.LoggingMiddleware(zap.NewNop()))

	r.GET("/rs", eventHandler.Find)
	r.GET("/rs/list", eventHandler.List)
	r.POST("/rs", eventHandler.Create)
	r.PATCH("/rs/:id", eventHandler.Update)
	r.DELETE("/rs", eventHandler.Delete)

	r.GET("/user", userHandler.Find)
	r.GET("/user/list", userHandler.List)
	r.POST("/user", userHandler.Create)
	r.DELETE("/user", userHandler.Delete)

	return r, store
}

func perform(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal error body %q: %v", w.Body.String(), err)
	}
	return body["error"]
}

const aliceJSON = `{"username":"alice","gender":"female","age":20,"email":"alice@tw.com","phone":"13000000000"}`

func registerAlice(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := perform(r, http.MethodPost, "/user", aliceJSON)
	if w.Code != http.StatusCreated {
		t.Fatalf("register alice: status = %d, body = %s", w.Code, w.Body.String())
	}
	id := w.Header().Get("id")
	if id == "" {
		t.Fatal("register alice: missing id header")
	}
	return id
}

func TestCreateUser(t *testing.T) {
	r, _ := newTestRouter(t)

	t.Run("valid user gets 201 with id header and default votes", func(t *testing.T) {
		id := registerAlice(t, r)

		w := perform(r, http.MethodGet, "/user?id="+id, "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		var user struct {
			Username string `json:"username"`
			Votes    int    `json:"votes"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &user); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if user.Username != "alice" || user.Votes != 10 {
			t.Errorf("user = %+v, want alice with 10 votes", user)
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		w := perform(r, http.MethodPost, "/user", aliceJSON)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
		if got, want := errorMessage(t, w), "username alice already exists"; got != want {
			t.Errorf("error = %q, want %q", got, want)
		}
	})

	invalid := []struct {
		name string
		body string
	}{
		{"username too short", `{"username":"al","gender":"female","age":20,"email":"a@tw.com","phone":"13000000000"}`},
		{"username too long", `{"username":"alexander","gender":"female","age":20,"email":"a@tw.com","phone":"13000000000"}`},
		{"age below range", `{"username":"bob","gender":"male","age":17,"email":"b@tw.com","phone":"13000000000"}`},
		{"age above range", `{"username":"bob","gender":"male","age":101,"email":"b@tw.com","phone":"13000000000"}`},
		{"missing gender", `{"username":"bob","age":20,"email":"b@tw.com","phone":"13000000000"}`},
		{"bad email", `{"username":"bob","gender":"male","age":20,"email":"not-an-email","phone":"13000000000"}`},
		{"bad phone prefix", `{"username":"bob","gender":"male","age":20,"email":"b@tw.com","phone":"23000000000"}`},
		{"phone too short", `{"username":"bob","gender":"male","age":20,"email":"b@tw.com","phone":"1300000000"}`},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			w := perform(r, http.MethodPost, "/user", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if got, want := errorMessage(t, w), "invalid user"; got != want {
				t.Errorf("error = %q, want %q", got, want)
			}
		})
	}
}

func TestFindAndDeleteUser(t *testing.T) {
	r, _ := newTestRouter(t)
	id := registerAlice(t, r)

	t.Run("find with neither param", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/user", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
		if got, want := errorMessage(t, w), "params username, id missing"; got != want {
			t.Errorf("error = %q, want %q", got, want)
		}
	})

	t.Run("find by username", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/user?username=alice", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
	})

	t.Run("find miss is an empty 404", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/user?id=99999999", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d", w.Code)
		}
		if w.Body.Len() != 0 {
			t.Errorf("body = %q, want empty", w.Body.String())
		}
	})

	t.Run("delete with non-existent id on the store", func(t *testing.T) {
		w := perform(r, http.MethodDelete, "/user?id=99999999", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})

	t.Run("delete with neither param", func(t *testing.T) {
		w := perform(r, http.MethodDelete, "/user", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
	})

	t.Run("delete by id and username", func(t *testing.T) {
		w := perform(r, http.MethodDelete, "/user?id="+id+"&username=alice", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		w = perform(r, http.MethodGet, "/user?id="+id, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("status after delete = %d, want 404", w.Code)
		}
	})
}

func TestListUsers(t *testing.T) {
	r, _ := newTestRouter(t)

	users := []string{"ann", "ben", "cat", "dan", "eve", "fay", "gus", "hal", "ivy", "jim", "kim", "lee"}
	for _, u := range users {
		body := `{"username":"` + u + `","gender":"female","age":20,"email":"` + u + `@tw.com","phone":"13000000000"}`
		if w := perform(r, http.MethodPost, "/user", body); w.Code != http.StatusCreated {
			t.Fatalf("register %s: status = %d", u, w.Code)
		}
	}

	decode := func(w *httptest.ResponseRecorder) []map[string]any {
		t.Helper()
		var list []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
			t.Fatalf("unmarshal list: %v", err)
		}
		return list
	}

	t.Run("defaults to first page of ten", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/user/list", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		if list := decode(w); len(list) != 10 {
			t.Errorf("len = %d, want 10", len(list))
		}
	})

	t.Run("second page holds the remainder", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/user/list?pageIndex=2", "")
		if list := decode(w); len(list) != 2 {
			t.Errorf("len = %d, want 2", len(list))
		}
	})

	t.Run("explicit page size", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/user/list?pageSize=5&pageIndex=1", "")
		if list := decode(w); len(list) != 5 {
			t.Errorf("len = %d, want 5", len(list))
		}
	})
}

func TestCreateRsEvent(t *testing.T) {
	r, _ := newTestRouter(t)
	userID := registerAlice(t, r)

	eventBody := `{"eventName":"e1","keyword":"k1","userId":` + userID + `}`

	t.Run("valid event gets 201 with id header", func(t *testing.T) {
		w := perform(r, http.MethodPost, "/rs", eventBody)
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		if w.Header().Get("id") == "" {
			t.Error("missing id header")
		}
	})

	t.Run("repeating the same post is a name conflict", func(t *testing.T) {
		w := perform(r, http.MethodPost, "/rs", eventBody)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
		if got, want := errorMessage(t, w), "event name e1 already exists"; got != want {
			t.Errorf("error = %q, want %q", got, want)
		}
	})

	t.Run("missing keyword", func(t *testing.T) {
		w := perform(r, http.MethodPost, "/rs", `{"eventName":"e2","userId":`+userID+`}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
		if got, want := errorMessage(t, w), "invalid param"; got != want {
			t.Errorf("error = %q, want %q", got, want)
		}
	})

	t.Run("non-existent user", func(t *testing.T) {
		w := perform(r, http.MethodPost, "/rs", `{"eventName":"e2","keyword":"k2","userId":99999999}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
		if got, want := errorMessage(t, w), "user does not exist"; got != want {
			t.Errorf("error = %q, want %q", got, want)
		}
	})
}

func TestFindAndListRsEvents(t *testing.T) {
	r, _ := newTestRouter(t)
	userID := registerAlice(t, r)

	for _, name := range []string{"e1", "e2", "e3"} {
		body := `{"eventName":"` + name + `","keyword":"k","userId":` + userID + `}`
		if w := perform(r, http.MethodPost, "/rs", body); w.Code != http.StatusCreated {
			t.Fatalf("create %s: status = %d", name, w.Code)
		}
	}

	t.Run("list returns every event", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/rs/list", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		var list []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(list) != 3 {
			t.Errorf("len = %d, want 3", len(list))
		}
	})

	t.Run("find by event name", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/rs?eventName=e2", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		var event struct {
			EventName string `json:"eventName"`
			Keyword   string `json:"keyword"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &event); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if event.EventName != "e2" || event.Keyword != "k" {
			t.Errorf("event = %+v", event)
		}
	})

	t.Run("find with neither param", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/rs", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
		if got, want := errorMessage(t, w), "params eventName, id missing"; got != want {
			t.Errorf("error = %q, want %q", got, want)
		}
	})

	t.Run("find miss", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/rs?id=99999999", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d", w.Code)
		}
	})
}

func TestUpdateRsEvent(t *testing.T) {
	r, _ := newTestRouter(t)
	userID := registerAlice(t, r)

	w := perform(r, http.MethodPost, "/rs", `{"eventName":"e1","keyword":"k1","userId":`+userID+`}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", w.Code)
	}
	id := w.Header().Get("id")

	t.Run("body id mismatch", func(t *testing.T) {
		w := perform(r, http.MethodPatch, "/rs/"+id,
			`{"id":99999998,"eventName":"changed","userId":`+userID+`}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
		want := "updated entity id does not match the resource id of the request"
		if got := errorMessage(t, w); got != want {
			t.Errorf("error = %q, want %q", got, want)
		}
	})

	t.Run("missing user id", func(t *testing.T) {
		w := perform(r, http.MethodPatch, "/rs/"+id, `{"id":`+id+`,"eventName":"changed"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
		if got, want := errorMessage(t, w), "invalid param"; got != want {
			t.Errorf("error = %q, want %q", got, want)
		}
	})

	t.Run("tampered user id", func(t *testing.T) {
		w := perform(r, http.MethodPatch, "/rs/"+id, `{"id":`+id+`,"eventName":"changed","userId":99999999}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
		if got, want := errorMessage(t, w), "user id incorrect"; got != want {
			t.Errorf("error = %q, want %q", got, want)
		}
	})

	t.Run("non-existent target", func(t *testing.T) {
		w := perform(r, http.MethodPatch, "/rs/99999999",
			`{"id":99999999,"eventName":"changed","userId":`+userID+`}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d", w.Code)
		}
	})

	t.Run("partial update keeps the stored keyword", func(t *testing.T) {
		w := perform(r, http.MethodPatch, "/rs/"+id, `{"id":`+id+`,"eventName":"e1b","userId":`+userID+`}`)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}

		w = perform(r, http.MethodGet, "/rs?id="+id, "")
		var event struct {
			EventName string `json:"eventName"`
			Keyword   string `json:"keyword"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &event); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if event.EventName != "e1b" || event.Keyword != "k1" {
			t.Errorf("event = %+v, want eventName e1b keyword k1", event)
		}
	})
}

func TestDeleteRsEvent(t *testing.T) {
	r, _ := newTestRouter(t)
	userID := registerAlice(t, r)

	w := perform(r, http.MethodPost, "/rs", `{"eventName":"e1","keyword":"k1","userId":`+userID+`}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", w.Code)
	}
	id := w.Header().Get("id")

	t.Run("neither param", func(t *testing.T) {
		w := perform(r, http.MethodDelete, "/rs", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
	})

	t.Run("non-existent id", func(t *testing.T) {
		w := perform(r, http.MethodDelete, "/rs?id=99999999", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d", w.Code)
		}
	})

	t.Run("by id", func(t *testing.T) {
		w := perform(r, http.MethodDelete, "/rs?id="+id, "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		w = perform(r, http.MethodGet, "/rs?id="+id, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("status after delete = %d, want 404", w.Code)
		}
	})
}
