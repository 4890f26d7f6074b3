package v1

import (
	"context"
	"errors"
	"testing"

	"github.com/duynhne/rslist-service/internal/core/domain"
	"github.com/duynhne/rslist-service/internal/core/repository/memory"
)

// newEventFixture returns a store with one registered user and the services
// over it.
func newEventFixture(t *testing.T) (*memory.Store, *RsEventService, int64) {
	t.Helper()
	store := memory.NewStore()
	userSvc := NewUserService(store.Users())
	userID, err := userSvc.Create(context.Background(), validUserRequest("alice"))
	if err != nil {
		t.Fatalf("user Create: %v", err)
	}
	return store, NewRsEventService(store.Events(), store.Users()), userID
}

func TestRsEventCreate(t *testing.T) {
	store, svc, userID := newEventFixture(t)
	ctx := context.Background()

	t.Run("success assigns id", func(t *testing.T) {
		id, err := svc.Create(ctx, domain.CreateRsEventRequest{
			EventName: "e1", Keyword: "k1", UserID: userID,
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if id == 0 {
			t.Fatal("expected a generated id")
		}
	})

	t.Run("duplicate event name", func(t *testing.T) {
		_, err := svc.Create(ctx, domain.CreateRsEventRequest{
			EventName: "e1", Keyword: "k2", UserID: userID,
		})
		var exists *domain.ResourceExistsError
		if !errors.As(err, &exists) {
			t.Fatalf("err = %v, want ResourceExistsError", err)
		}
		if got, want := exists.Error(), "event name e1 already exists"; got != want {
			t.Errorf("message = %q, want %q", got, want)
		}
	})

	t.Run("non-existent user never persists a row", func(t *testing.T) {
		countBefore, _ := store.Events().Count(ctx)
		_, err := svc.Create(ctx, domain.CreateRsEventRequest{
			EventName: "e2", Keyword: "k2", UserID: 99999999,
		})
		if !errors.Is(err, domain.ErrUserNotExist) {
			t.Fatalf("err = %v, want ErrUserNotExist", err)
		}
		countAfter, _ := store.Events().Count(ctx)
		if countAfter != countBefore {
			t.Errorf("count changed from %d to %d on failed create", countBefore, countAfter)
		}
	})
}

func TestRsEventFindByParams(t *testing.T) {
	_, svc, userID := newEventFixture(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, domain.CreateRsEventRequest{
		EventName: "e1", Keyword: "k1", UserID: userID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	name := "e1"
	wrongName := "e2"

	t.Run("neither param", func(t *testing.T) {
		_, err := svc.FindByParams(ctx, nil, nil)
		var missing *domain.MissingParamError
		if !errors.As(err, &missing) {
			t.Fatalf("err = %v, want MissingParamError", err)
		}
		if got, want := missing.Error(), "params eventName, id missing"; got != want {
			t.Errorf("message = %q, want %q", got, want)
		}
	})

	t.Run("by id", func(t *testing.T) {
		event, err := svc.FindByParams(ctx, &id, nil)
		if err != nil || event == nil || event.EventName != "e1" {
			t.Fatalf("got event=%v err=%v", event, err)
		}
	})

	t.Run("by name", func(t *testing.T) {
		event, err := svc.FindByParams(ctx, nil, &name)
		if err != nil || event == nil || event.ID != id {
			t.Fatalf("got event=%v err=%v", event, err)
		}
	})

	t.Run("conjunction mismatch", func(t *testing.T) {
		event, err := svc.FindByParams(ctx, &id, &wrongName)
		if err != nil {
			t.Fatalf("err = %v", err)
		}
		if event != nil {
			t.Errorf("got %v, want not-found", event)
		}
	})
}

func TestRsEventUpdate(t *testing.T) {
	store, svc, userID := newEventFixture(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, domain.CreateRsEventRequest{
		EventName: "e1", Keyword: "k1", UserID: userID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	str := func(s string) *string { return &s }

	t.Run("body id mismatch leaves record unchanged", func(t *testing.T) {
		wrongID := id + 1
		err := svc.Update(ctx, id, domain.UpdateRsEventRequest{
			ID: &wrongID, EventName: str("changed"), UserID: &userID,
		})
		if !errors.Is(err, domain.ErrIDMismatch) {
			t.Fatalf("err = %v, want ErrIDMismatch", err)
		}
		event, _ := store.Events().FindByID(ctx, id)
		if event.EventName != "e1" {
			t.Errorf("eventName = %q, want unchanged e1", event.EventName)
		}
	})

	t.Run("absent body id is a mismatch", func(t *testing.T) {
		err := svc.Update(ctx, id, domain.UpdateRsEventRequest{
			EventName: str("changed"), UserID: &userID,
		})
		if !errors.Is(err, domain.ErrIDMismatch) {
			t.Fatalf("err = %v, want ErrIDMismatch", err)
		}
	})

	t.Run("non-existent target is not found", func(t *testing.T) {
		missID := int64(99999999)
		err := svc.Update(ctx, missID, domain.UpdateRsEventRequest{
			ID: &missID, EventName: str("x"), UserID: &userID,
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("tampered user id", func(t *testing.T) {
		wrongUser := userID + 1
		err := svc.Update(ctx, id, domain.UpdateRsEventRequest{
			ID: &id, EventName: str("changed"), UserID: &wrongUser,
		})
		if !errors.Is(err, domain.ErrUserIDIncorrect) {
			t.Fatalf("err = %v, want ErrUserIDIncorrect", err)
		}
	})

	t.Run("partial update retains unset fields", func(t *testing.T) {
		if err := svc.Update(ctx, id, domain.UpdateRsEventRequest{
			ID: &id, Keyword: str("k2"), UserID: &userID,
		}); err != nil {
			t.Fatalf("Update: %v", err)
		}
		event, _ := store.Events().FindByID(ctx, id)
		if event.EventName != "e1" || event.Keyword != "k2" {
			t.Errorf("event = %+v, want eventName e1 keyword k2", event)
		}

		if err := svc.Update(ctx, id, domain.UpdateRsEventRequest{
			ID: &id, EventName: str("e1b"), UserID: &userID,
		}); err != nil {
			t.Fatalf("Update: %v", err)
		}
		event, _ = store.Events().FindByID(ctx, id)
		if event.EventName != "e1b" || event.Keyword != "k2" {
			t.Errorf("event = %+v, want eventName e1b keyword k2", event)
		}
	})
}

func TestRsEventDeleteByParams(t *testing.T) {
	store, svc, userID := newEventFixture(t)
	ctx := context.Background()

	mk := func(name string) int64 {
		t.Helper()
		id, err := svc.Create(ctx, domain.CreateRsEventRequest{
			EventName: name, Keyword: "k", UserID: userID,
		})
		if err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
		return id
	}

	t.Run("missing params", func(t *testing.T) {
		err := svc.DeleteByParams(ctx, nil, nil)
		var missing *domain.MissingParamError
		if !errors.As(err, &missing) {
			t.Fatalf("err = %v, want MissingParamError", err)
		}
	})

	t.Run("by id", func(t *testing.T) {
		id := mk("d1")
		if err := svc.DeleteByParams(ctx, &id, nil); err != nil {
			t.Fatalf("DeleteByParams: %v", err)
		}
		if exists, _ := store.Events().ExistsByID(ctx, id); exists {
			t.Error("event still exists after delete")
		}
	})

	t.Run("by name", func(t *testing.T) {
		mk("d2")
		name := "d2"
		if err := svc.DeleteByParams(ctx, nil, &name); err != nil {
			t.Fatalf("DeleteByParams: %v", err)
		}
	})

	t.Run("miss is not found", func(t *testing.T) {
		missID := int64(99999999)
		if err := svc.DeleteByParams(ctx, &missID, nil); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}
