package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSeedUsers(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	users, err := s.UserRepo().List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("seeded users = %d, want 3", len(users))
	}

	admin, err := s.UserRepo().FindByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("find admin: %v", err)
	}
	if admin == nil || admin.Role != RoleAdmin {
		t.Errorf("admin = %+v, want ADMIN role", admin)
	}
}

func TestSeedUsers_OnlyOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()

	users, err := s2.UserRepo().List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 3 {
		t.Errorf("users after reopen = %d, want 3 (no duplicate seed)", len(users))
	}
}

func TestUserCRUD(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.UserRepo()

	u := &User{Username: "tim", FullName: "Tim Test", Role: RoleStudent}
	if err := repo.Add(ctx, u); err != nil {
		t.Fatalf("add: %v", err)
	}
	if u.ID == "" {
		t.Fatal("expected generated ID")
	}

	found, err := repo.FindByUsername(ctx, "tim")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found == nil || found.FullName != "Tim Test" {
		t.Fatalf("found = %+v, want Tim Test", found)
	}

	found.HasPaid = true
	if err := repo.Update(ctx, found); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.Get(ctx, found.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.HasPaid {
		t.Error("expected HasPaid after update")
	}

	if err := repo.Delete(ctx, found.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	gone, err := repo.FindByUsername(ctx, "tim")
	if err != nil {
		t.Fatalf("find after delete: %v", err)
	}
	if gone != nil {
		t.Error("expected user gone after delete")
	}
}

func TestFindByUsername_Miss(t *testing.T) {
	s := openTestStore(t)

	u, err := s.UserRepo().FindByUsername(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error on miss: %v", err)
	}
	if u != nil {
		t.Errorf("expected nil user, got %+v", u)
	}
}

func TestSessionPointer(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	sessions := s.SessionRepo()

	// Nobody logged in initially.
	u, err := sessions.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("current (empty): %v", err)
	}
	if u != nil {
		t.Fatal("expected nil current user")
	}

	if err := sessions.SetCurrentUser(ctx, "student-1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	u, err = sessions.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if u == nil || u.Username != "schueler" {
		t.Fatalf("current = %+v, want schueler", u)
	}

	// Switching user replaces the pointer.
	if err := sessions.SetCurrentUser(ctx, "teacher-1"); err != nil {
		t.Fatalf("switch: %v", err)
	}
	u, _ = sessions.CurrentUser(ctx)
	if u == nil || u.Username != "lehrer" {
		t.Fatalf("current after switch = %+v, want lehrer", u)
	}

	if err := sessions.ClearCurrentUser(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	u, err = sessions.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("current after clear: %v", err)
	}
	if u != nil {
		t.Error("expected nil current user after logout")
	}
}

func TestEventAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	events := s.EventRepo()

	for i := 0; i < 3; i++ {
		err := events.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "mock",
			Model:        "mock",
			Purpose:      "exercise-gen",
			InputTokens:  100,
			OutputTokens: 50,
			LatencyMs:    10,
			Success:      true,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	err := events.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "tutor-chat",
		Success: false, ErrorMessage: "boom",
	})
	if err != nil {
		t.Fatalf("append chat event: %v", err)
	}

	all, err := events.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("events = %d, want 4", len(all))
	}
	// Newest first.
	if all[0].Purpose != "tutor-chat" {
		t.Errorf("first event purpose = %q, want tutor-chat", all[0].Purpose)
	}

	filtered, err := events.QueryLLMEvents(ctx, QueryOpts{Purpose: "exercise-gen"})
	if err != nil {
		t.Fatalf("filtered query: %v", err)
	}
	if len(filtered) != 3 {
		t.Errorf("filtered events = %d, want 3", len(filtered))
	}

	byPurpose, err := events.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("usage groups = %d, want 2", len(byPurpose))
	}
	for _, u := range byPurpose {
		if u.Purpose == "exercise-gen" {
			if u.Calls != 3 || u.InputTokens != 300 {
				t.Errorf("exercise-gen usage = %+v, want 3 calls / 300 input", u)
			}
		}
	}

	got, err := events.GetLLMEvent(ctx, all[0].ID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if got == nil || got.ErrorMessage != "boom" {
		t.Errorf("event = %+v, want error message boom", got)
	}

	missing, err := events.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}
}
