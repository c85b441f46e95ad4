package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"parking_app/internal/repository"
)

func TestOpenCreatesDefaultCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("database file not written: %v", err)
	}
	got := s.Collections()
	want := []string{"bookings", "parking", "users"}
	if len(got) != len(want) {
		t.Fatalf("collections = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("collections = %v, want %v", got, want)
		}
	}
}

func TestCreateAssignsIDAndPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db.json")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	created, err := s.Create(ctx, "bookings", repository.Document{"parkingName": "Central"})
	if err != nil {
		t.Fatal(err)
	}
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("created document has no id: %v", created)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := reopened.Get(ctx, "bookings", id)
	if err != nil {
		t.Fatalf("reopened store lost the document: %v", err)
	}
	if doc["parkingName"] != "Central" {
		t.Errorf("parkingName = %v", doc["parkingName"])
	}
}

func TestCreateRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	s, _ := Open("")
	if _, err := s.Create(ctx, "users", repository.Document{"id": "1"}); err != nil {
		t.Fatal(err)
	}
	_, err := s.Create(ctx, "users", repository.Document{"id": "1"})
	if !errors.Is(err, repository.ErrDuplicateEntry) {
		t.Errorf("duplicate create error = %v, want ErrDuplicateEntry", err)
	}
}

func TestReplaceKeepsPathID(t *testing.T) {
	ctx := context.Background()
	s, err := NewFromJSON([]byte(`{"bookings":[{"id":1,"status":"upcoming","price":"$4.00"}]}`))
	if err != nil {
		t.Fatal(err)
	}

	replaced, err := s.Replace(ctx, "bookings", "1", repository.Document{"id": "999", "status": "completed"})
	if err != nil {
		t.Fatal(err)
	}
	if docID(replaced) != "1" {
		t.Errorf("replace changed id to %v", replaced["id"])
	}
	if _, ok := replaced["price"]; ok {
		t.Error("replace should drop fields missing from the body")
	}
}

func TestMergePatchesFields(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFromJSON([]byte(`{"bookings":[{"id":"a","status":"upcoming","price":"$4.00"}]}`))

	merged, err := s.Merge(ctx, "bookings", "a", repository.Document{"id": "b", "status": "active"})
	if err != nil {
		t.Fatal(err)
	}
	if merged["id"] != "a" || merged["status"] != "active" || merged["price"] != "$4.00" {
		t.Errorf("merge result = %v", merged)
	}
}

func TestDeleteAndNotFound(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFromJSON([]byte(`{"bookings":[{"id":"a"},{"id":"b"}]}`))

	if err := s.Delete(ctx, "bookings", "a"); err != nil {
		t.Fatal(err)
	}
	docs, _ := s.List(ctx, "bookings")
	if len(docs) != 1 || docs[0]["id"] != "b" {
		t.Errorf("after delete = %v", docs)
	}
	if err := s.Delete(ctx, "bookings", "a"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
	if _, err := s.List(ctx, "tickets"); !errors.Is(err, repository.ErrUnknownCollection) {
		t.Errorf("unknown collection error = %v", err)
	}
}

func TestListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFromJSON([]byte(`{"users":[{"id":"1","email":"a@b.co"}]}`))
	docs, _ := s.List(ctx, "users")
	docs[0]["email"] = "changed"

	again, _ := s.Get(ctx, "users", "1")
	if again["email"] != "a@b.co" {
		t.Error("mutating a listed document changed the store")
	}
}

func TestOpenOrSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	s, err := OpenOrSeed(path)
	if err != nil {
		t.Fatal(err)
	}
	users, err := s.List(context.Background(), "users")
	if err != nil || len(users) == 0 {
		t.Fatalf("seeded users = %v, %v", users, err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("seed not written to disk: %v", err)
	}
}

func TestLargeNumericIDsMatchTheirIntegerForm(t *testing.T) {
	ctx := context.Background()
	s, err := NewFromJSON([]byte(`{"bookings":[{"id":1748000000000,"status":"active"},{"id":1000000},{"id":2.5}]}`))
	if err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"1748000000000", "1000000", "2.5"} {
		if _, err := s.Get(ctx, "bookings", id); err != nil {
			t.Errorf("Get(%s): %v", id, err)
		}
	}

	replaced, err := s.Replace(ctx, "bookings", "1748000000000", repository.Document{"status": "completed"})
	if err != nil {
		t.Fatal(err)
	}
	if replaced["status"] != "completed" {
		t.Errorf("replaced = %v", replaced)
	}
	if err := s.Delete(ctx, "bookings", "1000000"); err != nil {
		t.Fatal(err)
	}
	docs, _ := s.List(ctx, "bookings")
	if len(docs) != 2 {
		t.Errorf("docs = %v", docs)
	}
}
