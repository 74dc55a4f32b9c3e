package store

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/matzehuels/panelfit/pkg/errors"
	"github.com/matzehuels/panelfit/pkg/geom"
	"github.com/matzehuels/panelfit/pkg/pipeline"
	"github.com/matzehuels/panelfit/pkg/scene"
)

func testDoc(name string, created time.Time) *Document {
	seed := uint64(42)
	sc := &scene.Scene{
		Container: geom.Size{Width: 100, Height: 50},
		Seed:      &seed,
		Randomize: pipeline.Bool(false),
		Items:     []scene.Item{{ID: "a", Width: 10, Height: 10}},
	}
	l := pipeline.Layout{
		Size:   geom.Size{Width: 10, Height: 10},
		Engine: "rows",
		Seed:   42,
		Items:  []pipeline.Placement{{ID: "a", Width: 10, Height: 10}},
	}
	doc := NewDocument(name, sc, l)
	doc.CreatedAt = created
	return doc
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument("x", &scene.Scene{}, pipeline.Layout{})
	if err := ValidateID(doc.ID); err != nil {
		t.Errorf("generated id %q invalid: %v", doc.ID, err)
	}
	if doc.CreatedAt.IsZero() || doc.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt = %v", doc.CreatedAt)
	}
	if NewDocument("y", nil, pipeline.Layout{}).ID == doc.ID {
		t.Error("ids repeat")
	}
}

func TestValidateID(t *testing.T) {
	for _, id := range []string{"", "../etc/passwd", "abc", "00000000-0000-0000-0000-00000000000g"} {
		if err := ValidateID(id); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("ValidateID(%q) = %v", id, err)
		}
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := testDoc("older", base)
	newer := testDoc("newer", base.Add(time.Hour))
	for _, d := range []*Document{older, newer} {
		if err := s.Put(ctx, d); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	got, err := s.Get(ctx, older.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "older" || *got.Scene.Seed != 42 || got.Layout.Items[0].ID != "a" {
		t.Errorf("Get = %+v", got)
	}

	docs, err := s.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 || docs[0].Name != "newer" {
		t.Errorf("List order wrong: %v, %v", docs[0].Name, docs[1].Name)
	}
	if docs, _ := s.List(ctx, 1); len(docs) != 1 {
		t.Errorf("List(1) = %d docs", len(docs))
	}

	if err := s.Delete(ctx, older.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, older.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get after delete: %v", err)
	}
	if err := s.Delete(ctx, older.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("second Delete: %v", err)
	}
	if _, err := s.Get(ctx, "../../secret"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Get with traversal id: %v", err)
	}
}

func TestFileStoreDefaultDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	s, err := NewFileStore("")
	if err != nil {
		t.Fatal(err)
	}
	if want := dir + "/panelfit/layouts"; s.Path() != want {
		t.Errorf("Path = %s, want %s", s.Path(), want)
	}
}

func TestDocumentBSON(t *testing.T) {
	doc := testDoc("bson", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	data, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	raw := bson.Raw(data)
	if id, ok := raw.Lookup("_id").StringValueOK(); !ok || id != doc.ID {
		t.Errorf("_id = %q", id)
	}

	var back Document
	if err := bson.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.CreatedAt.Equal(doc.CreatedAt) || *back.Scene.Seed != 42 || *back.Scene.Randomize {
		t.Errorf("decoded = %+v", back)
	}
	if back.Layout.Items[0] != doc.Layout.Items[0] {
		t.Errorf("layout items = %+v", back.Layout.Items)
	}
}

func TestMongoStoreUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_, err := NewMongoStore(ctx, "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200", "")
	if err == nil {
		t.Fatal("expected connection error")
	}
}
