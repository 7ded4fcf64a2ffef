package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gottaspeak/backend/internal/domain"
)

type fakeNoteRepo struct {
	byID map[string]*domain.Note
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{byID: make(map[string]*domain.Note)}
}

func (f *fakeNoteRepo) Create(_ context.Context, note *domain.Note) error {
	note.ID = uuid.NewString()
	f.byID[note.ID] = note
	return nil
}

func (f *fakeNoteRepo) Update(_ context.Context, note *domain.Note) error {
	if _, ok := f.byID[note.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.byID[note.ID] = note
	return nil
}

func (f *fakeNoteRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeNoteRepo) GetByID(_ context.Context, id string) (*domain.Note, error) {
	note, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return note, nil
}

func (f *fakeNoteRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]domain.Note, error) {
	var notes []domain.Note
	for _, note := range f.byID {
		if note.UserID == userID {
			notes = append(notes, *note)
		}
	}
	return notes, nil
}

func TestCreateNoteValidation(t *testing.T) {
	svc := NewNoteService(newFakeNoteRepo())
	ctx := context.Background()

	if _, err := svc.CreateNote(ctx, NoteCreateInput{Content: "hi"}); err == nil {
		t.Error("missing userId accepted")
	}
	if _, err := svc.CreateNote(ctx, NoteCreateInput{UserID: "u1", Content: "  "}); err == nil {
		t.Error("blank content accepted")
	}
	if _, err := svc.CreateNote(ctx, NoteCreateInput{UserID: "u1", Content: "hi", MaterialID: strPtr("bad")}); err == nil {
		t.Error("malformed material id accepted")
	}
}

func TestUpdateNoteEnforcesOwnership(t *testing.T) {
	repo := newFakeNoteRepo()
	svc := NewNoteService(repo)
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, NoteCreateInput{UserID: "u1", Content: "mine"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.UpdateNote(ctx, "u2", note.ID, NoteUpdateInput{Content: strPtr("stolen")})
	if code := errCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("code = %q, want FORBIDDEN", code)
	}

	updated, err := svc.UpdateNote(ctx, "u1", note.ID, NoteUpdateInput{Content: strPtr("edited")})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Content != "edited" {
		t.Errorf("content = %q", updated.Content)
	}
}

func TestDeleteNoteEnforcesOwnership(t *testing.T) {
	repo := newFakeNoteRepo()
	svc := NewNoteService(repo)
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, NoteCreateInput{UserID: "u1", Content: "mine"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteNote(ctx, "u2", note.ID); err == nil {
		t.Fatal("foreign delete accepted")
	}
	if err := svc.DeleteNote(ctx, "u1", note.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := svc.DeleteNote(ctx, "u1", note.ID); errCode(t, err) != "NOT_FOUND" {
		t.Fatalf("second delete: %v", err)
	}
}
