package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nucesstack/notestack/internal/app/models"
	"github.com/nucesstack/notestack/internal/app/models/dto"
	"github.com/nucesstack/notestack/internal/pkg/apperrors"
	"github.com/nucesstack/notestack/internal/pkg/linkid"
)

func noteServiceFixture() (*NoteService, *fakeNoteStore) {
	subjects := &fakeSubjectStore{
		subjects: []*models.Subject{{ID: 7, Name: "Algorithms", Slug: "algorithms", SemesterID: 3}},
		nextID:   7,
	}
	notes := &fakeNoteStore{}
	return NewNoteService(notes, subjects), notes
}

func TestCreateNoteNormalizesLinks(t *testing.T) {
	svc, notes := noteServiceFixture()

	resp, err := svc.CreateNote(context.Background(), &dto.CreateNoteRequest{
		Title:     "Graphs",
		SubjectID: 7,
		PdfLink:   "https://drive.google.com/file/d/1AbC_d-9xYz/view?usp=sharing",
		VideoLink: "https://youtu.be/dQw4w9WgXcQ",
	}, "root")
	require.NoError(t, err)

	assert.Equal(t, "1AbC_d-9xYz", resp.PdfID)
	assert.Equal(t, "dQw4w9WgXcQ", resp.VideoID)
	assert.True(t, resp.Approved, "panel-created notes publish immediately")
	assert.Equal(t, int64(3), resp.SemesterID, "semester comes from the subject")

	require.Len(t, notes.notes, 1)
	assert.Equal(t, "1AbC_d-9xYz", notes.notes[0].PdfID)
}

func TestCreateNoteAcceptsBareIDs(t *testing.T) {
	svc, _ := noteServiceFixture()

	resp, err := svc.CreateNote(context.Background(), &dto.CreateNoteRequest{
		Title:     "Bare",
		SubjectID: 7,
		PdfLink:   "1AbC_d-9xYz",
		VideoLink: "dQw4w9WgXcQ",
	}, "root")
	require.NoError(t, err)
	assert.Equal(t, "1AbC_d-9xYz", resp.PdfID)
	assert.Equal(t, "dQw4w9WgXcQ", resp.VideoID)
}

func TestCreateNoteRejectsNoLinks(t *testing.T) {
	svc, _ := noteServiceFixture()

	_, err := svc.CreateNote(context.Background(), &dto.CreateNoteRequest{
		Title:     "Empty",
		SubjectID: 7,
	}, "root")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateNoteRejectsForeignVideoHost(t *testing.T) {
	svc, notes := noteServiceFixture()

	_, err := svc.CreateNote(context.Background(), &dto.CreateNoteRequest{
		Title:     "Vimeo",
		SubjectID: 7,
		VideoLink: "https://vimeo.com/123456",
	}, "root")
	assert.ErrorIs(t, err, linkid.ErrNotYouTubeLink)
	assert.Empty(t, notes.notes)
}

func TestUpdateNote(t *testing.T) {
	svc, notes := noteServiceFixture()
	notes.notes = []*models.Note{
		{ID: 1, Title: "Old", SubjectID: 7, SemesterID: 3, PdfID: "AAA", Approved: true},
	}
	notes.nextID = 1

	resp, err := svc.UpdateNote(context.Background(), 1, &dto.UpdateNoteRequest{
		Title:   "New title",
		PdfLink: "https://drive.google.com/file/d/ZZZ123/view",
	})
	require.NoError(t, err)
	assert.Equal(t, "New title", resp.Title)
	assert.Equal(t, "ZZZ123", resp.PdfID)
	assert.Equal(t, "New title", notes.notes[0].Title)
}

func TestUpdateUnknownNote(t *testing.T) {
	svc, _ := noteServiceFixture()

	_, err := svc.UpdateNote(context.Background(), 42, &dto.UpdateNoteRequest{Title: "X", PdfLink: "AAA"})
	assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
}

func TestNotesCount(t *testing.T) {
	svc, notes := noteServiceFixture()
	notes.notes = []*models.Note{
		{ID: 1, SubjectID: 7, SemesterID: 3, Approved: true},
		{ID: 2, SubjectID: 7, SemesterID: 3, Approved: true},
		{ID: 3, SubjectID: 9, SemesterID: 4, Approved: true},
	}

	total, breakdown, err := svc.NotesCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), total.Count)
	require.Len(t, breakdown, 2)
	assert.Equal(t, int64(2), breakdown[0].Count)
}

func TestNotesCountExcludesPending(t *testing.T) {
	svc, notes := noteServiceFixture()
	notes.notes = []*models.Note{
		{ID: 1, SubjectID: 7, SemesterID: 3, Approved: true},
		{ID: 2, SubjectID: 7, SemesterID: 3, Approved: false},
		{ID: 3, SubjectID: 9, SemesterID: 4, Approved: false},
	}

	total, breakdown, err := svc.NotesCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total.Count)
	require.Len(t, breakdown, 1)
	assert.Equal(t, int64(3), breakdown[0].SemesterID)
	assert.Equal(t, int64(1), breakdown[0].Count)
}
