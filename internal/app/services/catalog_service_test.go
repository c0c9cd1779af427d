package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nucesstack/notestack/internal/app/models"
	"github.com/nucesstack/notestack/internal/app/models/dto"
	"github.com/nucesstack/notestack/internal/pkg/apperrors"
)

func catalogFixture() (*CatalogService, *fakeSemesterStore, *fakeSubjectStore, *fakeNoteStore) {
	semesters := &fakeSemesterStore{
		semesters: []*models.Semester{{ID: 3, Name: "Fall 2025", Slug: "fall-2025"}},
		nextID:    3,
	}
	subjects := &fakeSubjectStore{
		subjects: []*models.Subject{{ID: 7, Name: "Algorithms", Slug: "algorithms", SemesterID: 3}},
		counts:   map[int64][2]int64{7: {5, 2}},
		nextID:   7,
	}
	notes := &fakeNoteStore{
		notes: []*models.Note{
			{ID: 1, Title: "Approved", SubjectID: 7, SemesterID: 3, PdfID: "AAA", Approved: true},
			{ID: 2, Title: "Pending", SubjectID: 7, SemesterID: 3, PdfID: "BBB"},
		},
		nextID: 2,
	}
	return NewCatalogService(semesters, subjects, notes), semesters, subjects, notes
}

func TestCreateSemesterDerivesSlug(t *testing.T) {
	svc, _, _, _ := catalogFixture()

	resp, err := svc.CreateSemester(context.Background(), &dto.CreateSemesterRequest{Name: "Spring 2026!"})
	require.NoError(t, err)
	assert.Equal(t, "spring-2026", resp.Slug)
	assert.Equal(t, "Spring 2026!", resp.Name)
}

func TestCreateSemesterDuplicateSlug(t *testing.T) {
	svc, _, _, _ := catalogFixture()

	_, err := svc.CreateSemester(context.Background(), &dto.CreateSemesterRequest{Name: "Fall 2025"})
	assert.ErrorIs(t, err, apperrors.ErrResourceAlreadyExists)
}

func TestCreateSemesterBlankName(t *testing.T) {
	svc, _, _, _ := catalogFixture()

	_, err := svc.CreateSemester(context.Background(), &dto.CreateSemesterRequest{Name: "   "})
	assert.ErrorIs(t, err, apperrors.ErrMissingRequiredField)
}

func TestPublicSubjectListUsesApprovedCounts(t *testing.T) {
	svc, _, _, _ := catalogFixture()

	subjects, err := svc.ListSubjectsBySemesterSlug(context.Background(), "fall-2025")
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, int64(2), subjects[0].NotesCount, "public counts must exclude pending notes")
}

func TestAdminSubjectListUsesFullCounts(t *testing.T) {
	svc, _, _, _ := catalogFixture()

	subjects, err := svc.ListSubjects(context.Background())
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, int64(5), subjects[0].NotesCount)
}

func TestPublicNoteListExcludesPending(t *testing.T) {
	svc, _, _, _ := catalogFixture()

	notes, err := svc.ListNotesBySubjectSlug(context.Background(), "algorithms")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Approved", notes[0].Title)
	assert.Equal(t, "https://drive.google.com/file/d/AAA/view", notes[0].PdfURL)
}

func TestPublicNoteListUnknownSubject(t *testing.T) {
	svc, _, _, _ := catalogFixture()

	_, err := svc.ListNotesBySubjectSlug(context.Background(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrSubjectNotFound)
}

func TestCreateSubjectUnknownSemester(t *testing.T) {
	svc, _, _, _ := catalogFixture()

	_, err := svc.CreateSubject(context.Background(), &dto.CreateSubjectRequest{Name: "Databases", SemesterID: 99})
	assert.ErrorIs(t, err, apperrors.ErrSemesterNotFound)
}

func TestCreateSubject(t *testing.T) {
	svc, _, subjects, _ := catalogFixture()

	resp, err := svc.CreateSubject(context.Background(), &dto.CreateSubjectRequest{
		Name:       "Operating Systems",
		SemesterID: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "operating-systems", resp.Slug)
	assert.Len(t, subjects.subjects, 2)
}
