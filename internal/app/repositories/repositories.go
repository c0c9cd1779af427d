package repositories

import (
	"github.com/nucesstack/notestack/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	SemesterRepository *SemesterRepository
	SubjectRepository  *SubjectRepository
	NoteRepository     *NoteRepository
	AdminRepository    *AdminRepository
	TokenRepository    *TokenRepository
	AuditRepository    *AuditRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	pool := database.Pool
	return &Repositories{
		SemesterRepository: NewSemesterRepository(pool),
		SubjectRepository:  NewSubjectRepository(pool),
		NoteRepository:     NewNoteRepository(pool),
		AdminRepository:    NewAdminRepository(pool),
		TokenRepository:    NewTokenRepository(pool),
		AuditRepository:    NewAuditRepository(database),
	}
}
