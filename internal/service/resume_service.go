package service

import (
	"campusconnect/placement-app/internal/config"
	"campusconnect/placement-app/internal/domain"
	"campusconnect/placement-app/internal/hash"
	"campusconnect/placement-app/internal/repository"
	"campusconnect/placement-app/internal/skills"
	"campusconnect/placement-app/internal/storage"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrResumeInvalidInput    = errors.New("usn, file data, and file name are required")
	ErrResumeInvalidEncoding = errors.New("file data is not valid base64")
	ErrResumeInvalidFormat   = errors.New("file is not a valid PDF")
	ErrResumeTooLarge        = errors.New("file exceeds the maximum allowed size")
	ErrResumeQuotaExceeded   = errors.New("resume limit reached for this student")
	ErrResumeDuplicate       = errors.New("an identical resume is already uploaded")
	ErrResumeNotFound        = errors.New("resume not found")
	ErrResumeStorageFailure  = errors.New("failed to store resume file")
	ErrResumePersistence     = errors.New("failed to save resume record")
)

const pdfSignature = "%PDF"
const dataURIPrefix = "data:"

// TextExtractor produces plain text from stored PDF bytes.
type TextExtractor func(data []byte) (string, error)

// ResumeService governs the resume lifecycle: upload with dedupe and quota
// enforcement, single-active selection, deletion with promotion, and skill
// listing from the active resume.
type ResumeService interface {
	Upload(ctx context.Context, usn, fileData, originalFileName string) (*domain.Resume, error)
	List(ctx context.Context, usn string) ([]domain.Resume, error)
	Active(ctx context.Context, usn string) (*domain.Resume, error)
	Activate(ctx context.Context, usn string, resumeID primitive.ObjectID) (*domain.Resume, error)
	Delete(ctx context.Context, usn string, resumeID primitive.ObjectID) error
	ListSkills(ctx context.Context, usn string) ([]string, error)
}

// resumeService implements the ResumeService interface.
type resumeService struct {
	resumeRepo  repository.ResumeRepository
	fileStorage storage.FileStorage
	extractText TextExtractor
	maxCount    int
	maxSize     int64

	// ownerMu serializes upload/activate/delete per owner so concurrent
	// requests from one student cannot break the single-active invariant.
	// Entries are reference-counted and removed once the last holder
	// releases, so the map only tracks owners with in-flight requests.
	mu      sync.Mutex
	ownerMu map[string]*ownerLock
}

type ownerLock struct {
	mu   sync.Mutex
	refs int
}

// NewResumeService creates a new instance of resumeService.
func NewResumeService(
	resumeRepo repository.ResumeRepository,
	fileStorage storage.FileStorage,
	extractText TextExtractor,
	cfg config.ResumeConfig,
) ResumeService {
	if cfg.MaxCount <= 0 {
		cfg.MaxCount = 3
	}
	if cfg.MaxSizeBytes <= 0 {
		cfg.MaxSizeBytes = 7864320 // 7.5 MB
	}
	return &resumeService{
		resumeRepo:  resumeRepo,
		fileStorage: fileStorage,
		extractText: extractText,
		maxCount:    cfg.MaxCount,
		maxSize:     cfg.MaxSizeBytes,
		ownerMu:     make(map[string]*ownerLock),
	}
}

// lockOwner acquires the mutex guarding one owner's lifecycle operations
// and returns the release function.
func (s *resumeService) lockOwner(usn string) func() {
	s.mu.Lock()
	l, ok := s.ownerMu[usn]
	if !ok {
		l = &ownerLock{}
		s.ownerMu[usn] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.ownerMu, usn)
		}
		s.mu.Unlock()
	}
}

// Upload validates, decodes, dedupes and stores a new resume for usn.
// The first resume an owner uploads becomes active; later ones do not.
func (s *resumeService) Upload(ctx context.Context, usn, fileData, originalFileName string) (*domain.Resume, error) {
	if usn == "" || fileData == "" || originalFileName == "" {
		return nil, ErrResumeInvalidInput
	}

	// Strip a data-URI wrapper ("data:application/pdf;base64,....") if the
	// client sent one.
	if strings.HasPrefix(fileData, dataURIPrefix) {
		if idx := strings.Index(fileData, ","); idx >= 0 {
			fileData = fileData[idx+1:]
		}
	}

	raw, err := base64.StdEncoding.DecodeString(fileData)
	if err != nil {
		return nil, ErrResumeInvalidEncoding
	}

	if len(raw) < len(pdfSignature) || string(raw[:len(pdfSignature)]) != pdfSignature {
		return nil, ErrResumeInvalidFormat
	}
	if int64(len(raw)) > s.maxSize {
		return nil, ErrResumeTooLarge
	}

	unlock := s.lockOwner(usn)
	defer unlock()

	count, err := s.resumeRepo.CountByUSN(ctx, usn)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.maxCount) {
		return nil, ErrResumeQuotaExceeded
	}

	contentHash := hash.Content(raw)
	_, err = s.resumeRepo.GetByUSNAndHash(ctx, usn, contentHash)
	if err == nil {
		return nil, ErrResumeDuplicate
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	locator, err := s.fileStorage.Save(ctx, usn, raw)
	if err != nil {
		log.Printf("ERROR: Failed to store resume for %s: %v", usn, err)
		return nil, ErrResumeStorageFailure
	}

	resume := &domain.Resume{
		USN:              usn,
		Format:           domain.FormatCustom,
		FilePath:         locator,
		ContentHash:      contentHash,
		OriginalFileName: originalFileName,
		IsActive:         count == 0,
	}

	resumeID, err := s.resumeRepo.Create(ctx, resume)
	if err != nil {
		// The blob is on disk but has no record: clean it up so nothing
		// orphaned survives a failed upload.
		if cleanupErr := s.fileStorage.Delete(ctx, locator); cleanupErr != nil {
			log.Printf("ERROR: Failed to clean up orphaned blob '%s' after record-save failure: %v", locator, cleanupErr)
		}
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrResumeDuplicate
		}
		return nil, fmt.Errorf("%w: %v", ErrResumePersistence, err)
	}
	resume.ID = resumeID

	return resume, nil
}

// List returns the owner's resumes, most-recently-updated first.
func (s *resumeService) List(ctx context.Context, usn string) ([]domain.Resume, error) {
	if usn == "" {
		return nil, ErrResumeInvalidInput
	}
	return s.resumeRepo.GetByUSN(ctx, usn)
}

// Active returns the currently active resume for usn, or ErrResumeNotFound
// when the student has no active resume.
func (s *resumeService) Active(ctx context.Context, usn string) (*domain.Resume, error) {
	if usn == "" {
		return nil, ErrResumeInvalidInput
	}
	resume, err := s.resumeRepo.GetActiveByUSN(ctx, usn)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}
	return resume, nil
}

// Activate makes resumeID the single active resume for usn.
func (s *resumeService) Activate(ctx context.Context, usn string, resumeID primitive.ObjectID) (*domain.Resume, error) {
	if usn == "" || resumeID == primitive.NilObjectID {
		return nil, ErrResumeInvalidInput
	}

	unlock := s.lockOwner(usn)
	defer unlock()

	resume, err := s.getOwned(ctx, usn, resumeID)
	if err != nil {
		return nil, err
	}

	if err := s.resumeRepo.SetActiveExclusive(ctx, usn, resume.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}

	refreshed, err := s.resumeRepo.GetByID(ctx, resume.ID)
	if err != nil {
		return nil, err
	}
	return refreshed, nil
}

// Delete removes the resume record and its blob. If the deleted resume was
// active and others remain, the most-recently-updated remaining resume is
// promoted.
func (s *resumeService) Delete(ctx context.Context, usn string, resumeID primitive.ObjectID) error {
	if usn == "" || resumeID == primitive.NilObjectID {
		return ErrResumeInvalidInput
	}

	unlock := s.lockOwner(usn)
	defer unlock()

	resume, err := s.getOwned(ctx, usn, resumeID)
	if err != nil {
		return err
	}

	// Idempotent: a blob that is already gone is fine, a delete that
	// actually fails is not.
	if err := s.fileStorage.Delete(ctx, resume.FilePath); err != nil {
		return ErrResumeStorageFailure
	}

	if err := s.resumeRepo.Delete(ctx, resume.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrResumeNotFound
		}
		return err
	}

	if resume.IsActive {
		remaining, err := s.resumeRepo.GetByUSN(ctx, usn)
		if err != nil {
			return err
		}
		if len(remaining) > 0 {
			if err := s.resumeRepo.SetActiveExclusive(ctx, usn, remaining[0].ID); err != nil {
				return err
			}
		}
	}

	return nil
}

// ListSkills extracts skills from the owner's active resume.
func (s *resumeService) ListSkills(ctx context.Context, usn string) ([]string, error) {
	if usn == "" {
		return nil, ErrResumeInvalidInput
	}

	resume, err := s.resumeRepo.GetActiveByUSN(ctx, usn)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}

	exists, err := s.fileStorage.Exists(ctx, resume.FilePath)
	if err != nil {
		return nil, err
	}
	if !exists {
		// Record without a blob: the stores have diverged.
		log.Printf("ERROR: Resume %s for %s references missing blob '%s'", resume.ID.Hex(), usn, resume.FilePath)
		return nil, ErrResumeNotFound
	}

	data, err := s.fileStorage.Get(ctx, resume.FilePath)
	if err != nil {
		return nil, err
	}

	text, err := s.extractText(data)
	if err != nil {
		// Extraction is best-effort; degrade to an empty skill set rather
		// than failing the request.
		log.Printf("WARN: Failed to extract text from resume %s: %v", resume.ID.Hex(), err)
		return []string{}, nil
	}

	return skills.Extract(text), nil
}

// getOwned fetches a resume and verifies ownership. A resume owned by a
// different student maps to the same not-found error so the endpoint does
// not leak existence.
func (s *resumeService) getOwned(ctx context.Context, usn string, resumeID primitive.ObjectID) (*domain.Resume, error) {
	resume, err := s.resumeRepo.GetByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}
	if resume.USN != usn {
		return nil, ErrResumeNotFound
	}
	return resume, nil
}
