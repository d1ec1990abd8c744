package service

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pingboard/backend/internal/models"
	"github.com/pingboard/backend/internal/repository"
	"github.com/pingboard/backend/internal/seo"
	"github.com/pingboard/backend/pkg/logger"
)

const (
	maxPingTextLength = 280
	maxLocationLength = 100
)

var (
	ErrPingNotFound = errors.New("ping not found")
	ErrForbidden    = errors.New("you can only modify your own pings")

	ErrTextRequired    = errors.New("text is required")
	ErrTextTooLong     = errors.New("text must be at most 280 characters")
	ErrInvalidCategory = errors.New("invalid category")
	ErrLocationTooLong = errors.New("location must be at most 100 characters")
)

type PingService struct {
	pingRepo *repository.PingRepository
	userRepo *repository.UserRepository
	pageSize int
}

func NewPingService(pingRepo *repository.PingRepository, userRepo *repository.UserRepository, pageSize int) *PingService {
	return &PingService{
		pingRepo: pingRepo,
		userRepo: userRepo,
		pageSize: pageSize,
	}
}

func (s *PingService) PageSize() int {
	return s.pageSize
}

// PingView is a ping enriched with the viewer-dependent read model fields.
type PingView struct {
	Ping             models.Ping
	VoteCount        int64
	UserHasUpvoted   bool
	UserHasDownvoted bool
}

type CreatePingInput struct {
	Text        string
	Category    models.Category
	Location    string
	IsAnonymous bool
}

// Create validates the input, derives hashtags and the SEO description from
// the text, and persists the ping. Derived fields are never recomputed later.
func (s *PingService) Create(userID uuid.UUID, in CreatePingInput) (*PingView, error) {
	if err := validatePingFields(in.Text, in.Category, in.Location); err != nil {
		logger.Log.Warn("Ping validation failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	tags := seo.ExtractHashtags(in.Text)

	ping := &models.Ping{
		ID:             uuid.New(),
		Text:           in.Text,
		Category:       in.Category,
		Timestamp:      time.Now(),
		UserID:         userID,
		Location:       in.Location,
		IsAnonymous:    in.IsAnonymous,
		Hashtags:       seo.JoinHashtags(tags),
		SeoDescription: seo.Description(in.Text),
	}

	if err := s.pingRepo.CreatePing(ping); err != nil {
		logger.Log.Error("Failed to create ping",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Ping created",
		zap.String("ping_id", ping.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("hashtags", len(tags)),
	)

	// Reload with the author preloaded for serialization
	created, err := s.pingRepo.GetPingByID(ping.ID)
	if err != nil {
		return nil, err
	}

	return &PingView{Ping: *created}, nil
}

// Get returns a single ping with vote fields computed for the viewer.
// viewerID is nil for unauthenticated reads.
func (s *PingService) Get(pingID uuid.UUID, viewerID *uuid.UUID) (*PingView, error) {
	ping, err := s.pingRepo.GetPingByID(pingID)
	if err != nil {
		return nil, err
	}
	if ping == nil {
		return nil, ErrPingNotFound
	}

	return s.buildView(ping, viewerID)
}

type UpdatePingInput struct {
	Text     *string
	Category *models.Category
	Location *string
}

// Update mutates text, category and location only. Hashtags and the SEO
// description keep their creation-time values.
func (s *PingService) Update(userID, pingID uuid.UUID, in UpdatePingInput) (*PingView, error) {
	ping, err := s.pingRepo.GetPingByID(pingID)
	if err != nil {
		return nil, err
	}
	if ping == nil {
		return nil, ErrPingNotFound
	}
	if ping.UserID != userID {
		logger.Log.Warn("Ping update rejected: not the owner",
			zap.String("ping_id", pingID.String()),
			zap.String("user_id", userID.String()),
		)
		return nil, ErrForbidden
	}

	if in.Text != nil {
		ping.Text = *in.Text
	}
	if in.Category != nil {
		ping.Category = *in.Category
	}
	if in.Location != nil {
		ping.Location = *in.Location
	}

	if err := validatePingFields(ping.Text, ping.Category, ping.Location); err != nil {
		return nil, err
	}

	if err := s.pingRepo.UpdatePing(ping); err != nil {
		logger.Log.Error("Failed to update ping",
			zap.String("ping_id", pingID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Ping updated",
		zap.String("ping_id", pingID.String()),
		zap.String("user_id", userID.String()),
	)

	return s.buildView(ping, &userID)
}

// Delete removes a ping. Only the owner may delete it.
func (s *PingService) Delete(userID, pingID uuid.UUID) error {
	ping, err := s.pingRepo.GetPingByID(pingID)
	if err != nil {
		return err
	}
	if ping == nil {
		return ErrPingNotFound
	}
	if ping.UserID != userID {
		logger.Log.Warn("Ping delete rejected: not the owner",
			zap.String("ping_id", pingID.String()),
			zap.String("user_id", userID.String()),
		)
		return ErrForbidden
	}

	if err := s.pingRepo.DeletePing(ping); err != nil {
		logger.Log.Error("Failed to delete ping",
			zap.String("ping_id", pingID.String()),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Ping deleted",
		zap.String("ping_id", pingID.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}

// List returns one page of the global feed.
func (s *PingService) List(f repository.PingFilters, viewerID *uuid.UUID) ([]PingView, int64, error) {
	pings, total, err := s.pingRepo.ListPings(f, s.pageSize)
	if err != nil {
		return nil, 0, err
	}

	views, err := s.buildViews(pings, viewerID)
	return views, total, err
}

// ListForUser returns the caller's own pings, newest first by default.
func (s *PingService) ListForUser(userID uuid.UUID, f repository.PingFilters) ([]PingView, int64, error) {
	f.UserID = &userID
	f.Location = ""
	f.Search = ""

	pings, total, err := s.pingRepo.ListPings(f, s.pageSize)
	if err != nil {
		return nil, 0, err
	}

	views, err := s.buildViews(pings, &userID)
	return views, total, err
}

func (s *PingService) buildView(ping *models.Ping, viewerID *uuid.UUID) (*PingView, error) {
	views, err := s.buildViews([]models.Ping{*ping}, viewerID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *PingService) buildViews(pings []models.Ping, viewerID *uuid.UUID) ([]PingView, error) {
	views := make([]PingView, 0, len(pings))

	for i := range pings {
		view := PingView{Ping: pings[i]}

		count, err := s.pingRepo.VoteCount(pings[i].ID)
		if err != nil {
			return nil, err
		}
		view.VoteCount = count

		if viewerID != nil {
			if view.UserHasUpvoted, err = s.pingRepo.HasUpvoted(pings[i].ID, *viewerID); err != nil {
				return nil, err
			}
			if view.UserHasDownvoted, err = s.pingRepo.HasDownvoted(pings[i].ID, *viewerID); err != nil {
				return nil, err
			}
		}

		views = append(views, view)
	}

	return views, nil
}

func validatePingFields(text string, category models.Category, location string) error {
	length := utf8.RuneCountInString(text)
	if length == 0 {
		return ErrTextRequired
	}
	if length > maxPingTextLength {
		return ErrTextTooLong
	}
	if !models.ValidCategory(category) {
		return ErrInvalidCategory
	}
	if utf8.RuneCountInString(location) > maxLocationLength {
		return ErrLocationTooLong
	}
	return nil
}
