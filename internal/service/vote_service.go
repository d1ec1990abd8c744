package service

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pingboard/backend/internal/repository"
	"github.com/pingboard/backend/pkg/logger"
)

type VoteType string

const (
	VoteUpvote   VoteType = "upvote"
	VoteDownvote VoteType = "downvote"
	VoteRemove   VoteType = "remove"
)

var ErrInvalidVoteType = errors.New("vote_type must be upvote, downvote or remove")

// VoteService toggles a user's membership in a ping's voter sets. Upvote and
// downvote are mutually exclusive: each branch leaves the opposite set before
// joining its own, inside one transaction.
type VoteService struct {
	pingRepo *repository.PingRepository
	userRepo *repository.UserRepository
}

func NewVoteService(pingRepo *repository.PingRepository, userRepo *repository.UserRepository) *VoteService {
	return &VoteService{
		pingRepo: pingRepo,
		userRepo: userRepo,
	}
}

// Vote applies voteType for the user and returns the updated vote count.
// Voting on your own ping is allowed, and every branch is idempotent.
func (s *VoteService) Vote(userID, pingID uuid.UUID, voteType VoteType) (int64, error) {
	ping, err := s.pingRepo.GetPingByID(pingID)
	if err != nil {
		return 0, err
	}
	if ping == nil {
		return 0, ErrPingNotFound
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, ErrUserNotFound
	}

	switch voteType {
	case VoteUpvote:
		err = s.pingRepo.AddUpvote(ping, user)
	case VoteDownvote:
		err = s.pingRepo.AddDownvote(ping, user)
	case VoteRemove:
		err = s.pingRepo.RemoveVotes(ping, user)
	default:
		return 0, ErrInvalidVoteType
	}

	if err != nil {
		logger.Log.Error("Vote failed",
			zap.String("ping_id", pingID.String()),
			zap.String("user_id", userID.String()),
			zap.String("vote_type", string(voteType)),
			zap.Error(err),
		)
		return 0, err
	}

	count, err := s.pingRepo.VoteCount(pingID)
	if err != nil {
		return 0, err
	}

	logger.Log.Debug("Vote applied",
		zap.String("ping_id", pingID.String()),
		zap.String("user_id", userID.String()),
		zap.String("vote_type", string(voteType)),
		zap.Int64("vote_count", count),
	)

	return count, nil
}
