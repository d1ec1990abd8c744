package repository

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pingboard/backend/internal/models"
)

// voteCountExpr computes |upvoters| - |downvoters| inside the database so
// listings can be ordered by it without storing a counter.
const voteCountExpr = "((SELECT COUNT(*) FROM ping_upvoters WHERE ping_upvoters.ping_id = pings.id) - " +
	"(SELECT COUNT(*) FROM ping_downvoters WHERE ping_downvoters.ping_id = pings.id))"

// PingFilters narrows and orders a ping listing.
type PingFilters struct {
	Category string
	Location string
	Search   string
	Ordering string
	Page     int
	UserID   *uuid.UUID // restrict to a single author (personal feed)
}

type PingRepository struct {
	db *gorm.DB
}

func NewPingRepository(db *gorm.DB) *PingRepository {
	return &PingRepository{db: db}
}

func (r *PingRepository) CreatePing(ping *models.Ping) error {
	return r.db.Create(ping).Error
}

// GetPingByID retrieves a ping with its author preloaded
func (r *PingRepository) GetPingByID(id uuid.UUID) (*models.Ping, error) {
	var ping models.Ping
	err := r.db.Preload("User").Where("id = ?", id).First(&ping).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &ping, nil
}

func (r *PingRepository) UpdatePing(ping *models.Ping) error {
	return r.db.Save(ping).Error
}

// DeletePing removes the ping together with its voter join rows.
func (r *PingRepository) DeletePing(ping *models.Ping) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(ping).Association("Upvoters").Clear(); err != nil {
			return err
		}
		if err := tx.Model(ping).Association("Downvoters").Clear(); err != nil {
			return err
		}
		return tx.Delete(ping).Error
	})
}

// ListPings applies filters, search and ordering, then returns one page plus
// the total match count.
func (r *PingRepository) ListPings(f PingFilters, pageSize int) ([]models.Ping, int64, error) {
	query := r.db.Model(&models.Ping{})

	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Location != "" {
		query = query.Where("location = ?", f.Location)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where("LOWER(text) LIKE ? OR LOWER(location) LIKE ?", pattern, pattern)
	}
	if f.UserID != nil {
		query = query.Where("user_id = ?", *f.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}

	var pings []models.Ping
	err := query.
		Preload("User").
		Order(orderClause(f.Ordering)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&pings).Error

	return pings, total, err
}

// orderClause maps the ordering query parameter to SQL. Unknown values fall
// back to the default newest-first ordering.
func orderClause(ordering string) string {
	switch ordering {
	case "timestamp":
		return "timestamp ASC"
	case "-timestamp":
		return "timestamp DESC"
	case "vote_count":
		return voteCountExpr + " ASC"
	case "-vote_count":
		return voteCountExpr + " DESC"
	default:
		return "timestamp DESC"
	}
}

// AddUpvote moves the user into the upvoter set, leaving the downvoter set.
// Both association writes are idempotent, so repeat votes are no-ops.
func (r *PingRepository) AddUpvote(ping *models.Ping, user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(ping).Association("Downvoters").Delete(user); err != nil {
			return err
		}
		return tx.Model(ping).Association("Upvoters").Append(user)
	})
}

// AddDownvote is the symmetric inverse of AddUpvote.
func (r *PingRepository) AddDownvote(ping *models.Ping, user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(ping).Association("Upvoters").Delete(user); err != nil {
			return err
		}
		return tx.Model(ping).Association("Downvoters").Append(user)
	})
}

// RemoveVotes clears the user from both sets unconditionally.
func (r *PingRepository) RemoveVotes(ping *models.Ping, user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(ping).Association("Upvoters").Delete(user); err != nil {
			return err
		}
		return tx.Model(ping).Association("Downvoters").Delete(user)
	})
}

// VoteCount computes upvotes minus downvotes for a ping.
func (r *PingRepository) VoteCount(pingID uuid.UUID) (int64, error) {
	var up, down int64
	if err := r.db.Table("ping_upvoters").Where("ping_id = ?", pingID).Count(&up).Error; err != nil {
		return 0, err
	}
	if err := r.db.Table("ping_downvoters").Where("ping_id = ?", pingID).Count(&down).Error; err != nil {
		return 0, err
	}
	return up - down, nil
}

func (r *PingRepository) HasUpvoted(pingID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Table("ping_upvoters").
		Where("ping_id = ? AND user_id = ?", pingID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *PingRepository) HasDownvoted(pingID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Table("ping_downvoters").
		Where("ping_id = ? AND user_id = ?", pingID, userID).
		Count(&count).Error
	return count > 0, err
}
