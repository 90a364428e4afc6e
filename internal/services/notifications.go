package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"minigames-backend/internal/models"
)

func (l *Ledger) CreateNotification(ctx context.Context, message string, username *string, ttl time.Duration) (*models.Notification, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", models.ErrInvalidRequest)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	n := &models.Notification{
		Message:   message,
		Username:  username,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := l.db.WithContext(ctx).Create(n).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return n, nil
}

// Notifications lists unexpired broadcast notifications plus those addressed
// to username, newest first.
func (l *Ledger) Notifications(ctx context.Context, username string, now time.Time) ([]models.Notification, error) {
	var rows []models.Notification
	err := l.db.WithContext(ctx).
		Where("expires_at > ?", now).
		Where("username IS NULL OR username = ?", username).
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	return rows, nil
}

func (l *Ledger) PurgeNotifications(ctx context.Context, now time.Time) (int64, error) {
	res := l.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&models.Notification{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to purge notifications: %w", res.Error)
	}
	return res.RowsAffected, nil
}
