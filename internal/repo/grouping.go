package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopnet/marketplace/internal/models"
)

func (r *GormRepo) CreateGroup(ctx context.Context, group *models.UserGroup) error {
	return r.DB.WithContext(ctx).Create(group).Error
}

func (r *GormRepo) GroupByUID(ctx context.Context, uid uuid.UUID) (*models.UserGroup, error) {
	var group models.UserGroup
	if err := r.DB.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("uid = ?", uid).
		First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *GormRepo) GroupByPair(ctx context.Context, senderID, receiverID uint) (*models.UserGroup, error) {
	var group models.UserGroup
	if err := r.DB.WithContext(ctx).
		Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// IncomingPending lists requests sent to the shop that are still open.
func (r *GormRepo) IncomingPending(ctx context.Context, shopID uint) ([]models.UserGroup, error) {
	var groups []models.UserGroup
	if err := r.DB.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("receiver_id = ? AND status = ?", shopID, models.StatusPending).
		Order("id ASC").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// OutgoingPending lists requests the shop sent that are still open.
func (r *GormRepo) OutgoingPending(ctx context.Context, shopID uint) ([]models.UserGroup, error) {
	var groups []models.UserGroup
	if err := r.DB.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("sender_id = ? AND status = ?", shopID, models.StatusPending).
		Order("id ASC").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// AcceptedEdges returns every accepted edge touching the shop, in
// either direction. Friendship is stored directed but read symmetric.
func (r *GormRepo) AcceptedEdges(ctx context.Context, shopID uint) ([]models.UserGroup, error) {
	var groups []models.UserGroup
	if err := r.DB.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("(sender_id = ? OR receiver_id = ?) AND status = ?",
			shopID, shopID, models.StatusAccepted).
		Order("id ASC").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *GormRepo) SaveGroup(ctx context.Context, group *models.UserGroup) error {
	return r.DB.WithContext(ctx).Save(group).Error
}

func (r *GormRepo) DeleteGroup(ctx context.Context, group *models.UserGroup) error {
	return r.DB.WithContext(ctx).Delete(group).Error
}
