package repository

import (
	"context"

	"github.com/alumnet-lab/backend/internal/entity"
	"github.com/alumnet-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DepartmentStatistic struct {
	Department  string
	Members     int64
	TotalPoints uint64
	Tasks       uint64
}

type PointBucket struct {
	Bucket  string
	Members int64
}

type MemberRepository interface {
	// Upsert creates the member if it doesn't exist. It never changes the
	// counters of an existing member.
	Upsert(ctx context.Context, member *entity.Member) error
	Get(ctx context.Context, userID, tenantID string) (*entity.Member, error)
	GetListByTenantID(ctx context.Context, tenantID string) ([]entity.Member, error)
	IncreasePoints(ctx context.Context, userID, tenantID string, points uint64, isTask bool) error
	DecreasePoints(ctx context.Context, userID, tenantID string, points uint64) error
	IncreaseRedemptions(ctx context.Context, userID, tenantID string) error
	DepartmentStatistic(ctx context.Context, tenantID string) ([]DepartmentStatistic, error)
	PointsDistribution(ctx context.Context, tenantID string, bounds []uint64) ([]PointBucket, error)
}

type memberRepository struct{}

func NewMemberRepository() *memberRepository {
	return &memberRepository{}
}

func (r *memberRepository) Upsert(ctx context.Context, member *entity.Member) error {
	return xcontext.DB(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(member).Error
}

func (r *memberRepository) Get(ctx context.Context, userID, tenantID string) (*entity.Member, error) {
	var result entity.Member
	err := xcontext.DB(ctx).Where("user_id=? AND tenant_id=?", userID, tenantID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *memberRepository) GetListByTenantID(ctx context.Context, tenantID string) ([]entity.Member, error) {
	var result []entity.Member
	if err := xcontext.DB(ctx).Where("tenant_id=?", tenantID).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *memberRepository) IncreasePoints(
	ctx context.Context, userID, tenantID string, points uint64, isTask bool,
) error {
	updateMap := map[string]any{
		"points":       gorm.Expr("points+?", points),
		"total_points": gorm.Expr("total_points+?", points),
	}

	if isTask {
		updateMap["completed_tasks"] = gorm.Expr("completed_tasks+1")
	}

	return updateOne(xcontext.DB(ctx).
		Model(&entity.Member{}).
		Where("user_id=? AND tenant_id=?", userID, tenantID).
		Updates(updateMap))
}

// DecreasePoints only touches the spendable balance. It returns
// gorm.ErrRecordNotFound if the balance is lower than points.
func (r *memberRepository) DecreasePoints(ctx context.Context, userID, tenantID string, points uint64) error {
	return updateOne(xcontext.DB(ctx).
		Model(&entity.Member{}).
		Where("user_id=? AND tenant_id=? AND points>=?", userID, tenantID, points).
		Update("points", gorm.Expr("points-?", points)))
}

func (r *memberRepository) IncreaseRedemptions(ctx context.Context, userID, tenantID string) error {
	return updateOne(xcontext.DB(ctx).
		Model(&entity.Member{}).
		Where("user_id=? AND tenant_id=?", userID, tenantID).
		Update("redemptions", gorm.Expr("redemptions+1")))
}

func (r *memberRepository) DepartmentStatistic(ctx context.Context, tenantID string) ([]DepartmentStatistic, error) {
	var result []DepartmentStatistic
	err := xcontext.DB(ctx).Model(&entity.Member{}).
		Select("users.department AS department, COUNT(*) AS members, "+
			"SUM(members.total_points) AS total_points, SUM(members.completed_tasks) AS tasks").
		Joins("JOIN users ON users.id=members.user_id").
		Where("members.tenant_id=?", tenantID).
		Group("users.department").
		Order("total_points DESC").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// PointsDistribution counts members per range of lifetime points. The bounds
// must be sorted ascending and start with 0.
func (r *memberRepository) PointsDistribution(
	ctx context.Context, tenantID string, bounds []uint64,
) ([]PointBucket, error) {
	result := []PointBucket{}
	for i, lower := range bounds {
		tx := xcontext.DB(ctx).Model(&entity.Member{}).
			Where("tenant_id=? AND total_points>=?", tenantID, lower)

		upper := uint64(0)
		if i+1 < len(bounds) {
			upper = bounds[i+1]
			tx = tx.Where("total_points<?", upper)
		}

		var count int64
		if err := tx.Count(&count).Error; err != nil {
			return nil, err
		}

		result = append(result, PointBucket{Bucket: rangeLabel(lower, upper), Members: count})
	}

	return result, nil
}
