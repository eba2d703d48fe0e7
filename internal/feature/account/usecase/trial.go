package usecase

import (
	"math"
	"time"

	"budget_backend/internal/feature/account/domain/entity"
)

// elapsedDays は作成時刻からの経過日数（小数）を返します。
func elapsedDays(createdAt time.Time) float64 {
	return time.Since(createdAt).Hours() / 24
}

// trialElapsed は試用期間（7日）を超過しているかどうかを返します。
func trialElapsed(createdAt time.Time) bool {
	return elapsedDays(createdAt) > entity.TrialDays
}

// trialDaysLeft は残り試用日数を返します。切り上げで計算し、0〜7の範囲にクランプします。
// 管理者による試用延長で作成日が未来になった場合でも7を超えて報告しません。
func trialDaysLeft(createdAt time.Time) int {
	left := int(math.Ceil(entity.TrialDays - elapsedDays(createdAt)))
	if left < 0 {
		return 0
	}
	if left > entity.TrialDays {
		return entity.TrialDays
	}
	return left
}
